package main

import (
	"bytes"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	termbox "github.com/nsf/termbox-go"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borkshop/markerfield/internal/grid"
	"github.com/borkshop/markerfield/internal/point"
	"github.com/borkshop/markerfield/internal/scenario"
	"github.com/borkshop/markerfield/internal/vec"
	"github.com/borkshop/markerfield/internal/view"
)

func testOptions(t *testing.T) *options {
	cfg, err := scenario.Lookup("duel")
	require.NoError(t, err)
	return &options{
		cfg:    cfg,
		seed:   3,
		logger: log.New(io.Discard, "", 0),
		logOut: io.Discard,
	}
}

func TestRunAction(t *testing.T) {
	opts := testOptions(t)
	path := filepath.Join(t.TempDir(), "out.geojson")

	var out bytes.Buffer
	require.NoError(t, runAction(opts, 20, path, &out))
	assert.Contains(t, out.String(), "duel")
	assert.Contains(t, out.String(), "20 in")
	assert.Contains(t, out.String(), "red")
	assert.Contains(t, out.String(), "blue")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 3000+40)

	assert.Error(t, runAction(opts, -1, "", io.Discard))
}

func TestSummarize(t *testing.T) {
	g := grid.New(10, 10)
	g.PlaceMarker(2, 2)
	g.AddClass("a", vec.V(9, 2), color.RGBA{A: 0xff})
	g.AddAgent("a", vec.V(2, 3), 2)
	g.AddAgent("a", vec.V(8, 8), 1)
	g.AddClass("empty", vec.V(0, 0), color.RGBA{A: 0xff})
	g.Update()

	stats := summarize(g)
	require.Len(t, stats, 2)
	assert.Equal(t, "a", stats[0].id)
	assert.Equal(t, 2, stats[0].agents)
	assert.Equal(t, 1, stats[0].claimed)
	assert.Equal(t, 1, stats[0].idle)
	assert.Equal(t, classStat{id: "empty"}, stats[1])
}

func TestTermColor(t *testing.T) {
	for _, tc := range []struct {
		c    color.RGBA
		attr termbox.Attribute
	}{
		{color.RGBA{0, 0, 0, 0xff}, 17},
		{color.RGBA{0xff, 0xff, 0xff, 0xff}, 232},
		{color.RGBA{0xff, 0, 0, 0xff}, 197},
		{color.RGBA{0, 0, 0xff, 0xff}, 22},
	} {
		assert.Equal(t, tc.attr, termColor(tc.c), "%v", tc.c)
	}
}

func TestRing(t *testing.T) {
	pts := ring(5.5, 5.5, 2)
	assert.NotEmpty(t, pts)
	for _, pt := range pts {
		d := vec.V(float64(pt.X)+0.5, float64(pt.Y)+0.5).Dist(vec.V(5.5, 5.5))
		assert.InDelta(t, 2, d, 1.5, "%v", pt)
	}
}

func TestTermClient(t *testing.T) {
	defer grid.SetDebug(grid.Debug())
	grid.SetDebug(false)

	opts := testOptions(t)
	v := &view.View{}
	tc, err := newTermClient(v, opts.cfg, opts.seed, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "duel", tc.inst.Name)
	assert.Len(t, tc.cfgs, len(scenario.Names()))

	count := func(g view.Grid, ch rune) (n int) {
		for _, c := range g.Data {
			if c.Ch == ch {
				n++
			}
		}
		return n
	}

	require.NoError(t, tc.Tick())
	g := view.MakeGrid(point.Pt(120, 110))
	require.NoError(t, tc.Render(g))
	assert.True(t, strings.HasPrefix(g.Lines(' ')[0], "duel t=1"))
	assert.Equal(t, 0, count(tc.world, markerGlyph))
	assert.True(t, count(tc.world, agentGlyph) > 0)

	require.NoError(t, tc.HandleKey(view.KeyEvent{Ch: 'd'}))
	assert.True(t, grid.Debug())
	require.NoError(t, tc.HandleKey(view.KeyEvent{Ch: '.'}))
	assert.Equal(t, 2, tc.inst.Grid.Tick())
	require.NoError(t, tc.Render(g))
	assert.True(t, count(tc.world, markerGlyph) > 0)
	assert.True(t, count(tc.world, ringGlyph) > 0)

	require.NoError(t, tc.HandleKey(view.KeyEvent{Key: termbox.KeySpace}))
	assert.True(t, v.Paused)

	old := tc.inst
	require.NoError(t, tc.HandleKey(view.KeyEvent{Ch: 'n'}))
	assert.True(t, old.Grid.Cleared())
	assert.NotEqual(t, "duel", tc.inst.Name)
	assert.Equal(t, 0, tc.inst.Grid.Tick())

	assert.Equal(t, view.ErrStop, tc.HandleKey(view.KeyEvent{Ch: 'q'}))
	assert.Equal(t, view.ErrStop, tc.HandleKey(view.KeyEvent{Key: termbox.KeyEsc}))
	assert.Contains(t, strings.Join(tc.logs.Buffer, "\n"), "debug=true")
	require.NoError(t, tc.Close())
}
