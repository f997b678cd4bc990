package frame

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borkshop/markerfield/internal/grid"
	"github.com/borkshop/markerfield/internal/vec"
)

func testGrid() *grid.Grid {
	g := grid.New(6, 4)
	g.PlaceMarker(1, 1)
	g.PlaceMarker(5, 3)
	g.AddClass("red", vec.V(5, 1), color.RGBA{0xff, 0, 0, 0xff})
	g.AddAgent("red", vec.V(1, 2), 2)
	g.Update()
	return g
}

func TestCapture(t *testing.T) {
	g := testGrid()
	f := Capture("abc", "tiny", g)

	assert.Equal(t, "abc", f.ID)
	assert.Equal(t, "tiny", f.Name)
	assert.Equal(t, 1, f.Tick)
	assert.Equal(t, 6, f.Width)
	assert.Equal(t, 4, f.Height)
	assert.Equal(t, 1, f.Claimed)
	assert.Equal(t, []Marker{
		{X: 1, Y: 1, Color: "#ff0000", Agent: 1},
		{X: 5, Y: 3, Color: "#444444"},
	}, f.Markers)

	require.Len(t, f.Agents, 1)
	a := g.Agents()[0]
	assert.Equal(t, Agent{
		ID: 1, Class: "red",
		X: a.Pos().X, Y: a.Pos().Y,
		VX: a.Vel().X, VY: a.Vel().Y,
		Radius: 2, Color: "#ff0000", Claimed: 1,
	}, f.Agents[0])

	data, err := json.Marshal(f)
	require.NoError(t, err)
	var back Frame
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, f, back)
}

func TestCaptureDebug(t *testing.T) {
	defer grid.SetDebug(grid.Debug())
	grid.SetDebug(true)
	assert.True(t, Capture("", "", testGrid()).Debug)
	grid.SetDebug(false)
	assert.False(t, Capture("", "", testGrid()).Debug)
}

func TestGeoJSON(t *testing.T) {
	f := Capture("abc", "tiny", testGrid())
	fc := GeoJSON(f)
	require.Len(t, fc.Features, 3)

	m := fc.Features[0]
	assert.Equal(t, orb.Point{1, 1}, m.Geometry)
	assert.Equal(t, "marker", m.Properties["kind"])
	assert.Equal(t, 1, m.Properties["agent"])
	_, claimed := fc.Features[1].Properties["agent"]
	assert.False(t, claimed)

	a := fc.Features[2]
	assert.Equal(t, "agent", a.Properties["kind"])
	assert.Equal(t, "red", a.Properties["class"])
	assert.Equal(t, orb.Point{f.Agents[0].X, f.Agents[0].Y}, a.Geometry)

	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	back, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, back.Features, 3)
	assert.Equal(t, "tiny", back.ExtraMembers["name"])
}
