package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borkshop/markerfield/internal/palette"
	"github.com/borkshop/markerfield/internal/vec"
)

func TestPresetsValid(t *testing.T) {
	assert.Equal(t, []string{"cross", "duel", "sparse", "swarm"}, Names())
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			cfg, err := Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, cfg.Name)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			cfg, _ := Lookup(name)
			inst, err := Build(cfg, 7)
			require.NoError(t, err)
			g := inst.Grid

			assert.Equal(t, name, inst.Name)
			assert.Len(t, g.Markers(), cfg.Markers)
			require.Len(t, g.Classes(), len(cfg.Classes))
			for i, cc := range cfg.Classes {
				c := g.Classes()[i]
				assert.Equal(t, cc.ID, c.ID())
				assert.Equal(t, cc.Goal, c.Goal())
				assert.Equal(t, cc.Color.RGBA(), c.Color())
				assert.Len(t, c.Members(), cc.Count)
			}
			if cfg.Radius > 0 {
				assert.Equal(t, cfg.Radius, g.Radius)
			}

			inst.Teardown()
			assert.True(t, g.Cleared())
			inst.Teardown()
		})
	}
}

func TestLookup_presetsStayIntact(t *testing.T) {
	cfg, err := Lookup("duel")
	require.NoError(t, err)
	cfg.Classes[0].Count = 999
	cfg.Classes[0].ID = "mine"

	again, err := Lookup("duel")
	require.NoError(t, err)
	assert.Equal(t, "red", again.Classes[0].ID)
	assert.Equal(t, 20, again.Classes[0].Count)
}

func TestBuild_defaultColors(t *testing.T) {
	cfg := Config{
		Name: "plain", Width: 10, Height: 10,
		Classes: []ClassConfig{
			{ID: "a", Count: 1, Goal: vec.V(9, 9)},
			{ID: "b", Count: 1, Goal: vec.V(0, 0)},
			{ID: "c", Count: 1, Goal: vec.V(0, 9), Color: Hex("#123456")},
		},
	}
	inst, err := Build(cfg, 5)
	require.NoError(t, err)
	cs := inst.Grid.Classes()
	assert.Equal(t, palette.Class(0), cs[0].Color())
	assert.Equal(t, palette.Class(1), cs[1].Color())
	assert.Equal(t, Hex("#123456").RGBA(), cs[2].Color())
}

func TestBuildDeterministic(t *testing.T) {
	cfg, _ := Lookup("sparse")
	a, err := Build(cfg, 42)
	require.NoError(t, err)
	b, err := Build(cfg, 42)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	require.Equal(t, len(a.Grid.Markers()), len(b.Grid.Markers()))
	for i, m := range a.Grid.Markers() {
		assert.Equal(t, m.Cell(), b.Grid.Markers()[i].Cell())
	}
	for i, ag := range a.Grid.Agents() {
		assert.Equal(t, ag.Pos(), b.Grid.Agents()[i].Pos())
	}
	for i := 0; i < 5; i++ {
		a.Grid.Update()
		b.Grid.Update()
	}
	for i, ag := range a.Grid.Agents() {
		assert.Equal(t, ag.Pos(), b.Grid.Agents()[i].Pos())
	}
}

func TestBuildWindowRadius(t *testing.T) {
	cfg := Config{
		Name: "tiny", Width: 8, Height: 6, Markers: 100, Window: 2, Radius: 1.5,
		Classes: []ClassConfig{{ID: "a", Count: 3, Goal: vec.V(7, 5), Color: Hex("#ffffff")}},
	}
	inst, err := Build(cfg, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, inst.Grid.Window)
	assert.Len(t, inst.Grid.Markers(), 48, "marker count is capped by cells")
	for _, a := range inst.Grid.Agents() {
		assert.Equal(t, 1.5, a.Radius())
	}
}

func TestValidate(t *testing.T) {
	good := func() Config {
		return Config{
			Name: "t", Width: 10, Height: 10, Markers: 5,
			Classes: []ClassConfig{{ID: "a", Count: 1, Goal: vec.V(9, 9)}},
		}
	}
	for _, tc := range []struct {
		name  string
		mod   func(*Config)
		error string
	}{
		{"ok", func(*Config) {}, ""},
		{"size", func(c *Config) { c.Width = 0 }, "invalid size"},
		{"markers", func(c *Config) { c.Markers = -1 }, "negative marker count"},
		{"scatter", func(c *Config) { c.Scatter = "spiral" }, "unknown scatter"},
		{"radius", func(c *Config) { c.Radius = -1 }, "must not be negative"},
		{"no classes", func(c *Config) { c.Classes = nil }, "no agent classes"},
		{"no id", func(c *Config) { c.Classes[0].ID = "" }, "has no id"},
		{"dup", func(c *Config) { c.Classes = append(c.Classes, c.Classes[0]) }, "duplicate class"},
		{"count", func(c *Config) { c.Classes[0].Count = -2 }, "negative count"},
		{"goal", func(c *Config) { c.Classes[0].Goal = vec.V(10, 0) }, "outside the grid"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := good()
			tc.mod(&cfg)
			err := cfg.Validate()
			if tc.error == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.error)
			}
			_, err = Build(cfg, 0)
			assert.Error(t, err)
		})
	}
}

func TestColor(t *testing.T) {
	c := Hex("#0a80ff")
	assert.Equal(t, uint8(0x0a), c.R)
	assert.Equal(t, uint8(0x80), c.G)
	assert.Equal(t, uint8(0xff), c.B)
	assert.Equal(t, uint8(0xff), c.A)
	assert.Equal(t, "#0a80ff", c.String())

	for _, bad := range []string{"", "0a80ff", "#0a80f", "#zz0000"} {
		var c Color
		assert.Error(t, c.parse(bad), bad)
	}
	assert.Panics(t, func() { Hex("red") })
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`{
		"name": "pair", "width": 20, "height": 10, "markers": 50,
		"scatter": "noise",
		"classes": [{"id": "a", "count": 2, "goal": [19, 0], "color": "#102030"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "pair", cfg.Name)
	assert.Equal(t, ScatterNoise, cfg.Scatter)
	assert.Equal(t, vec.V(19, 0), cfg.Classes[0].Goal)
	assert.Equal(t, Hex("#102030"), cfg.Classes[0].Color)

	_, err = Decode(strings.NewReader(`{"width": 20, "bogus": 1}`))
	assert.Error(t, err)
	_, err = Decode(strings.NewReader(`{"width": 20, "height": 10, "classes": []}`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"width": 5, "height": 5, "markers": 3,
		"classes": [{"id": "a", "count": 1, "goal": [2, 2], "color": "#ffffff"}]
	}`), 0o644))

	cfg, err := Lookup(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", cfg.Name)

	_, err = Lookup(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
	_, err = Lookup("nope")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "duel")
	}
}
