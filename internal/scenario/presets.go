package scenario

import (
	"sort"

	"github.com/borkshop/markerfield/internal/palette"
	"github.com/borkshop/markerfield/internal/vec"
)

var (
	red    = Color(palette.Red)
	blue   = Color(palette.Blue)
	green  = Color(palette.Green)
	yellow = Color(palette.Yellow)
)

var presets = map[string]Config{
	"duel": {
		Name: "duel", Width: 100, Height: 100, Markers: 3000,
		Classes: []ClassConfig{
			{ID: "red", Count: 20, Goal: vec.V(90, 50), Color: red},
			{ID: "blue", Count: 20, Goal: vec.V(10, 50), Color: blue},
		},
	},
	"cross": {
		Name: "cross", Width: 100, Height: 100, Markers: 3000,
		Classes: []ClassConfig{
			{ID: "east", Count: 15, Goal: vec.V(95, 50), Color: red},
			{ID: "west", Count: 15, Goal: vec.V(5, 50), Color: blue},
			{ID: "north", Count: 15, Goal: vec.V(50, 5), Color: green},
			{ID: "south", Count: 15, Goal: vec.V(50, 95), Color: yellow},
		},
	},
	"swarm": {
		Name: "swarm", Width: 100, Height: 100, Markers: 5000,
		Classes: []ClassConfig{
			{ID: "swarm", Count: 120, Goal: vec.V(50, 50), Color: green},
		},
	},
	"sparse": {
		Name: "sparse", Width: 100, Height: 100, Markers: 1500,
		Scatter: ScatterNoise, NoiseScale: 0.08, Radius: 4,
		Classes: []ClassConfig{
			{ID: "red", Count: 25, Goal: vec.V(80, 80), Color: red},
			{ID: "blue", Count: 25, Goal: vec.V(20, 20), Color: blue},
		},
	},
}

// Names returns the preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
