// Package scenario describes simulation setups, as built-in presets or JSON
// files, and builds populated grids from them.
package scenario

import (
	"math"
	"math/rand"
	"sort"

	"github.com/ojrac/opensimplex-go"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/borkshop/markerfield/internal/grid"
	"github.com/borkshop/markerfield/internal/moremath"
	"github.com/borkshop/markerfield/internal/palette"
)

// DefaultNoiseScale is the noise frequency used when a noise scatter config
// leaves NoiseScale unset.
const DefaultNoiseScale = 0.1

// Instance is one built scenario.
type Instance struct {
	ID     uuid.UUID
	Name   string
	Config Config
	Seed   int64
	Grid   *grid.Grid
}

// Build validates cfg and builds a populated grid from it; the same config
// and seed always build the same grid.
func Build(cfg Config, seed int64) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "building scenario")
	}
	rng := rand.New(rand.NewSource(seed))

	g := grid.New(cfg.Width, cfg.Height)
	if cfg.Window > 0 {
		g.Window = cfg.Window
	}
	if cfg.Radius > 0 {
		g.Radius = cfg.Radius
	}

	switch cfg.Scatter {
	case ScatterNoise:
		scale := cfg.NoiseScale
		if scale == 0 {
			scale = DefaultNoiseScale
		}
		scatterNoise(g, rng, opensimplex.NewNormalized(seed), scale, cfg.Markers)
	default:
		g.GenerateMarkers(rng, cfg.Markers)
	}

	for i, cc := range cfg.Classes {
		col := cc.Color.RGBA()
		if cc.Color == (Color{}) {
			col = palette.Class(i)
		}
		g.GenerateAgentClass(rng, cc.ID, cc.Count, cc.Goal, col)
	}

	return &Instance{
		ID:     uuid.NewV4(),
		Name:   cfg.Name,
		Config: cfg,
		Seed:   seed,
		Grid:   g,
	}, nil
}

// Teardown clears the instance's grid.
func (inst *Instance) Teardown() {
	if inst.Grid != nil && !inst.Grid.Cleared() {
		grid.ClearAll(inst.Grid)
	}
}

// scatterNoise places count markers on distinct cells, favoring cells where
// the noise field is dense; it is a weighted sample without replacement.
func scatterNoise(g *grid.Grid, rng *rand.Rand, noise opensimplex.Noise, scale float64, count int) int {
	type keyed struct {
		i   int
		key float64
	}
	bounds := g.Bounds()
	n := bounds.Len()
	cells := make([]keyed, 0, n)
	for i := 0; i < n; i++ {
		pt := bounds.Point(i)
		if g.Get(pt.X, pt.Y) != nil {
			continue
		}
		density := moremath.ClampFloat(noise.Eval2(float64(pt.X)*scale, float64(pt.Y)*scale), 0.01, 1)
		// A-ES keys: u^(1/w), largest keys win.
		cells = append(cells, keyed{i, math.Pow(rng.Float64(), 1/density)})
	}
	sort.Slice(cells, func(a, b int) bool {
		if cells[a].key != cells[b].key {
			return cells[a].key > cells[b].key
		}
		return cells[a].i < cells[b].i
	})
	if count > len(cells) {
		count = len(cells)
	}
	for _, c := range cells[:count] {
		pt := bounds.Point(c.i)
		g.PlaceMarker(pt.X, pt.Y)
	}
	return count
}
