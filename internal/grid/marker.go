package grid

import (
	"image/color"
	"math"
	"math/rand"
	"sort"

	"github.com/borkshop/markerfield/internal/palette"
	"github.com/borkshop/markerfield/internal/point"
	"github.com/borkshop/markerfield/internal/vec"
)

// UnclaimedColor is the display color of a marker nobody claimed this tick.
var UnclaimedColor = palette.Unclaimed

// Marker is a static sensor point occupying one grid cell.
type Marker struct {
	cell point.Point
	pos  vec.Vec

	claimDist float64
	claimedBy AgentID
	color     color.RGBA
}

// Cell returns the marker's grid cell.
func (m *Marker) Cell() point.Point { return m.cell }

// Pos returns the marker's position; its cell coordinates in continuous space.
func (m *Marker) Pos() vec.Vec { return m.pos }

// ClaimDistance returns the distance to the current claimant, or +Inf.
func (m *Marker) ClaimDistance() float64 { return m.claimDist }

// ClaimedBy returns the agent holding the marker this tick, or NoAgent.
func (m *Marker) ClaimedBy() AgentID { return m.claimedBy }

// Color returns the color assigned by the last Recolor.
func (m *Marker) Color() color.RGBA { return m.color }

func (m *Marker) reset() {
	m.claimDist = math.Inf(1)
	m.claimedBy = NoAgent
}

// Get returns the marker at cell (x, y), clamped into bounds, or nil if that
// cell is unoccupied.
func (g *Grid) Get(x, y int) *Marker {
	if g.cleared {
		return nil
	}
	pt := g.bounds.Clamp(point.Pt(x, y))
	return g.cells[g.bounds.Index(pt)]
}

// Markers returns the occupied markers in cell index order; the slice is
// owned by the grid.
func (g *Grid) Markers() []*Marker { return g.markers }

// Claimed returns how many markers were claimed during the last tick.
func (g *Grid) Claimed() int { return g.claimed }

// PlaceMarker puts a marker on cell (x, y), returning it; an occupied cell
// keeps its existing marker. It panics if the cell is out of bounds.
func (g *Grid) PlaceMarker(x, y int) *Marker {
	g.mustBuild()
	pt := point.Pt(x, y)
	if !g.bounds.Contains(pt) {
		panic("marker cell out of bounds")
	}
	i := g.bounds.Index(pt)
	if m := g.cells[i]; m != nil {
		return m
	}
	m := &Marker{
		cell:  pt,
		pos:   vec.V(float64(x), float64(y)),
		color: UnclaimedColor,
	}
	m.reset()
	g.cells[i] = m

	j := sort.Search(len(g.markers), func(j int) bool {
		return g.bounds.Index(g.markers[j].cell) > i
	})
	g.markers = append(g.markers, nil)
	copy(g.markers[j+1:], g.markers[j:])
	g.markers[j] = m
	return m
}

// GenerateMarkers places up to count markers on distinct, uniformly random,
// unoccupied cells; it returns how many were placed.
func (g *Grid) GenerateMarkers(rng *rand.Rand, count int) int {
	g.mustBuild()
	free := make([]int, 0, len(g.cells)-len(g.markers))
	for i, m := range g.cells {
		if m == nil {
			free = append(free, i)
		}
	}
	if count > len(free) {
		count = len(free)
	}
	for n := 0; n < count; n++ {
		k := n + rng.Intn(len(free)-n)
		free[n], free[k] = free[k], free[n]
		pt := g.bounds.Point(free[n])
		g.PlaceMarker(pt.X, pt.Y)
	}
	return count
}

// ResetClaims forgets every claim, on markers and agents alike, ahead of
// ResolveClaims.
func (g *Grid) ResetClaims() {
	for _, m := range g.markers {
		m.reset()
	}
	for _, a := range g.agents {
		a.claimed = a.claimed[:0]
	}
	g.claimed = 0
}

// Recolor assigns each marker its claimant's class color, or UnclaimedColor.
func (g *Grid) Recolor() {
	for _, m := range g.markers {
		if a := g.Agent(m.claimedBy); a != nil {
			m.color = a.class.color
		} else {
			m.color = UnclaimedColor
		}
	}
}
