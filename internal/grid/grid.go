// Package grid implements the frame-stepped marker claiming simulation: a
// sparse field of static markers, classes of agents steering toward their
// class goal, and the per-tick pipeline that re-assigns every marker to its
// nearest in-range agent before recomputing agent velocities.
//
// A Grid is owned by a single goroutine; only the debug flag (SetDebug) may
// be touched from elsewhere.
package grid

import (
	"fmt"

	"github.com/borkshop/markerfield/internal/ecs"
	"github.com/borkshop/markerfield/internal/point"
)

const (
	// DefaultWindow is the half-width, in cells, of the square scanned around
	// each agent when claiming markers.
	DefaultWindow = 5

	// DefaultRadius is the initial Grid.Radius.
	DefaultRadius = 3.0
)

// Grid owns a Marker Field and the agent classes moving over it.
type Grid struct {
	ecs.System

	// Window is the claim scan half-width; it never grows with agent radius.
	Window int

	// Radius is the claim range given to agents by GenerateAgentClass.
	Radius float64

	width, height int
	bounds        point.Box

	cells   []*Marker // row-major, nil for unoccupied cells
	markers []*Marker // occupied cells in index order

	classes []*Class
	agents  []*Agent // by AgentID-1
	claimed int

	scene   Scene
	tick    int
	cleared bool
}

// New creates an empty width-by-height grid; it panics on a non-positive
// size.
func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid grid size %vx%v", width, height))
	}
	g := &Grid{
		Window: DefaultWindow,
		Radius: DefaultRadius,
		width:  width,
		height: height,
		bounds: point.Sized(width, height),
		cells:  make([]*Marker, width*height),
		scene:  nopScene{},
	}
	g.AddProcFunc(
		g.ResetClaims,
		g.ResolveClaims,
		g.Recolor,
		g.ComputeVelocities,
		g.IntegratePositions,
		g.UpdateVisibility,
	)
	return g
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (width, height int) { return g.width, g.height }

// Bounds returns the box of valid cells.
func (g *Grid) Bounds() point.Box { return g.bounds }

// Tick returns how many times Update has run.
func (g *Grid) Tick() int { return g.tick }

// Cleared returns true once ClearAll has torn the grid down.
func (g *Grid) Cleared() bool { return g.cleared }

// Attach sets the rendering collaborator; nil detaches any prior one.
func (g *Grid) Attach(scene Scene) {
	if scene == nil {
		scene = nopScene{}
	}
	g.scene = scene
}

// Update runs one full tick: reset claims, resolve claims, recolor markers,
// compute velocities, integrate positions, update visibility. Calling it
// twice advances two ticks. A cleared grid ignores Update.
func (g *Grid) Update() { g.Process() }

// Process implements ecs.Proc, see Update.
func (g *Grid) Process() {
	if g.cleared {
		return
	}
	g.System.Process()
	g.tick++
}

// ClearAll releases the grid's scene and discards all of its markers and
// agents; the grid must not be built upon afterwards.
func ClearAll(g *Grid) {
	g.scene.Release()
	g.scene = nopScene{}
	g.cells = nil
	g.markers = nil
	g.classes = nil
	g.agents = nil
	g.claimed = 0
	g.cleared = true
}

func (g *Grid) mustBuild() {
	if g.cleared {
		panic("grid has been cleared")
	}
}
