package grid

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/borkshop/markerfield/internal/vec"
)

// AgentID refers to an agent within its Grid; the 0 value means "no agent".
// Markers hold claims by id, never by ownership.
type AgentID int

// NoAgent is the claimant of an unclaimed marker.
const NoAgent AgentID = 0

// Agent is one simulated entity.
type Agent struct {
	id     AgentID
	class  *Class
	pos    vec.Vec
	vel    vec.Vec
	radius float64

	claimed []*Marker
}

// ID returns the agent's grid-unique id.
func (a *Agent) ID() AgentID { return a.id }

// Class returns the cohort the agent belongs to.
func (a *Agent) Class() *Class { return a.class }

// Pos returns the agent's current position.
func (a *Agent) Pos() vec.Vec { return a.pos }

// Vel returns the velocity computed during the last tick.
func (a *Agent) Vel() vec.Vec { return a.vel }

// Radius returns the agent's maximum claim range.
func (a *Agent) Radius() float64 { return a.radius }

// Claimed returns the markers the agent holds this tick, in cell index order;
// the slice is rebuilt every tick.
func (a *Agent) Claimed() []*Marker { return a.claimed }

func (a *Agent) String() string {
	return fmt.Sprintf("%s#%d@%v", a.class.id, a.id, a.pos)
}

// Class is a named cohort of agents sharing a goal and a color. Member order
// is claim priority: earlier members win distance ties.
type Class struct {
	id      string
	goal    vec.Vec
	color   color.RGBA
	members []*Agent
}

// ID returns the class name.
func (c *Class) ID() string { return c.id }

// Goal returns the point every member steers toward.
func (c *Class) Goal() vec.Vec { return c.goal }

// Color returns the display color shared by the members.
func (c *Class) Color() color.RGBA { return c.color }

// Members returns the agents in registration order.
func (c *Class) Members() []*Agent { return c.members }

// Classes returns the agent classes in registration order.
func (g *Grid) Classes() []*Class { return g.classes }

// Class returns the named class, or nil.
func (g *Grid) Class(id string) *Class {
	for _, c := range g.classes {
		if c.id == id {
			return c
		}
	}
	return nil
}

// Agent resolves an agent id, returning nil for NoAgent or a stale id.
func (g *Grid) Agent(id AgentID) *Agent {
	if i := int(id) - 1; i >= 0 && i < len(g.agents) {
		return g.agents[i]
	}
	return nil
}

// Agents returns every agent in claim priority order: classes in
// registration order, members in registration order within each class.
func (g *Grid) Agents() []*Agent {
	as := make([]*Agent, 0, len(g.agents))
	for _, c := range g.classes {
		as = append(as, c.members...)
	}
	return as
}

// AddClass registers a new, empty class; it panics if the id is taken.
func (g *Grid) AddClass(id string, goal vec.Vec, col color.RGBA) *Class {
	g.mustBuild()
	if g.Class(id) != nil {
		panic(fmt.Sprintf("duplicate agent class %q", id))
	}
	c := &Class{id: id, goal: goal, color: col}
	g.classes = append(g.classes, c)
	return c
}

// AddAgent appends an agent to the named class; it panics if there is no such
// class.
func (g *Grid) AddAgent(classID string, pos vec.Vec, radius float64) *Agent {
	g.mustBuild()
	c := g.Class(classID)
	if c == nil {
		panic(fmt.Sprintf("no agent class %q", classID))
	}
	a := &Agent{
		id:     AgentID(len(g.agents) + 1),
		class:  c,
		pos:    pos,
		radius: radius,
	}
	g.agents = append(g.agents, a)
	c.members = append(c.members, a)
	return a
}

// GenerateAgentClass registers a class of count agents placed uniformly at
// random within the grid, all with the grid's Radius.
func (g *Grid) GenerateAgentClass(rng *rand.Rand, id string, count int, goal vec.Vec, col color.RGBA) *Class {
	c := g.AddClass(id, goal, col)
	for i := 0; i < count; i++ {
		g.AddAgent(id, vec.V(
			rng.Float64()*float64(g.width),
			rng.Float64()*float64(g.height),
		), g.Radius)
	}
	return c
}
