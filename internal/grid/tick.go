package grid

import "github.com/borkshop/markerfield/internal/steer"

// ComputeVelocities replaces every agent's velocity with the goal-weighted
// blend of its claimed markers; agents holding nothing stop.
func (g *Grid) ComputeVelocities() {
	var b steer.Blender
	for _, c := range g.classes {
		for _, a := range c.members {
			b.Start(a.pos, c.goal)
			for _, m := range a.claimed {
				b.Add(m.pos)
			}
			a.vel = b.Velocity()
		}
	}
}

// IntegratePositions moves every agent by its velocity and tells the scene.
func (g *Grid) IntegratePositions() {
	for _, c := range g.classes {
		for _, a := range c.members {
			a.pos = a.pos.Add(a.vel)
			g.scene.Place(a)
		}
	}
}

// UpdateVisibility hands the debug flag to the scene's range indicators and
// marker field.
func (g *Grid) UpdateVisibility() {
	show := Debug()
	for _, c := range g.classes {
		for _, a := range c.members {
			g.scene.ShowRange(a, show)
		}
	}
	g.scene.ShowField(show)
}
