// Package steer turns a set of claimed marker positions into one velocity,
// favoring markers that lie toward the goal and close to the agent.
package steer

import (
	"math"

	"github.com/borkshop/markerfield/internal/vec"
)

const (
	// Damping divides the blended marker offset to get a per-tick velocity.
	Damping = 10

	// MinSpeed and MaxSpeed bound the length of any non-zero velocity.
	MinSpeed = 0.01
	MaxSpeed = 1.0
)

// Weight returns the blend weight of a marker offset relative to a goal
// offset: (1 + cos θ) / (1 + |markerVec|). It lies in [0, 2]; 2 for a marker
// sitting on the agent, 0 only for a marker exactly opposite the goal.
func Weight(goalVec, markerVec vec.Vec) float64 {
	theta := vec.Angle(goalVec, markerVec)
	return (1 + math.Cos(theta)) / (1 + markerVec.Mag())
}

// Blender accumulates weighted marker offsets for one agent.
type Blender struct {
	pos, goalVec vec.Vec
	sum          vec.Vec
	weight       float64
}

// Start resets the blender for an agent at pos heading to goal.
func (b *Blender) Start(pos, goal vec.Vec) {
	*b = Blender{pos: pos, goalVec: goal.Sub(pos)}
}

// Add blends in one marker position, returning its weight.
func (b *Blender) Add(marker vec.Vec) float64 {
	mv := marker.Sub(b.pos)
	w := Weight(b.goalVec, mv)
	b.sum = b.sum.Add(mv.Scale(w))
	b.weight += w
	return w
}

// Velocity returns the blended velocity: the weighted mean offset, damped and
// clamped into [MinSpeed, MaxSpeed]. With no (or only zero weight) markers
// the velocity is zero.
func (b *Blender) Velocity() vec.Vec {
	if b.weight == 0 {
		return vec.Zero
	}
	v := b.sum.Div(b.weight).Div(Damping)
	return v.ClampMag(MinSpeed, MaxSpeed)
}
