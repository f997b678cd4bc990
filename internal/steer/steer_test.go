package steer_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borkshop/markerfield/internal/steer"
	"github.com/borkshop/markerfield/internal/vec"
)

func velocity(pos, goal vec.Vec, markers ...vec.Vec) vec.Vec {
	var b steer.Blender
	b.Start(pos, goal)
	for _, m := range markers {
		b.Add(m)
	}
	return b.Velocity()
}

func TestWeight(t *testing.T) {
	goal := vec.V(10, 0)
	for _, tc := range []struct {
		name     string
		marker   vec.Vec
		expected float64
	}{
		{"on the agent", vec.Zero, 2},
		{"ahead", vec.V(1, 0), 1},
		{"behind", vec.V(-1, 0), 0},
		{"beside", vec.V(0, 1), 0.5},
		{"far ahead", vec.V(9, 0), 0.2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, steer.Weight(goal, tc.marker), 1e-12)
		})
	}
	assert.InDelta(t, 1.0, steer.Weight(vec.Zero, vec.V(1, 0)), 1e-12, "agent on its goal")
}

func TestWeight_bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		goal := vec.V(rng.Float64()*20-10, rng.Float64()*20-10)
		mark := vec.V(rng.Float64()*10-5, rng.Float64()*10-5)
		w := steer.Weight(goal, mark)
		require.True(t, w > 0 && w <= 2, "weight %v out of (0, 2] for goal %v marker %v", w, goal, mark)
	}
}

func TestVelocity_goalAlignment(t *testing.T) {
	var b steer.Blender
	b.Start(vec.Zero, vec.V(10, 0))
	ahead := b.Add(vec.V(1, 0))
	behind := b.Add(vec.V(-1, 0))
	assert.True(t, ahead > behind)

	v := b.Velocity()
	assert.True(t, v.X > 0, "points toward the goal: %v", v)
	assert.InDelta(t, 0, v.Y, 1e-12)
}

func TestVelocity_idle(t *testing.T) {
	v := velocity(vec.V(3, 3), vec.V(10, 10))
	assert.Equal(t, vec.Zero, v)
	assert.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y))

	// a lone marker dead opposite the goal carries no weight
	v = velocity(vec.Zero, vec.V(10, 0), vec.V(-2, 0))
	assert.Equal(t, vec.Zero, v)
}

func TestVelocity_zeroBlend(t *testing.T) {
	// a marker right under the agent has weight but no offset
	v := velocity(vec.V(4, 4), vec.V(10, 10), vec.V(4, 4))
	assert.Equal(t, vec.Zero, v)
}

func TestVelocity_clamp(t *testing.T) {
	for _, tc := range []struct {
		name     string
		markers  []vec.Vec
		expected float64
	}{
		{"floor", []vec.Vec{vec.V(0.05, 0)}, steer.MinSpeed},
		{"inside", []vec.Vec{vec.V(3, 0)}, 0.3},
		{"ceiling", []vec.Vec{vec.V(40, 0)}, steer.MaxSpeed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v := velocity(vec.Zero, vec.V(100, 0), tc.markers...)
			assert.InDelta(t, tc.expected, v.Mag(), 1e-12)
		})
	}
}

func TestVelocity_speedRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		pos := vec.V(rng.Float64()*100, rng.Float64()*100)
		goal := vec.V(rng.Float64()*100, rng.Float64()*100)
		ms := make([]vec.Vec, 1+rng.Intn(8))
		for j := range ms {
			ms[j] = pos.Add(vec.V(rng.Float64()*6-3, rng.Float64()*6-3))
		}
		v := velocity(pos, goal, ms...)
		if v.IsZero() {
			continue
		}
		s := v.Mag()
		require.True(t, s >= steer.MinSpeed-1e-12 && s <= steer.MaxSpeed+1e-12, "speed %v", s)
	}
}
