package vec_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/borkshop/markerfield/internal/vec"
)

func TestVec_arith(t *testing.T) {
	a, b := V(3, 4), V(1, -2)
	assert.Equal(t, V(4, 2), a.Add(b))
	assert.Equal(t, V(2, 6), a.Sub(b))
	assert.Equal(t, V(6, 8), a.Scale(2))
	assert.Equal(t, V(1.5, 2), a.Div(2))
	assert.Equal(t, -5.0, a.Dot(b))
	assert.Equal(t, 25.0, a.MagSq())
	assert.Equal(t, 5.0, a.Mag())
	assert.Equal(t, 5.0, Zero.Dist(a))
	assert.Equal(t, V(3, 4), a, "receivers are copies")
}

func TestVec_ClampMag(t *testing.T) {
	for _, tc := range []struct {
		name     string
		in       Vec
		min, max float64
		expected float64
	}{
		{"inside", V(0.3, 0.4), 0.01, 1, 0.5},
		{"below floor", V(0.003, 0.004), 0.01, 1, 0.01},
		{"above ceiling", V(30, 40), 0.01, 1, 1},
		{"zero stays zero", Zero, 0.01, 1, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := tc.in.ClampMag(tc.min, tc.max)
			assert.InDelta(t, tc.expected, out.Mag(), 1e-12)
			if !tc.in.IsZero() {
				in, got := tc.in.Div(tc.in.Mag()), out.Div(out.Mag())
				assert.InDelta(t, in.X, got.X, 1e-12, "direction preserved")
				assert.InDelta(t, in.Y, got.Y, 1e-12, "direction preserved")
			}
		})
	}
}

func TestAngle(t *testing.T) {
	for _, tc := range []struct {
		name     string
		a, b     Vec
		expected float64
	}{
		{"same", V(1, 0), V(5, 0), 0},
		{"right", V(1, 0), V(0, 2), math.Pi / 2},
		{"opposite", V(1, 0), V(-1, 0), math.Pi},
		{"zero a", Zero, V(1, 1), 0},
		{"zero b", V(1, 1), Zero, 0},
		{"nearly parallel", V(1e8, 1), V(1e8, 1), 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Angle(tc.a, tc.b), 1e-9)
		})
	}
}

func TestVec_cells(t *testing.T) {
	x, y := V(-0.5, 2.9).Floor()
	assert.Equal(t, []int{-1, 2}, []int{x, y})
	x, y = V(-0.5, 2.9).Trunc()
	assert.Equal(t, []int{0, 2}, []int{x, y})
}

func TestVec_json(t *testing.T) {
	b, err := json.Marshal(V(1.5, -2))
	require.NoError(t, err)
	assert.Equal(t, "[1.5000,-2.0000]", string(b))

	var v Vec
	require.NoError(t, json.Unmarshal([]byte("[3, 4.25]"), &v))
	assert.Equal(t, V(3, 4.25), v)
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &v))
}
