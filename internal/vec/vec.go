package vec

import (
	"encoding/json"
	"math"
	"strconv"
)

// V is a convenience constructor for Vec.
func V(x, y float64) Vec { return Vec{x, y} }

// Vec represents a point or displacement in continuous <X,Y> 2-space.
type Vec struct{ X, Y float64 }

// Zero is the origin, the zero value of Vec.
var Zero = Vec{}

// Add adds another vector to a copy of this one, returning the copy.
func (v Vec) Add(o Vec) Vec {
	v.X += o.X
	v.Y += o.Y
	return v
}

// Sub subtracts another vector from a copy of this one, returning the copy.
func (v Vec) Sub(o Vec) Vec {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

// Scale multiplies a copy of this vector by a constant, returning the copy.
func (v Vec) Scale(f float64) Vec {
	v.X *= f
	v.Y *= f
	return v
}

// Div divides a copy of this vector by a constant, returning the copy.
func (v Vec) Div(f float64) Vec {
	v.X /= f
	v.Y /= f
	return v
}

// Dot returns the dot product of this vector with another.
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// MagSq returns the squared length.
func (v Vec) MagSq() float64 { return v.X*v.X + v.Y*v.Y }

// Mag returns the length.
func (v Vec) Mag() float64 { return math.Sqrt(v.MagSq()) }

// Dist returns the euclidean distance between two points.
func (v Vec) Dist(o Vec) float64 { return o.Sub(v).Mag() }

// IsZero returns true only for the exact zero vector.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// ClampMag returns a copy whose length lies in [min, max]. A zero vector
// stays zero rather than gaining an arbitrary direction.
func (v Vec) ClampMag(min, max float64) Vec {
	if v.IsZero() {
		return v
	}
	m := v.Mag()
	switch {
	case m < min:
		return v.Scale(min / m)
	case m > max:
		return v.Scale(max / m)
	}
	return v
}

// Angle returns the unsigned angle between two vectors, in [0, π]. When
// either vector has zero length the angle is 0.
func Angle(a, b Vec) float64 {
	ma, mb := a.Mag(), b.Mag()
	if ma == 0 || mb == 0 {
		return 0
	}
	c := a.Dot(b) / (ma * mb)
	// rounding can push |c| a hair past 1
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// Floor returns the integer cell coordinates containing the point.
func (v Vec) Floor() (x, y int) {
	return int(math.Floor(v.X)), int(math.Floor(v.Y))
}

// Trunc returns the point's coordinates truncated toward zero.
func (v Vec) Trunc() (x, y int) { return int(v.X), int(v.Y) }

func (v Vec) String() string {
	return "<" + strconv.FormatFloat(v.X, 'f', 3, 64) + ", " +
		strconv.FormatFloat(v.Y, 'f', 3, 64) + ">"
}

// MarshalJSON encodes the vector as a compact [x, y] pair.
func (v Vec) MarshalJSON() ([]byte, error) {
	b := []byte{'['}
	b = strconv.AppendFloat(b, v.X, 'f', 4, 64)
	b = append(b, ',')
	b = strconv.AppendFloat(b, v.Y, 'f', 4, 64)
	return append(b, ']'), nil
}

// UnmarshalJSON decodes an [x, y] pair.
func (v *Vec) UnmarshalJSON(data []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return err
	}
	v.X, v.Y = xy[0], xy[1]
	return nil
}
