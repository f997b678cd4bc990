package point

// Pt is a convenience constructor for Point.
func Pt(x, y int) Point { return Point{x, y} }

// Point represents a cell in <X,Y> 2-space.
type Point struct{ X, Y int }

// Zero is the origin, the zero value of Point.
var Zero = Point{}

// Equal returns true if both this point's X and Y components equal another's.
func (pt Point) Equal(other Point) bool {
	return pt.X == other.X && pt.Y == other.Y
}

// Min returns a copy of this point with each component the
// minimum of the two points' components.
func (pt Point) Min(other Point) Point {
	if other.X < pt.X {
		pt.X = other.X
	}
	if other.Y < pt.Y {
		pt.Y = other.Y
	}
	return pt
}

// Max returns a copy of this point with each component the
// maximum of the two points' components.
func (pt Point) Max(other Point) Point {
	if other.X > pt.X {
		pt.X = other.X
	}
	if other.Y > pt.Y {
		pt.Y = other.Y
	}
	return pt
}

// Add adds another point's values to a copy of this point, returning the copy.
func (pt Point) Add(other Point) Point {
	pt.X += other.X
	pt.Y += other.Y
	return pt
}

// Sub subtracts another point's values from a copy of this point, returning
// the copy.
func (pt Point) Sub(other Point) Point {
	pt.X -= other.X
	pt.Y -= other.Y
	return pt
}

// Square returns the box of cells within n steps of pt along both axes.
func (pt Point) Square(n int) Box {
	return Bx(pt.X-n, pt.Y-n, pt.X+n, pt.Y+n)
}
