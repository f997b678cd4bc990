package point

import "github.com/borkshop/markerfield/internal/moremath"

// Bx is a convenience constructor for Box.
func Bx(tlx, tly int, brx, bry int) Box {
	return Box{Point{tlx, tly}, Point{brx, bry}}
}

// Sized returns the box covering a w-by-h grid anchored at the origin.
func Sized(w, h int) Box {
	return Bx(0, 0, w-1, h-1)
}

// Box represents an inclusive range of cells, from its top-left corner to its
// bottom-right corner.
type Box struct {
	TopLeft     Point
	BottomRight Point
}

// Empty returns true if the box covers no cells.
func (b Box) Empty() bool {
	return b.BottomRight.X < b.TopLeft.X || b.BottomRight.Y < b.TopLeft.Y
}

// Size returns the number of columns and rows covered by the box.
func (b Box) Size() Point {
	if b.Empty() {
		return Zero
	}
	return b.BottomRight.Sub(b.TopLeft).Add(Pt(1, 1))
}

// Len returns the number of cells covered by the box.
func (b Box) Len() int {
	sz := b.Size()
	return sz.X * sz.Y
}

// Contains returns true if a given point is inside the box.
func (b Box) Contains(pt Point) bool {
	return pt.X >= b.TopLeft.X && pt.X <= b.BottomRight.X &&
		pt.Y >= b.TopLeft.Y && pt.Y <= b.BottomRight.Y
}

// Clamp returns the point in the box nearest to pt.
func (b Box) Clamp(pt Point) Point {
	return Point{
		moremath.ClampInt(pt.X, b.TopLeft.X, b.BottomRight.X),
		moremath.ClampInt(pt.Y, b.TopLeft.Y, b.BottomRight.Y),
	}
}

// Intersect returns the cells covered by both boxes; the result may be Empty.
func (b Box) Intersect(other Box) Box {
	return Box{
		b.TopLeft.Max(other.TopLeft),
		b.BottomRight.Min(other.BottomRight),
	}
}

// Index returns the row-major offset of pt within the box; pt must be
// Contained.
func (b Box) Index(pt Point) int {
	d := pt.Sub(b.TopLeft)
	return d.X + d.Y*(b.BottomRight.X-b.TopLeft.X+1)
}

// Point is the inverse of Index.
func (b Box) Point(i int) Point {
	w := b.BottomRight.X - b.TopLeft.X + 1
	return b.TopLeft.Add(Pt(i%w, i/w))
}
