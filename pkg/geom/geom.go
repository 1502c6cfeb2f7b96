// Package geom contains the geometry types shared by layout and views.
//
// Coordinates are integers, measured in terminal cells.
package geom

import "fmt"

// Size is a width and a height.
type Size struct {
	Width, Height int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Point is a position relative to some origin.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by the negation of q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rect is an axis-aligned rectangle.
type Rect struct {
	Origin Point
	Size   Size
}

// R is a shorthand for constructing a Rect.
func R(x, y, w, h int) Rect { return Rect{Point{x, y}, Size{w, h}} }

// MaxX returns the X coordinate just past the right edge.
func (r Rect) MaxX() int { return r.Origin.X + r.Size.Width }

// MaxY returns the Y coordinate just past the bottom edge.
func (r Rect) MaxY() int { return r.Origin.Y + r.Size.Height }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Size.Width <= 0 || r.Size.Height <= 0 }

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect { return Rect{r.Origin.Add(p), r.Size} }

// Union returns the smallest rectangle containing both r and s. An empty
// rectangle does not contribute to the union.
func (r Rect) Union(s Rect) Rect {
	switch {
	case r.Empty():
		return s
	case s.Empty():
		return r
	}
	x0, y0 := min(r.Origin.X, s.Origin.X), min(r.Origin.Y, s.Origin.Y)
	x1, y1 := max(r.MaxX(), s.MaxX()), max(r.MaxY(), s.MaxY())
	return R(x0, y0, x1-x0, y1-y0)
}

// Intersect returns the intersection of r and s. If they do not overlap, the
// result is empty.
func (r Rect) Intersect(s Rect) Rect {
	x0, y0 := max(r.Origin.X, s.Origin.X), max(r.Origin.Y, s.Origin.Y)
	x1, y1 := min(r.MaxX(), s.MaxX()), min(r.MaxY(), s.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return R(x0, y0, x1-x0, y1-y0)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %s)", r.Origin.X, r.Origin.Y, r.Size)
}

// Unconstrained is the value of an axis of Constraint that has no upper limit.
const Unconstrained = -1

// Constraint bounds the size an element may take during measurement. Either
// axis may be Unconstrained.
type Constraint struct {
	MaxWidth, MaxHeight int
}

// Within returns a Constraint bounded by the given size.
func Within(s Size) Constraint { return Constraint{s.Width, s.Height} }

// Clamp returns s reduced to fit the constraint.
func (c Constraint) Clamp(s Size) Size {
	if c.MaxWidth != Unconstrained && s.Width > c.MaxWidth {
		s.Width = c.MaxWidth
	}
	if c.MaxHeight != Unconstrained && s.Height > c.MaxHeight {
		s.Height = c.MaxHeight
	}
	return s
}
