// Package engine implements the cutting-layout optimization: 2D rectangle
// packing of part lists onto fixed-size stock sheets.
package engine

// Rectangle is one unit piece to place, already expanded from a part's
// quantity. It is immutable during a run.
type Rectangle struct {
	ID          string
	Name        string
	Width       float64 // mm
	Height      float64 // mm
	MaterialRef string
	Priority    int  // tie-break hint, higher first
	Rotatable   bool // false fixes grain direction
}

// Area returns the rectangle area in mm².
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

// FitsIn reports whether the rectangle fits a container of the given size
// in at least one allowed orientation.
func (r Rectangle) FitsIn(containerWidth, containerHeight float64) bool {
	if r.Width <= containerWidth && r.Height <= containerHeight {
		return true
	}
	return r.Rotatable && r.Height <= containerWidth && r.Width <= containerHeight
}

// PlacedRectangle binds a Rectangle to a position on a sheet. X and Y are
// the lower-left corner in sheet coordinates.
type PlacedRectangle struct {
	Rect    Rectangle
	X       float64
	Y       float64
	Rotated bool
}

// Width returns the effective width considering rotation.
func (p PlacedRectangle) Width() float64 {
	if p.Rotated {
		return p.Rect.Height
	}
	return p.Rect.Width
}

// Height returns the effective height considering rotation.
func (p PlacedRectangle) Height() float64 {
	if p.Rotated {
		return p.Rect.Width
	}
	return p.Rect.Height
}

// Right returns the x coordinate of the right edge.
func (p PlacedRectangle) Right() float64 {
	return p.X + p.Width()
}

// Top returns the y coordinate of the top edge.
func (p PlacedRectangle) Top() float64 {
	return p.Y + p.Height()
}

// Overlaps reports whether the interiors of two placed rectangles
// intersect. Touching edges do not count as overlap.
func (p PlacedRectangle) Overlaps(other PlacedRectangle) bool {
	return !(p.Right() <= other.X+placeEpsilon ||
		other.Right() <= p.X+placeEpsilon ||
		p.Top() <= other.Y+placeEpsilon ||
		other.Top() <= p.Y+placeEpsilon)
}
