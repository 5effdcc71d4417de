package diagram

// Position is a pixel coordinate on the drawing surface, origin top left.
type Position struct {
	X, Y int
}

// Size is the extent of a rendered element in pixels.
type Size struct {
	Width, Height int
}

// BoundingBox is the half-open rectangle [x, x+w) x [y, y+h) an element
// occupies after layout.
type BoundingBox struct {
	x, y int
	w, h int
}

// NewBoundingBox creates a box with its top-left corner at (x, y)
func NewBoundingBox(x, y, width, height int) BoundingBox {
	return BoundingBox{x: x, y: y, w: width, h: height}
}

// Contains reports whether p falls inside the box. The right and bottom
// edges are exclusive, so adjacent boxes never share a pixel.
func (bb BoundingBox) Contains(p Position) bool {
	return bb.x <= p.X && p.X < bb.Right() && bb.y <= p.Y && p.Y < bb.Bottom()
}

// Left returns the x coordinate of the left edge
func (bb BoundingBox) Left() int { return bb.x }

// Top returns the y coordinate of the top edge
func (bb BoundingBox) Top() int { return bb.y }

// Right returns the first x coordinate past the right edge
func (bb BoundingBox) Right() int { return bb.x + bb.w }

// Bottom returns the first y coordinate past the bottom edge
func (bb BoundingBox) Bottom() int { return bb.y + bb.h }

// Size returns the width and height of the box.
func (bb BoundingBox) Size() Size { return Size{Width: bb.w, Height: bb.h} }

// IsEmpty reports whether the box covers no pixels
func (bb BoundingBox) IsEmpty() bool { return bb.w <= 0 || bb.h <= 0 }
