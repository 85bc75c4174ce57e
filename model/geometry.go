package model

// BBox represents a bounding box in PDF coordinates (origin bottom-left,
// Y grows upward). X0/Y0 is the lower-left corner, X1/Y1 the upper-right.
type BBox struct {
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

// NewBBox creates a bounding box from two corners.
func NewBBox(x0, y0, x1, y1 float64) BBox {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// CenterX returns the horizontal center of the box.
func (b BBox) CenterX() float64 {
	return (b.X0 + b.X1) / 2
}

// Top returns the top edge Y coordinate (the larger Y).
func (b BBox) Top() float64 {
	return b.Y1
}

// Bottom returns the bottom edge Y coordinate (the smaller Y).
func (b BBox) Bottom() float64 {
	return b.Y0
}

// Union returns the smallest box covering both b and other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0: minFloat(b.X0, other.X0),
		Y0: minFloat(b.Y0, other.Y0),
		X1: maxFloat(b.X1, other.X1),
		Y1: maxFloat(b.Y1, other.Y1),
	}
}

// PageDim holds the dimensions of a single page in points.
type PageDim struct {
	Width  float64
	Height float64
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
