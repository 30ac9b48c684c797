package boxshade

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is returned by Box.Validate for geometry that violates
// the classifier's contract (inverted bounds, negative insets).
var ErrInvalidGeometry = errors.New("boxshade: invalid box geometry")

// Box describes the geometry of one styled rectangle in a y-up screen space
// shared by every box drawn in a frame. The nesting is the CSS box model:
// the outer bounds are inset by the margins to reach the border's outer
// edge, by BorderWidth to reach the padding box, and by the paddings to
// reach the content area.
//
// All fields are in the same units as the points passed to Classify.
// Valid geometry has Left < Right, Bottom < Top and non-negative insets.
type Box struct {
	// Outer bounds.
	Left, Right, Bottom, Top float64

	// Insets from the outer bounds to the border's outer edge.
	MarginLeft, MarginRight, MarginBottom, MarginTop float64

	// BorderWidth is the uniform thickness of the border band on all four
	// sides. BorderRadius rounds the corners, measured from the border's
	// outer edge.
	BorderWidth  float64
	BorderRadius float64

	// Insets from the border's inner edge to the content area. Not consumed
	// by Classify, only by ContentUV.
	PaddingLeft, PaddingRight, PaddingBottom, PaddingTop float64
}

// Validate reports whether the geometry satisfies the classifier's contract.
// Callers should validate (or Clamp) once per box, not per point.
func (b Box) Validate() error {
	if b.Left >= b.Right || b.Bottom >= b.Top {
		return fmt.Errorf("%w: degenerate bounds [%g,%g]x[%g,%g]",
			ErrInvalidGeometry, b.Left, b.Right, b.Bottom, b.Top)
	}
	if b.BorderWidth < 0 || b.BorderRadius < 0 {
		return fmt.Errorf("%w: negative border width %g or radius %g",
			ErrInvalidGeometry, b.BorderWidth, b.BorderRadius)
	}
	if b.MarginLeft < 0 || b.MarginRight < 0 || b.MarginBottom < 0 || b.MarginTop < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidGeometry)
	}
	if b.PaddingLeft < 0 || b.PaddingRight < 0 || b.PaddingBottom < 0 || b.PaddingTop < 0 {
		return fmt.Errorf("%w: negative padding", ErrInvalidGeometry)
	}
	return nil
}

// Clamp returns a copy with all negative insets raised to zero. It does not
// repair degenerate bounds; those still fail Validate.
func (b Box) Clamp() Box {
	b.MarginLeft = math.Max(0, b.MarginLeft)
	b.MarginRight = math.Max(0, b.MarginRight)
	b.MarginBottom = math.Max(0, b.MarginBottom)
	b.MarginTop = math.Max(0, b.MarginTop)
	b.BorderWidth = math.Max(0, b.BorderWidth)
	b.BorderRadius = math.Max(0, b.BorderRadius)
	b.PaddingLeft = math.Max(0, b.PaddingLeft)
	b.PaddingRight = math.Max(0, b.PaddingRight)
	b.PaddingBottom = math.Max(0, b.PaddingBottom)
	b.PaddingTop = math.Max(0, b.PaddingTop)
	return b
}

// SetMargin sets all four margins to the same value.
func (b *Box) SetMargin(m float64) {
	b.MarginLeft, b.MarginRight, b.MarginBottom, b.MarginTop = m, m, m, m
}

// SetPadding sets all four paddings to the same value.
func (b *Box) SetPadding(p float64) {
	b.PaddingLeft, b.PaddingRight, b.PaddingBottom, b.PaddingTop = p, p, p, p
}

// ContentLeft returns the x coordinate of the content area's left edge.
func (b Box) ContentLeft() float64 {
	return b.Left + b.MarginLeft + b.BorderWidth + b.PaddingLeft
}

// ContentRight returns the x coordinate of the content area's right edge.
func (b Box) ContentRight() float64 {
	return b.Right - b.MarginRight - b.BorderWidth - b.PaddingRight
}

// ContentBottom returns the y coordinate of the content area's bottom edge.
func (b Box) ContentBottom() float64 {
	return b.Bottom + b.MarginBottom + b.BorderWidth + b.PaddingBottom
}

// ContentTop returns the y coordinate of the content area's top edge.
func (b Box) ContentTop() float64 {
	return b.Top - b.MarginTop - b.BorderWidth - b.PaddingTop
}

// ContentUV maps a point to normalized texture coordinates within the
// padding-inset content rectangle. u runs left to right; v runs top to
// bottom (v is flipped relative to the y-up shader space so that v=0 is the
// content's top edge, matching the top-left origin of image data).
//
// Coordinates outside [0,1] on either axis mean the point has no texture
// coverage: the caller must skip sampling and use the flat background.
func (b Box) ContentUV(p Point) (u, v float64) {
	w := b.ContentRight() - b.ContentLeft()
	h := b.ContentTop() - b.ContentBottom()
	if w <= 0 || h <= 0 {
		return -1, -1
	}
	u = (p.X - b.ContentLeft()) / w
	v = 1 - (p.Y-b.ContentBottom())/h
	return u, v
}

// MarginBounds returns the rectangle of the margin-inset box (the border's
// outer edge): left, right, bottom, top. Points outside it classify Outside.
func (b Box) MarginBounds() (left, right, bottom, top float64) {
	return b.Left + b.MarginLeft, b.Right - b.MarginRight,
		b.Bottom + b.MarginBottom, b.Top - b.MarginTop
}
