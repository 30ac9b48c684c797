package boxshade

// Style holds the per-draw-call colors of a styled rectangle: one color per
// border edge, a flat background color, and an optional image fill for the
// content area.
type Style struct {
	// Border edge colors, picked by the region classifier.
	BorderTopColor    RGBA
	BorderRightColor  RGBA
	BorderBottomColor RGBA
	BorderLeftColor   RGBA

	// Background is the flat interior color. When Image is set, background
	// pixels inside the content rectangle composite the image over it.
	Background RGBA

	// Image optionally fills the content area. Nil means flat background.
	Image ImageSource
}

// NewStyle creates a Style with a transparent background and no borders.
func NewStyle() *Style {
	return &Style{}
}

// SetBorderColor sets all four border edge colors at once.
func (s *Style) SetBorderColor(c RGBA) {
	s.BorderTopColor = c
	s.BorderRightColor = c
	s.BorderBottomColor = c
	s.BorderLeftColor = c
}

// BorderColor returns the color for a border region. Non-border regions
// return transparent black.
func (s *Style) BorderColor(r Region) RGBA {
	switch r {
	case BorderTop:
		return s.BorderTopColor
	case BorderRight:
		return s.BorderRightColor
	case BorderBottom:
		return s.BorderBottomColor
	case BorderLeft:
		return s.BorderLeftColor
	}
	return Transparent
}

// Clone creates a copy of the Style. The ImageSource is shared, not copied;
// sources are immutable after creation.
func (s *Style) Clone() *Style {
	c := *s
	return &c
}
