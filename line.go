package boxshade

// LineStyle holds the colors, width, and stipple pattern of a line or
// circle stroke. Color is used on the stipple's on spans, GapColor on the
// off spans.
type LineStyle struct {
	Color    RGBA
	GapColor RGBA
	Width    float64
	Stipple  *Stipple
}

// NewLineStyle creates a solid LineStyle with the given color and width.
// The gap color defaults to the primary color with alpha zero so dashed
// strokes fade rather than switch hue.
func NewLineStyle(c RGBA, width float64) *LineStyle {
	return &LineStyle{
		Color:    c,
		GapColor: c.WithAlpha(0),
		Width:    width,
	}
}

// Clone creates a copy of the LineStyle, deep-copying the stipple.
func (ls *LineStyle) Clone() *LineStyle {
	c := *ls
	c.Stipple = ls.Stipple.Clone()
	return &c
}

// colorAt picks the stroke color for an arc-length position.
func (ls *LineStyle) colorAt(along float64) RGBA {
	if ls.Stipple.On(along) {
		return ls.Color
	}
	return ls.GapColor
}

// ShadeLine computes the color of one point of an antialiased stippled line
// segment from p0 to p1. The boolean reports visibility: points beyond the
// stroke's antialiased extent are discarded.
//
// Coverage comes from the perpendicular distance to the segment through the
// same smoothstep used by the circle shader; the stipple phase advances
// with the arc length from p0.
func ShadeLine(p, p0, p1 Point, style *LineStyle) (RGBA, bool) {
	dist, along := segmentDistance(p, p0, p1)
	coverage := smoothstepCoverage(dist - style.Width/2)
	if coverage <= 0 {
		return Transparent, false
	}
	c := style.colorAt(along)
	c.A *= coverage
	return c, true
}

// LinestripOffsets returns the stipple offset to use for each segment of a
// linestrip so the pattern runs continuously across joints: segment i starts
// at the initial offset plus the summed lengths of segments 0..i-1.
// The result has len(points)-1 entries; fewer than two points yield nil.
func LinestripOffsets(points []Point, initial float64) []float64 {
	if len(points) < 2 {
		return nil
	}
	offsets := make([]float64, len(points)-1)
	offset := initial
	for i := 0; i < len(points)-1; i++ {
		offsets[i] = offset
		offset += points[i].Distance(points[i+1])
	}
	return offsets
}
