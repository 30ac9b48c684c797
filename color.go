package boxshade

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Alpha is straight, not
// premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// color.Color returns alpha-premultiplied components.
	return RGBA{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: float64(a) / 65535,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// New creates a color from RGBA components.
func New(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Over composites c over dst using the standard "over" operator on straight
// alpha colors:
//
//	aOut   = aSrc + aDst*(1-aSrc)
//	rgbOut = (rgbSrc*aSrc + rgbDst*aDst*(1-aSrc)) / aOut
//
// When both alphas are zero the result is fully transparent black rather
// than NaN.
func (c RGBA) Over(dst RGBA) RGBA {
	inv := 1 - c.A
	a := c.A + dst.A*inv
	if a == 0 {
		return Transparent
	}
	return RGBA{
		R: (c.R*c.A + dst.R*dst.A*inv) / a,
		G: (c.G*c.A + dst.G*dst.A*inv) / a,
		B: (c.B*c.A + dst.B*dst.A*inv) / a,
		A: a,
	}
}

// Premultiply returns a premultiplied color.
func (c RGBA) Premultiply() RGBA {
	return RGBA{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Lerp performs linear interpolation between two colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA{}
)
