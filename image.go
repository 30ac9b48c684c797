package boxshade

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ImageSource supplies colors for an element's content area. SampleUV is
// called per background pixel with normalized coordinates; u runs left to
// right and v top to bottom. Implementations must return transparent black
// outside [0,1]² and must be safe for concurrent use: the renderer samples
// from multiple goroutines.
type ImageSource interface {
	SampleUV(u, v float64) RGBA
}

// Scaler selects the x/image interpolator used when resampling an image
// into its content-area resolution.
type Scaler int

const (
	// ScaleBiLinear uses bilinear interpolation. Good default for UI images.
	ScaleBiLinear Scaler = iota
	// ScaleCatmullRom uses Catmull-Rom interpolation. Sharper, slower.
	ScaleCatmullRom
	// ScaleNearest uses nearest-neighbor sampling. For pixel art.
	ScaleNearest
)

func (s Scaler) kernel() xdraw.Scaler {
	switch s {
	case ScaleCatmullRom:
		return xdraw.CatmullRom
	case ScaleNearest:
		return xdraw.NearestNeighbor
	}
	return xdraw.BiLinear
}

// imageSource samples from an RGBA raster prescaled to the content
// resolution, so the per-pixel path is a plain array lookup.
type imageSource struct {
	pix  *image.NRGBA
	w, h int
}

// NewImageSource wraps an image for use as an element's content fill. The
// image is resampled once, at construction, to width x height pixels (the
// content rectangle's resolution) with the given scaler; SampleUV then maps
// each UV to the nearest prescaled pixel.
//
// Returns nil for empty images or non-positive dimensions.
func NewImageSource(img image.Image, width, height int, scaler Scaler) ImageSource {
	if img == nil || width <= 0 || height <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	scaler.kernel().Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return &imageSource{pix: dst, w: width, h: height}
}

// SampleUV returns the prescaled pixel under (u, v), or transparent black
// outside [0,1]².
func (s *imageSource) SampleUV(u, v float64) RGBA {
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return Transparent
	}
	x := int(u * float64(s.w))
	y := int(v * float64(s.h))
	if x >= s.w {
		x = s.w - 1
	}
	if y >= s.h {
		y = s.h - 1
	}
	i := s.pix.PixOffset(x, y)
	p := s.pix.Pix[i : i+4 : i+4]
	return RGBA{
		R: float64(p[0]) / 255,
		G: float64(p[1]) / 255,
		B: float64(p[2]) / 255,
		A: float64(p[3]) / 255,
	}
}

// SolidSource is an ImageSource that returns one color everywhere inside
// [0,1]². Useful in tests and for tinted content areas.
type SolidSource RGBA

// SampleUV implements ImageSource.
func (s SolidSource) SampleUV(u, v float64) RGBA {
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return Transparent
	}
	return RGBA(s)
}
