package boxshade

import (
	"errors"
	"math"

	"github.com/gogpu/boxshade/internal/parallel"
)

// Renderer evaluates the box, line, and circle shaders over pixmap pixels.
//
// Rendering is bounding-box limited: only the rows and columns a primitive
// can touch are visited, and each visited pixel runs the pure shading
// function for its center. Rows are distributed over a worker pool, which
// cannot change the output because no pixel depends on another.
//
// If a GPU accelerator is registered (see RegisterAccelerator), FillElement
// tries it first and transparently falls back to CPU shading when the
// accelerator declines.
//
// A Renderer is safe for concurrent use as long as concurrent calls target
// different pixmaps. Close releases the worker pool.
type Renderer struct {
	pool           *parallel.Pool
	useAccelerator bool
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		pool:           parallel.New(o.workers),
		useAccelerator: o.useAccelerator,
	}
}

// Close shuts down the renderer's worker pool. The renderer must not be
// used afterwards.
func (r *Renderer) Close() {
	r.pool.Close()
}

// shaderPoint maps the center of pixel (px, py) into the y-up shader space:
// x grows rightwards as in the pixmap, y is flipped so the pixmap's bottom
// row sits at y near zero.
func shaderPoint(px, py, height int) Point {
	return Point{
		X: float64(px) + 0.5,
		Y: float64(height) - (float64(py) + 0.5),
	}
}

// clipSpan converts a shader-space interval to a clamped half-open pixel
// span along one axis. flip selects the y axis treatment. One pixel of
// slack on each side keeps conservatively rounded bounds from clipping
// pixel centers that sit exactly on the interval edge.
func clipSpan(lo, hi float64, size int, flip bool) (int, int) {
	if flip {
		lo, hi = float64(size)-hi, float64(size)-lo
	}
	first := int(math.Floor(lo)) - 1
	last := int(math.Ceil(hi)) + 1
	if first < 0 {
		first = 0
	}
	if last > size {
		last = size
	}
	return first, last
}

// FillElement renders a styled rectangle onto the pixmap. Geometry that
// fails Box.Validate is rejected before any pixel is touched.
//
// Border and background pixels overwrite the pixmap; the element shaders
// produce hard edges, and compositing happens inside the background shader
// (image over flat background), not against the destination.
func (r *Renderer) FillElement(pm *Pixmap, b Box, style *Style) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if r.tryAccelerated(pm, b, style) {
		return nil
	}
	r.fillElementCPU(pm, b, style)
	return nil
}

// tryAccelerated offers the element to the registered accelerator. It
// reports whether the accelerator produced the pixels; false means the CPU
// path must run.
func (r *Renderer) tryAccelerated(pm *Pixmap, b Box, style *Style) bool {
	if !r.useAccelerator {
		return false
	}
	a := RegisteredAccelerator()
	if a == nil || !a.CanAccelerate(AccelElement) {
		return false
	}
	target := RenderTarget{
		Data:   pm.Data(),
		Width:  pm.Width(),
		Height: pm.Height(),
		Stride: pm.Width() * 4,
	}
	if err := a.FillElement(target, b, style); err != nil {
		if !errors.Is(err, ErrFallbackToCPU) {
			Logger().Warn("boxshade: accelerator FillElement failed",
				"accelerator", a.Name(), "error", err)
		}
		return false
	}
	if err := a.Flush(target); err != nil {
		if !errors.Is(err, ErrFallbackToCPU) {
			Logger().Warn("boxshade: accelerator flush failed",
				"accelerator", a.Name(), "error", err)
		}
		return false
	}
	return true
}

// fillElementCPU shades every pixel whose center can fall inside the
// margin-inset box.
func (r *Renderer) fillElementCPU(pm *Pixmap, b Box, style *Style) {
	left, right, bottom, top := b.MarginBounds()
	x0, x1 := clipSpan(left, right, pm.Width(), false)
	y0, y1 := clipSpan(bottom, top, pm.Height(), true)

	r.pool.ForRows(y0, y1, func(py int) {
		for px := x0; px < x1; px++ {
			c, ok := ShadeElement(shaderPoint(px, py, pm.Height()), b, style)
			if !ok {
				continue
			}
			pm.SetPixel(px, py, c)
		}
	})
}

// DrawLine renders an antialiased stippled line segment onto the pixmap.
// Partially covered edge pixels blend over the existing pixmap contents.
func (r *Renderer) DrawLine(pm *Pixmap, p0, p1 Point, style *LineStyle) {
	pad := style.Width/2 + antialiasWidth
	x0, x1 := clipSpan(math.Min(p0.X, p1.X)-pad, math.Max(p0.X, p1.X)+pad, pm.Width(), false)
	y0, y1 := clipSpan(math.Min(p0.Y, p1.Y)-pad, math.Max(p0.Y, p1.Y)+pad, pm.Height(), true)

	r.pool.ForRows(y0, y1, func(py int) {
		for px := x0; px < x1; px++ {
			c, ok := ShadeLine(shaderPoint(px, py, pm.Height()), p0, p1, style)
			if !ok {
				continue
			}
			pm.BlendPixel(px, py, c)
		}
	})
}

// DrawLinestrip renders connected line segments with a stipple pattern
// that runs continuously across joints: each segment starts its pattern
// where the previous segment's arc length ended. Fewer than two points
// draw nothing.
func (r *Renderer) DrawLinestrip(pm *Pixmap, points []Point, style *LineStyle) {
	if len(points) < 2 {
		return
	}
	if style.Stipple == nil {
		for i := 0; i < len(points)-1; i++ {
			r.DrawLine(pm, points[i], points[i+1], style)
		}
		return
	}

	offsets := LinestripOffsets(points, style.Stipple.Offset)
	seg := style.Clone()
	for i := 0; i < len(points)-1; i++ {
		seg.Stipple = style.Stipple.WithOffset(offsets[i])
		r.DrawLine(pm, points[i], points[i+1], seg)
	}
}

// DrawCircle renders an antialiased stippled circle outline onto the
// pixmap. Non-positive radii draw nothing.
func (r *Renderer) DrawCircle(pm *Pixmap, center Point, radius float64, style *LineStyle) {
	if radius <= 0 {
		return
	}
	pad := radius + style.Width/2 + antialiasWidth
	x0, x1 := clipSpan(center.X-pad, center.X+pad, pm.Width(), false)
	y0, y1 := clipSpan(center.Y-pad, center.Y+pad, pm.Height(), true)

	r.pool.ForRows(y0, y1, func(py int) {
		for px := x0; px < x1; px++ {
			c, ok := ShadeCircle(shaderPoint(px, py, pm.Height()), center, radius, style)
			if !ok {
				continue
			}
			pm.BlendPixel(px, py, c)
		}
	})
}
