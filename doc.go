// Package boxshade provides per-pixel shading of styled UI rectangles and
// antialiased stippled primitives for Go.
//
// # Overview
//
// boxshade reimplements the fragment-shader logic of a CSS-like box model
// (margin, border, padding, background, optional image fill, rounded corners)
// as pure Go functions, plus the companion stippled line and circle shaders.
// The core is a closed-form classifier that maps a screen-space point to a
// semantic region of the box: outside, one of four border edges, or the
// background. Everything is evaluated one point at a time with no shared
// state, so rendering parallelizes trivially.
//
// # Quick Start
//
//	import "github.com/gogpu/boxshade"
//
//	box := boxshade.Box{
//	    Left: 0, Right: 200, Bottom: 0, Top: 100,
//	    BorderWidth: 4, BorderRadius: 12,
//	}
//	style := boxshade.NewStyle()
//	style.Background = boxshade.RGB(0.15, 0.15, 0.18)
//	style.SetBorderColor(boxshade.RGB(0.9, 0.6, 0.1))
//
//	pm := boxshade.NewPixmap(200, 100)
//	r := boxshade.NewRenderer()
//	defer r.Close()
//	r.FillElement(pm, box, style)
//	pm.SavePNG("element.png")
//
// # Coordinate System
//
// Box geometry lives in a y-up screen space (Left < Right, Bottom < Top),
// the convention of GPU fragment shading. Pixmap, like image
// formats, is y-down with the origin at the top-left; Renderer performs the
// flip when mapping pixel centers into shader space.
//
// # Renderers
//
// The default renderer evaluates shaders on the CPU across a worker pool.
// Importing the gpu subpackage registers an optional wgpu-based accelerator:
//
//	import _ "github.com/gogpu/boxshade/gpu" // enable GPU acceleration
//
// Styles with an image fill always take the CPU path; the accelerator
// declines them with ErrFallbackToCPU.
package boxshade
