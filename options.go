package boxshade

// RendererOption configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Default: GOMAXPROCS workers, accelerator enabled when registered
//	r := boxshade.NewRenderer()
//
//	// Single-threaded, CPU only
//	r := boxshade.NewRenderer(boxshade.WithWorkers(1), boxshade.WithoutAccelerator())
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	workers        int
	useAccelerator bool
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		workers:        0, // 0 means GOMAXPROCS
		useAccelerator: true,
	}
}

// WithWorkers sets the number of worker goroutines used for CPU shading.
// Zero or negative selects GOMAXPROCS. One worker gives strictly sequential
// rendering, useful for deterministic profiling.
//
// Worker count never changes the output: every pixel is a pure function of
// its coordinates, so any worker count produces identical pixels.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithoutAccelerator forces CPU shading even when an accelerator is
// registered. Useful for comparing GPU output against the reference CPU
// path in tests.
func WithoutAccelerator() RendererOption {
	return func(o *rendererOptions) {
		o.useAccelerator = false
	}
}
