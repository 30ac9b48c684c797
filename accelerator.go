package boxshade

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the accelerator cannot handle this operation.
// The caller should transparently fall back to CPU shading.
var ErrFallbackToCPU = errors.New("boxshade: falling back to CPU rendering")

// AcceleratedOp describes operation types for accelerator capability
// checking.
type AcceleratedOp uint32

const (
	// AccelElement represents styled-rectangle (box model) rendering.
	AccelElement AcceleratedOp = 1 << iota

	// AccelLine represents stippled line rendering.
	AccelLine

	// AccelCircle represents stippled circle rendering.
	AccelCircle
)

// RenderTarget provides pixel buffer access for accelerator output.
// The Data slice must be in straight-alpha RGBA format, 4 bytes per pixel,
// laid out row by row with the given Stride.
type RenderTarget struct {
	Data          []uint8
	Width, Height int
	Stride        int // bytes per row
}

// Accelerator is an optional GPU acceleration provider.
//
// When registered via RegisterAccelerator, the Renderer tries the
// accelerator first for supported operations. If the accelerator returns
// ErrFallbackToCPU or any error, rendering transparently falls back to CPU.
//
// Implementations are provided by backend packages; users opt in via blank
// import:
//
//	import _ "github.com/gogpu/boxshade/gpu" // enables GPU acceleration
type Accelerator interface {
	// Name returns the accelerator name (e.g., "element-gpu").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// CanAccelerate reports whether the accelerator supports the given
	// operation. This is a fast check used to skip the GPU entirely for
	// unsupported operations.
	CanAccelerate(op AcceleratedOp) bool

	// FillElement renders a styled rectangle to the target. Batch-capable
	// accelerators may accumulate elements and dispatch them on Flush.
	// Returns ErrFallbackToCPU if the element cannot be accelerated
	// (e.g., styles with an image fill).
	FillElement(target RenderTarget, box Box, style *Style) error

	// Flush dispatches any pending GPU operations to the target pixel
	// buffer. Immediate-mode accelerators return nil.
	Flush(target RenderTarget) error
}

// DeviceProviderAware is an optional interface for accelerators that can
// share GPU resources with an external provider (e.g., a gogpu window).
// When SetDeviceProvider is called, the accelerator reuses the provided
// device instead of creating its own.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   Accelerator
)

// RegisterAccelerator registers an accelerator for optional GPU rendering.
//
// Only one accelerator can be registered; subsequent calls replace the
// previous one. The accelerator's Init() method is called during
// registration, and if it fails the accelerator is not registered and the
// error is returned.
//
// Typical usage via blank import in backend packages:
//
//	func init() {
//	    boxshade.RegisterAccelerator(newElementAccelerator())
//	}
func RegisterAccelerator(a Accelerator) error {
	if a == nil {
		return errors.New("boxshade: accelerator must not be nil")
	}
	propagateLogger(a, Logger())
	if err := a.Init(); err != nil {
		return err
	}
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// RegisteredAccelerator returns the currently registered accelerator, or
// nil if none.
func RegisteredAccelerator() Accelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}

// SetAcceleratorDeviceProvider passes a device provider to the registered
// accelerator, enabling GPU device sharing. If no accelerator is registered
// or it doesn't support device sharing, this is a no-op.
//
// The provider should implement HalDevice() any and HalQueue() any methods
// that return wgpu/hal types.
func SetAcceleratorDeviceProvider(provider any) error {
	a := RegisteredAccelerator()
	if a == nil {
		return nil
	}
	if dpa, ok := a.(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
