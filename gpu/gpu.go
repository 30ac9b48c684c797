//go:build !nogpu

// Package gpu registers the GPU accelerator for hardware-accelerated
// element shading.
//
// Import this package to enable GPU-based rendering of styled rectangles.
// The accelerator uses wgpu/hal compute shaders for parallel per-pixel
// classification.
//
// If GPU initialization fails (no Vulkan available), the accelerator stays
// registered but declines all work and rendering falls back to CPU.
//
// Usage:
//
//	import _ "github.com/gogpu/boxshade/gpu" // enable GPU acceleration
package gpu

import (
	"github.com/gogpu/boxshade"
	gpuimpl "github.com/gogpu/boxshade/internal/gpu"
	"github.com/gogpu/gpucontext"
)

func init() {
	accel := &gpuimpl.ElementAccelerator{}
	if err := boxshade.RegisterAccelerator(accel); err != nil {
		boxshade.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider configures the GPU accelerator to use a shared GPU
// device from an external provider (e.g., a gogpu application context).
// This avoids creating a separate GPU instance and enables device sharing
// with the host's swapchain.
//
// The provider must also implement HAL access (HalDevice() any and
// HalQueue() any returning wgpu/hal types); providers without it leave the
// accelerator on its own device.
//
// Call this after the blank import has registered the accelerator,
// typically during host application startup.
func SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	return boxshade.SetAcceleratorDeviceProvider(provider)
}
