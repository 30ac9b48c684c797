//go:build !nogpu

// Package gpu implements the wgpu/hal compute backend for styled rectangle
// shading. It is wired up by the public boxshade/gpu package.
package gpu

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unsafe"

	"github.com/gogpu/boxshade"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// ElementAccelerator renders styled rectangles with a wgpu/hal compute
// shader. It implements the boxshade.Accelerator interface.
//
// Elements submitted via FillElement are accumulated into a batch and
// dispatched on Flush() as one command buffer with one compute pass per
// element. This amortizes fence waits and the pixel upload/readback over
// the batch.
//
// Styles with an image fill are declined with ErrFallbackToCPU: image
// sampling stays on the CPU, where the prescaled source lives.
type ElementAccelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	pendingElements []elementData
	pendingTarget   *boxshade.RenderTarget // nil if no pending elements

	gpuReady       bool
	externalDevice bool // true when using shared device (don't destroy on Close)
}

var _ boxshade.Accelerator = (*ElementAccelerator)(nil)

// elementData is the GPU-side element layout: five vec4 colors preceded by
// three vec4s of geometry. Must match struct Element in element.wgsl.
type elementData struct {
	Left, Right, Bottom, Top                         float32
	MarginLeft, MarginRight, MarginBottom, MarginTop float32
	BorderWidth, BorderRadius, pad0, pad1            float32
	ColorTop, ColorRight, ColorBottom, ColorLeft     [4]float32
	Background                                       [4]float32
}

// frameParams is the per-pass uniform. Must match struct Params in
// element.wgsl (16 bytes).
type frameParams struct {
	TargetWidth  uint32
	TargetHeight uint32
	ElementIndex uint32
	pad          uint32
}

func (a *ElementAccelerator) Name() string { return "element-gpu" }

func (a *ElementAccelerator) CanAccelerate(op boxshade.AcceleratedOp) bool {
	return op&boxshade.AccelElement != 0
}

// Init brings up the GPU. Failure is not fatal: the accelerator stays
// registered and declines all work, so rendering falls back to CPU.
func (a *ElementAccelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.initGPU(); err != nil {
		slogger().Warn("element-gpu: GPU init failed, using CPU fallback", "error", err)
	}
	return nil
}

func (a *ElementAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pendingElements = nil
	a.pendingTarget = nil
	a.destroyPipeline()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
			a.device = nil
		}
		if a.instance != nil {
			a.instance.Destroy()
			a.instance = nil
		}
	} else {
		// Shared resources are not ours to destroy.
		a.device = nil
		a.instance = nil
	}
	a.queue = nil
	a.gpuReady = false
	a.externalDevice = false
}

// SetLogger receives the logger propagated from boxshade.SetLogger.
func (a *ElementAccelerator) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// SetDeviceProvider switches the accelerator to use a shared GPU device
// from an external provider (e.g., a gogpu window). The provider must
// implement HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue.
func (a *ElementAccelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("element-gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("element-gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("element-gpu: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.destroyPipeline()
	if !a.externalDevice && a.device != nil {
		a.device.Destroy()
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}

	a.device = device
	a.queue = queue
	a.externalDevice = true

	if err := a.createPipeline(); err != nil {
		a.gpuReady = false
		return fmt.Errorf("element-gpu: create pipeline with shared device: %w", err)
	}
	a.gpuReady = true
	slogger().Info("element-gpu: switched to shared GPU device")
	return nil
}

// FillElement accumulates an element for batch dispatch. The actual GPU
// work happens on Flush().
func (a *ElementAccelerator) FillElement(target boxshade.RenderTarget, box boxshade.Box, style *boxshade.Style) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return boxshade.ErrFallbackToCPU
	}
	if style.Image != nil {
		return boxshade.ErrFallbackToCPU
	}
	// If the target changed, flush the previous batch first.
	if a.pendingTarget != nil && !sameTarget(a.pendingTarget, &target) {
		if err := a.flushLocked(*a.pendingTarget); err != nil {
			return err
		}
	}

	a.pendingElements = append(a.pendingElements, elementData{
		Left: float32(box.Left), Right: float32(box.Right),
		Bottom: float32(box.Bottom), Top: float32(box.Top),
		MarginLeft: float32(box.MarginLeft), MarginRight: float32(box.MarginRight),
		MarginBottom: float32(box.MarginBottom), MarginTop: float32(box.MarginTop),
		BorderWidth: float32(box.BorderWidth), BorderRadius: float32(box.BorderRadius),
		ColorTop:    colorVec(style.BorderTopColor),
		ColorRight:  colorVec(style.BorderRightColor),
		ColorBottom: colorVec(style.BorderBottomColor),
		ColorLeft:   colorVec(style.BorderLeftColor),
		Background:  colorVec(style.Background),
	})
	targetCopy := target
	a.pendingTarget = &targetCopy
	return nil
}

// Flush dispatches all pending elements. Returns nil if there are none.
func (a *ElementAccelerator) Flush(target boxshade.RenderTarget) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flushLocked(target)
}

// PendingCount returns the number of elements waiting for dispatch (for testing).
func (a *ElementAccelerator) PendingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pendingElements)
}

func (a *ElementAccelerator) flushLocked(target boxshade.RenderTarget) error {
	if len(a.pendingElements) == 0 {
		return nil
	}
	n := len(a.pendingElements)
	err := a.dispatchBatch(target)
	a.pendingElements = a.pendingElements[:0]
	a.pendingTarget = nil
	if err != nil {
		slogger().Warn("element-gpu: batch dispatch failed", "elements", n, "error", err)
	}
	return err
}

func colorVec(c boxshade.RGBA) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func sameTarget(a, b *boxshade.RenderTarget) bool {
	return a.Width == b.Width && a.Height == b.Height &&
		len(a.Data) == len(b.Data) && len(a.Data) > 0 && &a.Data[0] == &b.Data[0]
}

// packElementsData serializes all pending elements for GPU upload.
func (a *ElementAccelerator) packElementsData() []byte {
	elemSize := int(unsafe.Sizeof(elementData{}))
	out := make([]byte, elemSize*len(a.pendingElements))
	for i := range a.pendingElements {
		src := structToBytes(unsafe.Pointer(&a.pendingElements[i]), unsafe.Sizeof(a.pendingElements[i])) //nolint:gosec // safe struct access
		copy(out[i*elemSize:], src)
	}
	return out
}

// makeFrameParams returns the 16-byte uniform for a single element index.
func makeFrameParams(w, h, elementIndex uint32) []byte {
	params := frameParams{
		TargetWidth: w, TargetHeight: h,
		ElementIndex: elementIndex,
	}
	return structToBytes(unsafe.Pointer(&params), unsafe.Sizeof(params)) //nolint:gosec // safe struct access
}

// dispatchBatch sends all pending elements to the GPU: one compute pass per
// element in a single command encoder, with implicit storage buffer barriers
// between passes keeping the paint order. One submit + one fence wait for
// the whole batch.
func (a *ElementAccelerator) dispatchBatch(target boxshade.RenderTarget) error {
	w, h := uint32(target.Width), uint32(target.Height) //nolint:gosec // dimensions always fit uint32
	pixelBufSize := pixelBufferSize(w, h)
	elementsBytes := a.packElementsData()
	packedPixels := packPixelsForGPU(target.Data, target.Width*target.Height)
	n := len(a.pendingElements)

	elementsBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "element_data", Size: uint64(len(elementsBytes)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create elements buffer: %w", err)
	}
	defer a.device.DestroyBuffer(elementsBuf)

	storageBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "element_pixels", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create storage buffer: %w", err)
	}
	defer a.device.DestroyBuffer(storageBuf)

	stagingBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "element_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer a.device.DestroyBuffer(stagingBuf)

	a.queue.WriteBuffer(elementsBuf, 0, elementsBytes)
	a.queue.WriteBuffer(storageBuf, 0, packedPixels)

	uniformBufs, bindGroups, err := a.createPerElementBindings(n, w, h, elementsBuf, elementsBytes, storageBuf, pixelBufSize)
	if err != nil {
		a.cleanupBindings(uniformBufs, bindGroups)
		return err
	}
	defer a.cleanupBindings(uniformBufs, bindGroups)

	return a.encodeMultiPass(bindGroups, storageBuf, stagingBuf, w, h, pixelBufSize, target)
}

// createPerElementBindings creates N uniform buffers (one per element with
// its index) and N bind groups sharing the elements and pixels buffers.
func (a *ElementAccelerator) createPerElementBindings(
	n int, w, h uint32,
	elementsBuf hal.Buffer, elementsBytes []byte,
	storageBuf hal.Buffer, pixelBufSize uint64,
) ([]hal.Buffer, []hal.BindGroup, error) {
	paramSize := uint64(unsafe.Sizeof(frameParams{}))
	uniformBufs := make([]hal.Buffer, 0, n)
	bindGroups := make([]hal.BindGroup, 0, n)

	for i := 0; i < n; i++ {
		paramsBytes := makeFrameParams(w, h, uint32(i)) //nolint:gosec // element index fits uint32

		ub, err := a.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "element_params", Size: paramSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("create uniform buffer %d: %w", i, err)
		}
		uniformBufs = append(uniformBufs, ub)
		a.queue.WriteBuffer(ub, 0, paramsBytes)

		bg, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label: "element_bind", Layout: a.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: paramSize}},
				{Binding: 1, Resource: gputypes.BufferBinding{Buffer: elementsBuf.NativeHandle(), Offset: 0, Size: uint64(len(elementsBytes))}},
				{Binding: 2, Resource: gputypes.BufferBinding{Buffer: storageBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
			},
		})
		if err != nil {
			return uniformBufs, bindGroups, fmt.Errorf("create bind group %d: %w", i, err)
		}
		bindGroups = append(bindGroups, bg)
	}

	return uniformBufs, bindGroups, nil
}

// cleanupBindings destroys uniform buffers and bind groups.
func (a *ElementAccelerator) cleanupBindings(uniformBufs []hal.Buffer, bindGroups []hal.BindGroup) {
	for _, bg := range bindGroups {
		if bg != nil {
			a.device.DestroyBindGroup(bg)
		}
	}
	for _, ub := range uniformBufs {
		if ub != nil {
			a.device.DestroyBuffer(ub)
		}
	}
}

// encodeMultiPass records one compute pass per element in a single command
// encoder, copies the result to the staging buffer, submits, waits, and
// reads the pixels back into the target.
func (a *ElementAccelerator) encodeMultiPass(
	bindGroups []hal.BindGroup, storageBuf, stagingBuf hal.Buffer,
	w, h uint32, pixelBufSize uint64, target boxshade.RenderTarget,
) error {
	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "element_batch_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("element_batch"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	for _, bg := range bindGroups {
		computePass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "element_pass"})
		computePass.SetPipeline(a.pipeline)
		computePass.SetBindGroup(0, bg, nil)
		computePass.Dispatch((w+7)/8, (h+7)/8, 1)
		computePass.End()
	}

	encoder.CopyBufferToBuffer(storageBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)
	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, pixelBufSize)
	if err := a.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	unpackPixelsFromGPU(readback, target.Data, target.Width*target.Height)
	return nil
}

// pixelBufferSize returns the byte size of a packed RGBA8 pixel buffer.
// The widths are widened before multiplying so large targets do not wrap
// 32-bit arithmetic.
func pixelBufferSize(w, h uint32) uint64 {
	return uint64(w) * uint64(h) * 4
}

func (a *ElementAccelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue
	if err := a.createPipeline(); err != nil {
		a.device.Destroy()
		a.device = nil
		a.queue = nil
		return fmt.Errorf("create pipeline: %w", err)
	}
	a.gpuReady = true
	slogger().Info("element-gpu: GPU accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

func (a *ElementAccelerator) createPipeline() error {
	spirv, err := compileShader(elementShaderWGSL)
	if err != nil {
		return fmt.Errorf("compile element shader: %w", err)
	}

	shader, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "element_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	a.shader = shader

	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "element_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "element_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "element_pipeline", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	a.pipeline = pipeline

	return nil
}

func (a *ElementAccelerator) destroyPipeline() {
	if a.device == nil {
		return
	}
	if a.pipeline != nil {
		a.device.DestroyComputePipeline(a.pipeline)
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
	}
}

func structToBytes(ptr unsafe.Pointer, size uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), size) //nolint:gosec // safe struct serialization
}

func packPixelsForGPU(data []uint8, pixelCount int) []byte {
	out := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		srcIdx := i * 4
		r := uint32(data[srcIdx+0])
		g := uint32(data[srcIdx+1])
		b := uint32(data[srcIdx+2])
		a := uint32(data[srcIdx+3])
		packed := r | (g << 8) | (b << 16) | (a << 24)
		binary.LittleEndian.PutUint32(out[i*4:], packed)
	}
	return out
}

func unpackPixelsFromGPU(packed []byte, dst []uint8, pixelCount int) {
	for i := 0; i < pixelCount; i++ {
		val := binary.LittleEndian.Uint32(packed[i*4:])
		dstIdx := i * 4
		dst[dstIdx+0] = uint8(val & 0xFF)         //nolint:gosec // masked to 8 bits
		dst[dstIdx+1] = uint8((val >> 8) & 0xFF)  //nolint:gosec // masked to 8 bits
		dst[dstIdx+2] = uint8((val >> 16) & 0xFF) //nolint:gosec // masked to 8 bits
		dst[dstIdx+3] = uint8((val >> 24) & 0xFF) //nolint:gosec // masked to 8 bits
	}
}
