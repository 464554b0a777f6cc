// Package wgpu is the device backend: it brings up a real GPU through
// gogpu/wgpu and validates every scenario shader with the naga compiler.
//
// Render pass encoding is not native yet: recorded commands execute
// through the software rasterizer against the same state model, so
// results stay bit-identical across backends while the native encoder
// lands. The capability report is already honest about what the WebGPU
// surface can express, so the runner never routes a scenario here that
// the API could not carry.
package wgpu

import (
	"fmt"
	"log"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/backend"
	"github.com/gogpu/dynstate/backend/softpipe"
	"github.com/gogpu/dynstate/framebuffer"
	"github.com/gogpu/dynstate/vertex"
)

func init() {
	backend.Register(backend.BackendWgpu, func() backend.Backend { return New() })
}

// Backend is the wgpu device backend.
type Backend struct {
	mu sync.RWMutex

	// GPU resources
	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	gpuInfo *GPUInfo

	// Host-provided device; nil when the backend owns its own.
	shared DeviceHandle

	// Software executor for recorded passes.
	soft *softpipe.Backend

	initialized bool
}

// New creates a wgpu backend. The backend must be initialized with Init
// before use.
func New() *Backend { return &Backend{} }

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendWgpu }

// Init creates the GPU instance, adapter, device, and queue.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if b.shared != nil {
		// The host owns instance, adapter, and device.
		b.soft = softpipe.New()
		if err := b.soft.Init(); err != nil {
			return err
		}
		b.initialized = true
		log.Println("wgpu: backend initialized on shared device")
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	b.instance = core.NewInstance(desc)

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("wgpu: no adapter: %w", err)
	}
	b.adapter = adapterID

	logGPUInfo(adapterID)
	b.gpuInfo, _ = getGPUInfo(adapterID)

	deviceID, err := createDevice(adapterID, "dynstate-device")
	if err != nil {
		_ = releaseAdapter(adapterID)
		return fmt.Errorf("wgpu: device creation failed: %w", err)
	}
	b.device = deviceID

	queueID, err := getDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		_ = releaseAdapter(adapterID)
		return fmt.Errorf("wgpu: queue retrieval failed: %w", err)
	}
	b.queue = queueID

	b.soft = softpipe.New()
	if err := b.soft.Init(); err != nil {
		return err
	}

	b.initialized = true
	log.Println("wgpu: backend initialized successfully")
	return nil
}

// Close releases all backend resources.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	if b.soft != nil {
		b.soft.Close()
		b.soft = nil
	}

	if b.shared != nil {
		// Borrowed device: the host releases it.
		b.initialized = false
		log.Println("wgpu: backend closed (shared device untouched)")
		return
	}

	if !b.device.IsZero() {
		if err := releaseDevice(b.device); err != nil {
			log.Printf("wgpu: error releasing device: %v", err)
		}
		b.device = core.DeviceID{}
	}

	if !b.adapter.IsZero() {
		if err := releaseAdapter(b.adapter); err != nil {
			log.Printf("wgpu: error releasing adapter: %v", err)
		}
		b.adapter = core.AdapterID{}
	}

	b.instance = nil
	b.queue = core.QueueID{}
	b.gpuInfo = nil
	b.initialized = false

	log.Println("wgpu: backend closed")
}

// IsInitialized returns true if the backend has been initialized.
func (b *Backend) IsInitialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}

// GPUInfo returns information about the selected GPU, or nil before Init.
func (b *Backend) GPUInfo() *GPUInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gpuInfo
}

// Device returns the GPU device ID.
func (b *Backend) Device() core.DeviceID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.device
}

// Queue returns the GPU queue ID.
func (b *Backend) Queue() core.QueueID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue
}

// Caps reports what the WebGPU surface can express: viewport and scissor
// are recording-time commands, everything else is baked pipeline state.
// There are no geometry, tessellation, or mesh stages, no depth bounds
// test, no framebuffer logic ops, and no 8-bit index format.
func (b *Backend) Caps() *backend.Caps {
	return &backend.Caps{
		MaxViewports:   1,
		GeometryShader: false,
		Tessellation:   false,
		MeshShader:     false,
		DepthBiasClamp: true,
		DepthBounds:    false,
		LogicOp:        false,
		IndexUint8:     false,
		DynamicStates: map[dynstate.StateKind]bool{
			dynstate.KindViewport: true,
			dynstate.KindScissor:  true,
		},
	}
}

type targets struct {
	desc backend.TargetDesc
	soft backend.Targets
}

// CreateTargets allocates the render target sets.
func (b *Backend) CreateTargets(desc backend.TargetDesc) (backend.Targets, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}

	st, err := b.soft.CreateTargets(desc)
	if err != nil {
		return nil, err
	}
	return &targets{desc: desc, soft: st}, nil
}

// pipeline carries the baked state for both execution paths: the
// compiled SPIR-V modules and vertex buffer layouts the native render
// pass encoder consumes once it lands, and the software pipeline that
// executes recorded passes until then.
type pipeline struct {
	desc backend.PipelineDesc

	vertexSPIRV   []byte
	fragmentSPIRV []byte
	vertexLayouts []gputypes.VertexBufferLayout

	soft backend.Pipeline
}

// CreatePipeline compiles the scenario shaders and bakes the pipeline
// state.
func (b *Backend) CreatePipeline(desc backend.PipelineDesc) (backend.Pipeline, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	if desc.MeshShading {
		return nil, fmt.Errorf("wgpu: mesh shading: %w", dynstate.ErrNotSupported)
	}

	vs, err := naga.Compile(desc.VertexWGSL)
	if err != nil {
		return nil, fmt.Errorf("wgpu: vertex shader compilation failed: %w", err)
	}
	fs, err := naga.Compile(desc.FragmentWGSL)
	if err != nil {
		return nil, fmt.Errorf("wgpu: fragment shader compilation failed: %w", err)
	}

	sp, err := b.soft.CreatePipeline(desc)
	if err != nil {
		return nil, err
	}

	return &pipeline{
		desc:          desc,
		vertexSPIRV:   vs,
		fragmentSPIRV: fs,
		vertexLayouts: vertex.BufferLayouts(desc.State.Layout, desc.State.Strides),
		soft:          sp,
	}, nil
}

// recorder translates pipeline handles and forwards the command timeline
// to the software executor.
type recorder struct {
	backend.Recorder
}

func (r *recorder) BindPipeline(p backend.Pipeline) {
	if pl, ok := p.(*pipeline); ok {
		r.Recorder.BindPipeline(pl.soft)
		return
	}
	r.Recorder.BindPipeline(p)
}

// NewRecorder opens a command recording context.
func (b *Backend) NewRecorder(t backend.Targets) (backend.Recorder, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	tt, ok := t.(*targets)
	if !ok {
		return nil, fmt.Errorf("wgpu: foreign targets %T", t)
	}

	inner, err := b.soft.NewRecorder(tt.soft)
	if err != nil {
		return nil, err
	}
	return &recorder{Recorder: inner}, nil
}

// Readback returns the rendered planes for one target set.
func (b *Backend) Readback(t backend.Targets, pass int) (*framebuffer.Color, *framebuffer.Depth, *framebuffer.Stencil, error) {
	tt, ok := t.(*targets)
	if !ok {
		return nil, nil, nil, fmt.Errorf("wgpu: foreign targets %T", t)
	}
	return b.soft.Readback(tt.soft, pass)
}
