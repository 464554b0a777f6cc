package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/backend"
	"github.com/gogpu/dynstate/shadergen"
	"github.com/gogpu/dynstate/vertex"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct {
	destroyed bool
}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       { m.destroyed = true }

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	device *mockDevice
}

func (m *mockProvider) Device() gpucontext.Device             { return m.device }
func (m *mockProvider) Queue() gpucontext.Queue               { return nil }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return nil }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

func TestNameAndRegistration(t *testing.T) {
	b := New()
	if got := b.Name(); got != backend.BackendWgpu {
		t.Errorf("Name() = %q, want %q", got, backend.BackendWgpu)
	}
	if !backend.IsRegistered(backend.BackendWgpu) {
		t.Error("wgpu backend not registered")
	}
}

func TestOperationsRequireInit(t *testing.T) {
	b := New()

	if _, err := b.CreateTargets(backend.TargetDesc{Width: 64, Height: 64, Count: 1}); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("CreateTargets before Init = %v, want ErrNotInitialized", err)
	}
	if _, err := b.CreatePipeline(backend.PipelineDesc{}); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("CreatePipeline before Init = %v, want ErrNotInitialized", err)
	}
	if _, err := b.NewRecorder(nil); !errors.Is(err, backend.ErrNotInitialized) {
		t.Errorf("NewRecorder before Init = %v, want ErrNotInitialized", err)
	}
	if b.IsInitialized() {
		t.Error("IsInitialized() = true before Init")
	}
}

func TestCapsMatchWebGPUSurface(t *testing.T) {
	caps := New().Caps()

	if caps.GeometryShader || caps.Tessellation || caps.MeshShader {
		t.Error("caps report stages the WebGPU surface does not have")
	}
	if caps.DepthBounds || caps.LogicOp || caps.IndexUint8 {
		t.Error("caps report features the WebGPU surface does not have")
	}
	if caps.MaxViewports != 1 {
		t.Errorf("MaxViewports = %d, want 1", caps.MaxViewports)
	}

	// Only recording-time commands may be dynamic.
	if !caps.Supports(dynstate.KindViewport) || !caps.Supports(dynstate.KindScissor) {
		t.Error("viewport/scissor must be supported dynamically")
	}
	if caps.Supports(dynstate.KindCullMode) {
		t.Error("Supports(cull_mode) = true, want false")
	}
}

func TestSharedDeviceLifecycle(t *testing.T) {
	p := &mockProvider{device: &mockDevice{}}
	b := NewShared(p)

	if err := b.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	if !b.IsInitialized() {
		t.Fatal("IsInitialized() = false after Init")
	}
	if b.SharedDevice() != p.device {
		t.Error("SharedDevice() does not return the host device")
	}

	// Pipelines compile on the shared-device path too.
	if _, err := b.CreateTargets(backend.TargetDesc{
		Width: 64, Height: 64, Count: 1,
		ColorFormat: gputypes.TextureFormatRGBA8Unorm,
		DepthFormat: gputypes.TextureFormatDepth24PlusStencil8,
	}); err != nil {
		t.Errorf("CreateTargets() = %v", err)
	}

	b.Close()
	if p.device.destroyed {
		t.Error("Close destroyed the host's device")
	}
}

func TestPipelineCarriesDeviceArtifacts(t *testing.T) {
	b := NewShared(&mockProvider{device: &mockDevice{}})
	if err := b.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	defer b.Close()

	l := vertex.WithPadding()
	p, err := b.CreatePipeline(backend.PipelineDesc{
		State:        dynstate.RenderState{Layout: l, Strides: l.DefaultStrides()},
		VertexWGSL:   shadergen.Vertex(l),
		FragmentWGSL: shadergen.Fragment(),
	})
	if err != nil {
		t.Fatalf("CreatePipeline() = %v", err)
	}

	pl, ok := p.(*pipeline)
	if !ok {
		t.Fatalf("pipeline type = %T", p)
	}
	if len(pl.vertexSPIRV) == 0 || len(pl.fragmentSPIRV) == 0 {
		t.Error("compiled shader modules are empty")
	}
	if got, want := len(pl.vertexLayouts), l.BindingCount(); got != want {
		t.Errorf("vertex buffer layouts = %d, want %d", got, want)
	}
}

func TestCloseBeforeInitIsSafe(t *testing.T) {
	b := New()
	b.Close()
	if b.IsInitialized() {
		t.Error("IsInitialized() = true after Close")
	}
}
