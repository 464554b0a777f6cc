// Package backend defines the graphics capability interface the engine
// renders through, plus the registry backends install themselves into.
//
// The engine never talks to a device directly: scenario execution calls
// into a Backend for targets and pipelines and into a Recorder for the
// command timeline. Capability queries happen before scenario
// construction; a missing capability yields a Skip outcome, never a
// Fail.
package backend

import (
	"errors"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/framebuffer"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Caps describes what a backend can do. The runner consults it before
// building a scenario; absence of a required capability makes the
// scenario Skip.
type Caps struct {
	MaxViewports   int
	GeometryShader bool
	Tessellation   bool
	MeshShader     bool
	DepthBiasClamp bool
	DepthBounds    bool
	LogicOp        bool
	IndexUint8     bool

	// DynamicStates holds the dynamic-state kinds the backend can set
	// at recording time.
	DynamicStates map[dynstate.StateKind]bool
}

// Supports reports whether the backend can set the given state kind
// dynamically.
func (c *Caps) Supports(kind dynstate.StateKind) bool {
	return c.DynamicStates[kind]
}

// TargetDesc describes the render target sets for one scenario.
type TargetDesc struct {
	Width       int
	Height      int
	ColorFormat gputypes.TextureFormat
	DepthFormat gputypes.TextureFormat

	// Count is the number of independent target sets; two-draw
	// orderings render each pass into its own set.
	Count int
}

// Targets is an opaque handle to a backend's render target sets.
type Targets interface{}

// PipelineDesc is the full baked parameter set for one pipeline plus the
// kinds it declares dynamic. Binding the pipeline overwrites current
// state for every kind not in Dynamic; kinds in Dynamic keep whatever
// the recording set last.
type PipelineDesc struct {
	Label string

	State   dynstate.RenderState
	Dynamic []dynstate.StateKind

	MinDepthBounds float32
	MaxDepthBounds float32
	StencilRef     uint8

	ColorFormat gputypes.TextureFormat
	DepthFormat gputypes.TextureFormat

	VertexWGSL   string
	FragmentWGSL string

	// MeshShading marks a mesh shading pipeline.
	MeshShading bool
}

// DeclaresDynamic reports whether the pipeline enables dynamic setting
// of the given kind.
func (d *PipelineDesc) DeclaresDynamic(kind dynstate.StateKind) bool {
	for _, k := range d.Dynamic {
		if k == kind {
			return true
		}
	}
	return false
}

// Pipeline is an opaque handle to a compiled pipeline.
type Pipeline interface{}

// Backend is a graphics device capable of executing scenarios.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g. "softpipe", "wgpu").
	Name() string

	// Init initializes the backend. It must be called before any other
	// operation.
	Init() error

	// Close releases all backend resources. The backend should not be
	// used after Close.
	Close()

	// Caps returns the backend's capabilities.
	Caps() *Caps

	// CreateTargets allocates the render target sets for one scenario.
	CreateTargets(desc TargetDesc) (Targets, error)

	// CreatePipeline compiles one pipeline.
	CreatePipeline(desc PipelineDesc) (Pipeline, error)

	// NewRecorder opens a command recording context against the given
	// targets. Exactly one recorder may be open at a time.
	NewRecorder(t Targets) (Recorder, error)

	// Readback returns the color, depth, and stencil planes of the
	// given target set after submission. Depth and stencil are nil for
	// targets without a depth attachment.
	Readback(t Targets, pass int) (*framebuffer.Color, *framebuffer.Depth, *framebuffer.Stencil, error)
}
