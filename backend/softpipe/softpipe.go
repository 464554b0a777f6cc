// Package softpipe is the software reference backend: a deterministic
// CPU rasterizer implementing the full recorder state model with
// pipeline binding semantics, so every scenario can execute headlessly.
package softpipe

import (
	"fmt"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/backend"
	"github.com/gogpu/dynstate/framebuffer"
)

func init() {
	backend.Register(backend.BackendSoftpipe, func() backend.Backend { return New() })
}

// Backend is the software rasterizer backend.
type Backend struct {
	initialized bool
}

// New creates a softpipe backend.
func New() *Backend { return &Backend{} }

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendSoftpipe }

// Init initializes the backend.
func (b *Backend) Init() error {
	b.initialized = true
	return nil
}

// Close releases backend resources.
func (b *Backend) Close() {
	b.initialized = false
}

// Caps returns the backend capabilities. The rasterizer handles every
// dynamic-state kind; mesh shading is the one absent stage.
func (b *Backend) Caps() *backend.Caps {
	dyn := make(map[dynstate.StateKind]bool, len(dynstate.StateKinds()))
	for _, k := range dynstate.StateKinds() {
		dyn[k] = true
	}
	return &backend.Caps{
		MaxViewports:   16,
		GeometryShader: true,
		Tessellation:   true,
		MeshShader:     false,
		DepthBiasClamp: true,
		DepthBounds:    true,
		LogicOp:        true,
		IndexUint8:     true,
		DynamicStates:  dyn,
	}
}

// targetSet is one color/depth/stencil attachment group.
type targetSet struct {
	color   *framebuffer.Color
	depth   *framebuffer.Depth
	stencil *framebuffer.Stencil
}

type targets struct {
	desc backend.TargetDesc
	sets []targetSet
}

// CreateTargets allocates the requested target sets.
func (b *Backend) CreateTargets(desc backend.TargetDesc) (backend.Targets, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	if desc.Count < 1 || desc.Width < 1 || desc.Height < 1 {
		return nil, fmt.Errorf("softpipe: bad target description %+v", desc)
	}

	t := &targets{desc: desc, sets: make([]targetSet, desc.Count)}
	for i := range t.sets {
		t.sets[i] = targetSet{
			color:   framebuffer.NewColor(desc.Width, desc.Height, desc.ColorFormat),
			depth:   framebuffer.NewDepth(desc.Width, desc.Height),
			stencil: framebuffer.NewStencil(desc.Width, desc.Height),
		}
	}
	return t, nil
}

type pipeline struct {
	desc backend.PipelineDesc
}

// CreatePipeline compiles a pipeline. The software path keeps the baked
// description; there is nothing to translate.
func (b *Backend) CreatePipeline(desc backend.PipelineDesc) (backend.Pipeline, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	if desc.MeshShading {
		return nil, fmt.Errorf("softpipe: mesh shading: %w", dynstate.ErrNotSupported)
	}
	return &pipeline{desc: desc}, nil
}

// NewRecorder opens a command recording context.
func (b *Backend) NewRecorder(t backend.Targets) (backend.Recorder, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	tt, ok := t.(*targets)
	if !ok {
		return nil, fmt.Errorf("softpipe: foreign targets %T", t)
	}
	return newRecorder(tt), nil
}

// Readback returns deep copies of a target set's planes.
func (b *Backend) Readback(t backend.Targets, pass int) (*framebuffer.Color, *framebuffer.Depth, *framebuffer.Stencil, error) {
	tt, ok := t.(*targets)
	if !ok {
		return nil, nil, nil, fmt.Errorf("softpipe: foreign targets %T", t)
	}
	if pass < 0 || pass >= len(tt.sets) {
		return nil, nil, nil, fmt.Errorf("softpipe: pass %d out of range", pass)
	}
	s := tt.sets[pass]
	return s.color.Clone(), s.depth.Clone(), s.stencil.Clone(), nil
}
