package softpipe

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/backend"
	"github.com/gogpu/dynstate/vertex"
)

// recorder implements backend.Recorder with driver binding semantics:
// dynamic setter values persist across pipeline binds and win over baked
// state exactly for the kinds the bound pipeline declares dynamic.
type recorder struct {
	t      *targets
	set    *targetSet
	inPass bool
	ended  bool

	cur *pipeline

	dynSet map[dynstate.StateKind]bool
	dyn    dynstate.RenderState

	vbufs    [][]byte
	voffs    []uint32
	vstrides []uint32

	indices []uint8
}

func newRecorder(t *targets) *recorder {
	return &recorder{
		t:      t,
		dynSet: make(map[dynstate.StateKind]bool),
	}
}

func (r *recorder) Begin(pass int, clear backend.ClearValues) error {
	if r.inPass {
		return fmt.Errorf("softpipe: pass already open")
	}
	if pass < 0 || pass >= len(r.t.sets) {
		return fmt.Errorf("softpipe: pass %d out of range", pass)
	}
	r.set = &r.t.sets[pass]
	r.set.color.Fill(clear.Color)
	r.set.depth.Fill(quantizeDepth(clear.Depth, r.t.desc.DepthFormat))
	r.set.stencil.Fill(clear.Stencil)
	r.inPass = true
	r.ended = false
	return nil
}

func (r *recorder) End() error {
	if !r.inPass {
		return fmt.Errorf("softpipe: no open pass")
	}
	r.inPass = false
	r.ended = true
	return nil
}

// SubmitAndWait is a synchronization point only: the software path
// executes draws as they are recorded.
func (r *recorder) SubmitAndWait() error {
	if r.inPass {
		return fmt.Errorf("softpipe: submit with open pass")
	}
	return nil
}

func (r *recorder) BindPipeline(p backend.Pipeline) {
	if pl, ok := p.(*pipeline); ok {
		r.cur = pl
	}
}

func (r *recorder) BindVertexBuffers(bufs [][]byte, offsets []uint32, strides []uint32) {
	r.vbufs = bufs
	r.voffs = offsets
	r.vstrides = strides
}

func (r *recorder) BindIndexBuffer(indices []uint8) {
	r.indices = indices
}

// Dynamic-state setters. Each stores its value and marks the kind set;
// whether the value takes effect is decided per draw by the bound
// pipeline's dynamic declaration.

func (r *recorder) mark(k dynstate.StateKind) { r.dynSet[k] = true }

func (r *recorder) SetCullMode(m dynstate.CullMode) {
	r.dyn.CullMode = m
	r.mark(dynstate.KindCullMode)
}

func (r *recorder) SetFrontFace(f dynstate.FrontFace) {
	r.dyn.FrontFace = f
	r.mark(dynstate.KindFrontFace)
}

func (r *recorder) SetTopology(t dynstate.Topology) {
	r.dyn.Topology = t
	r.mark(dynstate.KindTopology)
}

func (r *recorder) SetViewports(v []dynstate.Viewport) {
	r.dyn.Viewports = v
	r.mark(dynstate.KindViewport)
}

func (r *recorder) SetScissors(s []image.Rectangle) {
	r.dyn.Scissors = s
	r.mark(dynstate.KindScissor)
}

func (r *recorder) SetVertexInput(layout vertex.Layout, strides []uint32) {
	r.dyn.Layout = layout
	r.dyn.Strides = strides
	r.mark(dynstate.KindVertexInput)
}

func (r *recorder) SetVertexStrides(strides []uint32) {
	r.dyn.Strides = strides
	r.mark(dynstate.KindVertexStride)
}

func (r *recorder) SetDepthTestEnable(on bool) {
	r.dyn.DepthTestEnable = on
	r.mark(dynstate.KindDepthTestEnable)
}

func (r *recorder) SetDepthWriteEnable(on bool) {
	r.dyn.DepthWriteEnable = on
	r.mark(dynstate.KindDepthWriteEnable)
}

func (r *recorder) SetDepthCompareOp(op gputypes.CompareFunction) {
	r.dyn.DepthCompareOp = op
	r.mark(dynstate.KindDepthCompareOp)
}

func (r *recorder) SetDepthBoundsTestEnable(on bool) {
	r.dyn.DepthBoundsTestEnable = on
	r.mark(dynstate.KindDepthBoundsTestEnable)
}

func (r *recorder) SetStencilTestEnable(on bool) {
	r.dyn.StencilTestEnable = on
	r.mark(dynstate.KindStencilTestEnable)
}

func (r *recorder) SetStencilOps(ops []dynstate.StencilOpParams) {
	r.dyn.StencilOps = ops
	r.mark(dynstate.KindStencilOp)
}

func (r *recorder) SetDepthBiasEnable(on bool) {
	r.dyn.DepthBiasEnable = on
	r.mark(dynstate.KindDepthBiasEnable)
}

func (r *recorder) SetDepthBias(p dynstate.DepthBiasParams) {
	r.dyn.DepthBias = p
	r.mark(dynstate.KindDepthBias)
}

func (r *recorder) SetRastDiscardEnable(on bool) {
	r.dyn.RastDiscardEnable = on
	r.mark(dynstate.KindRastDiscardEnable)
}

func (r *recorder) SetPrimRestartEnable(on bool) {
	r.dyn.PrimRestartEnable = on
	r.mark(dynstate.KindPrimRestartEnable)
}

func (r *recorder) SetLogicOp(op dynstate.LogicOp) {
	r.dyn.LogicOp = op
	r.mark(dynstate.KindLogicOp)
}

func (r *recorder) SetPatchControlPoints(n uint32) {
	r.dyn.PatchControlPoints = n
	r.mark(dynstate.KindPatchControlPoints)
}

// resolveState merges the bound pipeline's baked state with the dynamic
// values for the kinds the pipeline declares dynamic.
func (r *recorder) resolveState() dynstate.RenderState {
	st := r.cur.desc.State
	for _, k := range r.cur.desc.Dynamic {
		if !r.dynSet[k] {
			continue
		}
		switch k {
		case dynstate.KindCullMode:
			st.CullMode = r.dyn.CullMode
		case dynstate.KindFrontFace:
			st.FrontFace = r.dyn.FrontFace
		case dynstate.KindTopology:
			st.Topology = r.dyn.Topology
		case dynstate.KindViewport:
			st.Viewports = r.dyn.Viewports
		case dynstate.KindScissor:
			st.Scissors = r.dyn.Scissors
		case dynstate.KindVertexStride:
			st.Strides = r.dyn.Strides
		case dynstate.KindVertexInput:
			st.Layout = r.dyn.Layout
			st.Strides = r.dyn.Strides
		case dynstate.KindDepthTestEnable:
			st.DepthTestEnable = r.dyn.DepthTestEnable
		case dynstate.KindDepthWriteEnable:
			st.DepthWriteEnable = r.dyn.DepthWriteEnable
		case dynstate.KindDepthCompareOp:
			st.DepthCompareOp = r.dyn.DepthCompareOp
		case dynstate.KindDepthBoundsTestEnable:
			st.DepthBoundsTestEnable = r.dyn.DepthBoundsTestEnable
		case dynstate.KindStencilTestEnable:
			st.StencilTestEnable = r.dyn.StencilTestEnable
		case dynstate.KindStencilOp:
			st.StencilOps = r.dyn.StencilOps
		case dynstate.KindDepthBiasEnable:
			st.DepthBiasEnable = r.dyn.DepthBiasEnable
		case dynstate.KindDepthBias:
			st.DepthBias = r.dyn.DepthBias
		case dynstate.KindRastDiscardEnable:
			st.RastDiscardEnable = r.dyn.RastDiscardEnable
		case dynstate.KindPrimRestartEnable:
			st.PrimRestartEnable = r.dyn.PrimRestartEnable
		case dynstate.KindLogicOp:
			st.LogicOp = r.dyn.LogicOp
		case dynstate.KindPatchControlPoints:
			st.PatchControlPoints = r.dyn.PatchControlPoints
		}
	}

	// Strides bound alongside the vertex buffers take effect the same
	// way a setter call would.
	if r.vstrides != nil && r.cur.desc.DeclaresDynamic(dynstate.KindVertexStride) {
		st.Strides = r.vstrides
	}
	return st
}

func (r *recorder) Draw(p backend.DrawParams, vertexCount, firstVertex int) {
	if !r.inPass || r.cur == nil {
		return
	}
	st := r.resolveState()
	elems := make([]int, vertexCount)
	for i := range elems {
		elems[i] = firstVertex + i
	}
	r.rasterize(st, p, elems, nil)
}

func (r *recorder) DrawIndexed(p backend.DrawParams, indexCount int) {
	if !r.inPass || r.cur == nil || indexCount > len(r.indices) {
		return
	}
	st := r.resolveState()
	elems := make([]int, indexCount)
	raw := make([]uint8, indexCount)
	for i := 0; i < indexCount; i++ {
		elems[i] = int(r.indices[i])
		raw[i] = r.indices[i]
	}
	r.rasterize(st, p, elems, raw)
}
