package backend

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/framebuffer"
	"github.com/gogpu/dynstate/vertex"
)

// ClearValues are the per-pass clear values.
type ClearValues struct {
	Color   framebuffer.Texel
	Depth   float32
	Stencil uint8
}

// DrawParams are the per-draw parameters a scenario pushes for each
// mesh and viewport combination.
type DrawParams struct {
	Color   framebuffer.Texel
	Depth   float32
	Scale   float32
	OffsetX float32
	OffsetY float32

	// ViewportIndex routes the draw to one viewport of the active
	// viewport list.
	ViewportIndex int
}

// Recorder is one command recording context. Calls mirror the command
// timeline: dynamic-state setters may be issued at any point relative to
// pipeline binds, and their values persist across binds, winning over
// baked state exactly for the kinds the bound pipeline declares dynamic.
type Recorder interface {
	// Begin opens the render pass for the given target set.
	Begin(pass int, clear ClearValues) error

	// BindPipeline makes the pipeline current. Baked state overwrites
	// the current value of every kind the pipeline does not declare
	// dynamic.
	BindPipeline(p Pipeline)

	// BindVertexBuffers binds one buffer per layout binding with a byte
	// offset each. A non-nil strides slice binds with explicit dynamic
	// strides; nil uses the pipeline's baked strides.
	BindVertexBuffers(bufs [][]byte, offsets []uint32, strides []uint32)

	// BindIndexBuffer binds 8-bit indices.
	BindIndexBuffer(indices []uint8)

	// Draw records a non-indexed draw.
	Draw(params DrawParams, vertexCount, firstVertex int)

	// DrawIndexed records an indexed draw over the bound index buffer.
	DrawIndexed(params DrawParams, indexCount int)

	// Dynamic-state setters, one per testable kind.
	SetCullMode(dynstate.CullMode)
	SetFrontFace(dynstate.FrontFace)
	SetTopology(dynstate.Topology)
	SetViewports([]dynstate.Viewport)
	SetScissors([]image.Rectangle)
	SetVertexInput(layout vertex.Layout, strides []uint32)
	SetVertexStrides([]uint32)
	SetDepthTestEnable(bool)
	SetDepthWriteEnable(bool)
	SetDepthCompareOp(gputypes.CompareFunction)
	SetDepthBoundsTestEnable(bool)
	SetStencilTestEnable(bool)
	SetStencilOps([]dynstate.StencilOpParams)
	SetDepthBiasEnable(bool)
	SetDepthBias(dynstate.DepthBiasParams)
	SetRastDiscardEnable(bool)
	SetPrimRestartEnable(bool)
	SetLogicOp(dynstate.LogicOp)
	SetPatchControlPoints(uint32)

	// End closes the current render pass.
	End() error

	// SubmitAndWait submits the recorded commands and blocks until the
	// device is done. After it returns, Readback sees the results.
	SubmitAndWait() error
}
