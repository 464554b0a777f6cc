package dynstate

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate/vertex"
)

// RenderState is one concrete fixed-function parameter set with no
// override indirection left: every field holds exactly one value.
type RenderState struct {
	Layout    vertex.Layout
	CullMode  CullMode
	FrontFace FrontFace
	Topology  Topology
	Viewports []Viewport
	Scissors  []image.Rectangle
	Strides   []uint32

	DepthTestEnable       bool
	DepthWriteEnable      bool
	DepthCompareOp        gputypes.CompareFunction
	DepthBoundsTestEnable bool
	StencilTestEnable     bool
	StencilOps            []StencilOpParams
	DepthBiasEnable       bool
	DepthBias             DepthBiasParams
	RastDiscardEnable     bool
	PrimRestartEnable     bool
	LogicOp               LogicOp
	PatchControlPoints    uint32
}

// StaticState returns the parameter set baked into the static pipeline:
// the baseline slot of every pair.
func (c *Config) StaticState() RenderState {
	return RenderState{
		Layout:    c.Layout.Static(),
		CullMode:  c.CullMode.Static(),
		FrontFace: c.FrontFace.Static(),
		Topology:  c.Topology.Static(),
		Viewports: c.Viewports.Static(),
		Scissors:  c.Scissors.Static(),
		Strides:   c.Strides.Static(),

		DepthTestEnable:       c.DepthTestEnable.Static(),
		DepthWriteEnable:      c.DepthWriteEnable.Static(),
		DepthCompareOp:        c.DepthCompareOp.Static(),
		DepthBoundsTestEnable: c.DepthBoundsTestEnable.Static(),
		StencilTestEnable:     c.StencilTestEnable.Static(),
		StencilOps:            c.StencilOps.Static(),
		DepthBiasEnable:       c.DepthBiasEnable.Static(),
		DepthBias:             c.DepthBias.Static(),
		RastDiscardEnable:     c.RastDiscardEnable.Static(),
		PrimRestartEnable:     c.PrimRestartEnable.Static(),
		LogicOp:               c.LogicOp.Static(),
		PatchControlPoints:    c.PatchControlPoints.Static(),
	}
}

// EffectiveState returns the parameter set after applying every present
// override: the value each dynamic call carries, or the baseline where
// no override exists.
func (c *Config) EffectiveState() RenderState {
	return RenderState{
		Layout:    c.Layout.Effective(),
		CullMode:  c.CullMode.Effective(),
		FrontFace: c.FrontFace.Effective(),
		Topology:  c.Topology.Effective(),
		Viewports: c.Viewports.Effective(),
		Scissors:  c.Scissors.Effective(),
		Strides:   c.Strides.Effective(),

		DepthTestEnable:       c.DepthTestEnable.Effective(),
		DepthWriteEnable:      c.DepthWriteEnable.Effective(),
		DepthCompareOp:        c.DepthCompareOp.Effective(),
		DepthBoundsTestEnable: c.DepthBoundsTestEnable.Effective(),
		StencilTestEnable:     c.StencilTestEnable.Effective(),
		StencilOps:            c.StencilOps.Effective(),
		DepthBiasEnable:       c.DepthBiasEnable.Effective(),
		DepthBias:             c.DepthBias.Effective(),
		RastDiscardEnable:     c.RastDiscardEnable.Effective(),
		PrimRestartEnable:     c.PrimRestartEnable.Effective(),
		LogicOp:               c.LogicOp.Effective(),
		PatchControlPoints:    c.PatchControlPoints.Effective(),
	}
}

// Resolve returns the parameter set that governs the verified draw. For
// reversed orderings the last bind is the static pipeline, so after the
// runner's one-time SwapValues the baseline slots are authoritative; for
// every other ordering the overrides win. Taking the ordering dependence
// through an explicit function keeps the inversion visible at the call
// site instead of hiding it behind per-parameter accessors.
func Resolve(c *Config) RenderState {
	if c.Ordering.Reversed() {
		return c.StaticState()
	}
	return c.EffectiveState()
}
