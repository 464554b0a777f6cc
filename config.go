package dynstate

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate/framebuffer"
	"github.com/gogpu/dynstate/oracle"
	"github.com/gogpu/dynstate/vertex"
)

// Framebuffer dimensions used by every scenario.
const (
	FramebufferWidth  = 64
	FramebufferHeight = 64
)

// DefaultGeometryColor is the color meshes draw with unless a scenario
// overrides it.
func DefaultGeometryColor() framebuffer.Texel { return framebuffer.RGBA(0, 0, 1, 1) }

// DefaultClearColor is the color render targets are cleared to.
func DefaultClearColor() framebuffer.Texel { return framebuffer.RGBA(0, 0, 0, 1) }

// Viewport is one viewport rectangle in framebuffer pixel units with its
// depth range.
type Viewport struct {
	X        float32
	Y        float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

// FullViewport returns a viewport covering the whole framebuffer with
// depth range [0, 1].
func FullViewport() Viewport {
	return Viewport{Width: FramebufferWidth, Height: FramebufferHeight, MaxDepth: 1}
}

// FullScissor returns a scissor covering the whole framebuffer.
func FullScissor() image.Rectangle {
	return image.Rect(0, 0, FramebufferWidth, FramebufferHeight)
}

// MeshParams describes one mesh drawn by a scenario.
type MeshParams struct {
	Color   framebuffer.Texel
	Depth   float32
	Scale   float32
	OffsetX float32
	OffsetY float32

	// Reversed flips the vertex emission order, inverting the winding.
	// Only valid for triangle-class topologies.
	Reversed bool
}

// DefaultMesh returns a fullscreen mesh in the default geometry color at
// depth 0.
func DefaultMesh() MeshParams {
	return MeshParams{Color: DefaultGeometryColor(), Scale: 1}
}

// StencilOpParams is one per-face stencil parameter set.
type StencilOpParams struct {
	Face        StencilFace
	FailOp      StencilOp
	PassOp      StencilOp
	DepthFailOp StencilOp
	Compare     gputypes.CompareFunction
}

// DepthBiasParams carries the depth bias constant factor and clamp. The
// slope factor is always zero: scenario geometry is depth-flat.
type DepthBiasParams struct {
	ConstantFactor float32
	Clamp          float32
}

// Config is the scenario descriptor: one override pair per testable
// parameter plus the scene, clear values, expected non-color results, the
// reference-color oracle, and the ordering.
//
// Construct with NewConfig, mutate pairs to author the scenario, then
// hand it to the runner. The runner validates it and, for reversed
// orderings, swaps every pair once so that authoring can always assume
// override = correct.
type Config struct {
	Ordering Ordering

	Layout    Pair[vertex.Layout]
	CullMode  Pair[CullMode]
	FrontFace Pair[FrontFace]
	Topology  Pair[Topology]
	Viewports Pair[[]Viewport]
	Scissors  Pair[[]image.Rectangle]
	Strides   Pair[[]uint32]

	DepthTestEnable       Pair[bool]
	DepthWriteEnable      Pair[bool]
	DepthCompareOp        Pair[gputypes.CompareFunction]
	DepthBoundsTestEnable Pair[bool]
	StencilTestEnable     Pair[bool]
	StencilOps            Pair[[]StencilOpParams]
	DepthBiasEnable       Pair[bool]
	DepthBias             Pair[DepthBiasParams]
	RastDiscardEnable     Pair[bool]
	PrimRestartEnable     Pair[bool]
	LogicOp               Pair[LogicOp]
	PatchControlPoints    Pair[uint32]

	Meshes []MeshParams

	ClearColor   framebuffer.Texel
	ClearDepth   float32
	ClearStencil uint8

	ExpectedDepth   float32
	ExpectedStencil uint8

	MinDepthBounds float32
	MaxDepthBounds float32

	StencilRef uint8

	Reference oracle.Reference

	DepthFmt gputypes.TextureFormat

	// ForceGeometryShader routes the draw through a passthrough
	// geometry stage even when one viewport suffices.
	ForceGeometryShader bool

	// UseMeshShaders draws with a mesh shading pipeline instead of a
	// vertex stage.
	UseMeshShaders bool

	// BindUnusedMeshPipeline binds and abandons a mesh shading pipeline
	// before the real binds, probing state leakage across pipeline
	// types.
	BindUnusedMeshPipeline bool

	// LeadingVertexBytes and TrailingVertexBytes pad the vertex buffers
	// around the real data; binds use a matching byte offset.
	LeadingVertexBytes  int
	TrailingVertexBytes int

	swapped bool
}

// NewConfig returns a descriptor with the documented defaults: no
// culling, counter-clockwise front faces, a fullscreen triangle strip in
// one full viewport and scissor, every test disabled, and a solid
// geometry-color reference.
func NewConfig(ordering Ordering, layout vertex.Layout) *Config {
	return &Config{
		Ordering:  ordering,
		Layout:    StaticValue(layout),
		CullMode:  StaticValue(CullNone),
		FrontFace: StaticValue(FrontFaceCCW),
		Topology:  StaticValue(TopologyTriangleStrip),
		Viewports: StaticValue([]Viewport{FullViewport()}),
		Scissors:  StaticValue([]image.Rectangle{FullScissor()}),
		Strides:   StaticValue(layout.DefaultStrides()),

		DepthTestEnable:       StaticValue(false),
		DepthWriteEnable:      StaticValue(false),
		DepthCompareOp:        StaticValue(gputypes.CompareFunctionNever),
		DepthBoundsTestEnable: StaticValue(false),
		StencilTestEnable:     StaticValue(false),
		StencilOps: StaticValue([]StencilOpParams{{
			Face:        FaceFrontAndBack,
			FailOp:      StencilKeep,
			PassOp:      StencilKeep,
			DepthFailOp: StencilKeep,
			Compare:     gputypes.CompareFunctionAlways,
		}}),
		DepthBiasEnable:    StaticValue(false),
		DepthBias:          StaticValue(DepthBiasParams{}),
		RastDiscardEnable:  StaticValue(false),
		PrimRestartEnable:  StaticValue(false),
		LogicOp:            StaticValue(LogicClear),
		PatchControlPoints: StaticValue(uint32(1)),

		Meshes: []MeshParams{DefaultMesh()},

		ClearColor:   DefaultClearColor(),
		ClearDepth:   1,
		ClearStencil: 0,

		ExpectedDepth:   1,
		ExpectedStencil: 0,

		MinDepthBounds: 0,
		MaxDepthBounds: 1,

		Reference: oracle.SingleColor{Color: DefaultGeometryColor()},

		DepthFmt: gputypes.TextureFormatDepth24PlusStencil8,
	}
}

// SwapValues exchanges baseline and override in every pair. The runner
// calls this once for reversed orderings; afterwards the baseline slots
// hold the correct values and the override slots the wrong ones.
func (c *Config) SwapValues() {
	c.Layout.Swap()
	c.CullMode.Swap()
	c.FrontFace.Swap()
	c.Topology.Swap()
	c.Viewports.Swap()
	c.Scissors.Swap()
	c.Strides.Swap()
	c.DepthTestEnable.Swap()
	c.DepthWriteEnable.Swap()
	c.DepthCompareOp.Swap()
	c.DepthBoundsTestEnable.Swap()
	c.StencilTestEnable.Swap()
	c.StencilOps.Swap()
	c.DepthBiasEnable.Swap()
	c.DepthBias.Swap()
	c.RastDiscardEnable.Swap()
	c.PrimRestartEnable.Swap()
	c.LogicOp.Swap()
	c.PatchControlPoints.Swap()
	c.swapped = !c.swapped
}

// Swapped reports whether SwapValues has been applied an odd number of
// times.
func (c *Config) Swapped() bool { return c.swapped }

// DynamicStates returns the dynamic-state kinds the scenario exercises,
// derived by scanning every pair for a present override. The list is
// fully reproducible from the descriptor's contents.
func (c *Config) DynamicStates() []StateKind {
	var kinds []StateKind
	add := func(has bool, k StateKind) {
		if has {
			kinds = append(kinds, k)
		}
	}
	add(c.CullMode.HasDynamic(), KindCullMode)
	add(c.FrontFace.HasDynamic(), KindFrontFace)
	add(c.Topology.HasDynamic(), KindTopology)
	add(c.Viewports.HasDynamic(), KindViewport)
	add(c.Scissors.HasDynamic(), KindScissor)
	add(c.Strides.HasDynamic(), KindVertexStride)
	add(c.Layout.HasDynamic(), KindVertexInput)
	add(c.DepthTestEnable.HasDynamic(), KindDepthTestEnable)
	add(c.DepthWriteEnable.HasDynamic(), KindDepthWriteEnable)
	add(c.DepthCompareOp.HasDynamic(), KindDepthCompareOp)
	add(c.DepthBoundsTestEnable.HasDynamic(), KindDepthBoundsTestEnable)
	add(c.StencilTestEnable.HasDynamic(), KindStencilTestEnable)
	add(c.StencilOps.HasDynamic(), KindStencilOp)
	add(c.DepthBiasEnable.HasDynamic(), KindDepthBiasEnable)
	add(c.DepthBias.HasDynamic(), KindDepthBias)
	add(c.RastDiscardEnable.HasDynamic(), KindRastDiscardEnable)
	add(c.PrimRestartEnable.HasDynamic(), KindPrimRestartEnable)
	add(c.LogicOp.HasDynamic(), KindLogicOp)
	add(c.PatchControlPoints.HasDynamic(), KindPatchControlPoints)
	return kinds
}

// NeedsIndexBuffer reports whether the scenario draws indexed. True
// exactly when dynamic primitive restart is tested: those draws use
// 8-bit indices sized to exactly wrap a byte.
func (c *Config) NeedsIndexBuffer() bool {
	return c.PrimRestartEnable.HasDynamic()
}

// NeedsGeometryShader reports whether a passthrough geometry stage is
// required: more than one effective viewport without mesh shading, or
// forced.
func (c *Config) NeedsGeometryShader() bool {
	if c.ForceGeometryShader {
		return true
	}
	return len(c.Viewports.Effective()) > 1 && !c.UseMeshShaders
}

// NeedsTessellation reports whether tessellation stages are required:
// the patch control point count is overridden or the topology class is
// patch.
func (c *Config) NeedsTessellation() bool {
	return c.PatchControlPoints.HasDynamic() || c.Topology.Effective().Class() == ClassPatch
}

// NeedsDepthBiasClamp reports whether the depth-bias clamp feature is
// required: either pipeline bakes a nonzero clamp.
func (c *Config) NeedsDepthBiasClamp() bool {
	if c.DepthBias.Static().Clamp != 0 {
		return true
	}
	d, ok := c.DepthBias.Dynamic()
	return ok && d.Clamp != 0
}

// TestsLogicOp reports whether a logic op override is under test.
func (c *Config) TestsLogicOp() bool {
	return c.LogicOp.HasDynamic()
}

// Passes returns the number of render passes the scenario records.
func (c *Config) Passes() int { return c.Ordering.Passes() }

// ColorFormat returns the color target format: unsigned integer when a
// logic op is tested, 8-bit normalized otherwise.
func (c *Config) ColorFormat() gputypes.TextureFormat {
	if c.TestsLogicOp() {
		return gputypes.TextureFormatRGBA8Uint
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// DepthFormat returns the depth/stencil target format.
func (c *Config) DepthFormat() gputypes.TextureFormat { return c.DepthFmt }

// Validate checks the descriptor's internal consistency. A violation is
// a defect in the scenario catalog, reported as *InvariantError.
func (c *Config) Validate() error {
	if c.Ordering >= numOrderings {
		return invariantf("ordering %d out of range", c.Ordering)
	}
	if c.PatchControlPoints.HasDynamic() && c.Topology.Effective().Class() != ClassPatch {
		return invariantf("patch control point override with %s topology",
			c.Topology.Effective())
	}
	if v, ok := c.Viewports.Dynamic(); ok && len(v) == 0 {
		return invariantf("empty viewport override list")
	}
	if s, ok := c.Scissors.Dynamic(); ok && len(s) == 0 {
		return invariantf("empty scissor override list")
	}
	if len(c.Viewports.Static()) == 0 {
		return invariantf("empty viewport baseline list")
	}
	if len(c.Scissors.Static()) == 0 {
		return invariantf("empty scissor baseline list")
	}
	for i, m := range c.Meshes {
		if m.Reversed && c.Topology.Effective().Class() != ClassTriangle {
			return invariantf("reversed mesh %d with %s topology",
				i, c.Topology.Effective())
		}
	}
	if len(c.Meshes) == 0 {
		return invariantf("no meshes")
	}
	if c.Reference == nil {
		return invariantf("no reference oracle")
	}
	return nil
}
