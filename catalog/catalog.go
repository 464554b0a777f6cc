// Package catalog enumerates the scenario cases: for each ordering, a
// named descriptor per tested parameter family, plus a generated
// stencil-state sweep. Enumeration is pure; every call builds fresh
// descriptors.
package catalog

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/framebuffer"
	"github.com/gogpu/dynstate/oracle"
	"github.com/gogpu/dynstate/vertex"
)

// Case is one named scenario.
type Case struct {
	Name        string
	Description string
	Config      *dynstate.Config
}

func geometryRef() oracle.Reference {
	return oracle.SingleColor{Color: dynstate.DefaultGeometryColor()}
}

func clearRef() oracle.Reference {
	return oracle.SingleColor{Color: dynstate.DefaultClearColor()}
}

// Cases returns the scenario list for one ordering.
func Cases(o dynstate.Ordering) []Case {
	var cases []Case
	add := func(name, desc string, cfg *dynstate.Config) {
		cases = append(cases, Case{Name: name, Description: desc, Config: cfg})
	}
	base := func() *dynstate.Config {
		return dynstate.NewConfig(o, vertex.WithPadding())
	}

	// Cull modes. The baseline culls everything (or nothing) so the
	// wrong value is visible.
	{
		cfg := base()
		cfg.CullMode = dynstate.Both(dynstate.CullFrontAndBack, dynstate.CullNone)
		add("cull_none", "dynamically disable culling", cfg)
	}
	{
		cfg := base()
		cfg.CullMode = dynstate.Both(dynstate.CullFront, dynstate.CullBack)
		add("cull_back", "back culling lets the front-facing mesh through", cfg)
	}
	{
		cfg := base()
		cfg.CullMode = dynstate.Both(dynstate.CullNone, dynstate.CullFront)
		cfg.Reference = clearRef()
		add("cull_front", "dynamically cull the front-facing mesh away", cfg)
	}
	{
		cfg := base()
		cfg.CullMode = dynstate.Both(dynstate.CullNone, dynstate.CullFrontAndBack)
		cfg.Reference = clearRef()
		add("cull_front_and_back", "dynamically cull everything", cfg)
	}

	// Front face, distinguished through back-face culling.
	{
		cfg := base()
		cfg.CullMode = dynstate.StaticValue(dynstate.CullBack)
		cfg.FrontFace = dynstate.Both(dynstate.FrontFaceCW, dynstate.FrontFaceCCW)
		add("front_face_ccw_cull_back", "counter-clockwise front faces survive back culling", cfg)
	}
	{
		cfg := base()
		cfg.CullMode = dynstate.StaticValue(dynstate.CullBack)
		cfg.FrontFace = dynstate.Both(dynstate.FrontFaceCCW, dynstate.FrontFaceCW)
		cfg.Meshes[0].Reversed = true
		add("front_face_cw_cull_back", "clockwise front faces survive back culling", cfg)
	}

	// Topology within each class.
	{
		cfg := base()
		cfg.Topology = dynstate.Both(dynstate.TopologyTriangleList, dynstate.TopologyTriangleStrip)
		add("topology_triangle_strip", "strip vertices assembled as a strip, not a list", cfg)
	}
	{
		cfg := base()
		cfg.Topology = dynstate.Both(dynstate.TopologyLineList, dynstate.TopologyLineStrip)
		add("topology_line_strip", "row vertices assembled as a strip, not a list", cfg)
	}
	{
		cfg := base()
		cfg.Topology = dynstate.StaticValue(dynstate.TopologyPatchList)
		cfg.PatchControlPoints = dynstate.Both(uint32(1), uint32(3))
		add("patch_control_points", "triangle patches appear only with three control points", cfg)
	}

	// Viewports and scissors.
	{
		cfg := base()
		cfg.Viewports = dynstate.Both(
			[]dynstate.Viewport{{Width: 16, Height: 16, MaxDepth: 1}},
			[]dynstate.Viewport{dynstate.FullViewport()})
		add("viewport_switch", "dynamic viewport replaces a small baked one", cfg)
	}
	{
		// The override reverses the viewport order but the scissors keep
		// the static pairing, so each viewport is clipped entirely
		// outside its scissor and nothing lands.
		left := dynstate.Viewport{Width: 32, Height: dynstate.FramebufferHeight, MaxDepth: 1}
		right := dynstate.Viewport{X: 32, Width: 32, Height: dynstate.FramebufferHeight, MaxDepth: 1}
		cfg := base()
		cfg.Viewports = dynstate.Both(
			[]dynstate.Viewport{left, right},
			[]dynstate.Viewport{right, left})
		cfg.Scissors = dynstate.StaticValue([]image.Rectangle{
			image.Rect(0, 0, 32, dynstate.FramebufferHeight),
			image.Rect(32, 0, dynstate.FramebufferWidth, dynstate.FramebufferHeight),
		})
		cfg.Reference = clearRef()
		add("2_viewports_switch_clean", "reversed viewports fall outside their paired scissors", cfg)
	}
	{
		cfg := base()
		cfg.Scissors = dynstate.Both(
			[]image.Rectangle{image.Rect(0, 0, 16, 16)},
			[]image.Rectangle{dynstate.FullScissor()})
		add("scissor_switch", "dynamic scissor replaces a small baked one", cfg)
	}
	{
		cfg := base()
		cfg.Scissors = dynstate.Both(
			[]image.Rectangle{dynstate.FullScissor()},
			[]image.Rectangle{image.Rect(0, 0, dynstate.FramebufferWidth, dynstate.FramebufferHeight / 2)})
		cfg.Reference = oracle.HorizontalSplit{
			Top:    dynstate.DefaultGeometryColor(),
			Bottom: dynstate.DefaultClearColor(),
		}
		add("scissor_top_half", "dynamic scissor restricts writes to the top half", cfg)
	}

	// Vertex strides per layout variant, plus the degenerate zero
	// stride.
	for _, l := range []vertex.Layout{
		vertex.WithPadding(), vertex.ExtraAttributes(), vertex.MultipleBindings(),
	} {
		cfg := dynstate.NewConfig(o, l)
		wrong := make([]uint32, l.BindingCount())
		for i := range wrong {
			wrong[i] = 8
		}
		cfg.Strides = dynstate.Both(wrong, l.DefaultStrides())
		add("stride_"+l.Name(), "dynamic stride corrects a wrong baked stride", cfg)
	}
	{
		cfg := base()
		cfg.Strides = dynstate.Both(vertex.WithPadding().DefaultStrides(), []uint32{0})
		cfg.Reference = clearRef()
		add("zero_stride", "a zero stride collapses every vertex onto the first", cfg)
	}

	// Dynamic vertex input: the whole layout switches at record time.
	{
		cfg := dynstate.NewConfig(o, vertex.MultipleBindings())
		cfg.Layout = dynstate.Both(vertex.WithPadding(), vertex.MultipleBindings())
		add("vertex_input_multiple_bindings", "dynamic vertex input selects the six-binding layout", cfg)
	}
	{
		cfg := base()
		cfg.LeadingVertexBytes = 16
		cfg.TrailingVertexBytes = 16
		add("vertex_buffer_offset", "vertex data behind a nonzero bind offset", cfg)
	}

	// Depth.
	{
		cfg := base()
		cfg.ClearDepth = 0.25
		cfg.ExpectedDepth = 0.25
		cfg.Meshes[0].Depth = 0.5
		cfg.DepthCompareOp = dynstate.StaticValue(gputypes.CompareFunctionLess)
		cfg.DepthTestEnable = dynstate.Both(false, true)
		cfg.Reference = clearRef()
		add("depth_test_enable", "enabling the depth test rejects the farther mesh", cfg)
	}
	{
		cfg := base()
		cfg.Meshes[0].Depth = 0.5
		cfg.ExpectedDepth = 0.5
		cfg.DepthTestEnable = dynstate.StaticValue(true)
		cfg.DepthCompareOp = dynstate.StaticValue(gputypes.CompareFunctionAlways)
		cfg.DepthWriteEnable = dynstate.Both(false, true)
		add("depth_write_enable", "enabling depth writes stores the mesh depth", cfg)
	}
	cases = append(cases, depthCompareCases(o)...)
	{
		cfg := base()
		cfg.DepthBoundsTestEnable = dynstate.Both(false, true)
		cfg.MaxDepthBounds = 0.5
		cfg.Reference = clearRef()
		add("depth_bounds_test_enable", "the cleared depth falls outside the bounds", cfg)
	}
	{
		cfg := base()
		cfg.ClearDepth = 0.5
		cfg.ExpectedDepth = 0.5
		cfg.Meshes[0].Depth = 0.25
		cfg.DepthTestEnable = dynstate.StaticValue(true)
		cfg.DepthCompareOp = dynstate.StaticValue(gputypes.CompareFunctionLess)
		cfg.DepthBias = dynstate.StaticValue(dynstate.DepthBiasParams{ConstantFactor: 1 << 23})
		cfg.DepthBiasEnable = dynstate.Both(false, true)
		cfg.Reference = clearRef()
		add("depth_bias_enable", "the bias pushes the mesh behind the stored depth", cfg)
	}
	{
		cfg := base()
		cfg.ClearDepth = 0.5
		cfg.ExpectedDepth = 0.5
		cfg.Meshes[0].Depth = 0.25
		cfg.DepthTestEnable = dynstate.StaticValue(true)
		cfg.DepthCompareOp = dynstate.StaticValue(gputypes.CompareFunctionLess)
		cfg.DepthBiasEnable = dynstate.StaticValue(true)
		cfg.DepthBias = dynstate.Both(
			dynstate.DepthBiasParams{ConstantFactor: 1 << 23},
			dynstate.DepthBiasParams{ConstantFactor: 1 << 23, Clamp: 0.125})
		add("depth_bias_clamp", "the clamp keeps the biased mesh in front", cfg)
	}

	// Rasterizer discard.
	{
		cfg := base()
		cfg.RastDiscardEnable = dynstate.Both(true, false)
		add("rast_discard_disable", "dynamically re-enable rasterization", cfg)
	}
	{
		cfg := base()
		cfg.RastDiscardEnable = dynstate.Both(false, true)
		cfg.Reference = clearRef()
		add("rast_discard_enable", "dynamically discard all rasterization", cfg)
	}

	// Logic op on an unsigned integer target.
	{
		cfg := base()
		cfg.LogicOp = dynstate.Both(dynstate.LogicClear, dynstate.LogicOr)
		cfg.ClearColor = framebuffer.RGBAUint(0x0f, 0x0f, 0x0f, 0x0f)
		cfg.Meshes[0].Color = framebuffer.RGBAUint(0xf0, 0x00, 0xaa, 0xff)
		cfg.Reference = oracle.SingleColor{Color: framebuffer.RGBAUint(0xff, 0x0f, 0xaf, 0xff)}
		add("logic_op_or", "the OR logic op merges source and destination bits", cfg)
	}

	// Primitive restart on a row-by-row line strip.
	{
		cfg := base()
		cfg.Topology = dynstate.StaticValue(dynstate.TopologyLineStrip)
		cfg.PrimRestartEnable = dynstate.Both(false, true)
		cfg.Reference = oracle.LastSegmentMissing{
			Geometry: dynstate.DefaultGeometryColor(),
			Clear:    dynstate.DefaultClearColor(),
		}
		add("prim_restart_enable", "the restart index cuts the final line segment", cfg)
	}

	// Stencil enable plus the generated state sweep.
	{
		cfg := base()
		cfg.StencilTestEnable = dynstate.Both(false, true)
		cfg.StencilOps = dynstate.StaticValue([]dynstate.StencilOpParams{{
			Face:    dynstate.FaceFrontAndBack,
			PassOp:  dynstate.StencilReplace,
			Compare: gputypes.CompareFunctionAlways,
		}})
		cfg.StencilRef = stencilMidVal
		cfg.ExpectedStencil = stencilMidVal
		add("stencil_test_enable", "enabling the stencil test writes the reference", cfg)
	}
	cases = append(cases, stencilSweep(o)...)

	// Mesh shading variants, gated on backend capability.
	{
		cfg := base()
		cfg.CullMode = dynstate.Both(dynstate.CullFrontAndBack, dynstate.CullBack)
		cfg.UseMeshShaders = true
		add("mesh_shader_cull_back", "cull override on a mesh shading pipeline", cfg)
	}
	{
		cfg := base()
		cfg.CullMode = dynstate.Both(dynstate.CullFrontAndBack, dynstate.CullBack)
		cfg.BindUnusedMeshPipeline = true
		add("bind_unused_mesh_pipeline", "an abandoned mesh pipeline bind must not leak state", cfg)
	}

	return cases
}

// All returns every case for every ordering, namespaced ordering/name.
func All() []Case {
	var out []Case
	for _, o := range dynstate.Orderings() {
		for _, c := range Cases(o) {
			c.Name = o.String() + "/" + c.Name
			out = append(out, c)
		}
	}
	return out
}

var compareNames = map[gputypes.CompareFunction]string{
	gputypes.CompareFunctionNever:        "never",
	gputypes.CompareFunctionLess:         "less",
	gputypes.CompareFunctionEqual:        "equal",
	gputypes.CompareFunctionLessEqual:    "less_equal",
	gputypes.CompareFunctionGreater:      "greater",
	gputypes.CompareFunctionNotEqual:     "not_equal",
	gputypes.CompareFunctionGreaterEqual: "greater_equal",
	gputypes.CompareFunctionAlways:       "always",
}

func compareFunctions() []gputypes.CompareFunction {
	return []gputypes.CompareFunction{
		gputypes.CompareFunctionNever,
		gputypes.CompareFunctionLess,
		gputypes.CompareFunctionEqual,
		gputypes.CompareFunctionLessEqual,
		gputypes.CompareFunctionGreater,
		gputypes.CompareFunctionNotEqual,
		gputypes.CompareFunctionGreaterEqual,
		gputypes.CompareFunctionAlways,
	}
}

// depthCompareCases covers every compare op. The baseline op is chosen
// so the wrong pipeline draws the opposite picture.
func depthCompareCases(o dynstate.Ordering) []Case {
	type setup struct {
		meshDepth float32
		visible   bool
	}
	// Against a cleared depth of 0.5.
	setups := map[gputypes.CompareFunction]setup{
		gputypes.CompareFunctionNever:        {0.25, false},
		gputypes.CompareFunctionLess:         {0.25, true},
		gputypes.CompareFunctionEqual:        {0.5, true},
		gputypes.CompareFunctionLessEqual:    {0.5, true},
		gputypes.CompareFunctionGreater:      {0.75, true},
		gputypes.CompareFunctionNotEqual:     {0.25, true},
		gputypes.CompareFunctionGreaterEqual: {0.5, true},
		gputypes.CompareFunctionAlways:       {0.75, true},
	}

	var cases []Case
	for _, cmp := range compareFunctions() {
		s := setups[cmp]

		baseline := gputypes.CompareFunctionNever
		if !s.visible {
			baseline = gputypes.CompareFunctionAlways
		}

		cfg := dynstate.NewConfig(o, vertex.WithPadding())
		cfg.ClearDepth = 0.5
		cfg.ExpectedDepth = 0.5
		cfg.Meshes[0].Depth = s.meshDepth
		cfg.DepthTestEnable = dynstate.StaticValue(true)
		cfg.DepthCompareOp = dynstate.Both(baseline, cmp)
		if !s.visible {
			cfg.Reference = clearRef()
		}

		desc := "dynamic depth compare against a 0.5 clear"
		if cmp == gputypes.CompareFunctionEqual {
			// Two meshes at the same depth: the first writes 0.5, the
			// second at 0.25 must then fail the equality test.
			red := framebuffer.RGBA(1, 0, 0, 1)
			cfg.Meshes = []dynstate.MeshParams{
				{Color: red, Depth: 0.5, Scale: 1},
				{Color: dynstate.DefaultGeometryColor(), Depth: 0.25, Scale: 1},
			}
			cfg.DepthWriteEnable = dynstate.StaticValue(true)
			cfg.Reference = oracle.SingleColor{Color: red}
			desc = "equal compare keeps the first mesh and rejects the second"
		}

		cases = append(cases, Case{
			Name:        "depth_compare_" + compareNames[cmp],
			Description: desc,
			Config:      cfg,
		})
	}
	return cases
}

// stencilMidVal sits strictly between the extreme clear values so clamp
// and wrap results stay distinguishable.
const stencilMidVal = 102

// stencilSweep generates pass-path cases for every compare and op
// combination, with the clear value chosen so the comparison passes.
// Combinations whose op result equals the clear value are filtered:
// they cannot be told apart from a disabled stencil test.
func stencilSweep(o dynstate.Ordering) []Case {
	// Clear value making "ref OP stored" hold for ref = stencilMidVal.
	passingClear := map[gputypes.CompareFunction]uint8{
		gputypes.CompareFunctionLess:         255,
		gputypes.CompareFunctionEqual:        stencilMidVal,
		gputypes.CompareFunctionLessEqual:    255,
		gputypes.CompareFunctionGreater:      0,
		gputypes.CompareFunctionNotEqual:     0,
		gputypes.CompareFunctionGreaterEqual: 0,
		gputypes.CompareFunctionAlways:       0,
	}

	ops := []dynstate.StencilOp{
		dynstate.StencilKeep, dynstate.StencilZero, dynstate.StencilReplace,
		dynstate.StencilIncClamp, dynstate.StencilDecClamp, dynstate.StencilInvert,
		dynstate.StencilIncWrap, dynstate.StencilDecWrap,
	}

	var cases []Case
	for _, cmp := range compareFunctions() {
		for _, op := range ops {
			var clear, expected uint8
			var failing bool

			if cmp == gputypes.CompareFunctionNever {
				// Never cannot pass: exercise the fail op instead.
				failing = true
				clear = stencilMidVal
				expected = dynstate.StencilResult(op, clear, stencilMidVal)
			} else {
				clear = passingClear[cmp]
				expected = dynstate.StencilResult(op, clear, stencilMidVal)
			}
			if expected == clear {
				continue
			}

			params := dynstate.StencilOpParams{
				Face:    dynstate.FaceFrontAndBack,
				Compare: cmp,
			}
			if failing {
				params.FailOp = op
			} else {
				params.PassOp = op
			}

			cfg := dynstate.NewConfig(o, vertex.WithPadding())
			cfg.StencilTestEnable = dynstate.Both(false, true)
			cfg.StencilOps = dynstate.StaticValue([]dynstate.StencilOpParams{params})
			cfg.StencilRef = stencilMidVal
			cfg.ClearStencil = clear
			cfg.ExpectedStencil = expected
			if failing {
				cfg.Reference = clearRef()
			}

			cases = append(cases, Case{
				Name:        fmt.Sprintf("stencil_%s_%s", compareNames[cmp], op),
				Description: "stencil sweep over compare and op",
				Config:      cfg,
			})
		}
	}
	return cases
}
