package dynstate

// CullMode selects which primitive faces are discarded before
// rasterization.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
	CullFrontAndBack
)

// String returns the lowercase name of the cull mode.
func (m CullMode) String() string {
	switch m {
	case CullNone:
		return "none"
	case CullFront:
		return "front"
	case CullBack:
		return "back"
	case CullFrontAndBack:
		return "front_and_back"
	}
	return "unknown"
}

// FrontFace selects which winding order counts as front-facing.
type FrontFace uint8

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

func (f FrontFace) String() string {
	if f == FrontFaceCW {
		return "cw"
	}
	return "ccw"
}

// Topology is the primitive assembly mode.
type Topology uint8

const (
	TopologyPointList Topology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
	TopologyPatchList
)

func (t Topology) String() string {
	switch t {
	case TopologyPointList:
		return "point_list"
	case TopologyLineList:
		return "line_list"
	case TopologyLineStrip:
		return "line_strip"
	case TopologyTriangleList:
		return "triangle_list"
	case TopologyTriangleStrip:
		return "triangle_strip"
	case TopologyPatchList:
		return "patch_list"
	}
	return "unknown"
}

// TopologyClass groups topologies that drivers may substitute for one
// another when the topology is set dynamically.
type TopologyClass uint8

const (
	ClassPoint TopologyClass = iota
	ClassLine
	ClassTriangle
	ClassPatch
)

// Class returns the topology's class.
func (t Topology) Class() TopologyClass {
	switch t {
	case TopologyPointList:
		return ClassPoint
	case TopologyLineList, TopologyLineStrip:
		return ClassLine
	case TopologyPatchList:
		return ClassPatch
	}
	return ClassTriangle
}

func (c TopologyClass) String() string {
	switch c {
	case ClassPoint:
		return "point"
	case ClassLine:
		return "line"
	case ClassPatch:
		return "patch"
	}
	return "triangle"
}

// StencilOp is the update applied to the stored stencil value after the
// stencil test.
type StencilOp uint8

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncClamp
	StencilDecClamp
	StencilInvert
	StencilIncWrap
	StencilDecWrap
)

func (op StencilOp) String() string {
	switch op {
	case StencilKeep:
		return "keep"
	case StencilZero:
		return "zero"
	case StencilReplace:
		return "replace"
	case StencilIncClamp:
		return "inc_clamp"
	case StencilDecClamp:
		return "dec_clamp"
	case StencilInvert:
		return "invert"
	case StencilIncWrap:
		return "inc_wrap"
	case StencilDecWrap:
		return "dec_wrap"
	}
	return "unknown"
}

// StencilFace selects which primitive faces a stencil parameter set
// applies to.
type StencilFace uint8

const (
	FaceFront StencilFace = iota
	FaceBack
	FaceFrontAndBack
)

func (f StencilFace) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	}
	return "front_and_back"
}

// Matches reports whether the face set covers front-facing (front=true)
// or back-facing (front=false) fragments.
func (f StencilFace) Matches(front bool) bool {
	switch f {
	case FaceFront:
		return front
	case FaceBack:
		return !front
	}
	return true
}

// LogicOp is the framebuffer logic operation applied on integer color
// targets, in the standard fixed-function order.
type LogicOp uint8

const (
	LogicClear LogicOp = iota
	LogicAnd
	LogicAndReverse
	LogicCopy
	LogicAndInverted
	LogicNoOp
	LogicXor
	LogicOr
	LogicNor
	LogicEquivalent
	LogicInvert
	LogicOrReverse
	LogicCopyInverted
	LogicOrInverted
	LogicNand
	LogicSet
)

var logicOpNames = [...]string{
	"clear", "and", "and_reverse", "copy", "and_inverted", "no_op", "xor",
	"or", "nor", "equivalent", "invert", "or_reverse", "copy_inverted",
	"or_inverted", "nand", "set",
}

func (op LogicOp) String() string {
	if int(op) < len(logicOpNames) {
		return logicOpNames[op]
	}
	return "unknown"
}

// StateKind identifies one testable dynamic-state kind.
type StateKind uint8

const (
	KindCullMode StateKind = iota
	KindFrontFace
	KindTopology
	KindViewport
	KindScissor
	KindVertexStride
	KindVertexInput
	KindDepthTestEnable
	KindDepthWriteEnable
	KindDepthCompareOp
	KindDepthBoundsTestEnable
	KindStencilTestEnable
	KindStencilOp
	KindDepthBiasEnable
	KindDepthBias
	KindRastDiscardEnable
	KindPrimRestartEnable
	KindLogicOp
	KindPatchControlPoints

	numStateKinds
)

var stateKindNames = [...]string{
	"cull_mode", "front_face", "topology", "viewport", "scissor",
	"vertex_stride", "vertex_input", "depth_test_enable",
	"depth_write_enable", "depth_compare_op", "depth_bounds_test_enable",
	"stencil_test_enable", "stencil_op", "depth_bias_enable", "depth_bias",
	"rasterizer_discard_enable", "primitive_restart_enable", "logic_op",
	"patch_control_points",
}

func (k StateKind) String() string {
	if int(k) < len(stateKindNames) {
		return stateKindNames[k]
	}
	return "unknown"
}

// StateKinds returns every testable dynamic-state kind.
func StateKinds() []StateKind {
	kinds := make([]StateKind, numStateKinds)
	for i := range kinds {
		kinds[i] = StateKind(i)
	}
	return kinds
}
