package dynstate

import "github.com/gogpu/gputypes"

// StencilPasses reports whether the stencil test passes for the given
// comparison, stored framebuffer value, and reference value. The
// fixed-function rule compares the reference against the stored value,
// in that operand order.
func StencilPasses(cmp gputypes.CompareFunction, stored, ref uint8) bool {
	switch cmp {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return ref < stored
	case gputypes.CompareFunctionEqual:
		return ref == stored
	case gputypes.CompareFunctionLessEqual:
		return ref <= stored
	case gputypes.CompareFunctionGreater:
		return ref > stored
	case gputypes.CompareFunctionNotEqual:
		return ref != stored
	case gputypes.CompareFunctionGreaterEqual:
		return ref >= stored
	case gputypes.CompareFunctionAlways:
		return true
	}
	return false
}

// StencilResult returns the stored stencil value after applying op.
// Increment and decrement clamp at 255 and 0 respectively in the clamping
// variants and wrap around in the wrapping variants; both behaviors are
// exact at the boundaries.
func StencilResult(op StencilOp, stored, ref uint8) uint8 {
	switch op {
	case StencilKeep:
		return stored
	case StencilZero:
		return 0
	case StencilReplace:
		return ref
	case StencilIncClamp:
		if stored == 255 {
			return 255
		}
		return stored + 1
	case StencilDecClamp:
		if stored == 0 {
			return 0
		}
		return stored - 1
	case StencilInvert:
		return ^stored
	case StencilIncWrap:
		return stored + 1
	case StencilDecWrap:
		return stored - 1
	}
	return stored
}
