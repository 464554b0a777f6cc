package dynstate

// ApplyLogicOp returns the framebuffer value produced by applying the
// logic op to a source fragment and the destination value already in the
// framebuffer, per channel, masked to the target format's bit depth.
func ApplyLogicOp(op LogicOp, src, dst [4]uint32, bits uint32) [4]uint32 {
	mask := uint32(1)<<bits - 1

	var out [4]uint32
	for i := range out {
		s, d := src[i], dst[i]
		var v uint32
		switch op {
		case LogicClear:
			v = 0
		case LogicAnd:
			v = s & d
		case LogicAndReverse:
			v = s &^ d
		case LogicCopy:
			v = s
		case LogicAndInverted:
			v = ^s & d
		case LogicNoOp:
			v = d
		case LogicXor:
			v = s ^ d
		case LogicOr:
			v = s | d
		case LogicNor:
			v = ^(s | d)
		case LogicEquivalent:
			v = ^(s ^ d)
		case LogicInvert:
			v = ^d
		case LogicOrReverse:
			v = s | ^d
		case LogicCopyInverted:
			v = ^s
		case LogicOrInverted:
			v = ^s | d
		case LogicNand:
			v = ^(s & d)
		case LogicSet:
			v = mask
		}
		out[i] = v & mask
	}
	return out
}
