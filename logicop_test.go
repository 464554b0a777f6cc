package dynstate

import "testing"

func TestApplyLogicOp(t *testing.T) {
	src := [4]uint32{0b1100, 0b1100, 0b1100, 0b1100}
	dst := [4]uint32{0b1010, 0b1010, 0b1010, 0b1010}

	tests := []struct {
		op   LogicOp
		want uint32
	}{
		{LogicClear, 0},
		{LogicAnd, 0b1000},
		{LogicAndReverse, 0b0100},
		{LogicCopy, 0b1100},
		{LogicAndInverted, 0b0010},
		{LogicNoOp, 0b1010},
		{LogicXor, 0b0110},
		{LogicOr, 0b1110},
		{LogicNor, 0xf1},
		{LogicEquivalent, 0xf9},
		{LogicInvert, 0xf5},
		{LogicOrReverse, 0xfd},
		{LogicCopyInverted, 0xf3},
		{LogicOrInverted, 0xfb},
		{LogicNand, 0xf7},
		{LogicSet, 0xff},
	}
	for _, tt := range tests {
		got := ApplyLogicOp(tt.op, src, dst, 8)
		for c := 0; c < 4; c++ {
			if got[c] != tt.want {
				t.Errorf("ApplyLogicOp(%v) channel %d = %#x, want %#x",
					tt.op, c, got[c], tt.want)
			}
		}
	}
}

func TestApplyLogicOpMasksToBitDepth(t *testing.T) {
	got := ApplyLogicOp(LogicSet, [4]uint32{}, [4]uint32{}, 8)
	for c := 0; c < 4; c++ {
		if got[c] != 0xff {
			t.Errorf("Set channel %d = %#x, want 0xff", c, got[c])
		}
	}

	got = ApplyLogicOp(LogicInvert, [4]uint32{}, [4]uint32{0xff00ff}, 8)
	for c := 0; c < 4; c++ {
		if got[c] > 0xff {
			t.Errorf("Invert channel %d = %#x, exceeds 8 bits", c, got[c])
		}
	}
}
