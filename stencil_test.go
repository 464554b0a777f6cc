package dynstate

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestStencilPasses(t *testing.T) {
	tests := []struct {
		cmp    gputypes.CompareFunction
		stored uint8
		ref    uint8
		want   bool
	}{
		{gputypes.CompareFunctionNever, 0, 0, false},
		{gputypes.CompareFunctionAlways, 200, 10, true},
		{gputypes.CompareFunctionLess, 100, 50, true},
		{gputypes.CompareFunctionLess, 50, 100, false},
		{gputypes.CompareFunctionLess, 50, 50, false},
		{gputypes.CompareFunctionLessEqual, 50, 50, true},
		{gputypes.CompareFunctionEqual, 102, 102, true},
		{gputypes.CompareFunctionEqual, 102, 101, false},
		{gputypes.CompareFunctionNotEqual, 102, 101, true},
		{gputypes.CompareFunctionGreater, 50, 100, true},
		{gputypes.CompareFunctionGreater, 100, 50, false},
		{gputypes.CompareFunctionGreaterEqual, 100, 100, true},
		{gputypes.CompareFunctionGreaterEqual, 101, 100, false},
	}
	for _, tt := range tests {
		got := StencilPasses(tt.cmp, tt.stored, tt.ref)
		if got != tt.want {
			t.Errorf("StencilPasses(%v, stored=%d, ref=%d) = %v, want %v",
				tt.cmp, tt.stored, tt.ref, got, tt.want)
		}
	}
}

func TestStencilResult(t *testing.T) {
	tests := []struct {
		op     StencilOp
		stored uint8
		ref    uint8
		want   uint8
	}{
		{StencilKeep, 102, 7, 102},
		{StencilZero, 102, 7, 0},
		{StencilReplace, 102, 7, 7},
		{StencilIncClamp, 102, 0, 103},
		{StencilDecClamp, 102, 0, 101},
		{StencilInvert, 0x0f, 0, 0xf0},
		{StencilIncWrap, 102, 0, 103},
		{StencilDecWrap, 102, 0, 101},
	}
	for _, tt := range tests {
		got := StencilResult(tt.op, tt.stored, tt.ref)
		if got != tt.want {
			t.Errorf("StencilResult(%v, stored=%d, ref=%d) = %d, want %d",
				tt.op, tt.stored, tt.ref, got, tt.want)
		}
	}
}

// Clamp and wrap behavior must be exact at the 0 and 255 boundaries for
// every reference value.
func TestStencilResultBoundaries(t *testing.T) {
	for ref := 0; ref <= 255; ref++ {
		r := uint8(ref)
		if got := StencilResult(StencilIncClamp, 255, r); got != 255 {
			t.Fatalf("IncClamp(255, ref=%d) = %d, want 255", ref, got)
		}
		if got := StencilResult(StencilDecClamp, 0, r); got != 0 {
			t.Fatalf("DecClamp(0, ref=%d) = %d, want 0", ref, got)
		}
		if got := StencilResult(StencilIncWrap, 255, r); got != 0 {
			t.Fatalf("IncWrap(255, ref=%d) = %d, want 0", ref, got)
		}
		if got := StencilResult(StencilDecWrap, 0, r); got != 255 {
			t.Fatalf("DecWrap(0, ref=%d) = %d, want 255", ref, got)
		}
	}
}

func TestStencilResultInvertSelfInverse(t *testing.T) {
	for v := 0; v <= 255; v++ {
		s := uint8(v)
		got := StencilResult(StencilInvert, StencilResult(StencilInvert, s, 0), 0)
		if got != s {
			t.Fatalf("Invert(Invert(%d)) = %d", v, got)
		}
	}
}
