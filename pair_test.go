package dynstate

import "testing"

func TestPairStaticOnly(t *testing.T) {
	p := StaticValue(CullBack)

	if got := p.Effective(); got != CullBack {
		t.Errorf("Effective() = %v, want %v", got, CullBack)
	}
	if p.HasDynamic() {
		t.Error("HasDynamic() = true, want false")
	}
	if _, ok := p.Dynamic(); ok {
		t.Error("Dynamic() reported a value on a static-only pair")
	}
}

func TestPairEffectivePrefersDynamic(t *testing.T) {
	p := Both(CullFront, CullBack)

	if got := p.Static(); got != CullFront {
		t.Errorf("Static() = %v, want %v", got, CullFront)
	}
	if got := p.Effective(); got != CullBack {
		t.Errorf("Effective() = %v, want %v", got, CullBack)
	}
	d, ok := p.Dynamic()
	if !ok || d != CullBack {
		t.Errorf("Dynamic() = %v, %v, want %v, true", d, ok, CullBack)
	}
}

func TestPairSetDynamic(t *testing.T) {
	p := StaticValue(1.5)
	p.SetDynamic(2.5)

	if got := p.Effective(); got != 2.5 {
		t.Errorf("Effective() = %v, want 2.5", got)
	}
	if got := p.Static(); got != 1.5 {
		t.Errorf("Static() = %v, want 1.5", got)
	}
}

func TestPairSwap(t *testing.T) {
	p := Both(10, 20)
	p.Swap()

	if got := p.Static(); got != 20 {
		t.Errorf("Static() after Swap = %v, want 20", got)
	}
	if got := p.Effective(); got != 10 {
		t.Errorf("Effective() after Swap = %v, want 10", got)
	}
}

// Swap must be its own inverse, and a no-op without an override.
func TestPairSwapInvolution(t *testing.T) {
	p := Both(10, 20)
	orig := p
	p.Swap()
	p.Swap()
	if p != orig {
		t.Errorf("Swap(Swap(x)) = %+v, want %+v", p, orig)
	}

	s := StaticValue(7)
	origS := s
	s.Swap()
	if s != origS {
		t.Errorf("Swap on static-only pair = %+v, want unchanged %+v", s, origS)
	}
}
