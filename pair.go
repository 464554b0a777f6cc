package dynstate

// Pair holds the static baseline value of one pipeline parameter together
// with an optional dynamic override. When an override is present, it is
// the value the driver is expected to honor; the baseline is deliberately
// wrong so that a driver ignoring the override is caught.
//
// Pair has value semantics. Scenario descriptors copy freely.
type Pair[T any] struct {
	static  T
	dynamic T
	hasDyn  bool
}

// StaticValue returns a pair with only a baseline value.
func StaticValue[T any](v T) Pair[T] {
	return Pair[T]{static: v}
}

// Both returns a pair with a baseline and a dynamic override.
func Both[T any](static, dynamic T) Pair[T] {
	return Pair[T]{static: static, dynamic: dynamic, hasDyn: true}
}

// Static returns the baseline value.
func (p Pair[T]) Static() T { return p.static }

// Dynamic returns the override value and whether one is present.
func (p Pair[T]) Dynamic() (T, bool) { return p.dynamic, p.hasDyn }

// HasDynamic reports whether an override is present.
func (p Pair[T]) HasDynamic() bool { return p.hasDyn }

// Effective returns the override when present, else the baseline.
func (p Pair[T]) Effective() T {
	if p.hasDyn {
		return p.dynamic
	}
	return p.static
}

// SetStatic replaces the baseline value.
func (p *Pair[T]) SetStatic(v T) { p.static = v }

// SetDynamic sets the override value.
func (p *Pair[T]) SetDynamic(v T) {
	p.dynamic = v
	p.hasDyn = true
}

// Swap exchanges the baseline and override in place. A pair without an
// override is left unchanged. Swap is its own inverse.
func (p *Pair[T]) Swap() {
	if !p.hasDyn {
		return
	}
	p.static, p.dynamic = p.dynamic, p.static
}
