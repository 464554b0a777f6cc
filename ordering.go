package dynstate

// Ordering fixes the point in the command timeline at which dynamic-state
// calls are issued relative to binding the static-baseline pipeline and
// the dynamic-override pipeline. Exactly one ordering is active per
// scenario.
type Ordering uint8

const (
	// AtStart issues the overrides once at the very beginning of command
	// recording, before any pipeline bind or draw.
	AtStart Ordering = iota

	// BeforeDraw issues the overrides immediately before each draw, after
	// all pipeline binds.
	BeforeDraw

	// BetweenPipelines binds the static pipeline, issues the overrides,
	// then binds the dynamic pipeline. Tests override persistence across
	// a pipeline switch.
	BetweenPipelines

	// AfterPipelines binds both pipelines in sequence and issues the
	// overrides only after the second bind.
	AfterPipelines

	// BeforeCorrectStatic binds the dynamic pipeline and issues overrides
	// carrying the wrong values, then binds a static pipeline whose baked
	// values are correct. Tests that a later static bind wins over
	// earlier dynamic state.
	BeforeCorrectStatic

	// TwoDrawsThenDynamic draws once with the static pipeline only, then
	// binds the dynamic pipeline, issues the overrides, and draws again.
	// Only the second pass is verified.
	TwoDrawsThenDynamic

	// TwoDrawsThenStatic draws once with the dynamic pipeline and wrong
	// override values, then binds the correct static pipeline and draws
	// again. Only the second pass is verified.
	TwoDrawsThenStatic

	numOrderings
)

var orderingNames = [...]string{
	"cmd_buffer_start", "before_draw", "between_pipelines",
	"after_pipelines", "before_good_static", "two_draws_dynamic",
	"two_draws_static",
}

func (o Ordering) String() string {
	if int(o) < len(orderingNames) {
		return orderingNames[o]
	}
	return "unknown"
}

// Reversed reports whether the ordering inverts which value is correct:
// the static pipeline carries the good values and the dynamic calls carry
// the wrong ones.
func (o Ordering) Reversed() bool {
	return o == BeforeCorrectStatic || o == TwoDrawsThenStatic
}

// Passes returns the number of render passes the ordering records. Only
// the last pass is verified.
func (o Ordering) Passes() int {
	if o == TwoDrawsThenDynamic || o == TwoDrawsThenStatic {
		return 2
	}
	return 1
}

// BindsStaticFirst reports whether the static pipeline is bound before
// the dynamic one.
func (o Ordering) BindsStaticFirst() bool {
	switch o {
	case BetweenPipelines, AfterPipelines, TwoDrawsThenDynamic:
		return true
	}
	return false
}

// UsesStaticPipeline reports whether the scenario needs a static pipeline
// at all.
func (o Ordering) UsesStaticPipeline() bool {
	return o.BindsStaticFirst() || o.Reversed()
}

// Orderings returns every ordering in declaration order.
func Orderings() []Ordering {
	out := make([]Ordering, numOrderings)
	for i := range out {
		out[i] = Ordering(i)
	}
	return out
}
