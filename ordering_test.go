package dynstate

import "testing"

func TestOrderingNames(t *testing.T) {
	tests := []struct {
		ordering Ordering
		want     string
	}{
		{AtStart, "cmd_buffer_start"},
		{BeforeDraw, "before_draw"},
		{BetweenPipelines, "between_pipelines"},
		{AfterPipelines, "after_pipelines"},
		{BeforeCorrectStatic, "before_good_static"},
		{TwoDrawsThenDynamic, "two_draws_dynamic"},
		{TwoDrawsThenStatic, "two_draws_static"},
	}
	for _, tt := range tests {
		if got := tt.ordering.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.ordering, got, tt.want)
		}
	}
}

func TestOrderingPredicates(t *testing.T) {
	tests := []struct {
		ordering    Ordering
		reversed    bool
		passes      int
		staticFirst bool
		usesStatic  bool
	}{
		{AtStart, false, 1, false, false},
		{BeforeDraw, false, 1, false, false},
		{BetweenPipelines, false, 1, true, true},
		{AfterPipelines, false, 1, true, true},
		{BeforeCorrectStatic, true, 1, false, true},
		{TwoDrawsThenDynamic, false, 2, true, true},
		{TwoDrawsThenStatic, true, 2, false, true},
	}
	for _, tt := range tests {
		if got := tt.ordering.Reversed(); got != tt.reversed {
			t.Errorf("%s: Reversed() = %v, want %v", tt.ordering, got, tt.reversed)
		}
		if got := tt.ordering.Passes(); got != tt.passes {
			t.Errorf("%s: Passes() = %d, want %d", tt.ordering, got, tt.passes)
		}
		if got := tt.ordering.BindsStaticFirst(); got != tt.staticFirst {
			t.Errorf("%s: BindsStaticFirst() = %v, want %v", tt.ordering, got, tt.staticFirst)
		}
		if got := tt.ordering.UsesStaticPipeline(); got != tt.usesStatic {
			t.Errorf("%s: UsesStaticPipeline() = %v, want %v", tt.ordering, got, tt.usesStatic)
		}
	}
}

func TestOrderingsComplete(t *testing.T) {
	all := Orderings()
	if len(all) != 7 {
		t.Fatalf("len(Orderings()) = %d, want 7", len(all))
	}
	for i, o := range all {
		if int(o) != i {
			t.Errorf("Orderings()[%d] = %v", i, o)
		}
	}
}
