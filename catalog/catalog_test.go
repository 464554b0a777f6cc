package catalog

import (
	"strings"
	"testing"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/backend/softpipe"
	"github.com/gogpu/dynstate/runner"
)

func TestCaseNamesUnique(t *testing.T) {
	for _, o := range dynstate.Orderings() {
		seen := map[string]bool{}
		for _, c := range Cases(o) {
			if seen[c.Name] {
				t.Errorf("%s: duplicate case name %q", o, c.Name)
			}
			seen[c.Name] = true
		}
	}
}

func TestCasesAreComplete(t *testing.T) {
	cases := Cases(dynstate.AtStart)
	if len(cases) < 70 {
		t.Fatalf("Cases() = %d cases, want the full families", len(cases))
	}

	for _, name := range []string{
		"cull_none", "cull_front_and_back",
		"front_face_ccw_cull_back", "front_face_cw_cull_back",
		"topology_triangle_strip", "topology_line_strip", "patch_control_points",
		"viewport_switch", "2_viewports_switch_clean",
		"scissor_switch", "scissor_top_half",
		"stride_with_padding", "stride_extra_attributes",
		"stride_multiple_bindings", "zero_stride",
		"vertex_input_multiple_bindings", "vertex_buffer_offset",
		"depth_test_enable", "depth_write_enable",
		"depth_compare_equal", "depth_compare_always",
		"depth_bounds_test_enable", "depth_bias_enable", "depth_bias_clamp",
		"rast_discard_disable", "rast_discard_enable",
		"logic_op_or", "prim_restart_enable",
		"stencil_test_enable", "stencil_always_replace",
		"mesh_shader_cull_back", "bind_unused_mesh_pipeline",
	} {
		if !hasCase(cases, name) {
			t.Errorf("missing case %q", name)
		}
	}
}

func hasCase(cases []Case, name string) bool {
	for _, c := range cases {
		if c.Name == name {
			return true
		}
	}
	return false
}

func TestEveryDescriptorValidates(t *testing.T) {
	for _, o := range dynstate.Orderings() {
		for _, c := range Cases(o) {
			if err := c.Config.Validate(); err != nil {
				t.Errorf("%s/%s: Validate() = %v", o, c.Name, err)
			}
		}
	}
}

func TestEnumerationIsFresh(t *testing.T) {
	a := Cases(dynstate.AtStart)
	b := Cases(dynstate.AtStart)
	a[0].Config.SwapValues()
	if b[0].Config.Swapped() {
		t.Fatal("descriptors shared between enumerations")
	}
}

func TestStencilSweepIsDistinguishable(t *testing.T) {
	// An op result equal to the clear value cannot be told apart from a
	// disabled stencil test; the sweep must filter those out.
	var n int
	for _, c := range Cases(dynstate.AtStart) {
		if !strings.HasPrefix(c.Name, "stencil_") || c.Name == "stencil_test_enable" {
			continue
		}
		n++
		if c.Config.ExpectedStencil == c.Config.ClearStencil {
			t.Errorf("%s: expected stencil equals clear value %d",
				c.Name, c.Config.ClearStencil)
		}
	}
	if n < 40 {
		t.Fatalf("stencil sweep has %d cases, want the full grid", n)
	}
}

func TestAllNamespacesByOrdering(t *testing.T) {
	all := All()
	want := len(dynstate.Orderings()) * len(Cases(dynstate.AtStart))
	if len(all) != want {
		t.Fatalf("All() = %d cases, want %d", len(all), want)
	}
	for _, c := range all {
		o, _, ok := strings.Cut(c.Name, "/")
		if !ok {
			t.Fatalf("%s: name missing ordering namespace", c.Name)
		}
		found := false
		for _, ord := range dynstate.Orderings() {
			if ord.String() == o {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: unknown ordering prefix %q", c.Name, o)
		}
	}
}

func TestFullCatalogOnSoftwareBackend(t *testing.T) {
	b := softpipe.New()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	t.Cleanup(b.Close)
	r := runner.New(b)

	for _, o := range dynstate.Orderings() {
		for _, c := range Cases(o) {
			t.Run(o.String()+"/"+c.Name, func(t *testing.T) {
				res, err := r.Run(c.Config)
				if err != nil {
					t.Fatalf("Run() = %v", err)
				}
				switch res.Status {
				case runner.StatusPass:
				case runner.StatusSkip:
					// Only mesh shading is beyond the software
					// rasterizer.
					if !c.Config.UseMeshShaders && !c.Config.BindUnusedMeshPipeline {
						t.Fatalf("unexpected skip: %s", res.Reason)
					}
				default:
					t.Fatalf("Status = %v (%s)", res.Status, res.Reason)
				}
			})
		}
	}
}
