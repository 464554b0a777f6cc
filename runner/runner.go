// Package runner executes scenario descriptors against a backend: it
// builds the pipelines, records the command timeline the ordering
// prescribes, submits, reads back, and verifies every channel against
// the reference.
package runner

import (
	"fmt"
	"strings"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/backend"
	"github.com/gogpu/dynstate/framebuffer"
	"github.com/gogpu/dynstate/shadergen"
	"github.com/gogpu/dynstate/verify"
)

// Status is the outcome class of one scenario run.
type Status int

const (
	// StatusPass means every verified channel matched the reference.
	StatusPass Status = iota
	// StatusFail means at least one channel mismatched.
	StatusFail
	// StatusSkip means the backend lacks a required capability.
	StatusSkip
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusSkip:
		return "skip"
	}
	return "unknown"
}

// Result is the outcome of one scenario run. The per-channel reports are
// populated for pass and fail outcomes; Reason explains skips and
// summarizes failures.
type Result struct {
	Status Status
	Reason string

	Color   *verify.Report
	Depth   *verify.Report
	Stencil *verify.Report
}

// Runner executes scenarios against one backend. The backend must be
// initialized.
type Runner struct {
	Backend backend.Backend
}

// New returns a runner over the given backend.
func New(b backend.Backend) *Runner { return &Runner{Backend: b} }

// pipelines holds the compiled pipelines one scenario binds.
type pipelines struct {
	static  backend.Pipeline
	dynamic backend.Pipeline
	mesh    backend.Pipeline
}

// Run executes one scenario. A descriptor invariant violation or a
// backend failure is an error; a missing capability is a Skip result.
func (r *Runner) Run(cfg *dynstate.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	caps := r.Backend.Caps()
	if reason := skipReason(caps, cfg); reason != "" {
		return &Result{Status: StatusSkip, Reason: reason}, nil
	}

	// For reversed orderings the authored override values become the
	// wrong ones: swap once so the baseline slots hold the correct
	// values the final static bind carries.
	if cfg.Ordering.Reversed() && !cfg.Swapped() {
		cfg.SwapValues()
	}

	dynstate.Logger().Debug("running scenario",
		"backend", r.Backend.Name(),
		"ordering", cfg.Ordering.String(),
		"dynamic", len(cfg.DynamicStates()),
		"passes", cfg.Passes())

	targets, err := r.Backend.CreateTargets(backend.TargetDesc{
		Width:       dynstate.FramebufferWidth,
		Height:      dynstate.FramebufferHeight,
		ColorFormat: cfg.ColorFormat(),
		DepthFormat: cfg.DepthFormat(),
		Count:       cfg.Passes(),
	})
	if err != nil {
		return nil, fmt.Errorf("runner: targets: %w", err)
	}

	pipes, err := r.buildPipelines(cfg)
	if err != nil {
		return nil, err
	}

	rec, err := r.Backend.NewRecorder(targets)
	if err != nil {
		return nil, fmt.Errorf("runner: recorder: %w", err)
	}

	for pass := 0; pass < cfg.Passes(); pass++ {
		if err := recordPass(rec, cfg, pipes, pass); err != nil {
			return nil, err
		}
	}
	if err := rec.SubmitAndWait(); err != nil {
		return nil, fmt.Errorf("runner: submit: %w", err)
	}

	color, depth, stencil, err := r.Backend.Readback(targets, cfg.Passes()-1)
	if err != nil {
		return nil, fmt.Errorf("runner: readback: %w", err)
	}

	return verifyChannels(cfg, color, depth, stencil), nil
}

// skipReason returns a non-empty reason when the backend cannot carry the
// scenario.
func skipReason(caps *backend.Caps, cfg *dynstate.Config) string {
	for _, k := range cfg.DynamicStates() {
		if !caps.Supports(k) {
			return fmt.Sprintf("dynamic %s not supported", k)
		}
	}
	if (cfg.UseMeshShaders || cfg.BindUnusedMeshPipeline) && !caps.MeshShader {
		return "mesh shaders not supported"
	}
	if cfg.NeedsGeometryShader() && !caps.GeometryShader {
		return "geometry shaders not supported"
	}
	if cfg.NeedsTessellation() && !caps.Tessellation {
		return "tessellation not supported"
	}
	if cfg.NeedsDepthBiasClamp() && !caps.DepthBiasClamp {
		return "depth bias clamp not supported"
	}
	if (cfg.DepthBoundsTestEnable.Static() || cfg.DepthBoundsTestEnable.Effective()) && !caps.DepthBounds {
		return "depth bounds test not supported"
	}
	if cfg.TestsLogicOp() && !caps.LogicOp {
		return "logic ops not supported"
	}
	if cfg.NeedsIndexBuffer() && !caps.IndexUint8 {
		return "8-bit indices not supported"
	}
	n := len(cfg.Viewports.Static())
	if v, ok := cfg.Viewports.Dynamic(); ok && len(v) > n {
		n = len(v)
	}
	if n > caps.MaxViewports {
		return fmt.Sprintf("%d viewports exceed limit %d", n, caps.MaxViewports)
	}
	return ""
}

func (r *Runner) buildPipelines(cfg *dynstate.Config) (*pipelines, error) {
	static := cfg.StaticState()
	effective := cfg.EffectiveState()

	frag := shadergen.Fragment()
	if cfg.TestsLogicOp() {
		frag = shadergen.FragmentUint()
	}

	base := backend.PipelineDesc{
		MinDepthBounds: cfg.MinDepthBounds,
		MaxDepthBounds: cfg.MaxDepthBounds,
		StencilRef:     cfg.StencilRef,
		ColorFormat:    cfg.ColorFormat(),
		DepthFormat:    cfg.DepthFormat(),
		FragmentWGSL:   frag,
	}

	dynDesc := base
	dynDesc.Label = "dynamic"
	dynDesc.State = static
	dynDesc.Dynamic = cfg.DynamicStates()
	dynDesc.VertexWGSL = shadergen.Vertex(effective.Layout)
	dynDesc.MeshShading = cfg.UseMeshShaders

	p := &pipelines{}
	var err error
	p.dynamic, err = r.Backend.CreatePipeline(dynDesc)
	if err != nil {
		return nil, fmt.Errorf("runner: dynamic pipeline: %w", err)
	}

	if cfg.Ordering.UsesStaticPipeline() {
		staticDesc := base
		staticDesc.Label = "static"
		staticDesc.State = static
		staticDesc.VertexWGSL = shadergen.Vertex(static.Layout)
		staticDesc.MeshShading = cfg.UseMeshShaders
		p.static, err = r.Backend.CreatePipeline(staticDesc)
		if err != nil {
			return nil, fmt.Errorf("runner: static pipeline: %w", err)
		}
	}

	if cfg.BindUnusedMeshPipeline {
		meshDesc := base
		meshDesc.Label = "unused-mesh"
		meshDesc.State = static
		meshDesc.VertexWGSL = shadergen.Vertex(static.Layout)
		meshDesc.MeshShading = true
		p.mesh, err = r.Backend.CreatePipeline(meshDesc)
		if err != nil {
			return nil, fmt.Errorf("runner: mesh pipeline: %w", err)
		}
	}

	return p, nil
}

// recordPass records one render pass per the scenario's ordering.
func recordPass(rec backend.Recorder, cfg *dynstate.Config, p *pipelines, pass int) error {
	clear := backend.ClearValues{
		Color:   cfg.ClearColor,
		Depth:   cfg.ClearDepth,
		Stencil: cfg.ClearStencil,
	}
	if err := rec.Begin(pass, clear); err != nil {
		return fmt.Errorf("runner: begin pass %d: %w", pass, err)
	}

	// An abandoned mesh pipeline bind probes state leakage across
	// pipeline types.
	if p.mesh != nil {
		rec.BindPipeline(p.mesh)
	}

	switch cfg.Ordering {
	case dynstate.AtStart:
		applyDynamic(rec, cfg)
		rec.BindPipeline(p.dynamic)
		drawMeshes(rec, cfg, nil)
	case dynstate.BeforeDraw:
		rec.BindPipeline(p.dynamic)
		drawMeshes(rec, cfg, func() { applyDynamic(rec, cfg) })
	case dynstate.BetweenPipelines:
		rec.BindPipeline(p.static)
		applyDynamic(rec, cfg)
		rec.BindPipeline(p.dynamic)
		drawMeshes(rec, cfg, nil)
	case dynstate.AfterPipelines:
		rec.BindPipeline(p.static)
		rec.BindPipeline(p.dynamic)
		applyDynamic(rec, cfg)
		drawMeshes(rec, cfg, nil)
	case dynstate.BeforeCorrectStatic:
		rec.BindPipeline(p.dynamic)
		applyDynamic(rec, cfg)
		rec.BindPipeline(p.static)
		drawMeshes(rec, cfg, nil)
	case dynstate.TwoDrawsThenDynamic:
		if pass == 0 {
			rec.BindPipeline(p.static)
		} else {
			rec.BindPipeline(p.dynamic)
			applyDynamic(rec, cfg)
		}
		drawMeshes(rec, cfg, nil)
	case dynstate.TwoDrawsThenStatic:
		if pass == 0 {
			rec.BindPipeline(p.dynamic)
			applyDynamic(rec, cfg)
		} else {
			rec.BindPipeline(p.static)
		}
		drawMeshes(rec, cfg, nil)
	}

	if err := rec.End(); err != nil {
		return fmt.Errorf("runner: end pass %d: %w", pass, err)
	}
	return nil
}

// applyDynamic issues one setter per overridden pair, carrying the
// override value.
func applyDynamic(rec backend.Recorder, cfg *dynstate.Config) {
	if v, ok := cfg.CullMode.Dynamic(); ok {
		rec.SetCullMode(v)
	}
	if v, ok := cfg.FrontFace.Dynamic(); ok {
		rec.SetFrontFace(v)
	}
	if v, ok := cfg.Topology.Dynamic(); ok {
		rec.SetTopology(v)
	}
	if v, ok := cfg.Viewports.Dynamic(); ok {
		rec.SetViewports(v)
	}
	if v, ok := cfg.Scissors.Dynamic(); ok {
		rec.SetScissors(v)
	}
	if v, ok := cfg.Strides.Dynamic(); ok {
		rec.SetVertexStrides(v)
	}
	if v, ok := cfg.Layout.Dynamic(); ok {
		rec.SetVertexInput(v, cfg.Strides.Effective())
	}
	if v, ok := cfg.DepthTestEnable.Dynamic(); ok {
		rec.SetDepthTestEnable(v)
	}
	if v, ok := cfg.DepthWriteEnable.Dynamic(); ok {
		rec.SetDepthWriteEnable(v)
	}
	if v, ok := cfg.DepthCompareOp.Dynamic(); ok {
		rec.SetDepthCompareOp(v)
	}
	if v, ok := cfg.DepthBoundsTestEnable.Dynamic(); ok {
		rec.SetDepthBoundsTestEnable(v)
	}
	if v, ok := cfg.StencilTestEnable.Dynamic(); ok {
		rec.SetStencilTestEnable(v)
	}
	if v, ok := cfg.StencilOps.Dynamic(); ok {
		rec.SetStencilOps(v)
	}
	if v, ok := cfg.DepthBiasEnable.Dynamic(); ok {
		rec.SetDepthBiasEnable(v)
	}
	if v, ok := cfg.DepthBias.Dynamic(); ok {
		rec.SetDepthBias(v)
	}
	if v, ok := cfg.RastDiscardEnable.Dynamic(); ok {
		rec.SetRastDiscardEnable(v)
	}
	if v, ok := cfg.PrimRestartEnable.Dynamic(); ok {
		rec.SetPrimRestartEnable(v)
	}
	if v, ok := cfg.LogicOp.Dynamic(); ok {
		rec.SetLogicOp(v)
	}
	if v, ok := cfg.PatchControlPoints.Dynamic(); ok {
		rec.SetPatchControlPoints(v)
	}
}

// drawMeshes runs the per-mesh, per-viewport draw loop. The geometry is
// generated for the state governing the verified draw; non-verified
// passes reuse it.
func drawMeshes(rec backend.Recorder, cfg *dynstate.Config, beforeDraw func()) {
	resolved := dynstate.Resolve(cfg)

	var strides []uint32
	if cfg.Strides.HasDynamic() {
		strides = cfg.Strides.Effective()
	}

	viewports := len(resolved.Viewports)
	for _, m := range cfg.Meshes {
		coords := dynstate.MeshCoords(resolved.Topology, m)
		bufs := resolved.Layout.Materialize(coords, cfg.LeadingVertexBytes, cfg.TrailingVertexBytes)

		offsets := make([]uint32, len(bufs))
		for i := range offsets {
			offsets[i] = uint32(cfg.LeadingVertexBytes)
		}
		rec.BindVertexBuffers(bufs, offsets, strides)

		indexed := cfg.NeedsIndexBuffer()
		if indexed {
			rec.BindIndexBuffer(dynstate.SequentialIndices(len(coords)))
		}

		for v := 0; v < viewports; v++ {
			params := backend.DrawParams{
				Color:         m.Color,
				Depth:         m.Depth,
				Scale:         m.Scale,
				OffsetX:       m.OffsetX,
				OffsetY:       m.OffsetY,
				ViewportIndex: v,
			}
			if beforeDraw != nil {
				beforeDraw()
			}
			if indexed {
				rec.DrawIndexed(params, len(coords))
			} else {
				rec.Draw(params, len(coords), 0)
			}
		}
	}
}

// verifyChannels compares the readback against the reference oracle and
// the expected depth/stencil planes.
func verifyChannels(cfg *dynstate.Config, color *framebuffer.Color, depth *framebuffer.Depth, stencil *framebuffer.Stencil) *Result {
	want := framebuffer.NewColor(dynstate.FramebufferWidth, dynstate.FramebufferHeight, cfg.ColorFormat())
	cfg.Reference.Apply(want)

	res := &Result{Status: StatusPass}
	res.Color = verify.Colors(color, want, verify.ColorThreshold(cfg.ColorFormat()))
	if depth != nil {
		res.Depth = verify.Depths(depth, cfg.ExpectedDepth, verify.DepthEpsilon(cfg.DepthFormat()))
	}
	if stencil != nil {
		res.Stencil = verify.Stencils(stencil, cfg.ExpectedStencil)
	}

	var bad []string
	if !res.Color.Match {
		bad = append(bad, fmt.Sprintf("color (%d pixels)", res.Color.Mismatches))
	}
	if res.Depth != nil && !res.Depth.Match {
		bad = append(bad, fmt.Sprintf("depth (%d pixels)", res.Depth.Mismatches))
	}
	if res.Stencil != nil && !res.Stencil.Match {
		bad = append(bad, fmt.Sprintf("stencil (%d pixels)", res.Stencil.Mismatches))
	}
	if len(bad) > 0 {
		res.Status = StatusFail
		res.Reason = "mismatch: " + strings.Join(bad, ", ")
		dynstate.Logger().Debug("scenario failed", "reason", res.Reason)
	}
	return res
}
