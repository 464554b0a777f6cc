// Package dynstate is a conformance engine for extended dynamic state:
// pipeline parameters that a driver allows to be changed at command
// recording time instead of being baked into an immutable pipeline object.
//
// # Overview
//
// Every scenario pairs a deliberately wrong static baseline with a correct
// dynamic override for one or more parameters (cull mode, front face,
// topology, viewports, scissors, vertex strides, depth and stencil state,
// depth bias, rasterizer discard, primitive restart, logic op, patch
// control points). The scenario also fixes the point in the command
// timeline at which the overrides are issued relative to pipeline binds.
// A driver that honors dynamic state produces the expected image; one that
// silently falls back to the baked values does not.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/dynstate"
//		"github.com/gogpu/dynstate/backend"
//		_ "github.com/gogpu/dynstate/backend/softpipe"
//		"github.com/gogpu/dynstate/runner"
//		"github.com/gogpu/dynstate/vertex"
//	)
//
//	cfg := dynstate.NewConfig(dynstate.BeforeDraw, vertex.WithPadding())
//	cfg.CullMode.SetStatic(dynstate.CullFrontAndBack)
//	cfg.CullMode.SetDynamic(dynstate.CullBack)
//
//	r := runner.New(backend.MustDefault())
//	res := r.Run(cfg)
//
// # Architecture
//
// The engine is organized into:
//   - Root package: override pairs, scenario descriptors, the
//     sequence-ordering machine, and fixed-function oracles
//   - vertex, oracle: layout generators and expected-image generators
//   - framebuffer, verify: CPU-side images and per-pixel comparison
//   - backend: the graphics capability interface plus software and wgpu
//     implementations
//   - runner, catalog: scenario execution and enumeration
package dynstate
