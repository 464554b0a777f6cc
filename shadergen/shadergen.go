// Package shadergen builds the WGSL shader pair for scenario pipelines.
// The vertex shader is assembled from the vertex layout's input
// declarations and coordinate expression; the fragment shader emits the
// per-draw color, as floats or as unsigned integers depending on the
// color target format.
package shadergen

import (
	"fmt"
	"strings"
)

// Layout is the slice of the vertex layout contract shader generation
// consumes.
type Layout interface {
	Declarations() []string
	CoordExpr() string
}

// paramsWGSL is the per-draw parameter block shared by every generated
// shader. Backends fill it once per draw.
const paramsWGSL = `struct Params {
    color: vec4<f32>,
    color_u: vec4<u32>,
    depth: f32,
    scale: f32,
    offset: vec2<f32>,
}

@group(0) @binding(0) var<uniform> params: Params;
`

// Vertex returns the vertex shader for the given layout. Every declared
// attribute participates in the position expression so the compiler
// cannot eliminate a fetch.
func Vertex(l Layout) string {
	var b strings.Builder
	b.WriteString("struct VertexIn {\n")
	for _, d := range l.Declarations() {
		b.WriteString("    ")
		b.WriteString(d)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
	b.WriteString(paramsWGSL)
	fmt.Fprintf(&b, `
@vertex
fn vs_main(in: VertexIn) -> @builtin(position) vec4<f32> {
    let coords = %s;
    return vec4<f32>(coords * params.scale + params.offset, params.depth, 1.0);
}
`, l.CoordExpr())
	return b.String()
}

// Fragment returns the flat-color fragment shader for float color
// targets.
func Fragment() string {
	return paramsWGSL + `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return params.color;
}
`
}

// FragmentUint returns the flat-color fragment shader for unsigned
// integer color targets.
func FragmentUint() string {
	return paramsWGSL + `
@fragment
fn fs_main() -> @location(0) vec4<u32> {
    return params.color_u;
}
`
}
