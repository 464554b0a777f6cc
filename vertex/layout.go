// Package vertex provides the vertex layout generators: each variant
// produces shader-side attribute declarations and host-side buffer
// layouts for one vertex representation, plus the raw bytes for a list of
// 2D coordinates.
//
// The byte layout produced by Materialize must exactly match the
// offset/stride metadata reported by Attributes and Bindings for the same
// variant. Verification reads back what the host wrote; if the two
// outputs drift apart every scenario using the variant fails for the
// wrong reason.
package vertex

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Attribute describes one shader input attribute: where it lives in the
// vertex buffers and how the shader addresses it.
type Attribute struct {
	Binding  uint32
	Location uint32
	Format   gputypes.VertexFormat
	Offset   uint32
}

// Binding describes one vertex buffer binding.
type Binding struct {
	Index    uint32
	Stride   uint32
	StepMode gputypes.VertexStepMode
}

// Layout is one vertex representation. Implementations are stateless
// singletons; scenario descriptors hold them by reference.
type Layout interface {
	// Name returns the variant name used in scenario case names.
	Name() string

	// Attributes returns the attribute descriptions. The order is part
	// of the contract: some variants deliberately declare attributes
	// out of binding order.
	Attributes() []Attribute

	// Bindings returns the binding descriptions for the given
	// per-binding strides. len(strides) must equal BindingCount.
	Bindings(strides []uint32) []Binding

	// BindingCount returns the number of vertex buffer bindings.
	BindingCount() int

	// DefaultStrides returns the natural stride of each binding, the
	// one Materialize writes at.
	DefaultStrides() []uint32

	// Declarations returns the WGSL vertex input struct fields, in
	// location order.
	Declarations() []string

	// CoordExpr returns a WGSL expression over the declared inputs that
	// reconstructs the 2D coordinate. Filler attributes participate so
	// the compiler cannot drop them.
	CoordExpr() string

	// Materialize returns one byte buffer per binding for the given
	// coordinates, written at the natural strides, with leadingPad
	// bytes of filler before the first vertex and trailingPad after the
	// last.
	Materialize(points [][2]float32, leadingPad, trailingPad int) [][]byte
}

// padByte fills leading and trailing buffer regions that no vertex fetch
// should ever touch. A recognizable garbage value, not zero, so reads
// from the pad are visible in output.
const padByte = 0xff

// BufferLayouts groups a layout's attributes by binding into the
// wire-level form pipeline creation consumes.
func BufferLayouts(l Layout, strides []uint32) []gputypes.VertexBufferLayout {
	bindings := l.Bindings(strides)
	attrs := l.Attributes()

	out := make([]gputypes.VertexBufferLayout, 0, len(bindings))
	for _, b := range bindings {
		layout := gputypes.VertexBufferLayout{
			ArrayStride: uint64(b.Stride),
			StepMode:    b.StepMode,
		}
		for _, a := range attrs {
			if a.Binding != b.Index {
				continue
			}
			layout.Attributes = append(layout.Attributes, gputypes.VertexAttribute{
				Format:         a.Format,
				Offset:         uint64(a.Offset),
				ShaderLocation: a.Location,
			})
		}
		out = append(out, layout)
	}
	return out
}

func putFloat32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
}

// paddedBuffer allocates a buffer for n vertices at the given stride with
// leading and trailing pad regions filled with padByte. The vertex region
// itself starts zeroed.
func paddedBuffer(n int, stride, leadingPad, trailingPad int) []byte {
	buf := make([]byte, leadingPad+n*stride+trailingPad)
	for i := 0; i < leadingPad; i++ {
		buf[i] = padByte
	}
	for i := len(buf) - trailingPad; i < len(buf); i++ {
		buf[i] = padByte
	}
	return buf
}
