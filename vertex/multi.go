package vertex

import "github.com/gogpu/gputypes"

// multipleBindings spreads the vertex across six bindings with unused
// filler bindings interleaved between the used ones, and declares both
// attributes and bindings in non-monotonic order. A driver whose dynamic
// vertex-input path assumes sequential indices reads the wrong buffer.
//
// Binding map:
//
//	0  unused zeros, per-instance
//	1  vec4 of ones at offset 32, location 0
//	2  unused zeros, per-instance
//	3  coords at offset 8, location 1
//	4  unused zeros, per-instance
//	5  (1,0,0,1) vec4 at offset 0, location 2
type multipleBindings struct{}

var multipleBindingsInstance multipleBindings

// MultipleBindings returns the six-binding layout.
func MultipleBindings() Layout { return multipleBindingsInstance }

func (multipleBindings) Name() string { return "multiple_bindings" }

func (multipleBindings) Attributes() []Attribute {
	// Deliberately not sorted by binding or location.
	return []Attribute{
		{Binding: 1, Location: 0, Format: gputypes.VertexFormatFloat32x4, Offset: 32},
		{Binding: 3, Location: 1, Format: gputypes.VertexFormatFloat32x2, Offset: 8},
		{Binding: 5, Location: 2, Format: gputypes.VertexFormatFloat32x4, Offset: 0},
	}
}

func (multipleBindings) Bindings(strides []uint32) []Binding {
	mk := func(index uint32, step gputypes.VertexStepMode) Binding {
		return Binding{Index: index, Stride: strides[index], StepMode: step}
	}
	// Deliberately not sorted by index.
	return []Binding{
		mk(2, gputypes.VertexStepModeInstance),
		mk(0, gputypes.VertexStepModeInstance),
		mk(1, gputypes.VertexStepModeVertex),
		mk(5, gputypes.VertexStepModeVertex),
		mk(4, gputypes.VertexStepModeInstance),
		mk(3, gputypes.VertexStepModeVertex),
	}
}

func (multipleBindings) BindingCount() int { return 6 }

func (multipleBindings) DefaultStrides() []uint32 {
	return []uint32{16, 48, 16, 16, 16, 16}
}

func (multipleBindings) Declarations() []string {
	return []string{
		"@location(0) padding_ones: vec4<f32>,",
		"@location(1) coords: vec2<f32>,",
		"@location(2) one_zero: vec4<f32>,",
	}
}

func (multipleBindings) CoordExpr() string {
	// padding_ones is all ones and one_zero is (1,0,0,1), so the
	// correction terms cancel exactly when the right buffers are read.
	return "(in.coords + in.padding_ones.xy - vec2<f32>(in.one_zero.x, in.one_zero.w))"
}

func (multipleBindings) Materialize(points [][2]float32, leadingPad, trailingPad int) [][]byte {
	strides := multipleBindings{}.DefaultStrides()
	n := len(points)

	bufs := make([][]byte, 6)
	for b := range bufs {
		bufs[b] = paddedBuffer(n, int(strides[b]), leadingPad, trailingPad)
	}

	for i, p := range points {
		// Binding 1: ones vector behind 32 bytes of in-stride padding.
		off := leadingPad + i*int(strides[1])
		for c := 0; c < 4; c++ {
			putFloat32(bufs[1], off+32+4*c, 1)
		}

		// Binding 3: coords behind 8 bytes of in-stride padding.
		off = leadingPad + i*int(strides[3])
		putFloat32(bufs[3], off+8, p[0])
		putFloat32(bufs[3], off+12, p[1])

		// Binding 5: the (1,0,0,1) marker.
		off = leadingPad + i*int(strides[5])
		putFloat32(bufs[5], off, 1)
		putFloat32(bufs[5], off+12, 1)
	}

	// Bindings 0, 2, 4 stay zero between the pad regions: nothing may
	// ever read them.
	return bufs
}
