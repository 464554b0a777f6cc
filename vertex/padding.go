package vertex

import "github.com/gogpu/gputypes"

// withPadding is the simplest representation: a single binding whose
// vertices carry the 2D coordinate followed by eight bytes of unused
// padding, stride 16.
type withPadding struct{}

var withPaddingInstance withPadding

// WithPadding returns the single-binding padded layout.
func WithPadding() Layout { return withPaddingInstance }

func (withPadding) Name() string { return "with_padding" }

func (withPadding) Attributes() []Attribute {
	return []Attribute{
		{Binding: 0, Location: 0, Format: gputypes.VertexFormatFloat32x2, Offset: 0},
	}
}

func (withPadding) Bindings(strides []uint32) []Binding {
	return []Binding{
		{Index: 0, Stride: strides[0], StepMode: gputypes.VertexStepModeVertex},
	}
}

func (withPadding) BindingCount() int { return 1 }

func (withPadding) DefaultStrides() []uint32 { return []uint32{16} }

func (withPadding) Declarations() []string {
	return []string{"@location(0) coords: vec2<f32>,"}
}

func (withPadding) CoordExpr() string { return "in.coords" }

func (withPadding) Materialize(points [][2]float32, leadingPad, trailingPad int) [][]byte {
	const stride = 16
	buf := paddedBuffer(len(points), stride, leadingPad, trailingPad)
	for i, p := range points {
		off := leadingPad + i*stride
		putFloat32(buf, off, p[0])
		putFloat32(buf, off+4, p[1])
	}
	return [][]byte{buf}
}
