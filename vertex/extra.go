package vertex

import "github.com/gogpu/gputypes"

// extraAttributes stretches the vertex to stride 96: the coordinate at
// offset 0, eighty bytes of padding, then a vec2 of ones at offset 88
// consumed by a second attribute on the same binding. Probes drivers that
// mishandle large strides or multiple attributes per binding when the
// stride is set dynamically.
type extraAttributes struct{}

var extraAttributesInstance extraAttributes

// ExtraAttributes returns the wide single-binding layout.
func ExtraAttributes() Layout { return extraAttributesInstance }

func (extraAttributes) Name() string { return "extra_attributes" }

func (extraAttributes) Attributes() []Attribute {
	return []Attribute{
		{Binding: 0, Location: 0, Format: gputypes.VertexFormatFloat32x2, Offset: 0},
		{Binding: 0, Location: 1, Format: gputypes.VertexFormatFloat32x2, Offset: 88},
	}
}

func (extraAttributes) Bindings(strides []uint32) []Binding {
	return []Binding{
		{Index: 0, Stride: strides[0], StepMode: gputypes.VertexStepModeVertex},
	}
}

func (extraAttributes) BindingCount() int { return 1 }

func (extraAttributes) DefaultStrides() []uint32 { return []uint32{96} }

func (extraAttributes) Declarations() []string {
	return []string{
		"@location(0) coords: vec2<f32>,",
		"@location(1) ones: vec2<f32>,",
	}
}

func (extraAttributes) CoordExpr() string { return "(in.coords * in.ones)" }

func (extraAttributes) Materialize(points [][2]float32, leadingPad, trailingPad int) [][]byte {
	const stride = 96
	buf := paddedBuffer(len(points), stride, leadingPad, trailingPad)
	for i, p := range points {
		off := leadingPad + i*stride
		putFloat32(buf, off, p[0])
		putFloat32(buf, off+4, p[1])
		// Bytes 8..87 stay zero. The ones vector sits at the end of
		// the stride so a driver using a stale short stride fetches
		// zeros instead and visibly collapses the geometry.
		putFloat32(buf, off+88, 1)
		putFloat32(buf, off+92, 1)
	}
	return [][]byte{buf}
}
