package softpipe

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate"
	"github.com/gogpu/dynstate/backend"
	"github.com/gogpu/dynstate/framebuffer"
	"github.com/gogpu/dynstate/vertex"
)

// quantizeDepth rounds a depth value to the precision of the attachment
// format. 24-bit fixed-point formats store floor-rounded fixed values;
// 32-bit float stores the value as is.
func quantizeDepth(d float32, format gputypes.TextureFormat) float32 {
	if format == gputypes.TextureFormatDepth24PlusStencil8 {
		const maxFixed = 1<<24 - 1
		return float32(math.Round(float64(d)*maxFixed) / maxFixed)
	}
	return d
}

func depthPasses(cmp gputypes.CompareFunction, frag, stored float32) bool {
	switch cmp {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return frag < stored
	case gputypes.CompareFunctionEqual:
		return frag == stored
	case gputypes.CompareFunctionLessEqual:
		return frag <= stored
	case gputypes.CompareFunctionGreater:
		return frag > stored
	case gputypes.CompareFunctionNotEqual:
		return frag != stored
	case gputypes.CompareFunctionGreaterEqual:
		return frag >= stored
	case gputypes.CompareFunctionAlways:
		return true
	}
	return false
}

func getFloat32(buf []byte, off int) float32 {
	if off < 0 || off+4 > len(buf) {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

// fetchCoords runs the vertex fetch and the variant's coordinate
// expression for one vertex, mirroring what the generated vertex shader
// computes on a device backend.
func (r *recorder) fetchCoords(st *dynstate.RenderState, elem int) [2]float32 {
	l := st.Layout
	strides := st.Strides
	if len(strides) != l.BindingCount() {
		strides = l.DefaultStrides()
	}
	// Bindings may be declared out of index order.
	bindings := make(map[uint32]vertex.Binding, l.BindingCount())
	for _, b := range l.Bindings(strides) {
		bindings[b.Index] = b
	}

	// Attribute values by shader location.
	vals := make(map[uint32][4]float32)
	for _, a := range l.Attributes() {
		b := bindings[a.Binding]

		idx := elem
		if b.StepMode == gputypes.VertexStepModeInstance {
			idx = 0
		}

		var buf []byte
		var base int
		if int(a.Binding) < len(r.vbufs) {
			buf = r.vbufs[a.Binding]
		}
		if int(a.Binding) < len(r.voffs) {
			base = int(r.voffs[a.Binding])
		}
		base += idx*int(b.Stride) + int(a.Offset)

		var v [4]float32
		n := 2
		if a.Format == gputypes.VertexFormatFloat32x4 {
			n = 4
		}
		for i := 0; i < n; i++ {
			v[i] = getFloat32(buf, base+4*i)
		}
		vals[a.Location] = v
	}

	switch l.Name() {
	case "extra_attributes":
		c, ones := vals[0], vals[1]
		return [2]float32{c[0] * ones[0], c[1] * ones[1]}
	case "multiple_bindings":
		ones, c, oneZero := vals[0], vals[1], vals[2]
		return [2]float32{
			c[0] + ones[0] - oneZero[0],
			c[1] + ones[1] - oneZero[3],
		}
	default:
		c := vals[0]
		return [2]float32{c[0], c[1]}
	}
}

// fragCtx is the per-draw fragment pipeline state: every value that is
// constant across the draw's fragments, resolved once.
type fragCtx struct {
	st      *dynstate.RenderState
	set     *targetSet
	desc    *backend.PipelineDesc
	scissor image.Rectangle
	depth   float32
	color   framebuffer.Texel
	front   bool
	uintFmt bool
}

func (r *recorder) rasterize(st dynstate.RenderState, p backend.DrawParams, elems []int, raw []uint8) {
	if st.RastDiscardEnable {
		return
	}
	if len(st.Viewports) == 0 || len(st.Scissors) == 0 {
		return
	}

	vi := p.ViewportIndex
	if vi >= len(st.Viewports) {
		vi = 0
	}
	vp := st.Viewports[vi]

	si := p.ViewportIndex
	if si >= len(st.Scissors) {
		si = 0
	}

	// Position all vertices. Depth is flat across the scene geometry, so
	// the fragment depth is a per-draw constant.
	pts := make([][2]float32, len(elems))
	for i, e := range elems {
		c := r.fetchCoords(&st, e)
		ndcX := c[0]*p.Scale + p.OffsetX
		ndcY := c[1]*p.Scale + p.OffsetY
		pts[i] = [2]float32{
			vp.X + (ndcX+1)/2*vp.Width,
			vp.Y + (ndcY+1)/2*vp.Height,
		}
	}

	depth := vp.MinDepth + p.Depth*(vp.MaxDepth-vp.MinDepth)
	if st.DepthBiasEnable {
		depth = applyDepthBias(depth, st.DepthBias, r.t.desc.DepthFormat)
	}
	// The depth test compares at attachment precision.
	depth = quantizeDepth(depth, r.t.desc.DepthFormat)

	fc := &fragCtx{
		st:      &st,
		set:     r.set,
		desc:    &r.cur.desc,
		scissor: st.Scissors[si],
		depth:   depth,
		color:   p.Color,
		front:   true,
		uintFmt: r.t.desc.ColorFormat == gputypes.TextureFormatRGBA8Uint,
	}

	topo := st.Topology
	if topo == dynstate.TopologyPatchList {
		// Patches reach the rasterizer only through a passthrough
		// triangle tessellation; any other control point count emits
		// nothing.
		if st.PatchControlPoints != 3 {
			return
		}
		topo = dynstate.TopologyTriangleList
	}

	// Primitive restart cuts strips at the all-ones index.
	runs := [][][2]float32{pts}
	if raw != nil && st.PrimRestartEnable &&
		(topo == dynstate.TopologyLineStrip || topo == dynstate.TopologyTriangleStrip) {
		runs = nil
		start := 0
		for i := range raw {
			if raw[i] == 0xff {
				runs = append(runs, pts[start:i])
				start = i + 1
			}
		}
		runs = append(runs, pts[start:])
	}

	for _, run := range runs {
		switch topo {
		case dynstate.TopologyPointList:
			for _, v := range run {
				fc.shade(int(floor(v[0])), int(floor(v[1])))
			}
		case dynstate.TopologyLineList:
			for i := 0; i+1 < len(run); i += 2 {
				drawLine(fc, run[i], run[i+1])
			}
		case dynstate.TopologyLineStrip:
			for i := 0; i+1 < len(run); i++ {
				drawLine(fc, run[i], run[i+1])
			}
		case dynstate.TopologyTriangleList:
			for i := 0; i+2 < len(run); i += 3 {
				drawTriangle(fc, run[i], run[i+1], run[i+2])
			}
		case dynstate.TopologyTriangleStrip:
			for i := 0; i+2 < len(run); i++ {
				if i%2 == 0 {
					drawTriangle(fc, run[i], run[i+1], run[i+2])
				} else {
					drawTriangle(fc, run[i+1], run[i], run[i+2])
				}
			}
		}
	}
}

// applyDepthBias adds the constant depth bias in the resolution of the
// attachment format, clamped per the sign of the clamp value.
func applyDepthBias(depth float32, p dynstate.DepthBiasParams, format gputypes.TextureFormat) float32 {
	var unit float64
	if format == gputypes.TextureFormatDepth24PlusStencil8 {
		unit = math.Ldexp(1, -24)
	} else {
		e := -126
		if depth != 0 {
			e = math.Ilogb(float64(depth))
		}
		unit = math.Ldexp(1, e-23)
	}

	bias := float64(p.ConstantFactor) * unit
	if p.Clamp > 0 && bias > float64(p.Clamp) {
		bias = float64(p.Clamp)
	} else if p.Clamp < 0 && bias < float64(p.Clamp) {
		bias = float64(p.Clamp)
	}

	d := depth + float32(bias)
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	return d
}

func floor(v float32) float64 { return math.Floor(float64(v)) }

func cross(ox, oy, ax, ay, bx, by float32) float32 {
	return (ax-ox)*(by-oy) - (ay-oy)*(bx-ox)
}

func drawTriangle(fc *fragCtx, v0, v1, v2 [2]float32) {
	area2 := cross(v0[0], v0[1], v1[0], v1[1], v2[0], v2[1])
	if area2 == 0 {
		return
	}

	// Screen space is y-down, so a counter-clockwise winding in NDC
	// appears clockwise here and carries a negative signed area.
	front := (area2 < 0) == (fc.st.FrontFace == dynstate.FrontFaceCCW)
	switch fc.st.CullMode {
	case dynstate.CullFrontAndBack:
		return
	case dynstate.CullFront:
		if front {
			return
		}
	case dynstate.CullBack:
		if !front {
			return
		}
	}
	fc.front = front

	if area2 < 0 {
		v1, v2 = v2, v1
	}

	minX := int(floor(min3(v0[0], v1[0], v2[0])))
	maxX := int(floor(max3(v0[0], v1[0], v2[0])))
	minY := int(floor(min3(v0[1], v1[1], v2[1])))
	maxY := int(floor(max3(v0[1], v1[1], v2[1])))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= fc.set.color.Width() {
		maxX = fc.set.color.Width() - 1
	}
	if maxY >= fc.set.color.Height() {
		maxY = fc.set.color.Height() - 1
	}

	// Scene geometry is aligned to whole pixels, so half-integer sample
	// positions never land exactly on a shared edge; the plain inside
	// test is watertight here.
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			py := float32(y) + 0.5
			if cross(v0[0], v0[1], v1[0], v1[1], px, py) < 0 {
				continue
			}
			if cross(v1[0], v1[1], v2[0], v2[1], px, py) < 0 {
				continue
			}
			if cross(v2[0], v2[1], v0[0], v0[1], px, py) < 0 {
				continue
			}
			fc.shade(x, y)
		}
	}
}

// drawLine walks the major axis at pixel centers, one fragment per step.
func drawLine(fc *fragCtx, a, b [2]float32) {
	fc.front = true

	dx := b[0] - a[0]
	dy := b[1] - a[1]
	adx := math.Abs(float64(dx))
	ady := math.Abs(float64(dy))

	if adx >= ady {
		if a[0] > b[0] {
			a, b = b, a
			dx, dy = -dx, -dy
		}
		x0 := int(math.Ceil(float64(a[0]) - 0.5))
		x1 := int(math.Floor(float64(b[0]) - 0.5))
		for px := x0; px <= x1; px++ {
			t := (float32(px) + 0.5 - a[0]) / dx
			y := a[1] + t*dy
			fc.shade(px, int(floor(y)))
		}
	} else {
		if a[1] > b[1] {
			a, b = b, a
			dx, dy = -dx, -dy
		}
		y0 := int(math.Ceil(float64(a[1]) - 0.5))
		y1 := int(math.Floor(float64(b[1]) - 0.5))
		for py := y0; py <= y1; py++ {
			t := (float32(py) + 0.5 - a[1]) / dy
			x := a[0] + t*dx
			fc.shade(int(floor(x)), py)
		}
	}
}

// shade runs one fragment through the per-fragment pipeline: scissor,
// depth bounds, stencil, depth, then the attachment writes.
func (fc *fragCtx) shade(x, y int) {
	if x < 0 || y < 0 || x >= fc.set.color.Width() || y >= fc.set.color.Height() {
		return
	}
	if !image.Pt(x, y).In(fc.scissor) {
		return
	}

	st := fc.st

	if st.DepthBoundsTestEnable {
		stored := fc.set.depth.At(x, y)
		if stored < fc.desc.MinDepthBounds || stored > fc.desc.MaxDepthBounds {
			return
		}
	}

	var sp dynstate.StencilOpParams
	if st.StencilTestEnable {
		// The last parameter set matching the facing wins, the same
		// precedence pipeline creation gives a front+back entry followed
		// by a per-face one.
		matched := false
		for _, ops := range st.StencilOps {
			if ops.Face.Matches(fc.front) {
				sp = ops
				matched = true
			}
		}
		if !matched {
			return
		}

		ref := fc.desc.StencilRef
		stored := fc.set.stencil.At(x, y)
		if !dynstate.StencilPasses(sp.Compare, stored, ref) {
			fc.set.stencil.Set(x, y, dynstate.StencilResult(sp.FailOp, stored, ref))
			return
		}
	}

	if st.DepthTestEnable {
		stored := fc.set.depth.At(x, y)
		if !depthPasses(st.DepthCompareOp, fc.depth, stored) {
			if st.StencilTestEnable {
				s := fc.set.stencil.At(x, y)
				fc.set.stencil.Set(x, y, dynstate.StencilResult(sp.DepthFailOp, s, fc.desc.StencilRef))
			}
			return
		}
	}

	if st.StencilTestEnable {
		s := fc.set.stencil.At(x, y)
		fc.set.stencil.Set(x, y, dynstate.StencilResult(sp.PassOp, s, fc.desc.StencilRef))
	}

	if st.DepthTestEnable && st.DepthWriteEnable {
		fc.set.depth.Set(x, y, quantizeDepth(fc.depth, fc.desc.DepthFormat))
	}

	if fc.uintFmt {
		dst := fc.set.color.At(x, y)
		out := dynstate.ApplyLogicOp(st.LogicOp, fc.color.U, dst.U, 8)
		fc.set.color.Set(x, y, framebuffer.Texel{U: out, IsUint: true})
	} else {
		fc.set.color.Set(x, y, fc.color)
	}
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
