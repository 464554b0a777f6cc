package framebuffer

// Depth is a rectangular depth buffer with float32 storage.
type Depth struct {
	width  int
	height int
	pix    []float32
}

// NewDepth creates a depth buffer with the given dimensions.
func NewDepth(width, height int) *Depth {
	return &Depth{
		width:  width,
		height: height,
		pix:    make([]float32, width*height),
	}
}

// Width returns the width of the buffer.
func (d *Depth) Width() int { return d.width }

// Height returns the height of the buffer.
func (d *Depth) Height() int { return d.height }

// At returns the depth value at (x, y). Out-of-bounds reads return 0.
func (d *Depth) At(x, y int) float32 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 0
	}
	return d.pix[y*d.width+x]
}

// Set stores a depth value at (x, y). Out-of-bounds writes are discarded.
func (d *Depth) Set(x, y int, v float32) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return
	}
	d.pix[y*d.width+x] = v
}

// Fill stores v into every pixel.
func (d *Depth) Fill(v float32) {
	for i := range d.pix {
		d.pix[i] = v
	}
}

// Clone returns a deep copy of the buffer.
func (d *Depth) Clone() *Depth {
	out := NewDepth(d.width, d.height)
	copy(out.pix, d.pix)
	return out
}

// Stencil is a rectangular stencil buffer with uint8 storage.
type Stencil struct {
	width  int
	height int
	pix    []uint8
}

// NewStencil creates a stencil buffer with the given dimensions.
func NewStencil(width, height int) *Stencil {
	return &Stencil{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}
}

// Width returns the width of the buffer.
func (s *Stencil) Width() int { return s.width }

// Height returns the height of the buffer.
func (s *Stencil) Height() int { return s.height }

// At returns the stencil value at (x, y). Out-of-bounds reads return 0.
func (s *Stencil) At(x, y int) uint8 {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0
	}
	return s.pix[y*s.width+x]
}

// Set stores a stencil value at (x, y). Out-of-bounds writes are
// discarded.
func (s *Stencil) Set(x, y int, v uint8) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.pix[y*s.width+x] = v
}

// Fill stores v into every pixel.
func (s *Stencil) Fill(v uint8) {
	for i := range s.pix {
		s.pix[i] = v
	}
}

// Clone returns a deep copy of the buffer.
func (s *Stencil) Clone() *Stencil {
	out := NewStencil(s.width, s.height)
	copy(out.pix, s.pix)
	return out
}
