package framebuffer

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestColorSetAndAt(t *testing.T) {
	c := NewColor(8, 8, gputypes.TextureFormatRGBA8Unorm)
	red := RGBA(1, 0, 0, 1)
	c.Set(3, 4, red)

	if got := c.At(3, 4); got != red {
		t.Errorf("At(3, 4) = %+v, want %+v", got, red)
	}
	if got := c.At(0, 0); got != (Texel{}) {
		t.Errorf("At(0, 0) = %+v, want zero texel", got)
	}
}

func TestColorOutOfBounds(t *testing.T) {
	c := NewColor(4, 4, gputypes.TextureFormatRGBA8Unorm)
	c.Set(-1, 0, RGBA(1, 1, 1, 1))
	c.Set(4, 0, RGBA(1, 1, 1, 1))
	c.Set(0, 4, RGBA(1, 1, 1, 1))

	if got := c.At(-1, 0); got != (Texel{}) {
		t.Errorf("At(-1, 0) = %+v, want zero texel", got)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := c.At(x, y); got != (Texel{}) {
				t.Errorf("pixel (%d, %d) modified by out-of-bounds write", x, y)
			}
		}
	}
}

func TestColorFillAndClone(t *testing.T) {
	c := NewColor(4, 4, gputypes.TextureFormatRGBA8Unorm)
	blue := RGBA(0, 0, 1, 1)
	c.Fill(blue)

	clone := c.Clone()
	c.Set(1, 1, RGBA(1, 0, 0, 1))

	if got := clone.At(1, 1); got != blue {
		t.Errorf("clone pixel = %+v, want %+v after mutating original", got, blue)
	}
	if clone.Format() != c.Format() {
		t.Errorf("clone format = %v, want %v", clone.Format(), c.Format())
	}
}

func TestColorToImage(t *testing.T) {
	c := NewColor(2, 1, gputypes.TextureFormatRGBA8Unorm)
	c.Set(0, 0, RGBA(1, 0, 0, 1))
	c.Set(1, 0, RGBA(0, 0, 0, 1))

	img := c.ToImage()
	if r := img.NRGBAAt(0, 0).R; r != 255 {
		t.Errorf("pixel (0, 0).R = %d, want 255", r)
	}
	if r := img.NRGBAAt(1, 0).R; r != 0 {
		t.Errorf("pixel (1, 0).R = %d, want 0", r)
	}
}

func TestUintTexel(t *testing.T) {
	v := RGBAUint(7, 0, 255, 1)
	if !v.IsUint {
		t.Fatal("IsUint = false")
	}
	if v.U != [4]uint32{7, 0, 255, 1} {
		t.Errorf("U = %v", v.U)
	}
}

func TestDepthBuffer(t *testing.T) {
	d := NewDepth(4, 4)
	d.Fill(1)
	d.Set(2, 2, 0.5)

	if got := d.At(2, 2); got != 0.5 {
		t.Errorf("At(2, 2) = %v, want 0.5", got)
	}
	if got := d.At(0, 0); got != 1 {
		t.Errorf("At(0, 0) = %v, want 1", got)
	}
	if got := d.At(9, 9); got != 0 {
		t.Errorf("out-of-bounds At = %v, want 0", got)
	}

	clone := d.Clone()
	d.Set(0, 0, 0)
	if got := clone.At(0, 0); got != 1 {
		t.Errorf("clone At(0, 0) = %v, want 1", got)
	}
}

func TestStencilBuffer(t *testing.T) {
	s := NewStencil(4, 4)
	s.Fill(102)
	s.Set(1, 3, 255)

	if got := s.At(1, 3); got != 255 {
		t.Errorf("At(1, 3) = %d, want 255", got)
	}
	if got := s.At(0, 0); got != 102 {
		t.Errorf("At(0, 0) = %d, want 102", got)
	}
}
