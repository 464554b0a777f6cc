// Package framebuffer provides CPU-side images for rendered output and
// reference oracles: a color plane with float and unsigned-integer texel
// representations, plus depth and stencil planes.
package framebuffer

import (
	"image"
	"image/png"
	"os"

	"github.com/gogpu/gputypes"
)

// Texel is one color value. Unsigned-integer formats carry their channels
// in U; every other format uses F. Keeping both representations in one
// value type lets oracles and verification share code paths regardless of
// the target format.
type Texel struct {
	F      [4]float32
	U      [4]uint32
	IsUint bool
}

// RGBA returns a floating-point texel.
func RGBA(r, g, b, a float32) Texel {
	return Texel{F: [4]float32{r, g, b, a}}
}

// RGBAUint returns an unsigned-integer texel.
func RGBAUint(r, g, b, a uint32) Texel {
	return Texel{U: [4]uint32{r, g, b, a}, IsUint: true}
}

// Color is a rectangular color buffer with per-texel storage.
type Color struct {
	width  int
	height int
	format gputypes.TextureFormat
	pix    []Texel
}

// NewColor creates a color buffer with the given dimensions and format.
func NewColor(width, height int, format gputypes.TextureFormat) *Color {
	return &Color{
		width:  width,
		height: height,
		format: format,
		pix:    make([]Texel, width*height),
	}
}

// Width returns the width of the buffer.
func (c *Color) Width() int { return c.width }

// Height returns the height of the buffer.
func (c *Color) Height() int { return c.height }

// Format returns the texture format the buffer represents.
func (c *Color) Format() gputypes.TextureFormat { return c.format }

// At returns the texel at (x, y). Out-of-bounds reads return the zero
// texel.
func (c *Color) At(x, y int) Texel {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Texel{}
	}
	return c.pix[y*c.width+x]
}

// Set stores a texel at (x, y). Out-of-bounds writes are discarded.
func (c *Color) Set(x, y int, t Texel) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.pix[y*c.width+x] = t
}

// Fill stores the texel into every pixel.
func (c *Color) Fill(t Texel) {
	for i := range c.pix {
		c.pix[i] = t
	}
}

// Clone returns a deep copy of the buffer.
func (c *Color) Clone() *Color {
	out := NewColor(c.width, c.height, c.format)
	copy(out.pix, c.pix)
	return out
}

// ToImage converts the buffer to an image.NRGBA for inspection and
// artifact output. Unsigned-integer texels are written with their low
// eight bits per channel.
func (c *Color) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			t := c.pix[y*c.width+x]
			i := img.PixOffset(x, y)
			if t.IsUint {
				img.Pix[i+0] = uint8(t.U[0])
				img.Pix[i+1] = uint8(t.U[1])
				img.Pix[i+2] = uint8(t.U[2])
				img.Pix[i+3] = uint8(t.U[3])
			} else {
				img.Pix[i+0] = uint8(clamp01(t.F[0]) * 255)
				img.Pix[i+1] = uint8(clamp01(t.F[1]) * 255)
				img.Pix[i+2] = uint8(clamp01(t.F[2]) * 255)
				img.Pix[i+3] = uint8(clamp01(t.F[3]) * 255)
			}
		}
	}
	return img
}

// SavePNG writes the buffer to a PNG file.
func (c *Color) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, c.ToImage())
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
