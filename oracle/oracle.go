// Package oracle provides the reference-outcome generators: pure
// functions from framebuffer dimensions to the expected color image for a
// scenario.
package oracle

import "github.com/gogpu/dynstate/framebuffer"

// Reference fills an image with the expected result. Implementations are
// deterministic value types with no state beyond their fields, so
// scenario descriptors copy them freely.
type Reference interface {
	Apply(img *framebuffer.Color)
}

// SingleColor expects the whole image in one color.
type SingleColor struct {
	Color framebuffer.Texel
}

func (s SingleColor) Apply(img *framebuffer.Color) {
	img.Fill(s.Color)
}

// HorizontalSplit expects the top half of the image in one color and the
// bottom half in another.
type HorizontalSplit struct {
	Top    framebuffer.Texel
	Bottom framebuffer.Texel
}

func (s HorizontalSplit) Apply(img *framebuffer.Color) {
	half := img.Height() / 2
	for y := 0; y < img.Height(); y++ {
		t := s.Top
		if y >= half {
			t = s.Bottom
		}
		for x := 0; x < img.Width(); x++ {
			img.Set(x, y, t)
		}
	}
}

// LastSegmentMissing expects geometry color everywhere except the final
// quarter of the final row, which reverts to the clear color. This is the
// footprint of a restart index cutting the last line segment of a
// row-by-row line strip.
type LastSegmentMissing struct {
	Geometry framebuffer.Texel
	Clear    framebuffer.Texel
}

func (s LastSegmentMissing) Apply(img *framebuffer.Color) {
	lastRow := img.Height() - 1
	cut := (img.Width() * 3) / 4
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			t := s.Geometry
			if y == lastRow && x >= cut {
				t = s.Clear
			}
			img.Set(x, y, t)
		}
	}
}
