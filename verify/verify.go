// Package verify implements the per-pixel verification protocol: rendered
// output against the reference oracle with format-aware tolerances, and a
// full error mask per channel so a mismatch's footprint is visible.
package verify

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate/framebuffer"
)

// Report is the outcome of one channel comparison. The mask is always
// materialized in full: a mismatch never aborts the scan.
type Report struct {
	Match      bool
	Mismatches int
	Mask       *image.NRGBA
}

var (
	maskPass = color.NRGBA{G: 255, A: 255}
	maskFail = color.NRGBA{R: 255, A: 255}
)

// ColorThreshold returns the per-channel tolerance for a color format:
// between one and two quantization steps for 8-bit normalized targets,
// exact for integer targets.
func ColorThreshold(format gputypes.TextureFormat) float32 {
	if format == gputypes.TextureFormatRGBA8Uint {
		return 0
	}
	return 0.005
}

// DepthEpsilon returns the depth tolerance for a depth/stencil format:
// exact for 32-bit float depth, one part in 1e7 for 24-bit fixed-point
// depth.
func DepthEpsilon(format gputypes.TextureFormat) float32 {
	if format == gputypes.TextureFormatDepth24PlusStencil8 {
		return 1e-7
	}
	return 0
}

func newMask(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func texelMatches(got, want framebuffer.Texel, threshold float32) bool {
	if want.IsUint || got.IsUint {
		return got.U == want.U
	}
	for c := 0; c < 4; c++ {
		d := got.F[c] - want.F[c]
		if d < 0 {
			d = -d
		}
		if d > threshold {
			return false
		}
	}
	return true
}

// Colors compares a rendered color buffer against the reference.
func Colors(got, want *framebuffer.Color, threshold float32) *Report {
	w, h := want.Width(), want.Height()
	r := &Report{Match: true, Mask: newMask(w, h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if texelMatches(got.At(x, y), want.At(x, y), threshold) {
				r.Mask.SetNRGBA(x, y, maskPass)
			} else {
				r.Mask.SetNRGBA(x, y, maskFail)
				r.Match = false
				r.Mismatches++
			}
		}
	}
	return r
}

// Depths compares a rendered depth buffer against a uniform expected
// value within eps.
func Depths(got *framebuffer.Depth, want, eps float32) *Report {
	w, h := got.Width(), got.Height()
	r := &Report{Match: true, Mask: newMask(w, h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := got.At(x, y) - want
			if d < 0 {
				d = -d
			}
			if d <= eps {
				r.Mask.SetNRGBA(x, y, maskPass)
			} else {
				r.Mask.SetNRGBA(x, y, maskFail)
				r.Match = false
				r.Mismatches++
			}
		}
	}
	return r
}

// Stencils compares a rendered stencil buffer against a uniform expected
// value. Stencil comparison is always exact.
func Stencils(got *framebuffer.Stencil, want uint8) *Report {
	w, h := got.Width(), got.Height()
	r := &Report{Match: true, Mask: newMask(w, h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if got.At(x, y) == want {
				r.Mask.SetNRGBA(x, y, maskPass)
			} else {
				r.Mask.SetNRGBA(x, y, maskFail)
				r.Match = false
				r.Mismatches++
			}
		}
	}
	return r
}
