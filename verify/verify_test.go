package verify

import (
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate/framebuffer"
)

func TestColorThreshold(t *testing.T) {
	th := ColorThreshold(gputypes.TextureFormatRGBA8Unorm)
	// Between one and two 8-bit quantization steps.
	if th <= 1.0/255 || th >= 2.0/255 {
		t.Errorf("unorm threshold = %v, want within (1/255, 2/255)", th)
	}
	if got := ColorThreshold(gputypes.TextureFormatRGBA8Uint); got != 0 {
		t.Errorf("uint threshold = %v, want 0", got)
	}
}

func TestDepthEpsilon(t *testing.T) {
	if got := DepthEpsilon(gputypes.TextureFormatDepth32Float); got != 0 {
		t.Errorf("d32 epsilon = %v, want 0", got)
	}
	if got := DepthEpsilon(gputypes.TextureFormatDepth24PlusStencil8); got != 1e-7 {
		t.Errorf("d24s8 epsilon = %v, want 1e-7", got)
	}
}

func TestColorsExactMatch(t *testing.T) {
	blue := framebuffer.RGBA(0, 0, 1, 1)
	got := framebuffer.NewColor(8, 8, gputypes.TextureFormatRGBA8Unorm)
	want := framebuffer.NewColor(8, 8, gputypes.TextureFormatRGBA8Unorm)
	got.Fill(blue)
	want.Fill(blue)

	r := Colors(got, want, ColorThreshold(gputypes.TextureFormatRGBA8Unorm))
	if !r.Match || r.Mismatches != 0 {
		t.Errorf("Match = %v, Mismatches = %d, want clean pass", r.Match, r.Mismatches)
	}
}

func TestColorsWithinThreshold(t *testing.T) {
	got := framebuffer.NewColor(1, 1, gputypes.TextureFormatRGBA8Unorm)
	want := framebuffer.NewColor(1, 1, gputypes.TextureFormatRGBA8Unorm)
	got.Set(0, 0, framebuffer.RGBA(0.501, 0, 0, 1))
	want.Set(0, 0, framebuffer.RGBA(0.5, 0, 0, 1))

	r := Colors(got, want, 0.005)
	if !r.Match {
		t.Error("difference of one quantization step rejected")
	}

	got.Set(0, 0, framebuffer.RGBA(0.52, 0, 0, 1))
	r = Colors(got, want, 0.005)
	if r.Match {
		t.Error("difference of five quantization steps accepted")
	}
}

// A mismatch marks the channel failed but the mask is still materialized
// in full, pass pixels green and fail pixels red.
func TestColorsBuildsFullMask(t *testing.T) {
	blue := framebuffer.RGBA(0, 0, 1, 1)
	red := framebuffer.RGBA(1, 0, 0, 1)
	got := framebuffer.NewColor(4, 4, gputypes.TextureFormatRGBA8Unorm)
	want := framebuffer.NewColor(4, 4, gputypes.TextureFormatRGBA8Unorm)
	got.Fill(blue)
	want.Fill(blue)
	got.Set(2, 1, red)
	got.Set(3, 3, red)

	r := Colors(got, want, 0.005)
	if r.Match {
		t.Fatal("Match = true with two bad pixels")
	}
	if r.Mismatches != 2 {
		t.Errorf("Mismatches = %d, want 2", r.Mismatches)
	}
	if c := r.Mask.NRGBAAt(2, 1); c != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("mask at bad pixel = %+v, want red", c)
	}
	if c := r.Mask.NRGBAAt(0, 0); c != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("mask at good pixel = %+v, want green", c)
	}
}

func TestColorsUintExact(t *testing.T) {
	got := framebuffer.NewColor(2, 1, gputypes.TextureFormatRGBA8Uint)
	want := framebuffer.NewColor(2, 1, gputypes.TextureFormatRGBA8Uint)
	got.Fill(framebuffer.RGBAUint(255, 255, 0, 255))
	want.Fill(framebuffer.RGBAUint(255, 255, 0, 255))

	if r := Colors(got, want, 0); !r.Match {
		t.Error("identical uint buffers rejected")
	}

	got.Set(1, 0, framebuffer.RGBAUint(255, 254, 0, 255))
	if r := Colors(got, want, 0); r.Match {
		t.Error("off-by-one uint channel accepted")
	}
}

func TestDepths(t *testing.T) {
	d := framebuffer.NewDepth(4, 4)
	d.Fill(0.5)

	if r := Depths(d, 0.5, 0); !r.Match {
		t.Error("exact depth rejected at zero epsilon")
	}

	d.Set(2, 2, 0.5+5e-8)
	if r := Depths(d, 0.5, 1e-7); !r.Match {
		t.Error("depth within 24-bit epsilon rejected")
	}
	if r := Depths(d, 0.5, 0); r.Match {
		t.Error("perturbed depth accepted at zero epsilon")
	}
}

func TestStencils(t *testing.T) {
	s := framebuffer.NewStencil(4, 4)
	s.Fill(102)

	if r := Stencils(s, 102); !r.Match {
		t.Error("uniform stencil rejected")
	}

	s.Set(0, 3, 103)
	r := Stencils(s, 102)
	if r.Match || r.Mismatches != 1 {
		t.Errorf("Match = %v, Mismatches = %d, want one exact failure", r.Match, r.Mismatches)
	}
}

func TestUpscaleMask(t *testing.T) {
	got := framebuffer.NewColor(2, 2, gputypes.TextureFormatRGBA8Unorm)
	want := framebuffer.NewColor(2, 2, gputypes.TextureFormatRGBA8Unorm)
	want.Set(0, 0, framebuffer.RGBA(1, 1, 1, 1))
	r := Colors(got, want, 0.005)

	big := UpscaleMask(r.Mask, 4)
	if b := big.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("bounds = %v, want 8x8", b)
	}
	// The failing source pixel expands to a hard-edged 4x4 block.
	if c := big.NRGBAAt(3, 3); c != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("pixel (3, 3) = %+v, want red", c)
	}
	if c := big.NRGBAAt(4, 4); c != (color.NRGBA{G: 255, A: 255}) {
		t.Errorf("pixel (4, 4) = %+v, want green", c)
	}
}
