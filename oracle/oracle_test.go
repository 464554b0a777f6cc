package oracle

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dynstate/framebuffer"
)

func newTestImage() *framebuffer.Color {
	return framebuffer.NewColor(64, 64, gputypes.TextureFormatRGBA8Unorm)
}

func TestSingleColor(t *testing.T) {
	blue := framebuffer.RGBA(0, 0, 1, 1)
	img := newTestImage()
	SingleColor{Color: blue}.Apply(img)

	for _, p := range [][2]int{{0, 0}, {63, 63}, {31, 17}} {
		if got := img.At(p[0], p[1]); got != blue {
			t.Errorf("pixel %v = %+v, want blue", p, got)
		}
	}
}

func TestSingleColorUint(t *testing.T) {
	v := framebuffer.RGBAUint(255, 255, 0, 255)
	img := framebuffer.NewColor(64, 64, gputypes.TextureFormatRGBA8Uint)
	SingleColor{Color: v}.Apply(img)

	got := img.At(5, 5)
	if !got.IsUint || got.U != [4]uint32{255, 255, 0, 255} {
		t.Errorf("pixel = %+v, want uint (255, 255, 0, 255)", got)
	}
}

func TestHorizontalSplit(t *testing.T) {
	top := framebuffer.RGBA(1, 0, 0, 1)
	bottom := framebuffer.RGBA(0, 1, 0, 1)
	img := newTestImage()
	HorizontalSplit{Top: top, Bottom: bottom}.Apply(img)

	if got := img.At(10, 31); got != top {
		t.Errorf("pixel (10, 31) = %+v, want top color", got)
	}
	if got := img.At(10, 32); got != bottom {
		t.Errorf("pixel (10, 32) = %+v, want bottom color", got)
	}
}

// Every pixel is geometry color except the final row at x >= 0.75*W:
// at 64x64, pixels (48..63, 63) are clear color, all others geometry.
func TestLastSegmentMissing(t *testing.T) {
	geom := framebuffer.RGBA(0, 0, 1, 1)
	clear := framebuffer.RGBA(0, 0, 0, 1)
	img := newTestImage()
	LastSegmentMissing{Geometry: geom, Clear: clear}.Apply(img)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			want := geom
			if y == 63 && x >= 48 {
				want = clear
			}
			if got := img.At(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}
