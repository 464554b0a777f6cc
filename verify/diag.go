package verify

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// UpscaleMask scales an error mask by an integer factor with
// nearest-neighbor sampling, keeping pixel boundaries hard. A 64x64 mask
// is hard to read at native size in an artifact viewer.
func UpscaleMask(mask *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return mask
	}
	b := mask.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(out, out.Bounds(), mask, b, draw.Src, nil)
	return out
}

// SaveMask writes an error mask to a PNG file, upscaled for inspection.
func SaveMask(mask *image.NRGBA, path string, factor int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, UpscaleMask(mask, factor))
}
