package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func TestDownsampleSolidColor(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 10, A: 255})
		}
	}
	dst := Downsample(src, 2)
	if dst.Bounds().Dx() != 4 || dst.Bounds().Dy() != 4 {
		t.Fatalf("bounds = %v, want 4x4", dst.Bounds())
	}
	c := dst.NRGBAAt(1, 1)
	if c.A != 255 || c.R < 195 || c.R > 205 {
		t.Fatalf("pixel = %+v, want ~{200 40 10 255}", c)
	}
}

func TestDownsampleTransparentStaysTransparent(t *testing.T) {
	dst := Downsample(image.NewNRGBA(image.Rect(0, 0, 6, 6)), 3)
	for _, p := range dst.Pix {
		if p != 0 {
			t.Fatal("transparent input produced visible output")
		}
	}
}

func TestDownsampleFactorOne(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if Downsample(src, 1) != src {
		t.Fatal("factor 1 must return the input")
	}
}
