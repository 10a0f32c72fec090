// Package debugviz builds the weight-painted preview of a skin binding: one
// flat color per primary bone plus a translucent wireframe of the source mesh.
package debugviz

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// paletteDarken keeps palette colors away from pure white.
const paletteDarken = 0.8

var (
	paletteStart = [3]float64{0.2, 0.5, 0.8}
	paletteStep  = [3]float64{-0.1, 0.1, 0.3}

	// Fallback is used for bone ids outside the palette.
	Fallback = colorful.Color{R: 1, G: 1, B: 1}
	// WireframeColor is the overlay line color (#337baa).
	WireframeColor = colorful.Color{R: 0x33 / 255.0, G: 0x7b / 255.0, B: 0xaa / 255.0}
)

// WireframeOpacity is the overlay alpha.
const WireframeOpacity = 0.2

// BoneColors returns n deterministic colors: every channel walks its own
// fixed step around [0, 1) and is darkened.
func BoneColors(n int) []colorful.Color {
	c := paletteStart
	out := make([]colorful.Color, n)
	for i := range out {
		for k := range c {
			c[k] = math.Mod(c[k]+paletteStep[k]+1, 1)
		}
		out[i] = colorful.Color{R: c[0] * paletteDarken, G: c[1] * paletteDarken, B: c[2] * paletteDarken}
	}
	return out
}

// ColorFor returns palette[bone], or Fallback when bone is outside it.
func ColorFor(palette []colorful.Color, bone int) colorful.Color {
	if bone < 0 || bone >= len(palette) {
		return Fallback
	}
	return palette[bone]
}
