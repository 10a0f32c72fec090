package raster

import (
	"image"
	"math"

	"mesh-autoskin/internal/mathutil"
)

// Mesh is a vertex-colored triangle mesh.
type Mesh struct {
	Positions []mathutil.Vec3
	Triangles [][3]int
	Colors    [][3]uint8 // sRGB, one per vertex
}

// Lines is an overlay of edges drawn on top of a Mesh.
type Lines struct {
	Edges   [][2]int // vertex index pairs into Mesh.Positions
	R, G, B uint8
	Opacity float64
}

// Render draws the mesh and its line overlay, framed to fit, into an
// NRGBA image of size*supersample pixels with a transparent background.
func Render(m Mesh, lines Lines, view mathutil.Mat3, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample
	if len(m.Positions) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	// Compute bounding box of all transformed vertices
	var allMin, allMax [3]float64
	allMin = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Positions {
		tv := view.MulVec3(v)
		for k := 0; k < 3; k++ {
			if tv[k] < allMin[k] {
				allMin[k] = tv[k]
			}
			if tv[k] > allMax[k] {
				allMax[k] = tv[k]
			}
		}
	}

	center := [3]float64{
		(allMin[0] + allMax[0]) / 2,
		(allMin[1] + allMax[1]) / 2,
		(allMin[2] + allMax[2]) / 2,
	}
	spanX := allMax[0] - allMin[0]
	spanY := allMax[1] - allMin[1]
	span := spanX
	if spanY > span {
		span = spanY
	}
	if span < 0.001 {
		span = 0.001
	}

	margin := 16 * supersample
	scale := float64(renderSize-2*margin) / span

	px, py, pz := ProjectVertices(m.Positions, view, center, scale, renderSize)

	fb := NewFrameBuffer(renderSize, renderSize)

	for _, tri := range m.Triangles {
		RasterizeTriangle(fb, px, py, pz, tri, m.Colors)
	}

	// Lines within 1% of the depth range of a surface stay visible on it.
	bias := (allMax[2] - allMin[2]) * 0.01
	if bias < 1e-6 {
		bias = 1e-6
	}
	n := len(m.Positions)
	for _, e := range lines.Edges {
		a, b := e[0], e[1]
		if a < 0 || b < 0 || a >= n || b >= n {
			continue
		}
		DrawLine(fb, px[a], py[a], pz[a], px[b], py[b], pz[b], lines.R, lines.G, lines.B, lines.Opacity, bias)
	}

	return fb.Image()
}
