package raster

import (
	"math"

	"mesh-autoskin/internal/mathutil"
)

// RasterizeTriangle rasterizes a single triangle with per-vertex colors and
// a z-buffer. Faces are flat-shaded with previewShade; colors are
// interpolated per pixel and written as-is otherwise, so palette colors stay
// recognizable.
//
// Hot path: no allocation in the inner loop.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	vi [3]int,
	colors [][3]uint8,
) {
	nv := len(px)

	// Bounds check
	for _, i := range vi {
		if i < 0 || i >= nv || i >= len(colors) {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	// Face normal for flat shading
	e1x, e1y, e1z := x1-x0, y1-y0, z1-z0
	e2x, e2y, e2z := x2-x0, y2-y0, z2-z0
	nx := e1y*e2z - e1z*e2y
	ny := e1z*e2x - e1x*e2z
	nz := e1x*e2y - e1y*e2x
	nl := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if nl < 1e-8 {
		return
	}
	invNL := 1.0 / nl
	shade := previewShade(mathutil.Vec3{nx * invNL, ny * invNL, nz * invNL})

	var col [3][3]float64
	for k, i := range vi {
		c := colors[i]
		col[k] = [3]float64{float64(c[0]) * shade, float64(c[1]) * shade, float64(c[2]) * shade}
	}

	// Bounding box
	size := fb.Width
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= size {
		maxX = size - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Pixel loop, zero allocations
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * size
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(w0*col[0][0] + w1*col[1][0] + w2*col[2][0])
			fb.Color[pxIdx+1] = clamp255(w0*col[0][1] + w1*col[1][1] + w2*col[2][1])
			fb.Color[pxIdx+2] = clamp255(w0*col[0][2] + w1*col[1][2] + w2*col[2][2])
			fb.Color[pxIdx+3] = 255
		}
	}
}

// DrawLine draws a depth-tested, alpha-blended line segment. Pixels farther
// than the z-buffer by more than bias are hidden; nothing is written to the
// z-buffer so overlays never occlude each other.
func DrawLine(
	fb *FrameBuffer,
	x0, y0, z0, x1, y1, z1 float64,
	r, g, b uint8,
	opacity, bias float64,
) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps < 1 {
		steps = 1
	}
	a := math.Max(0, math.Min(1, opacity))
	srcA := clamp255(a * 255)

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		sx := int(x0 + (x1-x0)*t + 0.5)
		sy := int(y0 + (y1-y0)*t + 0.5)
		if sx < 0 || sy < 0 || sx >= fb.Width || sy >= fb.Height {
			continue
		}
		z := z0 + (z1-z0)*t
		zIdx := sy*fb.Width + sx
		if z+bias < fb.ZBuf[zIdx] {
			continue
		}

		pxIdx := zIdx * 4
		fb.Color[pxIdx] = clamp255(float64(r)*a + float64(fb.Color[pxIdx])*(1-a))
		fb.Color[pxIdx+1] = clamp255(float64(g)*a + float64(fb.Color[pxIdx+1])*(1-a))
		fb.Color[pxIdx+2] = clamp255(float64(b)*a + float64(fb.Color[pxIdx+2])*(1-a))
		if srcA > fb.Color[pxIdx+3] {
			fb.Color[pxIdx+3] = srcA
		}
	}
}

// previewLight is the fixed key light, toward the viewer's upper right.
var previewLight = mathutil.Vec3{0.45, 0.65, -0.6}.Normalize()

// previewAmbient is the shade of a face edge-on to the light.
const previewAmbient = 0.65

// previewShade returns the flat shade factor in [previewAmbient, 1] for a
// unit face normal. Faces are lit from both sides.
func previewShade(n mathutil.Vec3) float64 {
	return previewAmbient + (1-previewAmbient)*math.Abs(n.Dot(previewLight))
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
