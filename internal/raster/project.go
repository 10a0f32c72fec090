package raster

import "mesh-autoskin/internal/mathutil"

// ProjectVertices transforms 3D vertices to 2D screen coordinates with an
// orthographic camera. Returns px, py, pz slices (screen X, screen Y, depth;
// larger depth is closer to the viewer).
func ProjectVertices(verts []mathutil.Vec3, R mathutil.Mat3, center [3]float64, scale float64, renderSize int) ([]float64, []float64, []float64) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	half := float64(renderSize) / 2

	for i, v := range verts {
		t := R.MulVec3(v)
		px[i] = (t[0]-center[0])*scale + half
		py[i] = -(t[1]-center[1])*scale + half
		pz[i] = t[2]
	}

	return px, py, pz
}
