package geometry

import (
	"math"

	"mesh-autoskin/internal/mathutil"
)

// Hit is a ray/mesh intersection.
type Hit struct {
	Point    mathutil.Vec3
	Distance float64
	Triangle [3]int
}

// Raycast returns the nearest intersection of r with the mesh surface.
// Triangles are tested from both sides.
func (g *Geometry) Raycast(r mathutil.Ray) (Hit, bool) {
	dirLen := r.Dir.Len()
	if dirLen < 1e-12 {
		return Hit{}, false
	}
	r.Dir = r.Dir.Scale(1 / dirLen)

	best := Hit{Distance: math.Inf(1)}
	found := false
	g.ForEachTriangle(func(a, b, c int) {
		t, ok := r.IntersectTriangle(g.Positions[a], g.Positions[b], g.Positions[c])
		if !ok || t >= best.Distance {
			return
		}
		best = Hit{Point: r.At(t), Distance: t, Triangle: [3]int{a, b, c}}
		found = true
	})
	return best, found
}

// RaycastDown casts straight down (−Y) from origin.
func (g *Geometry) RaycastDown(origin mathutil.Vec3) (Hit, bool) {
	return g.Raycast(mathutil.Ray{Origin: origin, Dir: mathutil.WorldDown})
}
