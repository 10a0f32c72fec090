package mathutil

// Ray is a half-line starting at Origin along Dir (not necessarily unit length).
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns Origin + Dir*t.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

const rayEpsilon = 1e-9

// IntersectTriangle tests the ray against triangle (a, b, c) from both sides
// (Möller–Trumbore). It returns the ray parameter of the hit and true when the
// triangle is struck at t >= 0.
func (r Ray) IntersectTriangle(a, b, c Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false
	}
	invDet := 1.0 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}
