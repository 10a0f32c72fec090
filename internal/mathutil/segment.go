package mathutil

// Segment is the closed line segment from A to B.
type Segment struct {
	A, B Vec3
}

// Len returns the segment length.
func (s Segment) Len() float64 {
	return s.B.Sub(s.A).Len()
}

// Project returns the scalar projection of p onto the segment direction,
// measured from A and clamped to [0, Len()].
func (s Segment) Project(p Vec3) float64 {
	d := s.B.Sub(s.A)
	l := d.Len()
	if l < 1e-12 {
		return 0
	}
	t := p.Sub(s.A).Dot(d) / l
	if t < 0 {
		return 0
	}
	if t > l {
		return l
	}
	return t
}

// ClosestPoint returns the point on the segment nearest to p.
// Degenerate segments collapse to A.
func (s Segment) ClosestPoint(p Vec3) Vec3 {
	l := s.Len()
	if l < 1e-12 {
		return s.A
	}
	return s.A.Lerp(s.B, s.Project(p)/l)
}

// DistanceTo returns the distance from p to the nearest point on the segment.
func (s Segment) DistanceTo(p Vec3) float64 {
	return s.ClosestPoint(p).DistanceTo(p)
}
