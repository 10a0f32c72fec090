package mathutil

import (
	"math"
	"testing"
)

func TestSegmentClosestPoint(t *testing.T) {
	seg := Segment{A: Vec3{0, 0, 0}, B: Vec3{0, 2, 0}}
	tests := []struct {
		name string
		p    Vec3
		want Vec3
	}{
		{"before start clamps to A", Vec3{1, -1, 0}, Vec3{0, 0, 0}},
		{"past end clamps to B", Vec3{0, 5, 1}, Vec3{0, 2, 0}},
		{"interior", Vec3{3, 0.5, 0}, Vec3{0, 0.5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seg.ClosestPoint(tt.p)
			if got.DistanceTo(tt.want) > 1e-9 {
				t.Fatalf("ClosestPoint(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if d := seg.DistanceTo(Vec3{3, 1, 0}); math.Abs(d-3) > 1e-9 {
		t.Errorf("DistanceTo = %v, want 3", d)
	}
}

func TestSegmentDegenerate(t *testing.T) {
	seg := Segment{A: Vec3{1, 1, 1}, B: Vec3{1, 1, 1}}
	if got := seg.ClosestPoint(Vec3{5, 5, 5}); got != seg.A {
		t.Fatalf("degenerate ClosestPoint = %v, want %v", got, seg.A)
	}
	if got := seg.Project(Vec3{5, 5, 5}); got != 0 {
		t.Fatalf("degenerate Project = %v, want 0", got)
	}
}

func TestRayIntersectTriangleBothSides(t *testing.T) {
	a, b, c := Vec3{-1, 0, -1}, Vec3{1, 0, -1}, Vec3{0, 0, 1}

	down := Ray{Origin: Vec3{0, 2, 0}, Dir: WorldDown}
	tHit, ok := down.IntersectTriangle(a, b, c)
	if !ok || math.Abs(tHit-2) > 1e-9 {
		t.Fatalf("downward hit = (%v, %v), want (2, true)", tHit, ok)
	}

	up := Ray{Origin: Vec3{0, -3, 0}, Dir: WorldUp}
	if tHit, ok = up.IntersectTriangle(a, b, c); !ok || math.Abs(tHit-3) > 1e-9 {
		t.Fatalf("back-face hit = (%v, %v), want (3, true)", tHit, ok)
	}

	away := Ray{Origin: Vec3{0, 2, 0}, Dir: WorldUp}
	if _, ok = away.IntersectTriangle(a, b, c); ok {
		t.Fatal("ray pointing away must not hit")
	}

	miss := Ray{Origin: Vec3{5, 2, 0}, Dir: WorldDown}
	if _, ok = miss.IntersectTriangle(a, b, c); ok {
		t.Fatal("ray outside the triangle must not hit")
	}
}
