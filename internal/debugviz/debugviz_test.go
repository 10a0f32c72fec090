package debugviz

import (
	"math"
	"reflect"
	"testing"

	"mesh-autoskin/internal/geometry"
	"mesh-autoskin/internal/mathutil"
)

func TestBoneColorsDeterministic(t *testing.T) {
	a, b := BoneColors(120), BoneColors(120)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("palette differs between calls")
	}

	// first step: (0.2-0.1, 0.5+0.1, 0.8+0.3 mod 1) * 0.8
	want := [3]float64{0.08, 0.48, 0.08}
	got := [3]float64{a[0].R, a[0].G, a[0].B}
	for k := range want {
		if math.Abs(got[k]-want[k]) > 1e-9 {
			t.Fatalf("BoneColors[0] = %v, want %v", got, want)
		}
	}
	for i, c := range a {
		for _, ch := range []float64{c.R, c.G, c.B} {
			if ch < 0 || ch >= paletteDarken {
				t.Fatalf("color %d channel %v outside [0, %v)", i, ch, paletteDarken)
			}
		}
	}
}

func TestColorForFallback(t *testing.T) {
	p := BoneColors(2)
	if ColorFor(p, 5) != Fallback || ColorFor(p, -1) != Fallback {
		t.Fatal("out-of-range bone must use the fallback color")
	}
	if ColorFor(p, 1) != p[1] {
		t.Fatal("in-range bone must use its palette entry")
	}
}

func newTri() *geometry.Geometry {
	return &geometry.Geometry{
		Positions: []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		Triangles: [][3]int{{0, 1, 2}, {1, 3, 2}},
	}
}

func TestBuild(t *testing.T) {
	g := newTri()
	indices := []int{
		0, 0, 0, 0,
		1, 0, 0, 0,
		1, 0, 0, 0,
		7, 0, 0, 0,
	}
	p, err := Build(g, indices, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	palette := BoneColors(2)
	if p.VertexColors[0] != palette[0] || p.VertexColors[1] != palette[1] {
		t.Fatal("vertex colors must follow slot-0 bones")
	}
	if p.VertexColors[3] != Fallback || p.Missing != 1 {
		t.Fatalf("unknown bone: color=%v missing=%d", p.VertexColors[3], p.Missing)
	}

	wantEdges := [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}}
	if !reflect.DeepEqual(p.Wireframe.Edges, wantEdges) {
		t.Fatalf("edges = %v, want %v", p.Wireframe.Edges, wantEdges)
	}
	if p.Wireframe.Opacity != WireframeOpacity {
		t.Fatalf("opacity = %v", p.Wireframe.Opacity)
	}
}

func TestBuildRejectsShortBuffer(t *testing.T) {
	if _, err := Build(newTri(), []int{0, 0, 0, 0}, 1); err == nil {
		t.Fatal("mismatched buffer must fail")
	}
}

func TestRenderProducesImage(t *testing.T) {
	g := newTri()
	p, err := Build(g, make([]int, 16), 1)
	if err != nil {
		t.Fatal(err)
	}
	img := Render(p, g, RenderOptions{Size: 64, Supersample: 2})
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("bounds = %v, want 64x64", img.Bounds())
	}
	opaque := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			opaque++
		}
	}
	if opaque == 0 {
		t.Fatal("render is empty")
	}
}
