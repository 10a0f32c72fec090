package skeleton

import (
	"math"
	"testing"

	"mesh-autoskin/internal/mathutil"
)

func near(a, b mathutil.Vec3) bool {
	return a.DistanceTo(b) < 1e-9
}

// spine -> (chest -> neck), (thigh_l)
func newTestTree() *Bone {
	return NewBone("spine", mathutil.Vec3{0, 1, 0}).Add(
		NewBone("chest", mathutil.Vec3{0, 0.5, 0}).Add(
			NewBone("neck", mathutil.Vec3{0, 0.5, 0}),
		),
		NewBone("thigh_l", mathutil.Vec3{0.2, -0.1, 0}),
	)
}

func TestFlattenPreOrder(t *testing.T) {
	l := Flatten(newTestTree())

	wantNames := []string{"spine", "chest", "neck", "thigh_l"}
	wantParents := []int{-1, 0, 1, 0}
	if l.Len() != len(wantNames) {
		t.Fatalf("Len = %d, want %d", l.Len(), len(wantNames))
	}
	for i := range wantNames {
		if l.Name(i) != wantNames[i] {
			t.Errorf("Name(%d) = %q, want %q", i, l.Name(i), wantNames[i])
		}
		if l.Parent(i) != wantParents[i] {
			t.Errorf("Parent(%d) = %d, want %d", i, l.Parent(i), wantParents[i])
		}
		if idx, ok := l.Index(l.Bone(i)); !ok || idx != i {
			t.Errorf("Index(Bone(%d)) = (%d, %v)", i, idx, ok)
		}
	}
	if got := l.FirstChild(0); got != 1 {
		t.Errorf("FirstChild(0) = %d, want 1", got)
	}
	if got := l.FirstChild(3); got != -1 {
		t.Errorf("FirstChild(leaf) = %d, want -1", got)
	}
}

func TestFlattenDeterministic(t *testing.T) {
	root := newTestTree()
	a, b := Flatten(root), Flatten(root)
	for i := 0; i < a.Len(); i++ {
		if a.Bone(i) != b.Bone(i) {
			t.Fatalf("traversal differs at %d", i)
		}
	}
}

func TestFlattenEmpty(t *testing.T) {
	l := Flatten(nil)
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want 0", l.Len())
	}
	if NewAnchorCache(l).Len() != 0 {
		t.Fatal("anchor cache of empty list must be empty")
	}
}

func TestWorldPositions(t *testing.T) {
	l := Flatten(newTestTree())
	want := []mathutil.Vec3{{0, 1, 0}, {0, 1.5, 0}, {0, 2, 0}, {0.2, 0.9, 0}}
	for i, w := range want {
		if got := l.WorldPosition(i); !near(got, w) {
			t.Errorf("WorldPosition(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestWorldPositionsFollowParentRotation(t *testing.T) {
	// 90° about Z maps the child's local +Y offset onto world −X.
	s := math.Sqrt2 / 2
	root := NewBone("root", mathutil.Vec3{})
	root.Rotation = [4]float64{0, 0, s, s}
	root.Add(NewBone("arm", mathutil.Vec3{0, 1, 0}))

	l := Flatten(root)
	if got := l.WorldPosition(1); !near(got, mathutil.Vec3{-1, 0, 0}) {
		t.Fatalf("WorldPosition(arm) = %v, want (-1, 0, 0)", got)
	}
}

func TestZeroValueTransformIsIdentity(t *testing.T) {
	root := &Bone{Name: "a", Translation: mathutil.Vec3{1, 2, 3}}
	root.Children = []*Bone{{Name: "b", Translation: mathutil.Vec3{0, 1, 0}}}
	l := Flatten(root)
	if got := l.WorldPosition(1); !near(got, mathutil.Vec3{1, 3, 3}) {
		t.Fatalf("WorldPosition = %v, want (1, 3, 3)", got)
	}
}

func TestAnchorCache(t *testing.T) {
	c := NewAnchorCache(Flatten(newTestTree()))

	if got := c.Anchor(0); !near(got, mathutil.Vec3{0, 1.25, 0}) {
		t.Errorf("Anchor(spine) = %v, want midpoint to chest", got)
	}
	if got := c.Anchor(2); !near(got, mathutil.Vec3{0, 2, 0}) {
		t.Errorf("Anchor(leaf) = %v, want own position", got)
	}
	if _, ok := c.Segment(2); ok {
		t.Error("leaf must not report a segment")
	}
	seg, ok := c.Segment(1)
	if !ok || !near(seg.A, mathutil.Vec3{0, 1.5, 0}) || !near(seg.B, mathutil.Vec3{0, 2, 0}) {
		t.Errorf("Segment(chest) = %v, %v", seg, ok)
	}
	if d := c.DistanceTo(1, mathutil.Vec3{1, 1.75, 0}); math.Abs(d-1) > 1e-9 {
		t.Errorf("DistanceTo(segment) = %v, want 1", d)
	}
	if d := c.DistanceTo(2, mathutil.Vec3{0, 3, 0}); math.Abs(d-1) > 1e-9 {
		t.Errorf("DistanceTo(point) = %v, want 1", d)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	root := newTestTree()
	clone, err := Clone(root)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if clone == root || clone.Children[0] == root.Children[0] {
		t.Fatal("clone shares nodes with the source tree")
	}

	clone.Name = "changed"
	clone.Children[0].Translation = mathutil.Vec3{9, 9, 9}
	if root.Name != "spine" || root.Children[0].Translation != (mathutil.Vec3{0, 0.5, 0}) {
		t.Fatal("mutating the clone changed the source tree")
	}

	if Flatten(clone).Len() != Flatten(root).Len() {
		t.Fatal("clone has a different bone count")
	}
}

func TestCloneNil(t *testing.T) {
	c, err := Clone(nil)
	if err != nil || c != nil {
		t.Fatalf("Clone(nil) = (%v, %v), want (nil, nil)", c, err)
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		name      string
		root, hip bool
		side      Side
		extremity bool
	}{
		{"root", true, false, SideCenter, false},
		{"Root", true, false, SideCenter, false},
		{"rootBone", false, false, SideCenter, false},
		{"DEF-Hips", false, true, SideCenter, false},
		{"thigh_L", false, false, SideLeft, false},
		{"foot_r", false, false, SideRight, true},
		{"toes_l", false, false, SideLeft, true},
		{"hand_lr", false, false, SideCenter, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRootName(tt.name); got != tt.root {
				t.Errorf("IsRootName = %v", got)
			}
			if got := IsHipName(tt.name); got != tt.hip {
				t.Errorf("IsHipName = %v", got)
			}
			if got := BoneSide(tt.name); got != tt.side {
				t.Errorf("BoneSide = %v", got)
			}
			if got := IsExtremity(tt.name); got != tt.extremity {
				t.Errorf("IsExtremity = %v", got)
			}
		})
	}
}

func TestParseClassification(t *testing.T) {
	for _, c := range []Classification{Other, Humanoid, Quadruped, Bird, Dragon} {
		got, err := ParseClassification(c.String())
		if err != nil || got != c {
			t.Errorf("ParseClassification(%q) = (%v, %v)", c.String(), got, err)
		}
	}
	if got, _ := ParseClassification("Human"); got != Humanoid {
		t.Errorf("alias human = %v", got)
	}
	if _, err := ParseClassification("fish"); err == nil {
		t.Error("unknown classification must fail")
	}
}

func TestChildren(t *testing.T) {
	l := Flatten(newTestTree())
	if got := l.Children(0); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("Children(0) = %v, want [1 3]", got)
	}
	if got := l.Children(2); len(got) != 0 {
		t.Fatalf("Children(leaf) = %v", got)
	}
}
