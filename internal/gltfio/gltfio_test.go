package gltfio

import (
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"mesh-autoskin/internal/skeleton"
)

// testDocument builds Armature(0,0,5) -> root -> upper(0,1,0) -> lower(0,1,0)
// with a mesh node "Body" at (1,0,0) next to root.
func testDocument() *gltf.Document {
	doc := gltf.NewDocument()

	armature := &gltf.Node{Name: "Armature"}
	armature.Translation[2] = 5
	armature.Children = append(armature.Children, 1, 4)

	root := &gltf.Node{Name: "root"}
	root.Children = append(root.Children, 2)

	upper := &gltf.Node{Name: "upper"}
	upper.Translation[1] = 1
	upper.Children = append(upper.Children, 3)

	lower := &gltf.Node{Name: "lower"}
	lower.Translation[1] = 1

	body := &gltf.Node{Name: "Body", Mesh: gltf.Index(0)}
	body.Translation[0] = 1

	doc.Nodes = append(doc.Nodes, armature, root, upper, lower, body)
	if len(doc.Scenes) == 0 {
		doc.Scenes = append(doc.Scenes, &gltf.Scene{})
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	positions := modeler.WritePosition(doc, [][3]float32{{0, 1, 0}, {0, 2, 0}, {0.5, 1.5, 0}, {0, 1, 0}})
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "Body",
		Primitives: []*gltf.Primitive{{
			Mode:       gltf.PrimitiveTriangles,
			Indices:    gltf.Index(indices),
			Attributes: map[string]int{gltf.POSITION: positions},
		}},
	})
	return doc
}

func TestFromDocument(t *testing.T) {
	m, err := FromDocument(testDocument(), Options{})
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if m.RootNode != 1 || m.Root.Name != "root" {
		t.Fatalf("root = %d %q, want node 1 \"root\"", m.RootNode, m.Root.Name)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(m.Joints, want) {
		t.Fatalf("Joints = %v, want %v", m.Joints, want)
	}

	bones := skeleton.Flatten(m.Root)
	if bones.Len() != 3 || bones.Name(2) != "lower" {
		t.Fatalf("flattened %d bones", bones.Len())
	}
	if p := bones.WorldPosition(2); math.Abs(p[1]-2) > 1e-9 || math.Abs(p[2]) > 1e-9 {
		t.Fatalf("lower world position = %v, want (0, 2, 0) in armature space", p)
	}

	if len(m.Primitives) != 1 {
		t.Fatalf("%d primitives, want 1", len(m.Primitives))
	}
	g := m.Primitives[0].Geometry
	if g.Name != "Body" || g.VertexCount() != 4 || len(g.Triangles) != 1 {
		t.Fatalf("geometry %q: %d vertices, %d triangles", g.Name, g.VertexCount(), len(g.Triangles))
	}
	// mesh node offset applies, armature offset cancels
	if p := g.Positions[1]; math.Abs(p[0]-1) > 1e-6 || math.Abs(p[1]-2) > 1e-6 || math.Abs(p[2]) > 1e-6 {
		t.Fatalf("position 1 = %v, want (1, 2, 0)", p)
	}
}

func TestFindRoot(t *testing.T) {
	doc := testDocument()
	m, err := FromDocument(doc, Options{RootNode: "upper"})
	if err != nil {
		t.Fatalf("named root: %v", err)
	}
	if m.RootNode != 2 || len(m.Joints) != 2 {
		t.Fatalf("named root = %d with %d joints", m.RootNode, len(m.Joints))
	}
	// the armature base now includes root's transform chain
	if p := m.Primitives[0].Geometry.Positions[0]; math.Abs(p[0]-1) > 1e-6 || math.Abs(p[1]-1) > 1e-6 {
		t.Fatalf("position 0 = %v", p)
	}

	if _, err := FromDocument(testDocument(), Options{RootNode: "missing"}); !errors.Is(err, ErrNoArmature) {
		t.Fatalf("missing node: err = %v", err)
	}

	if _, err := FromDocument(testDocument(), Options{Mesh: "Other"}); err != nil {
		t.Fatalf("mesh filter: %v", err)
	}
}

func TestApplySkinRoundTrip(t *testing.T) {
	m, err := FromDocument(testDocument(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	p := m.Primitives[0]
	indices := []int{
		1, 1, 1, 1,
		2, 2, 2, 2,
		1, 2, 1, 1,
		1, 1, 1, 1,
	}
	weights := []float64{
		1, 0, 0, 0,
		1, 0, 0, 0,
		0.5, 0.5, 0, 0,
		1, 0, 0, 0,
	}
	if err := m.ApplySkin(p, indices, weights); err != nil {
		t.Fatalf("ApplySkin: %v", err)
	}
	if len(m.Doc.Skins) != 1 || m.Doc.Nodes[p.Node].Skin == nil {
		t.Fatal("skin not attached to the mesh node")
	}
	skin := m.Doc.Skins[0]
	if !reflect.DeepEqual(skin.Joints, []int{1, 2, 3}) || skin.InverseBindMatrices == nil {
		t.Fatalf("skin = %+v", skin)
	}

	prim := m.Doc.Meshes[0].Primitives[0]
	joints, err := modeler.ReadJoints(m.Doc, m.Doc.Accessors[prim.Attributes[gltf.JOINTS_0]], nil)
	if err != nil {
		t.Fatalf("ReadJoints: %v", err)
	}
	if joints[2] != [4]uint16{1, 2, 1, 1} {
		t.Fatalf("joints[2] = %v", joints[2])
	}
	wts, err := modeler.ReadWeights(m.Doc, m.Doc.Accessors[prim.Attributes[gltf.WEIGHTS_0]], nil)
	if err != nil {
		t.Fatalf("ReadWeights: %v", err)
	}
	if wts[2] != [4]float32{0.5, 0.5, 0, 0} {
		t.Fatalf("weights[2] = %v", wts[2])
	}

	// a second primitive on the same node reuses its skin
	if err := m.ApplySkin(p, indices, weights); err != nil {
		t.Fatal(err)
	}
	if len(m.Doc.Skins) != 1 {
		t.Fatalf("%d skins after re-applying, want 1", len(m.Doc.Skins))
	}

	for _, name := range []string{"skinned.glb", "skinned.gltf"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := m.Save(path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			back, err := Open(path, Options{})
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if back.RootNode != 1 || !reflect.DeepEqual(back.Joints, m.Joints) {
				t.Fatalf("reopened root %d joints %v", back.RootNode, back.Joints)
			}
		})
	}
}

func TestApplySkinRejectsBadBinding(t *testing.T) {
	m, err := FromDocument(testDocument(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	p := m.Primitives[0]
	if err := m.ApplySkin(p, make([]int, 4), make([]float64, 4)); err == nil {
		t.Fatal("short binding accepted")
	}
	bad := make([]int, 16)
	bad[5] = 9
	if err := m.ApplySkin(p, bad, make([]float64, 16)); err == nil {
		t.Fatal("out of range joint accepted")
	}
}
