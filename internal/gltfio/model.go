// Package gltfio feeds glTF scenes to the skinning solver and writes the
// resulting JOINTS_0/WEIGHTS_0 attributes and skins back.
package gltfio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"mesh-autoskin/internal/geometry"
	"mesh-autoskin/internal/mathutil"
	"mesh-autoskin/internal/skeleton"
)

// ErrNoArmature is returned when no node can serve as the bone root.
var ErrNoArmature = errors.New("gltfio: no armature root found")

// Options select the armature and filter meshes.
type Options struct {
	RootNode string // node name of the armature root; empty to detect
	Mesh     string // only load meshes with this name; empty for all
}

// Primitive is one triangle primitive of a mesh node, in armature space.
type Primitive struct {
	Node      int // node index carrying the mesh
	Mesh      int
	Primitive int
	Geometry  *geometry.Geometry
}

// Model is a loaded glTF document with its armature and skinnable geometry.
type Model struct {
	Doc        *gltf.Document
	Root       *skeleton.Bone
	RootNode   int
	Joints     []int // node index per bone id, in skeleton.Flatten order
	Primitives []Primitive
	Skipped    []string // primitives that could not be skinned, with the reason

	parents      []int
	armatureBase mgl64.Mat4 // world matrix of the armature root's parent
	skins        map[int]int
}

// Open reads a .gltf or .glb file.
func Open(path string, opts Options) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltfio: open %s: %w", path, err)
	}
	return FromDocument(doc, opts)
}

// FromDocument extracts the armature and geometry of doc.
func FromDocument(doc *gltf.Document, opts Options) (*Model, error) {
	m := &Model{Doc: doc, skins: map[int]int{}}
	m.parents = parentsOf(doc)

	root, err := m.findRoot(opts.RootNode)
	if err != nil {
		return nil, err
	}
	m.RootNode = root
	m.armatureBase = mgl64.Ident4()
	if p := m.parents[root]; p >= 0 {
		m.armatureBase = m.world(p)
	}
	m.Root = m.buildBone(root)

	if err := m.loadPrimitives(opts.Mesh); err != nil {
		return nil, err
	}
	return m, nil
}

func parentsOf(doc *gltf.Document) []int {
	parents := make([]int, len(doc.Nodes))
	for i := range parents {
		parents[i] = -1
	}
	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			parents[int(c)] = i
		}
	}
	return parents
}

// findRoot picks, in order: the named node, the first skin's skeleton, the
// topmost joint of the first skin, the first node called "root", then the
// first mesh-less node with children among the scene roots.
func (m *Model) findRoot(name string) (int, error) {
	doc := m.Doc
	if name != "" {
		for i, n := range doc.Nodes {
			if n.Name == name {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: no node named %q", ErrNoArmature, name)
	}

	if len(doc.Skins) > 0 {
		skin := doc.Skins[0]
		if skin.Skeleton != nil {
			return int(*skin.Skeleton), nil
		}
		if len(skin.Joints) > 0 {
			joints := map[int]bool{}
			for _, j := range skin.Joints {
				joints[int(j)] = true
			}
			top := int(skin.Joints[0])
			for p := m.parents[top]; p >= 0 && joints[p]; p = m.parents[p] {
				top = p
			}
			return top, nil
		}
	}

	for i, n := range doc.Nodes {
		if skeleton.IsRootName(n.Name) {
			return i, nil
		}
	}
	for i, n := range doc.Nodes {
		if m.parents[i] < 0 && n.Mesh == nil && len(n.Children) > 0 {
			return i, nil
		}
	}
	return -1, ErrNoArmature
}

// buildBone converts the node subtree into bones. Mesh nodes are skipped.
func (m *Model) buildBone(idx int) *skeleton.Bone {
	n := m.Doc.Nodes[idx]
	b := boneFromNode(n)
	m.Joints = append(m.Joints, idx)
	for _, c := range n.Children {
		if m.Doc.Nodes[int(c)].Mesh != nil {
			continue
		}
		b.Add(m.buildBone(int(c)))
	}
	return b
}

func boneFromNode(n *gltf.Node) *skeleton.Bone {
	name := n.Name
	if name == "" {
		name = "bone"
	}
	b := skeleton.NewBone(name, mathutil.Vec3{})

	if mat, ok := nodeMatrix(n); ok {
		b.Translation = mathutil.Vec3{mat.At(0, 3), mat.At(1, 3), mat.At(2, 3)}
		sx := mat.Col(0).Vec3().Len()
		sy := mat.Col(1).Vec3().Len()
		sz := mat.Col(2).Vec3().Len()
		b.Scale = mathutil.Vec3{sx, sy, sz}
		rot := mgl64.Mat4FromCols(
			mat.Col(0).Mul(1/sx), mat.Col(1).Mul(1/sy), mat.Col(2).Mul(1/sz), mgl64.Vec4{0, 0, 0, 1},
		)
		q := mgl64.Mat4ToQuat(rot)
		b.Rotation = [4]float64{q.V[0], q.V[1], q.V[2], q.W}
		return b
	}

	b.Translation = mathutil.Vec3{float64(n.Translation[0]), float64(n.Translation[1]), float64(n.Translation[2])}
	b.Rotation = [4]float64{float64(n.Rotation[0]), float64(n.Rotation[1]), float64(n.Rotation[2]), float64(n.Rotation[3])}
	b.Scale = mathutil.Vec3{float64(n.Scale[0]), float64(n.Scale[1]), float64(n.Scale[2])}
	return b
}

// nodeMatrix returns the node's explicit matrix when it carries one.
func nodeMatrix(n *gltf.Node) (mgl64.Mat4, bool) {
	var mat mgl64.Mat4
	for i := range mat {
		mat[i] = float64(n.Matrix[i])
	}
	if mat == (mgl64.Mat4{}) || mat == mgl64.Ident4() {
		return mat, false
	}
	return mat, true
}

func (m *Model) local(idx int) mgl64.Mat4 {
	n := m.Doc.Nodes[idx]
	if mat, ok := nodeMatrix(n); ok {
		return mat
	}
	return boneFromNode(n).LocalMatrix()
}

// world composes node matrices from the scene root down to idx.
func (m *Model) world(idx int) mgl64.Mat4 {
	w := m.local(idx)
	for p := m.parents[idx]; p >= 0; p = m.parents[p] {
		w = m.local(p).Mul4(w)
	}
	return w
}

// toArmature maps a mesh node's local space into the space the bone tree
// lives in (the armature root's parent space).
func (m *Model) toArmature(node int) mgl64.Mat4 {
	return m.armatureBase.Inv().Mul4(m.world(node))
}

func (m *Model) loadPrimitives(only string) error {
	doc := m.Doc
	for ni, n := range doc.Nodes {
		if n.Mesh == nil {
			continue
		}
		meshIdx := int(*n.Mesh)
		mesh := doc.Meshes[meshIdx]
		if only != "" && mesh.Name != only {
			continue
		}
		xf := m.toArmature(ni)

		for pi, prim := range mesh.Primitives {
			label := primitiveName(mesh, pi)
			if prim.Mode != gltf.PrimitiveTriangles {
				m.Skipped = append(m.Skipped, label+": not a triangle list")
				continue
			}
			posAcc, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				m.Skipped = append(m.Skipped, label+": no POSITION attribute")
				continue
			}

			pos, err := modeler.ReadPosition(doc, doc.Accessors[posAcc], nil)
			if err != nil {
				return fmt.Errorf("gltfio: read positions of %s: %w", label, err)
			}
			g := &geometry.Geometry{Name: label, Positions: make([]mathutil.Vec3, len(pos))}
			for i, p := range pos {
				v := xf.Mul4x1(mgl64.Vec4{float64(p[0]), float64(p[1]), float64(p[2]), 1})
				g.Positions[i] = mathutil.Vec3{v[0], v[1], v[2]}
			}

			if prim.Indices != nil {
				idx, err := modeler.ReadIndices(doc, doc.Accessors[int(*prim.Indices)], nil)
				if err != nil {
					return fmt.Errorf("gltfio: read indices of %s: %w", label, err)
				}
				g.Triangles = make([][3]int, 0, len(idx)/3)
				for i := 0; i+2 < len(idx); i += 3 {
					g.Triangles = append(g.Triangles, [3]int{int(idx[i]), int(idx[i+1]), int(idx[i+2])})
				}
			}

			m.Primitives = append(m.Primitives, Primitive{Node: ni, Mesh: meshIdx, Primitive: pi, Geometry: g})
		}
	}
	return nil
}

func primitiveName(mesh *gltf.Mesh, pi int) string {
	name := strings.TrimSpace(mesh.Name)
	if name == "" {
		name = "mesh"
	}
	if len(mesh.Primitives) > 1 {
		return fmt.Sprintf("%s#%d", name, pi)
	}
	return name
}
