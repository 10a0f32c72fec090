package gltfio

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ApplySkin writes a binding for primitive p: JOINTS_0 and WEIGHTS_0
// accessors plus a skin on the mesh node whose joints follow Model.Joints.
// indices and weights hold four slots per vertex.
func (m *Model) ApplySkin(p Primitive, indices []int, weights []float64) error {
	n := p.Geometry.VertexCount()
	if len(indices) != n*4 || len(weights) != n*4 {
		return fmt.Errorf("gltfio: %s: binding has %d/%d slots for %d vertices", p.Geometry.Name, len(indices), len(weights), n)
	}

	joints := make([][4]uint16, n)
	wts := make([][4]float32, n)
	for v := 0; v < n; v++ {
		for s := 0; s < 4; s++ {
			bone := indices[v*4+s]
			if bone < 0 || bone >= len(m.Joints) || bone > math.MaxUint16 {
				return fmt.Errorf("gltfio: %s: vertex %d references bone %d of %d", p.Geometry.Name, v, bone, len(m.Joints))
			}
			joints[v][s] = uint16(bone)
			wts[v][s] = float32(weights[v*4+s])
		}
	}

	prim := m.Doc.Meshes[p.Mesh].Primitives[p.Primitive]
	prim.Attributes[gltf.JOINTS_0] = modeler.WriteJoints(m.Doc, joints)
	prim.Attributes[gltf.WEIGHTS_0] = modeler.WriteWeights(m.Doc, wts)

	m.Doc.Nodes[p.Node].Skin = gltf.Index(m.skinFor(p.Node))
	return nil
}

// skinFor returns the skin of a mesh node, creating it on first use. Inverse
// bind matrices take the node's own placement into account, so each mesh
// node gets its own skin.
func (m *Model) skinFor(node int) int {
	if idx, ok := m.skins[node]; ok {
		return idx
	}

	meshWorld := m.world(node)
	ibm := make([][4][4]float32, len(m.Joints))
	for i, j := range m.Joints {
		inv := m.world(j).Inv().Mul4(meshWorld)
		for c := 0; c < 4; c++ {
			for r := 0; r < 4; r++ {
				ibm[i][c][r] = float32(inv.At(r, c))
			}
		}
	}

	skin := &gltf.Skin{
		Name:                m.Doc.Nodes[m.RootNode].Name,
		Skeleton:            gltf.Index(m.RootNode),
		Joints:              append([]int(nil), m.Joints...),
		InverseBindMatrices: gltf.Index(modeler.WriteAccessor(m.Doc, gltf.TargetNone, ibm)),
	}
	m.Doc.Skins = append(m.Doc.Skins, skin)
	idx := len(m.Doc.Skins) - 1
	m.skins[node] = idx
	return idx
}

// Save writes the document; a .glb extension selects the binary container.
// Buffers without a URI are embedded when writing .gltf.
func (m *Model) Save(path string) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(m.Doc, path)
	} else {
		for _, b := range m.Doc.Buffers {
			if b.URI == "" && len(b.Data) > 0 {
				b.EmbeddedResource()
			}
		}
		err = gltf.Save(m.Doc, path)
	}
	if err != nil {
		return fmt.Errorf("gltfio: save %s: %w", path, err)
	}
	return nil
}
