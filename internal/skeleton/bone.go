// Package skeleton holds the bone hierarchy consumed by the skinning solver:
// the caller-owned tree, its flattened index order and per-bone anchors.
package skeleton

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tiendc/go-deepcopy"

	"mesh-autoskin/internal/mathutil"
)

// Bone is one node of a rooted bone tree. The transform is local to the
// parent bone. A zero Rotation is read as identity and a zero Scale as 1.
type Bone struct {
	Name        string
	Translation mathutil.Vec3
	Rotation    [4]float64 // quaternion x, y, z, w
	Scale       mathutil.Vec3
	Children    []*Bone
}

// NewBone returns a bone with an identity rotation and unit scale.
func NewBone(name string, translation mathutil.Vec3) *Bone {
	return &Bone{
		Name:        name,
		Translation: translation,
		Rotation:    [4]float64{0, 0, 0, 1},
		Scale:       mathutil.Vec3{1, 1, 1},
	}
}

// Add appends children and returns b for chaining.
func (b *Bone) Add(children ...*Bone) *Bone {
	b.Children = append(b.Children, children...)
	return b
}

// LocalMatrix composes T * R * S.
func (b *Bone) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(b.Translation[0], b.Translation[1], b.Translation[2])

	q := mgl64.Quat{W: b.Rotation[3], V: mgl64.Vec3{b.Rotation[0], b.Rotation[1], b.Rotation[2]}}
	if q.Len() < 1e-12 {
		q = mgl64.QuatIdent()
	}
	r := q.Normalize().Mat4()

	sc := b.Scale
	if sc == (mathutil.Vec3{}) {
		sc = mathutil.Vec3{1, 1, 1}
	}
	s := mgl64.Scale3D(sc[0], sc[1], sc[2])

	return t.Mul4(r).Mul4(s)
}

// Clone deep-copies the tree rooted at root. The solver works on clones so
// the caller's live skeleton is never touched.
func Clone(root *Bone) (*Bone, error) {
	if root == nil {
		return nil, nil
	}
	var clone *Bone
	if err := deepcopy.Copy(&clone, root); err != nil {
		return nil, fmt.Errorf("skeleton: clone %q: %w", root.Name, err)
	}
	return clone, nil
}
