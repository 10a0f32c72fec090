package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"mesh-autoskin/internal/mathutil"
)

// BoneList is the flattened bone tree. A bone's position in the list is its
// bone id for the duration of one solve.
type BoneList struct {
	bones   []*Bone
	parents []int
	index   map[*Bone]int
	worlds  []mgl64.Mat4
}

// Flatten walks the tree depth-first, pre-order, children in slice order, and
// computes world matrices along the way. A nil root yields an empty list.
// The tree must not contain cycles.
func Flatten(root *Bone) *BoneList {
	l := &BoneList{index: map[*Bone]int{}}
	if root == nil {
		return l
	}
	l.visit(root, -1, mgl64.Ident4())
	return l
}

func (l *BoneList) visit(b *Bone, parent int, parentWorld mgl64.Mat4) {
	idx := len(l.bones)
	world := parentWorld.Mul4(b.LocalMatrix())

	l.bones = append(l.bones, b)
	l.parents = append(l.parents, parent)
	l.worlds = append(l.worlds, world)
	l.index[b] = idx

	for _, c := range b.Children {
		l.visit(c, idx, world)
	}
}

// Len returns the number of bones.
func (l *BoneList) Len() int { return len(l.bones) }

// Bone returns the bone with id i.
func (l *BoneList) Bone(i int) *Bone { return l.bones[i] }

// Name returns the name of bone i.
func (l *BoneList) Name(i int) string { return l.bones[i].Name }

// Parent returns the id of bone i's parent, or -1 for the root.
func (l *BoneList) Parent(i int) int { return l.parents[i] }

// Index returns the id of b.
func (l *BoneList) Index(b *Bone) (int, bool) {
	i, ok := l.index[b]
	return i, ok
}

// FirstChild returns the id of bone i's first child, or -1 for a leaf.
func (l *BoneList) FirstChild(i int) int {
	if len(l.bones[i].Children) == 0 {
		return -1
	}
	return l.index[l.bones[i].Children[0]]
}

// Children returns the ids of bone i's children in slice order.
func (l *BoneList) Children(i int) []int {
	out := make([]int, 0, len(l.bones[i].Children))
	for _, c := range l.bones[i].Children {
		out = append(out, l.index[c])
	}
	return out
}

// World returns the world matrix of bone i.
func (l *BoneList) World(i int) mgl64.Mat4 { return l.worlds[i] }

// WorldPosition returns the translation part of bone i's world matrix.
func (l *BoneList) WorldPosition(i int) mathutil.Vec3 {
	c := l.worlds[i].Col(3)
	return mathutil.Vec3{c[0], c[1], c[2]}
}

// Find returns the id of the first bone, in list order, matching pred.
func (l *BoneList) Find(pred func(name string) bool) (int, bool) {
	for i, b := range l.bones {
		if pred(b.Name) {
			return i, true
		}
	}
	return -1, false
}
