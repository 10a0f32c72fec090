package skeleton

import "mesh-autoskin/internal/mathutil"

// AnchorCache holds the per-bone distance targets used by the solver's main
// loop. It is a pure function of the BoneList and is built once per solve.
type AnchorCache struct {
	positions []mathutil.Vec3
	anchors   []mathutil.Vec3
	childPos  []mathutil.Vec3
	hasChild  []bool
}

// NewAnchorCache computes world positions and segment anchors for every bone.
// The segment anchor is the midpoint to the first child, or the bone's own
// position for leaves.
func NewAnchorCache(l *BoneList) *AnchorCache {
	n := l.Len()
	c := &AnchorCache{
		positions: make([]mathutil.Vec3, n),
		anchors:   make([]mathutil.Vec3, n),
		childPos:  make([]mathutil.Vec3, n),
		hasChild:  make([]bool, n),
	}
	for i := 0; i < n; i++ {
		c.positions[i] = l.WorldPosition(i)
	}
	for i := 0; i < n; i++ {
		child := l.FirstChild(i)
		if child < 0 {
			c.anchors[i] = c.positions[i]
			c.childPos[i] = c.positions[i]
			continue
		}
		c.hasChild[i] = true
		c.childPos[i] = c.positions[child]
		c.anchors[i] = c.positions[i].Lerp(c.positions[child], 0.5)
	}
	return c
}

// Len returns the number of cached bones.
func (c *AnchorCache) Len() int { return len(c.positions) }

// Position returns bone i's world position.
func (c *AnchorCache) Position(i int) mathutil.Vec3 { return c.positions[i] }

// Anchor returns bone i's segment anchor.
func (c *AnchorCache) Anchor(i int) mathutil.Vec3 { return c.anchors[i] }

// Segment returns the bone→first-child segment and false for leaves.
func (c *AnchorCache) Segment(i int) (mathutil.Segment, bool) {
	return mathutil.Segment{A: c.positions[i], B: c.childPos[i]}, c.hasChild[i]
}

// DistanceTo returns the distance from p to bone i's point-or-segment shape:
// the bone position for leaves, otherwise the bone→child segment.
func (c *AnchorCache) DistanceTo(i int, p mathutil.Vec3) float64 {
	if !c.hasChild[i] {
		return c.positions[i].DistanceTo(p)
	}
	return mathutil.Segment{A: c.positions[i], B: c.childPos[i]}.DistanceTo(p)
}
