package skinning

import "mesh-autoskin/internal/mathutil"

const (
	// segmentBlendZone is the fraction of the bone→child segment, measured
	// from the bone head, in which the parent shares influence.
	segmentBlendZone = 0.5
	// segmentBlendMax is the bone weight above which the parent share is
	// dropped as negligible.
	segmentBlendMax = 0.9
)

// SegmentParentBlend starts from NearestAnchor and, for bones with both a
// parent and a child, blends toward the parent across the half of the bone
// segment that lies away from the child.
//
// With s the clamped projection of the vertex onto the bone→child segment
// divided by the segment length, the bone keeps w = 1 − s and the parent
// receives s. Blends with w > 0.9 are skipped.
type SegmentParentBlend struct{}

func (SegmentParentBlend) Kind() StrategyKind { return StrategySegmentBlend }

func (SegmentParentBlend) assign(st *state, p mathutil.Vec3) influence {
	bone := st.nearestAnchor(p)
	inf := rigid(bone)

	parent := st.bones.Parent(bone)
	if parent < 0 || st.excluded(parent) || !st.eligible(parent, p) {
		return inf
	}
	seg, ok := st.anchors.Segment(bone)
	if !ok {
		return inf
	}
	length := seg.Len()
	if length < 1e-12 {
		return inf
	}

	s := seg.Project(p) / length
	if s >= segmentBlendZone {
		return inf
	}
	w := 1 - s
	if w > segmentBlendMax {
		return inf
	}

	return influence{
		bones:   [Influences]int{bone, parent},
		weights: [Influences]float64{w, 1 - w},
		n:       2,
	}
}
