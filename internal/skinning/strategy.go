package skinning

import (
	"fmt"
	"strings"

	"mesh-autoskin/internal/mathutil"
	"mesh-autoskin/internal/skeleton"
)

// StrategyKind names a primary assignment heuristic.
type StrategyKind string

const (
	StrategyAuto            StrategyKind = "auto"
	StrategyNearestAnchor   StrategyKind = "nearest-anchor"
	StrategySegmentBlend    StrategyKind = "segment-blend"
	StrategyInverseDistance StrategyKind = "inverse-distance"
)

// ParseStrategy accepts the StrategyKind names; empty means auto.
func ParseStrategy(s string) (StrategyKind, error) {
	k := StrategyKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyNearestAnchor, StrategySegmentBlend, StrategyInverseDistance:
		return k, nil
	}
	return "", fmt.Errorf("skinning: unknown strategy %q", s)
}

// Resolve maps auto onto the heuristic suited to the skeleton type.
func (k StrategyKind) Resolve(c skeleton.Classification) StrategyKind {
	if k != StrategyAuto && k != "" {
		return k
	}
	switch c {
	case skeleton.Humanoid:
		return StrategyInverseDistance
	case skeleton.Quadruped, skeleton.Bird, skeleton.Dragon:
		return StrategySegmentBlend
	}
	return StrategyNearestAnchor
}

// Strategy computes the primary influences of one vertex. The set of
// strategies is closed; implementations live in this package.
type Strategy interface {
	Kind() StrategyKind
	assign(st *state, p mathutil.Vec3) influence
}

// NewStrategy returns the implementation for a resolved kind.
func NewStrategy(k StrategyKind) (Strategy, error) {
	switch k {
	case StrategyNearestAnchor:
		return NearestAnchor{}, nil
	case StrategySegmentBlend:
		return SegmentParentBlend{}, nil
	case StrategyInverseDistance:
		return InverseDistanceBlend{}, nil
	}
	return nil, fmt.Errorf("skinning: no strategy for %q", k)
}

// influence is one vertex's provisional record, n slots used.
type influence struct {
	bones   [Influences]int
	weights [Influences]float64
	n       int
}

func rigid(bone int) influence {
	return influence{bones: [Influences]int{bone}, weights: [Influences]float64{1}, n: 1}
}

// state is the per-solve cache shared by all strategies. It is read-only
// while vertices are assigned.
type state struct {
	bones      *skeleton.BoneList
	anchors    *skeleton.AnchorCache
	hip        HipRegion
	candidates []int // non-root bone ids, ascending
	isHip      []bool
	side       []skeleton.Side
	extremity  []bool
}

func newState(bones *skeleton.BoneList, anchors *skeleton.AnchorCache, hip HipRegion) *state {
	n := bones.Len()
	st := &state{
		bones:     bones,
		anchors:   anchors,
		hip:       hip,
		isHip:     make([]bool, n),
		side:      make([]skeleton.Side, n),
		extremity: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		name := bones.Name(i)
		st.isHip[i] = skeleton.IsHipName(name)
		st.side[i] = skeleton.BoneSide(name)
		st.extremity[i] = skeleton.IsExtremity(name)
		if !skeleton.IsRootName(name) {
			st.candidates = append(st.candidates, i)
		}
	}
	return st
}

// excluded reports whether bone may never appear in the output.
func (st *state) excluded(bone int) bool {
	return skeleton.IsRootName(st.bones.Name(bone))
}

// eligible applies the hip region test.
func (st *state) eligible(bone int, p mathutil.Vec3) bool {
	return !(st.isHip[bone] && st.hip.Excludes(p))
}

// nearestAnchor returns the eligible bone whose segment anchor is closest
// to p. Ties keep the earlier bone. When the hip test rejects every
// candidate the first candidate is used.
func (st *state) nearestAnchor(p mathutil.Vec3) int {
	best := -1
	bestDist := 0.0
	for _, b := range st.candidates {
		if !st.eligible(b, p) {
			continue
		}
		d := st.anchors.Anchor(b).DistanceTo(p)
		if best < 0 || d < bestDist {
			best, bestDist = b, d
		}
	}
	if best < 0 {
		return st.candidates[0]
	}
	return best
}
