package skinning

import (
	"gonum.org/v1/gonum/floats"

	"mesh-autoskin/internal/mathutil"
	"mesh-autoskin/internal/skeleton"
)

// lateralDeadZone keeps vertices on the mid-plane eligible for both sides.
const lateralDeadZone = 1e-6

// InverseDistanceBlend weights the four closest bones by inverse distance.
// Bone shapes are points for leaves and bone→child segments otherwise.
// Bones on the opposite side of the body are skipped, and a vertex whose
// closest bone is an extremity (foot, toes) is bound to it alone.
type InverseDistanceBlend struct{}

func (InverseDistanceBlend) Kind() StrategyKind { return StrategyInverseDistance }

func (InverseDistanceBlend) assign(st *state, p mathutil.Vec3) influence {
	var (
		near  [Influences]int
		dists [Influences]float64
		n     int
	)
	vertexSide := sideOf(p)

	for _, b := range st.candidates {
		if !st.eligible(b, p) || opposite(st.side[b], vertexSide) {
			continue
		}
		d := st.anchors.DistanceTo(b, p)

		// insertion into the sorted top-4; strict < keeps the earlier bone on ties
		pos := n
		for pos > 0 && d < dists[pos-1] {
			pos--
		}
		if pos >= Influences {
			continue
		}
		if n < Influences {
			n++
		}
		for k := n - 1; k > pos; k-- {
			near[k], dists[k] = near[k-1], dists[k-1]
		}
		near[pos], dists[pos] = b, d
	}

	if n == 0 {
		return rigid(st.nearestAnchor(p))
	}
	if st.extremity[near[0]] || dists[0] < rigidEpsilon || n == 1 {
		return rigid(near[0])
	}

	inv := make([]float64, n)
	for k := 0; k < n; k++ {
		inv[k] = 1 / dists[k]
	}
	floats.Scale(1/floats.Sum(inv), inv)

	inf := influence{n: n}
	for k := 0; k < n; k++ {
		inf.bones[k] = near[k]
		inf.weights[k] = inv[k]
	}
	return inf
}

func sideOf(p mathutil.Vec3) skeleton.Side {
	x := p[mathutil.LateralAxis]
	switch {
	case x > lateralDeadZone:
		return skeleton.SideLeft
	case x < -lateralDeadZone:
		return skeleton.SideRight
	}
	return skeleton.SideCenter
}

func opposite(bone, vertex skeleton.Side) bool {
	if bone == skeleton.SideCenter || vertex == skeleton.SideCenter {
		return false
	}
	return bone != vertex
}
