package skinning

import "mesh-autoskin/internal/mathutil"

// NearestAnchor binds each vertex rigidly to the bone with the closest
// segment anchor.
type NearestAnchor struct{}

func (NearestAnchor) Kind() StrategyKind { return StrategyNearestAnchor }

func (NearestAnchor) assign(st *state, p mathutil.Vec3) influence {
	return rigid(st.nearestAnchor(p))
}
