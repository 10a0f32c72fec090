package skinning

import "mesh-autoskin/internal/geometry"

// SmoothBoundaries splits hard creases between rigid regions. For every
// adjacent pair where both vertices are bound 100% to different bones, both
// vertices and every seam duplicate of either get an even split between the
// two bones. Vertices already blended are left alone. Each unordered pair is
// visited once, in ascending (i, j) order. groups may be nil.
//
// It returns the number of pairs smoothed.
func SmoothBoundaries(b *Binding, adj *geometry.Adjacency, groups *geometry.PositionGroups) int {
	smoothed := 0
	adj.ForEachEdge(func(i, j int) {
		boneI, ok := b.Rigid(i)
		if !ok {
			return
		}
		boneJ, ok := b.Rigid(j)
		if !ok || boneI == boneJ {
			return
		}

		split := influence{
			bones:   [Influences]int{boneI, boneJ},
			weights: [Influences]float64{0.5, 0.5},
			n:       2,
		}
		for _, v := range members(groups, i) {
			b.set(v, split)
		}
		for _, v := range members(groups, j) {
			b.set(v, split)
		}
		smoothed++
	})
	return smoothed
}

func members(groups *geometry.PositionGroups, v int) []int {
	if groups == nil {
		return []int{v}
	}
	return groups.Members(v)
}
