package geometry

import (
	"math"

	"mesh-autoskin/internal/mathutil"
)

// positionPrecision is the rounding scale of the position key (6 decimals).
const positionPrecision = 1e6

type positionKey [3]int64

func keyOf(p mathutil.Vec3) positionKey {
	return positionKey{
		int64(math.Round(p[0] * positionPrecision)),
		int64(math.Round(p[1] * positionPrecision)),
		int64(math.Round(p[2] * positionPrecision)),
	}
}

// PositionGroups partitions vertices by rounded position so seam duplicates
// (same point, split for UVs or normals) can be kept weight-consistent.
// Group ids follow first occurrence in vertex order.
type PositionGroups struct {
	groupOf []int
	members [][]int
}

// BuildPositionGroups groups every vertex, singletons included.
func BuildPositionGroups(g *Geometry) *PositionGroups {
	pg := &PositionGroups{groupOf: make([]int, len(g.Positions))}
	ids := make(map[positionKey]int, len(g.Positions))
	for v, p := range g.Positions {
		k := keyOf(p)
		id, ok := ids[k]
		if !ok {
			id = len(pg.members)
			ids[k] = id
			pg.members = append(pg.members, nil)
		}
		pg.groupOf[v] = id
		pg.members[id] = append(pg.members[id], v)
	}
	return pg
}

// Len returns the number of groups.
func (pg *PositionGroups) Len() int { return len(pg.members) }

// GroupOf returns the group id of vertex v.
func (pg *PositionGroups) GroupOf(v int) int { return pg.groupOf[v] }

// Members returns the vertices sharing v's position, v included.
// The slice must not be modified.
func (pg *PositionGroups) Members(v int) []int { return pg.members[pg.groupOf[v]] }

// SeamCount returns the number of groups holding more than one vertex.
func (pg *PositionGroups) SeamCount() int {
	n := 0
	for _, m := range pg.members {
		if len(m) > 1 {
			n++
		}
	}
	return n
}
