// Package geometry is the read-only mesh input of the skinning solver and
// the topology derived from it.
package geometry

import (
	"errors"
	"fmt"

	"mesh-autoskin/internal/mathutil"
)

var (
	// ErrMissingPositions is returned for geometry without a position buffer.
	ErrMissingPositions = errors.New("geometry: missing vertex positions")
	// ErrIndexOutOfRange is returned for triangles referencing unknown vertices.
	ErrIndexOutOfRange = errors.New("geometry: triangle index out of range")
)

// Geometry is a vertex position buffer plus an optional triangle list.
// Without Triangles, consecutive vertex triples are read as triangles for
// raycasting, and no adjacency exists.
type Geometry struct {
	Name      string
	Positions []mathutil.Vec3
	Triangles [][3]int
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return len(g.Positions) }

// Indexed reports whether the geometry carries a triangle index buffer.
func (g *Geometry) Indexed() bool { return g.Triangles != nil }

// Validate checks the preconditions the solver relies on.
func (g *Geometry) Validate() error {
	if g == nil || g.Positions == nil {
		return ErrMissingPositions
	}
	n := len(g.Positions)
	for ti, tri := range g.Triangles {
		for _, v := range tri {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: triangle %d references vertex %d (of %d)", ErrIndexOutOfRange, ti, v, n)
			}
		}
	}
	return nil
}

// ForEachTriangle calls fn with the vertex indices of every triangle.
func (g *Geometry) ForEachTriangle(fn func(a, b, c int)) {
	if g.Indexed() {
		for _, t := range g.Triangles {
			fn(t[0], t[1], t[2])
		}
		return
	}
	for i := 0; i+2 < len(g.Positions); i += 3 {
		fn(i, i+1, i+2)
	}
}
