package debugviz

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"mesh-autoskin/internal/geometry"
)

// Payload is the visualization of one solve.
type Payload struct {
	VertexColors []colorful.Color // primary-bone color per vertex
	Wireframe    Wireframe
	Missing      int // vertices whose bone fell outside the palette
}

// Wireframe is the semi-transparent edge overlay of the source geometry.
type Wireframe struct {
	Edges   [][2]int
	Color   colorful.Color
	Opacity float64
}

// Build colors every vertex by its slot-0 bone. indices is the skin-index
// buffer (four slots per vertex); boneCount sizes the palette.
func Build(g *geometry.Geometry, indices []int, boneCount int) (*Payload, error) {
	n := g.VertexCount()
	if len(indices) != n*4 {
		return nil, fmt.Errorf("debugviz: %d skin indices for %d vertices", len(indices), n)
	}

	palette := BoneColors(boneCount)
	p := &Payload{
		VertexColors: make([]colorful.Color, n),
		Wireframe: Wireframe{
			Edges:   wireEdges(g),
			Color:   WireframeColor,
			Opacity: WireframeOpacity,
		},
	}
	for v := 0; v < n; v++ {
		bone := indices[v*4]
		if bone < 0 || bone >= boneCount {
			p.Missing++
		}
		p.VertexColors[v] = ColorFor(palette, bone)
	}
	return p, nil
}

// wireEdges returns the unique triangle edges in ascending order.
func wireEdges(g *geometry.Geometry) [][2]int {
	seen := map[[2]int]struct{}{}
	add := func(a, b int) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		seen[[2]int{a, b}] = struct{}{}
	}
	g.ForEachTriangle(func(a, b, c int) {
		add(a, b)
		add(b, c)
		add(c, a)
	})

	edges := make([][2]int, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	return edges
}
