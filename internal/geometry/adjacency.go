package geometry

import "sort"

// Adjacency lists, per vertex, the vertices sharing a triangle edge with it.
// Neighbour lists are sorted ascending and free of duplicates.
type Adjacency struct {
	neighbors [][]int
}

// BuildAdjacency registers the three undirected edges of every indexed
// triangle. Non-indexed geometry yields an empty graph.
func BuildAdjacency(g *Geometry) *Adjacency {
	adj := &Adjacency{neighbors: make([][]int, len(g.Positions))}
	if !g.Indexed() {
		return adj
	}

	link := func(a, b int) {
		if a == b {
			return
		}
		adj.neighbors[a] = append(adj.neighbors[a], b)
		adj.neighbors[b] = append(adj.neighbors[b], a)
	}
	for _, t := range g.Triangles {
		link(t[0], t[1])
		link(t[1], t[2])
		link(t[2], t[0])
	}

	for i, ns := range adj.neighbors {
		adj.neighbors[i] = sortUnique(ns)
	}
	return adj
}

func sortUnique(s []int) []int {
	if len(s) < 2 {
		return s
	}
	sort.Ints(s)
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// Len returns the vertex count the graph was built for.
func (a *Adjacency) Len() int { return len(a.neighbors) }

// Neighbors returns the neighbours of vertex v. The slice must not be modified.
func (a *Adjacency) Neighbors(v int) []int { return a.neighbors[v] }

// EdgeCount returns the number of undirected edges.
func (a *Adjacency) EdgeCount() int {
	n := 0
	for _, ns := range a.neighbors {
		n += len(ns)
	}
	return n / 2
}

// ForEachEdge calls fn once per undirected edge (i < j), in ascending order.
func (a *Adjacency) ForEachEdge(fn func(i, j int)) {
	for i, ns := range a.neighbors {
		for _, j := range ns {
			if j > i {
				fn(i, j)
			}
		}
	}
}
