package skinning

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// Influences is the number of (bone, weight) slots per vertex.
	Influences = 4
	// SumTolerance is how far a vertex's weight sum may drift from 1.
	SumTolerance = 1e-4

	rigidEpsilon = 1e-9
)

// Binding is the solver output: two parallel buffers of Influences slots per
// vertex, in vertex order.
type Binding struct {
	Indices []int
	Weights []float64
}

// NewBinding allocates a zeroed binding for vertexCount vertices.
func NewBinding(vertexCount int) *Binding {
	return &Binding{
		Indices: make([]int, vertexCount*Influences),
		Weights: make([]float64, vertexCount*Influences),
	}
}

// VertexCount returns the number of vertices covered.
func (b *Binding) VertexCount() int { return len(b.Weights) / Influences }

// Slots returns vertex v's index and weight slots (views into the buffers).
func (b *Binding) Slots(v int) ([]int, []float64) {
	o := v * Influences
	return b.Indices[o : o+Influences], b.Weights[o : o+Influences]
}

// Sum returns the weight sum of vertex v.
func (b *Binding) Sum(v int) float64 {
	_, w := b.Slots(v)
	return floats.Sum(w)
}

// Rigid returns the bone vertex v is fully bound to, if it has exactly one
// influence of weight 1.
func (b *Binding) Rigid(v int) (int, bool) {
	idx, w := b.Slots(v)
	if math.Abs(w[0]-1) > rigidEpsilon {
		return 0, false
	}
	for _, x := range w[1:] {
		if math.Abs(x) > rigidEpsilon {
			return 0, false
		}
	}
	return idx[0], true
}

// set writes an influence record. Unused slots repeat the first bone with
// weight 0 so every index refers to a bone that actually influences the vertex.
func (b *Binding) set(v int, inf influence) {
	idx, w := b.Slots(v)
	for s := 0; s < Influences; s++ {
		if s < inf.n {
			idx[s] = inf.bones[s]
			w[s] = inf.weights[s]
			continue
		}
		idx[s] = inf.bones[0]
		w[s] = 0
	}
}

// clone returns a deep copy.
func (b *Binding) clone() *Binding {
	return &Binding{
		Indices: append([]int(nil), b.Indices...),
		Weights: append([]float64(nil), b.Weights...),
	}
}

// BonesUsed returns, per bone id, the number of vertices with non-zero
// weight on that bone.
func (b *Binding) BonesUsed(boneCount int) []int {
	used := make([]int, boneCount)
	for v := 0; v < b.VertexCount(); v++ {
		idx, w := b.Slots(v)
		seen := [Influences]int{-1, -1, -1, -1}
		for s := range idx {
			if w[s] == 0 || idx[s] < 0 || idx[s] >= boneCount {
				continue
			}
			dup := false
			for _, p := range seen[:s] {
				if p == idx[s] {
					dup = true
				}
			}
			seen[s] = idx[s]
			if !dup {
				used[idx[s]]++
			}
		}
	}
	return used
}

// InvalidVertices returns, in ascending order, the vertices whose weights do
// not sum to 1 within SumTolerance. It never modifies b.
func InvalidVertices(b *Binding) []int {
	var bad []int
	for v := 0; v < b.VertexCount(); v++ {
		if math.Abs(b.Sum(v)-1) > SumTolerance {
			bad = append(bad, v)
		}
	}
	return bad
}

// ValidationError describes the first invariant violation found by Validate.
type ValidationError struct {
	Vertex int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("skinning: vertex %d: %s", e.Vertex, e.Reason)
}

// Validate checks every binding invariant: buffer shape, non-negative
// weights, weight sums, and indices within [0, boneCount) that never name an
// excluded bone.
func (b *Binding) Validate(boneCount int, excluded func(bone int) bool) error {
	if len(b.Indices) != len(b.Weights) || len(b.Weights)%Influences != 0 {
		return fmt.Errorf("skinning: malformed binding: %d indices, %d weights", len(b.Indices), len(b.Weights))
	}
	for v := 0; v < b.VertexCount(); v++ {
		idx, w := b.Slots(v)
		for s := range idx {
			if idx[s] < 0 || idx[s] >= boneCount {
				return &ValidationError{v, fmt.Sprintf("slot %d bone %d out of range [0, %d)", s, idx[s], boneCount)}
			}
			if excluded != nil && excluded(idx[s]) {
				return &ValidationError{v, fmt.Sprintf("slot %d references excluded bone %d", s, idx[s])}
			}
			if w[s] < 0 {
				return &ValidationError{v, fmt.Sprintf("slot %d negative weight %g", s, w[s])}
			}
		}
		if sum := floats.Sum(w); math.Abs(sum-1) > SumTolerance {
			return &ValidationError{v, fmt.Sprintf("weight sum %g", sum)}
		}
	}
	return nil
}
