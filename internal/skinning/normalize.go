package skinning

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Normalize repairs vertices whose weights do not sum to 1 within
// SumTolerance. The deficit or surplus is spread evenly over the non-zero
// slots; when an even spread would push a slot below zero the slots are
// scaled proportionally instead. Negative weights are clamped to zero and a
// vertex with no weight left gets its first slot set to 1.
//
// Normalize is idempotent. It returns the number of vertices changed.
func Normalize(b *Binding) int {
	repaired := 0
	for v := 0; v < b.VertexCount(); v++ {
		if normalizeVertex(b, v) {
			repaired++
		}
	}
	return repaired
}

func normalizeVertex(b *Binding, v int) bool {
	_, w := b.Slots(v)

	clamped := false
	for s := range w {
		if w[s] < 0 {
			w[s] = 0
			clamped = true
		}
	}

	sum := floats.Sum(w)
	if math.Abs(sum-1) <= SumTolerance {
		return clamped
	}

	nonZero := 0
	for _, x := range w {
		if x != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		w[0] = 1
		return true
	}

	delta := (1 - sum) / float64(nonZero)
	for _, x := range w {
		if x != 0 && x+delta < 0 {
			floats.Scale(1/sum, w)
			return true
		}
	}
	for s := range w {
		if w[s] != 0 {
			w[s] += delta
		}
	}
	return true
}
