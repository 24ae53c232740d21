package generator

import (
	"fmt"
	"math/rand/v2"
)

// Weighted draws items by cumulative weight. Probability mass the weights
// leave uncovered (float rounding, or weights summing below 1) lands on the last item.
type Weighted[T any] struct {
	items []T
	cum   []float64
}

func NewWeighted[T any](items []T, weights []float64) (Weighted[T], error) {
	if len(items) == 0 || len(items) != len(weights) {
		return Weighted[T]{}, fmt.Errorf("weighted: %d items, %d weights", len(items), len(weights))
	}
	cum := make([]float64, len(weights))
	var acc float64
	for i, w := range weights {
		if w < 0 {
			return Weighted[T]{}, fmt.Errorf("weighted: negative weight %v at %d", w, i)
		}
		acc += w
		cum[i] = acc
	}
	return Weighted[T]{items: items, cum: cum}, nil
}

func mustWeighted[T any](items []T, weights []float64) Weighted[T] {
	w, err := NewWeighted(items, weights)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Weighted[T]) Pick(r *rand.Rand) T {
	x := r.Float64()
	for i, c := range w.cum {
		if x < c {
			return w.items[i]
		}
	}
	return w.items[len(w.items)-1]
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// sample draws k distinct elements, in draw order.
func sample[T any](r *rand.Rand, items []T, k int) []T {
	pool := append([]T(nil), items...)
	if k > len(pool) {
		k = len(pool)
	}
	out := make([]T, 0, k)
	for range k {
		i := r.IntN(len(pool))
		out = append(out, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	return out
}

// chance is true with probability p.
func chance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}
