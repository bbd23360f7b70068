// SPDX-License-Identifier: EPL-2.0

// Package loudness scores PCM by its mean absolute sample value.
//
// The score is only meant as a sort key between records decoded to the
// same canonical format; it is not a perceptual loudness measure.
package loudness

import (
	"cmp"
	"slices"
)

// Score returns the mean of |s| over samples. An empty slice scores 0, so
// the result is always finite.
func Score(samples []int16) float64 {
	var acc Accumulator
	acc.Add(samples)
	return acc.Score()
}

// Accumulator folds chunks of samples into a running score.
// The zero value is ready to use.
type Accumulator struct {
	sum   int64
	count int64
}

// Add folds a chunk into the running totals.
func (a *Accumulator) Add(chunk []int16) {
	for _, s := range chunk {
		v := int64(s)
		if v < 0 {
			v = -v
		}
		a.sum += v
	}
	a.count += int64(len(chunk))
}

// Count is the number of samples added so far.
func (a *Accumulator) Count() int64 { return a.count }

// Score is the mean absolute value of everything added, or 0 before any
// sample was added.
func (a *Accumulator) Score() float64 {
	if a.count == 0 {
		return 0
	}
	return float64(a.sum) / float64(a.count)
}

// Compare orders scores ascending. It is a total order over the finite
// values Score produces.
func Compare(a, b float64) int {
	return cmp.Compare(a, b)
}

// Sort orders items by the score of their samples, quietest first.
// Each item is scored once, and items with equal scores keep their
// relative order.
func Sort[T any](items []T, samples func(T) []int16) {
	if len(items) < 2 {
		return
	}

	type keyed struct {
		item  T
		score float64
	}

	keys := make([]keyed, len(items))
	for i, it := range items {
		keys[i] = keyed{item: it, score: Score(samples(it))}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		return Compare(a.score, b.score)
	})

	for i := range keys {
		items[i] = keys[i].item
	}
}
