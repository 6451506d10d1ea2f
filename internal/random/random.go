// Package random provides the seeded pseudo-random source behind the
// question shuffle. The sine-based generator reproduces orderings for
// seeds already held by clients, so the formula must not change without
// a compatibility plan. It is not cryptographically secure and must not
// be used where unpredictability matters.
package random

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strconv"
)

// Source yields a deterministic value in [0,1) for a (seed, step) pair.
// Isolated behind an interface so a stronger PRNG can be swapped in
// without touching shuffle or pagination logic.
type Source interface {
	Float64(seed string, step int) float64
}

type sineSource struct{}

func NewSineSource() Source {
	return sineSource{}
}

// Float64 concatenates the seed with the step, interprets the result as a
// number and returns the fractional part of sin(x)*10000. Seeds that do not
// parse as a number are hashed to a stable numeric input instead.
func (sineSource) Float64(seed string, step int) float64 {
	key := seed + strconv.Itoa(step)
	x, err := strconv.ParseFloat(key, 64)
	if err != nil || math.IsInf(x, 0) {
		h := fnv.New64a()
		h.Write([]byte(key))
		x = float64(h.Sum64())
	}
	v := math.Sin(x) * 10000
	f := v - math.Floor(v)
	if f < 0 || f >= 1 || math.IsNaN(f) {
		return 0
	}
	return f
}

// NewSeed generates a fresh seed for first-time callers. The decimal form
// matches what clients echo back on subsequent page requests.
func NewSeed() string {
	return strconv.FormatFloat(rand.Float64(), 'f', -1, 64)
}

// Shuffle returns a new slice holding the same elements permuted by a
// Fisher-Yates pass driven by src. Same (items, seed) always yields the
// same order.
func Shuffle[T any](items []T, seed string, src Source) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	for m := len(shuffled); m > 1; {
		i := int(math.Floor(src.Float64(seed, m) * float64(m)))
		m--
		shuffled[m], shuffled[i] = shuffled[i], shuffled[m]
	}
	return shuffled
}

// Paginate slices items for a 1-based page of the given size, clamped to
// bounds. It returns the page slice and the total page count.
func Paginate[T any](items []T, page, limit int) ([]T, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	totalPages := (len(items) + limit - 1) / limit

	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}
