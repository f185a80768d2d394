package motion

import (
	"math"
	"math/rand/v2"
)

// CoherentCount returns round(n*coherence/100) clamped to [0, n]
// Halves round away from zero; NaN coherence counts as zero
func CoherentCount(n int, coherence float64) int {
	if n <= 0 || math.IsNaN(coherence) {
		return 0
	}
	k := math.Round(float64(n) * coherence / 100)
	if k <= 0 {
		return 0
	}
	if k >= float64(n) {
		return n
	}
	return int(k)
}

// SampleIndices draws k distinct indices from [0, n) without replacement
// k is clamped to [0, n]; order of the result is the draw order
func SampleIndices(n, k int, rng *rand.Rand) []int {
	if n <= 0 {
		return nil
	}
	perm := make([]int, n)
	return sampleInto(perm, k, rng)
}

// sampleInto reuses perm as the index pool, partial Fisher-Yates over the first k slots
func sampleInto(perm []int, k int, rng *rand.Rand) []int {
	n := len(perm)
	if k < 0 {
		k = 0
	}
	if k > n {
		k = n
	}
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:k]
}
