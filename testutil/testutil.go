package testutil

import (
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// UniformPoints returns num points of the given dimension in row-major
// order, every coordinate uniform in [0, 1).
func (r *RNG) UniformPoints(num, dim int) []float64 {
	return r.UniformRangePoints(num, dim, 0, 1)
}

// UniformRangePoints returns num points with coordinates uniform in [minVal, maxVal).
func (r *RNG) UniformRangePoints(num, dim int, minVal, maxVal float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	data := make([]float64, num*dim)
	for i := range data {
		data[i] = minVal + r.rand.Float64()*span
	}
	return data
}

// ClusteredPoints returns num points scattered around the given number of
// uniformly placed centers with Gaussian noise of standard deviation spread.
// Dense clusters put many points into few cells.
func (r *RNG) ClusteredPoints(num, dim, clusters int, spread float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if clusters < 1 {
		clusters = 1
	}
	centers := make([]float64, clusters*dim)
	for i := range centers {
		centers[i] = r.rand.Float64()
	}

	data := make([]float64, num*dim)
	for i := range num {
		c := r.rand.Intn(clusters)
		for j := range dim {
			data[i*dim+j] = centers[c*dim+j] + r.rand.NormFloat64()*spread
		}
	}
	return data
}

// Permute returns the rows of data (row-major, dim columns) reordered so
// that row k of the result is row perm[k] of data.
func Permute(data []float64, dim int, perm []int) []float64 {
	out := make([]float64, 0, len(data))
	for _, src := range perm {
		out = append(out, data[src*dim:(src+1)*dim]...)
	}
	return out
}

// BruteForcePairs returns every pair {i, j}, i < j, whose Euclidean distance
// is at most r, ordered by i then j. data is row-major with dim columns.
func BruteForcePairs(data []float64, dim int, r float64) [][2]int {
	n := len(data) / dim
	var out [][2]int
	for i := 0; i < n; i++ {
		a := data[i*dim : (i+1)*dim]
		for j := i + 1; j < n; j++ {
			if floats.Distance(a, data[j*dim:(j+1)*dim], 2) <= r {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}
