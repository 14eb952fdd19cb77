package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	data := rng.UniformPoints(8, 3)

	require.Len(t, data, 24)
	for _, v := range data {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestUniformRangePoints(t *testing.T) {
	rng := NewRNG(4711)

	data := rng.UniformRangePoints(16, 2, -5, 5)

	require.Len(t, data, 32)
	for _, v := range data {
		assert.GreaterOrEqual(t, v, -5.0)
		assert.Less(t, v, 5.0)
	}
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.UniformPoints(4, 2)
	rng.Reset()
	b := rng.UniformPoints(4, 2)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(42), rng.Seed())
}

func TestClusteredPoints(t *testing.T) {
	rng := NewRNG(1)

	data := rng.ClusteredPoints(100, 2, 3, 0.001)

	assert.Len(t, data, 200)
}

func TestPermute(t *testing.T) {
	data := []float64{0, 0, 1, 1, 2, 2}
	assert.Equal(t, []float64{2, 2, 0, 0, 1, 1}, Permute(data, 2, []int{2, 0, 1}))
}

func TestBruteForcePairs(t *testing.T) {
	data := []float64{
		0, 0,
		0.005, 0,
		0.5, 0.5,
		0.5, 0.51, // 0.01 plus rounding away from point 2
	}

	got := BruteForcePairs(data, 2, 0.01)

	require.Len(t, got, 1)
	assert.Equal(t, [2]int{0, 1}, got[0])

	got = BruteForcePairs(data, 2, 0.0100001)
	assert.Equal(t, [][2]int{{0, 1}, {2, 3}}, got)
}
