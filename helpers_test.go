package celllist

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// cellSets returns the store as cell → sorted indices, ignoring intra-cell order.
func cellSets(s *Store) map[string][]int {
	out := make(map[string][]int, s.NumCells())
	for c, idx := range s.Cells() {
		sorted := slices.Clone(idx)
		slices.Sort(sorted)
		out[fmt.Sprint(c)] = sorted
	}
	return out
}

func mustFlat(t testing.TB, data []float64, d int) *Flat {
	t.Helper()
	f, err := FromFlat(data, d)
	require.NoError(t, err)
	return f
}

func mustBuild(t testing.TB, data []float64, d int, r float64, opts ...Option) *Store {
	t.Helper()
	s, err := Build(mustFlat(t, data, d), r, opts...)
	require.NoError(t, err)
	return s
}

func mustPairSet(t testing.TB, pairs []Pair) *PairSet {
	t.Helper()
	ps, err := NewPairSet(pairs)
	require.NoError(t, err)
	return ps
}

// requireWellFormed checks that every pair is ordered and appears once.
func requireWellFormed(t testing.TB, pairs []Pair) {
	t.Helper()
	seen := make(map[Pair]struct{}, len(pairs))
	for _, p := range pairs {
		require.Less(t, p.I, p.J, "pair %v not ordered", p)
		_, dup := seen[p]
		require.False(t, dup, "pair %v emitted twice", p)
		seen[p] = struct{}{}
	}
}
