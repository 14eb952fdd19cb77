package celllist

import (
	"context"
	"time"

	"github.com/hupe1980/celllist/internal/grid"
)

// Pair is a candidate near-neighbor pair of point indices with I < J.
type Pair struct {
	I int
	J int
}

func makePair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{I: a, J: b}
}

// NearNeighbors returns every candidate pair of points that lie in the same
// cell or in adjacent cells (including edge and corner neighbors).
//
// The result is a superset of all pairs within the store's radius of each
// other: no pair closer than the radius is missed, but pairs in adjacent
// cells may be up to 2·r·sqrt(d) apart. Filtering by exact distance is left
// to the caller.
//
// Pairs are reported smaller index first, and each unordered pair appears
// once provided every index is held once. A store merged from inputs that
// share indices yields one pair per pair of occurrences, and never (i, i);
// use a PairSet to deduplicate. The order of the sequence is deterministic
// for a given store.
func (s *Store) NearNeighbors() []Pair {
	start := time.Now()
	e := newEnumerator(s, nil)
	pairs := e.run(nil, s.order)

	s.opts.logger.LogQuery(context.Background(), 1, len(pairs), len(pairs), nil)
	s.opts.metricsCollector.RecordQuery(len(pairs), 1, time.Since(start), nil)
	return pairs
}

// enumerator walks home cells against the half stencil. It only reads the
// store, so one enumerator per goroutine may share a store.
type enumerator struct {
	s       *Store
	stencil []grid.Coord
	keyBuf  []byte
	stats   *workerStats
}

func newEnumerator(s *Store, stats *workerStats) *enumerator {
	if stats == nil {
		stats = &workerStats{}
	}
	return &enumerator{
		s:       s,
		stencil: grid.HalfStencil(s.dim),
		keyBuf:  make([]byte, 0, 8*s.dim),
		stats:   stats,
	}
}

// run appends the pairs owned by every cell in home to dst.
func (e *enumerator) run(dst []Pair, home []*cell) []Pair {
	for _, c := range home {
		dst = e.visit(dst, c)
		e.stats.cells++
		e.stats.pairs = len(dst)
	}
	return dst
}

// visit appends the same-cell pairs of c and the cross pairs between c and
// each occupied cell c+o for canonical offsets o.
func (e *enumerator) visit(dst []Pair, c *cell) []Pair {
	idx := c.indices
	for a := 0; a < len(idx); a++ {
		for b := a + 1; b < len(idx); b++ {
			if idx[a] != idx[b] {
				dst = append(dst, makePair(idx[a], idx[b]))
			}
		}
	}

	for _, off := range e.stencil {
		e.keyBuf = grid.AppendNeighborKey(e.keyBuf[:0], c.coord, off)
		nb, ok := e.s.cells[string(e.keyBuf)]
		if !ok {
			continue
		}
		for _, i := range idx {
			for _, j := range nb.indices {
				if i != j {
					dst = append(dst, makePair(i, j))
				}
			}
		}
	}
	return dst
}
