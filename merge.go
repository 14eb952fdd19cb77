package celllist

import (
	"context"
	"time"
)

// Merge returns a new store whose cell lists are the concatenation of a's
// and b's lists, a first. Neither input is modified.
//
// Both stores must have the same dimension, otherwise a
// *DimensionMismatchError is returned. The cell sizes are expected to match
// but are not checked; the result keeps a's radius and options.
//
// Merging is associative and commutative with respect to the set of indices
// held by each cell. The order of indices within a cell depends on the merge
// order and must not be relied upon.
func Merge(a, b *Store) (*Store, error) {
	if a == nil || b == nil {
		return nil, invalidArgument("cannot merge a nil store")
	}
	ctx := context.Background()
	start := time.Now()
	o := a.opts

	if a.dim != b.dim {
		err := &DimensionMismatchError{Expected: a.dim, Actual: b.dim}
		o.logger.LogMerge(ctx, a.NumCells(), b.NumCells(), 0, err)
		o.metricsCollector.RecordMerge(0, time.Since(start), err)
		return nil, err
	}

	out := a.clone()
	out.absorb(b)

	o.logger.WithDimension(a.dim).LogMerge(ctx, a.NumCells(), b.NumCells(), out.NumCells(), nil)
	o.metricsCollector.RecordMerge(out.NumCells(), time.Since(start), nil)
	return out, nil
}
