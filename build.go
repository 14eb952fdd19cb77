package celllist

import (
	"context"
	"time"

	"github.com/hupe1980/celllist/internal/grid"
)

// Build assigns every point to its grid cell of side r, in index order.
//
// Row i of points is recorded as index i (plus WithIndexOffset, if given).
// It returns ErrInvalidArgument if r is not positive and finite or the point
// set has no dimensions. An empty point set yields an empty, valid store.
//
// Example:
//
//	pts, _ := celllist.FromRows([][]float64{{0, 0}, {0.005, 0}, {0.5, 0.5}})
//	s, _ := celllist.Build(pts, 0.01)
//	pairs := s.NearNeighbors() // [{0 1}]
func Build(points Points, r float64, opts ...Option) (*Store, error) {
	ctx := context.Background()
	o := applyOptions(opts)
	start := time.Now()

	n, d, err := validate(points, r, o.indexOffset)
	if err != nil {
		o.logger.LogBuild(ctx, n, 0, 1, err)
		o.metricsCollector.RecordBuild(n, 0, 1, time.Since(start), err)
		return nil, err
	}

	s := newStore(d, r, o)
	s.fill(points, 0, n)

	o.logger.WithDimension(d).WithRadius(r).LogBuild(ctx, n, s.NumCells(), 1, nil)
	o.metricsCollector.RecordBuild(n, s.NumCells(), 1, time.Since(start), nil)
	return s, nil
}

// fill inserts rows [lo, hi) of points into s.
func (s *Store) fill(points Points, lo, hi int) {
	row := make([]float64, s.dim)
	coord := make(grid.Coord, s.dim)
	keyBuf := make([]byte, 0, 8*s.dim)
	for i := lo; i < hi; i++ {
		row = readRow(row, points, i)
		coord = grid.CellOf(coord, row, s.radius)
		keyBuf = s.insert(keyBuf, coord, s.opts.indexOffset+i)
	}
}
