package celllist

import (
	"context"
	"runtime"
	"time"

	"github.com/hupe1980/celllist/internal/chunk"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// workerStats is written by exactly one worker while it runs. The padding
// keeps neighboring workers' counters on separate cache lines.
type workerStats struct {
	_     cpu.CacheLinePad
	cells int
	pairs int
	_     cpu.CacheLinePad
}

// resolveWorkers returns workers, or the current GOMAXPROCS if workers < 1.
func resolveWorkers(workers int) int {
	if workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return workers
}

// BuildParallel builds the same store as Build using up to workers goroutines.
//
// The points are split into contiguous blocks. Each worker builds a private
// store over its block, recording global point indices, and the private
// stores are then merged pairwise. workers < 1 means runtime.GOMAXPROCS(0).
//
// The result holds the same index set per cell as Build; only the order
// within a cell may differ. Cancelling ctx stops blocks that have not started
// yet and returns the context error; no partial store is returned.
func BuildParallel(ctx context.Context, points Points, r float64, workers int, opts ...Option) (*Store, error) {
	o := applyOptions(opts)
	start := time.Now()
	workers = resolveWorkers(workers)

	s, err := buildParallel(ctx, points, r, workers, o)
	if err != nil {
		o.logger.LogBuild(ctx, 0, 0, workers, err)
		o.metricsCollector.RecordBuild(0, 0, workers, time.Since(start), err)
		return nil, err
	}

	o.logger.WithDimension(s.dim).WithRadius(r).LogBuild(ctx, s.n, s.NumCells(), workers, nil)
	o.metricsCollector.RecordBuild(s.n, s.NumCells(), workers, time.Since(start), nil)
	return s, nil
}

func buildParallel(ctx context.Context, points Points, r float64, workers int, o options) (*Store, error) {
	n, d, err := validate(points, r, o.indexOffset)
	if err != nil {
		return nil, err
	}

	blocks := chunk.Split(n, workers)
	if len(blocks) == 0 {
		return newStore(d, r, o), nil
	}

	locals := make([]*Store, len(blocks))
	g, gctx := errgroup.WithContext(ctx)
	for w, blk := range blocks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local := newStore(d, r, o)
			local.fill(points, blk.Start, blk.End)
			locals[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reduce(ctx, locals)
}

// reduce merges stores pairwise in a binary tree, absorbing the right store
// of each pair into the left. Pairs within one level are disjoint and are
// merged concurrently.
func reduce(ctx context.Context, stores []*Store) (*Store, error) {
	for step := 1; step < len(stores); step *= 2 {
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i+step < len(stores); i += 2 * step {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				stores[i].absorb(stores[i+step])
				stores[i+step] = nil
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	return stores[0], nil
}

// PNearNeighbors returns the same pair set as NearNeighbors using up to
// workers goroutines. workers < 1 means runtime.GOMAXPROCS(0).
//
// The occupied cells are split into contiguous chunks in store order and each
// worker enumerates the pairs owned by its chunk, reading the shared store
// without synchronization. Partial results are concatenated in worker order.
// The overall pair order may differ from NearNeighbors and between worker
// counts. Cancelling ctx stops chunks that have not started yet and returns
// the context error.
func (s *Store) PNearNeighbors(ctx context.Context, workers int) ([]Pair, error) {
	start := time.Now()
	workers = resolveWorkers(workers)

	pairs, maxShare, err := s.pNearNeighbors(ctx, workers)
	s.opts.logger.LogQuery(ctx, workers, len(pairs), maxShare, err)
	s.opts.metricsCollector.RecordQuery(len(pairs), workers, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

func (s *Store) pNearNeighbors(ctx context.Context, workers int) ([]Pair, int, error) {
	chunks := chunk.Split(len(s.order), workers)
	parts := make([][]Pair, len(chunks))
	stats := make([]workerStats, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for w, ch := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e := newEnumerator(s, &stats[w])
			parts[w] = e.run(nil, s.order[ch.Start:ch.End])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	total, maxShare := 0, 0
	for i := range stats {
		total += stats[i].pairs
		maxShare = max(maxShare, stats[i].pairs)
	}
	pairs := make([]Pair, 0, total)
	for _, p := range parts {
		pairs = append(pairs, p...)
	}
	return pairs, maxShare, nil
}
