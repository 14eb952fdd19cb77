package celllist

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; package
// prommetrics provides a Prometheus implementation.
//
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordBuild is called after each Build or BuildParallel.
	// workers is 1 for serial builds.
	RecordBuild(points, cells, workers int, duration time.Duration, err error)

	// RecordMerge is called after each Merge.
	RecordMerge(cells int, duration time.Duration, err error)

	// RecordQuery is called after each NearNeighbors or PNearNeighbors.
	RecordQuery(pairs, workers int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordMerge(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordQuery(int, int, time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	PointsIndexed   atomic.Int64
	MergeCount      atomic.Int64
	MergeErrors     atomic.Int64
	MergeTotalNanos atomic.Int64
	QueryCount      atomic.Int64
	QueryErrors     atomic.Int64
	QueryTotalNanos atomic.Int64
	PairsEmitted    atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(points, cells, workers int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.PointsIndexed.Add(int64(points))
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(cells int, duration time.Duration, err error) {
	b.MergeCount.Add(1)
	b.MergeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MergeErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(pairs, workers int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
		return
	}
	b.PairsEmitted.Add(int64(pairs))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:    b.BuildCount.Load(),
		BuildErrors:   b.BuildErrors.Load(),
		BuildAvgNanos: avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		PointsIndexed: b.PointsIndexed.Load(),
		MergeCount:    b.MergeCount.Load(),
		MergeErrors:   b.MergeErrors.Load(),
		MergeAvgNanos: avg(b.MergeTotalNanos.Load(), b.MergeCount.Load()),
		QueryCount:    b.QueryCount.Load(),
		QueryErrors:   b.QueryErrors.Load(),
		QueryAvgNanos: avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
		PairsEmitted:  b.PairsEmitted.Load(),
	}
}

// Reset clears all metrics.
func (b *BasicMetricsCollector) Reset() {
	b.BuildCount.Store(0)
	b.BuildErrors.Store(0)
	b.BuildTotalNanos.Store(0)
	b.PointsIndexed.Store(0)
	b.MergeCount.Store(0)
	b.MergeErrors.Store(0)
	b.MergeTotalNanos.Store(0)
	b.QueryCount.Store(0)
	b.QueryErrors.Store(0)
	b.QueryTotalNanos.Store(0)
	b.PairsEmitted.Store(0)
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a point-in-time copy of BasicMetricsCollector.
type BasicMetricsStats struct {
	BuildCount    int64
	BuildErrors   int64
	BuildAvgNanos int64
	PointsIndexed int64
	MergeCount    int64
	MergeErrors   int64
	MergeAvgNanos int64
	QueryCount    int64
	QueryErrors   int64
	QueryAvgNanos int64
	PairsEmitted  int64
}
