// Package prommetrics exports celllist operation metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	store, err := celllist.Build(points, r,
//		celllist.WithMetricsCollector(prommetrics.New(reg, "myapp")))
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/celllist"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

var _ celllist.MetricsCollector = (*Collector)(nil)

// Collector implements celllist.MetricsCollector with Prometheus counters
// and histograms.
type Collector struct {
	buildTotal    *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	buildWorkers  prometheus.Histogram
	pointsIndexed prometheus.Counter
	cellsPerBuild prometheus.Histogram

	mergeTotal    *prometheus.CounterVec
	mergeDuration prometheus.Histogram

	queryTotal    *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	pairsEmitted  prometheus.Counter
}

// New registers the collector's metrics on reg under namespace and returns it.
// A nil reg registers nothing, which is useful in tests.
func New(reg prometheus.Registerer, namespace string) *Collector {
	f := promauto.With(reg)

	return &Collector{
		buildTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "celllist",
			Name:      "builds_total",
			Help:      "Total store builds by mode and status",
		}, []string{"mode", "status"}),
		buildDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "celllist",
			Name:      "build_duration_seconds",
			Help:      "Store build duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}, []string{"mode"}),
		buildWorkers: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "celllist",
			Name:      "build_workers",
			Help:      "Number of workers used per build",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		}),
		pointsIndexed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "celllist",
			Name:      "points_indexed_total",
			Help:      "Total points placed into cells by successful builds",
		}),
		cellsPerBuild: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "celllist",
			Name:      "build_cells",
			Help:      "Number of occupied cells per successful build",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		mergeTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "celllist",
			Name:      "merges_total",
			Help:      "Total store merges by status",
		}, []string{"status"}),
		mergeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "celllist",
			Name:      "merge_duration_seconds",
			Help:      "Store merge duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 16),
		}),
		queryTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "celllist",
			Name:      "queries_total",
			Help:      "Total near neighbor enumerations by mode and status",
		}, []string{"mode", "status"}),
		queryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "celllist",
			Name:      "query_duration_seconds",
			Help:      "Near neighbor enumeration duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		}, []string{"mode"}),
		pairsEmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "celllist",
			Name:      "pairs_emitted_total",
			Help:      "Total candidate pairs emitted",
		}),
	}
}

// RecordBuild implements celllist.MetricsCollector.
func (c *Collector) RecordBuild(points, cells, workers int, duration time.Duration, err error) {
	mode := modeOf(workers)
	c.buildTotal.WithLabelValues(mode, status(err)).Inc()
	c.buildDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if err != nil {
		return
	}
	c.buildWorkers.Observe(float64(workers))
	c.pointsIndexed.Add(float64(points))
	c.cellsPerBuild.Observe(float64(cells))
}

// RecordMerge implements celllist.MetricsCollector.
func (c *Collector) RecordMerge(_ int, duration time.Duration, err error) {
	c.mergeTotal.WithLabelValues(status(err)).Inc()
	c.mergeDuration.Observe(duration.Seconds())
}

// RecordQuery implements celllist.MetricsCollector.
func (c *Collector) RecordQuery(pairs, workers int, duration time.Duration, err error) {
	mode := modeOf(workers)
	c.queryTotal.WithLabelValues(mode, status(err)).Inc()
	c.queryDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if err == nil {
		c.pairsEmitted.Add(float64(pairs))
	}
}

// BuildTotal returns the builds counter, labeled by mode and status.
func (c *Collector) BuildTotal() *prometheus.CounterVec { return c.buildTotal }

// MergeTotal returns the merges counter, labeled by status.
func (c *Collector) MergeTotal() *prometheus.CounterVec { return c.mergeTotal }

// QueryTotal returns the enumerations counter, labeled by mode and status.
func (c *Collector) QueryTotal() *prometheus.CounterVec { return c.queryTotal }

// PointsIndexed returns the indexed points counter.
func (c *Collector) PointsIndexed() prometheus.Counter { return c.pointsIndexed }

// PairsEmitted returns the emitted pairs counter.
func (c *Collector) PairsEmitted() prometheus.Counter { return c.pairsEmitted }

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}

func modeOf(workers int) string {
	if workers > 1 {
		return "parallel"
	}
	return "serial"
}
