package metrics

import (
	"time"

	"github.com/brk3/habittracker/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_operations_total",
			Help: "Total number of tracker operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	persistDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "habits_persist_duration_seconds",
			Help:    "Duration of snapshot saves in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	activeHabits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "habits_active_habits_total",
			Help: "Number of habits in the store",
		},
	)

	averageProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "habits_average_progress_percent",
			Help: "Average weekly progress across all habits",
		},
	)
)

// Result labels for RecordOperation.
const (
	ResultOK          = "ok"
	ResultAlreadyDone = "already_done"
	ResultInvalid     = "invalid"
	ResultNotFound    = "not_found"
	ResultError       = "error"
)

func RecordOperation(operation, result string) {
	operationsTotal.WithLabelValues(operation, result).Inc()
}

func ObservePersist(start time.Time) {
	persistDuration.Observe(time.Since(start).Seconds())
}

func UpdateActiveHabits(count int) {
	activeHabits.Set(float64(count))
}

func UpdateAverageProgress(pct float64) {
	averageProgress.Set(pct)
}

// WriteTextfile dumps the default registry in the format read by the
// node_exporter textfile collector.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		logger.Warn("Failed to write metrics textfile", "path", path, "error", err)
		return err
	}
	return nil
}
