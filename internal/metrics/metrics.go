// Package metrics records per-run counters for the batch commands and writes
// them in the Prometheus text format, for a node_exporter textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "auelect"

// Recorder collects one run's counters. A nil *Recorder discards everything.
type Recorder struct {
	registry    *prometheus.Registry
	files       *prometheus.CounterVec
	rowsSkipped *prometheus.CounterVec
	rowsWritten prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRecorder creates a Recorder whose series carry command=<command>
func NewRecorder(command string) *Recorder {
	labels := prometheus.Labels{"command": command}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "files_total",
			Help:        "Source files seen, by outcome.",
			ConstLabels: labels,
		}, []string{"status"}),
		rowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "rows_skipped_total",
			Help:        "Source rows dropped, by reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
		rowsWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "rows_written",
			Help:        "Rows in the last output file.",
			ConstLabels: labels,
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "run_duration_seconds",
			Help:        "Wall time of the last run.",
			ConstLabels: labels,
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_success_timestamp_seconds",
			Help:        "Unix time of the last successful run.",
			ConstLabels: labels,
		}),
	}
	r.registry.MustRegister(r.files, r.rowsSkipped, r.rowsWritten, r.duration, r.lastSuccess)
	return r
}

// FileProcessed counts a source file that contributed rows or was parsed cleanly
func (r *Recorder) FileProcessed() {
	if r == nil {
		return
	}
	r.files.WithLabelValues("processed").Inc()
}

// FileSkipped counts a source file dropped as a whole
func (r *Recorder) FileSkipped() {
	if r == nil {
		return
	}
	r.files.WithLabelValues("skipped").Inc()
}

// RowsSkipped adds n dropped rows under reason
func (r *Recorder) RowsSkipped(reason string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.rowsSkipped.WithLabelValues(reason).Add(float64(n))
}

// RowsWritten records the output row count
func (r *Recorder) RowsWritten(n int) {
	if r == nil {
		return
	}
	r.rowsWritten.Set(float64(n))
}

// Finish records the run duration and, on success, the completion time
func (r *Recorder) Finish(started time.Time, success bool) {
	if r == nil {
		return
	}
	now := time.Now()
	r.duration.Set(now.Sub(started).Seconds())
	if success {
		r.lastSuccess.Set(float64(now.Unix()))
	}
}

// Gatherer exposes the underlying registry
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all series to path. An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
