// Package metrics records per-phase provisioning outcomes and writes them
// as a Prometheus textfile for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Recorder collects phase outcome metrics for one provisioning run.
type Recorder struct {
	registry *prometheus.Registry

	phaseTotal    *prometheus.CounterVec
	phaseDuration *prometheus.HistogramVec
}

// NewRecorder creates a recorder with a private registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		phaseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tpuprep",
				Subsystem: "provision",
				Name:      "phase_total",
				Help:      "Total number of executed phases by result",
			},
			[]string{"phase", "result"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tpuprep",
				Subsystem: "provision",
				Name:      "phase_duration_seconds",
				Help:      "Duration of provisioning phases in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~3.5min
			},
			[]string{"phase"},
		),
	}

	r.registry.MustRegister(r.phaseTotal, r.phaseDuration)
	return r
}

// RecordPhase implements provision.Recorder.
func (r *Recorder) RecordPhase(phase, result string, duration time.Duration) {
	r.phaseTotal.WithLabelValues(phase, result).Inc()
	r.phaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// WriteTextfile renders the collected metrics in the Prometheus text
// exposition format at the given path.
func (r *Recorder) WriteTextfile(path string) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer f.Close()

	encoder := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}

	return f.Close()
}
