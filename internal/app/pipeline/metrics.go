package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects pipeline counters. A nil *Metrics records nothing.
type Metrics struct {
	jobs          *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	diarization   *prometheus.CounterVec
}

// NewMetrics registers the pipeline collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gtx",
			Name:      "jobs_total",
			Help:      "Transcription jobs by outcome.",
		}, []string{"outcome"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gtx",
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each pipeline stage.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"stage"}),
		diarization: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gtx",
			Name:      "diarization_total",
			Help:      "Diarization attempts by availability.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.jobs, m.stageDuration, m.diarization)
	}
	return m
}

func (m *Metrics) jobFinished(outcome string) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeStage(stage StageName, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
}

func (m *Metrics) diarized(available bool) {
	if m == nil {
		return
	}
	result := "unavailable"
	if available {
		result = "available"
	}
	m.diarization.WithLabelValues(result).Inc()
}
