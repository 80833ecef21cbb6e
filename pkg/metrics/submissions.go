package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
)

// Submissions records summarization outcomes on its own registry.
type Submissions struct {
	registry *prometheus.Registry
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	chars    prometheus.Histogram
}

// NewSubmissions registers the submission collectors plus the Go runtime
// collectors on a fresh registry.
func NewSubmissions() *Submissions {
	reg := prometheus.NewRegistry()
	m := &Submissions{
		registry: reg,
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "summarizer_submissions_total",
			Help: "Resolved summarization submissions by status, error kind and language.",
		}, []string{"status", "kind", "language"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "summarizer_submission_duration_seconds",
			Help:    "Time from submit to resolution.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 20},
		}, []string{"status"}),
		chars: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "summarizer_input_characters",
			Help:    "Length of submitted text in characters.",
			Buckets: prometheus.ExponentialBuckets(64, 2, 10),
		}),
	}
	reg.MustRegister(
		m.total,
		m.duration,
		m.chars,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe implements summarizer.Observer.
func (m *Submissions) Observe(_ context.Context, outcome summarizer.Outcome) {
	status := string(outcome.State.Status)
	m.total.WithLabelValues(status, string(outcome.State.Kind), string(outcome.Request.Language)).Inc()
	m.duration.WithLabelValues(status).Observe(outcome.Duration.Seconds())
	if outcome.Characters > 0 {
		m.chars.Observe(float64(outcome.Characters))
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Submissions) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Submissions) Registry() *prometheus.Registry {
	return m.registry
}

var _ summarizer.Observer = (*Submissions)(nil)
