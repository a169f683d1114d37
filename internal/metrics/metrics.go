// Package metrics provides recorders for parse observations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-confluence-content/pkg/interfaces"
)

// DefaultNamespace prefixes every collector name.
const DefaultNamespace = "confluence"

// NoOp returns a recorder that drops every observation.
func NoOp() interfaces.ParseMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveParseDuration(string, time.Duration) {}

func (noopMetrics) ObserveNodeCount(string, int) {}

func (noopMetrics) IncrementDiagnostic(string) {}

func (noopMetrics) IncrementFallback(string) {}

// Prometheus records parse observations as Prometheus collectors.
type Prometheus struct {
	duration    *prometheus.HistogramVec
	nodes       *prometheus.HistogramVec
	diagnostics *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
}

var _ interfaces.ParseMetrics = (*Prometheus)(nil)

// NewPrometheus registers the parse collectors on reg. An empty namespace
// falls back to DefaultNamespace.
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)
	return &Prometheus{
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Storage format parse duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}, []string{"source"}),
		nodes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_nodes",
			Help:      "Number of nodes produced per parse",
			Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000},
		}, []string{"source"}),
		diagnostics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_diagnostics_total",
			Help:      "Total parse diagnostics by reason",
		}, []string{"reason"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_fallback_total",
			Help:      "Total parses that fell back to the lenient HTML parser",
		}, []string{"source"}),
	}
}

func (p *Prometheus) ObserveParseDuration(source string, duration time.Duration) {
	p.duration.WithLabelValues(source).Observe(duration.Seconds())
}

func (p *Prometheus) ObserveNodeCount(source string, count int) {
	p.nodes.WithLabelValues(source).Observe(float64(count))
}

func (p *Prometheus) IncrementDiagnostic(reason string) {
	p.diagnostics.WithLabelValues(reason).Inc()
}

func (p *Prometheus) IncrementFallback(source string) {
	p.fallbacks.WithLabelValues(source).Inc()
}
