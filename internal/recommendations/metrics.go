package recommendations

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records scoring activity. A nil *Metrics records nothing.
type Metrics struct {
	scored   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the scoring collectors with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		scored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scoring",
				Name:      "interventions_scored_total",
				Help:      "Interventions scored, by operation.",
			},
			[]string{"operation"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "scoring",
				Name:      "duration_seconds",
				Help:      "Time spent loading and scoring, by operation.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
	}

	reg.MustRegister(m.scored, m.duration)
	return m
}

func (m *Metrics) observe(op string, n int, start time.Time) {
	if m == nil {
		return
	}
	m.scored.WithLabelValues(op).Add(float64(n))
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
