package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// A nil *Metrics records nothing.
type Metrics struct {
	Loads         *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	Renders       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Loads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aging_dashboard_loads_total",
			Help: "Snapshot loads by settled state (ready, error)",
		}, []string{"state"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "aging_dashboard_fetch_duration_seconds",
			Help:    "Duration of the snapshot fetch and decode",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		Renders: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aging_dashboard_renders_total",
			Help: "Page renders by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveLoad(state string, start time.Time) {
	if m == nil {
		return
	}
	m.Loads.WithLabelValues(state).Inc()
	m.FetchDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementRenders(outcome string) {
	if m == nil {
		return
	}
	m.Renders.WithLabelValues(outcome).Inc()
}
