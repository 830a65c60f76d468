package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLoad(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveLoad("ready", time.Now())
	m.ObserveLoad("ready", time.Now())
	m.ObserveLoad("error", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Loads.WithLabelValues("ready")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FetchDuration))
}

func TestIncrementRenders(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.IncrementRenders("SUCCESS")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues("SUCCESS")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveLoad("ready", time.Now())
		m.IncrementRenders("FAILURE")
	})
}
