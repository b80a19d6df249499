package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New([]float64{0.1, 1})
	require.NoError(t, m.RegisterMetrics(reg))

	m.AddFetchTime("ok", 0.2)
	m.AddLoad("network")
	m.AddLoad("network")
	m.AddLoad("cache")
	m.AddRankFallback()
	m.SetSnapshotEvents(12)
	m.AddArchived(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.loads.WithLabelValues("network")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loads.WithLabelValues("cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rankFallback))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.events))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.archived))
	assert.Equal(t, 1, testutil.CollectAndCount(m.fetchTime))
}

func TestRegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, New(nil).RegisterMetrics(reg))
	assert.Error(t, New(nil).RegisterMetrics(reg))
}

func TestNilMetricIsNoop(t *testing.T) {
	var m *Metric
	assert.NotPanics(t, func() {
		m.AddFetchTime("ok", 1)
		m.AddLoad("cache")
		m.AddRankFallback()
		m.SetSnapshotEvents(1)
		m.AddArchived(1)
	})
}
