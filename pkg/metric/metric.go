package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric groups the collectors of the feed pipeline. A nil *Metric is
// valid and records nothing.
type Metric struct {
	fetchTime    *prometheus.HistogramVec
	loads        *prometheus.CounterVec
	rankFallback prometheus.Counter
	events       prometheus.Gauge
	archived     prometheus.Counter
}

// New builds the collectors. Empty fetchBuckets selects prometheus.DefBuckets.
func New(fetchBuckets []float64) *Metric {
	if len(fetchBuckets) == 0 {
		fetchBuckets = prometheus.DefBuckets
	}
	return &Metric{
		fetchTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "feed_fetch_time_seconds",
				Help:    "Histogram of feed fetch round trips, request to parsed document.",
				Buckets: fetchBuckets,
			},
			[]string{"outcome"},
		),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feed_loads_total",
				Help: "Feed loads by the source that served them.",
			},
			[]string{"source"},
		),
		rankFallback: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "feed_rank_fallback_total",
				Help: "Snapshots left in feed order because ranking was refused.",
			},
		),
		events: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "feed_snapshot_events",
				Help: "Number of events in the latest snapshot.",
			},
		),
		archived: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "feed_archived_events_total",
				Help: "Events written to the local archive.",
			},
		),
	}
}

// RegisterMetrics registers every collector with reg.
func (m *Metric) RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.fetchTime, m.loads, m.rankFallback, m.events, m.archived} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metric) AddFetchTime(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.fetchTime.WithLabelValues(outcome).Observe(seconds)
}

func (m *Metric) AddLoad(source string) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(source).Inc()
}

func (m *Metric) AddRankFallback() {
	if m == nil {
		return
	}
	m.rankFallback.Inc()
}

func (m *Metric) SetSnapshotEvents(n int) {
	if m == nil {
		return
	}
	m.events.Set(float64(n))
}

func (m *Metric) AddArchived(n int) {
	if m == nil {
		return
	}
	m.archived.Add(float64(n))
}
