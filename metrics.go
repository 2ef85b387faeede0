package sqrtrank

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects operational counters for a BlockIndex.
// All methods are safe on a nil receiver.
type Metrics struct {
	Updates        prometheus.Counter
	Queries        prometheus.Counter
	NotFound       prometheus.Counter
	Rebuilds       prometheus.Counter
	TableGrowth    prometheus.Counter
	CountingRounds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Updates: f.NewCounter(prometheus.CounterOpts{
			Namespace: "sqrtrank",
			Name:      "updates_total",
			Help:      "Number of point updates applied.",
		}),
		Queries: f.NewCounter(prometheus.CounterOpts{
			Namespace: "sqrtrank",
			Name:      "queries_total",
			Help:      "Number of k-th smallest queries answered.",
		}),
		NotFound: f.NewCounter(prometheus.CounterOpts{
			Namespace: "sqrtrank",
			Name:      "queries_not_found_total",
			Help:      "Number of queries that produced no value.",
		}),
		Rebuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: "sqrtrank",
			Name:      "rebuilds_total",
			Help:      "Number of full rank and block rebuilds.",
		}),
		TableGrowth: f.NewCounter(prometheus.CounterOpts{
			Namespace: "sqrtrank",
			Name:      "compression_table_growth_total",
			Help:      "Number of previously unseen values introduced by updates.",
		}),
		CountingRounds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sqrtrank",
			Name:      "query_counting_rounds",
			Help:      "Binary search rounds over the rank domain per query.",
			Buckets:   prometheus.LinearBuckets(0, 4, 10),
		}),
	}
}

func (m *Metrics) observeUpdate(grew bool) {
	if m == nil {
		return
	}
	m.Updates.Inc()
	if grew {
		m.TableGrowth.Inc()
	}
}

func (m *Metrics) observeQuery(rounds int, found bool) {
	if m == nil {
		return
	}
	m.Queries.Inc()
	if !found {
		m.NotFound.Inc()
	}
	m.CountingRounds.Observe(float64(rounds))
}

func (m *Metrics) observeRebuild() {
	if m == nil {
		return
	}
	m.Rebuilds.Inc()
}
