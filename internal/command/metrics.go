package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts applied operations and tracks the index size.
type Metrics struct {
	opsTotal *prometheus.CounterVec
	items    prometheus.Gauge
	tags     prometheus.Gauge
}

// NewMetrics registers the executor's collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		opsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mdsdb",
			Name:      "operations_total",
			Help:      "Operations applied to the index by op and outcome.",
		}, []string{"op", "outcome"}),
		items: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdsdb",
			Name:      "items",
			Help:      "Items currently stored.",
		}),
		tags: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdsdb",
			Name:      "indexed_tags",
			Help:      "Distinct tags currently present in the tag index.",
		}),
	}
}

func (m *Metrics) observe(op string, err error, items, tags int) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.opsTotal.WithLabelValues(op, outcome).Inc()
	m.items.Set(float64(items))
	m.tags.Set(float64(tags))
}
