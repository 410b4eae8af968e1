package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Order outcomes.
const (
	OutcomePriced  = "priced"
	OutcomeUnknown = "unknown"
	OutcomeEmpty   = "empty"
)

// OrderMetrics counts interpreter outcomes.
type OrderMetrics struct {
	// OrdersTotal counts quoted orders by channel (skill, rest, voice, ws) and outcome.
	OrdersTotal *prometheus.CounterVec
	// ItemsResolved counts resolved items by the strategy that matched them.
	ItemsResolved *prometheus.CounterVec
	// UnknownPhrases counts segments that matched no menu entry.
	UnknownPhrases prometheus.Counter
}

// NewOrderMetrics registers and returns the order collectors.
func NewOrderMetrics(namespace string, reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &OrderMetrics{
		OrdersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_quoted_total",
			Help:      "Count of quoted orders by channel and outcome.",
		}, []string{"channel", "outcome"}),
		ItemsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_items_resolved_total",
			Help:      "Count of resolved order items by matching strategy.",
		}, []string{"strategy"}),
		UnknownPhrases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_unknown_phrases_total",
			Help:      "Count of order phrases that matched no menu entry.",
		}),
	}
	m.OrdersTotal = registerCounterVec(reg, m.OrdersTotal)
	m.ItemsResolved = registerCounterVec(reg, m.ItemsResolved)
	m.UnknownPhrases = registerCounter(reg, m.UnknownPhrases)
	return m
}

// ObserveQuote records one quoted order. strategies holds the matching
// strategy of every resolved item. Safe on a nil receiver.
func (m *OrderMetrics) ObserveQuote(channel string, strategies []string, unknown int) {
	if m == nil {
		return
	}
	outcome := OutcomePriced
	switch {
	case len(strategies) == 0 && unknown == 0:
		outcome = OutcomeEmpty
	case len(strategies) == 0:
		outcome = OutcomeUnknown
	}
	m.OrdersTotal.WithLabelValues(channel, outcome).Inc()
	for _, s := range strategies {
		m.ItemsResolved.WithLabelValues(s).Inc()
	}
	if unknown > 0 {
		m.UnknownPhrases.Add(float64(unknown))
	}
}
