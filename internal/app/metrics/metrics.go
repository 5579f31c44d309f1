package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the shop counters. Each instance owns its registry so tests can build many.
type Metrics struct {
	Registry        *prometheus.Registry
	OrdersComposed  prometheus.Counter
	OrdersDiscarded *prometheus.CounterVec
	OrderAmount     prometheus.Counter
	AdminMutations  *prometheus.CounterVec
	ImageUploads    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		OrdersComposed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopfront",
			Name:      "orders_composed_total",
			Help:      "Orders turned into an outbound message.",
		}),
		OrdersDiscarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopfront",
			Name:      "orders_discarded_total",
			Help:      "Order submissions dropped, by reason.",
		}, []string{"reason"}),
		OrderAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shopfront",
			Name:      "order_amount_total",
			Help:      "Sum of composed order totals in the smallest currency unit.",
		}),
		AdminMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopfront",
			Name:      "admin_mutations_total",
			Help:      "Catalog changes made from the admin panel.",
		}, []string{"entity", "op"}),
		ImageUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopfront",
			Name:      "image_uploads_total",
			Help:      "Image upload attempts by result.",
		}, []string{"entity", "result"}),
	}
	m.Registry.MustRegister(
		m.OrdersComposed,
		m.OrdersDiscarded,
		m.OrderAmount,
		m.AdminMutations,
		m.ImageUploads,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Mutation(entity, op string) {
	m.AdminMutations.WithLabelValues(entity, op).Inc()
}
