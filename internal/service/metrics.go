package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nashwa_cart_mutations_total",
			Help: "Cart, wishlist and recently viewed mutations by operation.",
		},
		[]string{"operation"},
	)

	ordersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nashwa_orders_created_total",
			Help: "Orders placed, by payment method.",
		},
		[]string{"payment_method"},
	)

	orderRevenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nashwa_order_revenue_taka_total",
			Help: "Sum of order totals in taka.",
		},
	)

	orderStatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nashwa_order_status_updates_total",
			Help: "Admin order status changes, by new status.",
		},
		[]string{"status"},
	)

	checkoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nashwa_checkout_duration_seconds",
			Help:    "Time to place an order, including the simulated processing delay.",
			Buckets: []float64{0.1, 0.5, 1, 1.5, 2, 3, 5},
		},
	)

	eventPublishFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nashwa_event_publish_failures_total",
			Help: "Domain events that could not be published.",
		},
		[]string{"event_type"},
	)
)
