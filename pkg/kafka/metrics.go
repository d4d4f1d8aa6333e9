package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Publish metrics, labelled by topic.
var (
	producerMessagesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nashwa",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Domain events written to Kafka.",
	}, []string{"topic"})

	producerPublishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nashwa",
		Subsystem: "events",
		Name:      "publish_errors_total",
		Help:      "Domain events Kafka rejected or timed out on.",
	}, []string{"topic"})

	producerPublishDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nashwa",
		Subsystem: "events",
		Name:      "publish_duration_seconds",
		Help:      "Latency of synchronous Kafka writes.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"topic"})
)
