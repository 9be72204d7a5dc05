// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mutation results.
const (
	ResultOK       = "ok"
	ResultNoop     = "noop"
	ResultRejected = "rejected"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	// Live state
	StateMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hudson_state_mutations_total",
			Help: "Total product set state operations by outcome",
		},
		[]string{"op", "result"},
	)

	StateMutationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hudson_state_mutation_duration_seconds",
			Help:    "Time spent in a state operation including lock wait and broadcast",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"op"},
	)

	// Broadcast
	BroadcastPublishes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hudson_broadcast_publish_total",
			Help: "Broadcast publishes by topic kind and result",
		},
		[]string{"kind", "result"},
	)

	BroadcastBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hudson_broadcast_circuit_breaker_state",
			Help: "Broadcast circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
	)

	WALPendingEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hudson_wal_pending_entries",
			Help: "State snapshots waiting in the WAL for redelivery",
		},
	)

	WALRedelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hudson_wal_redelivered_total",
			Help: "State snapshots republished from the WAL",
		},
	)

	// WebSocket
	WSClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hudson_websocket_clients",
			Help: "Connected live views",
		},
	)

	WSTopicSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hudson_websocket_topic_subscriptions",
			Help: "Broadcast topics with at least one local subscriber",
		},
	)

	WSDroppedMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hudson_websocket_dropped_messages_total",
			Help: "Messages not delivered to a live view",
		},
		[]string{"reason"}, // "slow_client", "stale_version", "rate_limited"
	)

	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hudson_api_requests_total",
			Help: "HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hudson_api_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Storage
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hudson_db_query_duration_seconds",
			Help:    "Store operation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hudson_db_query_errors_total",
			Help: "Store operations that returned an unexpected error",
		},
		[]string{"operation"},
	)
)

// RecordStateMutation records one state operation.
func RecordStateMutation(op, result string, duration time.Duration) {
	StateMutations.WithLabelValues(op, result).Inc()
	StateMutationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordBroadcast records one publish attempt.
func RecordBroadcast(kind string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	BroadcastPublishes.WithLabelValues(kind, result).Inc()
}

// SetBreakerState maps a gobreaker state name onto the gauge.
func SetBreakerState(state string) {
	switch state {
	case "half-open":
		BroadcastBreakerState.Set(1)
	case "open":
		BroadcastBreakerState.Set(2)
	default:
		BroadcastBreakerState.Set(0)
	}
}

// RecordDBQuery records a store operation. Expected domain errors (not found,
// conflicts) should be passed as nil by the caller.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
