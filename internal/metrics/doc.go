// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

/*
Package metrics exposes Hudson's Prometheus instrumentation.

Metrics are registered on the default registry with promauto and served by
promhttp at /metrics:

	curl http://localhost:4000/metrics

# Available Metrics

Live state:
  - hudson_state_mutations_total{op,result}: state operations by outcome
    (ok, noop, rejected, not_found, error)
  - hudson_state_mutation_duration_seconds{op}: lock + transaction + broadcast time

Broadcast:
  - hudson_broadcast_publish_total{kind,result}: publishes on state/ui topics
  - hudson_broadcast_circuit_breaker_state: 0 closed, 1 half-open, 2 open
  - hudson_wal_pending_entries: undelivered state snapshots awaiting retry
  - hudson_wal_redelivered_total: snapshots republished by the retry loop

WebSocket:
  - hudson_websocket_clients: connected live views
  - hudson_websocket_topic_subscriptions: topics with at least one local subscriber
  - hudson_websocket_dropped_messages_total{reason}: messages not delivered to a client

HTTP and storage:
  - hudson_api_requests_total{method,route,status}, hudson_api_request_duration_seconds{method,route}
  - hudson_db_query_duration_seconds{operation}, hudson_db_query_errors_total{operation}
*/
package metrics
