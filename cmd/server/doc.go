// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

/*
Package main is the entry point for the Hudson server.

Hudson keeps the live state of a product set (current product, image and host
message) in the database and pushes every committed change to the host views
watching that set.

# Application Architecture

	RootSupervisor ("hudson")
	├── DataSupervisor ("data-layer")
	│   └── WAL retry loop (WAL_ENABLED=true)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── Embedded NATS server (BROADCAST_TRANSPORT=nats, NATS_EMBEDDED=true)
	│   └── WebSocket hub
	└── APISupervisor ("api-layer")
	    └── HTTP server

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, .env, environment)
 2. Logging: zerolog, JSON or console
 3. Database: DuckDB (default) or PostgreSQL via pgx
 4. Broadcast: memory or NATS transport, circuit breaker, BadgerDB WAL
 5. Live set service and websocket hub
 6. HTTP server: chi router, CORS, rate limiting, Prometheus metrics
 7. Supervisor tree: suture v4

# Configuration

	HTTP_PORT=4000
	DB_DRIVER=duckdb             # duckdb or postgres
	DUCKDB_PATH=/data/hudson.duckdb
	DATABASE_URL=postgres://...  # when DB_DRIVER=postgres
	BROADCAST_TRANSPORT=memory   # memory or nats
	NATS_URL=nats://127.0.0.1:4222
	NATS_EMBEDDED=true
	WAL_ENABLED=true
	WAL_PATH=/data/wal
	CORS_ORIGINS=https://studio.example.com
	LOG_LEVEL=info
	LOG_FORMAT=json

Running several instances behind a load balancer requires
BROADCAST_TRANSPORT=nats and a shared PostgreSQL database.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server, closes websocket clients and stops the retry loop; main then closes
the publisher, transport, WAL and database.
*/
package main
