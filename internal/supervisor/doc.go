// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

/*
Package supervisor runs Hudson's long-running services under a suture v4
supervisor tree.

# Overview

Services are grouped into three layers for failure isolation:

	RootSupervisor ("hudson")
	├── DataSupervisor ("data-layer")
	│   └── WALRetryLoopService (if wal.enabled)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── NATSServerService (if nats.embedded_server)
	│   └── WebSocketHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crashed service is restarted by its own layer. Repeated failures put the
layer into backoff without touching its siblings, so a failing hub does not
take the REST API down with it.

# Configuration

TreeConfig mirrors suture.Spec. Zero values fall back to suture's defaults:
5 failures, 30s decay, 15s backoff, 10s shutdown timeout.

# Logging

Supervisor events go through sutureslog. main passes logging.NewSlogLogger()
so they land in the same zerolog stream as the rest of the process.

# Not Supervised

The database and the broadcast transport are plain values owned by main.
Their failures surface as request errors and through the circuit breaker,
not as service crashes.

# Debugging Shutdown

	report, _ := tree.UnstoppedServiceReport()

lists services that ignored cancellation past ShutdownTimeout.
*/
package supervisor
