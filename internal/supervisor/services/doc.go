// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

/*
Package services adapts Hudson's long-running components to suture.Service.

Each wrapper translates a lifecycle pattern into suture's context-aware
Serve(ctx) error and names itself through fmt.Stringer for the event log:

	HTTPServerService      ListenAndServe/Shutdown   api layer
	WebSocketHubService    RunWithContext            messaging layer
	NATSServerService      Start/Shutdown/IsRunning  messaging layer
	WALRetryLoopService    Start/Stop/IsRunning      data layer

Return values drive the supervisor:

	nil         stopped cleanly, not restarted
	error       crashed, restarted with backoff
	ctx.Err()   shutdown requested

The wrappers depend on small interfaces rather than the concrete packages
so they can be tested with fakes.
*/
package services
