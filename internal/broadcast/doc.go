// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

// Package broadcast fans live state and ui toggles out to every view of a
// product set.
//
// Two transports are available, both behind Watermill's message.Publisher and
// message.Subscriber interfaces:
//
//   - memory: an in-process gochannel bus. Publish blocks until each
//     subscriber acks, so messages on a topic are delivered in publish order.
//   - nats: core NATS through watermill-nats (JetStream disabled, no queue
//     group). Every instance receives every message on the topics it
//     subscribes to. An embedded nats-server can be run for single-host
//     deployments.
//
// Publishing goes through a gobreaker circuit breaker. State snapshots that
// cannot be delivered are parked in the WAL (see internal/wal) and
// redelivered by its retry loop. UI toggles are ephemeral and never parked.
//
// Topics:
//
//	product_set:{id}:state   state_changed, payload models.LiveState
//	product_set:{id}:ui      ui_toggled, payload models.UIToggle
package broadcast
