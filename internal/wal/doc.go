// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

// Package wal parks state broadcasts whose publish failed so they can be
// redelivered once the transport recovers.
//
// Views replace their state wholesale, so only the newest snapshot per topic
// matters. The store is keyed by topic and a snapshot is only ever replaced by
// one with an equal or higher version:
//
//	Mutation commit → Publish ──ok──→ Supersede(topic, version)
//	                     │
//	                     └─fail─→ Park(topic, payload, version)
//	                                   ↓
//	                            RetryLoop → Publish → Remove
//
// The store runs on BadgerDB (github.com/dgraph-io/badger/v4), on disk or in
// memory. Entries expire after the configured TTL through Badger's native TTL.
package wal
