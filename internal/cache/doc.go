// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

// Package cache provides a generic TTL-bounded LRU cache for lookups whose
// answer rarely changes, such as the brand a product set belongs to.
package cache
