// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

// Package liveset owns the live state of product sets: which entry is on
// screen, which of its images is shown and the host message.
//
// Every write goes through the same path:
//
//  1. take the per-set lock
//  2. run the transition inside a store transaction (row locked on PostgreSQL)
//  3. commit with version+1
//  4. re-read the persisted live view
//  5. publish it on product_set:{id}:state
//  6. release the lock
//
// Publishing under the lock keeps broadcasts for one set in commit order.
// Different sets never share a lock. A failed publish after commit does not
// fail the operation; the broadcast layer parks the snapshot for redelivery.
//
// Transitions are pure functions of the current row and an entry lookup, see
// transitions.go.
package liveset
