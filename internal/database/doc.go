// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

/*
Package database provides the persistence layer for catalogs, product sets and
the live state row of each product set.

Two drivers share one schema and one set of queries:

  - duckdb: embedded single-file store (github.com/duckdb/duckdb-go/v2), the default
  - postgres: shared store for multi-instance deployments (github.com/jackc/pgx/v5/stdlib)

Queries use $n placeholders, which both drivers accept.

# State Rows

Every product set has at most one row in product_set_states. The row is
created lazily by EnsureState and mutated only through UpdateState, which runs
a read-modify-write inside one transaction:

	st, changed, err := db.UpdateState(ctx, setID, func(ctx context.Context, tx *StateTx, cur *models.ProductSetState) (*models.ProductSetState, error) {
	    next := cur.Clone()
	    next.CurrentImageIndex = 0
	    return next, nil
	})

Returning a nil state from the callback is a no-op: the transaction is rolled
back and the current row is returned with changed=false. On PostgreSQL the row
is read with SELECT ... FOR UPDATE. DuckDB has no row locks; callers serialize
writers per product set in process (see package liveset).

Every persisted mutation increments the row's version column.

# Entries

Entry positions are 1-based and kept contiguous. RemoveEntry nulls the state
row's current_entry_id when it points at the removed entry and shifts later
entries down, all in one transaction.

# Schema

Tables carry no foreign keys. Referential cleanup (deleting a set's entries and
state row, nulling the current entry pointer) is done explicitly inside the
deleting transaction so both drivers behave the same. On PostgreSQL a
deferrable unique constraint additionally guards entry positions.
*/
package database
