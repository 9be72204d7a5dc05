// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pavoi/hudson/internal/models"
)

// StateTransition computes the next state from the locked current row.
// cur is a private copy. Returning (nil, nil) leaves the row untouched.
type StateTransition func(ctx context.Context, tx *StateTx, cur *models.ProductSetState) (*models.ProductSetState, error)

// StateTx gives a transition read access to the set's entries inside the
// transaction that holds the state row.
type StateTx struct {
	tx    *sql.Tx
	setID int64
}

// ProductSetID returns the set whose row is locked.
func (s *StateTx) ProductSetID() int64 { return s.setID }

// EntryCount returns the number of entries in the set.
func (s *StateTx) EntryCount(ctx context.Context) (int, error) {
	var n int
	err := s.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM product_set_entries WHERE product_set_id = $1`, s.setID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

const entrySummarySelect = `SELECT e.id, e.position,
	(SELECT COUNT(*) FROM product_images i WHERE i.product_id = e.product_id)
	FROM product_set_entries e`

// EntryAtPosition returns the entry at a 1-based position.
func (s *StateTx) EntryAtPosition(ctx context.Context, position int) (*models.EntrySummary, error) {
	return s.summary(ctx, entrySummarySelect+` WHERE e.product_set_id = $1 AND e.position = $2`, s.setID, position)
}

// EntryByID returns an entry of the set by ID.
func (s *StateTx) EntryByID(ctx context.Context, entryID int64) (*models.EntrySummary, error) {
	return s.summary(ctx, entrySummarySelect+` WHERE e.product_set_id = $1 AND e.id = $2`, s.setID, entryID)
}

func (s *StateTx) summary(ctx context.Context, query string, args ...any) (*models.EntrySummary, error) {
	var sum models.EntrySummary
	err := s.tx.QueryRowContext(ctx, query, args...).Scan(&sum.ID, &sum.Position, &sum.ImageCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load entry summary: %w", err)
	}
	return &sum, nil
}

const stateSelect = `SELECT product_set_id, current_entry_id, current_image_index,
	host_message_text, host_message_id, host_message_at, host_message_color,
	version, updated_at
	FROM product_set_states`

func scanState(row rowScanner) (*models.ProductSetState, error) {
	var (
		st                    models.ProductSetState
		currentEntry          sql.NullInt64
		msgText, msgID, color sql.NullString
		msgAt                 sql.NullTime
	)
	if err := row.Scan(&st.ProductSetID, &currentEntry, &st.CurrentImageIndex,
		&msgText, &msgID, &msgAt, &color, &st.Version, &st.UpdatedAt); err != nil {
		return nil, err
	}
	st.CurrentEntryID = int64Ptr(currentEntry)
	if msgText.Valid {
		st.HostMessage = &models.HostMessage{
			ID:     msgID.String,
			Text:   msgText.String,
			Color:  models.MessageColor(color.String),
			SentAt: msgAt.Time.UTC(),
		}
	}
	st.UpdatedAt = st.UpdatedAt.UTC()
	return &st, nil
}

// insertStateIfAbsent creates the default row. Reports whether it was created.
func insertStateIfAbsent(ctx context.Context, q queryer, setID int64) (bool, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO product_set_states (product_set_id, current_entry_id, current_image_index, version, updated_at)
		 VALUES ($1, NULL, 0, 1, $2)
		 ON CONFLICT (product_set_id) DO NOTHING`,
		setID, timestamp(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to initialize state for set %d: %w", setID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, nil
	}
	return n > 0, nil
}

// EnsureState returns the set's state row, creating it with no current entry
// and image index 0 when absent. Idempotent. Reports whether it created the row.
func (db *DB) EnsureState(ctx context.Context, setID int64) (st *models.ProductSetState, created bool, err error) {
	defer func(start time.Time) { observe("ensure_state", start, err) }(time.Now())

	tx, rollback, err := db.beginTx(ctx)
	if err != nil {
		return nil, false, err
	}
	defer rollback()

	if _, err := requireSet(ctx, tx, setID); err != nil {
		return nil, false, err
	}
	created, err = insertStateIfAbsent(ctx, tx, setID)
	if err != nil {
		return nil, false, err
	}
	st, err = scanState(tx.QueryRowContext(ctx, stateSelect+` WHERE product_set_id = $1`, setID))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read state for set %d: %w", setID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit state init: %w", err)
	}
	return st, created, nil
}

// GetState reads the set's state row without creating it.
func (db *DB) GetState(ctx context.Context, setID int64) (*models.ProductSetState, error) {
	st, err := scanState(db.conn.QueryRowContext(ctx, stateSelect+` WHERE product_set_id = $1`, setID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state for set %d: %w", setID, err)
	}
	return st, nil
}

// UpdateState runs fn against the set's state row inside one transaction and
// persists its result with version+1. A missing row is created first. When fn
// returns a nil state nothing is written and the current row is returned with
// changed=false. Errors from fn abort the transaction and are returned as is.
func (db *DB) UpdateState(ctx context.Context, setID int64, fn StateTransition) (st *models.ProductSetState, changed bool, err error) {
	defer func(start time.Time) { observe("update_state", start, err) }(time.Now())

	tx, rollback, err := db.beginTx(ctx)
	if err != nil {
		return nil, false, err
	}
	defer rollback()

	if _, err := requireSet(ctx, tx, setID); err != nil {
		return nil, false, err
	}
	if _, err := insertStateIfAbsent(ctx, tx, setID); err != nil {
		return nil, false, err
	}

	cur, err := scanState(tx.QueryRowContext(ctx, stateSelect+` WHERE product_set_id = $1`+db.forUpdate(), setID))
	if err != nil {
		return nil, false, fmt.Errorf("failed to lock state for set %d: %w", setID, err)
	}

	next, err := fn(ctx, &StateTx{tx: tx, setID: setID}, cur.Clone())
	if err != nil {
		return nil, false, err
	}
	if next == nil {
		// Keeps a lazily created row; otherwise nothing was written.
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("failed to commit state read: %w", err)
		}
		return cur, false, nil
	}

	if next.CurrentImageIndex < 0 {
		return nil, false, fmt.Errorf("%w: negative image index %d", models.ErrInvalidPosition, next.CurrentImageIndex)
	}
	next.ProductSetID = setID
	next.Version = cur.Version + 1
	next.UpdatedAt = timestamp()

	var (
		msgText, msgID, msgColor sql.NullString
		msgAt                    sql.NullTime
	)
	if m := next.HostMessage; m != nil {
		m.SentAt = m.SentAt.UTC().Truncate(time.Microsecond)
		msgText = sql.NullString{String: m.Text, Valid: true}
		msgID = sql.NullString{String: m.ID, Valid: true}
		msgColor = sql.NullString{String: string(m.Color), Valid: true}
		msgAt = sql.NullTime{Time: m.SentAt, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE product_set_states SET current_entry_id = $1, current_image_index = $2,
			host_message_text = $3, host_message_id = $4, host_message_at = $5, host_message_color = $6,
			version = $7, updated_at = $8
		 WHERE product_set_id = $9`,
		nullInt64(next.CurrentEntryID), next.CurrentImageIndex,
		msgText, msgID, msgAt, msgColor,
		next.Version, next.UpdatedAt, setID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to write state for set %d: %w", setID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit state for set %d: %w", setID, err)
	}
	return next, true, nil
}

// GetLiveState reads the state row and resolves the current entry into the
// payload views render.
func (db *DB) GetLiveState(ctx context.Context, setID int64) (live *models.LiveState, err error) {
	defer func(start time.Time) { observe("get_live_state", start, err) }(time.Now())

	st, err := db.GetState(ctx, setID)
	if err != nil {
		return nil, err
	}

	live = &models.LiveState{ProductSetID: setID, State: *st}
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM product_set_entries WHERE product_set_id = $1`, setID,
	).Scan(&live.EntryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count entries for set %d: %w", setID, err)
	}

	if st.CurrentEntryID != nil {
		live.Current, err = db.liveEntry(ctx, setID, *st.CurrentEntryID)
		if err != nil {
			return nil, err
		}
	}
	return live, nil
}

func (db *DB) liveEntry(ctx context.Context, setID, entryID int64) (*models.LiveEntry, error) {
	var (
		e             models.LiveEntry
		talkingPoints sql.NullString
		salePrice     sql.NullInt64
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT e.id, e.product_id, e.position,
			COALESCE(e.display_name, p.name),
			COALESCE(e.talking_points, p.talking_points),
			COALESCE(e.original_price_override_cents, p.original_price_cents),
			COALESCE(e.sale_price_override_cents, p.sale_price_cents)
		 FROM product_set_entries e
		 JOIN products p ON p.id = e.product_id
		 WHERE e.id = $1 AND e.product_set_id = $2`,
		entryID, setID,
	).Scan(&e.EntryID, &e.ProductID, &e.Position, &e.Name, &talkingPoints, &e.OriginalPriceCents, &salePrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entry %d: %w", entryID, err)
	}
	e.TalkingPoints = stringPtr(talkingPoints)
	e.SalePriceCents = int64Ptr(salePrice)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT url FROM product_images WHERE product_id = $1 ORDER BY position`, e.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load images for entry %d: %w", entryID, err)
	}
	defer closeWithLog(rows, "rows")

	e.ImageURLs = []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan image url: %w", err)
		}
		e.ImageURLs = append(e.ImageURLs, url)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	e.ImageCount = len(e.ImageURLs)
	return &e, nil
}
