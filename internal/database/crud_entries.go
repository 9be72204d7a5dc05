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

const entrySelect = `SELECT id, product_set_id, product_id, position, display_name, talking_points,
	original_price_override_cents, sale_price_override_cents, created_at
	FROM product_set_entries`

func scanEntry(row rowScanner) (*models.ProductSetEntry, error) {
	var (
		e                              models.ProductSetEntry
		displayName, talkingPoints     sql.NullString
		originalOverride, saleOverride sql.NullInt64
	)
	if err := row.Scan(&e.ID, &e.ProductSetID, &e.ProductID, &e.Position, &displayName, &talkingPoints,
		&originalOverride, &saleOverride, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.DisplayName = stringPtr(displayName)
	e.TalkingPoints = stringPtr(talkingPoints)
	e.OriginalPriceOverride = int64Ptr(originalOverride)
	e.SalePriceOverride = int64Ptr(saleOverride)
	return &e, nil
}

// ListEntries returns a set's entries in position order with their products.
func (db *DB) ListEntries(ctx context.Context, setID int64) ([]models.ProductSetEntry, error) {
	rows, err := db.conn.QueryContext(ctx, entrySelect+` WHERE product_set_id = $1 ORDER BY position`, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for set %d: %w", setID, err)
	}

	entries := []models.ProductSetEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			closeWithLog(rows, "rows")
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	err = rows.Err()
	closeWithLog(rows, "rows")
	if err != nil {
		return nil, err
	}

	for i := range entries {
		p, err := db.GetProduct(ctx, entries[i].ProductID)
		if err != nil && !errors.Is(err, models.ErrProductNotFound) {
			return nil, err
		}
		entries[i].Product = p
	}
	return entries, nil
}

// GetEntry retrieves one entry of a product set with its product.
func (db *DB) GetEntry(ctx context.Context, setID, entryID int64) (*models.ProductSetEntry, error) {
	e, err := scanEntry(db.conn.QueryRowContext(ctx,
		entrySelect+` WHERE id = $1 AND product_set_id = $2`, entryID, setID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %d: %w", entryID, err)
	}

	p, err := db.GetProduct(ctx, e.ProductID)
	if err != nil && !errors.Is(err, models.ErrProductNotFound) {
		return nil, err
	}
	e.Product = p
	return e, nil
}

// AddEntry appends a product of the set's brand at max(position)+1.
func (db *DB) AddEntry(ctx context.Context, setID, productID int64) (entry *models.ProductSetEntry, err error) {
	defer func(start time.Time) { observe("add_entry", start, err) }(time.Now())

	tx, rollback, err := db.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	brandID, err := db.lockSet(ctx, tx, setID)
	if err != nil {
		return nil, err
	}

	var productBrand int64
	err = tx.QueryRowContext(ctx, `SELECT brand_id FROM products WHERE id = $1`, productID).Scan(&productBrand)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && productBrand != brandID) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check product %d: %w", productID, err)
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM product_set_entries WHERE product_set_id = $1 AND product_id = $2`,
		setID, productID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check entry: %w", err)
	}
	if exists > 0 {
		return nil, models.ErrProductAlreadyInSet
	}

	var maxPos int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM product_set_entries WHERE product_set_id = $1`, setID,
	).Scan(&maxPos)
	if err != nil {
		return nil, fmt.Errorf("failed to read max position: %w", err)
	}

	entry = &models.ProductSetEntry{
		ProductSetID: setID,
		ProductID:    productID,
		Position:     maxPos + 1,
		CreatedAt:    timestamp(),
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO product_set_entries (product_set_id, product_id, position, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		entry.ProductSetID, entry.ProductID, entry.Position, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.ErrProductAlreadyInSet
		}
		return nil, fmt.Errorf("failed to add entry: %w", err)
	}

	if err := touchSet(ctx, tx, setID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit entry: %w", err)
	}
	return entry, nil
}

// ReorderEntries assigns positions 1..N following entryIDs, which must list
// every entry of the set exactly once.
func (db *DB) ReorderEntries(ctx context.Context, setID int64, entryIDs []int64) (err error) {
	defer func(start time.Time) { observe("reorder_entries", start, err) }(time.Now())

	tx, rollback, err := db.beginTx(ctx)
	if err != nil {
		return err
	}
	defer rollback()

	if _, err := db.lockSet(ctx, tx, setID); err != nil {
		return err
	}

	current, err := entryIDSet(ctx, tx, setID)
	if err != nil {
		return err
	}
	if len(entryIDs) != len(current) {
		return models.ErrInvalidOrder
	}
	seen := make(map[int64]bool, len(entryIDs))
	for _, id := range entryIDs {
		if !current[id] || seen[id] {
			return models.ErrInvalidOrder
		}
		seen[id] = true
	}

	for i, id := range entryIDs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE product_set_entries SET position = $1 WHERE id = $2 AND product_set_id = $3`,
			i+1, id, setID,
		); err != nil {
			return fmt.Errorf("failed to reposition entry %d: %w", id, err)
		}
	}

	if err := touchSet(ctx, tx, setID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

func entryIDSet(ctx context.Context, tx *sql.Tx, setID int64) (map[int64]bool, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM product_set_entries WHERE product_set_id = $1`, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entry ids: %w", err)
	}
	defer closeWithLog(rows, "rows")

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan entry id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// UpdateEntryOverrides sets the non-nil override fields and clears the fields
// named in o.Clear.
func (db *DB) UpdateEntryOverrides(ctx context.Context, setID, entryID int64, o models.EntryOverrides) (entry *models.ProductSetEntry, err error) {
	defer func(start time.Time) { observe("update_entry", start, err) }(time.Now())

	tx, rollback, err := db.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	entry, err = scanEntry(tx.QueryRowContext(ctx,
		entrySelect+` WHERE id = $1 AND product_set_id = $2`+db.forUpdate(), entryID, setID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load entry %d: %w", entryID, err)
	}

	applyOverrides(entry, o)

	_, err = tx.ExecContext(ctx,
		`UPDATE product_set_entries SET display_name = $1, talking_points = $2,
			original_price_override_cents = $3, sale_price_override_cents = $4
		 WHERE id = $5`,
		nullString(entry.DisplayName), nullString(entry.TalkingPoints),
		nullInt64(entry.OriginalPriceOverride), nullInt64(entry.SalePriceOverride), entry.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update entry %d: %w", entryID, err)
	}

	if err := touchSet(ctx, tx, setID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit entry update: %w", err)
	}
	return entry, nil
}

func applyOverrides(e *models.ProductSetEntry, o models.EntryOverrides) {
	if o.DisplayName != nil {
		e.DisplayName = o.DisplayName
	}
	if o.TalkingPoints != nil {
		e.TalkingPoints = o.TalkingPoints
	}
	if o.OriginalPriceOverride != nil {
		e.OriginalPriceOverride = o.OriginalPriceOverride
	}
	if o.SalePriceOverride != nil {
		e.SalePriceOverride = o.SalePriceOverride
	}
	for _, field := range o.Clear {
		switch field {
		case "display_name":
			e.DisplayName = nil
		case "talking_points":
			e.TalkingPoints = nil
		case "original_price_override_cents":
			e.OriginalPriceOverride = nil
		case "sale_price_override_cents":
			e.SalePriceOverride = nil
		}
	}
}

// RemoveEntry deletes an entry, shifts later entries down by one and nulls
// the state row's current entry when it pointed at the removed entry. The
// state row itself is kept. Reports whether the current entry was cleared.
func (db *DB) RemoveEntry(ctx context.Context, setID, entryID int64) (cleared bool, err error) {
	defer func(start time.Time) { observe("remove_entry", start, err) }(time.Now())

	tx, rollback, err := db.beginTx(ctx)
	if err != nil {
		return false, err
	}
	defer rollback()

	if _, err := db.lockSet(ctx, tx, setID); err != nil {
		if errors.Is(err, models.ErrProductSetNotFound) {
			return false, models.ErrEntryNotFound
		}
		return false, err
	}

	var position int
	err = tx.QueryRowContext(ctx,
		`SELECT position FROM product_set_entries WHERE id = $1 AND product_set_id = $2`,
		entryID, setID,
	).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return false, models.ErrEntryNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to load entry %d: %w", entryID, err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE product_set_states SET current_entry_id = NULL, current_image_index = 0
		 WHERE product_set_id = $1 AND current_entry_id = $2`,
		setID, entryID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to clear current entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		cleared = true
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_set_entries WHERE id = $1`, entryID); err != nil {
		return false, fmt.Errorf("failed to delete entry %d: %w", entryID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE product_set_entries SET position = position - 1 WHERE product_set_id = $1 AND position > $2`,
		setID, position,
	); err != nil {
		return false, fmt.Errorf("failed to compact positions: %w", err)
	}

	if err := touchSet(ctx, tx, setID); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit entry removal: %w", err)
	}
	return cleared, nil
}
