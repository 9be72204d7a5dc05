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

// CreateProductSet inserts an empty product set for an existing brand.
func (db *DB) CreateProductSet(ctx context.Context, set *models.ProductSet) (err error) {
	defer func(start time.Time) { observe("create_product_set", start, err) }(time.Now())

	if err := requireBrand(ctx, db.conn, set.BrandID); err != nil {
		return err
	}

	now := timestamp()
	set.CreatedAt, set.UpdatedAt = now, now
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO product_sets (brand_id, name, slug, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		set.BrandID, set.Name, set.Slug, nullString(set.Notes), set.CreatedAt, set.UpdatedAt,
	).Scan(&set.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.ErrSlugTaken
		}
		return fmt.Errorf("failed to create product set: %w", err)
	}
	set.Entries = []models.ProductSetEntry{}
	return nil
}

const productSetSelect = `SELECT id, brand_id, name, slug, notes, created_at, updated_at FROM product_sets`

func scanProductSet(row rowScanner) (*models.ProductSet, error) {
	var (
		s     models.ProductSet
		notes sql.NullString
	)
	if err := row.Scan(&s.ID, &s.BrandID, &s.Name, &s.Slug, &notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Notes = stringPtr(notes)
	return &s, nil
}

// GetProductSet retrieves a product set with its entries in position order.
func (db *DB) GetProductSet(ctx context.Context, id int64) (*models.ProductSet, error) {
	s, err := scanProductSet(db.conn.QueryRowContext(ctx, productSetSelect+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrProductSetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product set %d: %w", id, err)
	}

	s.Entries, err = db.ListEntries(ctx, id)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListProductSets returns a brand's product sets without entries.
func (db *DB) ListProductSets(ctx context.Context, brandID int64) ([]models.ProductSet, error) {
	if err := requireBrand(ctx, db.conn, brandID); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, productSetSelect+` WHERE brand_id = $1 ORDER BY updated_at DESC, id DESC`, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product sets: %w", err)
	}
	defer closeWithLog(rows, "rows")

	sets := []models.ProductSet{}
	for rows.Next() {
		s, err := scanProductSet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product set: %w", err)
		}
		sets = append(sets, *s)
	}
	return sets, rows.Err()
}

// DeleteProductSet deletes a product set together with its entries and state row.
func (db *DB) DeleteProductSet(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("delete_product_set", start, err) }(time.Now())

	tx, rollback, err := db.beginTx(ctx)
	if err != nil {
		return err
	}
	defer rollback()

	if _, err := requireSet(ctx, tx, id); err != nil {
		return err
	}

	for _, q := range []string{
		`DELETE FROM product_set_states WHERE product_set_id = $1`,
		`DELETE FROM product_set_entries WHERE product_set_id = $1`,
		`DELETE FROM product_sets WHERE id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("failed to delete product set %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product set delete: %w", err)
	}
	db.setBrands.Remove(id)
	return nil
}

// ProductSetBrand returns the brand of a product set, or ErrProductSetNotFound.
// Answers are cached briefly. Another instance deleting the set is noticed
// by the next transaction that touches it.
func (db *DB) ProductSetBrand(ctx context.Context, setID int64) (int64, error) {
	if brandID, ok := db.setBrands.Get(setID); ok {
		return brandID, nil
	}
	brandID, err := requireSet(ctx, db.conn, setID)
	if err != nil {
		return 0, err
	}
	db.setBrands.Add(setID, brandID)
	return brandID, nil
}

// requireSet checks a product set exists and returns its brand ID.
func requireSet(ctx context.Context, q queryer, setID int64) (int64, error) {
	var brandID int64
	err := q.QueryRowContext(ctx, `SELECT brand_id FROM product_sets WHERE id = $1`, setID).Scan(&brandID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrProductSetNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check product set %d: %w", setID, err)
	}
	return brandID, nil
}

// lockSet is requireSet that also takes the set row lock on postgres. Entry
// edits read MAX(position) or rewrite positions, so they must not interleave
// across instances sharing the database.
func (db *DB) lockSet(ctx context.Context, tx *sql.Tx, setID int64) (int64, error) {
	var brandID int64
	err := tx.QueryRowContext(ctx, `SELECT brand_id FROM product_sets WHERE id = $1`+db.forUpdate(), setID).Scan(&brandID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrProductSetNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock product set %d: %w", setID, err)
	}
	return brandID, nil
}

// touchSet bumps the set's updated_at and, if a state row exists, its
// version. Entry edits change the live view, so views must see a newer
// version for the rebroadcast snapshot.
func touchSet(ctx context.Context, tx *sql.Tx, setID int64) error {
	now := timestamp()
	if _, err := tx.ExecContext(ctx, `UPDATE product_sets SET updated_at = $1 WHERE id = $2`, now, setID); err != nil {
		return fmt.Errorf("failed to touch product set %d: %w", setID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE product_set_states SET version = version + 1, updated_at = $1 WHERE product_set_id = $2`,
		now, setID,
	); err != nil {
		return fmt.Errorf("failed to bump state version for set %d: %w", setID, err)
	}
	return nil
}
