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

const presetSelect = `SELECT id, brand_id, text, color, position, created_at FROM message_presets`

func scanPreset(row rowScanner) (*models.MessagePreset, error) {
	var (
		p     models.MessagePreset
		color string
	)
	if err := row.Scan(&p.ID, &p.BrandID, &p.Text, &color, &p.Position, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Color = models.MessageColor(color)
	return &p, nil
}

// CreatePreset appends a message preset to its brand's list.
func (db *DB) CreatePreset(ctx context.Context, preset *models.MessagePreset) (err error) {
	defer func(start time.Time) { observe("create_preset", start, err) }(time.Now())

	tx, rollback, err := db.beginTx(ctx)
	if err != nil {
		return err
	}
	defer rollback()

	if err := requireBrand(ctx, tx, preset.BrandID); err != nil {
		return err
	}

	var maxPos int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) FROM message_presets WHERE brand_id = $1`, preset.BrandID,
	).Scan(&maxPos)
	if err != nil {
		return fmt.Errorf("failed to read max preset position: %w", err)
	}

	preset.Position = maxPos + 1
	preset.CreatedAt = timestamp()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO message_presets (brand_id, text, color, position, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		preset.BrandID, preset.Text, string(preset.Color), preset.Position, preset.CreatedAt,
	).Scan(&preset.ID)
	if err != nil {
		return fmt.Errorf("failed to create preset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preset: %w", err)
	}
	return nil
}

// GetPreset retrieves a message preset by ID.
func (db *DB) GetPreset(ctx context.Context, id int64) (*models.MessagePreset, error) {
	p, err := scanPreset(db.conn.QueryRowContext(ctx, presetSelect+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrPresetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset %d: %w", id, err)
	}
	return p, nil
}

// ListPresets returns a brand's presets in position order.
func (db *DB) ListPresets(ctx context.Context, brandID int64) ([]models.MessagePreset, error) {
	if err := requireBrand(ctx, db.conn, brandID); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, presetSelect+` WHERE brand_id = $1 ORDER BY position, id`, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer closeWithLog(rows, "rows")

	presets := []models.MessagePreset{}
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		presets = append(presets, *p)
	}
	return presets, rows.Err()
}

// DeletePreset removes a message preset.
func (db *DB) DeletePreset(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("delete_preset", start, err) }(time.Now())

	res, err := db.conn.ExecContext(ctx, `DELETE FROM message_presets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete preset %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete preset %d: %w", id, err)
	}
	if n == 0 {
		return models.ErrPresetNotFound
	}
	return nil
}
