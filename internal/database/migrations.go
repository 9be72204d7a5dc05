// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/pavoi/hudson/internal/logging"
)

// Migration represents a versioned database migration.
type Migration struct {
	Version     int    // Unique version number (monotonically increasing)
	Name        string // Human-readable migration name
	Description string
	SQL         string
	// PostgresOnly migrations are skipped, and not recorded, on DuckDB.
	PostgresOnly bool
	AppliedAt    time.Time // Populated on query
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMPTZ NOT NULL
)`

// migrations returns all versioned migrations in order.
// Migrations are append-only: never modify or remove one that has shipped.
func migrations() []Migration {
	return []Migration{
		{
			Version:      1,
			Name:         "entry_position_unique",
			Description:  "Deferrable uniqueness of entry positions within a product set",
			PostgresOnly: true,
			SQL: `ALTER TABLE product_set_entries
				ADD CONSTRAINT product_set_entries_position_key
				UNIQUE (product_set_id, position) DEFERRABLE INITIALLY DEFERRED`,
		},
	}
}

func (db *DB) getAppliedMigrations(ctx context.Context) (map[int]Migration, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version, name, description, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]Migration)
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name, &m.Description, &m.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[m.Version] = m
	}
	return applied, rows.Err()
}

// runVersionedMigrations executes migrations that have not been applied yet.
func (db *DB) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	newMigrations := 0
	for _, m := range migrations() {
		if _, exists := applied[m.Version]; exists {
			continue
		}
		if m.PostgresOnly && !db.postgres {
			continue
		}

		if err := db.applyMigration(ctx, m); err != nil {
			return err
		}
		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("count", newMigrations).Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) applyMigration(ctx context.Context, m Migration) error {
	tx, rollback, err := db.beginTx(ctx)
	if err != nil {
		return err
	}
	defer rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, description, applied_at) VALUES ($1, $2, $3, $4)`,
		m.Version, m.Name, m.Description, timestamp(),
	); err != nil {
		return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration v%d: %w", m.Version, err)
	}

	logging.Debug().Int("version", m.Version).Str("name", m.Name).Msg("Applied migration")
	return nil
}

// GetAppliedMigrations returns applied migrations ordered by version
func (db *DB) GetAppliedMigrations(ctx context.Context) ([]Migration, error) {
	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Migration, 0, len(applied))
	for _, m := range migrations() {
		if a, ok := applied[m.Version]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}
