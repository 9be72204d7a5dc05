// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core tables and their id sequences
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// createIndexes builds lookup indexes. Columns rewritten in place (positions)
// stay unindexed on DuckDB.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range indexQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE SEQUENCE IF NOT EXISTS brands_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS products_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS product_images_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS product_sets_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS product_set_entries_id_seq START 1`,
	`CREATE SEQUENCE IF NOT EXISTS message_presets_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS brands (
		id BIGINT PRIMARY KEY DEFAULT nextval('brands_id_seq'),
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT PRIMARY KEY DEFAULT nextval('products_id_seq'),
		brand_id BIGINT NOT NULL,
		name TEXT NOT NULL,
		talking_points TEXT,
		original_price_cents BIGINT NOT NULL DEFAULT 0,
		sale_price_cents BIGINT,
		created_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS product_images (
		id BIGINT PRIMARY KEY DEFAULT nextval('product_images_id_seq'),
		product_id BIGINT NOT NULL,
		position INTEGER NOT NULL,
		url TEXT NOT NULL,
		alt_text TEXT,
		UNIQUE (product_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS product_sets (
		id BIGINT PRIMARY KEY DEFAULT nextval('product_sets_id_seq'),
		brand_id BIGINT NOT NULL,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	// position is not declared UNIQUE here: DuckDB checks unique indexes
	// eagerly inside a transaction, which rejects in-place reorders. On
	// postgres, migration 1 adds a deferred unique constraint, and entry edits
	// hold the product_sets row lock (lockSet).
	`CREATE TABLE IF NOT EXISTS product_set_entries (
		id BIGINT PRIMARY KEY DEFAULT nextval('product_set_entries_id_seq'),
		product_set_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		position INTEGER NOT NULL CHECK (position > 0),
		display_name TEXT,
		talking_points TEXT,
		original_price_override_cents BIGINT,
		sale_price_override_cents BIGINT,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (product_set_id, product_id)
	)`,

	`CREATE TABLE IF NOT EXISTS product_set_states (
		product_set_id BIGINT PRIMARY KEY,
		current_entry_id BIGINT,
		current_image_index INTEGER NOT NULL DEFAULT 0 CHECK (current_image_index >= 0),
		host_message_text TEXT,
		host_message_id TEXT,
		host_message_at TIMESTAMPTZ,
		host_message_color TEXT,
		version BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS message_presets (
		id BIGINT PRIMARY KEY DEFAULT nextval('message_presets_id_seq'),
		brand_id BIGINT NOT NULL,
		text TEXT NOT NULL,
		color TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

var indexQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand_id)`,
	`CREATE INDEX IF NOT EXISTS idx_product_sets_brand ON product_sets(brand_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_set ON product_set_entries(product_set_id)`,
	`CREATE INDEX IF NOT EXISTS idx_message_presets_brand ON message_presets(brand_id)`,
}
