// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/models"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "error",
		Format: "console",
		Output: io.Discard,
	})
}

// testDBSemaphore limits concurrent DuckDB instances across parallel tests.
var testDBSemaphore = make(chan struct{}, 4)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(&config.DatabaseConfig{
		Driver:    config.DriverDuckDB,
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   2,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func seedBrand(t *testing.T, db *DB, slug string) *models.Brand {
	t.Helper()
	b := &models.Brand{Name: "Brand " + slug, Slug: slug}
	if err := db.CreateBrand(context.Background(), b); err != nil {
		t.Fatalf("CreateBrand(%s) error = %v", slug, err)
	}
	return b
}

func seedProduct(t *testing.T, db *DB, brandID int64, name string, images int) *models.Product {
	t.Helper()
	p := &models.Product{BrandID: brandID, Name: name, OriginalPriceCents: 4999}
	for i := 0; i < images; i++ {
		p.Images = append(p.Images, models.ProductImage{URL: fmt.Sprintf("https://cdn.example.com/%s/%d.jpg", name, i)})
	}
	if err := db.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("CreateProduct(%s) error = %v", name, err)
	}
	return p
}

func seedSet(t *testing.T, db *DB, brandID int64, slug string) *models.ProductSet {
	t.Helper()
	s := &models.ProductSet{BrandID: brandID, Name: "Set " + slug, Slug: slug}
	if err := db.CreateProductSet(context.Background(), s); err != nil {
		t.Fatalf("CreateProductSet(%s) error = %v", slug, err)
	}
	return s
}

// seedSetWithEntries creates a set whose entries at positions 1..len(imageCounts)
// carry products with the given numbers of images.
func seedSetWithEntries(t *testing.T, db *DB, imageCounts ...int) (*models.ProductSet, []*models.ProductSetEntry) {
	t.Helper()
	brand := seedBrand(t, db, fmt.Sprintf("brand-%d", len(imageCounts)))
	set := seedSet(t, db, brand.ID, fmt.Sprintf("set-%d", len(imageCounts)))

	entries := make([]*models.ProductSetEntry, 0, len(imageCounts))
	for i, n := range imageCounts {
		p := seedProduct(t, db, brand.ID, fmt.Sprintf("product-%d", i+1), n)
		e, err := db.AddEntry(context.Background(), set.ID, p.ID)
		if err != nil {
			t.Fatalf("AddEntry() error = %v", err)
		}
		entries = append(entries, e)
	}
	return set, entries
}

func TestNew(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if got := db.Driver(); got != config.DriverDuckDB {
		t.Errorf("Driver() = %q, want %q", got, config.DriverDuckDB)
	}
	if db.forUpdate() != "" {
		t.Errorf("forUpdate() = %q, want empty on duckdb", db.forUpdate())
	}

	applied, err := db.GetAppliedMigrations(context.Background())
	if err != nil {
		t.Fatalf("GetAppliedMigrations() error = %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("applied %d migrations on duckdb, want 0 (postgres-only)", len(applied))
	}
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "sqlite"})
	if err == nil {
		t.Fatal("New() with unsupported driver should fail")
	}
}

func TestMigrations_AppendOnly(t *testing.T) {
	seen := make(map[int]bool)
	last := 0
	for _, m := range migrations() {
		if seen[m.Version] {
			t.Errorf("duplicate migration version %d", m.Version)
		}
		if m.Version <= last {
			t.Errorf("migration %d out of order", m.Version)
		}
		if m.Name == "" || m.SQL == "" {
			t.Errorf("migration %d missing name or SQL", m.Version)
		}
		seen[m.Version] = true
		last = m.Version
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"duckdb duplicate key", errors.New(`Constraint Error: Duplicate key "slug: x" violates unique constraint`), true},
		{"primary key", errors.New("violates primary key constraint"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueConstraintError(tt.err); got != tt.want {
				t.Errorf("isUniqueConstraintError() = %v, want %v", got, tt.want)
			}
		})
	}
}
