// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package models

import "time"

// Brand owns products, product sets and message presets.
type Brand struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a catalog item. Hudson only reads products while a session is live;
// they are created through the catalog endpoints.
//
// Prices are stored in cents. SalePriceCents is nil when the product is not on sale.
type Product struct {
	ID                 int64          `json:"id"`
	BrandID            int64          `json:"brand_id"`
	Name               string         `json:"name"`
	TalkingPoints      *string        `json:"talking_points,omitempty"`
	OriginalPriceCents int64          `json:"original_price_cents"`
	SalePriceCents     *int64         `json:"sale_price_cents,omitempty"`
	Images             []ProductImage `json:"images"`
	CreatedAt          time.Time      `json:"created_at"`
}

// ProductImage is one image of a product. Position is 0-based and matches the
// image index carried by ProductSetState.
type ProductImage struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Position  int     `json:"position"`
	URL       string  `json:"url"`
	AltText   *string `json:"alt_text,omitempty"`
}

// ProductSet is an ordered collection of products curated for one live session.
//
// Entries are ordered by Position and are only populated by queries that ask for them.
type ProductSet struct {
	ID        int64             `json:"id"`
	BrandID   int64             `json:"brand_id"`
	Name      string            `json:"name"`
	Slug      string            `json:"slug"`
	Notes     *string           `json:"notes,omitempty"`
	Entries   []ProductSetEntry `json:"entries,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ProductSetEntry is a product's appearance within a product set.
//
// Invariants enforced by the store:
//   - Position is 1-based, unique within the set, and contiguous (1..N)
//   - (ProductSetID, ProductID) is unique
//
// The override fields replace the product's own values when non-nil.
type ProductSetEntry struct {
	ID                    int64     `json:"id"`
	ProductSetID          int64     `json:"product_set_id"`
	ProductID             int64     `json:"product_id"`
	Position              int       `json:"position"`
	DisplayName           *string   `json:"display_name,omitempty"`
	TalkingPoints         *string   `json:"talking_points,omitempty"`
	OriginalPriceOverride *int64    `json:"original_price_override_cents,omitempty"`
	SalePriceOverride     *int64    `json:"sale_price_override_cents,omitempty"`
	Product               *Product  `json:"product,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// EntryOverrides is a partial update of an entry's override fields.
// A nil field is left untouched; Clear lists fields to reset to NULL.
type EntryOverrides struct {
	DisplayName           *string  `json:"display_name,omitempty" validate:"omitempty,max=200"`
	TalkingPoints         *string  `json:"talking_points,omitempty" validate:"omitempty,max=5000"`
	OriginalPriceOverride *int64   `json:"original_price_override_cents,omitempty" validate:"omitempty,gte=0"`
	SalePriceOverride     *int64   `json:"sale_price_override_cents,omitempty" validate:"omitempty,gte=0"`
	Clear                 []string `json:"clear,omitempty" validate:"dive,oneof=display_name talking_points original_price_override_cents sale_price_override_cents"`
}

// EntrySummary is the minimal view of an entry that state transitions need.
type EntrySummary struct {
	ID         int64
	Position   int
	ImageCount int
}
