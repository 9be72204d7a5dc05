// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import "github.com/pavoi/hudson/internal/models"

// Request bodies. Range checks that depend on stored data (positions, image
// indexes, message trimming) are left to the liveset service so HTTP and
// websocket callers get the same errors.

// CreateBrandRequest is the body of POST /brands.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Slug string `json:"slug" validate:"required,max=100,slug"`
}

// ProductImageRequest is one image of a new product. Order sets position.
type ProductImageRequest struct {
	URL     string  `json:"url" validate:"required,url,max=2048"`
	AltText *string `json:"alt_text,omitempty" validate:"omitempty,max=300"`
}

// CreateProductRequest is the body of POST /brands/{brandID}/products.
type CreateProductRequest struct {
	Name               string                `json:"name" validate:"required,max=200"`
	TalkingPoints      *string               `json:"talking_points,omitempty" validate:"omitempty,max=5000"`
	OriginalPriceCents int64                 `json:"original_price_cents" validate:"gte=0"`
	SalePriceCents     *int64                `json:"sale_price_cents,omitempty" validate:"omitempty,gte=0"`
	Images             []ProductImageRequest `json:"images,omitempty" validate:"omitempty,max=50,dive"`
}

// CreateProductSetRequest is the body of POST /brands/{brandID}/product-sets.
type CreateProductSetRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Slug  string  `json:"slug" validate:"required,max=100,slug"`
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// AddEntryRequest is the body of POST /product-sets/{setID}/entries.
type AddEntryRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// ReorderEntriesRequest lists every entry of the set in its new order.
type ReorderEntriesRequest struct {
	EntryIDs []int64 `json:"entry_ids" validate:"required,unique,dive,gt=0"`
}

// CreatePresetRequest is the body of POST /brands/{brandID}/message-presets.
type CreatePresetRequest struct {
	Text  string              `json:"text" validate:"required,max=500"`
	Color models.MessageColor `json:"color" validate:"required,palette"`
}

// JumpRequest is the body of POST .../state/jump.
type JumpRequest struct {
	Position *int `json:"position" validate:"required"`
}

// CycleImageRequest is the body of POST .../state/image/cycle.
type CycleImageRequest struct {
	Direction string `json:"direction" validate:"required"`
}

// SetImageRequest is the body of PUT .../state/image.
type SetImageRequest struct {
	Index *int `json:"index" validate:"required"`
}

// SendMessageRequest is the body of POST .../state/message.
type SendMessageRequest struct {
	Text  string              `json:"text" validate:"required"`
	Color models.MessageColor `json:"color" validate:"required,palette"`
}

// SendPresetRequest is the body of POST .../state/message/preset.
type SendPresetRequest struct {
	PresetID int64 `json:"preset_id" validate:"required,gt=0"`
}

// UIToggleRequest is the body of POST /product-sets/{setID}/ui.
type UIToggleRequest struct {
	Key   string `json:"key" validate:"required,max=64"`
	Value *bool  `json:"value" validate:"required"`
}

// RemoveEntryResponse reports whether the removed entry was live.
type RemoveEntryResponse struct {
	EntryID        int64 `json:"entry_id"`
	ClearedCurrent bool  `json:"cleared_current"`
}
