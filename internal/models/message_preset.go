// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package models

import "time"

// MessagePreset is a brand-scoped canned host message, ordered by Position.
type MessagePreset struct {
	ID        int64        `json:"id"`
	BrandID   int64        `json:"brand_id"`
	Text      string       `json:"text"`
	Color     MessageColor `json:"color"`
	Position  int          `json:"position"`
	CreatedAt time.Time    `json:"created_at"`
}
