// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package models

import "time"

// MessageColor is the color tag of a host message. Only palette values are accepted.
type MessageColor string

// Message palette.
const (
	ColorDefault MessageColor = "default"
	ColorRed     MessageColor = "red"
	ColorOrange  MessageColor = "orange"
	ColorYellow  MessageColor = "yellow"
	ColorGreen   MessageColor = "green"
	ColorBlue    MessageColor = "blue"
	ColorPurple  MessageColor = "purple"
)

// Palette lists every accepted MessageColor in display order.
var Palette = []MessageColor{
	ColorDefault, ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorBlue, ColorPurple,
}

// Valid reports whether c is part of the palette.
func (c MessageColor) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// MaxHostMessageLength bounds host message and preset text.
const MaxHostMessageLength = 500

// HostMessage is the ephemeral message shown to the host. The stored columns are
// either all set or all NULL, so a nil *HostMessage means "no message".
type HostMessage struct {
	ID     string       `json:"id"`
	Text   string       `json:"text"`
	Color  MessageColor `json:"color"`
	SentAt time.Time    `json:"sent_at"`
}

// ProductSetState is the single mutable row per product set holding what is live.
//
// CurrentEntryID is a lookup key, not an ownership relation: deleting the entry
// sets it to nil and leaves the row in place. When non-nil it always refers to an
// entry of the same product set.
//
// Version increases by one on every persisted mutation. Views use it to discard
// snapshots older than the one they already show.
type ProductSetState struct {
	ProductSetID      int64        `json:"product_set_id"`
	CurrentEntryID    *int64       `json:"current_entry_id"`
	CurrentImageIndex int          `json:"current_image_index"`
	HostMessage       *HostMessage `json:"host_message"`
	Version           int64        `json:"version"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// Clone returns a deep copy so transitions can mutate freely.
func (s *ProductSetState) Clone() *ProductSetState {
	c := *s
	if s.CurrentEntryID != nil {
		id := *s.CurrentEntryID
		c.CurrentEntryID = &id
	}
	if s.HostMessage != nil {
		m := *s.HostMessage
		c.HostMessage = &m
	}
	return &c
}

// LiveEntry is the resolved, display-ready view of the current entry.
// Override fields have already been applied.
type LiveEntry struct {
	EntryID            int64    `json:"entry_id"`
	ProductID          int64    `json:"product_id"`
	Position           int      `json:"position"`
	Name               string   `json:"name"`
	TalkingPoints      *string  `json:"talking_points,omitempty"`
	OriginalPriceCents int64    `json:"original_price_cents"`
	SalePriceCents     *int64   `json:"sale_price_cents,omitempty"`
	ImageURLs          []string `json:"image_urls"`
	ImageCount         int      `json:"image_count"`
}

// LiveState is the payload views receive: the full state row plus the resolved
// current entry. Views replace their copy wholesale on every update.
type LiveState struct {
	ProductSetID int64           `json:"product_set_id"`
	State        ProductSetState `json:"state"`
	Current      *LiveEntry      `json:"current"`
	EntryCount   int             `json:"entry_count"`
}
