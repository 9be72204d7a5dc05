// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Event types sent to live views.
const (
	EventInitialState = "initial_state"
	EventStateChanged = "state_changed"
	EventUIToggled    = "ui_toggled"
	EventError        = "error"
	EventAck          = "ack"
)

// Topic kinds. State carries durable LiveState snapshots, UI carries
// ephemeral UIToggle messages that are never persisted.
const (
	TopicKindState = "state"
	TopicKindUI    = "ui"
)

// StateTopic returns the state broadcast topic of a product set.
func StateTopic(productSetID int64) string {
	return fmt.Sprintf("product_set:%d:%s", productSetID, TopicKindState)
}

// UITopic returns the ui broadcast topic of a product set.
func UITopic(productSetID int64) string {
	return fmt.Sprintf("product_set:%d:%s", productSetID, TopicKindUI)
}

// ParseTopic splits "product_set:{id}:{kind}".
func ParseTopic(topic string) (productSetID int64, kind string, err error) {
	parts := strings.Split(topic, ":")
	if len(parts) != 3 || parts[0] != "product_set" {
		return 0, "", fmt.Errorf("malformed topic %q", topic)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", fmt.Errorf("malformed topic %q: bad product set id", topic)
	}
	if parts[2] != TopicKindState && parts[2] != TopicKindUI {
		return 0, "", fmt.Errorf("malformed topic %q: unknown kind", topic)
	}
	return id, parts[2], nil
}

// UIToggle is an ephemeral view toggle such as notes panel visibility.
// Last message wins; nothing is stored.
type UIToggle struct {
	ProductSetID int64     `json:"product_set_id"`
	Key          string    `json:"key"`
	Value        bool      `json:"value"`
	SentAt       time.Time `json:"sent_at"`
}

// BroadcastEvent is the payload carried by the broadcast transport.
// Version is the state version for state_changed events and zero otherwise.
type BroadcastEvent struct {
	Type         string          `json:"type"`
	ProductSetID int64           `json:"product_set_id"`
	Version      int64           `json:"version,omitempty"`
	Data         json.RawMessage `json:"data"`
}

// NewStateChangedEvent wraps a LiveState snapshot.
func NewStateChangedEvent(s *LiveState) (*BroadcastEvent, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal live state: %w", err)
	}
	return &BroadcastEvent{
		Type:         EventStateChanged,
		ProductSetID: s.ProductSetID,
		Version:      s.State.Version,
		Data:         data,
	}, nil
}

// NewUIToggledEvent wraps a UIToggle.
func NewUIToggledEvent(t *UIToggle) (*BroadcastEvent, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("marshal ui toggle: %w", err)
	}
	return &BroadcastEvent{
		Type:         EventUIToggled,
		ProductSetID: t.ProductSetID,
		Data:         data,
	}, nil
}
