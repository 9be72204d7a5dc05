// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package websocket

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/pavoi/hudson/internal/models"
)

// Role is the kind of live view.
type Role string

// Roles.
const (
	RoleController Role = "controller"
	RoleHost       Role = "host"
)

// ParseRole validates a role query value. Empty means host.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleController:
		return RoleController, nil
	case RoleHost, "":
		return RoleHost, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Frame types sent to views that are not broadcast events.
const (
	FrameTypePong = "pong"
)

// Action types accepted from views.
const (
	ActionJump         = "jump"
	ActionNext         = "next"
	ActionPrevious     = "previous"
	ActionCycleImage   = "cycle_image"
	ActionSetImage     = "set_image"
	ActionSendMessage  = "send_message"
	ActionSendPreset   = "send_preset"
	ActionClearMessage = "clear_message"
	ActionInit         = "init"
	ActionUIToggle     = "ui_toggle"
	ActionPing         = "ping"
)

// Frame is one message written to a view.
type Frame struct {
	Type      string          `json:"type"`
	Version   int64           `json:"version,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	Error     *FrameError     `json:"error,omitempty"`
}

// FrameError describes a failed action. It is sent to the acting view only.
type FrameError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Action is one operation requested by a view.
type Action struct {
	Type      string              `json:"type"`
	RequestID string              `json:"request_id,omitempty"`
	Position  int                 `json:"position,omitempty"`
	Direction string              `json:"direction,omitempty"`
	Index     *int                `json:"index,omitempty"`
	Text      string              `json:"text,omitempty"`
	Color     models.MessageColor `json:"color,omitempty"`
	PresetID  int64               `json:"preset_id,omitempty"`
	Key       string              `json:"key,omitempty"`
	Value     bool                `json:"value,omitempty"`
}

func stateFrame(frameType string, live *models.LiveState) (Frame, error) {
	data, err := json.Marshal(live)
	if err != nil {
		return Frame{}, fmt.Errorf("marshal live state: %w", err)
	}
	return Frame{Type: frameType, Version: live.State.Version, Data: data}, nil
}

func eventFrame(e *models.BroadcastEvent) Frame {
	return Frame{Type: e.Type, Version: e.Version, Data: e.Data}
}

func errorFrame(requestID string, err error) Frame {
	code := errorCode(err)
	msg := err.Error()
	if code == models.CodeDatabase {
		msg = "operation failed"
	}
	return Frame{
		Type:      models.EventError,
		RequestID: requestID,
		Error:     &FrameError{Code: code, Message: msg},
	}
}

func ackFrame(requestID string, version int64) Frame {
	return Frame{Type: models.EventAck, RequestID: requestID, Version: version}
}
