// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package api

import (
	"net/http"
	"testing"

	"github.com/pavoi/hudson/internal/models"
)

func currentPosition(live *models.LiveState) int {
	if live.Current == nil {
		return 0
	}
	return live.Current.Position
}

func TestStateNavigation(t *testing.T) {
	s := newTestServer(t)
	sd := s.seed(t, "nav", 2, 0, 3)

	var live models.LiveState
	s.mustCall(t, http.StatusOK, http.MethodGet, sd.path("/state"), nil, &live)
	if live.Current != nil || live.State.Version != 1 || live.EntryCount != 3 {
		t.Fatalf("fresh state = %+v, want no current entry at version 1 with 3 entries", live)
	}

	steps := []struct {
		name         string
		method       string
		path         string
		body         interface{}
		wantStatus   int
		wantCode     string
		wantPosition int
		wantVersion  int64
	}{
		{"next from nothing", http.MethodPost, "/state/next", nil, http.StatusOK, "", 1, 2},
		{"previous at start", http.MethodPost, "/state/previous", nil, http.StatusUnprocessableEntity, models.CodeStartOfProductSet, 1, 2},
		{"jump to last", http.MethodPost, "/state/jump", JumpRequest{Position: intPtr(3)}, http.StatusOK, "", 3, 3},
		{"next at end", http.MethodPost, "/state/next", nil, http.StatusUnprocessableEntity, models.CodeEndOfProductSet, 3, 3},
		{"jump past end", http.MethodPost, "/state/jump", JumpRequest{Position: intPtr(4)}, http.StatusUnprocessableEntity, models.CodeInvalidPosition, 3, 3},
		{"jump to zero", http.MethodPost, "/state/jump", JumpRequest{Position: intPtr(0)}, http.StatusUnprocessableEntity, models.CodeInvalidPosition, 3, 3},
		{"previous", http.MethodPost, "/state/previous", nil, http.StatusOK, "", 2, 4},
		{"jump to same entry", http.MethodPost, "/state/jump", JumpRequest{Position: intPtr(2)}, http.StatusOK, "", 2, 4},
	}

	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			var got models.LiveState
			status, env := s.call(t, tt.method, sd.path(tt.path), tt.body, &got)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantCode != "" {
				if env.Error == nil || env.Error.Code != tt.wantCode {
					t.Fatalf("error = %+v, want code %s", env.Error, tt.wantCode)
				}
			}

			var after models.LiveState
			s.mustCall(t, http.StatusOK, http.MethodGet, sd.path("/state"), nil, &after)
			if p := currentPosition(&after); p != tt.wantPosition {
				t.Errorf("position = %d, want %d", p, tt.wantPosition)
			}
			if after.State.Version != tt.wantVersion {
				t.Errorf("version = %d, want %d", after.State.Version, tt.wantVersion)
			}
		})
	}
}

func TestStateImages(t *testing.T) {
	s := newTestServer(t)
	sd := s.seed(t, "img", 3, 0)

	var live models.LiveState
	s.mustCall(t, http.StatusOK, http.MethodPost, sd.path("/state/jump"), JumpRequest{Position: intPtr(1)}, &live)
	if live.Current == nil || live.Current.ImageCount != 3 || len(live.Current.ImageURLs) != 3 {
		t.Fatalf("current = %+v, want 3 images", live.Current)
	}

	steps := []struct {
		name      string
		method    string
		path      string
		body      interface{}
		wantIndex int
	}{
		{"cycle previous wraps", http.MethodPost, "/state/image/cycle", CycleImageRequest{Direction: "previous"}, 2},
		{"cycle next wraps", http.MethodPost, "/state/image/cycle", CycleImageRequest{Direction: "next"}, 0},
		{"set in range", http.MethodPut, "/state/image", SetImageRequest{Index: intPtr(1)}, 1},
		{"set out of range ignored", http.MethodPut, "/state/image", SetImageRequest{Index: intPtr(7)}, 1},
	}
	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			var got models.LiveState
			s.mustCall(t, http.StatusOK, tt.method, sd.path(tt.path), tt.body, &got)
			if got.State.CurrentImageIndex != tt.wantIndex {
				t.Errorf("image index = %d, want %d", got.State.CurrentImageIndex, tt.wantIndex)
			}
		})
	}

	_, env := s.call(t, http.MethodPost, sd.path("/state/image/cycle"), CycleImageRequest{Direction: "sideways"}, nil)
	if env.Error == nil || env.Error.Code != models.CodeValidation {
		t.Errorf("bad direction error = %+v, want %s", env.Error, models.CodeValidation)
	}

	// Moving to another entry resets the image index.
	s.mustCall(t, http.StatusOK, http.MethodPost, sd.path("/state/next"), nil, &live)
	if live.State.CurrentImageIndex != 0 {
		t.Errorf("image index after next = %d, want 0", live.State.CurrentImageIndex)
	}

	// The second product has no images, so cycling changes nothing.
	before := live.State.Version
	s.mustCall(t, http.StatusOK, http.MethodPost, sd.path("/state/image/cycle"), CycleImageRequest{Direction: "next"}, &live)
	if live.State.Version != before {
		t.Errorf("version = %d after no-op cycle, want %d", live.State.Version, before)
	}
}

func TestStateHostMessage(t *testing.T) {
	s := newTestServer(t)
	sd := s.seed(t, "msg", 1)

	var live models.LiveState
	s.mustCall(t, http.StatusOK, http.MethodPost, sd.path("/state/message"),
		SendMessageRequest{Text: "Only 10 left!", Color: models.ColorRed}, &live)
	if live.State.HostMessage == nil {
		t.Fatal("host message missing after send")
	}
	if live.State.HostMessage.Text != "Only 10 left!" || live.State.HostMessage.Color != models.ColorRed {
		t.Errorf("host message = %+v", live.State.HostMessage)
	}
	if live.State.HostMessage.ID == "" {
		t.Error("host message has no id")
	}

	var preset models.MessagePreset
	s.mustCall(t, http.StatusCreated, http.MethodPost, fmtPath("/api/v1/brands/%d/message-presets", sd.brand.ID),
		CreatePresetRequest{Text: "Free shipping today", Color: models.ColorGreen}, &preset)
	s.mustCall(t, http.StatusOK, http.MethodPost, sd.path("/state/message/preset"),
		SendPresetRequest{PresetID: preset.ID}, &live)
	if live.State.HostMessage == nil || live.State.HostMessage.Text != "Free shipping today" {
		t.Errorf("host message after preset = %+v", live.State.HostMessage)
	}

	s.mustCall(t, http.StatusNotFound, http.MethodPost, sd.path("/state/message/preset"),
		SendPresetRequest{PresetID: preset.ID + 100}, nil)

	s.mustCall(t, http.StatusOK, http.MethodDelete, sd.path("/state/message"), nil, &live)
	if live.State.HostMessage != nil {
		t.Errorf("host message after clear = %+v", live.State.HostMessage)
	}
	version := live.State.Version
	s.mustCall(t, http.StatusOK, http.MethodDelete, sd.path("/state/message"), nil, &live)
	if live.State.Version != version {
		t.Errorf("clearing an empty message bumped the version to %d", live.State.Version)
	}

	tests := []struct {
		name     string
		body     interface{}
		wantCode string
	}{
		{"blank text", SendMessageRequest{Text: "   ", Color: models.ColorDefault}, models.CodeValidation},
		{"unknown color", map[string]string{"text": "hi", "color": "pink"}, models.CodeValidation},
		{"missing color", map[string]string{"text": "hi"}, models.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := s.call(t, http.MethodPost, sd.path("/state/message"), tt.body, nil)
			if status != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", status)
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestStateInitialize(t *testing.T) {
	s := newTestServer(t)
	sd := s.seed(t, "init", 1)

	var first, second models.LiveState
	s.mustCall(t, http.StatusOK, http.MethodPost, sd.path("/state/init"), nil, &first)
	s.mustCall(t, http.StatusOK, http.MethodPost, sd.path("/state/init"), nil, &second)
	if first.State.Version != 1 || second.State.Version != 1 {
		t.Errorf("versions = %d, %d, want 1 and 1", first.State.Version, second.State.Version)
	}
}

func TestSetUIToggle(t *testing.T) {
	s := newTestServer(t)
	sd := s.seed(t, "ui", 1)

	var toggle models.UIToggle
	s.mustCall(t, http.StatusOK, http.MethodPost, sd.path("/ui"),
		UIToggleRequest{Key: "show_price", Value: boolPtr(true)}, &toggle)
	if toggle.Key != "show_price" || !toggle.Value || toggle.ProductSetID != sd.set.ID {
		t.Errorf("toggle = %+v", toggle)
	}

	// Toggles are not part of the persisted state.
	var live models.LiveState
	s.mustCall(t, http.StatusOK, http.MethodGet, sd.path("/state"), nil, &live)
	if live.State.Version != 1 {
		t.Errorf("version = %d after ui toggle, want 1", live.State.Version)
	}

	s.mustCall(t, http.StatusUnprocessableEntity, http.MethodPost, sd.path("/ui"),
		map[string]string{"key": "show_price"}, nil)
}

func TestStateErrors(t *testing.T) {
	s := newTestServer(t)
	sd := s.seed(t, "errs", 1)

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{"unknown set", http.MethodGet, "/api/v1/product-sets/9999/state", nil, http.StatusNotFound, models.CodeNotFound},
		{"non numeric id", http.MethodGet, "/api/v1/product-sets/abc/state", nil, http.StatusBadRequest, ErrCodeBadRequest},
		{"negative id", http.MethodPost, "/api/v1/product-sets/-1/state/next", nil, http.StatusBadRequest, ErrCodeBadRequest},
		{"missing position", http.MethodPost, sd.path("/state/jump"), map[string]string{}, http.StatusUnprocessableEntity, models.CodeValidation},
		{"unknown field", http.MethodPost, sd.path("/state/jump"), map[string]int{"position": 1, "extra": 2}, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown route", http.MethodGet, "/api/v1/nowhere", nil, http.StatusNotFound, ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := s.call(t, tt.method, tt.path, tt.body, nil)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if env == nil || env.Success || env.Error == nil {
				t.Fatalf("envelope = %+v, want error", env)
			}
			if env.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", env.Error.Code, tt.wantCode)
			}
			if env.Error.RequestID == "" {
				t.Error("error has no request id")
			}
		})
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
