// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package websocket

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/models"
)

// drain returns the frames queued on c without blocking.
func drain(c *Client) []Frame {
	var frames []Frame
	for {
		select {
		case f := <-c.send:
			frames = append(frames, f)
		default:
			return frames
		}
	}
}

func stateEvent(t *testing.T, setID, version int64) *models.BroadcastEvent {
	t.Helper()
	e, err := models.NewStateChangedEvent(liveAt(setID, version))
	if err != nil {
		t.Fatalf("NewStateChangedEvent() error = %v", err)
	}
	return e
}

func TestClient_HoldsBroadcastsUntilInitialState(t *testing.T) {
	hub := NewHub(nil, nil, config.WebSocketConfig{SendBuffer: 8})
	c := NewClient(hub, nil, 1, RoleHost)

	c.deliver(stateEvent(t, 1, 4))
	c.deliver(stateEvent(t, 1, 3))
	if frames := drain(c); len(frames) != 0 {
		t.Fatalf("frames before initial_state = %+v, want none", frames)
	}

	if err := c.SendInitial(liveAt(1, 2)); err != nil {
		t.Fatalf("SendInitial() error = %v", err)
	}
	frames := drain(c)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want initial_state plus held v4", len(frames))
	}
	if frames[0].Type != models.EventInitialState || frames[0].Version != 2 {
		t.Errorf("frames[0] = %+v, want initial_state v2", frames[0])
	}
	if frames[1].Type != models.EventStateChanged || frames[1].Version != 4 {
		t.Errorf("frames[1] = %+v, want state_changed v4", frames[1])
	}
}

func TestClient_DropsHeldBroadcastOlderThanInitialState(t *testing.T) {
	hub := NewHub(nil, nil, config.WebSocketConfig{SendBuffer: 8})
	c := NewClient(hub, nil, 1, RoleHost)

	c.deliver(stateEvent(t, 1, 5))
	if err := c.SendInitial(liveAt(1, 5)); err != nil {
		t.Fatalf("SendInitial() error = %v", err)
	}
	if frames := drain(c); len(frames) != 1 || frames[0].Type != models.EventInitialState {
		t.Errorf("frames = %+v, want only initial_state", frames)
	}
}

func TestClient_DeliverDropsStaleVersions(t *testing.T) {
	hub := NewHub(nil, nil, config.WebSocketConfig{SendBuffer: 8})
	c := NewClient(hub, nil, 1, RoleHost)
	if err := c.SendInitial(liveAt(1, 3)); err != nil {
		t.Fatalf("SendInitial() error = %v", err)
	}
	drain(c)

	tests := []struct {
		version int64
		want    bool
	}{
		{2, false},
		{3, false},
		{4, true},
		{4, false},
		{6, true},
		{5, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("v%d", tt.version), func(t *testing.T) {
			c.deliver(stateEvent(t, 1, tt.version))
			got := len(drain(c)) == 1
			if got != tt.want {
				t.Errorf("delivered = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_UIEventsBypassVersionCheck(t *testing.T) {
	hub := NewHub(nil, nil, config.WebSocketConfig{SendBuffer: 8})
	c := NewClient(hub, nil, 1, RoleHost)

	e, err := models.NewUIToggledEvent(&models.UIToggle{ProductSetID: 1, Key: "k", Value: true})
	if err != nil {
		t.Fatalf("NewUIToggledEvent() error = %v", err)
	}
	c.deliver(e)
	c.deliver(e)
	if got := len(drain(c)); got != 2 {
		t.Errorf("delivered %d ui events, want 2", got)
	}
}

func TestClient_FullBufferDropsFrames(t *testing.T) {
	hub := NewHub(nil, nil, config.WebSocketConfig{SendBuffer: 1})
	c := NewClient(hub, nil, 1, RoleHost)

	c.reply(Frame{Type: FrameTypePong})
	c.reply(Frame{Type: FrameTypePong})
	if got := len(c.send); got != 1 {
		t.Errorf("queued frames = %d, want 1", got)
	}

	c.shutdown()
	c.shutdown()
	c.reply(Frame{Type: FrameTypePong})
}

func TestClient_ActionErrors(t *testing.T) {
	env := newTestEnv(t, config.WebSocketConfig{SendBuffer: 16})
	controller := env.dial(t, 9, RoleController)
	host := env.dial(t, 9, RoleHost)

	tests := []struct {
		name     string
		conn     *websocket.Conn
		action   Action
		wantCode string
	}{
		{"host cannot navigate", host, Action{Type: ActionNext, RequestID: "a"}, "FORBIDDEN_ACTION"},
		{"unknown action", controller, Action{Type: "teleport", RequestID: "b"}, "UNKNOWN_ACTION"},
		{"set_image needs index", controller, Action{Type: ActionSetImage, RequestID: "c"}, "MALFORMED_ACTION"},
		{"invalid position", controller, Action{Type: ActionJump, RequestID: "d", Position: 0}, models.CodeInvalidPosition},
		{"start of set", controller, Action{Type: ActionPrevious, RequestID: "e"}, models.CodeStartOfProductSet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sendAction(t, tt.conn, tt.action)
			f := readUntil(t, tt.conn, models.EventError)
			if f.RequestID != tt.action.RequestID {
				t.Errorf("RequestID = %q, want %q", f.RequestID, tt.action.RequestID)
			}
			if f.Error == nil || f.Error.Code != tt.wantCode {
				t.Errorf("Error = %+v, want code %s", f.Error, tt.wantCode)
			}
		})
	}
}

func TestClient_MalformedFrame(t *testing.T) {
	env := newTestEnv(t, config.WebSocketConfig{SendBuffer: 16})
	conn := env.dial(t, 4, RoleController)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
	f := readFrame(t, conn)
	if f.Type != models.EventError || f.Error == nil || f.Error.Code != "MALFORMED_ACTION" {
		t.Errorf("frame = %+v, want MALFORMED_ACTION error", f)
	}

	// The connection stays usable.
	sendAction(t, conn, Action{Type: ActionPing, RequestID: "still-here"})
	if f := readFrame(t, conn); f.Type != FrameTypePong || f.RequestID != "still-here" {
		t.Errorf("frame = %+v, want pong", f)
	}
}

func TestClient_RateLimited(t *testing.T) {
	env := newTestEnv(t, config.WebSocketConfig{SendBuffer: 16, InboundRate: 0.001, InboundBurst: 1})
	conn := env.dial(t, 6, RoleController)

	sendAction(t, conn, Action{Type: ActionPing, RequestID: "1"})
	sendAction(t, conn, Action{Type: ActionPing, RequestID: "2"})

	if f := readFrame(t, conn); f.Type != FrameTypePong {
		t.Errorf("first frame = %+v, want pong", f)
	}
	f := readFrame(t, conn)
	if f.Type != models.EventError || f.Error == nil || f.Error.Code != "RATE_LIMITED" || f.RequestID != "2" {
		t.Errorf("second frame = %+v, want RATE_LIMITED for request 2", f)
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"controller", RoleController, false},
		{"host", RoleHost, false},
		{"", RoleHost, false},
		{"admin", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestErrorFrame(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{"rate limited", ErrRateLimited, "RATE_LIMITED", ErrRateLimited.Error()},
		{"end of set", models.ErrEndOfProductSet, models.CodeEndOfProductSet, models.ErrEndOfProductSet.Error()},
		{"database failure is masked", errors.New("pq: connection refused"), models.CodeDatabase, "operation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := errorFrame("req", tt.err)
			if f.Type != models.EventError || f.RequestID != "req" {
				t.Errorf("frame = %+v", f)
			}
			if f.Error.Code != tt.wantCode || f.Error.Message != tt.wantMsg {
				t.Errorf("Error = %+v, want %s %q", f.Error, tt.wantCode, tt.wantMsg)
			}
		})
	}
}
