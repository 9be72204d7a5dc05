// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package websocket

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/metrics"
	"github.com/pavoi/hudson/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	actionTimeout  = 10 * time.Second
)

// clientIDCounter gives clients increasing IDs so fan-out order is stable.
var clientIDCounter atomic.Uint64

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	id      uint64
	hub     *Hub
	conn    *websocket.Conn
	send    chan Frame
	setID   int64
	role    Role
	limiter *rate.Limiter

	mu          sync.Mutex
	closed      bool
	initialized bool
	lastVersion int64
	pending     *models.BroadcastEvent
}

// NewClient creates a client for the live view of a product set.
func NewClient(hub *Hub, conn *websocket.Conn, setID int64, role Role) *Client {
	buffer := hub.cfg.SendBuffer
	if buffer <= 0 {
		buffer = 256
	}
	limit := rate.Limit(hub.cfg.InboundRate)
	if hub.cfg.InboundRate <= 0 {
		limit = rate.Inf
	}
	burst := hub.cfg.InboundBurst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		id:      clientIDCounter.Add(1),
		hub:     hub,
		conn:    conn,
		send:    make(chan Frame, buffer),
		setID:   setID,
		role:    role,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() uint64 { return c.id }

// ProductSetID returns the set the client is watching.
func (c *Client) ProductSetID() int64 { return c.setID }

// Role returns the client's view role.
func (c *Client) Role() Role { return c.role }

// SendInitial queues the initial_state snapshot. A state broadcast that
// arrived after registration and is newer than live follows it immediately.
func (c *Client) SendInitial(live *models.LiveState) error {
	frame, err := stateFrame(models.EventInitialState, live)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.initialized = true
	if live.State.Version > c.lastVersion {
		c.lastVersion = live.State.Version
	}
	c.enqueue(frame)

	if p := c.pending; p != nil && p.Version > c.lastVersion {
		c.lastVersion = p.Version
		c.enqueue(eventFrame(p))
	}
	c.pending = nil
	return nil
}

// SendError queues an error frame for this client only.
func (c *Client) SendError(requestID string, err error) {
	c.reply(errorFrame(requestID, err))
}

// deliver forwards a broadcast event. state_changed events not newer than the
// last delivered version are dropped.
func (c *Client) deliver(e *models.BroadcastEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.Type == models.EventStateChanged {
		if !c.initialized {
			if c.pending == nil || e.Version > c.pending.Version {
				c.pending = e
			}
			return
		}
		if e.Version <= c.lastVersion {
			metrics.WSDroppedMessages.WithLabelValues("stale_version").Inc()
			return
		}
		c.lastVersion = e.Version
	}
	c.enqueue(eventFrame(e))
}

func (c *Client) reply(f Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enqueue(f)
}

// enqueue must be called with c.mu held. A client whose buffer is full has
// fallen behind for good; its connection is closed so it reconnects and
// starts again from initial_state.
func (c *Client) enqueue(f Frame) {
	if c.closed {
		return
	}
	select {
	case c.send <- f:
	default:
		metrics.WSDroppedMessages.WithLabelValues("slow_client").Inc()
		logging.Warn().Uint64("client_id", c.id).Int64("product_set_id", c.setID).Msg("websocket client too slow, closing")
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

// shutdown closes the send channel once. The write pump then closes the connection.
func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump reads actions from the connection and executes them in order.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logging.Warn().Err(err).Uint64("client_id", c.id).Msg("unexpected websocket close error")
			}
			return
		}

		var action Action
		if err := json.Unmarshal(data, &action); err != nil || action.Type == "" {
			c.SendError("", fmt.Errorf("%w: expected {\"type\": ...}", ErrMalformedAction))
			continue
		}
		if !c.limiter.Allow() {
			metrics.WSDroppedMessages.WithLabelValues("rate_limited").Inc()
			c.SendError(action.RequestID, ErrRateLimited)
			continue
		}
		c.handle(action)
	}
}

func (c *Client) handle(a Action) {
	if a.Type == ActionPing {
		c.reply(Frame{Type: FrameTypePong, RequestID: a.RequestID})
		return
	}

	ctx, cancel := context.WithTimeout(logging.ContextWithNewCorrelationID(context.Background()), actionTimeout)
	defer cancel()

	version, err := c.dispatch(ctx, a)
	if err != nil {
		logging.Ctx(ctx).Debug().
			Err(err).
			Str("action", a.Type).
			Int64("product_set_id", c.setID).
			Msg("websocket action failed")
		c.SendError(a.RequestID, err)
		return
	}
	c.reply(ackFrame(a.RequestID, version))
}

// dispatch runs an action and returns the resulting state version, or 0 for
// actions that do not touch the state.
func (c *Client) dispatch(ctx context.Context, a Action) (int64, error) {
	actions := c.hub.actions
	id := c.setID

	if a.Type == ActionUIToggle {
		_, err := actions.SetUIToggle(ctx, id, a.Key, a.Value)
		return 0, err
	}
	if c.role != RoleController {
		return 0, fmt.Errorf("%w: %s", ErrForbiddenAction, a.Type)
	}

	var (
		live *models.LiveState
		err  error
	)
	switch a.Type {
	case ActionJump:
		live, err = actions.JumpToProduct(ctx, id, a.Position)
	case ActionNext:
		live, err = actions.AdvanceToNextProduct(ctx, id)
	case ActionPrevious:
		live, err = actions.GoToPreviousProduct(ctx, id)
	case ActionCycleImage:
		live, err = actions.CycleProductImage(ctx, id, a.Direction)
	case ActionSetImage:
		if a.Index == nil {
			return 0, fmt.Errorf("%w: index is required", ErrMalformedAction)
		}
		live, err = actions.SetImageIndex(ctx, id, *a.Index)
	case ActionSendMessage:
		live, err = actions.SendHostMessage(ctx, id, a.Text, a.Color)
	case ActionSendPreset:
		live, err = actions.SendPresetMessage(ctx, id, a.PresetID)
	case ActionClearMessage:
		live, err = actions.ClearHostMessage(ctx, id)
	case ActionInit:
		live, err = actions.InitializeState(ctx, id)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	if err != nil {
		return 0, err
	}
	return live.State.Version, nil
}

// writePump writes queued frames and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}

			payload, err := json.Marshal(frame)
			if err != nil {
				logging.Error().Err(err).Str("frame_type", frame.Type).Msg("failed to marshal frame")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
