// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/pavoi/hudson/internal/broadcast"
	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/metrics"
	"github.com/pavoi/hudson/internal/models"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates the context deadline was exceeded.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Actions executes view actions. Satisfied by *liveset.Service.
type Actions interface {
	JumpToProduct(ctx context.Context, setID int64, position int) (*models.LiveState, error)
	AdvanceToNextProduct(ctx context.Context, setID int64) (*models.LiveState, error)
	GoToPreviousProduct(ctx context.Context, setID int64) (*models.LiveState, error)
	CycleProductImage(ctx context.Context, setID int64, direction string) (*models.LiveState, error)
	SetImageIndex(ctx context.Context, setID int64, index int) (*models.LiveState, error)
	SendHostMessage(ctx context.Context, setID int64, text string, color models.MessageColor) (*models.LiveState, error)
	SendPresetMessage(ctx context.Context, setID, presetID int64) (*models.LiveState, error)
	ClearHostMessage(ctx context.Context, setID int64) (*models.LiveState, error)
	InitializeState(ctx context.Context, setID int64) (*models.LiveState, error)
	SetUIToggle(ctx context.Context, setID int64, key string, value bool) (*models.UIToggle, error)
}

// topicSub is the single transport subscription of one topic.
type topicSub struct {
	topic  string
	cancel context.CancelFunc

	mu      sync.RWMutex
	clients map[*Client]bool
}

func (ts *topicSub) add(c *Client) {
	ts.mu.Lock()
	ts.clients[c] = true
	ts.mu.Unlock()
}

// remove drops c and reports whether the topic has no clients left.
func (ts *topicSub) remove(c *Client) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.clients, c)
	return len(ts.clients) == 0
}

// sortedClients returns the topic's clients in ID order.
func (ts *topicSub) sortedClients() []*Client {
	ts.mu.RLock()
	clients := make([]*Client, 0, len(ts.clients))
	for c := range ts.clients {
		clients = append(clients, c)
	}
	ts.mu.RUnlock()

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// Hub maintains the connected clients and the topic subscriptions they need.
type Hub struct {
	subscriber message.Subscriber
	actions    Actions
	cfg        config.WebSocketConfig

	mu      sync.RWMutex
	running bool
	runCtx  context.Context
	clients map[*Client]bool
	topics  map[string]*topicSub
}

// NewHub creates a hub that subscribes through subscriber and executes view
// actions with actions.
func NewHub(subscriber message.Subscriber, actions Actions, cfg config.WebSocketConfig) *Hub {
	return &Hub{
		subscriber: subscriber,
		actions:    actions,
		cfg:        cfg,
		clients:    make(map[*Client]bool),
		topics:     make(map[string]*topicSub),
	}
}

// RunWithContext accepts clients until ctx is canceled, then closes every
// client and subscription and returns ctx.Err(). Designed for suture.
func (h *Hub) RunWithContext(ctx context.Context) error {
	h.mu.Lock()
	h.running = true
	h.runCtx = ctx
	h.mu.Unlock()

	logging.Info().Str("component", "websocket-hub").Msg("websocket hub started")

	<-ctx.Done()
	h.logGracefulShutdown(ctx)
	return ctx.Err()
}

// IsRunning reports whether the hub accepts clients.
func (h *Hub) IsRunning() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.running
}

// Register adds c and makes sure both topics of its set are subscribed.
// When it returns nil, every broadcast published afterwards reaches c.
func (h *Hub) Register(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return ErrHubNotRunning
	}

	var joined []*topicSub
	for _, topic := range []string{models.StateTopic(c.setID), models.UITopic(c.setID)} {
		ts, ok := h.topics[topic]
		if !ok {
			var err error
			if ts, err = h.subscribe(topic); err != nil {
				for _, j := range joined {
					h.leave(j, c)
				}
				return err
			}
			h.topics[topic] = ts
		}
		ts.add(c)
		joined = append(joined, ts)
	}

	h.clients[c] = true
	h.refreshGauges()
	logging.Info().
		Uint64("client_id", c.id).
		Int64("product_set_id", c.setID).
		Str("role", string(c.role)).
		Int("total_clients", len(h.clients)).
		Msg("websocket client connected")
	return nil
}

// Unregister removes c, closes its send channel and drops subscriptions that
// have no local clients left.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for _, topic := range []string{models.StateTopic(c.setID), models.UITopic(c.setID)} {
		if ts, ok := h.topics[topic]; ok {
			h.leave(ts, c)
		}
	}
	c.shutdown()

	h.refreshGauges()
	logging.Info().
		Uint64("client_id", c.id).
		Int64("product_set_id", c.setID).
		Int("total_clients", len(h.clients)).
		Msg("websocket client disconnected")
}

// leave must be called with h.mu held.
func (h *Hub) leave(ts *topicSub, c *Client) {
	if ts.remove(c) {
		ts.cancel()
		delete(h.topics, ts.topic)
		logging.Debug().Str("topic", ts.topic).Msg("unsubscribed from topic")
	}
}

// subscribe must be called with h.mu held. The consumer goroutine only takes
// the topic's own lock, so a publisher waiting for its ack never waits on h.mu.
func (h *Hub) subscribe(topic string) (*topicSub, error) {
	ctx, cancel := context.WithCancel(h.runCtx)
	msgs, err := h.subscriber.Subscribe(ctx, topic)
	if err != nil {
		cancel()
		return nil, err
	}

	ts := &topicSub{topic: topic, cancel: cancel, clients: make(map[*Client]bool)}
	go h.consume(ts, msgs)
	logging.Debug().Str("topic", topic).Msg("subscribed to topic")
	return ts, nil
}

func (h *Hub) consume(ts *topicSub, msgs <-chan *message.Message) {
	for msg := range msgs {
		event, err := broadcast.Decode(msg)
		if err != nil {
			logging.Warn().Err(err).Str("topic", ts.topic).Msg("dropping undecodable broadcast")
			msg.Ack()
			continue
		}
		for _, c := range ts.sortedClients() {
			c.deliver(event)
		}
		msg.Ack()
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetTopicCount returns the number of subscribed topics.
func (h *Hub) GetTopicCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics)
}

func (h *Hub) refreshGauges() {
	metrics.WSClients.Set(float64(len(h.clients)))
	metrics.WSTopicSubscriptions.Set(float64(len(h.topics)))
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.closeAll()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// closeAll closes every client in ID order and cancels every subscription.
func (h *Hub) closeAll() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.running = false

	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	for _, c := range clients {
		c.shutdown()
		delete(h.clients, c)
	}
	for topic, ts := range h.topics {
		ts.cancel()
		delete(h.topics, topic)
	}
	h.refreshGauges()
	return len(clients)
}
