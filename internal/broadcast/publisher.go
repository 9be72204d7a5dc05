// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package broadcast

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/metrics"
	"github.com/pavoi/hudson/internal/models"
	"github.com/pavoi/hudson/internal/wal"
)

var (
	// ErrPublisherClosed is returned after Close.
	ErrPublisherClosed = errors.New("publisher is closed")
	// ErrPublishTimeout is returned when the transport does not accept a
	// message within the publish timeout.
	ErrPublishTimeout = errors.New("publish timed out")
)

// Publisher encodes broadcast events and hands them to the transport.
type Publisher struct {
	pub     message.Publisher
	breaker *gobreaker.CircuitBreaker[interface{}]
	wal     *wal.Store
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps pub. store may be nil, in which case failed state
// snapshots are only logged.
func NewPublisher(pub message.Publisher, breaker *gobreaker.CircuitBreaker[interface{}], store *wal.Store, timeout time.Duration) *Publisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Publisher{
		pub:     pub,
		breaker: breaker,
		wal:     store,
		timeout: timeout,
	}
}

// PublishState publishes a state_changed event on the set's state topic.
// When delivery fails the snapshot is parked in the WAL and the publish error
// is returned; the caller must not treat it as a failed mutation.
func (p *Publisher) PublishState(ctx context.Context, s *models.LiveState) error {
	event, err := models.NewStateChangedEvent(s)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal state event: %w", err)
	}

	topic := models.StateTopic(s.ProductSetID)
	err = p.publish(ctx, topic, payload)
	metrics.RecordBroadcast(models.TopicKindState, err)

	if p.wal == nil {
		return err
	}
	if err != nil {
		if parkErr := p.wal.Park(ctx, topic, payload, event.Version); parkErr != nil {
			logging.Ctx(ctx).Error().Err(parkErr).Str("topic", topic).Msg("Failed to park undelivered state")
		}
		return err
	}
	if supErr := p.wal.Supersede(ctx, topic, event.Version); supErr != nil && !errors.Is(supErr, wal.ErrWALClosed) {
		logging.Ctx(ctx).Warn().Err(supErr).Str("topic", topic).Msg("Failed to supersede parked state")
	}
	return nil
}

// PublishUI publishes a ui_toggled event on the set's ui topic.
func (p *Publisher) PublishUI(ctx context.Context, t *models.UIToggle) error {
	event, err := models.NewUIToggledEvent(t)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ui event: %w", err)
	}
	err = p.publish(ctx, models.UITopic(t.ProductSetID), payload)
	metrics.RecordBroadcast(models.TopicKindUI, err)
	return err
}

// PublishRaw publishes an already encoded event. Used by the WAL retry loop.
func (p *Publisher) PublishRaw(ctx context.Context, topic string, payload []byte) error {
	return p.publish(ctx, topic, payload)
}

func (p *Publisher) publish(ctx context.Context, topic string, payload []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set("correlation_id", id)
	}

	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.publishWithTimeout(ctx, topic, msg)
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// publishWithTimeout bounds a publish. The in-process bus blocks until every
// subscriber acks, so a wedged subscriber must not hold the set lock forever.
func (p *Publisher) publishWithTimeout(ctx context.Context, topic string, msg *message.Message) error {
	done := make(chan error, 1)
	go func() {
		done <- p.pub.Publish(topic, msg)
	}()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return ErrPublishTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting publishes. The transport itself is closed by its owner.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Decode parses a transport message into a broadcast event.
func Decode(msg *message.Message) (*models.BroadcastEvent, error) {
	var event models.BroadcastEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return nil, fmt.Errorf("decode broadcast event %s: %w", msg.UUID, err)
	}
	return &event, nil
}
