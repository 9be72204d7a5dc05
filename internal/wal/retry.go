// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package wal

import (
	"context"
	"sync"
	"time"

	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/metrics"
)

// Publisher delivers an already encoded payload to a topic.
type Publisher interface {
	PublishRaw(ctx context.Context, topic string, payload []byte) error
}

// RetryLoop periodically republishes parked snapshots.
type RetryLoop struct {
	store     *Store
	publisher Publisher
	interval  time.Duration

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	stopDone chan struct{}
}

// NewRetryLoop creates a retry loop. A non-positive interval defaults to 5s.
func NewRetryLoop(store *Store, publisher Publisher, interval time.Duration) *RetryLoop {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &RetryLoop{store: store, publisher: publisher, interval: interval}
}

// Start runs one recovery pass, then retries on every tick until Stop or
// ctx cancellation.
func (r *RetryLoop) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true
	r.stopDone = make(chan struct{})

	go r.run(loopCtx, r.stopDone)

	logging.Info().Dur("interval", r.interval).Msg("WAL retry loop started")
	return nil
}

// Stop stops the loop and waits for the in-flight pass to finish.
func (r *RetryLoop) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.running = false
	done := r.stopDone
	r.mu.Unlock()

	<-done
	logging.Info().Msg("WAL retry loop stopped")
}

// IsRunning returns whether the loop is active.
func (r *RetryLoop) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *RetryLoop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	r.RetryPending(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RetryPending(ctx)
		}
	}
}

// RetryPending makes one pass over the parked snapshots and returns how many
// were delivered.
func (r *RetryLoop) RetryPending(ctx context.Context) int {
	entries, err := r.store.Pending(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logging.Error().Err(err).Msg("WAL retry: failed to read pending entries")
		}
		return 0
	}
	if len(entries) == 0 {
		return 0
	}

	delivered, failed := 0, 0
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}

		if err := r.publisher.PublishRaw(ctx, e.Topic, e.Payload); err != nil {
			failed++
			if recErr := r.store.RecordFailure(ctx, e.Topic, e.Version, err); recErr != nil {
				logging.Warn().Err(recErr).Str("topic", e.Topic).Msg("WAL retry: failed to record attempt")
			}
			continue
		}

		delivered++
		metrics.WALRedelivered.Inc()
		if err := r.store.Supersede(ctx, e.Topic, e.Version); err != nil {
			logging.Warn().Err(err).Str("topic", e.Topic).Msg("WAL retry: failed to remove delivered entry")
		}
	}

	logging.Info().
		Int("delivered", delivered).
		Int("failed", failed).
		Msg("WAL retry pass complete")
	return delivered
}
