// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package wal

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "error",
		Format: "console",
		Output: io.Discard,
	})
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(&config.WALConfig{Enabled: true, InMemory: true, EntryTTL: time.Hour})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// recordingPublisher records deliveries and fails while failing is set.
type recordingPublisher struct {
	mu        sync.Mutex
	failing   bool
	published map[string][]byte
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{published: make(map[string][]byte)}
}

func (p *recordingPublisher) PublishRaw(_ context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failing {
		return errors.New("transport down")
	}
	p.published[topic] = payload
	return nil
}

func (p *recordingPublisher) setFailing(v bool) {
	p.mu.Lock()
	p.failing = v
	p.mu.Unlock()
}

func (p *recordingPublisher) get(topic string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.published[topic]
	return b, ok
}

func TestStore_ParkKeepsLatestVersion(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	topic := "product_set:1:state"

	tests := []struct {
		name        string
		payload     string
		version     int64
		wantVersion int64
	}{
		{"first", `{"v":3}`, 3, 3},
		{"newer replaces", `{"v":5}`, 5, 5},
		{"older ignored", `{"v":4}`, 4, 5},
		{"same version replaces", `{"v":5,"again":true}`, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Park(ctx, topic, []byte(tt.payload), tt.version); err != nil {
				t.Fatalf("Park() error = %v", err)
			}
			e, err := s.Get(ctx, topic)
			if err != nil || e == nil {
				t.Fatalf("Get() = %v, %v", e, err)
			}
			if e.Version != tt.wantVersion {
				t.Errorf("Version = %d, want %d", e.Version, tt.wantVersion)
			}
		})
	}

	if got := s.Stats().PendingCount; got != 1 {
		t.Errorf("PendingCount = %d, want 1 (one entry per topic)", got)
	}
}

func TestStore_Supersede(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	topic := "product_set:2:state"

	if err := s.Park(ctx, topic, []byte(`{}`), 7); err != nil {
		t.Fatalf("Park() error = %v", err)
	}

	if err := s.Supersede(ctx, topic, 6); err != nil {
		t.Fatalf("Supersede(6) error = %v", err)
	}
	if e, _ := s.Get(ctx, topic); e == nil {
		t.Fatal("Supersede with an older version removed a newer entry")
	}

	if err := s.Supersede(ctx, topic, 8); err != nil {
		t.Fatalf("Supersede(8) error = %v", err)
	}
	if e, _ := s.Get(ctx, topic); e != nil {
		t.Errorf("entry still parked after Supersede(8): %+v", e)
	}

	if err := s.Supersede(ctx, "product_set:99:state", 1); err != nil {
		t.Errorf("Supersede(missing) error = %v, want nil", err)
	}
}

func TestStore_RecordFailure(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	topic := "product_set:3:state"

	if err := s.Park(ctx, topic, []byte(`{}`), 1); err != nil {
		t.Fatalf("Park() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.RecordFailure(ctx, topic, 1, errors.New("boom")); err != nil {
			t.Fatalf("RecordFailure() error = %v", err)
		}
	}
	e, _ := s.Get(ctx, topic)
	if e.Attempts != 2 || e.LastError != "boom" {
		t.Errorf("entry = %+v, want 2 attempts with last error", e)
	}
}

func TestStore_Closed(t *testing.T) {
	s, err := Open(&config.WALConfig{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.Park(context.Background(), "t", nil, 1); !errors.Is(err, ErrWALClosed) {
		t.Errorf("Park() on closed store error = %v, want ErrWALClosed", err)
	}
}

func TestStore_EmptyTopic(t *testing.T) {
	s := openTestStore(t)
	if err := s.Park(context.Background(), "", []byte(`{}`), 1); !errors.Is(err, ErrEmptyTopic) {
		t.Errorf("Park(\"\") error = %v, want ErrEmptyTopic", err)
	}
}

func TestStore_OnDiskSurvivesReopen(t *testing.T) {
	cfg := &config.WALConfig{Path: filepath.Join(t.TempDir(), "wal"), SyncWrites: true}
	ctx := context.Background()

	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.Park(ctx, "product_set:4:state", []byte(`{"ok":true}`), 9); err != nil {
		t.Fatalf("Park() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	pending, err := s.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 1 || pending[0].Version != 9 || string(pending[0].Payload) != `{"ok":true}` {
		t.Errorf("Pending() after reopen = %+v", pending)
	}
}

func TestRetryLoop_RetryPending(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	pub := newRecordingPublisher()
	loop := NewRetryLoop(s, pub, time.Hour)

	_ = s.Park(ctx, "product_set:1:state", []byte(`{"v":1}`), 1)
	_ = s.Park(ctx, "product_set:2:state", []byte(`{"v":2}`), 2)

	pub.setFailing(true)
	if n := loop.RetryPending(ctx); n != 0 {
		t.Errorf("RetryPending() while failing = %d, want 0", n)
	}
	if e, _ := s.Get(ctx, "product_set:1:state"); e == nil || e.Attempts != 1 {
		t.Errorf("entry after failed pass = %+v, want 1 attempt", e)
	}

	pub.setFailing(false)
	if n := loop.RetryPending(ctx); n != 2 {
		t.Errorf("RetryPending() = %d, want 2", n)
	}
	if got := s.Stats().PendingCount; got != 0 {
		t.Errorf("PendingCount = %d after delivery, want 0", got)
	}
	if b, ok := pub.get("product_set:2:state"); !ok || string(b) != `{"v":2}` {
		t.Errorf("published payload = %s, %v", b, ok)
	}
}

func TestRetryLoop_StartStop(t *testing.T) {
	s := openTestStore(t)
	pub := newRecordingPublisher()
	loop := NewRetryLoop(s, pub, 10*time.Millisecond)

	_ = s.Park(context.Background(), "product_set:5:state", []byte(`{}`), 1)

	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := loop.Start(context.Background()); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}
	if !loop.IsRunning() {
		t.Fatal("IsRunning() = false after Start")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := pub.get("product_set:5:state"); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, ok := pub.get("product_set:5:state"); !ok {
		t.Error("parked entry was not redelivered by the running loop")
	}

	loop.Stop()
	loop.Stop()
	if loop.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
}
