// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package wal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/pavoi/hudson/internal/config"
	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/metrics"
)

var (
	// ErrWALClosed is returned by operations on a closed store.
	ErrWALClosed = errors.New("wal is closed")
	// ErrEmptyTopic is returned when parking a payload without a topic.
	ErrEmptyTopic = errors.New("wal entry topic is empty")
)

// Entry is one parked broadcast.
type Entry struct {
	Topic         string          `json:"topic"`
	Payload       json.RawMessage `json:"payload"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	Attempts      int             `json:"attempts"`
	LastAttemptAt time.Time       `json:"last_attempt_at,omitempty"`
	LastError     string          `json:"last_error,omitempty"`
}

// Stats contains store counters for monitoring.
type Stats struct {
	PendingCount int64
	TotalParked  int64
	TotalRemoved int64
}

const prefixTopic = "topic:"

func topicKey(topic string) []byte {
	return []byte(prefixTopic + topic)
}

// Store is the BadgerDB-backed latest-per-topic WAL.
type Store struct {
	db  *badger.DB
	ttl time.Duration

	totalParked  atomic.Int64
	totalRemoved atomic.Int64

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store described by cfg.
func Open(cfg *config.WALConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(cfg.SyncWrites)
	}
	// Small values and few keys: keep Badger's footprint down.
	opts = opts.
		WithMemTableSize(16 << 20).
		WithValueLogFileSize(16 << 20).
		WithNumCompactors(2).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{db: db, ttl: cfg.EntryTTL}
	if n, err := s.count(); err == nil {
		metrics.WALPendingEntries.Set(float64(n))
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("WAL opened")
	return s, nil
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrWALClosed
	}
	return nil
}

func getEntry(txn *badger.Txn, topic string) (*Entry, error) {
	item, err := txn.Get(topicKey(topic))
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &e)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal entry: %w", err)
	}
	return &e, nil
}

func (s *Store) setEntry(txn *badger.Txn, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	be := badger.NewEntry(topicKey(e.Topic), data)
	if s.ttl > 0 {
		be = be.WithTTL(s.ttl)
	}
	return txn.SetEntry(be)
}

// Park stores payload as the pending snapshot for topic. A stored snapshot
// with a higher version is kept and the call is a no-op.
func (s *Store) Park(ctx context.Context, topic string, payload []byte, version int64) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if topic == "" {
		return ErrEmptyTopic
	}

	parked := false
	err := s.db.Update(func(txn *badger.Txn) error {
		existing, err := getEntry(txn, topic)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		case existing.Version > version:
			return nil
		}
		parked = true
		return s.setEntry(txn, &Entry{
			Topic:     topic,
			Payload:   append(json.RawMessage(nil), payload...),
			Version:   version,
			CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return fmt.Errorf("park %s: %w", topic, err)
	}

	if parked {
		s.totalParked.Add(1)
		s.refreshGauge()
		logging.Ctx(ctx).Warn().
			Str("topic", topic).
			Int64("version", version).
			Msg("Broadcast parked in WAL")
	}
	return nil
}

// Supersede drops the parked snapshot for topic if its version is not newer
// than version. Called after a snapshot was delivered by other means.
func (s *Store) Supersede(_ context.Context, topic string, version int64) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	removed := false
	err := s.db.Update(func(txn *badger.Txn) error {
		existing, err := getEntry(txn, topic)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if existing.Version > version {
			return nil
		}
		removed = true
		return txn.Delete(topicKey(topic))
	})
	if err != nil {
		return fmt.Errorf("supersede %s: %w", topic, err)
	}
	if removed {
		s.totalRemoved.Add(1)
		s.refreshGauge()
	}
	return nil
}

// Get returns the parked snapshot for topic, or nil.
func (s *Store) Get(_ context.Context, topic string) (*Entry, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	var e *Entry
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		e, err = getEntry(txn, topic)
		if errors.Is(err, badger.ErrKeyNotFound) {
			e = nil
			return nil
		}
		return err
	})
	return e, err
}

// Pending returns every parked snapshot.
func (s *Store) Pending(ctx context.Context) ([]*Entry, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	var entries []*Entry
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(prefixTopic)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return fmt.Errorf("unmarshal entry: %w", err)
			}
			entries = append(entries, &e)
		}
		return nil
	})
	return entries, err
}

// RecordFailure bumps the attempt counter of the parked snapshot at version.
func (s *Store) RecordFailure(_ context.Context, topic string, version int64, cause error) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		e, err := getEntry(txn, topic)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if e.Version != version {
			return nil
		}
		e.Attempts++
		e.LastAttemptAt = time.Now().UTC()
		if cause != nil {
			e.LastError = cause.Error()
		}
		return s.setEntry(txn, e)
	})
}

// Stats returns store counters.
func (s *Store) Stats() Stats {
	n, _ := s.count()
	return Stats{
		PendingCount: n,
		TotalParked:  s.totalParked.Load(),
		TotalRemoved: s.totalRemoved.Load(),
	}
}

func (s *Store) count() (int64, error) {
	var n int64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(prefixTopic)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

func (s *Store) refreshGauge() {
	if n, err := s.count(); err == nil {
		metrics.WALPendingEntries.Set(float64(n))
	}
}

// Close closes the underlying BadgerDB. Safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
