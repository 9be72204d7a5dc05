// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package liveset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pavoi/hudson/internal/database"
	"github.com/pavoi/hudson/internal/logging"
	"github.com/pavoi/hudson/internal/metrics"
	"github.com/pavoi/hudson/internal/models"
)

// MaxToggleKeyLength bounds ui toggle keys.
const MaxToggleKeyLength = 64

// Broadcaster publishes live state and ui toggles.
// Satisfied by *broadcast.Publisher.
type Broadcaster interface {
	PublishState(ctx context.Context, s *models.LiveState) error
	PublishUI(ctx context.Context, t *models.UIToggle) error
}

// Service runs state operations for product sets.
type Service struct {
	db    *database.DB
	pub   Broadcaster
	locks *setLocks
	now   func() time.Time
}

// NewService creates a Service.
func NewService(db *database.DB, pub Broadcaster) *Service {
	return &Service{
		db:    db,
		pub:   pub,
		locks: newSetLocks(),
		now:   time.Now,
	}
}

// JumpToProduct shows the entry at a 1-based position with its first image.
func (s *Service) JumpToProduct(ctx context.Context, setID int64, position int) (*models.LiveState, error) {
	return s.mutate(ctx, "jump", setID, jumpTo(position))
}

// AdvanceToNextProduct shows the entry after the current one, or the first
// entry when none is shown. Fails with ErrEndOfProductSet at the end.
func (s *Service) AdvanceToNextProduct(ctx context.Context, setID int64) (*models.LiveState, error) {
	return s.mutate(ctx, "next", setID, advance)
}

// GoToPreviousProduct shows the entry before the current one. Fails with
// ErrStartOfProductSet at position 1 or when no entry is shown.
func (s *Service) GoToPreviousProduct(ctx context.Context, setID int64) (*models.LiveState, error) {
	return s.mutate(ctx, "previous", setID, retreat)
}

// CycleProductImage moves to the next or previous image of the current entry,
// wrapping at both ends. Without a current entry or images it is a no-op.
func (s *Service) CycleProductImage(ctx context.Context, setID int64, direction string) (*models.LiveState, error) {
	if err := ValidateDirection(direction); err != nil {
		s.record(ctx, "cycle_image", setID, time.Now(), false, nil, err)
		return nil, err
	}
	return s.mutate(ctx, "cycle_image", setID, cycleImage(direction))
}

// SetImageIndex shows image index of the current entry. An index outside the
// entry's images is ignored: the current state is returned and nothing is
// written or broadcast.
func (s *Service) SetImageIndex(ctx context.Context, setID int64, index int) (*models.LiveState, error) {
	return s.mutate(ctx, "set_image", setID, setImageIndex(index))
}

// SendHostMessage replaces the host message.
func (s *Service) SendHostMessage(ctx context.Context, setID int64, text string, color models.MessageColor) (*models.LiveState, error) {
	return s.sendMessage(ctx, "send_message", setID, text, color)
}

// SendPresetMessage sends a preset of the set's brand as the host message.
func (s *Service) SendPresetMessage(ctx context.Context, setID, presetID int64) (*models.LiveState, error) {
	const op = "send_preset"
	start := time.Now()

	preset, err := s.db.GetPreset(ctx, presetID)
	if err != nil {
		s.record(ctx, op, setID, start, false, nil, err)
		return nil, err
	}
	brandID, err := s.db.ProductSetBrand(ctx, setID)
	if err != nil {
		s.record(ctx, op, setID, start, false, nil, err)
		return nil, err
	}
	if preset.BrandID != brandID {
		s.record(ctx, op, setID, start, false, nil, models.ErrPresetNotFound)
		return nil, models.ErrPresetNotFound
	}
	return s.sendMessage(ctx, op, setID, preset.Text, preset.Color)
}

func (s *Service) sendMessage(ctx context.Context, op string, setID int64, text string, color models.MessageColor) (*models.LiveState, error) {
	if err := ValidateMessage(text, color); err != nil {
		s.record(ctx, op, setID, time.Now(), false, nil, err)
		return nil, err
	}
	msg := &models.HostMessage{
		ID:     uuid.NewString(),
		Text:   text,
		Color:  color,
		SentAt: s.now().UTC(),
	}
	return s.mutate(ctx, op, setID, setMessage(msg))
}

// ClearHostMessage removes the host message. Clearing an empty message is a no-op.
func (s *Service) ClearHostMessage(ctx context.Context, setID int64) (*models.LiveState, error) {
	return s.mutate(ctx, "clear_message", setID, clearMessage)
}

// InitializeState creates the set's state row if absent and returns the live
// state. Idempotent; a newly created row is broadcast.
func (s *Service) InitializeState(ctx context.Context, setID int64) (live *models.LiveState, err error) {
	start := time.Now()
	created := false
	defer func() { s.record(ctx, "init", setID, start, created, live, err) }()

	unlock := s.locks.lock(setID)
	defer unlock()

	if _, created, err = s.db.EnsureState(ctx, setID); err != nil {
		return nil, err
	}
	if live, err = s.db.GetLiveState(ctx, setID); err != nil {
		return nil, err
	}
	if created {
		s.broadcast(ctx, live)
	}
	return live, nil
}

// GetLiveState returns the live state, creating the state row on first use.
func (s *Service) GetLiveState(ctx context.Context, setID int64) (*models.LiveState, error) {
	live, err := s.db.GetLiveState(ctx, setID)
	if errors.Is(err, models.ErrStateNotFound) {
		return s.InitializeState(ctx, setID)
	}
	return live, err
}

// SetUIToggle publishes an ephemeral view toggle on the set's ui topic.
// Nothing is stored.
func (s *Service) SetUIToggle(ctx context.Context, setID int64, key string, value bool) (toggle *models.UIToggle, err error) {
	start := time.Now()
	defer func() { s.record(ctx, "ui_toggle", setID, start, err == nil, nil, err) }()

	key = strings.TrimSpace(key)
	if key == "" || len(key) > MaxToggleKeyLength {
		return nil, fmt.Errorf("%w: key must be 1..%d characters", models.ErrInvalidToggle, MaxToggleKeyLength)
	}
	if _, err := s.db.ProductSetBrand(ctx, setID); err != nil {
		return nil, err
	}

	toggle = &models.UIToggle{
		ProductSetID: setID,
		Key:          key,
		Value:        value,
		SentAt:       s.now().UTC(),
	}
	if err := s.pub.PublishUI(ctx, toggle); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBroadcastUnavailable, err)
	}
	return toggle, nil
}

// AddEntry appends a product to the set and rebroadcasts the live state.
func (s *Service) AddEntry(ctx context.Context, setID, productID int64) (entry *models.ProductSetEntry, err error) {
	err = s.editEntries(ctx, "add_entry", setID, func() error {
		entry, err = s.db.AddEntry(ctx, setID, productID)
		return err
	})
	return entry, err
}

// ReorderEntries assigns positions 1..N in the given order and rebroadcasts.
func (s *Service) ReorderEntries(ctx context.Context, setID int64, entryIDs []int64) error {
	return s.editEntries(ctx, "reorder", setID, func() error {
		return s.db.ReorderEntries(ctx, setID, entryIDs)
	})
}

// UpdateEntry changes an entry's overrides and rebroadcasts.
func (s *Service) UpdateEntry(ctx context.Context, setID, entryID int64, o models.EntryOverrides) (entry *models.ProductSetEntry, err error) {
	err = s.editEntries(ctx, "update_entry", setID, func() error {
		entry, err = s.db.UpdateEntryOverrides(ctx, setID, entryID, o)
		return err
	})
	return entry, err
}

// RemoveEntry deletes an entry and rebroadcasts. If it was on screen the
// state's entry pointer is cleared; cleared reports whether that happened.
func (s *Service) RemoveEntry(ctx context.Context, setID, entryID int64) (cleared bool, err error) {
	err = s.editEntries(ctx, "remove_entry", setID, func() error {
		cleared, err = s.db.RemoveEntry(ctx, setID, entryID)
		return err
	})
	return cleared, err
}

// mutate runs fn on the set's state row under the set lock and broadcasts
// the persisted result when it changed.
func (s *Service) mutate(ctx context.Context, op string, setID int64, fn transition) (live *models.LiveState, err error) {
	start := time.Now()
	changed := false
	defer func() { s.record(ctx, op, setID, start, changed, live, err) }()

	unlock := s.locks.lock(setID)
	defer unlock()

	_, changed, err = s.db.UpdateState(ctx, setID,
		func(ctx context.Context, tx *database.StateTx, cur *models.ProductSetState) (*models.ProductSetState, error) {
			return fn(ctx, tx, cur)
		})
	if err != nil {
		return nil, err
	}

	if live, err = s.db.GetLiveState(ctx, setID); err != nil {
		return nil, fmt.Errorf("failed to read back state: %w", err)
	}
	if changed {
		s.broadcast(ctx, live)
	}
	return live, nil
}

// editEntries runs an entry edit under the set lock and rebroadcasts the live
// state if the set has one.
func (s *Service) editEntries(ctx context.Context, op string, setID int64, fn func() error) (err error) {
	start := time.Now()
	var live *models.LiveState
	defer func() { s.record(ctx, op, setID, start, err == nil, live, err) }()

	unlock := s.locks.lock(setID)
	defer unlock()

	if err = fn(); err != nil {
		return err
	}

	live, readErr := s.db.GetLiveState(ctx, setID)
	switch {
	case errors.Is(readErr, models.ErrStateNotFound):
		return nil
	case readErr != nil:
		logging.Ctx(ctx).Error().Err(readErr).Int64("product_set_id", setID).Msg("Failed to read state for rebroadcast")
		return nil
	}
	s.broadcast(ctx, live)
	return nil
}

func (s *Service) broadcast(ctx context.Context, live *models.LiveState) {
	if err := s.pub.PublishState(ctx, live); err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Int64("product_set_id", live.ProductSetID).
			Int64("version", live.State.Version).
			Msg("State broadcast failed")
	}
}

func (s *Service) record(ctx context.Context, op string, setID int64, start time.Time, changed bool, live *models.LiveState, err error) {
	result := metrics.ResultOK
	switch {
	case err == nil && !changed:
		result = metrics.ResultNoop
	case err == nil:
	case models.IsRangeError(err):
		result = metrics.ResultRejected
	case models.IsNotFound(err):
		result = metrics.ResultNotFound
	default:
		result = metrics.ResultError
	}
	metrics.RecordStateMutation(op, result, time.Since(start))

	switch result {
	case metrics.ResultOK, metrics.ResultNoop:
		event := logging.Ctx(ctx).Debug().Str("op", op).Int64("product_set_id", setID).Str("result", result)
		if live != nil {
			event = event.Int64("version", live.State.Version)
		}
		event.Msg("State operation")
	case metrics.ResultError:
		logging.Ctx(ctx).Error().Err(err).Str("op", op).Int64("product_set_id", setID).Msg("State operation failed")
	default:
		logging.Ctx(ctx).Warn().Err(err).Str("op", op).Int64("product_set_id", setID).Str("result", result).Msg("State operation rejected")
	}
}
