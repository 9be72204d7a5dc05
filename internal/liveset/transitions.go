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
	"unicode/utf8"

	"github.com/pavoi/hudson/internal/models"
)

// Image cycling directions.
const (
	DirectionNext     = "next"
	DirectionPrevious = "previous"
)

// Entries looks up entries of the set whose state row is being changed.
// Satisfied by *database.StateTx.
type Entries interface {
	EntryCount(ctx context.Context) (int, error)
	EntryAtPosition(ctx context.Context, position int) (*models.EntrySummary, error)
	EntryByID(ctx context.Context, entryID int64) (*models.EntrySummary, error)
}

// transition computes the next state from cur, a private copy of the locked
// row. A nil state with a nil error means no change.
type transition func(ctx context.Context, entries Entries, cur *models.ProductSetState) (*models.ProductSetState, error)

// currentEntry resolves cur's entry pointer. A pointer to a missing entry is
// treated as no current entry.
func currentEntry(ctx context.Context, entries Entries, cur *models.ProductSetState) (*models.EntrySummary, error) {
	if cur.CurrentEntryID == nil {
		return nil, nil
	}
	e, err := entries.EntryByID(ctx, *cur.CurrentEntryID)
	if errors.Is(err, models.ErrEntryNotFound) {
		return nil, nil
	}
	return e, err
}

func showEntry(cur *models.ProductSetState, e *models.EntrySummary) *models.ProductSetState {
	id := e.ID
	cur.CurrentEntryID = &id
	cur.CurrentImageIndex = 0
	return cur
}

func jumpTo(position int) transition {
	return func(ctx context.Context, entries Entries, cur *models.ProductSetState) (*models.ProductSetState, error) {
		count, err := entries.EntryCount(ctx)
		if err != nil {
			return nil, err
		}
		if position < 1 || position > count {
			return nil, fmt.Errorf("%w: position %d outside 1..%d", models.ErrInvalidPosition, position, count)
		}
		e, err := entries.EntryAtPosition(ctx, position)
		if err != nil {
			return nil, err
		}
		return showEntry(cur, e), nil
	}
}

func advance(ctx context.Context, entries Entries, cur *models.ProductSetState) (*models.ProductSetState, error) {
	count, err := entries.EntryCount(ctx)
	if err != nil {
		return nil, err
	}
	e, err := currentEntry(ctx, entries, cur)
	if err != nil {
		return nil, err
	}

	next := 1
	if e != nil {
		next = e.Position + 1
	}
	if next > count {
		return nil, models.ErrEndOfProductSet
	}

	target, err := entries.EntryAtPosition(ctx, next)
	if err != nil {
		return nil, err
	}
	return showEntry(cur, target), nil
}

func retreat(ctx context.Context, entries Entries, cur *models.ProductSetState) (*models.ProductSetState, error) {
	e, err := currentEntry(ctx, entries, cur)
	if err != nil {
		return nil, err
	}
	if e == nil || e.Position <= 1 {
		return nil, models.ErrStartOfProductSet
	}

	target, err := entries.EntryAtPosition(ctx, e.Position-1)
	if err != nil {
		return nil, err
	}
	return showEntry(cur, target), nil
}

// cycleImage wraps around the current entry's images. Without a current
// entry or images it changes nothing.
func cycleImage(direction string) transition {
	return func(ctx context.Context, entries Entries, cur *models.ProductSetState) (*models.ProductSetState, error) {
		e, err := currentEntry(ctx, entries, cur)
		if err != nil {
			return nil, err
		}
		if e == nil || e.ImageCount == 0 {
			return nil, nil
		}

		k := e.ImageCount
		i := cur.CurrentImageIndex % k
		switch direction {
		case DirectionNext:
			cur.CurrentImageIndex = (i + 1) % k
		case DirectionPrevious:
			cur.CurrentImageIndex = (i - 1 + k) % k
		}
		return cur, nil
	}
}

// setImageIndex ignores out of range indexes instead of failing, unlike
// cycleImage which always lands in range.
func setImageIndex(index int) transition {
	return func(ctx context.Context, entries Entries, cur *models.ProductSetState) (*models.ProductSetState, error) {
		e, err := currentEntry(ctx, entries, cur)
		if err != nil {
			return nil, err
		}
		if e == nil || index < 0 || index >= e.ImageCount {
			return nil, nil
		}
		cur.CurrentImageIndex = index
		return cur, nil
	}
}

func setMessage(msg *models.HostMessage) transition {
	return func(_ context.Context, _ Entries, cur *models.ProductSetState) (*models.ProductSetState, error) {
		cur.HostMessage = msg
		return cur, nil
	}
}

func clearMessage(_ context.Context, _ Entries, cur *models.ProductSetState) (*models.ProductSetState, error) {
	if cur.HostMessage == nil {
		return nil, nil
	}
	cur.HostMessage = nil
	return cur, nil
}

// ValidateMessage checks host message text and color.
func ValidateMessage(text string, color models.MessageColor) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text is empty", models.ErrInvalidMessage)
	}
	if n := utf8.RuneCountInString(text); n > models.MaxHostMessageLength {
		return fmt.Errorf("%w: text is %d characters, max %d", models.ErrInvalidMessage, n, models.MaxHostMessageLength)
	}
	if !color.Valid() {
		return fmt.Errorf("%w: color %q is not in the palette", models.ErrInvalidMessage, color)
	}
	return nil
}

// ValidateDirection checks an image cycling direction.
func ValidateDirection(direction string) error {
	if direction != DirectionNext && direction != DirectionPrevious {
		return fmt.Errorf("%w: %q", models.ErrInvalidDirection, direction)
	}
	return nil
}
