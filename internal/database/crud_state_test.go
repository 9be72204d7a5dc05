// Hudson - Live Shopping Session Control
// Copyright 2026 Pavoi
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pavoi/hudson

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pavoi/hudson/internal/models"
)

func TestEnsureState(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	set, _ := seedSetWithEntries(t, db, 1)

	st, created, err := db.EnsureState(ctx, set.ID)
	if err != nil {
		t.Fatalf("EnsureState() error = %v", err)
	}
	if !created {
		t.Error("EnsureState() created = false on first call")
	}
	if st.CurrentEntryID != nil || st.CurrentImageIndex != 0 || st.HostMessage != nil {
		t.Errorf("EnsureState() = %+v, want empty default row", st)
	}

	again, created, err := db.EnsureState(ctx, set.ID)
	if err != nil {
		t.Fatalf("EnsureState(again) error = %v", err)
	}
	if created {
		t.Error("EnsureState(again) created = true, want idempotent")
	}
	if again.Version != st.Version {
		t.Errorf("EnsureState(again) version = %d, want unchanged %d", again.Version, st.Version)
	}

	if _, _, err := db.EnsureState(ctx, 9999); !errors.Is(err, models.ErrProductSetNotFound) {
		t.Errorf("EnsureState(missing set) error = %v, want ErrProductSetNotFound", err)
	}
}

func TestUpdateState(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	set, entries := seedSetWithEntries(t, db, 3, 0)

	t.Run("lazily creates and writes", func(t *testing.T) {
		st, changed, err := db.UpdateState(ctx, set.ID, func(ctx context.Context, tx *StateTx, cur *models.ProductSetState) (*models.ProductSetState, error) {
			e, err := tx.EntryAtPosition(ctx, 1)
			if err != nil {
				return nil, err
			}
			if e.ImageCount != 3 {
				t.Errorf("EntryAtPosition(1).ImageCount = %d, want 3", e.ImageCount)
			}
			cur.CurrentEntryID = &e.ID
			cur.CurrentImageIndex = 0
			return cur, nil
		})
		if err != nil {
			t.Fatalf("UpdateState() error = %v", err)
		}
		if !changed {
			t.Fatal("UpdateState() changed = false")
		}
		if st.Version != 2 {
			t.Errorf("Version = %d, want 2 (created at 1, written once)", st.Version)
		}
		if st.CurrentEntryID == nil || *st.CurrentEntryID != entries[0].ID {
			t.Errorf("CurrentEntryID = %v, want %d", st.CurrentEntryID, entries[0].ID)
		}
	})

	t.Run("nil result is a no-op", func(t *testing.T) {
		before, _ := db.GetState(ctx, set.ID)
		st, changed, err := db.UpdateState(ctx, set.ID, func(context.Context, *StateTx, *models.ProductSetState) (*models.ProductSetState, error) {
			return nil, nil
		})
		if err != nil {
			t.Fatalf("UpdateState() error = %v", err)
		}
		if changed {
			t.Error("UpdateState() changed = true for no-op")
		}
		if st.Version != before.Version {
			t.Errorf("Version = %d, want unchanged %d", st.Version, before.Version)
		}
	})

	t.Run("error aborts", func(t *testing.T) {
		before, _ := db.GetState(ctx, set.ID)
		_, _, err := db.UpdateState(ctx, set.ID, func(_ context.Context, _ *StateTx, cur *models.ProductSetState) (*models.ProductSetState, error) {
			cur.CurrentImageIndex = 2
			return nil, models.ErrEndOfProductSet
		})
		if !errors.Is(err, models.ErrEndOfProductSet) {
			t.Fatalf("UpdateState() error = %v, want ErrEndOfProductSet", err)
		}
		after, _ := db.GetState(ctx, set.ID)
		if after.Version != before.Version || after.CurrentImageIndex != before.CurrentImageIndex {
			t.Errorf("state changed after aborted transition: %+v -> %+v", before, after)
		}
	})

	t.Run("host message round trip", func(t *testing.T) {
		msg := &models.HostMessage{
			ID:     uuid.NewString(),
			Text:   "Only 5 left!",
			Color:  models.ColorRed,
			SentAt: time.Now(),
		}
		_, _, err := db.UpdateState(ctx, set.ID, func(_ context.Context, _ *StateTx, cur *models.ProductSetState) (*models.ProductSetState, error) {
			cur.HostMessage = msg
			return cur, nil
		})
		if err != nil {
			t.Fatalf("UpdateState() error = %v", err)
		}

		got, err := db.GetState(ctx, set.ID)
		if err != nil {
			t.Fatalf("GetState() error = %v", err)
		}
		if got.HostMessage == nil {
			t.Fatal("HostMessage = nil after write")
		}
		if got.HostMessage.ID != msg.ID || got.HostMessage.Text != msg.Text || got.HostMessage.Color != msg.Color {
			t.Errorf("HostMessage = %+v, want %+v", got.HostMessage, msg)
		}
		if !got.HostMessage.SentAt.Equal(msg.SentAt) {
			t.Errorf("SentAt = %v, want %v", got.HostMessage.SentAt, msg.SentAt)
		}

		_, _, err = db.UpdateState(ctx, set.ID, func(_ context.Context, _ *StateTx, cur *models.ProductSetState) (*models.ProductSetState, error) {
			cur.HostMessage = nil
			return cur, nil
		})
		if err != nil {
			t.Fatalf("UpdateState(clear) error = %v", err)
		}
		got, _ = db.GetState(ctx, set.ID)
		if got.HostMessage != nil {
			t.Errorf("HostMessage = %+v after clear, want nil", got.HostMessage)
		}
	})

	t.Run("entry lookups", func(t *testing.T) {
		_, _, err := db.UpdateState(ctx, set.ID, func(ctx context.Context, tx *StateTx, _ *models.ProductSetState) (*models.ProductSetState, error) {
			n, err := tx.EntryCount(ctx)
			if err != nil || n != 2 {
				t.Errorf("EntryCount() = %d, %v, want 2", n, err)
			}
			e, err := tx.EntryByID(ctx, entries[1].ID)
			if err != nil || e.Position != 2 || e.ImageCount != 0 {
				t.Errorf("EntryByID() = %+v, %v, want position 2 with no images", e, err)
			}
			if _, err := tx.EntryAtPosition(ctx, 3); !errors.Is(err, models.ErrEntryNotFound) {
				t.Errorf("EntryAtPosition(3) error = %v, want ErrEntryNotFound", err)
			}
			return nil, nil
		})
		if err != nil {
			t.Fatalf("UpdateState() error = %v", err)
		}
	})

	t.Run("missing set", func(t *testing.T) {
		_, _, err := db.UpdateState(ctx, 9999, func(context.Context, *StateTx, *models.ProductSetState) (*models.ProductSetState, error) {
			t.Error("transition must not run for a missing set")
			return nil, nil
		})
		if !errors.Is(err, models.ErrProductSetNotFound) {
			t.Errorf("UpdateState(missing) error = %v, want ErrProductSetNotFound", err)
		}
	})
}

func TestGetLiveState(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	set, entries := seedSetWithEntries(t, db, 2, 1)

	if _, err := db.GetLiveState(ctx, set.ID); !errors.Is(err, models.ErrStateNotFound) {
		t.Errorf("GetLiveState() before init error = %v, want ErrStateNotFound", err)
	}
	if _, _, err := db.EnsureState(ctx, set.ID); err != nil {
		t.Fatalf("EnsureState() error = %v", err)
	}

	live, err := db.GetLiveState(ctx, set.ID)
	if err != nil {
		t.Fatalf("GetLiveState() error = %v", err)
	}
	if live.Current != nil || live.EntryCount != 2 {
		t.Errorf("GetLiveState() = %+v, want no current entry and 2 entries", live)
	}

	name := "Featured"
	override := int64(1500)
	if _, err := db.UpdateEntryOverrides(ctx, set.ID, entries[0].ID, models.EntryOverrides{
		DisplayName:           &name,
		OriginalPriceOverride: &override,
	}); err != nil {
		t.Fatalf("UpdateEntryOverrides() error = %v", err)
	}
	if _, _, err := db.UpdateState(ctx, set.ID, func(_ context.Context, _ *StateTx, cur *models.ProductSetState) (*models.ProductSetState, error) {
		cur.CurrentEntryID = &entries[0].ID
		cur.CurrentImageIndex = 1
		return cur, nil
	}); err != nil {
		t.Fatalf("UpdateState() error = %v", err)
	}

	live, err = db.GetLiveState(ctx, set.ID)
	if err != nil {
		t.Fatalf("GetLiveState() error = %v", err)
	}
	c := live.Current
	if c == nil {
		t.Fatal("Current = nil, want resolved entry")
	}
	if c.Name != name {
		t.Errorf("Name = %q, want override %q", c.Name, name)
	}
	if c.OriginalPriceCents != override {
		t.Errorf("OriginalPriceCents = %d, want override %d", c.OriginalPriceCents, override)
	}
	if c.ImageCount != 2 || len(c.ImageURLs) != 2 {
		t.Errorf("images = %d (%v), want 2", c.ImageCount, c.ImageURLs)
	}
	if c.Position != 1 {
		t.Errorf("Position = %d, want 1", c.Position)
	}
	if live.State.CurrentImageIndex != 1 {
		t.Errorf("CurrentImageIndex = %d, want 1", live.State.CurrentImageIndex)
	}
}
