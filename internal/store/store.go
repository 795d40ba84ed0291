// Package store owns one snapshot of application state, loads it from a
// storage slot at start and writes it back whole after every change.
//
// Snapshots are values built by pure functions and are never modified once
// installed; callers must treat what Snapshot returns as read-only.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/existflow/projectboard/internal/logger"
	"github.com/existflow/projectboard/internal/storage"
)

// Mutation derives the next snapshot from the current one and reports
// whether anything changed
type Mutation[S any] func(S) (S, bool)

// Store holds the current snapshot of type S
type Store[S any] struct {
	mu      sync.Mutex
	slot    storage.Slot
	log     *logger.Logger
	current S
	source  Source
}

// Source says where the initial snapshot came from
type Source int

const (
	FromSlot Source = iota
	FromSeedEmpty
	FromSeedCorrupt
)

func (s Source) String() string {
	switch s {
	case FromSlot:
		return "slot"
	case FromSeedEmpty:
		return "seed"
	case FromSeedCorrupt:
		return "seed (persisted state unreadable)"
	default:
		return "unknown"
	}
}

// Open reads the slot and decodes it as S. An empty slot, a read failure or
// undecodable data all fall back to seed(); none of them is an error.
//
// A seed that replaces an empty slot is written back at once so the ids it
// generated survive into the next session. A seed that replaces unreadable
// data is not, leaving that data in place until the first change.
func Open[S any](ctx context.Context, slot storage.Slot, seed func() S, log *logger.Logger) *Store[S] {
	s := &Store[S]{slot: slot, log: log}

	data, err := slot.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrEmpty):
		log.Info("No saved state, starting from seed")
		s.current, s.source = seed(), FromSeedEmpty
		if err := s.persist(ctx); err != nil {
			log.Warn("Failed to save seed", logger.F("error", err))
		}
	case err != nil:
		log.Error("Failed to read saved state, starting from seed", logger.F("error", err))
		s.current, s.source = seed(), FromSeedCorrupt
	default:
		var loaded S
		if err := json.Unmarshal(data, &loaded); err != nil {
			log.Warn("Saved state is corrupt, starting from seed",
				logger.F("error", err), logger.F("bytes", len(data)))
			s.current, s.source = seed(), FromSeedCorrupt
		} else {
			log.Debug("Loaded saved state", logger.F("bytes", len(data)))
			s.current, s.source = loaded, FromSlot
		}
	}

	return s
}

// Source reports where the initial snapshot came from
func (s *Store[S]) Source() Source {
	return s.source
}

// Snapshot returns the current state
func (s *Store[S]) Snapshot() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Apply runs m against the current snapshot. When m reports a change the
// result becomes current and is written to the slot. A failed write is
// returned, but the new snapshot stays current for the rest of the session.
func (s *Store[S]) Apply(ctx context.Context, op string, m Mutation[S]) (S, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := m(s.current)
	if !changed {
		s.log.Debug("Mutation rejected or not applicable", logger.F("op", op))
		return s.current, false, nil
	}
	s.current = next

	if err := s.persist(ctx); err != nil {
		s.log.Error("Failed to persist state", logger.F("op", op), logger.F("error", err))
		return next, true, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("State persisted", logger.F("op", op))
	return next, true, nil
}

func (s *Store[S]) persist(ctx context.Context) error {
	data, err := json.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return err
	}
	return nil
}

// Close releases the slot
func (s *Store[S]) Close() error {
	return s.slot.Close()
}
