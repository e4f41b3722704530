// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package entity

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/model"
)

// ErrMissingID is returned for an update whose payload carries no id.
var ErrMissingID = errors.New("update payload has no id")

// MissingIDMessage is the error shown for an update without a target id.
const MissingIDMessage = "Missing record id"

// Messages are the user-facing texts of one store. The failure texts are
// fallbacks used when the backend gives no message of its own.
type Messages struct {
	Created      string
	Updated      string
	FetchFailed  string
	CreateFailed string
	UpdateFailed string
}

// Config describes one entity store.
type Config struct {
	Name     string
	Resource apiclient.Resource
	Messages Messages

	// Normalize converts a list payload into records. Defaults to
	// model.Records.
	Normalize func(payload any) []model.Record
}

// Outcome is what a dispatch resolved to, as seen by its caller.
type Outcome struct {
	OK      bool
	Message string
	// Stale is set when a newer dispatch of the same kind superseded this one
	// and its result was dropped from the store.
	Stale bool
}

// Store is the concurrent-safe cache of one entity collection.
type Store struct {
	cfg     Config
	backend apiclient.Poster
	logger  *slog.Logger
	newID   func() string

	mu    sync.RWMutex
	state State
}

// New creates a store that reads and writes through backend.
func New(backend apiclient.Poster, cfg Config, logger *slog.Logger) *Store {
	if cfg.Normalize == nil {
		cfg.Normalize = model.Records
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		cfg:     cfg,
		backend: backend,
		logger:  logger.With("store", cfg.Name),
		newID:   uuid.NewString,
		state:   NewState(),
	}
}

// Name returns the store name.
func (s *Store) Name() string {
	return s.cfg.Name
}

// Resource returns the backend resource the store is bound to.
func (s *Store) Resource() apiclient.Resource {
	return s.cfg.Resource
}

// State returns a snapshot. Records are shared and must be treated as
// read-only.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Items = append([]model.Record(nil), s.state.Items...)
	return st
}

// Items returns a snapshot of the collection.
func (s *Store) Items() []model.Record {
	return s.State().Items
}

// Find returns the item with the given id.
func (s *Store) Find(id string) (model.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.state.Items {
		if item.MatchesID(id) {
			return item, true
		}
	}
	return nil, false
}

// Loaded reports whether at least one fetch has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Fetch.Status == model.StatusSucceeded
}

// dispatch marks op pending under a fresh request id.
func (s *Store) dispatch(op Op) string {
	id := s.newID()
	s.mu.Lock()
	s.state = Pending(s.state, op, id)
	s.mu.Unlock()
	s.logger.Debug("dispatch", "op", op, "request", id)
	return id
}

// resolve applies a transition and reports whether it was accepted.
func (s *Store) resolve(op Op, requestID string, apply func(State) (State, bool)) bool {
	s.mu.Lock()
	next, ok := apply(s.state)
	if ok {
		s.state = next
	}
	s.mu.Unlock()
	if !ok {
		s.logger.Debug("dropped stale resolution", "op", op, "request", requestID)
	}
	return ok
}

// FetchAll replaces the collection with the backend's list.
func (s *Store) FetchAll(ctx context.Context) Outcome {
	id := s.dispatch(OpFetch)

	env, err := s.backend.Post(ctx, s.cfg.Resource.List, nil)
	if err == nil {
		err = env.Err(s.cfg.Resource.List)
	}
	if err != nil {
		return s.fail(OpFetch, id, err, s.cfg.Messages.FetchFailed)
	}

	items := s.cfg.Normalize(env.Payload(s.cfg.Resource.ListKeys...))
	ok := s.resolve(OpFetch, id, func(st State) (State, bool) {
		return FetchFulfilled(st, id, items)
	})
	s.logger.Debug("fetched", "count", len(items), "applied", ok)
	return Outcome{OK: true, Stale: !ok}
}

// Create posts a new record. The collection is not changed; call FetchAll to
// see the record.
func (s *Store) Create(ctx context.Context, form *apiclient.Form) Outcome {
	id := s.dispatch(OpCreate)

	env, err := s.backend.Post(ctx, s.cfg.Resource.Create, form)
	if err == nil {
		err = env.Err(s.cfg.Resource.Create)
	}
	if err != nil {
		return s.fail(OpCreate, id, err, s.cfg.Messages.CreateFailed)
	}

	msg := s.cfg.Messages.Created
	ok := s.resolve(OpCreate, id, func(st State) (State, bool) {
		return CreateFulfilled(st, id, msg)
	})
	return Outcome{OK: true, Message: msg, Stale: !ok}
}

// Update posts changes to an existing record. The form must carry the
// target id. On success the record returned by the backend is merged into
// the cached item with the same id.
func (s *Store) Update(ctx context.Context, form *apiclient.Form) Outcome {
	id := s.dispatch(OpUpdate)

	if form.Get("id") == "" {
		return s.fail(OpUpdate, id, ErrMissingID, MissingIDMessage)
	}
	if !s.cfg.Resource.CanUpdate() {
		return s.fail(OpUpdate, id, errors.New("resource cannot be updated"), s.cfg.Messages.UpdateFailed)
	}

	env, err := s.backend.Post(ctx, s.cfg.Resource.Update, form)
	if err == nil {
		err = env.Err(s.cfg.Resource.Update)
	}
	if err != nil {
		return s.fail(OpUpdate, id, err, s.cfg.Messages.UpdateFailed)
	}

	updated, _ := model.AsRecord(env.Payload(s.cfg.Resource.ItemKeys...))
	msg := s.cfg.Messages.Updated
	ok := s.resolve(OpUpdate, id, func(st State) (State, bool) {
		return UpdateFulfilled(st, id, msg, updated)
	})
	return Outcome{OK: true, Message: msg, Stale: !ok}
}

func (s *Store) fail(op Op, requestID string, err error, fallback string) Outcome {
	msg := apiclient.Message(err, fallback)
	s.logger.Warn("backend operation failed", "op", op, "error", err)
	ok := s.resolve(op, requestID, func(st State) (State, bool) {
		return Rejected(st, op, requestID, msg)
	})
	return Outcome{Message: msg, Stale: !ok}
}
