// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth tracks the signed-in administrator. The principal is kept in
// durable storage under a single key, written on login, removed on logout and
// read back once per request.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/model"
)

// StorageKey is the durable key holding the serialized principal.
const StorageKey = "user"

// Login messages.
const (
	LoginFailedMessage  = "Invalid username or password"
	LoginSuccessMessage = "Login successful!"
)

// Storage is durable key/value storage scoped to one browser session.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte)
	Remove(ctx context.Context, key string)
}

// Store holds the current principal, if any.
type Store struct {
	storage Storage

	mu        sync.RWMutex
	principal *Principal
}

// Restore reads the principal from storage. A missing or unreadable value
// leaves the store signed out; an unreadable one is also removed.
func Restore(ctx context.Context, storage Storage) *Store {
	s := &Store{storage: storage}

	raw, ok := storage.Get(ctx, StorageKey)
	if !ok || len(raw) == 0 {
		return s
	}

	var p Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		slog.Warn("discarding unreadable stored principal", "error", err)
		storage.Remove(ctx, StorageKey)
		return s
	}
	s.principal = &p
	return s
}

// Principal returns the signed-in principal or nil.
func (s *Store) Principal() *Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

// IsAuthenticated reports whether a principal is signed in.
func (s *Store) IsAuthenticated() bool {
	return s.Principal() != nil
}

// Login sets and persists the principal.
func (s *Store) Login(ctx context.Context, p Principal) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding principal: %w", err)
	}
	s.storage.Put(ctx, StorageKey, b)

	s.mu.Lock()
	s.principal = &p
	s.mu.Unlock()
	return nil
}

// Logout clears the principal and its persisted value.
func (s *Store) Logout(ctx context.Context) {
	s.storage.Remove(ctx, StorageKey)

	s.mu.Lock()
	s.principal = nil
	s.mu.Unlock()
}

// Authenticate checks credentials against the backend and builds the
// principal from its answer. The returned error renders through
// apiclient.Message with LoginFailedMessage as fallback.
func Authenticate(ctx context.Context, backend apiclient.Poster, in apiclient.LoginInput) (Principal, error) {
	in.Email = strings.TrimSpace(in.Email)

	env, err := backend.Post(ctx, apiclient.EndpointLogin, in.Form())
	if err != nil {
		return Principal{}, err
	}
	if err := env.Err(apiclient.EndpointLogin); err != nil {
		return Principal{}, err
	}

	fields := map[string]any{}
	if data, ok := model.AsRecord(env.Payload()); ok {
		fields = data.Clone()
	}

	token := env.Token()
	if token == "" {
		token = model.Text(fields["token"])
	}
	delete(fields, "token")
	delete(fields, "username")

	return Principal{Username: in.Email, Token: token, Fields: fields}, nil
}

// MemoryStorage is an in-process Storage, ignoring the context. It backs
// tests and single-user tooling.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

// Get implements Storage.
func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Put implements Storage.
func (m *MemoryStorage) Put(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Remove implements Storage.
func (m *MemoryStorage) Remove(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
