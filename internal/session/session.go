// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session provides the SQLite-backed session manager and adapts it to
// the durable storage the auth store writes the principal to.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// DefaultLifetime is how long a session lives without activity limits.
const DefaultLifetime = 24 * time.Hour

// SecureCookieName is used in production, where cookies are Secure.
const SecureCookieName = "__Host-folio-session"

// New creates a session manager on the SQLite store. Cookies are
// browser-session cookies unless the user asks to be remembered.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = sqlite3store.New(db)

	sm.Lifetime = DefaultLifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Persist = false
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = SecureCookieName
	}

	return sm
}

// KeyStore exposes one session manager as durable key/value storage bound to
// the request context.
type KeyStore struct {
	sm *scs.SessionManager
}

// NewKeyStore wraps sm.
func NewKeyStore(sm *scs.SessionManager) *KeyStore {
	return &KeyStore{sm: sm}
}

// Get returns the bytes stored under key.
func (k *KeyStore) Get(ctx context.Context, key string) ([]byte, bool) {
	if !k.sm.Exists(ctx, key) {
		return nil, false
	}
	return k.sm.GetBytes(ctx, key), true
}

// Put stores value under key.
func (k *KeyStore) Put(ctx context.Context, key string, value []byte) {
	k.sm.Put(ctx, key, value)
}

// Remove deletes key.
func (k *KeyStore) Remove(ctx context.Context, key string) {
	k.sm.Remove(ctx, key)
}
