// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// route guarding, and request context handling.
package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/folio-admin/internal/auth"
	"github.com/olegiv/folio-admin/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyAuth ContextKey = "auth"
)

// Route paths the guards redirect to.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Gate selects which guard rule applies to a route.
type Gate int

const (
	// GateRequireAuth serves only signed-in requests.
	GateRequireAuth Gate = iota
	// GateRedirectIfAuth serves only signed-out requests.
	GateRedirectIfAuth
)

// Decide evaluates a guard. It returns the path to redirect to, or "" when
// the request may be served.
func Decide(gate Gate, authenticated bool) string {
	switch gate {
	case GateRequireAuth:
		if !authenticated {
			return LoginPath
		}
	case GateRedirectIfAuth:
		if authenticated {
			return HomePath
		}
	}
	return ""
}

// LoadAuth restores the auth store from durable storage once per request
// and puts it in the request context. It must run inside the session
// manager's LoadAndSave.
func LoadAuth(storage auth.Storage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := auth.Restore(r.Context(), storage)
			ctx := context.WithValue(r.Context(), ContextKeyAuth, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuth retrieves the auth store from the request context. Without
// LoadAuth it returns a signed-out store over throwaway memory storage.
func GetAuth(r *http.Request) *auth.Store {
	if store, ok := r.Context().Value(ContextKeyAuth).(*auth.Store); ok {
		return store
	}
	return auth.Restore(r.Context(), auth.NewMemoryStorage())
}

// GetPrincipal returns the signed-in principal, or nil.
func GetPrincipal(r *http.Request) *auth.Principal {
	return GetAuth(r).Principal()
}

func guard(gate Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if to := Decide(gate, GetAuth(r).IsAuthenticated()); to != "" {
				http.Redirect(w, r, to, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects signed-out requests to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return guard(GateRequireAuth)(next)
}

// RedirectIfAuth redirects signed-in requests away from the login page.
func RedirectIfAuth(next http.Handler) http.Handler {
	return guard(GateRedirectIfAuth)(next)
}

// RequestPath stores the request path in the context for the logging
// handler.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
