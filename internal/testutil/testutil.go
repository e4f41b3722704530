// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for folio-admin.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary session database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "folio-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// Call is one request received by a FakeBackend.
type Call struct {
	Endpoint apiclient.Endpoint
	Form     *apiclient.Form
}

// Response is a canned FakeBackend answer. A non-nil Err is returned as is.
type Response struct {
	Envelope apiclient.Envelope
	Err      error
}

// FakeBackend is an in-memory apiclient.Poster. Responses are served per
// endpoint in order; the last one repeats.
type FakeBackend struct {
	mu        sync.Mutex
	responses map[apiclient.Endpoint][]Response
	calls     []Call
}

// NewFakeBackend returns a backend with no canned responses.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{responses: make(map[apiclient.Endpoint][]Response)}
}

// On queues an envelope for endpoint.
func (f *FakeBackend) On(endpoint apiclient.Endpoint, env apiclient.Envelope) *FakeBackend {
	return f.queue(endpoint, Response{Envelope: env})
}

// Fail queues a transport failure for endpoint.
func (f *FakeBackend) Fail(endpoint apiclient.Endpoint, err error) *FakeBackend {
	return f.queue(endpoint, Response{Err: err})
}

func (f *FakeBackend) queue(endpoint apiclient.Endpoint, r Response) *FakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[endpoint] = append(f.responses[endpoint], r)
	return f
}

// Post implements apiclient.Poster.
func (f *FakeBackend) Post(_ context.Context, endpoint apiclient.Endpoint, form *apiclient.Form) (apiclient.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Endpoint: endpoint, Form: form})

	queue := f.responses[endpoint]
	if len(queue) == 0 {
		return nil, apiclient.ErrNetwork
	}
	r := queue[0]
	if len(queue) > 1 {
		f.responses[endpoint] = queue[1:]
	}
	return r.Envelope, r.Err
}

// Calls returns the requests received so far.
func (f *FakeBackend) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the requests received for endpoint.
func (f *FakeBackend) CallsTo(endpoint apiclient.Endpoint) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Endpoint == endpoint {
			out = append(out, c)
		}
	}
	return out
}
