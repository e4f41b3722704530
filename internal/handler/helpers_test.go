// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/auth"
	"github.com/olegiv/folio-admin/internal/entity"
	"github.com/olegiv/folio-admin/internal/middleware"
	"github.com/olegiv/folio-admin/internal/render"
	"github.com/olegiv/folio-admin/internal/session"
	"github.com/olegiv/folio-admin/internal/testutil"
	"github.com/olegiv/folio-admin/internal/validation"
	"github.com/olegiv/folio-admin/web"
)

// testMaxUpload is the upload limit used by handler tests.
const testMaxUpload = 1 << 20

// testEnv wires handlers to a fake backend, in-memory sessions and the real
// templates.
type testEnv struct {
	backend   *testutil.FakeBackend
	stores    *entity.Stores
	sm        *scs.SessionManager
	renderer  *render.Renderer
	validator *validation.Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sm := testSessionManager()
	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	backend := testutil.NewFakeBackend()
	return &testEnv{
		backend:   backend,
		stores:    entity.NewStores(backend, testutil.TestLoggerSilent()),
		sm:        sm,
		renderer:  renderer,
		validator: validation.New(),
	}
}

// testSessionManager creates a session manager on the in-memory store.
func testSessionManager() *scs.SessionManager {
	sm := scs.New()
	sm.Cookie.Secure = false
	return sm
}

// testPrincipal is the administrator signed in by serveAs.
var testPrincipal = auth.Principal{
	Username: "admin@example.com",
	Token:    "tok-123",
	Fields:   map[string]any{"firstname": "Ada", "lastname": "Lovelace"},
}

// serve runs h behind the session and auth middleware as a signed-out
// visitor.
func (e *testEnv) serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	return e.run(h, req, nil)
}

// serveAs runs h as the signed-in test principal.
func (e *testEnv) serveAs(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	p := testPrincipal
	return e.run(h, req, &p)
}

func (e *testEnv) run(h http.HandlerFunc, req *http.Request, p *auth.Principal) *httptest.ResponseRecorder {
	var next http.Handler = h
	if p != nil {
		inner := next
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = middleware.GetAuth(r).Login(r.Context(), *p)
			inner.ServeHTTP(w, r)
		})
	}
	chain := e.sm.LoadAndSave(middleware.LoadAuth(session.NewKeyStore(e.sm))(next))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	return rec
}

// flash reads the flash message left in the session of a previous response.
func (e *testEnv) flash(t *testing.T, prev *httptest.ResponseRecorder) (msg, typ string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range prev.Result().Cookies() {
		req.AddCookie(c)
	}
	h := e.sm.LoadAndSave(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		msg, typ = e.renderer.PopFlash(r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return msg, typ
}

// sessionValue reads a session string left by a previous response.
func (e *testEnv) sessionValue(t *testing.T, prev *httptest.ResponseRecorder, key string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range prev.Result().Cookies() {
		req.AddCookie(c)
	}
	var v string
	h := e.sm.LoadAndSave(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		v = e.sm.GetString(r.Context(), key)
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return v
}

// principal reads the signed-in principal of the session left by a previous
// response.
func (e *testEnv) principal(t *testing.T, prev *httptest.ResponseRecorder) *auth.Principal {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range prev.Result().Cookies() {
		req.AddCookie(c)
	}
	var p *auth.Principal
	h := e.sm.LoadAndSave(middleware.LoadAuth(session.NewKeyStore(e.sm))(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			p = middleware.GetPrincipal(r)
		})))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return p
}

// okList is a successful list envelope.
func okList(items ...map[string]any) apiclient.Envelope {
	data := make([]any, 0, len(items))
	for _, it := range items {
		data = append(data, it)
	}
	return apiclient.Envelope{"status": "true", "data": data}
}

// okMessage is a successful envelope without payload.
func okMessage(msg string) apiclient.Envelope {
	return apiclient.Envelope{"status": "true", "message": msg}
}

// failed is a rejected envelope.
func failed(msg string) apiclient.Envelope {
	return apiclient.Envelope{"status": "false", "message": msg}
}

// requestWithURLParams creates a request with chi URL parameters set.
func requestWithURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// postForm creates a url-encoded POST request.
func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// upload is one file part of a multipart request.
type upload struct {
	field, filename string
	content         []byte
}

// postMultipart creates a multipart POST request.
func postMultipart(t *testing.T, target string, values url.Values, files ...upload) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	for name, vals := range values {
		for _, v := range vals {
			if err := mw.WriteField(name, v); err != nil {
				t.Fatalf("WriteField: %v", err)
			}
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		_, _ = part.Write(f.content)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// assertRedirect checks for a 303 to location.
func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status code = %d; want %d", w.Code, http.StatusSeeOther)
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Location = %q; want %q", got, location)
	}
}

// assertBodyContains checks that the response body holds every string.
func assertBodyContains(t *testing.T, w *httptest.ResponseRecorder, want ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range want {
		if !strings.Contains(body, s) {
			t.Errorf("body does not contain %q", s)
		}
	}
}

// assertBodyLacks checks that the response body holds none of the strings.
func assertBodyLacks(t *testing.T, w *httptest.ResponseRecorder, unwanted ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range unwanted {
		if strings.Contains(body, s) {
			t.Errorf("body contains %q", s)
		}
	}
}

// assertFlash checks the flash left by a previous response. An empty typ
// skips the type check.
func (e *testEnv) assertFlash(t *testing.T, prev *httptest.ResponseRecorder, msg, typ string) {
	t.Helper()
	gotMsg, gotTyp := e.flash(t, prev)
	if gotMsg != msg {
		t.Errorf("flash = %q; want %q", gotMsg, msg)
	}
	if typ != "" && gotTyp != typ {
		t.Errorf("flash type = %q; want %q", gotTyp, typ)
	}
}

// assertCalls checks the number of backend calls to endpoint and returns
// them.
func (e *testEnv) assertCalls(t *testing.T, endpoint apiclient.Endpoint, n int) []testutil.Call {
	t.Helper()
	calls := e.backend.CallsTo(endpoint)
	if len(calls) != n {
		t.Fatalf("calls to %s = %d; want %d", endpoint, len(calls), n)
	}
	return calls
}

// assertFormValue checks a text field sent to the backend.
func assertFormValue(t *testing.T, form *apiclient.Form, name, want string) {
	t.Helper()
	if got := form.Get(name); got != want {
		t.Errorf("sent %s = %q; want %q", name, got, want)
	}
}
