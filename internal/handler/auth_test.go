package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/auth"
	"github.com/olegiv/folio-admin/internal/middleware"
	"github.com/olegiv/folio-admin/internal/render"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{30 * time.Second, "30 seconds"},
		{1 * time.Minute, "1 minute"},
		{5 * time.Minute, "5 minutes"},
		{1 * time.Hour, "1 hour"},
		{2 * time.Hour, "2 hours"},
		{90 * time.Second, "1 minute"},
		{150 * time.Second, "2 minutes"},
		{90 * time.Minute, "1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatDuration(tt.duration)
			if got != tt.want {
				t.Errorf("formatDuration(%v) = %q; want %q", tt.duration, got, tt.want)
			}
		})
	}
}

func TestFormatDuration_EdgeCases(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{0, "0 seconds"},
		{999 * time.Millisecond, "0 seconds"},
		{59 * time.Second, "59 seconds"},
		{60 * time.Second, "1 minute"},
		{61 * time.Second, "1 minute"},
		{119 * time.Second, "1 minute"},
		{120 * time.Second, "2 minutes"},
		{59 * time.Minute, "59 minutes"},
		{60 * time.Minute, "1 hour"},
		{61 * time.Minute, "1 hour"},
		{119 * time.Minute, "1 hour"},
		{120 * time.Minute, "2 hours"},
		{24 * time.Hour, "24 hours"},
	}

	for _, tt := range tests {
		t.Run(tt.duration.String(), func(t *testing.T) {
			got := formatDuration(tt.duration)
			if got != tt.want {
				t.Errorf("formatDuration(%v) = %q; want %q", tt.duration, got, tt.want)
			}
		})
	}
}

func newTestAuthHandler(e *testEnv, lp *middleware.LoginProtection) *AuthHandler {
	return NewAuthHandler(e.backend, e.renderer, e.sm, e.validator, lp)
}

func loginForm(email, password string) *http.Request {
	return postForm(RouteLogin, url.Values{"email": {email}, "password": {password}})
}

func TestLoginForm(t *testing.T) {
	e := newTestEnv(t)
	h := newTestAuthHandler(e, nil)

	w := e.serve(h.LoginForm, httptest.NewRequest(http.MethodGet, RouteLogin, nil))

	assertStatus(t, w.Code, http.StatusOK)
	assertBodyContains(t, w, `name="email"`, `name="password"`, `action="/login"`)
}

func TestLogin_Success(t *testing.T) {
	e := newTestEnv(t)
	e.backend.On(apiclient.EndpointLogin, apiclient.Envelope{
		"status": "true",
		"token":  "tok-1",
		"data":   map[string]any{"firstname": "Ada", "lastname": "Lovelace", "email": "ada@example.com"},
	})
	h := newTestAuthHandler(e, middleware.NewLoginProtection(middleware.LoginProtectionConfig{}))

	w := e.serve(h.Login, loginForm("  ada@example.com ", "secret"))

	assertRedirect(t, w, RouteRoot)

	calls := e.assertCalls(t, apiclient.EndpointLogin, 1)
	assertFormValue(t, calls[0].Form, "email", "ada@example.com")
	assertFormValue(t, calls[0].Form, "password", "secret")

	p := e.principal(t, w)
	if p == nil {
		t.Fatal("principal should be stored in the session")
	}
	if p.Username != "ada@example.com" {
		t.Errorf("Username = %q; want ada@example.com", p.Username)
	}
	if p.Token != "tok-1" {
		t.Errorf("Token = %q; want tok-1", p.Token)
	}
	if got := p.DisplayName(); got != "Ada Lovelace" {
		t.Errorf("DisplayName() = %q; want Ada Lovelace", got)
	}

	e.assertFlash(t, w, auth.LoginSuccessMessage, render.FlashSuccess)
}

func TestLogin_MissingCredentials(t *testing.T) {
	e := newTestEnv(t)
	h := newTestAuthHandler(e, nil)

	w := e.serve(h.Login, loginForm("ada@example.com", ""))

	assertRedirect(t, w, RouteLogin)
	if calls := e.backend.Calls(); len(calls) != 0 {
		t.Errorf("backend called %d times without credentials", len(calls))
	}
	e.assertFlash(t, w, msgCredentialsRequired, render.FlashError)
	if got := e.sessionValue(t, w, "login_email"); got != "ada@example.com" {
		t.Errorf("login_email = %q; want the typed email", got)
	}
}

func TestLogin_Rejected(t *testing.T) {
	e := newTestEnv(t)
	e.backend.On(apiclient.EndpointLogin, failed("Invalid credentials"))
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{})
	h := newTestAuthHandler(e, lp)

	w := e.serve(h.Login, loginForm("ada@example.com", "wrong"))

	assertRedirect(t, w, RouteLogin)
	if p := e.principal(t, w); p != nil {
		t.Errorf("principal = %+v after a rejected login; want nil", p)
	}
	e.assertFlash(t, w, "Invalid credentials", "")
	if got := lp.GetRemainingAttempts("ada@example.com"); got != 4 {
		t.Errorf("remaining attempts = %d; want 4", got)
	}
}

func TestLogin_RejectedWithoutMessage(t *testing.T) {
	e := newTestEnv(t)
	e.backend.On(apiclient.EndpointLogin, apiclient.Envelope{"status": "false"})
	h := newTestAuthHandler(e, nil)

	w := e.serve(h.Login, loginForm("ada@example.com", "wrong"))

	e.assertFlash(t, w, auth.LoginFailedMessage, "")
}

func TestLogin_Lockout(t *testing.T) {
	e := newTestEnv(t)
	e.backend.On(apiclient.EndpointLogin, failed("Invalid credentials"))
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{MaxFailedAttempts: 2})
	h := newTestAuthHandler(e, lp)

	w := e.serve(h.Login, loginForm("ada@example.com", "wrong"))
	e.assertFlash(t, w, "Invalid credentials. 1 attempts remaining.", "")

	w = e.serve(h.Login, loginForm("ada@example.com", "wrong"))
	e.assertFlash(t, w, "Too many failed attempts. Account locked for 15 minutes.", "")

	w = e.serve(h.Login, loginForm("ada@example.com", "right"))
	if msg, _ := e.flash(t, w); !strings.HasPrefix(msg, "Account temporarily locked. Try again in") {
		t.Errorf("flash = %q; want a lockout notice", msg)
	}
	// Locked accounts never reach the backend.
	e.assertCalls(t, apiclient.EndpointLogin, 2)
}

func TestLogin_NetworkErrorDoesNotCountAttempt(t *testing.T) {
	e := newTestEnv(t)
	e.backend.Fail(apiclient.EndpointLogin, apiclient.ErrNetwork)
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{})
	h := newTestAuthHandler(e, lp)

	w := e.serve(h.Login, loginForm("ada@example.com", "secret"))

	assertRedirect(t, w, RouteLogin)
	e.assertFlash(t, w, apiclient.NetworkErrorMessage, render.FlashError)
	if got := lp.GetRemainingAttempts("ada@example.com"); got != 5 {
		t.Errorf("remaining attempts = %d; want 5", got)
	}
}

func TestLogout(t *testing.T) {
	e := newTestEnv(t)
	h := newTestAuthHandler(e, nil)

	w := e.serveAs(h.Logout, httptest.NewRequest(http.MethodPost, RouteLogout, nil))

	assertRedirect(t, w, RouteLogin)
	if p := e.principal(t, w); p != nil {
		t.Errorf("principal = %+v after logout; want nil", p)
	}
	e.assertFlash(t, w, msgLoggedOut, render.FlashInfo)
}
