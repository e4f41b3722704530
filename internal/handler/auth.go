// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/auth"
	"github.com/olegiv/folio-admin/internal/middleware"
	"github.com/olegiv/folio-admin/internal/render"
	"github.com/olegiv/folio-admin/internal/validation"
)

// Login page messages.
const (
	msgCredentialsRequired = "Email and password are required"
	msgInvalidForm         = "Invalid form data"
	msgLoggedOut           = "You have been logged out"
)

// LoginView is the data of the login page.
type LoginView struct {
	Email    string
	Remember bool
}

// AuthHandler handles authentication routes.
type AuthHandler struct {
	backend         apiclient.Poster
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	validator       *validation.Validator
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(backend apiclient.Poster, renderer *render.Renderer, sm *scs.SessionManager, v *validation.Validator, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		backend:         backend,
		renderer:        renderer,
		sessionManager:  sm,
		validator:       v,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Signed-in users never get here; the
// route is guarded by RedirectIfAuth.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, LoginView{Email: h.sessionManager.PopString(r.Context(), "login_email")})
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, v LoginView) {
	if err := h.renderer.Render(w, r, TemplateLogin, render.TemplateData{Title: "Login", Data: v}); err != nil {
		logAndInternalError(w, r, "render failed", "template", TemplateLogin, "error", err)
	}
}

// failLogin flashes msg and sends the user back to the login page with the
// email kept.
func (h *AuthHandler) failLogin(w http.ResponseWriter, r *http.Request, email, msg string) {
	if email != "" {
		h.sessionManager.Put(r.Context(), "login_email", email)
	}
	flashError(w, r, h.renderer, RouteLogin, msg)
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, RouteLogin, msgInvalidForm)
		return
	}

	in := apiclient.LoginInput{
		Email:    formValue(r, "email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validator.Validate(in); err != nil {
		h.failLogin(w, r, in.Email, msgCredentialsRequired)
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(in.Email); locked {
			slog.WarnContext(r.Context(), "login attempt on locked account", "email", in.Email, "ip", middleware.GetClientIP(r))
			h.failLogin(w, r, in.Email, fmt.Sprintf("Account temporarily locked. Try again in %s.", formatDuration(remaining)))
			return
		}
	}

	principal, err := auth.Authenticate(r.Context(), h.backend, in)
	if err != nil {
		msg := apiclient.Message(err, auth.LoginFailedMessage)
		if errors.Is(err, apiclient.ErrNetwork) {
			slog.ErrorContext(r.Context(), "login backend unreachable", "error", err)
			h.failLogin(w, r, in.Email, msg)
			return
		}

		slog.InfoContext(r.Context(), "login rejected", "email", in.Email, "error", err)
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(in.Email); locked {
				slog.WarnContext(r.Context(), "account locked due to failed attempts", "email", in.Email, "duration", lockDuration.String())
				h.failLogin(w, r, in.Email, fmt.Sprintf("Too many failed attempts. Account locked for %s.", formatDuration(lockDuration)))
				return
			}
			if remaining := h.loginProtection.GetRemainingAttempts(in.Email); remaining > 0 && remaining <= 3 {
				msg = fmt.Sprintf("%s. %d attempts remaining.", msg, remaining)
			}
		}
		h.failLogin(w, r, in.Email, msg)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(in.Email)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, r, "session renewal error", "error", err)
		return
	}
	h.sessionManager.RememberMe(r.Context(), r.PostFormValue("remember") != "")

	if err := middleware.GetAuth(r).Login(r.Context(), principal); err != nil {
		logAndInternalError(w, r, "storing principal", "error", err)
		return
	}

	slog.InfoContext(r.Context(), "user logged in", "user", principal.Username)
	flashSuccess(w, r, h.renderer, RouteRoot, auth.LoginSuccessMessage)
}

// Logout signs the user out and ends the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	store := middleware.GetAuth(r)
	user := ""
	if p := store.Principal(); p != nil {
		user = p.Username
	}
	store.Logout(r.Context())

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "session destroy error", "error", err)
	}

	slog.InfoContext(r.Context(), "user logged out", "user", user)
	flashAndRedirect(w, r, h.renderer, RouteLogin, msgLoggedOut, render.FlashInfo)
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
