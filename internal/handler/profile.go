// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/folio-admin/internal/auth"
	"github.com/olegiv/folio-admin/internal/middleware"
	"github.com/olegiv/folio-admin/internal/render"
)

// ProfileView is the data of the profile page.
type ProfileView struct {
	Name     string
	Email    string
	Position string
	Created  string
	Rights   []auth.Right
	Details  []auth.Detail
}

// ProfileHandler shows the signed-in administrator.
type ProfileHandler struct {
	renderer *render.Renderer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(renderer *render.Renderer) *ProfileHandler {
	return &ProfileHandler{renderer: renderer}
}

// Profile handles GET /profile.
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p := middleware.GetPrincipal(r)
	renderPage(w, r, h.renderer, http.StatusOK, TemplateProfile, render.TemplateData{
		Title:     "Profile",
		Nav:       NavProfile,
		Principal: p,
		Data: ProfileView{
			Name:     p.DisplayName(),
			Email:    p.Email(),
			Position: p.Field("position"),
			Created:  p.Field("created_at"),
			Rights:   p.Rights(),
			Details:  p.Details(),
		},
	})
}
