// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/folio-admin/internal/entity"
	"github.com/olegiv/folio-admin/internal/model"
	"github.com/olegiv/folio-admin/internal/render"
)

// recentLimit is the number of recent activity entries on the dashboard.
const recentLimit = 5

// DashboardView is the data of the dashboard page.
type DashboardView struct {
	TotalBlogs    int
	TotalProjects int
	TotalViews    int64
	Recent        []Activity
	// Errors are fetch failures of the collections the stats come from.
	Errors []string
}

// Activity is one recently created blog or project.
type Activity struct {
	Kind  string
	Label string
	Title string
	When  time.Time
	URL   string
}

// DashboardHandler renders the dashboard.
type DashboardHandler struct {
	renderer *render.Renderer
	blogs    *entity.Store
	projects *entity.Store
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(renderer *render.Renderer, stores *entity.Stores) *DashboardHandler {
	return &DashboardHandler{renderer: renderer, blogs: stores.Blogs, projects: stores.Projects}
}

// Dashboard handles GET /.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var errs []string
	for _, s := range []*entity.Store{h.blogs, h.projects} {
		if msg := loadCollection(r.Context(), s); msg != "" {
			errs = append(errs, msg)
		}
	}

	v := buildDashboard(h.blogs.Items(), h.projects.Items())
	v.Errors = errs

	renderPage(w, r, h.renderer, http.StatusOK, TemplateDashboard, render.TemplateData{
		Title: "Dashboard",
		Nav:   NavDashboard,
		Data:  v,
	})
}

// buildDashboard computes the dashboard stats of the cached collections.
func buildDashboard(blogs, projects []model.Record) DashboardView {
	v := DashboardView{
		TotalBlogs:    len(blogs),
		TotalProjects: len(projects),
	}

	var recent []Activity
	add := func(items []model.Record, kind, label, url string) {
		for _, rec := range items {
			v.TotalViews += views(rec)
			a := Activity{Kind: kind, Label: label, Title: rec.String("title"), URL: url}
			if id := rec.ID(); id != "" {
				a.URL = url + "/" + id + "/edit"
			}
			a.When, _ = createdAt(rec)
			recent = append(recent, a)
		}
	}
	add(blogs, "blog", "Blog created:", RouteBlogs)
	add(projects, "project", "Project created:", RouteProjects)

	// Newest first; undated records last in their original order.
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].When.After(recent[j].When)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	v.Recent = recent
	return v
}

// views reads the view counter of a record; missing or malformed counters
// count as zero.
func views(rec model.Record) int64 {
	s := strings.TrimSpace(rec.String("views"))
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

// createdAt reads the creation time, accepting both backend spellings.
func createdAt(rec model.Record) (time.Time, bool) {
	for _, key := range []string{"created_at", "createdAt"} {
		s := strings.TrimSpace(rec.String(key))
		if s == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
