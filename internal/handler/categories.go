// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/entity"
	"github.com/olegiv/folio-admin/internal/model"
	"github.com/olegiv/folio-admin/internal/render"
	"github.com/olegiv/folio-admin/internal/validation"
	"github.com/olegiv/folio-admin/internal/view"
)

// CategoryKind configures one category-like page.
type CategoryKind struct {
	BaseURL string
	Nav     string
	Title   string
	// Field is the form field naming the new entry.
	Field string
	// WithImage adds an image upload and column.
	WithImage bool
}

// Category pages.
var (
	BlogCategoriesKind = CategoryKind{
		BaseURL: RouteBlogCategories, Nav: NavBlogCategories, Title: "Blog Categories", Field: "category",
	}
	PortfolioCategoriesKind = CategoryKind{
		BaseURL: RoutePortfolioCategories, Nav: NavPortfolioCategories, Title: "Portfolio Categories", Field: "category",
	}
	TechnologiesKind = CategoryKind{
		BaseURL: RouteTechnologyCategories, Nav: NavTechnologies, Title: "Technology Categories", Field: "title", WithImage: true,
	}
)

// categoryTable sorts and searches by name.
var categoryTable = view.Table{
	Sortable: map[string]view.Accessor{
		"name":   view.Field(model.CategoryKeyName),
		"status": view.Field(model.CategoryKeyStatus),
	},
	Searchable: []view.Accessor{view.Field(model.CategoryKeyName)},
}

// CategoriesView is the data of a category page.
type CategoriesView struct {
	TableView
	Kind CategoryKind
	Add  FormView
}

// Category returns the canonical form of a row.
func (CategoriesView) Category(rec model.Record) model.Category {
	return model.CategoryFromRecord(rec)
}

// CategoriesHandler lists and adds blog categories, portfolio categories or
// technologies. The backend has no update for these.
type CategoriesHandler struct {
	kind      CategoryKind
	renderer  *render.Renderer
	store     *entity.Store
	validator *validation.Validator
	maxUpload int64
}

// NewCategoriesHandler creates a handler for one category page.
func NewCategoriesHandler(kind CategoryKind, store *entity.Store, renderer *render.Renderer, v *validation.Validator, maxUpload int64) *CategoriesHandler {
	return &CategoriesHandler{
		kind:      kind,
		renderer:  renderer,
		store:     store,
		validator: v,
		maxUpload: maxUpload,
	}
}

// List handles GET of the page.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, FormView{Values: url.Values{}})
}

// Create handles POST of the add form.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	cleanup, err := parseForm(w, r, h.maxUpload)
	defer cleanup()
	if err != nil {
		h.render(w, r, http.StatusBadRequest, FormView{Values: url.Values{}, Error: formErrorMessage(r, err)})
		return
	}
	fv := FormView{Values: submittedValues(r)}

	var (
		validated any
		form      *apiclient.Form
	)
	name := formValue(r, h.kind.Field)
	if h.kind.WithImage {
		in := apiclient.TechnologyInput{Title: name, Image: formFile(r, "image")}
		validated, form = in, in.Form()
	} else {
		in := apiclient.CategoryInput{Category: name}
		validated, form = in, in.Form()
	}

	if err := h.validator.Validate(validated); err != nil {
		fv.Errors = validation.Fields(err)
		h.render(w, r, http.StatusUnprocessableEntity, fv)
		return
	}

	out := h.store.Create(r.Context(), form)
	if !out.OK {
		fv.Error = out.Message
		h.render(w, r, http.StatusOK, fv)
		return
	}
	finishSubmit(w, r, h.renderer, h.store, h.kind.BaseURL, out)
}

func (h *CategoriesHandler) render(w http.ResponseWriter, r *http.Request, status int, fv FormView) {
	fetchErr := loadCollection(r.Context(), h.store)
	fv.Action = h.kind.BaseURL

	tv := buildTable(r, h.kind.BaseURL, h.store.Items(), categoryTable)
	tv.FetchError = fetchErr

	renderPage(w, r, h.renderer, status, TemplateCategories, render.TemplateData{
		Title: h.kind.Title,
		Nav:   h.kind.Nav,
		Data:  CategoriesView{TableView: tv, Kind: h.kind, Add: fv},
	})
}
