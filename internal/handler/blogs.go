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

// blogTextFields are the text fields of the blog form.
var blogTextFields = []string{
	"category", "title", "poster_alt", "image_alt", "description", "author",
	"publish_date", "read_time", "status", "seo_title", "seo_description",
	"seo_keywords", "og_title", "og_description", "og_type", "og_image_alt",
}

// BlogsHandler manages blog posts.
type BlogsHandler struct {
	renderer   *render.Renderer
	store      *entity.Store
	categories *entity.Store
	validator  *validation.Validator
	maxUpload  int64
}

// NewBlogsHandler creates a new BlogsHandler.
func NewBlogsHandler(renderer *render.Renderer, stores *entity.Stores, v *validation.Validator, maxUpload int64) *BlogsHandler {
	return &BlogsHandler{
		renderer:   renderer,
		store:      stores.Blogs,
		categories: stores.BlogCategories,
		validator:  v,
		maxUpload:  maxUpload,
	}
}

// blogTable sorts by title, category, author and status, searches those
// plus the description and filters on status.
func blogTable(lookup view.Lookup) view.Table {
	category := categoryName(lookup)
	return view.Table{
		Sortable: map[string]view.Accessor{
			"title":    view.Field("title"),
			"category": category,
			"author":   view.Field("author"),
			"status":   view.Field("status"),
		},
		DefaultSort: "title",
		Searchable: []view.Accessor{
			view.Field("title"),
			category,
			view.Field("author"),
			view.Field("status"),
			view.Field("description"),
		},
		FilterValue: view.Field("status"),
	}
}

// List handles GET /blogs.
func (h *BlogsHandler) List(w http.ResponseWriter, r *http.Request) {
	fetchErr := loadCollection(r.Context(), h.store)
	lookup := h.categoryLookup(r)

	items := h.store.Items()
	tv := buildTable(r, RouteBlogs, items, blogTable(lookup)).
		withFilter("Status", items, view.Field("status"), nil)
	tv.FetchError = fetchErr
	tv.Lookup = lookup

	renderPage(w, r, h.renderer, http.StatusOK, TemplateBlogs, render.TemplateData{
		Title: "Blogs",
		Nav:   NavBlogs,
		Data:  tv,
	})
}

// categoryLookup loads blog categories for display. A failed load leaves
// ids shown as they are.
func (h *BlogsHandler) categoryLookup(r *http.Request) view.Lookup {
	ensureLoaded(r.Context(), h.categories)
	return view.NewLookup(h.categories.Items())
}

// NewForm handles GET /blogs/new.
func (h *BlogsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, FormView{
		Action: RouteBlogs + RouteSuffixNew,
		Values: url.Values{"status": {apiclient.BlogStatusDraft}},
	})
}

// EditForm handles GET /blogs/{id}/edit.
func (h *BlogsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.find(w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, FormView{
		Action:  editURL(RouteBlogs, rec.ID()),
		Editing: true,
		Values:  recordValues(rec, blogTextFields...),
		Record:  rec,
	})
}

// Create handles POST /blogs/new.
func (h *BlogsHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, FormView{Action: RouteBlogs + RouteSuffixNew}, "")
}

// Update handles POST /blogs/{id}/edit.
func (h *BlogsHandler) Update(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.find(w, r)
	if !ok {
		return
	}
	h.submit(w, r, FormView{Action: editURL(RouteBlogs, rec.ID()), Editing: true, Record: rec}, rec.ID())
}

func (h *BlogsHandler) find(w http.ResponseWriter, r *http.Request) (model.Record, bool) {
	return findRecord(w, r, h.renderer, h.store, RouteBlogs, "Blog not found")
}

func (h *BlogsHandler) submit(w http.ResponseWriter, r *http.Request, fv FormView, id string) {
	cleanup, err := parseForm(w, r, h.maxUpload)
	defer cleanup()
	if err != nil {
		h.formError(w, r, fv, err)
		return
	}
	fv.Values = submittedValues(r)

	in := blogInput(r, id)
	if err := h.validator.Validate(in); err != nil {
		fv.Errors = validation.Fields(err)
		h.renderForm(w, r, http.StatusUnprocessableEntity, fv)
		return
	}

	action := h.store.Create
	if fv.Editing {
		action = h.store.Update
	}
	out := action(r.Context(), in.Form())
	if !out.OK {
		fv.Error = out.Message
		h.renderForm(w, r, http.StatusOK, fv)
		return
	}
	finishSubmit(w, r, h.renderer, h.store, RouteBlogs, out)
}

func (h *BlogsHandler) formError(w http.ResponseWriter, r *http.Request, fv FormView, err error) {
	fv.Error = formErrorMessage(r, err)
	h.renderForm(w, r, http.StatusBadRequest, fv)
}

func (h *BlogsHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, fv FormView) {
	ensureLoaded(r.Context(), h.categories)
	fv.Options = map[string][]model.Category{"category": categories(h.categories.Items())}
	fv.Statuses = apiclient.BlogStatuses

	title := "Create Blog"
	if fv.Editing {
		title = "Edit Blog"
	}
	renderPage(w, r, h.renderer, status, TemplateBlogForm, render.TemplateData{
		Title: title,
		Nav:   NavBlogs,
		Data:  fv,
	})
}

// blogInput reads the blog form. id is set for updates.
func blogInput(r *http.Request, id string) apiclient.BlogInput {
	return apiclient.BlogInput{
		ID:             id,
		Category:       formValue(r, "category"),
		Title:          formValue(r, "title"),
		PosterAlt:      formValue(r, "poster_alt"),
		ImageAlt:       formValue(r, "image_alt"),
		Description:    r.PostFormValue("description"),
		Author:         formValue(r, "author"),
		PublishDate:    formValue(r, "publish_date"),
		ReadTime:       formValue(r, "read_time"),
		Status:         formValue(r, "status"),
		SEOTitle:       formValue(r, "seo_title"),
		SEODescription: formValue(r, "seo_description"),
		SEOKeywords:    formValue(r, "seo_keywords"),
		OGTitle:        formValue(r, "og_title"),
		OGDescription:  formValue(r, "og_description"),
		OGType:         formValue(r, "og_type"),
		OGImageAlt:     formValue(r, "og_image_alt"),
		Poster:         formFile(r, "poster"),
		Image:          formFile(r, "image"),
		OGImage:        formFile(r, "og_image"),
	}
}
