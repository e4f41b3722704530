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

// portfolioTextFields are the single-valued fields of the portfolio form.
var portfolioTextFields = []string{"category", "title", "description", "project_duration", "website_link"}

// PortfolioSection configures one page backed by the portfolio collection.
type PortfolioSection struct {
	BaseURL  string
	Nav      string
	Title    string
	Singular string
}

// Portfolio sections.
var (
	PortfoliosSection = PortfolioSection{BaseURL: RoutePortfolios, Nav: NavPortfolios, Title: "Portfolios", Singular: "Portfolio"}
	ProjectsSection   = PortfolioSection{BaseURL: RouteProjects, Nav: NavProjects, Title: "Projects", Singular: "Project"}
)

// PortfoliosHandler manages portfolio projects. The portfolios and projects
// pages each get their own handler over their own store.
type PortfoliosHandler struct {
	section      PortfolioSection
	renderer     *render.Renderer
	store        *entity.Store
	categories   *entity.Store
	technologies *entity.Store
	validator    *validation.Validator
	maxUpload    int64
}

// NewPortfoliosHandler creates a handler for the portfolios page.
func NewPortfoliosHandler(renderer *render.Renderer, stores *entity.Stores, v *validation.Validator, maxUpload int64) *PortfoliosHandler {
	return newPortfolioSection(PortfoliosSection, stores.Portfolios, renderer, stores, v, maxUpload)
}

// NewProjectsHandler creates a handler for the projects page.
func NewProjectsHandler(renderer *render.Renderer, stores *entity.Stores, v *validation.Validator, maxUpload int64) *PortfoliosHandler {
	return newPortfolioSection(ProjectsSection, stores.Projects, renderer, stores, v, maxUpload)
}

func newPortfolioSection(section PortfolioSection, store *entity.Store, renderer *render.Renderer, stores *entity.Stores, v *validation.Validator, maxUpload int64) *PortfoliosHandler {
	return &PortfoliosHandler{
		section:      section,
		renderer:     renderer,
		store:        store,
		categories:   stores.PortfolioCategories,
		technologies: stores.Technologies,
		validator:    v,
		maxUpload:    maxUpload,
	}
}

// portfolioTable sorts by title, category and duration, searches those plus
// the description and filters on the category id.
func portfolioTable(lookup view.Lookup) view.Table {
	category := categoryName(lookup)
	return view.Table{
		Sortable: map[string]view.Accessor{
			"title":    view.Field("title"),
			"category": category,
			"duration": view.Field("project_duration"),
		},
		DefaultSort: "title",
		Searchable: []view.Accessor{
			view.Field("title"),
			category,
			view.Field("description"),
			view.Field("project_duration"),
		},
		FilterValue: view.Field("category"),
	}
}

// technologyIDs reads the technologies of a portfolio record. The backend
// sends either technology_ids or technology, as ids, objects or a JSON
// encoded list.
func technologyIDs(rec model.Record) []string {
	for _, key := range []string{"technology_ids", "technology"} {
		list, ok := rec[key].([]any)
		if !ok {
			if ids := rec.Strings(key); len(ids) > 0 {
				return ids
			}
			continue
		}
		ids := make([]string, 0, len(list))
		for _, item := range list {
			if c, ok := model.NormalizeCategory(item); ok {
				ids = append(ids, c.ID)
			} else if s := model.Text(item); s != "" {
				ids = append(ids, s)
			}
		}
		if len(ids) > 0 {
			return ids
		}
	}
	return nil
}

// List handles GET of the section's base URL.
func (h *PortfoliosHandler) List(w http.ResponseWriter, r *http.Request) {
	fetchErr := loadCollection(r.Context(), h.store)
	ensureLoaded(r.Context(), h.categories)
	ensureLoaded(r.Context(), h.technologies)
	lookup := view.NewLookup(h.categories.Items())

	items := h.store.Items()
	tv := buildTable(r, h.section.BaseURL, items, portfolioTable(lookup)).
		withFilter("Category", items, view.Field("category"), lookup.Name)
	tv.FetchError = fetchErr
	tv.Lookup = lookup
	tv.Technologies = view.NewLookup(h.technologies.Items())

	renderPage(w, r, h.renderer, http.StatusOK, TemplatePortfolios, render.TemplateData{
		Title: h.section.Title,
		Nav:   h.section.Nav,
		Data:  PortfolioListView{TableView: tv, Section: h.section},
	})
}

// PortfolioListView is the data of a portfolio table page.
type PortfolioListView struct {
	TableView
	Section PortfolioSection
}

// TechnologyNames resolves the technologies of a record for display.
func (v PortfolioListView) TechnologyNames(rec model.Record) []string {
	return v.Technologies.Names(technologyIDs(rec))
}

// NewForm handles GET of the section's create form.
func (h *PortfoliosHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, FormView{
		Action: h.section.BaseURL + RouteSuffixNew,
		Values: url.Values{},
	})
}

// EditForm handles GET of a record's edit form.
func (h *PortfoliosHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.find(w, r)
	if !ok {
		return
	}
	values := recordValues(rec, portfolioTextFields...)
	values["technology"] = technologyIDs(rec)
	h.renderForm(w, r, http.StatusOK, FormView{
		Action:  editURL(h.section.BaseURL, rec.ID()),
		Editing: true,
		Values:  values,
		Record:  rec,
	})
}

// Create handles POST of the create form.
func (h *PortfoliosHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, FormView{Action: h.section.BaseURL + RouteSuffixNew}, "")
}

// Update handles POST of an edit form.
func (h *PortfoliosHandler) Update(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.find(w, r)
	if !ok {
		return
	}
	h.submit(w, r, FormView{Action: editURL(h.section.BaseURL, rec.ID()), Editing: true, Record: rec}, rec.ID())
}

func (h *PortfoliosHandler) find(w http.ResponseWriter, r *http.Request) (model.Record, bool) {
	return findRecord(w, r, h.renderer, h.store, h.section.BaseURL, h.section.Singular+" not found")
}

func (h *PortfoliosHandler) submit(w http.ResponseWriter, r *http.Request, fv FormView, id string) {
	cleanup, err := parseForm(w, r, h.maxUpload)
	defer cleanup()
	if err != nil {
		fv.Error = formErrorMessage(r, err)
		h.renderForm(w, r, http.StatusBadRequest, fv)
		return
	}
	fv.Values = submittedValues(r)

	in := apiclient.PortfolioInput{
		ID:              id,
		Category:        formValue(r, "category"),
		Title:           formValue(r, "title"),
		Description:     r.PostFormValue("description"),
		ProjectDuration: formValue(r, "project_duration"),
		WebsiteLink:     formValue(r, "website_link"),
		Technology:      formValues(r, "technology"),
		Image:           formFile(r, "image"),
	}
	if err := h.validator.Validate(in); err != nil {
		fv.Errors = validation.Fields(err)
		h.renderForm(w, r, http.StatusUnprocessableEntity, fv)
		return
	}

	form, err := in.Form()
	if err != nil {
		logAndInternalError(w, r, "encoding portfolio form", "error", err)
		return
	}

	action := h.store.Create
	if fv.Editing {
		action = h.store.Update
	}
	out := action(r.Context(), form)
	if !out.OK {
		fv.Error = out.Message
		h.renderForm(w, r, http.StatusOK, fv)
		return
	}
	finishSubmit(w, r, h.renderer, h.store, h.section.BaseURL, out)
}

func (h *PortfoliosHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, fv FormView) {
	ensureLoaded(r.Context(), h.categories)
	ensureLoaded(r.Context(), h.technologies)
	fv.Options = map[string][]model.Category{
		"category":   categories(h.categories.Items()),
		"technology": categories(h.technologies.Items()),
	}

	title := "Add " + h.section.Singular
	if fv.Editing {
		title = "Edit " + h.section.Singular
	}
	renderPage(w, r, h.renderer, status, TemplatePortfolio, render.TemplateData{
		Title: title,
		Nav:   h.section.Nav,
		Data:  PortfolioFormView{FormView: fv, Section: h.section},
	})
}

// PortfolioFormView is the data of a portfolio form page.
type PortfolioFormView struct {
	FormView
	Section PortfolioSection
}
