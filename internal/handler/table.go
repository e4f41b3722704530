// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"

	"github.com/olegiv/folio-admin/internal/entity"
	"github.com/olegiv/folio-admin/internal/model"
	"github.com/olegiv/folio-admin/internal/view"
)

// FilterOption is one choice of a table filter.
type FilterOption struct {
	Value string
	Label string
}

// TableView is the data of an admin table page.
type TableView struct {
	BaseURL    string
	State      view.State
	Result     view.Result
	Links      view.Links
	Pagination view.Pagination
	PageSizes  []int

	// FilterLabel names the filter control; empty when the table has none.
	FilterLabel   string
	FilterOptions []FilterOption

	AllSelected   bool
	SelectedCount int

	// FetchError replaces the table when the collection failed to load.
	FetchError string
	// Lookup resolves category and technology ids for display.
	Lookup view.Lookup
	// Technologies resolves technology ids for display.
	Technologies view.Lookup

	// Form is the open create or edit form, if any.
	Form *FormView
}

// loadCollection fetches the collection on every page visit and returns
// the fetch error to show, if any.
func loadCollection(ctx context.Context, store *entity.Store) string {
	_ = store.FetchAll(ctx)
	return fetchError(store)
}

// ensureLoaded fetches a lookup collection when it has not loaded yet. A
// failed lookup leaves ids shown as they are.
func ensureLoaded(ctx context.Context, store *entity.Store) {
	if !store.Loaded() {
		_ = store.FetchAll(ctx)
	}
}

// fetchError reads the fetch error from the store rather than from one
// dispatch, which may have been superseded by a newer fetch.
func fetchError(store *entity.Store) string {
	if st := store.State(); st.Fetch.Failed() {
		return st.Fetch.Error
	}
	return ""
}

// buildTable derives the table view of items from the request's query.
func buildTable(r *http.Request, baseURL string, items []model.Record, table view.Table) TableView {
	st := view.ParseState(r.URL.Query())
	res := view.Compute(items, st, table)
	links := view.NewLinks(baseURL, st, res)

	return TableView{
		BaseURL:       baseURL,
		State:         links.State,
		Result:        res,
		Links:         links,
		Pagination:    view.BuildPagination(res, baseURL, links.State),
		PageSizes:     view.PageSizes,
		AllSelected:   view.AllSelected(links.State.Selected, res.FilteredIDs),
		SelectedCount: len(links.State.Selected),
	}
}

// withFilter attaches filter choices built from the distinct values of
// items. label turns a value into its display text.
func (t TableView) withFilter(name string, items []model.Record, value view.Accessor, label func(string) string) TableView {
	t.FilterLabel = name
	t.FilterOptions = []FilterOption{{Value: view.FilterAll, Label: "All"}}
	for _, v := range view.FilterOptions(items, value) {
		text := v
		if label != nil {
			text = label(v)
		}
		t.FilterOptions = append(t.FilterOptions, FilterOption{Value: v, Label: text})
	}
	return t
}

// CategoryName returns the display name of a record's category.
func (t TableView) CategoryName(rec model.Record) string {
	return categoryName(t.Lookup)(rec)
}

// categoryName reads the category name the backend joined in, falling back
// to resolving the category id.
func categoryName(lookup view.Lookup) view.Accessor {
	return func(r model.Record) string {
		if name := r.String("category_name"); name != "" {
			return name
		}
		return lookup.Name(r.String("category"))
	}
}
