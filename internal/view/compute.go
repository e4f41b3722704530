// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/olegiv/folio-admin/internal/model"
)

// Accessor extracts the display text of one column from a record.
type Accessor func(model.Record) string

// Field returns an accessor for a plain record field.
func Field(name string) Accessor {
	return func(r model.Record) string {
		return r.String(name)
	}
}

// Table describes how one admin table sorts, searches and filters.
type Table struct {
	// Sortable maps sort field names to their accessors. Unknown sort fields
	// keep the input order.
	Sortable map[string]Accessor
	// DefaultSort is used when the state names no sort field.
	DefaultSort string
	// Searchable are matched against the search text; any match passes.
	Searchable []Accessor
	// FilterValue is compared exactly against the state's filter.
	FilterValue Accessor
}

// Result is one computed table view.
type Result struct {
	Rows          []model.Record
	FilteredIDs   []string
	FilteredCount int
	Total         int
	TotalPages    int
	Page          int
	PageSize      int
	// RowsStart and RowsEnd are the 1-based bounds of Rows within the
	// filtered set, both 0 when Rows is empty.
	RowsStart int
	RowsEnd   int
	SortField string
	SortDir   Direction
}

// Empty reports whether no record passed the filter.
func (r Result) Empty() bool {
	return r.FilteredCount == 0
}

// Compute sorts, filters and paginates items. items is not modified.
func Compute(items []model.Record, st State, t Table) Result {
	fold := cases.Fold()

	sortField := st.SortField
	if sortField == "" {
		sortField = t.DefaultSort
	}
	dir := st.SortDir
	if dir != Desc {
		dir = Asc
	}

	sorted := SortRecords(items, t.Sortable[sortField], dir)

	needle := fold.String(strings.TrimSpace(st.Search))
	filtered := make([]model.Record, 0, len(sorted))
	for _, r := range sorted {
		if matchesSearch(r, needle, t.Searchable, fold) && matchesFilter(r, st, t.FilterValue) {
			filtered = append(filtered, r)
		}
	}

	size := NormalizePageSize(st.PageSize)
	totalPages := (len(filtered) + size - 1) / size
	page := st.Page
	if page < 1 || page > totalPages {
		page = 1
	}

	res := Result{
		FilteredIDs:   make([]string, 0, len(filtered)),
		FilteredCount: len(filtered),
		Total:         len(items),
		TotalPages:    totalPages,
		Page:          page,
		PageSize:      size,
		SortField:     sortField,
		SortDir:       dir,
		Rows:          []model.Record{},
	}
	for _, r := range filtered {
		if id := r.ID(); id != "" {
			res.FilteredIDs = append(res.FilteredIDs, id)
		}
	}

	start := (page - 1) * size
	if start < len(filtered) {
		end := min(start+size, len(filtered))
		res.Rows = filtered[start:end]
		res.RowsStart = start + 1
		res.RowsEnd = end
	}
	return res
}

// SortRecords returns a stably sorted copy of items ordered by the folded
// text of key. A nil key keeps the input order. Missing values sort as "".
func SortRecords(items []model.Record, key Accessor, dir Direction) []model.Record {
	out := make([]model.Record, len(items))
	copy(out, items)
	if key == nil {
		return out
	}

	fold := cases.Fold()
	keys := make([]string, len(out))
	idx := make([]int, len(out))
	for i, r := range out {
		idx[i] = i
		keys[i] = fold.String(key(r))
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if dir == Desc {
			return ka > kb
		}
		return ka < kb
	})

	sorted := make([]model.Record, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}

func matchesSearch(r model.Record, needle string, fields []Accessor, fold cases.Caser) bool {
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(fold.String(field(r)), needle) {
			return true
		}
	}
	return false
}

func matchesFilter(r model.Record, st State, value Accessor) bool {
	if !st.FilterActive() || value == nil {
		return true
	}
	return value(r) == st.Filter
}
