// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package view derives the rows of an admin table from a cached collection:
// sort, then filter, then paginate. Everything here is pure; the view state
// travels in the query string and is never stored.
package view

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// FilterAll is the filter sentinel that disables filtering.
const FilterAll = "all"

// DefaultPageSize is used when no valid page size is requested.
const DefaultPageSize = 10

// PageSizes are the selectable page sizes.
var PageSizes = []int{5, 10, 15, 20}

// Query parameter names.
const (
	ParamSort     = "sort"
	ParamDir      = "dir"
	ParamSearch   = "q"
	ParamFilter   = "filter"
	ParamPage     = "page"
	ParamSize     = "size"
	ParamSelected = "sel"
)

// State is the ephemeral configuration of one table.
type State struct {
	SortField string
	SortDir   Direction
	Search    string
	Filter    string
	Page      int
	PageSize  int
	Selected  []string
}

// ParseState reads a view state from query parameters. Invalid values fall
// back to defaults: ascending, page 1, DefaultPageSize.
func ParseState(q url.Values) State {
	s := State{
		SortField: strings.TrimSpace(q.Get(ParamSort)),
		SortDir:   Asc,
		Search:    strings.TrimSpace(q.Get(ParamSearch)),
		Filter:    q.Get(ParamFilter),
		Page:      1,
		PageSize:  DefaultPageSize,
	}
	if Direction(q.Get(ParamDir)) == Desc {
		s.SortDir = Desc
	}
	if p, err := strconv.Atoi(q.Get(ParamPage)); err == nil && p > 0 {
		s.Page = p
	}
	if n, err := strconv.Atoi(q.Get(ParamSize)); err == nil {
		s.PageSize = NormalizePageSize(n)
	}
	for _, raw := range q[ParamSelected] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" && !slices.Contains(s.Selected, id) {
				s.Selected = append(s.Selected, id)
			}
		}
	}
	return s
}

// NormalizePageSize coerces n to one of PageSizes.
func NormalizePageSize(n int) int {
	if slices.Contains(PageSizes, n) {
		return n
	}
	return DefaultPageSize
}

// Values encodes the state as query parameters. Defaults are omitted.
func (s State) Values() url.Values {
	v := make(url.Values)
	if s.SortField != "" {
		v.Set(ParamSort, s.SortField)
	}
	if s.SortDir == Desc {
		v.Set(ParamDir, string(Desc))
	}
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	if s.Filter != "" {
		v.Set(ParamFilter, s.Filter)
	}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	if s.PageSize != 0 && s.PageSize != DefaultPageSize {
		v.Set(ParamSize, strconv.Itoa(s.PageSize))
	}
	if len(s.Selected) > 0 {
		v.Set(ParamSelected, strings.Join(s.Selected, ","))
	}
	return v
}

// Encode returns the state as a query string.
func (s State) Encode() string {
	return s.Values().Encode()
}

// ToggleSort flips the direction when field is already the sort field and
// otherwise sorts ascending by field. Either way the page resets.
func (s State) ToggleSort(field string) State {
	if s.SortField == field {
		if s.SortDir == Desc {
			s.SortDir = Asc
		} else {
			s.SortDir = Desc
		}
	} else {
		s.SortField = field
		s.SortDir = Asc
	}
	s.Page = 1
	return s
}

// WithPage returns the state on page p.
func (s State) WithPage(p int) State {
	s.Page = p
	return s
}

// WithPageSize returns the state with a new page size, back on page 1.
func (s State) WithPageSize(n int) State {
	s.PageSize = NormalizePageSize(n)
	s.Page = 1
	return s
}

// WithFilter returns the state with a new filter, back on page 1.
func (s State) WithFilter(f string) State {
	s.Filter = f
	s.Page = 1
	return s
}

// WithSelected returns the state with a new selection.
func (s State) WithSelected(ids []string) State {
	s.Selected = ids
	return s
}

// FilterActive reports whether the filter restricts rows.
func (s State) FilterActive() bool {
	return s.Filter != "" && s.Filter != FilterAll
}

// IsSelected reports whether id is selected.
func (s State) IsSelected(id string) bool {
	return slices.Contains(s.Selected, id)
}

// Resolve returns the state as actually applied by res: the effective sort,
// page and page size.
func (s State) Resolve(res Result) State {
	s.SortField = res.SortField
	s.SortDir = res.SortDir
	s.Page = res.Page
	s.PageSize = res.PageSize
	return s
}
