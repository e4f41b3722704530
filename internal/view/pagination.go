// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"fmt"
)

// Pagination holds the page links of one table.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PerPage     int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	Pages       []PageLink
	BaseURL     string
	QueryString string
}

// PageLink is a single page link; ellipsis links carry no URL.
type PageLink struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// BuildPagination creates page links for a computed result. st supplies the
// query parameters every link preserves.
func BuildPagination(res Result, baseURL string, st State) Pagination {
	totalPages := res.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	current := res.Page

	p := Pagination{
		CurrentPage: current,
		TotalPages:  totalPages,
		TotalItems:  res.FilteredCount,
		PerPage:     res.PageSize,
		HasPrev:     current > 1,
		HasNext:     current < totalPages,
		PrevPage:    current - 1,
		NextPage:    current + 1,
		BaseURL:     baseURL,
	}

	params := st.Values()
	params.Del(ParamPage)
	p.QueryString = params.Encode()

	// At most 5 numbered links around the current page.
	start := current - 2
	end := current + 2
	if start < 1 {
		start = 1
		end = 5
	}
	if end > totalPages {
		end = totalPages
		start = max(end-4, 1)
	}

	if start > 1 {
		p.Pages = append(p.Pages, PageLink{Number: 1, URL: p.PageURL(1)})
		if start > 2 {
			p.Pages = append(p.Pages, PageLink{IsEllipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, PageLink{Number: i, URL: p.PageURL(i), IsCurrent: i == current})
	}
	if end < totalPages {
		if end < totalPages-1 {
			p.Pages = append(p.Pages, PageLink{IsEllipsis: true})
		}
		p.Pages = append(p.Pages, PageLink{Number: totalPages, URL: p.PageURL(totalPages)})
	}

	return p
}

// PageURL returns the URL for a specific page number.
func (p Pagination) PageURL(page int) string {
	if p.QueryString != "" {
		return fmt.Sprintf("%s?%s&page=%d", p.BaseURL, p.QueryString, page)
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, page)
}

// PrevURL returns the URL for the previous page.
func (p Pagination) PrevURL() string {
	return p.PageURL(p.PrevPage)
}

// NextURL returns the URL for the next page.
func (p Pagination) NextURL() string {
	return p.PageURL(p.NextPage)
}

// ShouldShow returns true if pagination should be displayed (more than 1 page).
func (p Pagination) ShouldShow() bool {
	return p.TotalPages > 1
}

// Links builds state-preserving URLs for the controls of one table. State
// should be resolved against the computed result so toggles start from what
// is actually shown.
type Links struct {
	BaseURL string
	State   State
}

// NewLinks returns links for st as resolved by res.
func NewLinks(baseURL string, st State, res Result) Links {
	return Links{BaseURL: baseURL, State: st.Resolve(res)}
}

func (l Links) url(st State) string {
	if q := st.Encode(); q != "" {
		return l.BaseURL + "?" + q
	}
	return l.BaseURL
}

// Sort returns the URL that toggles sorting by field.
func (l Links) Sort(field string) string {
	return l.url(l.State.ToggleSort(field))
}

// SortIndicator returns the arrow shown next to field's header.
func (l Links) SortIndicator(field string) string {
	if field != l.State.SortField {
		return ""
	}
	if l.State.SortDir == Desc {
		return "▼"
	}
	return "▲"
}

// PageSize returns the URL that switches to page size n.
func (l Links) PageSize(n int) string {
	return l.url(l.State.WithPageSize(n))
}

// Filter returns the URL that applies filter f.
func (l Links) Filter(f string) string {
	return l.url(l.State.WithFilter(f))
}

// ToggleAll returns the URL that toggles selection of the filtered ids.
func (l Links) ToggleAll(filtered []string) string {
	return l.url(l.State.WithSelected(ToggleAll(l.State.Selected, filtered)))
}

// ToggleOne returns the URL that toggles selection of id.
func (l Links) ToggleOne(id string) string {
	return l.url(l.State.WithSelected(ToggleOne(l.State.Selected, id)))
}

// Current returns the URL of the current view.
func (l Links) Current() string {
	return l.url(l.State)
}

// Hidden returns the state as name/value pairs for hidden form inputs,
// leaving out the parameters the form itself sets.
func (l Links) Hidden(exclude ...string) [][2]string {
	v := l.State.Values()
	for _, name := range exclude {
		v.Del(name)
	}
	var out [][2]string
	for _, name := range []string{ParamSort, ParamDir, ParamSearch, ParamFilter, ParamPage, ParamSize, ParamSelected} {
		if val := v.Get(name); val != "" {
			out = append(out, [2]string{name, val})
		}
	}
	return out
}
