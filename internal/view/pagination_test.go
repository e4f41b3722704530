// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"strings"
	"testing"
)

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		totalPages  int
		wantNumbers []int // 0 marks an ellipsis
	}{
		{"single page", 1, 1, []int{1}},
		{"no results", 1, 0, []int{1}},
		{"few pages", 2, 3, []int{1, 2, 3}},
		{"start of many", 1, 10, []int{1, 2, 3, 4, 5, 0, 10}},
		{"middle of many", 5, 10, []int{1, 0, 3, 4, 5, 6, 7, 0, 10}},
		{"end of many", 10, 10, []int{1, 0, 6, 7, 8, 9, 10}},
		{"adjacent to first", 4, 10, []int{1, 2, 3, 4, 5, 6, 0, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Result{Page: tt.page, TotalPages: tt.totalPages, PageSize: 10}
			p := BuildPagination(res, "/blogs", State{})

			var got []int
			for _, link := range p.Pages {
				if link.IsEllipsis {
					got = append(got, 0)
				} else {
					got = append(got, link.Number)
				}
			}
			if len(got) != len(tt.wantNumbers) {
				t.Fatalf("pages = %v, want %v", got, tt.wantNumbers)
			}
			for i := range got {
				if got[i] != tt.wantNumbers[i] {
					t.Fatalf("pages = %v, want %v", got, tt.wantNumbers)
				}
			}
		})
	}
}

func TestBuildPaginationPreservesQuery(t *testing.T) {
	st := State{SortField: "title", SortDir: Desc, Search: "go", Page: 2, PageSize: 5}
	res := Result{Page: 2, TotalPages: 3, PageSize: 5}
	p := BuildPagination(res, "/blogs", st)

	if !p.HasPrev || !p.HasNext {
		t.Errorf("HasPrev=%v HasNext=%v, want both true", p.HasPrev, p.HasNext)
	}
	next := p.NextURL()
	for _, want := range []string{"/blogs?", "sort=title", "dir=desc", "q=go", "size=5", "page=3"} {
		if !strings.Contains(next, want) {
			t.Errorf("NextURL() = %q, missing %q", next, want)
		}
	}
	if strings.Count(next, "page=") != 1 {
		t.Errorf("NextURL() = %q, want exactly one page param", next)
	}
	if !p.ShouldShow() {
		t.Error("ShouldShow() = false, want true")
	}
}

func TestLinks(t *testing.T) {
	st := State{Search: "go", Page: 3}
	res := Result{SortField: "title", SortDir: Asc, Page: 3, PageSize: 10}
	l := NewLinks("/blogs", st, res)

	if got := l.Sort("title"); !strings.Contains(got, "dir=desc") || strings.Contains(got, "page=") {
		t.Errorf("Sort(title) = %q, want desc on page 1", got)
	}
	if got := l.Sort("author"); strings.Contains(got, "dir=") || !strings.Contains(got, "sort=author") {
		t.Errorf("Sort(author) = %q, want ascending author", got)
	}
	if got := l.SortIndicator("title"); got != "▲" {
		t.Errorf("SortIndicator(title) = %q", got)
	}
	if got := l.SortIndicator("author"); got != "" {
		t.Errorf("SortIndicator(author) = %q", got)
	}
	if got := l.PageSize(20); !strings.Contains(got, "size=20") || strings.Contains(got, "page=") {
		t.Errorf("PageSize(20) = %q", got)
	}
	if got := l.ToggleAll([]string{"1", "2"}); !strings.Contains(got, "sel=1%2C2") {
		t.Errorf("ToggleAll = %q", got)
	}
	if got := l.ToggleOne("7"); !strings.Contains(got, "sel=7") {
		t.Errorf("ToggleOne = %q", got)
	}

	hidden := l.Hidden(ParamSearch, ParamPage)
	for _, kv := range hidden {
		if kv[0] == ParamSearch || kv[0] == ParamPage {
			t.Errorf("Hidden kept excluded param %q", kv[0])
		}
	}
}
