// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"slices"
	"sort"

	"golang.org/x/text/cases"

	"github.com/olegiv/folio-admin/internal/model"
)

// AllSelected reports whether every filtered id is selected. An empty
// filtered set is never fully selected.
func AllSelected(selected, filtered []string) bool {
	if len(filtered) == 0 {
		return false
	}
	for _, id := range filtered {
		if !slices.Contains(selected, id) {
			return false
		}
	}
	return true
}

// ToggleAll deselects the filtered ids when all are selected and otherwise
// selects exactly the filtered ids.
func ToggleAll(selected, filtered []string) []string {
	if AllSelected(selected, filtered) {
		out := make([]string, 0, len(selected))
		for _, id := range selected {
			if !slices.Contains(filtered, id) {
				out = append(out, id)
			}
		}
		return out
	}
	return append([]string{}, filtered...)
}

// ToggleOne flips the selection of one id.
func ToggleOne(selected []string, id string) []string {
	if id == "" {
		return selected
	}
	if i := slices.Index(selected, id); i >= 0 {
		return slices.Delete(slices.Clone(selected), i, i+1)
	}
	return append(slices.Clone(selected), id)
}

// FilterOptions returns the distinct non-empty values of value across items,
// sorted case-insensitively.
func FilterOptions(items []model.Record, value Accessor) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, r := range items {
		v := value(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	fold := cases.Fold()
	sort.SliceStable(out, func(i, j int) bool {
		return fold.String(out[i]) < fold.String(out[j])
	})
	return out
}
