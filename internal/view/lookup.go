// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"github.com/olegiv/folio-admin/internal/model"
)

// Lookup resolves category and technology ids to display names.
type Lookup map[string]model.Category

// NewLookup indexes normalized category records by id.
func NewLookup(records []model.Record) Lookup {
	l := make(Lookup, len(records))
	for _, r := range records {
		c := model.CategoryFromRecord(r)
		if c.ID != "" {
			l[c.ID] = c
		}
	}
	return l
}

// Name returns the name for id, or id itself when it is unknown.
func (l Lookup) Name(id string) string {
	if c, ok := l[id]; ok && c.Name != "" {
		return c.Name
	}
	return id
}

// Names resolves every id in order.
func (l Lookup) Names(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.Name(id))
	}
	return out
}

// Resolves reports whether id is known.
func (l Lookup) Resolves(id string) bool {
	_, ok := l[id]
	return ok
}

// FieldName returns an accessor that resolves the id held in field.
func (l Lookup) FieldName(field string) Accessor {
	return func(r model.Record) string {
		return l.Name(r.String(field))
	}
}
