// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Category is the canonical shape of every category-like entity: blog
// categories, portfolio categories and technologies.
type Category struct {
	ID     string
	Name   string
	Status string
	Image  string
}

// Keys of the canonical category record.
const (
	CategoryKeyID     = "id"
	CategoryKeyName   = "name"
	CategoryKeyStatus = "status"
	CategoryKeyImage  = "image"
)

// Observed backend variants, in priority order.
var (
	categoryIDKeys   = []string{"id", "_id", "category"}
	categoryNameKeys = []string{"category", "name", "title", "technology"}
)

// NormalizeCategory converts one backend category value into the canonical
// shape. The backend has been seen to send:
//
//	"Design"                                   bare name, also used as id
//	{"id": 3, "category": "Design"}            blog/portfolio categories
//	{"_id": "65a..", "name": "Design"}         document-store ids
//	{"id": 7, "title": "Go", "image": "..."}   technologies
//	{"technology": "Go"}                       legacy technology rows
//
// Values of any other shape are rejected.
func NormalizeCategory(v any) (Category, bool) {
	if s, ok := v.(string); ok {
		if s == "" {
			return Category{}, false
		}
		return Category{ID: s, Name: s}, true
	}

	rec, ok := AsRecord(v)
	if !ok {
		return Category{}, false
	}

	c := Category{
		ID:     firstText(rec, categoryIDKeys),
		Name:   firstText(rec, categoryNameKeys),
		Status: rec.String("status"),
		Image:  rec.String("image"),
	}
	if c.ID == "" {
		c.ID = c.Name
	}
	if c.Name == "" {
		c.Name = c.ID
	}
	if c.ID == "" {
		return Category{}, false
	}
	return c, true
}

// NormalizeCategories converts a category list payload into canonical
// records, dropping entries that cannot be normalized.
func NormalizeCategories(payload any) []Record {
	items, ok := payload.([]any)
	if !ok {
		if payload == nil {
			return []Record{}
		}
		items = []any{payload}
	}

	out := make([]Record, 0, len(items))
	for _, item := range items {
		if c, ok := NormalizeCategory(item); ok {
			out = append(out, c.Record())
		}
	}
	return out
}

// Record returns the canonical record form of the category.
func (c Category) Record() Record {
	return Record{
		CategoryKeyID:     c.ID,
		CategoryKeyName:   c.Name,
		CategoryKeyStatus: c.Status,
		CategoryKeyImage:  c.Image,
	}
}

// CategoryFromRecord reads a canonical category record.
func CategoryFromRecord(r Record) Category {
	return Category{
		ID:     r.String(CategoryKeyID),
		Name:   r.String(CategoryKeyName),
		Status: r.String(CategoryKeyStatus),
		Image:  r.String(CategoryKeyImage),
	}
}

// Active reports whether the category is shown as active. Only an explicit
// "inactive" status disables a category.
func (c Category) Active() bool {
	return c.Status != "inactive"
}

func firstText(r Record, keys []string) string {
	for _, key := range keys {
		if s := r.String(key); s != "" {
			return s
		}
	}
	return ""
}
