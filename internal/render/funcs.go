// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html"
	"html/template"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/folio-admin/internal/model"
)

var (
	// richText allows the safe subset of HTML a content editor produces.
	richText = bluemonday.UGCPolicy()
	// plainText strips all markup.
	plainText = bluemonday.StrictPolicy()
)

// backendTimeLayouts are the timestamp shapes the backend returns.
var backendTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// TemplateFuncs returns the template functions available to every page.
func (r *Renderer) TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"lower":    strings.ToLower,
		"upper":    strings.ToUpper,
		"truncate": Truncate,
		"contains": func(list []string, s string) bool {
			return slices.Contains(list, s)
		},
		"join":     strings.Join,
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				dict[key] = values[i+1]
			}
			return dict
		},

		"field": func(rec model.Record, name string) string {
			return rec.String(name)
		},
		"sanitize":   Sanitize,
		"preview":    Preview,
		"imageURL":   r.ImageURL,
		"formatDate": FormatDate,
	}
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// Sanitize renders backend rich text with unsafe markup removed.
func Sanitize(s string) template.HTML {
	return template.HTML(richText.Sanitize(s)) //nolint:gosec // sanitized by bluemonday
}

// Preview returns the plain text of s, whitespace-collapsed and cut to n
// runes, for table cells.
func Preview(s string, n int) string {
	text := html.UnescapeString(plainText.Sanitize(s))
	return Truncate(strings.Join(strings.Fields(text), " "), n)
}

// ImageURL resolves an image path returned by the backend. Absolute URLs
// pass through; relative paths are joined to the image base URL.
func (r *Renderer) ImageURL(p string) string {
	p = strings.TrimSpace(p)
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "http://"), strings.HasPrefix(p, "https://"), strings.HasPrefix(p, "data:"):
		return p
	case r.imageBaseURL == "":
		return "/" + strings.TrimLeft(p, "/")
	default:
		return r.imageBaseURL + "/" + strings.TrimLeft(p, "/")
	}
}

// FormatDate formats a backend timestamp as "Jan 2, 2006". Values that do
// not parse are shown as they are.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range backendTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}
