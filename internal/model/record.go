// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the in-memory shapes of content records returned by
// the remote backend and the single place where their loose JSON shapes are
// normalized.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one entity as returned by the backend: a mapping of field names to
// scalar values. JSON numbers are kept as json.Number so ids compare by their
// decimal text regardless of whether the backend sent 2 or "2".
type Record map[string]any

// idKeys lists the fields that identify a record, in lookup order.
var idKeys = []string{"id", "_id"}

// ID returns the record identifier as text, or "" when the record has none.
func (r Record) ID() string {
	for _, key := range idKeys {
		if id := Text(r[key]); id != "" {
			return id
		}
	}
	return ""
}

// MatchesID reports whether any of the record's identifier fields equals id.
func (r Record) MatchesID(id string) bool {
	if id == "" {
		return false
	}
	for _, key := range idKeys {
		if Text(r[key]) == id {
			return true
		}
	}
	return false
}

// String returns the named field as text. Missing and null fields are "".
func (r Record) String(field string) string {
	return Text(r[field])
}

// Strings returns a multi-valued field as a list of texts. It accepts a JSON
// array, a string holding an encoded JSON array (the form the create/update
// endpoints accept), or a single scalar.
func (r Record) Strings(field string) []string {
	switch v := r[field].(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := Text(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return append([]string(nil), v...)
	case string:
		trimmed := strings.TrimSpace(v)
		if strings.HasPrefix(trimmed, "[") {
			var items []any
			dec := json.NewDecoder(strings.NewReader(trimmed))
			dec.UseNumber()
			if err := dec.Decode(&items); err == nil {
				return Record{field: items}.Strings(field)
			}
		}
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	default:
		if s := Text(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// Has reports whether the field is present and non-null.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a shallow copy of r with every field of other laid over it.
func (r Record) Merge(other Record) Record {
	out := r.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Text renders a decoded JSON scalar as text.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// Records converts a decoded JSON payload into records. Array elements that
// are not JSON objects are skipped; a single object becomes a one-item list.
func Records(payload any) []Record {
	switch v := payload.(type) {
	case []any:
		out := make([]Record, 0, len(v))
		for _, item := range v {
			if rec, ok := AsRecord(item); ok {
				out = append(out, rec)
			}
		}
		return out
	case []Record:
		return append([]Record(nil), v...)
	default:
		if rec, ok := AsRecord(v); ok {
			return []Record{rec}
		}
		return []Record{}
	}
}

// AsRecord converts a decoded JSON object into a Record.
func AsRecord(v any) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, true
	case map[string]any:
		return Record(t), true
	default:
		return nil, false
	}
}
