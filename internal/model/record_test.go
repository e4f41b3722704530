// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestRecordID(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"json number", Record{"id": json.Number("2")}, "2"},
		{"float", Record{"id": float64(12)}, "12"},
		{"string", Record{"id": "abc"}, "abc"},
		{"underscore id", Record{"_id": "65af"}, "65af"},
		{"id wins over _id", Record{"id": json.Number("1"), "_id": "x"}, "1"},
		{"missing", Record{"title": "A"}, ""},
		{"null", Record{"id": nil}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.ID(); got != tt.want {
				t.Errorf("ID() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestRecordMatchesID(t *testing.T) {
	rec := Record{"id": json.Number("4"), "_id": "doc-4"}

	for _, id := range []string{"4", "doc-4"} {
		if !rec.MatchesID(id) {
			t.Errorf("MatchesID(%q) = false; want true", id)
		}
	}
	for _, id := range []string{"5", ""} {
		if rec.MatchesID(id) {
			t.Errorf("MatchesID(%q) = true; want false", id)
		}
	}
}

func TestRecordStrings(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want []string
	}{
		{"array", []any{json.Number("1"), json.Number("3")}, []string{"1", "3"}},
		{"encoded array", "[1, 3]", []string{"1", "3"}},
		{"scalar string", "Go", []string{"Go"}},
		{"scalar number", json.Number("9"), []string{"9"}},
		{"empty string", "", nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{"technology": tt.val}
			got := rec.Strings("technology")
			if !slices.Equal(got, tt.want) || (got == nil) != (tt.want == nil) {
				t.Errorf("Strings() = %#v; want %#v", got, tt.want)
			}
		})
	}
}

func TestRecordMerge(t *testing.T) {
	orig := Record{"id": json.Number("2"), "title": "B", "author": "Ann"}
	merged := orig.Merge(Record{"id": json.Number("2"), "title": "B2"})

	if got := merged.String("title"); got != "B2" {
		t.Errorf("merged title = %q; want %q", got, "B2")
	}
	if got := merged.String("author"); got != "Ann" {
		t.Errorf("merged author = %q; want %q", got, "Ann")
	}
	if got := orig.String("title"); got != "B" {
		t.Errorf("receiver title = %q after merge; want %q", got, "B")
	}
}

func TestRecords(t *testing.T) {
	payload := []any{
		map[string]any{"id": json.Number("1"), "title": "A"},
		"stray",
		map[string]any{"id": json.Number("2"), "title": "B"},
	}

	recs := Records(payload)
	if len(recs) != 2 {
		t.Fatalf("len(Records) = %d; want 2", len(recs))
	}
	if recs[0].ID() != "1" || recs[1].ID() != "2" {
		t.Errorf("ids = %q, %q; want 1, 2", recs[0].ID(), recs[1].ID())
	}

	if got := len(Records(map[string]any{"id": "x"})); got != 1 {
		t.Errorf("single object gave %d records; want 1", got)
	}
	if got := Records(nil); got == nil || len(got) != 0 {
		t.Errorf("Records(nil) = %#v; want empty non-nil slice", got)
	}
}
