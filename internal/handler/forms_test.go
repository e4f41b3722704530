// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"testing"

	"github.com/olegiv/folio-admin/internal/model"
	"github.com/olegiv/folio-admin/internal/validation"
)

func TestRecordValues(t *testing.T) {
	rec := model.Record{"title": "Hello", "read_time": float64(5), "author": nil}

	v := recordValues(rec, "title", "read_time", "author", "missing")

	if got := v.Get("title"); got != "Hello" {
		t.Errorf("title = %q; want %q", got, "Hello")
	}
	if got := v.Get("read_time"); got != "5" {
		t.Errorf("read_time = %q; want %q", got, "5")
	}
	// Null fields are left empty.
	if v.Has("author") {
		t.Error("author should not be set")
	}
	if v.Has("missing") {
		t.Error("missing should not be set")
	}
}

func TestFormView(t *testing.T) {
	fv := FormView{
		Values: url.Values{"title": {"Hi"}, "technology": {"1", "3"}},
		Errors: validation.FieldErrors{"title": "is required"},
	}

	if got := fv.Value("title"); got != "Hi" {
		t.Errorf("Value(title) = %q; want %q", got, "Hi")
	}
	if got := fv.Value("author"); got != "" {
		t.Errorf("Value(author) = %q; want empty", got)
	}
	if !fv.Selected("technology", "3") {
		t.Error("technology 3 should be selected")
	}
	if fv.Selected("technology", "2") {
		t.Error("technology 2 should not be selected")
	}
	if got := fv.FieldError("title"); got != "is required" {
		t.Errorf("FieldError(title) = %q; want %q", got, "is required")
	}
	if got := fv.FieldError("author"); got != "" {
		t.Errorf("FieldError(author) = %q; want empty", got)
	}

	var empty FormView
	if got := empty.Value("title"); got != "" {
		t.Errorf("empty Value(title) = %q; want empty", got)
	}
	if empty.Selected("technology", "1") {
		t.Error("empty form should select nothing")
	}
}

func TestParseForm(t *testing.T) {
	t.Run("url encoded", func(t *testing.T) {
		req := postForm("/", url.Values{"technology": {" 1 ", "", "2"}, "title": {"  x  "}})
		cleanup, err := parseForm(httptest.NewRecorder(), req, testMaxUpload)
		defer cleanup()
		if err != nil {
			t.Fatalf("parseForm: %v", err)
		}

		if got := formValues(req, "technology"); !slices.Equal(got, []string{"1", "2"}) {
			t.Errorf("technology = %v; want [1 2]", got)
		}
		if got := formValue(req, "title"); got != "x" {
			t.Errorf("title = %q; want %q", got, "x")
		}
		if f := formFile(req, "image"); f != nil {
			t.Errorf("formFile without a multipart form = %+v; want nil", f)
		}
	})

	t.Run("multipart with file", func(t *testing.T) {
		req := postMultipart(t, "/", url.Values{"title": {"x"}}, upload{field: "image", filename: "a.png", content: []byte("abc")})
		cleanup, err := parseForm(httptest.NewRecorder(), req, testMaxUpload)
		defer cleanup()
		if err != nil {
			t.Fatalf("parseForm: %v", err)
		}

		f := formFile(req, "image")
		if f == nil {
			t.Fatal("formFile(image) = nil")
		}
		if f.Filename != "a.png" {
			t.Errorf("Filename = %q; want %q", f.Filename, "a.png")
		}
		// Content is opened when the form is sent.
		if f.Content != nil {
			t.Error("Content should be nil until sent")
		}

		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading upload: %v", err)
		}
		if err := rc.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
		if string(b) != "abc" {
			t.Errorf("upload = %q; want %q", b, "abc")
		}

		if f := formFile(req, "poster"); f != nil {
			t.Errorf("formFile(poster) = %+v; want nil", f)
		}
	})

	t.Run("too large", func(t *testing.T) {
		req := postMultipart(t, "/", nil, upload{field: "image", filename: "a.png", content: make([]byte, 2048)})
		cleanup, err := parseForm(httptest.NewRecorder(), req, 256)
		defer cleanup()
		if !errors.Is(err, errUploadTooLarge) {
			t.Errorf("parseForm error = %v; want %v", err, errUploadTooLarge)
		}
	})
}

func TestSubmittedValues_Copies(t *testing.T) {
	req := postForm("/", url.Values{"title": {"a"}})
	if err := req.ParseForm(); err != nil {
		t.Fatalf("ParseForm: %v", err)
	}

	v := submittedValues(req)
	v["title"][0] = "changed"

	if got := req.PostForm.Get("title"); got != "a" {
		t.Errorf("request title = %q; want %q", got, "a")
	}
}

func TestFormErrorMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if got := formErrorMessage(req, errUploadTooLarge); got != "Upload is too large" {
		t.Errorf("formErrorMessage(too large) = %q", got)
	}
	if got := formErrorMessage(req, errors.New("boom")); got != msgInvalidForm {
		t.Errorf("formErrorMessage(other) = %q; want %q", got, msgInvalidForm)
	}
}

func TestEditURL(t *testing.T) {
	if got := editURL(RouteProjects, "42"); got != "/projects/42/edit" {
		t.Errorf("editURL() = %q; want %q", got, "/projects/42/edit")
	}
}

func TestCategoriesFromRecords(t *testing.T) {
	got := categories([]model.Record{
		{"id": "1", "name": "Go", "status": "", "image": "go.png"},
	})
	want := []model.Category{{ID: "1", Name: "Go", Image: "go.png"}}
	if !slices.Equal(got, want) {
		t.Errorf("categories() = %+v; want %+v", got, want)
	}
}
