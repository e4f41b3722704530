// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/entity"
	"github.com/olegiv/folio-admin/internal/model"
	"github.com/olegiv/folio-admin/internal/render"
	"github.com/olegiv/folio-admin/internal/validation"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temp files.
const multipartMemory = 8 << 20

// errUploadTooLarge is returned when a form body exceeds the upload limit.
var errUploadTooLarge = errors.New("upload too large")

// FormView is the data of a create or edit form.
type FormView struct {
	Action  string
	Editing bool
	// Values holds the submitted values, or the record's on first display.
	Values url.Values
	Errors validation.FieldErrors
	// Error is the backend failure of the last submit.
	Error string
	// Record is the stored record being edited.
	Record model.Record
	// Options are the select choices keyed by field name.
	Options map[string][]model.Category
	// Statuses are the blog status choices.
	Statuses []string
}

// Value returns the current value of a field.
func (f FormView) Value(name string) string {
	return f.Values.Get(name)
}

// Selected reports whether v is among the values of a field.
func (f FormView) Selected(name, v string) bool {
	return slices.Contains(f.Values[name], v)
}

// FieldError returns the validation message of a field.
func (f FormView) FieldError(name string) string {
	return f.Errors[name]
}

// recordValues copies the named fields of rec into form values.
func recordValues(rec model.Record, fields ...string) url.Values {
	v := make(url.Values, len(fields))
	for _, name := range fields {
		if rec.Has(name) {
			v.Set(name, rec.String(name))
		}
	}
	return v
}

// parseForm reads a form body of at most maxBytes. Multipart bodies are
// parsed with uploads; the returned cleanup removes their temp files.
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) (cleanup func(), err error) {
	cleanup = func() {}
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(multipartMemory)
		if r.MultipartForm != nil {
			cleanup = func() { _ = r.MultipartForm.RemoveAll() }
		}
	} else {
		err = r.ParseForm()
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return cleanup, errUploadTooLarge
	}
	if err != nil {
		return cleanup, fmt.Errorf("parsing form: %w", err)
	}
	return cleanup, nil
}

// formValue returns a trimmed form value.
func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

// formValues returns the non-empty trimmed values of a repeated field.
func formValues(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.PostForm[name] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// formFile returns the uploaded file of a field, or nil when none was
// chosen. The upload is opened only while it is sent to the backend.
func formFile(r *http.Request, name string) *apiclient.File {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[name]
	if len(headers) == 0 || headers[0].Size == 0 {
		return nil
	}

	fh := headers[0]
	return &apiclient.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// submittedValues returns the posted text values for re-rendering a form.
func submittedValues(r *http.Request) url.Values {
	v := make(url.Values, len(r.PostForm))
	for name, vals := range r.PostForm {
		v[name] = slices.Clone(vals)
	}
	return v
}

// findRecord loads the collection and returns the record named by the id
// URL parameter. Unknown ids flash an error and go back to the list.
func findRecord(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, store *entity.Store, listURL, notFound string) (model.Record, bool) {
	if msg := loadCollection(r.Context(), store); msg != "" {
		flashError(w, r, renderer, listURL, msg)
		return nil, false
	}
	rec, ok := store.Find(chi.URLParam(r, "id"))
	if !ok {
		flashError(w, r, renderer, listURL, notFound)
		return nil, false
	}
	return rec, true
}

// finishSubmit flashes the confirmation, refreshes the collection and
// closes the form.
func finishSubmit(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, store *entity.Store, listURL string, out entity.Outcome) {
	// A failed refresh shows in place of the table on the list page.
	_ = store.FetchAll(r.Context())
	flashSuccess(w, r, renderer, listURL, out.Message)
}

// formErrorMessage renders a form parsing failure.
func formErrorMessage(r *http.Request, err error) string {
	if errors.Is(err, errUploadTooLarge) {
		return "Upload is too large"
	}
	slog.WarnContext(r.Context(), "reading form failed", "error", err)
	return msgInvalidForm
}

// editURL returns the edit form URL of a record.
func editURL(base, id string) string {
	return base + "/" + id + "/edit"
}

// categories converts canonical category records for select options.
func categories(items []model.Record) []model.Category {
	out := make([]model.Category, 0, len(items))
	for _, rec := range items {
		out = append(out, model.CategoryFromRecord(rec))
	}
	return out
}
