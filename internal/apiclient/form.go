// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// File is an uploaded file forwarded to the backend as one multipart part.
// Its bytes come from Open when set, otherwise from Content.
type File struct {
	Filename    string
	ContentType string
	Content     io.Reader
	// Open is called while the part is written; the reader is closed after.
	Open func() (io.ReadCloser, error)
}

type formPart struct {
	name  string
	value string
	file  *File
}

// Form is the request body of every backend call: an ordered list of text
// fields and file parts encoded as multipart/form-data.
type Form struct {
	parts []formPart
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// Add appends a text field. Empty values are sent as empty fields.
func (f *Form) Add(name, value string) *Form {
	f.parts = append(f.parts, formPart{name: name, value: value})
	return f
}

// AddIfSet appends a text field only when value is non-empty.
func (f *Form) AddIfSet(name, value string) *Form {
	if value == "" {
		return f
	}
	return f.Add(name, value)
}

// AddJSON appends a field holding the JSON encoding of v.
func (f *Form) AddJSON(name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding field %s: %w", name, err)
	}
	f.Add(name, string(b))
	return nil
}

// AddFile appends a file part. A nil file is skipped so callers can pass an
// optional upload straight through.
func (f *Form) AddFile(name string, file *File) *Form {
	if file == nil || (file.Content == nil && file.Open == nil) {
		return f
	}
	f.parts = append(f.parts, formPart{name: name, file: file})
	return f
}

// Get returns the first text value for name.
func (f *Form) Get(name string) string {
	if f == nil {
		return ""
	}
	for _, p := range f.parts {
		if p.name == name && p.file == nil {
			return p.value
		}
	}
	return ""
}

// HasFile reports whether a file part named name is present.
func (f *Form) HasFile(name string) bool {
	if f == nil {
		return false
	}
	for _, p := range f.parts {
		if p.name == name && p.file != nil {
			return true
		}
	}
	return false
}

// Names returns the part names in order.
func (f *Form) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.parts))
	for _, p := range f.parts {
		names = append(names, p.name)
	}
	return names
}

// Encode writes the form as a multipart body and returns it with its
// Content-Type header value. A nil form encodes as an empty multipart body.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	if err := f.writeParts(mw); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}

// Stream returns the multipart body as a reader that is written while it is
// consumed, so file parts are never held in memory whole. Closing the reader
// stops the writer.
func (f *Form) Stream() (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(f.writeParts(mw))
	}()
	return pr, mw.FormDataContentType()
}

func (f *Form) writeParts(mw *multipart.Writer) error {
	if f != nil {
		for _, p := range f.parts {
			if p.file == nil {
				if err := mw.WriteField(p.name, p.value); err != nil {
					return fmt.Errorf("writing field %s: %w", p.name, err)
				}
				continue
			}
			if err := writeFilePart(mw, p.name, p.file); err != nil {
				return err
			}
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart writer: %w", err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(mw *multipart.Writer, name string, file *File) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filename := file.Filename
	if filename == "" {
		filename = name
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(name), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)

	w, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("creating file part %s: %w", name, err)
	}

	src := file.Content
	if file.Open != nil {
		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf("opening file part %s: %w", name, err)
		}
		defer func() { _ = rc.Close() }()
		src = rc
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("copying file part %s: %w", name, err)
	}
	return nil
}
