// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/olegiv/folio-admin/internal/model"
)

// NetworkErrorMessage is shown whenever a call fails below the application
// level: transport errors and bodies that are not JSON.
const NetworkErrorMessage = "Network error"

// ErrNetwork wraps transport and decoding failures.
var ErrNetwork = errors.New("network error")

// APIError is an application-level failure reported by the backend.
type APIError struct {
	Endpoint Endpoint
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: request failed", e.Endpoint)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

// Message returns the text to show a user for err. Backend messages are
// surfaced verbatim, transport failures become NetworkErrorMessage, and
// anything else falls back to fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNetwork) {
		return NetworkErrorMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Envelope is a decoded backend response body.
type Envelope map[string]any

// decodeEnvelope parses a JSON object, keeping numbers as json.Number.
func decodeEnvelope(body []byte) (Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var env Envelope
	if err := dec.Decode(&env); err != nil {
		return nil, err
	}
	if env == nil {
		return nil, errors.New("response is not a JSON object")
	}
	return env, nil
}

// OK reports whether the backend signalled success. Two signals are in use
// and neither is documented as canonical, so both are honoured:
// status "true" and statuscode 200.
func (e Envelope) OK() bool {
	if strings.EqualFold(model.Text(e["status"]), "true") {
		return true
	}
	return model.Text(e["statuscode"]) == "200"
}

// Message returns the backend's human-readable message.
func (e Envelope) Message() string {
	return model.Text(e["message"])
}

// Token returns the top-level token, if any.
func (e Envelope) Token() string {
	return model.Text(e["token"])
}

// Payload returns "data" or, when that is absent or null, the first present
// fallback key.
func (e Envelope) Payload(fallbacks ...string) any {
	if v, ok := e["data"]; ok && v != nil {
		return v
	}
	for _, key := range fallbacks {
		if v, ok := e[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Err converts a non-success envelope into an *APIError.
func (e Envelope) Err(endpoint Endpoint) error {
	if e.OK() {
		return nil
	}
	return &APIError{Endpoint: endpoint, Message: e.Message()}
}
