// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/olegiv/folio-admin/internal/model"
)

// Principal is the signed-in administrator. Fields holds whatever identity
// data the backend returned at login; Token and Username are kept apart so
// they cannot be shadowed by it.
type Principal struct {
	Username string
	Token    string
	Fields   map[string]any
}

// MarshalJSON writes the principal as one flat object.
func (p Principal) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Fields)+2)
	maps.Copy(out, p.Fields)
	out["token"] = p.Token
	out["username"] = p.Username
	return json.Marshal(out)
}

// UnmarshalJSON reads the flat object written by MarshalJSON.
func (p *Principal) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("principal is not a JSON object")
	}
	p.Token = model.Text(raw["token"])
	p.Username = model.Text(raw["username"])
	delete(raw, "token")
	delete(raw, "username")
	p.Fields = raw
	return nil
}

// Field returns an identity field as text.
func (p *Principal) Field(name string) string {
	if p == nil {
		return ""
	}
	return model.Text(p.Fields[name])
}

// DisplayName is "firstname lastname" when known, else the username.
func (p *Principal) DisplayName() string {
	if p == nil {
		return ""
	}
	name := strings.TrimSpace(p.Field("firstname") + " " + p.Field("lastname"))
	if name == "" {
		name = p.Field("name")
	}
	if name == "" {
		name = p.Username
	}
	return name
}

// Email returns the email field, falling back to the username used to sign
// in.
func (p *Principal) Email() string {
	if e := p.Field("email"); e != "" {
		return e
	}
	if p == nil {
		return ""
	}
	return p.Username
}

// Right is one entry of user_rights. Entries are either plain names or
// objects naming a module with per-action "true"/"false" flags.
type Right struct {
	Module string
	View   bool
	Edit   bool
	Create bool
	Delete bool
	// Granular is set when the entry carried any action flag.
	Granular bool
}

// rightActions are the per-action flags of a right object.
var rightActions = []string{"view", "edit", "create", "delete"}

// Rights lists user_rights. Entries naming nothing are skipped.
func (p *Principal) Rights() []Right {
	if p == nil {
		return nil
	}
	list, ok := p.Fields["user_rights"].([]any)
	if !ok {
		var out []Right
		for _, name := range model.Record(p.Fields).Strings("user_rights") {
			out = append(out, Right{Module: name})
		}
		return out
	}
	out := make([]Right, 0, len(list))
	for _, item := range list {
		rec, ok := model.AsRecord(item)
		if !ok {
			if s := model.Text(item); s != "" {
				out = append(out, Right{Module: s})
			}
			continue
		}
		r := Right{}
		for _, key := range []string{"module", "name", "right", "title", "permission"} {
			if r.Module = rec.String(key); r.Module != "" {
				break
			}
		}
		if r.Module == "" {
			continue
		}
		for _, action := range rightActions {
			if !rec.Has(action) {
				continue
			}
			r.Granular = true
			granted := strings.EqualFold(rec.String(action), "true")
			switch action {
			case "view":
				r.View = granted
			case "edit":
				r.Edit = granted
			case "create":
				r.Create = granted
			case "delete":
				r.Delete = granted
			}
		}
		out = append(out, r)
	}
	return out
}

// Details returns the identity fields shown on the profile page, sorted by
// name, leaving out the token and nested values.
func (p *Principal) Details() []Detail {
	if p == nil {
		return nil
	}
	out := make([]Detail, 0, len(p.Fields))
	for _, k := range slices.Sorted(maps.Keys(p.Fields)) {
		switch p.Fields[k].(type) {
		case map[string]any, []any:
			continue
		}
		if strings.Contains(strings.ToLower(k), "password") {
			continue
		}
		out = append(out, Detail{Name: k, Value: model.Text(p.Fields[k])})
	}
	return out
}

// Detail is one profile field.
type Detail struct {
	Name  string
	Value string
}
