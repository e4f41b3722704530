// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/validation"
)

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(apiclient.PortfolioInput{
		Category:        "2",
		Title:           "Site",
		ProjectDuration: "3 months",
		Technology:      []string{"1", "4"},
	})
	assert.NoError(t, err)

	assert.NoError(t, v.Validate(apiclient.BlogInput{Title: "Hello"}))
	assert.NoError(t, v.Validate(apiclient.BlogInput{Title: "Hello", Status: apiclient.BlogStatusArchived}))
	assert.NoError(t, v.Validate(apiclient.BlogInput{Title: "Hello", Status: "Scheduled"}),
		"status values are left to the backend")
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name  string
		input any
		want  validation.FieldErrors
	}{
		{
			name:  "blog title required",
			input: apiclient.BlogInput{Description: "body"},
			want:  validation.FieldErrors{"title": "is required"},
		},
		{
			name:  "portfolio required fields",
			input: apiclient.PortfolioInput{},
			want: validation.FieldErrors{
				"category":         "is required",
				"title":            "is required",
				"project_duration": "is required",
				"technology":       "is required",
			},
		},
		{
			name: "portfolio empty technology list",
			input: apiclient.PortfolioInput{
				Category: "1", Title: "x", ProjectDuration: "1w",
				Technology: []string{},
			},
			want: validation.FieldErrors{"technology": "needs at least 1 selected"},
		},
		{
			name: "portfolio blank technology id",
			input: apiclient.PortfolioInput{
				Category: "1", Title: "x", ProjectDuration: "1w",
				Technology: []string{"3", ""},
			},
			want: validation.FieldErrors{"technology": "is required"},
		},
		{
			name:  "category required",
			input: apiclient.CategoryInput{},
			want:  validation.FieldErrors{"category": "is required"},
		},
		{
			name:  "technology title required",
			input: apiclient.TechnologyInput{},
			want:  validation.FieldErrors{"title": "is required"},
		},
		{
			name:  "login credentials required",
			input: apiclient.LoginInput{Email: "a@b.c"},
			want:  validation.FieldErrors{"password": "is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			require.Error(t, err)

			fe := validation.Fields(err)
			require.NotNil(t, fe, "expected FieldErrors, got %T", err)
			assert.Equal(t, tt.want, fe)
		})
	}
}

func TestFieldErrors_Error(t *testing.T) {
	fe := validation.FieldErrors{"title": "is required", "category": "is required"}
	assert.Equal(t, "validation failed: category is required; title is required", fe.Error())
}

func TestFields_NonValidationError(t *testing.T) {
	assert.Nil(t, validation.Fields(errors.New("boom")))
	assert.Nil(t, validation.Fields(nil))
}
