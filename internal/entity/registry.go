// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package entity

import (
	"log/slog"

	"github.com/olegiv/folio-admin/internal/apiclient"
	"github.com/olegiv/folio-admin/internal/model"
)

// Store configurations. Portfolios and projects share the backend resource
// but keep separate caches and wording.
var (
	BlogsConfig = Config{
		Name:     "blogs",
		Resource: apiclient.Blogs,
		Messages: Messages{
			Created:      "Blog created successfully!",
			Updated:      "Blog updated successfully!",
			FetchFailed:  "Failed to fetch blogs",
			CreateFailed: "Failed to create blog",
			UpdateFailed: "Failed to update blog",
		},
	}
	PortfoliosConfig = Config{
		Name:     "portfolios",
		Resource: apiclient.Portfolios,
		Messages: Messages{
			Created:      "Project added successfully!",
			Updated:      "Portfolio updated successfully!",
			FetchFailed:  "Failed to fetch portfolios",
			CreateFailed: "Failed to add portfolio",
			UpdateFailed: "Failed to update portfolio",
		},
	}
	ProjectsConfig = Config{
		Name:     "projects",
		Resource: apiclient.Portfolios,
		Messages: Messages{
			Created:      "Project added successfully!",
			Updated:      "Project updated successfully!",
			FetchFailed:  "Failed to fetch projects",
			CreateFailed: "Failed to add project",
			UpdateFailed: "Failed to update project",
		},
	}
	BlogCategoriesConfig = Config{
		Name:      "blog_categories",
		Resource:  apiclient.BlogCategories,
		Normalize: model.NormalizeCategories,
		Messages: Messages{
			Created:      "Category added successfully!",
			FetchFailed:  "Failed to fetch categories",
			CreateFailed: "Failed to add category",
		},
	}
	PortfolioCategoriesConfig = Config{
		Name:      "portfolio_categories",
		Resource:  apiclient.PortfolioCategories,
		Normalize: model.NormalizeCategories,
		Messages: Messages{
			Created:      "Category added successfully!",
			FetchFailed:  "Failed to fetch categories",
			CreateFailed: "Failed to add category",
		},
	}
	TechnologiesConfig = Config{
		Name:      "technologies",
		Resource:  apiclient.Technologies,
		Normalize: model.NormalizeCategories,
		Messages: Messages{
			Created:      "Category added successfully!",
			FetchFailed:  "Failed to fetch categories",
			CreateFailed: "Failed to add category",
		},
	}
)

// Stores is the set of entity stores shared by all requests.
type Stores struct {
	Blogs               *Store
	Portfolios          *Store
	Projects            *Store
	BlogCategories      *Store
	PortfolioCategories *Store
	Technologies        *Store
}

// NewStores creates every entity store on one backend.
func NewStores(backend apiclient.Poster, logger *slog.Logger) *Stores {
	return &Stores{
		Blogs:               New(backend, BlogsConfig, logger),
		Portfolios:          New(backend, PortfoliosConfig, logger),
		Projects:            New(backend, ProjectsConfig, logger),
		BlogCategories:      New(backend, BlogCategoriesConfig, logger),
		PortfolioCategories: New(backend, PortfolioCategoriesConfig, logger),
		Technologies:        New(backend, TechnologiesConfig, logger),
	}
}

// All returns the stores in a fixed order.
func (s *Stores) All() []*Store {
	return []*Store{s.Blogs, s.Portfolios, s.Projects, s.BlogCategories, s.PortfolioCategories, s.Technologies}
}
