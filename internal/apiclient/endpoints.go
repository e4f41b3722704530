// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

// Endpoint is a backend path relative to the base URL.
type Endpoint string

// Backend endpoints. The trailing slash is part of the contract.
const (
	EndpointLogin = Endpoint("admin_login/")

	EndpointBlogList   = Endpoint("all_blog_list/")
	EndpointBlogCreate = Endpoint("blog_create/")
	EndpointBlogUpdate = Endpoint("blog_update/")

	EndpointBlogCategoryList   = Endpoint("all_blog_category/")
	EndpointBlogCategoryCreate = Endpoint("blog_category_create/")

	EndpointPortfolioList   = Endpoint("all_portfolio_list/")
	EndpointPortfolioCreate = Endpoint("portfolio_create/")
	EndpointPortfolioUpdate = Endpoint("portfolio_update/")

	EndpointPortfolioCategoryList   = Endpoint("all_portfolio_category/")
	EndpointPortfolioCategoryCreate = Endpoint("portfolio_category_create/")

	EndpointTechnologyList   = Endpoint("all_technology/")
	EndpointTechnologyCreate = Endpoint("technology_create/")
)

// Resource describes one entity collection on the backend. Update is empty
// for collections the backend cannot update.
type Resource struct {
	Name   string
	List   Endpoint
	Create Endpoint
	Update Endpoint

	// ListKeys are the payload keys tried after "data" on list responses.
	ListKeys []string
	// ItemKeys are the payload keys tried after "data" on update responses.
	ItemKeys []string
}

// CanUpdate reports whether the backend exposes an update endpoint.
func (r Resource) CanUpdate() bool {
	return r.Update != ""
}

// Backend resources.
var (
	Blogs = Resource{
		Name:     "blogs",
		List:     EndpointBlogList,
		Create:   EndpointBlogCreate,
		Update:   EndpointBlogUpdate,
		ListKeys: []string{"blogs"},
		ItemKeys: []string{"blog"},
	}
	Portfolios = Resource{
		Name:     "portfolios",
		List:     EndpointPortfolioList,
		Create:   EndpointPortfolioCreate,
		Update:   EndpointPortfolioUpdate,
		ListKeys: []string{"portfolios"},
		ItemKeys: []string{"portfolio", "project"},
	}
	BlogCategories = Resource{
		Name:     "blog_categories",
		List:     EndpointBlogCategoryList,
		Create:   EndpointBlogCategoryCreate,
		ListKeys: []string{"categories"},
	}
	PortfolioCategories = Resource{
		Name:     "portfolio_categories",
		List:     EndpointPortfolioCategoryList,
		Create:   EndpointPortfolioCategoryCreate,
		ListKeys: []string{"categories"},
	}
	Technologies = Resource{
		Name:     "technologies",
		List:     EndpointTechnologyList,
		Create:   EndpointTechnologyCreate,
		ListKeys: []string{"categories", "technologies"},
	}
)
