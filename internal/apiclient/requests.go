// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

// Blog statuses offered by the editor.
const (
	BlogStatusDraft     = "Draft"
	BlogStatusPublished = "Published"
	BlogStatusArchived  = "Archived"
)

// BlogStatuses lists the selectable blog statuses in display order.
var BlogStatuses = []string{BlogStatusDraft, BlogStatusPublished, BlogStatusArchived}

// BlogInput is the create/update payload of a blog post. ID is set only for
// updates.
type BlogInput struct {
	ID             string
	Category       string
	Title          string `form:"title" validate:"required"`
	Poster         *File
	PosterAlt      string
	Image          *File
	ImageAlt       string
	Description    string
	Author         string
	PublishDate    string
	ReadTime       string
	Status         string
	SEOTitle       string
	SEODescription string
	SEOKeywords    string
	OGTitle        string
	OGDescription  string
	OGImage        *File
	OGType         string
	OGImageAlt     string
}

// Form builds the multipart body. Files and status are only sent when set.
func (in BlogInput) Form() *Form {
	f := NewForm()
	f.AddIfSet("id", in.ID)
	f.Add("category", in.Category).
		Add("title", in.Title).
		AddFile("poster", in.Poster).
		Add("poster_alt", in.PosterAlt).
		AddFile("image", in.Image).
		Add("image_alt", in.ImageAlt).
		Add("description", in.Description).
		Add("author", in.Author).
		Add("publish_date", in.PublishDate).
		Add("read_time", in.ReadTime).
		AddIfSet("status", in.Status).
		Add("seo_title", in.SEOTitle).
		Add("seo_description", in.SEODescription).
		Add("seo_keywords", in.SEOKeywords).
		Add("og_title", in.OGTitle).
		Add("og_description", in.OGDescription).
		AddFile("og_image", in.OGImage).
		Add("og_type", in.OGType).
		Add("og_image_alt", in.OGImageAlt)
	return f
}

// PortfolioInput is the create/update payload of a portfolio project.
type PortfolioInput struct {
	ID              string
	Category        string `form:"category" validate:"required"`
	Title           string `form:"title" validate:"required"`
	Description     string
	ProjectDuration string `form:"project_duration" validate:"required"`
	WebsiteLink     string
	Image           *File
	Technology      []string `form:"technology" validate:"required,min=1,dive,required"`
}

// Form builds the multipart body. Technology ids travel as one JSON array
// field.
func (in PortfolioInput) Form() (*Form, error) {
	f := NewForm()
	f.AddIfSet("id", in.ID)
	f.Add("category", in.Category).
		Add("title", in.Title).
		Add("description", in.Description).
		Add("project_duration", in.ProjectDuration).
		Add("website_link", in.WebsiteLink).
		AddFile("image", in.Image)
	if len(in.Technology) > 0 {
		if err := f.AddJSON("technology", in.Technology); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// CategoryInput adds a blog or portfolio category.
type CategoryInput struct {
	Category string `form:"category" validate:"required"`
}

// Form builds the multipart body.
func (in CategoryInput) Form() *Form {
	return NewForm().Add("category", in.Category)
}

// TechnologyInput adds a technology with an optional logo.
type TechnologyInput struct {
	Title string `form:"title" validate:"required"`
	Image *File
}

// Form builds the multipart body.
func (in TechnologyInput) Form() *Form {
	return NewForm().Add("title", in.Title).AddFile("image", in.Image)
}

// LoginInput carries admin credentials.
type LoginInput struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Form builds the multipart body.
func (in LoginInput) Form() *Form {
	return NewForm().Add("email", in.Email).Add("password", in.Password)
}
