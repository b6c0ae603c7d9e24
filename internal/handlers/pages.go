package handlers

import (
	"finitefield.org/humor-web/internal/config"
	"finitefield.org/humor-web/internal/nav"
	"finitefield.org/humor-web/internal/seo"
)

// Lang is the language of every page.
const Lang = "ru"

// PageData is the view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics config.Analytics

	Path        string
	Breadcrumbs []nav.Crumb

	// Catalog is the catalog view rendered inside the layout.
	Catalog any
	// Fragment marks an htmx partial; layout parts are swapped out of band.
	Fragment bool
}

// NewPageData fills the layout fields shared by every page.
func NewPageData(title, path string, analytics config.Analytics) PageData {
	return PageData{
		Title:     title,
		Lang:      Lang,
		Path:      path,
		Analytics: analytics,
		SEO: seo.Meta{
			Title:  title,
			Robots: "index,follow",
		},
	}
}
