package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/humor-web/internal/catalog"
	handlersPkg "finitefield.org/humor-web/internal/handlers"
	mw "finitefield.org/humor-web/internal/middleware"
	"finitefield.org/humor-web/internal/nav"
	"finitefield.org/humor-web/internal/selection"
	"finitefield.org/humor-web/internal/seo"
)

const (
	siteName        = "Энциклопедия юмора"
	siteDescription = "Откройте для себя разнообразие комического: от тонкой иронии до абсурда"
	errUnknownHumor = "unknown humor category"
)

// CatalogHandler renders the catalog with nothing selected.
func CatalogHandler(w http.ResponseWriter, r *http.Request) {
	renderCatalogPage(w, r, selection.Idle())
}

// CategoryHandler renders the catalog with one category expanded.
func CategoryHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	state, ok := selection.FromID(humorCatalog, id)
	if !ok || state.IsIdle() {
		mw.WriteError(w, r, http.StatusNotFound, errUnknownHumor)
		return
	}
	if rec, _ := state.Selected(); id != string(rec.ID) {
		http.Redirect(w, r, selection.RecordPath(rec.ID), http.StatusMovedPermanently)
		return
	}
	renderCatalogPage(w, r, state)
}

// CatalogActivateFrag applies a card activation and swaps the catalog body.
func CatalogActivateFrag(w http.ResponseWriter, r *http.Request) {
	rec, ok := humorCatalog.Lookup(chi.URLParam(r, "id"))
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, errUnknownHumor)
		return
	}
	current := currentState(r)
	next := current.Activate(rec)
	logger.Debug("catalog activate",
		zap.String("id", string(rec.ID)),
		zap.Stringer("from", current),
		zap.Stringer("to", next))
	writeCatalogFragment(w, r, next)
}

// CatalogDismissFrag closes the detail panel.
func CatalogDismissFrag(w http.ResponseWriter, r *http.Request) {
	current := currentState(r)
	next := current.Dismiss()
	logger.Debug("catalog dismiss", zap.Stringer("from", current))
	writeCatalogFragment(w, r, next)
}

// currentState reads the state the client is showing. An unknown id counts as Idle.
func currentState(r *http.Request) selection.State {
	state, _ := selection.FromID(humorCatalog, r.URL.Query().Get("current"))
	return state
}

// writeCatalogFragment renders the catalog body for state together with the
// title and breadcrumbs of the page the pushed URL points at.
func writeCatalogFragment(w http.ResponseWriter, r *http.Request, state selection.State) {
	vm := buildPageData(r, state)
	vm.Catalog = buildCatalogView(humorCatalog, state)
	vm.Fragment = true
	w.Header().Set("HX-Push-Url", state.Path())
	renderTemplate(w, r, "catalog_fragment", vm)
}

func renderCatalogPage(w http.ResponseWriter, r *http.Request, state selection.State) {
	vm := buildPageData(r, state)
	vm.Catalog = buildCatalogView(humorCatalog, state)
	renderTemplate(w, r, "base", vm)
}

func buildPageData(r *http.Request, state selection.State) handlersPkg.PageData {
	path := state.Path()
	title := nav.HomeLabel + " — " + siteName
	desc := siteDescription
	label := ""
	image := ""
	if rec, ok := state.Selected(); ok {
		title = rec.Title + " | " + nav.HomeLabel
		desc = rec.Description
		label = rec.Title
		image = rec.Image
	} else if records := humorCatalog.All(); len(records) > 0 {
		image = records[0].Image
	}

	vm := handlersPkg.NewPageData(title, path, appConfig.Analytics)
	vm.Breadcrumbs = nav.Breadcrumbs(path, label)
	vm.SEO.Description = desc
	vm.SEO.Canonical = absoluteURL(r, path)
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = siteName
	vm.SEO.OG.Title = title
	vm.SEO.OG.Description = desc
	vm.SEO.OG.Type = "website"
	vm.SEO.OG.Image = image
	vm.SEO.Twitter.Card = "summary_large_image"
	vm.SEO.Twitter.Image = image

	home := absoluteURL(r, "/")
	vm.SEO.JSONLD = append(vm.SEO.JSONLD,
		seo.JSON(seo.WebSite(siteName, home, handlersPkg.Lang)),
		seo.JSON(seo.DefinedTermSet(nav.HomeLabel, home, definedTerms(r))),
	)
	if len(vm.Breadcrumbs) > 1 {
		items := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
		for _, c := range vm.Breadcrumbs {
			items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: absoluteURL(r, c.Href)})
		}
		vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.BreadcrumbList(items)))
	}
	return vm
}

func definedTerms(r *http.Request) []seo.Term {
	records := humorCatalog.All()
	terms := make([]seo.Term, 0, len(records))
	for _, rec := range records {
		terms = append(terms, seo.Term{
			Code:        string(rec.ID),
			Name:        rec.Title,
			Description: rec.Description,
			URL:         absoluteURL(r, selection.RecordPath(rec.ID)),
			Image:       rec.Image,
		})
	}
	return terms
}

// absoluteURL joins path onto the configured base URL, or onto the request's
// scheme and host when none is configured.
func absoluteURL(r *http.Request, path string) string {
	base := appConfig.BaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + path
}

type categoryJSON struct {
	catalog.Record
	KeyTrait string `json:"keyTrait"`
	URL      string `json:"url"`
}

// CatalogAPIHandler returns the catalog as JSON in declaration order.
func CatalogAPIHandler(w http.ResponseWriter, r *http.Request) {
	records := humorCatalog.All()
	out := struct {
		Categories []categoryJSON `json:"categories"`
	}{Categories: make([]categoryJSON, 0, len(records))}
	for _, rec := range records {
		out.Categories = append(out.Categories, categoryJSON{
			Record:   rec,
			KeyTrait: humorCatalog.KeyTrait(rec.ID),
			URL:      absoluteURL(r, selection.RecordPath(rec.ID)),
		})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		logger.Warn("encode catalog", zap.Error(err))
	}
}
