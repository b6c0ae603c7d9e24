package main

import (
	"html/template"
	"net/url"

	"finitefield.org/humor-web/internal/catalog"
	"finitefield.org/humor-web/internal/selection"
)

const cardHint = "Нажмите для подробностей"

// CatalogView is the render output for one selection state: the card grid
// plus, when something is selected, the detail panel.
type CatalogView struct {
	State  string
	Cards  []CardView
	Detail *DetailView
}

// CardView is a summary card.
type CardView struct {
	ID          catalog.ID
	Title       string
	Description string
	Image       string
	AccentClass string
	Hint        string
	Selected    bool
	// Href is the page of the state reached by activating this card.
	Href        string
	FragmentURL string
}

// DetailView is the expanded panel of the selected category.
type DetailView struct {
	ID                 catalog.ID
	Title              string
	Description        string
	Example            string
	ExplanationHTML    template.HTML
	KeyTrait           string
	AccentClass        string
	DismissHref        string
	DismissFragmentURL string
}

// buildCatalogView renders state into a view model. Cards follow declaration order.
func buildCatalogView(cat *catalog.Catalog, state selection.State) CatalogView {
	records := cat.All()
	view := CatalogView{
		State: state.String(),
		Cards: make([]CardView, 0, len(records)),
	}
	for _, r := range records {
		view.Cards = append(view.Cards, CardView{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Image:       r.Image,
			AccentClass: r.AccentClass(),
			Hint:        cardHint,
			Selected:    state.IsSelected(r.ID),
			Href:        state.Activate(r).Path(),
			FragmentURL: activateFragmentURL(r.ID, state),
		})
	}
	if r, ok := state.Selected(); ok {
		view.Detail = &DetailView{
			ID:                 r.ID,
			Title:              r.Title,
			Description:        r.Description,
			Example:            r.Example,
			ExplanationHTML:    r.ExplanationHTML,
			KeyTrait:           cat.KeyTrait(r.ID),
			AccentClass:        r.AccentClass(),
			DismissHref:        state.Dismiss().Path(),
			DismissFragmentURL: "/fragments/catalog/dismiss?current=" + url.QueryEscape(string(r.ID)),
		}
	}
	return view
}

func activateFragmentURL(id catalog.ID, state selection.State) string {
	u := "/fragments/catalog/" + url.PathEscape(string(id)) + "/activate"
	if r, ok := state.Selected(); ok {
		u += "?current=" + url.QueryEscape(string(r.ID))
	}
	return u
}
