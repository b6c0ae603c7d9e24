package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/humor-web/internal/catalog"
	"finitefield.org/humor-web/internal/selection"
)

func TestBuildCatalogViewIdle(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	view := buildCatalogView(cat, selection.Idle())
	require.Equal(t, "idle", view.State)
	require.Nil(t, view.Detail)
	require.Len(t, view.Cards, 6)
	for _, card := range view.Cards {
		require.False(t, card.Selected, card.ID)
		require.Equal(t, "/humor/"+string(card.ID), card.Href)
		require.Equal(t, "/fragments/catalog/"+string(card.ID)+"/activate", card.FragmentURL)
		require.Equal(t, cardHint, card.Hint)
	}
}

func TestBuildCatalogViewShowing(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	dark, ok := cat.Lookup("dark")
	require.True(t, ok)

	view := buildCatalogView(cat, selection.Showing(dark))
	require.Equal(t, "showing(dark)", view.State)
	require.NotNil(t, view.Detail)
	require.Equal(t, "Чёрный юмор", view.Detail.Title)
	require.Equal(t, "Помогает справляться с тяжёлыми темами через смех", view.Detail.KeyTrait)
	require.Equal(t, "accent-muted-50", view.Detail.AccentClass)
	require.Equal(t, "/", view.Detail.DismissHref)
	require.Equal(t, "/fragments/catalog/dismiss?current=dark", view.Detail.DismissFragmentURL)

	selected := 0
	for _, card := range view.Cards {
		if card.Selected {
			selected++
			require.Equal(t, catalog.Dark, card.ID)
			require.Equal(t, "/", card.Href)
		}
		require.Equal(t, "/fragments/catalog/"+string(card.ID)+"/activate?current=dark", card.FragmentURL)
	}
	require.Equal(t, 1, selected)
}
