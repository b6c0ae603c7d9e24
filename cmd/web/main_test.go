package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"finitefield.org/humor-web/internal/catalog"
	"finitefield.org/humor-web/internal/config"
	"finitefield.org/humor-web/internal/testutil"
)

// newTestRouter builds the same router as runServe with embedded templates.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	devMode = false
	logger = zap.NewNop()
	appConfig = config.Config{BaseURL: "https://humor.example.com"}

	cat, err := catalog.Default()
	require.NoError(t, err)
	humorCatalog = cat

	tc, err := parseTemplates()
	require.NoError(t, err)
	tmplCache = tc

	h, err := newRouter()
	require.NoError(t, err)
	return h
}

func get(t *testing.T, h http.Handler, target string, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	return testutil.ParseHTML(t, rec.Body.Bytes())
}

func cardIDs(doc *goquery.Document) []string {
	var ids []string
	doc.Find("[data-card]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-card")
		ids = append(ids, id)
	})
	return ids
}

func TestHealthzOK(t *testing.T) {
	h := newTestRouter(t)
	rec := get(t, h, "/healthz", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestInitialRenderShowsSixCardsAndNoDetail(t *testing.T) {
	h := newTestRouter(t)
	rec := get(t, h, "/", false)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	require.Equal(t, []string{"irony", "sarcasm", "satire", "dark", "absurd", "wordplay"}, cardIDs(doc))
	require.Equal(t, 0, doc.Find("[data-detail]").Length())
	require.Equal(t, 0, doc.Find(".card--selected").Length())
	require.Equal(t, "Виды юмора", strings.TrimSpace(doc.Find("h1").First().Text()))

	href, _ := doc.Find(`[data-card="absurd"]`).Attr("href")
	require.Equal(t, "/humor/absurd", href)
	require.Equal(t, 6, doc.Find(".card-hint").Length())
	require.Contains(t, doc.Find(".card-hint").First().Text(), "Нажмите для подробностей")
}

func TestActivateAbsurdThenToggleOff(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/fragments/catalog/absurd/activate", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "/humor/absurd", rec.Header().Get("HX-Push-Url"))

	doc := parse(t, rec)
	require.Len(t, cardIDs(doc), 6)
	detail := doc.Find("[data-detail]")
	require.Equal(t, 1, detail.Length())
	require.Equal(t, "Абсурд", strings.TrimSpace(detail.Find(".detail-title").Text()))
	require.Equal(t, "Ломает логику и создаёт неожиданные связи", strings.TrimSpace(detail.Find(".detail-trait").Text()))
	require.Contains(t, detail.Find(".detail-example").Text(), "Почему курица перешла дорогу?")
	require.Contains(t, detail.Find(".detail-explanation").Text(), "Абсурдный юмор нарушает логику")
	require.Equal(t, 1, doc.Find(`.card--selected[data-card="absurd"]`).Length())

	next, _ := doc.Find(`[data-card="absurd"]`).Attr("hx-get")
	require.Equal(t, "/fragments/catalog/absurd/activate?current=absurd", next)

	rec = get(t, h, next, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "/", rec.Header().Get("HX-Push-Url"))
	doc = parse(t, rec)
	require.Len(t, cardIDs(doc), 6)
	require.Equal(t, 0, doc.Find("[data-detail]").Length())
	require.Equal(t, 0, doc.Find(".card--selected").Length())
}

func TestActivateIronyThenSarcasm(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/fragments/catalog/irony/activate", true)
	require.Equal(t, http.StatusOK, rec.Code)
	sarcasmURL, _ := parse(t, rec).Find(`[data-card="sarcasm"]`).Attr("hx-get")
	require.Equal(t, "/fragments/catalog/sarcasm/activate?current=irony", sarcasmURL)

	rec = get(t, h, sarcasmURL, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	detail := doc.Find("[data-detail]")
	require.Equal(t, 1, detail.Length())
	require.Equal(t, "Сарказм", strings.TrimSpace(detail.Find(".detail-title").Text()))
	require.NotContains(t, detail.Find(".detail-title").Text(), "Ирония")
	require.Equal(t, "/humor/sarcasm", rec.Header().Get("HX-Push-Url"))
}

func TestDismissFragment(t *testing.T) {
	h := newTestRouter(t)

	for _, target := range []string{"/fragments/catalog/dismiss?current=satire", "/fragments/catalog/dismiss"} {
		rec := get(t, h, target, true)
		require.Equal(t, http.StatusOK, rec.Code, target)
		require.Equal(t, "/", rec.Header().Get("HX-Push-Url"))
		doc := parse(t, rec)
		require.Len(t, cardIDs(doc), 6)
		require.Equal(t, 0, doc.Find("[data-detail]").Length())
	}
}

func TestFragmentsRequireHTMX(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/fragments/catalog/absurd/activate", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = get(t, h, "/fragments/catalog/dismiss", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestActivateUnknownCategory(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/fragments/catalog/slapstick/activate", true)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "unknown humor category")

	// an unknown current selection is treated as nothing selected
	rec = get(t, h, "/fragments/catalog/dark/activate?current=slapstick", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "/humor/dark", rec.Header().Get("HX-Push-Url"))
}

func TestCategoryPage(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/humor/absurd", false)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)

	require.Equal(t, "Абсурд | Виды юмора", doc.Find("title").First().Text())
	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	require.Equal(t, "https://humor.example.com/humor/absurd", canonical)

	detail := doc.Find("[data-detail]")
	require.Equal(t, 1, detail.Length())
	require.Equal(t, "Абсурд", strings.TrimSpace(detail.Find(".detail-title").Text()))
	dismiss, _ := detail.Find(".detail-dismiss").Attr("href")
	require.Equal(t, "/", dismiss)

	// the selected card links back to Idle, the others switch the selection
	href, _ := doc.Find(`[data-card="absurd"]`).Attr("href")
	require.Equal(t, "/", href)
	href, _ = doc.Find(`[data-card="irony"]`).Attr("href")
	require.Equal(t, "/humor/irony", href)

	crumbs := doc.Find(".breadcrumbs")
	require.Equal(t, 1, crumbs.Length())
	require.Contains(t, crumbs.Text(), "Виды юмора")
	require.Contains(t, crumbs.Text(), "Абсурд")
	require.GreaterOrEqual(t, doc.Find(`script[type="application/ld+json"]`).Length(), 3)
}

func TestCategoryPageUnknownID(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/humor/slapstick", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogAPI(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/api/catalog", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var payload struct {
		Categories []struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			KeyTrait string `json:"keyTrait"`
			URL      string `json:"url"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Categories, 6)
	require.Equal(t, "wordplay", payload.Categories[5].ID)
	require.Equal(t, "Основывается на особенностях языка", payload.Categories[5].KeyTrait)
	require.Equal(t, "https://humor.example.com/humor/wordplay", payload.Categories[5].URL)
}

func TestAssetsServedWithCacheHeaders(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/assets/css/app.css", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("ETag"))
	require.Contains(t, rec.Body.String(), ".accent-primary-20")
}

func TestCatalogCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	catalogJSON = false
	require.NoError(t, runCatalog(cmd, nil))
	out := buf.String()
	require.Contains(t, out, "absurd")
	require.Contains(t, out, "Ломает логику и создаёт неожиданные связи")
	require.Contains(t, out, "6 categories OK")

	buf.Reset()
	catalogJSON = true
	t.Cleanup(func() { catalogJSON = false })
	require.NoError(t, runCatalog(cmd, nil))
	var list []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &list))
	require.Len(t, list, 6)
	require.Equal(t, "irony", list[0]["id"])
}

// pageChrome returns the title and breadcrumb text of a rendered page or fragment.
func pageChrome(doc *goquery.Document) (string, string) {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	crumbs := strings.Join(strings.Fields(doc.Find("#breadcrumbs").Text()), " ")
	return title, crumbs
}

func TestFragmentsCarryTitleAndBreadcrumbs(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name     string
		fragment string
		page     string
	}{
		{name: "dismiss from absurd", fragment: "/fragments/catalog/dismiss?current=absurd", page: "/"},
		{name: "activate from idle", fragment: "/fragments/catalog/sarcasm/activate", page: "/humor/sarcasm"},
		{name: "toggle off", fragment: "/fragments/catalog/absurd/activate?current=absurd", page: "/"},
		{name: "switch", fragment: "/fragments/catalog/irony/activate?current=satire", page: "/humor/irony"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, h, tc.fragment, true)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, tc.page, rec.Header().Get("HX-Push-Url"))
			frag := parse(t, rec)

			nav := frag.Find("#breadcrumbs")
			require.Equal(t, 1, nav.Length())
			oob, _ := nav.Attr("hx-swap-oob")
			require.Equal(t, "true", oob)
			require.Equal(t, 1, frag.Find("#catalog").Length())

			page := parse(t, get(t, h, tc.page, false))
			wantTitle, wantCrumbs := pageChrome(page)
			gotTitle, gotCrumbs := pageChrome(frag)
			require.NotEmpty(t, gotTitle)
			require.Equal(t, wantTitle, gotTitle)
			require.Equal(t, wantCrumbs, gotCrumbs)
		})
	}

	// the full page never marks its breadcrumbs for an out of band swap
	page := parse(t, get(t, h, "/humor/absurd", false))
	_, oob := page.Find("#breadcrumbs").Attr("hx-swap-oob")
	require.False(t, oob)
	_, crumbs := pageChrome(page)
	require.Contains(t, crumbs, "Абсурд")
}

func TestCategoryPageRedirectsToCanonicalID(t *testing.T) {
	h := newTestRouter(t)

	for _, target := range []string{"/humor/ABSURD", "/humor/Absurd"} {
		rec := get(t, h, target, false)
		require.Equal(t, http.StatusMovedPermanently, rec.Code, target)
		require.Equal(t, "/humor/absurd", rec.Header().Get("Location"))
	}

	rec := get(t, h, "/humor/absurd", false)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggerConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		dev      bool
		wantDev  bool
		encoding string
	}{
		{name: "dev flag locally", cfg: config.Config{Env: "dev"}, dev: true, wantDev: true, encoding: "console"},
		{name: "no dev flag", cfg: config.Config{Env: "dev"}, dev: false, wantDev: false, encoding: "json"},
		{name: "prod ignores dev flag", cfg: config.Config{Env: "prod"}, dev: true, wantDev: false, encoding: "json"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			zcfg := loggerConfig(tc.cfg, tc.dev)
			require.Equal(t, tc.wantDev, zcfg.Development)
			require.Equal(t, tc.encoding, zcfg.Encoding)
			if !tc.wantDev {
				require.Equal(t, tc.cfg.Env, zcfg.InitialFields["env"])
			}
		})
	}
}
