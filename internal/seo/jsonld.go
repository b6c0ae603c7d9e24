package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, inLanguage string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if inLanguage != "" {
		m["inLanguage"] = inLanguage
	}
	return m
}

// Term is one entry of a DefinedTermSet.
type Term struct {
	Code        string
	Name        string
	Description string
	URL         string
	Image       string
}

// DefinedTermSet describes a glossary-like list of terms.
func DefinedTermSet(name, url string, terms []Term) map[string]any {
	list := make([]map[string]any, 0, len(terms))
	for _, t := range terms {
		list = append(list, DefinedTerm(t))
	}
	m := map[string]any{
		"@context":       "https://schema.org",
		"@type":          "DefinedTermSet",
		"name":           name,
		"hasDefinedTerm": list,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// DefinedTerm returns a DefinedTerm payload without @context, for nesting.
func DefinedTerm(t Term) map[string]any {
	m := map[string]any{
		"@type":       "DefinedTerm",
		"termCode":    t.Code,
		"name":        t.Name,
		"description": t.Description,
	}
	if t.URL != "" {
		m["url"] = t.URL
	}
	if t.Image != "" {
		m["image"] = t.Image
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
