package nav

import (
	"path"
	"strings"
)

// HomeLabel is the breadcrumb label of the catalog root.
const HomeLabel = "Виды юмора"

// sections lists path prefixes that group detail pages but have no page of
// their own; they are skipped in breadcrumbs.
var sections = map[string]bool{
	"humor": true,
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with Home
// - Skip grouping sections without a page of their own
// - The last segment uses label when given, otherwise a prettified segment
func Breadcrumbs(currentPath, label string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: HomeLabel, Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, seg := range parts {
		href = href + "/" + seg
		last := i == len(parts)-1
		if seg == "" || (sections[seg] && !last) {
			continue
		}
		name := titleFromSegment(seg)
		if last && label != "" {
			name = label
		}
		crumbs = append(crumbs, Crumb{Href: href, Label: name, Active: last})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	// replace hyphens/underscores with spaces and capitalize first letter
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
