package seo

// OpenGraph carries og:* tags.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

// Twitter carries twitter:* tags.
type Twitter struct {
	Card  string
	Image string
}

// Meta is the per-page head metadata.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []string
}
