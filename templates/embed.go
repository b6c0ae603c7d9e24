// Package templates embeds the html/template sources of the web front end.
package templates

import "embed"

// FS holds every *.tmpl file of the site.
//
//go:embed *.tmpl
var FS embed.FS
