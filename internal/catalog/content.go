package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed content/*.md
var embedded embed.FS

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Example     string `yaml:"example"`
	Image       string `yaml:"image"`
	Accent      string `yaml:"accent"`
}

var (
	markdown  = goldmark.New()
	sanitizer = bluemonday.UGCPolicy()
)

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		return nil, fmt.Errorf("catalog: embedded content: %w", err)
	}
	return Load(sub)
})

// Default returns the catalog built from the embedded content. It is loaded
// once; later calls return the same value.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load reads one "<id>.md" file per known category from fsys. Front matter
// carries the summary fields; the markdown body is the explanation.
func Load(fsys fs.FS) (*Catalog, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("catalog: list content: %w", err)
	}
	for _, name := range names {
		id := ID(strings.TrimSuffix(name, ".md"))
		if !isKnownID(id) {
			return nil, fmt.Errorf("catalog: content file %s: %w", name, ErrUnknownID)
		}
	}

	records := make([]Record, 0, len(IDs))
	for _, id := range IDs {
		r, err := readRecord(fsys, id)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return newCatalog(records, keyTraits)
}

func readRecord(fsys fs.FS, id ID) (Record, error) {
	file := path.Clean(string(id) + ".md")
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("catalog: category %q: missing %s: %w", id, file, ErrInvalid)
		}
		return Record{}, fmt.Errorf("catalog: read %s: %w", file, err)
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Record{}, fmt.Errorf("catalog: parse front matter %s: %w", file, err)
		}
	}
	explanation := strings.TrimSpace(body)
	rendered, err := renderMarkdown(explanation)
	if err != nil {
		return Record{}, fmt.Errorf("catalog: render %s: %w", file, err)
	}
	return Record{
		ID:              id,
		Title:           strings.TrimSpace(front.Title),
		Description:     strings.TrimSpace(front.Description),
		Example:         strings.TrimSpace(front.Example),
		Explanation:     explanation,
		Image:           strings.TrimSpace(front.Image),
		Accent:          strings.TrimSpace(front.Accent),
		ExplanationHTML: rendered,
	}, nil
}

// renderMarkdown converts markdown to HTML and strips anything outside the
// user-generated-content policy.
func renderMarkdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}
