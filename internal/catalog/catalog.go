// Package catalog holds the closed, immutable set of humor categories shown
// by the web front end.
package catalog

import (
	"html/template"
	"strings"
)

// ID identifies a category. The set of IDs is closed.
type ID string

const (
	Irony    ID = "irony"
	Sarcasm  ID = "sarcasm"
	Satire   ID = "satire"
	Dark     ID = "dark"
	Absurd   ID = "absurd"
	Wordplay ID = "wordplay"
)

// IDs lists every category in declaration order. Rendering iterates in this order.
var IDs = []ID{Irony, Sarcasm, Satire, Dark, Absurd, Wordplay}

// Record is a single category entry.
type Record struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Example     string `json:"example"`
	Explanation string `json:"explanation"`
	Image       string `json:"image"`
	Accent      string `json:"accent"`

	// ExplanationHTML is the sanitized rendering of Explanation.
	ExplanationHTML template.HTML `json:"-"`
}

// AccentClass returns the CSS class carrying the record's accent style.
func (r Record) AccentClass() string {
	return "accent-" + r.Accent
}

// Catalog is the validated static set. It is safe for concurrent use since it
// never changes after construction.
type Catalog struct {
	records []Record
	index   map[ID]int
	traits  map[ID]string
}

func newCatalog(records []Record, traits map[ID]string) (*Catalog, error) {
	if err := validate(records, traits); err != nil {
		return nil, err
	}
	c := &Catalog{
		records: append([]Record(nil), records...),
		index:   make(map[ID]int, len(records)),
		traits:  make(map[ID]string, len(traits)),
	}
	for i, r := range c.records {
		c.index[r.ID] = i
	}
	for id, t := range traits {
		c.traits[id] = t
	}
	return c, nil
}

// All returns a copy of the records in declaration order.
func (c *Catalog) All() []Record {
	return append([]Record(nil), c.records...)
}

// Len reports the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Lookup finds a record by its id. The id is matched case-insensitively.
func (c *Catalog) Lookup(id string) (Record, bool) {
	i, ok := c.index[ID(strings.ToLower(strings.TrimSpace(id)))]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// KeyTrait returns the one-line key trait of the category.
func (c *Catalog) KeyTrait(id ID) string {
	return c.traits[id]
}
