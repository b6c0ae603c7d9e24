package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrInvalid marks a catalog that failed validation.
	ErrInvalid = errors.New("catalog: invalid")
	// ErrUnknownID is returned for ids outside the closed set.
	ErrUnknownID = errors.New("catalog: unknown id")
)

// accentTokens is the closed set of accent styles known to the stylesheet.
var accentTokens = map[string]struct{}{
	"primary-10":   {},
	"primary-20":   {},
	"secondary-10": {},
	"secondary-20": {},
	"accent-20":    {},
	"muted-50":     {},
}

func isKnownID(id ID) bool {
	for _, k := range IDs {
		if k == id {
			return true
		}
	}
	return false
}

// validate checks the records against the closed id set and the trait mapping.
// All problems are reported together.
func validate(records []Record, traits map[ID]string) error {
	var problems []error
	if len(records) != len(IDs) {
		problems = append(problems, fmt.Errorf("expected %d records, got %d", len(IDs), len(records)))
	}

	seen := make(map[ID]struct{}, len(records))
	for i, r := range records {
		if r.ID == "" {
			problems = append(problems, fmt.Errorf("record %d: empty id", i))
			continue
		}
		if !isKnownID(r.ID) {
			problems = append(problems, fmt.Errorf("record %q: %w", r.ID, ErrUnknownID))
		}
		if _, dup := seen[r.ID]; dup {
			problems = append(problems, fmt.Errorf("record %q: duplicate id", r.ID))
		}
		seen[r.ID] = struct{}{}

		fields := []struct{ name, value string }{
			{"title", r.Title},
			{"description", r.Description},
			{"example", r.Example},
			{"explanation", r.Explanation},
			{"image", r.Image},
			{"accent", r.Accent},
		}
		for _, f := range fields {
			if strings.TrimSpace(f.value) == "" {
				problems = append(problems, fmt.Errorf("record %q: empty %s", r.ID, f.name))
			}
		}
		if r.Accent != "" {
			if _, ok := accentTokens[r.Accent]; !ok {
				problems = append(problems, fmt.Errorf("record %q: unknown accent %q", r.ID, r.Accent))
			}
		}
		if r.Image != "" && !isAbsoluteHTTP(r.Image) {
			problems = append(problems, fmt.Errorf("record %q: image must be an absolute http(s) URI", r.ID))
		}
		if strings.TrimSpace(traits[r.ID]) == "" {
			problems = append(problems, fmt.Errorf("record %q: no key trait", r.ID))
		}
	}

	for id := range traits {
		if _, ok := seen[id]; !ok {
			problems = append(problems, fmt.Errorf("key trait %q: no matching record", id))
		}
	}
	for _, id := range IDs {
		if _, ok := seen[id]; !ok {
			problems = append(problems, fmt.Errorf("category %q: missing record", id))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(problems...))
}

func isAbsoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}
