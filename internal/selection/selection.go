// Package selection models the single-selection state of the catalog view as
// a two-state machine: Idle, or Showing one record.
package selection

import (
	"finitefield.org/humor-web/internal/catalog"
)

// State is an immutable selection state. The zero value is Idle.
type State struct {
	record  catalog.Record
	showing bool
}

// Idle returns the state with nothing selected.
func Idle() State { return State{} }

// Showing returns the state with r selected.
func Showing(r catalog.Record) State {
	return State{record: r, showing: true}
}

// Activate applies a card activation. Activating the selected record clears
// the selection; activating any other record selects it.
func (s State) Activate(r catalog.Record) State {
	if s.showing && s.record.ID == r.ID {
		return Idle()
	}
	return Showing(r)
}

// Dismiss clears the selection.
func (s State) Dismiss() State {
	return Idle()
}

// Selected returns the selected record, if any.
func (s State) Selected() (catalog.Record, bool) {
	return s.record, s.showing
}

// IsIdle reports whether nothing is selected.
func (s State) IsIdle() bool { return !s.showing }

// IsSelected reports whether the record with id is the current selection.
func (s State) IsSelected(id catalog.ID) bool {
	return s.showing && s.record.ID == id
}

// Path is the URL that renders this state.
func (s State) Path() string {
	if !s.showing {
		return "/"
	}
	return RecordPath(s.record.ID)
}

// RecordPath is the URL of the Showing state for id.
func RecordPath(id catalog.ID) string {
	return "/humor/" + string(id)
}

// String is used in logs.
func (s State) String() string {
	if !s.showing {
		return "idle"
	}
	return "showing(" + string(s.record.ID) + ")"
}

// FromID resolves a state from an optional record id. An empty or unknown id
// yields Idle; ok is false only for a non-empty unknown id.
func FromID(cat *catalog.Catalog, id string) (State, bool) {
	if id == "" {
		return Idle(), true
	}
	r, found := cat.Lookup(id)
	if !found {
		return Idle(), false
	}
	return Showing(r), true
}
