// Package selection coordinates tri-state checkbox selection over a
// schema tree: Schema ⊇ Class ⊇ Element.
//
// A container is selected when all of its immediate children are selected.
// Selecting a container forces the same value onto every descendant
// (cascade); selecting a leaf recomputes its ancestors (bubble).
//
// Selection is held in a State side table keyed by entity id rather than on
// the catalogue entities. Every operation takes a State and returns a new
// one; the input is never modified, so a caller can keep the previous state
// for undo or comparison.
//
// Containers with no children recompute to selected: "every child is
// selected" holds vacuously for an empty class or schema.
package selection

import (
	"maps"

	"github.com/roach88/dataspec/internal/catalogue"
)

// Instigator records which direction a change travelled.
type Instigator string

const (
	// InstigatorParent marks a top-down change from a container.
	InstigatorParent Instigator = "parent"
	// InstigatorChild marks a bottom-up recomputation from a child.
	InstigatorChild Instigator = "child"
)

// ChangedBy identifies the origin of a Change.
type ChangedBy struct {
	Instigator Instigator `json:"instigator"`
}

// Change is the notification passed between tree levels.
type Change struct {
	ChangedBy  ChangedBy `json:"changedBy"`
	IsSelected bool      `json:"isSelected"`
}

// FromParent builds a top-down change.
func FromParent(selected bool) Change {
	return Change{ChangedBy: ChangedBy{Instigator: InstigatorParent}, IsSelected: selected}
}

// FromChild builds a bottom-up change.
func FromChild(selected bool) Change {
	return Change{ChangedBy: ChangedBy{Instigator: InstigatorChild}, IsSelected: selected}
}

// State maps entity ids to their selection flag. Missing ids are unselected.
type State map[string]bool

// Selected reports the flag for id.
func (s State) Selected(id string) bool {
	return s[id]
}

// Clone returns an independent copy of s.
func (s State) Clone() State {
	out := make(State, len(s))
	maps.Copy(out, s)
	return out
}

// with returns a copy of s with the given ids set to value.
func (s State) with(value bool, ids ...string) State {
	out := s.Clone()
	for _, id := range ids {
		out[id] = value
	}
	return out
}

// StateOf reads the IsSelected snapshot of a loaded tree.
func StateOf(schema catalogue.DataSchema) State {
	state := State{schema.Schema.ID: schema.Schema.IsSelected}
	for _, class := range schema.DataClasses {
		state[class.DataClass.ID] = class.DataClass.IsSelected
		for _, elem := range class.DataElements {
			state[elem.ID] = elem.IsSelected
		}
	}
	return state
}
