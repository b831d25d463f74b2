package selection

import (
	"slices"

	"github.com/roach88/dataspec/internal/catalogue"
)

// Tree indexes one schema so that selection operations can find a class or
// an element by id. A Tree is read-only after NewTree.
type Tree struct {
	schema       catalogue.DataSchema
	classes      map[string]int // class id -> index in DataClasses
	elementClass map[string]int // element id -> index of owning class
}

// NewTree indexes schema.
func NewTree(schema catalogue.DataSchema) *Tree {
	t := &Tree{
		schema:       schema,
		classes:      make(map[string]int, len(schema.DataClasses)),
		elementClass: make(map[string]int),
	}
	for i, class := range schema.DataClasses {
		t.classes[class.DataClass.ID] = i
		for _, elem := range class.DataElements {
			t.elementClass[elem.ID] = i
		}
	}
	return t
}

// SchemaID returns the id of the schema at the root of the tree.
func (t *Tree) SchemaID() string {
	return t.schema.Schema.ID
}

// Kind classifies an id within the tree.
type Kind int

const (
	KindUnknown Kind = iota
	KindSchema
	KindClass
	KindElement
)

func (k Kind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindClass:
		return "class"
	case KindElement:
		return "element"
	default:
		return "unknown"
	}
}

// KindOf reports whether id names the schema, a class or an element.
func (t *Tree) KindOf(id string) Kind {
	if id == "" {
		return KindUnknown
	}
	if id == t.schema.Schema.ID {
		return KindSchema
	}
	if _, ok := t.classes[id]; ok {
		return KindClass
	}
	if _, ok := t.elementClass[id]; ok {
		return KindElement
	}
	return KindUnknown
}

// ClassOf returns the id of the class owning elementID.
func (t *Tree) ClassOf(elementID string) (string, bool) {
	i, ok := t.elementClass[elementID]
	if !ok {
		return "", false
	}
	return t.schema.DataClasses[i].DataClass.ID, true
}

func (t *Tree) class(classID string) (catalogue.DataClassWithElements, bool) {
	i, ok := t.classes[classID]
	if !ok {
		return catalogue.DataClassWithElements{}, false
	}
	return t.schema.DataClasses[i], true
}

// Project returns a copy of the tree with IsSelected set from state. The
// tree itself is not modified.
func (t *Tree) Project(state State) catalogue.DataSchema {
	out := catalogue.DataSchema{
		Schema:      t.schema.Schema,
		DataClasses: slices.Clone(t.schema.DataClasses),
	}
	out.Schema.IsSelected = state.Selected(out.Schema.ID)

	for i := range out.DataClasses {
		class := &out.DataClasses[i]
		class.DataClass.IsSelected = state.Selected(class.DataClass.ID)
		class.DataElements = slices.Clone(class.DataElements)
		for j := range class.DataElements {
			elem := &class.DataElements[j]
			elem.IsSelected = state.Selected(elem.ID)
		}
	}
	return out
}

// SelectedElements lists the selected element ids in tree order.
func (t *Tree) SelectedElements(state State) []string {
	var ids []string
	for _, class := range t.schema.DataClasses {
		for _, elem := range class.DataElements {
			if state.Selected(elem.ID) {
				ids = append(ids, elem.ID)
			}
		}
	}
	return ids
}

// Summary counts the selected entities of a tree.
type Summary struct {
	SchemaSelected   bool `json:"schema_selected"`
	Classes          int  `json:"classes"`
	SelectedClasses  int  `json:"selected_classes"`
	Elements         int  `json:"elements"`
	SelectedElements int  `json:"selected_elements"`
}

// Summarize counts selected classes and elements under state.
func (t *Tree) Summarize(state State) Summary {
	s := Summary{
		SchemaSelected: state.Selected(t.schema.Schema.ID),
		Classes:        len(t.schema.DataClasses),
	}
	for _, class := range t.schema.DataClasses {
		if state.Selected(class.DataClass.ID) {
			s.SelectedClasses++
		}
		s.Elements += len(class.DataElements)
		for _, elem := range class.DataElements {
			if state.Selected(elem.ID) {
				s.SelectedElements++
			}
		}
	}
	return s
}
