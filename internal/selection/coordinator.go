package selection

import "github.com/roach88/dataspec/internal/catalogue"

// SetElementSelected sets a single element. Owning containers are not
// recomputed; use ToggleElement for the full flow.
func (t *Tree) SetElementSelected(state State, elementID string, value bool) State {
	if t.KindOf(elementID) != KindElement {
		return state
	}
	return state.with(value, elementID)
}

// CascadeFromClass forces value onto the class and every element it owns.
func (t *Tree) CascadeFromClass(state State, classID string, value bool) State {
	class, ok := t.class(classID)
	if !ok {
		return state
	}
	ids := make([]string, 0, len(class.DataElements)+1)
	ids = append(ids, classID)
	for _, elem := range class.DataElements {
		ids = append(ids, elem.ID)
	}
	return state.with(value, ids...)
}

// CascadeFromSchema forces value onto every class and every element, two
// levels down. The schema's own flag is left to the caller.
func (t *Tree) CascadeFromSchema(state State, value bool) State {
	var ids []string
	for _, class := range t.schema.DataClasses {
		ids = append(ids, class.DataClass.ID)
		for _, elem := range class.DataElements {
			ids = append(ids, elem.ID)
		}
	}
	return state.with(value, ids...)
}

// ReceiveParentSelection applies a top-down change to containerID: its own
// flag is overwritten with change.IsSelected and the value cascades to its
// descendants. Children are not consulted. Changes from any other
// instigator are ignored.
func (t *Tree) ReceiveParentSelection(state State, containerID string, change Change) State {
	if change.ChangedBy.Instigator != InstigatorParent {
		return state
	}
	switch t.KindOf(containerID) {
	case KindSchema:
		return t.CascadeFromSchema(state.with(change.IsSelected, containerID), change.IsSelected)
	case KindClass:
		return t.CascadeFromClass(state, containerID, change.IsSelected)
	case KindElement:
		return state.with(change.IsSelected, containerID)
	default:
		return state
	}
}

// ReceiveChildSelection recomputes containerID from its immediate children
// after a bottom-up change and returns the change to pass to the next level
// up. ok is false when the change was ignored: the instigator is not a
// child, or containerID is not a class or the schema.
func (t *Tree) ReceiveChildSelection(state State, containerID string, change Change) (next State, up Change, ok bool) {
	if change.ChangedBy.Instigator != InstigatorChild {
		return state, Change{}, false
	}

	var all bool
	switch t.KindOf(containerID) {
	case KindSchema:
		all = t.allClassesSelected(state)
	case KindClass:
		class, _ := t.class(containerID)
		all = allElementsSelected(state, class.DataElements)
	default:
		return state, Change{}, false
	}
	return state.with(all, containerID), FromChild(all), true
}

// ToggleElement selects or deselects one element and bubbles the result to
// its class and then to the schema.
func (t *Tree) ToggleElement(state State, elementID string, value bool) State {
	classID, ok := t.ClassOf(elementID)
	if !ok {
		return state
	}
	state = t.SetElementSelected(state, elementID, value)
	state, up, _ := t.ReceiveChildSelection(state, classID, FromChild(value))
	state, _, _ = t.ReceiveChildSelection(state, t.SchemaID(), up)
	return state
}

// ToggleClass cascades value through a class and bubbles the result to the
// schema.
func (t *Tree) ToggleClass(state State, classID string, value bool) State {
	if t.KindOf(classID) != KindClass {
		return state
	}
	state = t.ReceiveParentSelection(state, classID, FromParent(value))
	state, _, _ = t.ReceiveChildSelection(state, t.SchemaID(), FromChild(value))
	return state
}

// ToggleSchema sets the schema flag and cascades value through the whole
// tree. There is no level above the schema to notify.
func (t *Tree) ToggleSchema(state State, value bool) State {
	return t.ReceiveParentSelection(state, t.SchemaID(), FromParent(value))
}

// Recompute derives every container flag bottom-up from the element flags.
// Element flags are kept as they are.
func (t *Tree) Recompute(state State) State {
	next := state.Clone()
	for _, class := range t.schema.DataClasses {
		next[class.DataClass.ID] = allElementsSelected(next, class.DataElements)
	}
	next[t.SchemaID()] = t.allClassesSelected(next)
	return next
}

func (t *Tree) allClassesSelected(state State) bool {
	for _, class := range t.schema.DataClasses {
		if !state.Selected(class.DataClass.ID) {
			return false
		}
	}
	return true
}

func allElementsSelected(state State, elems []catalogue.DataElement) bool {
	for _, elem := range elems {
		if !state.Selected(elem.ID) {
			return false
		}
	}
	return true
}
