// Package wizard implements the multi-step flow engine: per-flow step
// tables with inclusion predicates, and a store owning the collected field
// values and the transition operations over them.
package wizard

import "exwiz/internal/model"

// State is the mutable part of a wizard session. It is owned by the Store
// and mutated only through its operations; callers get copies.
type State struct {
	Flow          model.Flow        `json:"flow"`
	CurrentStepID string            `json:"currentStep"`
	Fields        map[string]string `json:"fields"`
}

func (s State) clone() State {
	cp := State{Flow: s.Flow, CurrentStepID: s.CurrentStepID, Fields: make(map[string]string, len(s.Fields))}
	for k, v := range s.Fields {
		cp.Fields[k] = v
	}
	return cp
}

// StepDefinition describes one step of a flow. Definitions are static; the
// effective ordered list of included steps is derived from the current state
// on every read, never cached.
type StepDefinition struct {
	ID    string
	Title string
	Order int

	// Fields owned by the step; Required is the subset that must be
	// non-empty before the step counts as complete.
	Fields   []string
	Required []string

	// Include reports whether the step exists for the given state.
	// nil means always included.
	Include func(s State) bool

	// Terminal marks the step that accepts final submission and offers
	// no further advance.
	Terminal bool
}

func (d StepDefinition) included(s State) bool {
	return d.Include == nil || d.Include(s)
}

func (d StepDefinition) ownsField(name string) bool {
	for _, f := range d.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// EffectiveSteps filters defs by their inclusion predicates, preserving the
// static order.
func EffectiveSteps(s State, defs []StepDefinition) []StepDefinition {
	out := make([]StepDefinition, 0, len(defs))
	for _, d := range defs {
		if d.included(s) {
			out = append(out, d)
		}
	}
	return out
}

// IndexOf locates a step id in an effective step list.
func IndexOf(stepID string, steps []StepDefinition) (int, bool) {
	for i, d := range steps {
		if d.ID == stepID {
			return i, true
		}
	}
	return 0, false
}
