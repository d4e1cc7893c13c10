package wizard

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"exwiz/internal/model"
	"exwiz/internal/policy"
	"exwiz/internal/validate"
)

// BalanceFunc supplies the available balance for a currency. It is a
// point-in-time read consulted only by withdrawal validation.
type BalanceFunc func(currency string) decimal.Decimal

// Store owns the state of one wizard session. It is not safe for concurrent
// use; a session layer serializes access when the caller is concurrent.
// All operations execute synchronously and never block.
type Store struct {
	defs  []StepDefinition
	state State

	balance BalanceFunc
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithBalanceFunc injects the balance read used by withdrawal validation.
func WithBalanceFunc(fn BalanceFunc) Option {
	return func(s *Store) { s.balance = fn }
}

// WithClock injects the clock anchoring the age rule. Used by tests.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) { s.now = fn }
}

// New creates a store for the given flow, positioned at the first step with
// no collected values.
func New(flow model.Flow, opts ...Option) (*Store, error) {
	defs := Steps(flow)
	if len(defs) == 0 {
		return nil, fmt.Errorf("unknown wizard flow %q", flow)
	}
	s := &Store{defs: defs, state: initialState(flow, defs)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func initialState(flow model.Flow, defs []StepDefinition) State {
	return State{
		Flow:          flow,
		CurrentStepID: defs[0].ID,
		Fields:        make(map[string]string),
	}
}

// State returns a copy of the session state.
func (st *Store) State() State { return st.state.clone() }

// Snapshot returns the state for external persistence. Identical to State;
// named for the persistence call sites.
func (st *Store) Snapshot() State { return st.state.clone() }

// Restore replaces the session state from a snapshot. The snapshot must
// belong to the same flow and reference a step known to the flow's table;
// a step excluded by the restored values is tolerated and resolves to its
// nearest included neighbor on the next transition.
func (st *Store) Restore(snap State) error {
	if snap.Flow != st.state.Flow {
		return fmt.Errorf("snapshot flow %q does not match session flow %q", snap.Flow, st.state.Flow)
	}
	known := false
	for _, d := range st.defs {
		if d.ID == snap.CurrentStepID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("snapshot references unknown step %q", snap.CurrentStepID)
	}
	restored := snap.clone()
	if restored.Fields == nil {
		restored.Fields = make(map[string]string)
	}
	st.state = restored
	return nil
}

// CurrencyPolicy resolves the transaction policy for the selected currency.
func (st *Store) CurrencyPolicy() model.CurrencyPolicy {
	return policy.LookupCurrency(st.state.Fields[model.FieldCurrency])
}

// CountryPolicy resolves the onboarding policy for the declared residence.
func (st *Store) CountryPolicy() model.CountryPolicy {
	return policy.LookupCountry(st.state.Fields[model.FieldResidenceCountry])
}

// EffectiveSteps returns the ordered steps included under the current state.
// Recomputed on every call.
func (st *Store) EffectiveSteps() []StepDefinition {
	return EffectiveSteps(st.state, st.defs)
}

// CurrentStep resolves the active step. If a policy change removed the
// stored step from the effective list, the nearest preceding included step
// is the active one.
func (st *Store) CurrentStep() StepDefinition {
	steps := st.EffectiveSteps()
	return steps[st.resolveIndex(steps)]
}

// Errors returns the validation errors scoped to the active step's fields.
func (st *Store) Errors() []model.ValidationError {
	return st.errorsFor(st.CurrentStep())
}

// Complete reports whether a step's completion condition holds. The terminal
// step is complete only when every other included step is.
func (st *Store) Complete(d StepDefinition) bool {
	if d.Terminal {
		for _, p := range st.EffectiveSteps() {
			if p.Terminal {
				continue
			}
			if len(st.errorsFor(p)) > 0 {
				return false
			}
		}
		return true
	}
	return len(st.errorsFor(d)) == 0
}

// SetField assigns a collected value. Assignment is unconditional; derived
// policy, effective steps and errors are recomputed by the next read. The
// store itself performs no side effect beyond the state update.
func (st *Store) SetField(name, value string) Result {
	st.state.Fields[name] = value
	cur := st.state.CurrentStepID
	return Result{Outcome: OutcomeFieldSet, From: cur, To: cur}
}

// Next advances to the next effective step, guarded on the active step's
// completion. On the last effective step it signals completion instead of
// advancing. Refusals leave the state unchanged apart from re-anchoring the
// current step when it had been excluded by a policy change.
func (st *Store) Next() Result {
	steps := st.EffectiveSteps()
	i := st.resolveIndex(steps)
	cur := steps[i]
	st.state.CurrentStepID = cur.ID

	if !st.Complete(cur) {
		return Result{Outcome: OutcomeRefused, From: cur.ID, To: cur.ID, Reason: ReasonStepIncomplete}
	}
	if i == len(steps)-1 {
		return Result{Outcome: OutcomeCompleted, From: cur.ID, To: cur.ID}
	}
	next := steps[i+1]
	st.state.CurrentStepID = next.ID
	return Result{Outcome: OutcomeAdvanced, From: cur.ID, To: next.ID}
}

// Back moves to the previous effective step. On the first step it signals
// exit instead of underflowing; the caller decides where to navigate.
func (st *Store) Back() Result {
	steps := st.EffectiveSteps()
	i := st.resolveIndex(steps)
	cur := steps[i]
	st.state.CurrentStepID = cur.ID

	if i == 0 {
		return Result{Outcome: OutcomeExited, From: cur.ID, To: cur.ID}
	}
	prev := steps[i-1]
	st.state.CurrentStepID = prev.ID
	return Result{Outcome: OutcomeMovedBack, From: cur.ID, To: prev.ID}
}

// Jump moves directly to a step, accepted only when the step is currently
// included. Used by a clickable stepper.
func (st *Store) Jump(stepID string) Result {
	from := st.state.CurrentStepID
	steps := st.EffectiveSteps()
	if _, ok := IndexOf(stepID, steps); ok {
		st.state.CurrentStepID = stepID
		return Result{Outcome: OutcomeJumped, From: from, To: stepID}
	}
	reason := ReasonUnknownStep
	for _, d := range st.defs {
		if d.ID == stepID {
			reason = ReasonStepNotIncluded
			break
		}
	}
	return Result{Outcome: OutcomeRefused, From: from, To: from, Reason: reason}
}

// Reset restores the initial empty state. Used after abandonment or after a
// terminal submission.
func (st *Store) Reset() Result {
	from := st.state.CurrentStepID
	st.state = initialState(st.state.Flow, st.defs)
	return Result{Outcome: OutcomeReset, From: from, To: st.state.CurrentStepID}
}

// resolveIndex maps the stored step id onto the effective list. When the
// stored step is excluded, the nearest preceding included step wins, so a
// policy change can never strand the wizard on a nonexistent step.
func (st *Store) resolveIndex(steps []StepDefinition) int {
	if i, ok := IndexOf(st.state.CurrentStepID, steps); ok {
		return i
	}
	curOrder := 0
	for _, d := range st.defs {
		if d.ID == st.state.CurrentStepID {
			curOrder = d.Order
			break
		}
	}
	best := 0
	for i, d := range steps {
		if d.Order < curOrder {
			best = i
		}
	}
	return best
}

func (st *Store) errorsFor(d StepDefinition) []model.ValidationError {
	all := validate.Validate(st.inputFor(d.Required))
	var scoped []model.ValidationError
	for _, e := range all {
		if d.ownsField(e.Field) {
			scoped = append(scoped, e)
		}
	}
	return scoped
}

func (st *Store) inputFor(required []string) validate.Input {
	f := st.state.Fields
	in := validate.Input{
		Values:   f,
		Required: required,
		Country:  policy.LookupCountry(f[model.FieldResidenceCountry]),
		Currency: policy.LookupCurrency(f[model.FieldCurrency]),
	}
	switch st.state.Flow {
	case model.FlowDeposit:
		in.Mode = validate.ModeDeposit
	case model.FlowWithdraw:
		in.Mode = validate.ModeWithdraw
		if st.balance != nil {
			in.AvailableBalance = st.balance(f[model.FieldCurrency])
		}
	default:
		in.Mode = validate.ModeProfile
	}
	if st.now != nil {
		in.Now = st.now()
	}
	return in
}
