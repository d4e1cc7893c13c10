package wizard

// Outcome classifies the effect of a store operation. Operations are total:
// an operation that cannot proceed reports OutcomeRefused instead of
// changing state or panicking.
type Outcome string

const (
	OutcomeFieldSet  Outcome = "fieldSet"
	OutcomeAdvanced  Outcome = "advanced"
	OutcomeCompleted Outcome = "completed"
	OutcomeMovedBack Outcome = "movedBack"
	OutcomeExited    Outcome = "exited"
	OutcomeJumped    Outcome = "jumped"
	OutcomeReset     Outcome = "reset"
	OutcomeRefused   Outcome = "refused"
)

// Reason explains a refusal.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonStepIncomplete  Reason = "stepIncomplete"
	ReasonStepNotIncluded Reason = "stepNotIncluded"
	ReasonUnknownStep     Reason = "unknownStep"
)

// Result reports what an operation did. From and To are step ids; they are
// equal when the operation did not move the wizard.
type Result struct {
	Outcome Outcome `json:"outcome"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Reason  Reason  `json:"reason,omitempty"`
}

// Refused reports whether the operation was rejected.
func (r Result) Refused() bool { return r.Outcome == OutcomeRefused }
