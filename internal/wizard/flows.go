package wizard

import (
	"exwiz/internal/model"
	"exwiz/internal/policy"
)

// Step ids. Unique within a flow.
const (
	StepContact   = "contact"
	StepPersonal  = "personal"
	StepDocuments = "documents"
	StepPOA       = "poa"
	StepReview    = "review"

	StepCurrency = "currency"
	StepNetwork  = "network"
	StepAmount   = "amount"
	StepAddress  = "address"
	StepDetails  = "details"
)

// poaIncluded keys the proof-of-address branch off the policy resolved for
// the declared residence. Changing the residence field changes the step
// count, so inclusion is evaluated fresh on every read.
func poaIncluded(s State) bool {
	return policy.LookupCountry(s.Fields[model.FieldResidenceCountry]).POARequired
}

var profileSteps = []StepDefinition{
	{
		ID:       StepContact,
		Title:    "Contact details",
		Order:    0,
		Fields:   []string{model.FieldEmail, model.FieldPhone, model.FieldOTPVerified},
		Required: []string{model.FieldEmail, model.FieldPhone, model.FieldOTPVerified},
	},
	{
		ID:       StepPersonal,
		Title:    "Personal information",
		Order:    1,
		Fields:   []string{model.FieldFirstName, model.FieldLastName, model.FieldDateOfBirth, model.FieldResidenceCountry},
		Required: []string{model.FieldFirstName, model.FieldLastName, model.FieldDateOfBirth, model.FieldResidenceCountry},
	},
	{
		ID:       StepDocuments,
		Title:    "Identity document",
		Order:    2,
		Fields:   []string{model.FieldDocumentType, model.FieldDocumentFile},
		Required: []string{model.FieldDocumentType, model.FieldDocumentFile},
	},
	{
		ID:       StepPOA,
		Title:    "Proof of address",
		Order:    3,
		Fields:   []string{model.FieldPOADocumentType, model.FieldPOAFile},
		Required: []string{model.FieldPOADocumentType, model.FieldPOAFile},
		Include:  poaIncluded,
	},
	{
		ID:       StepReview,
		Title:    "Review & submit",
		Order:    4,
		Terminal: true,
	},
}

var depositSteps = []StepDefinition{
	{
		ID:       StepCurrency,
		Title:    "Select currency",
		Order:    0,
		Fields:   []string{model.FieldCurrency},
		Required: []string{model.FieldCurrency},
	},
	{
		ID:       StepNetwork,
		Title:    "Select network",
		Order:    1,
		Fields:   []string{model.FieldNetwork},
		Required: []string{model.FieldNetwork},
	},
	{
		ID:       StepAmount,
		Title:    "Amount",
		Order:    2,
		Fields:   []string{model.FieldAmount},
		Required: []string{model.FieldAmount},
	},
	{
		ID:       StepAddress,
		Title:    "Deposit address",
		Order:    3,
		Terminal: true,
	},
}

var withdrawSteps = []StepDefinition{
	{
		ID:       StepCurrency,
		Title:    "Select currency",
		Order:    0,
		Fields:   []string{model.FieldCurrency},
		Required: []string{model.FieldCurrency},
	},
	{
		ID:       StepNetwork,
		Title:    "Select network",
		Order:    1,
		Fields:   []string{model.FieldNetwork},
		Required: []string{model.FieldNetwork},
	},
	{
		ID:       StepDetails,
		Title:    "Withdrawal details",
		Order:    2,
		Fields:   []string{model.FieldAddress, model.FieldAmount},
		Required: []string{model.FieldAddress, model.FieldAmount},
	},
	{
		ID:       StepReview,
		Title:    "Review & submit",
		Order:    3,
		Terminal: true,
	},
}

// Steps returns the static step table for a flow.
func Steps(flow model.Flow) []StepDefinition {
	switch flow {
	case model.FlowProfile:
		return profileSteps
	case model.FlowDeposit:
		return depositSteps
	case model.FlowWithdraw:
		return withdrawSteps
	}
	return nil
}
