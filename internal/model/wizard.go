package model

// Flow identifies one wizard configuration.
type Flow string

const (
	FlowProfile  Flow = "profile"
	FlowDeposit  Flow = "deposit"
	FlowWithdraw Flow = "withdraw"
)

// Valid reports whether the flow is one of the known wizard kinds.
func (f Flow) Valid() bool {
	switch f {
	case FlowProfile, FlowDeposit, FlowWithdraw:
		return true
	}
	return false
}

// Field names shared between the step tables, the validator and the handlers.
// All collected values are strings; dates use YYYY-MM-DD, file uploads are
// stored as opaque references.
const (
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldOTPVerified      = "otpVerified"
	FieldFirstName        = "firstName"
	FieldLastName         = "lastName"
	FieldDateOfBirth      = "dateOfBirth"
	FieldResidenceCountry = "residenceCountry"
	FieldDocumentType     = "documentType"
	FieldDocumentFile     = "documentFile"
	FieldPOADocumentType  = "poaDocumentType"
	FieldPOAFile          = "poaFile"
	FieldCurrency         = "currency"
	FieldNetwork          = "network"
	FieldAmount           = "amount"
	FieldAddress          = "address"
)

// DateLayout is the wire format for date valued fields.
const DateLayout = "2006-01-02"
