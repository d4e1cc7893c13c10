// Package validate computes field-scoped validation errors for a wizard's
// collected values under an active policy. Validation is pure and total: the
// same input always yields the same errors, no I/O is performed, and absent
// fields are treated as empty strings.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"exwiz/internal/model"
)

// Mode selects which rule set applies.
type Mode string

const (
	ModeDeposit  Mode = "deposit"
	ModeWithdraw Mode = "withdraw"
	ModeProfile  Mode = "profile"
)

// MinimumAge is the onboarding age floor in years.
const MinimumAge = 18

// MinAddressLength is the weakest acceptable shape for a withdrawal address.
// Placeholder rule, not a chain-specific checksum.
const MinAddressLength = 20

// Input is everything a validation pass may consult. Balance is a
// point-in-time read supplied by the caller; the validator never fetches it.
type Input struct {
	Mode     Mode
	Values   map[string]string
	Required []string

	Country  model.CountryPolicy
	Currency model.CurrencyPolicy

	AvailableBalance decimal.Decimal

	// Now anchors the age rule. Zero means time.Now().
	Now time.Time
}

func (in Input) value(name string) string {
	if in.Values == nil {
		return ""
	}
	return strings.TrimSpace(in.Values[name])
}

// Validate returns the full error sequence for the input. An empty required
// field yields exactly one error for that field; value-driven rules only
// fire on non-empty values.
func Validate(in Input) []model.ValidationError {
	var errs []model.ValidationError

	for _, name := range in.Required {
		if in.value(name) == "" {
			errs = append(errs, model.ValidationError{Field: name, Message: "This field is required"})
		}
	}

	switch in.Mode {
	case ModeProfile:
		errs = append(errs, profileRules(in)...)
	case ModeDeposit, ModeWithdraw:
		errs = append(errs, amountRules(in)...)
		if in.Mode == ModeWithdraw {
			errs = append(errs, addressRule(in)...)
		}
	}
	return errs
}

func profileRules(in Input) []model.ValidationError {
	var errs []model.ValidationError

	if dob := in.value(model.FieldDateOfBirth); dob != "" {
		born, err := time.Parse(model.DateLayout, dob)
		if err != nil {
			errs = append(errs, model.ValidationError{
				Field:   model.FieldDateOfBirth,
				Message: "Enter a valid date of birth",
			})
		} else if ageAt(born, in.now()) < MinimumAge {
			errs = append(errs, model.ValidationError{
				Field:   model.FieldDateOfBirth,
				Message: fmt.Sprintf("You must be at least %d years old", MinimumAge),
			})
		}
	}

	if doc := in.value(model.FieldDocumentType); doc != "" && len(in.Country.DocumentTypes) > 0 {
		ok := false
		for _, t := range in.Country.DocumentTypes {
			if t == doc {
				ok = true
				break
			}
		}
		if !ok {
			errs = append(errs, model.ValidationError{
				Field:   model.FieldDocumentType,
				Message: "Select a document type accepted for your country",
			})
		}
	}

	return errs
}

func amountRules(in Input) []model.ValidationError {
	var errs []model.ValidationError
	ccy := in.Currency.Key

	net, haveNet := in.Currency.Network(in.value(model.FieldNetwork))
	if v := in.value(model.FieldNetwork); v != "" && (!haveNet || !net.IsActive) {
		errs = append(errs, model.ValidationError{
			Field:   model.FieldNetwork,
			Message: "Select an available network",
		})
	}

	raw := in.value(model.FieldAmount)
	if raw == "" {
		return errs
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return append(errs, model.ValidationError{
			Field:   model.FieldAmount,
			Message: "Enter a valid amount",
		})
	}

	if amount.Sign() <= 0 {
		errs = append(errs, model.ValidationError{
			Field:   model.FieldAmount,
			Message: "Amount must be greater than zero",
		})
		return errs
	}

	if !haveNet {
		return errs
	}

	switch in.Mode {
	case ModeDeposit:
		if amount.LessThan(net.MinDeposit) {
			errs = append(errs, model.ValidationError{
				Field:   model.FieldAmount,
				Message: fmt.Sprintf("Minimum deposit is %s %s", net.MinDeposit.String(), ccy),
			})
		}
	case ModeWithdraw:
		if amount.LessThan(net.MinWithdraw) {
			errs = append(errs, model.ValidationError{
				Field:   model.FieldAmount,
				Message: fmt.Sprintf("Minimum withdrawal is %s %s", net.MinWithdraw.String(), ccy),
			})
		}
		if amount.LessThanOrEqual(net.Fee) {
			errs = append(errs, model.ValidationError{
				Field:   model.FieldAmount,
				Message: fmt.Sprintf("Amount must be greater than the network fee (%s %s)", net.Fee.String(), ccy),
			})
		}
		if amount.GreaterThan(in.AvailableBalance) {
			errs = append(errs, model.ValidationError{
				Field:   model.FieldAmount,
				Message: fmt.Sprintf("Insufficient balance. Available: %s %s", in.AvailableBalance.String(), ccy),
			})
		}
	}
	return errs
}

func addressRule(in Input) []model.ValidationError {
	addr := in.value(model.FieldAddress)
	if addr == "" || len(addr) >= MinAddressLength {
		return nil
	}
	return []model.ValidationError{{
		Field:   model.FieldAddress,
		Message: "Enter a valid wallet address",
	}}
}

func (in Input) now() time.Time {
	if in.Now.IsZero() {
		return time.Now()
	}
	return in.Now
}

// ageAt computes age as the calendar year difference, minus one when the
// birthday has not yet occurred in the current year.
func ageAt(born, now time.Time) int {
	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	return years
}
