// Package policy holds the static rule tables keyed by residence country and
// currency ticker. Lookups are total: an unrecognized key resolves to the
// named default record, never to a missing value.
package policy

import (
	"strings"

	"github.com/shopspring/decimal"

	"exwiz/internal/model"
)

// DefaultKey is the key of the fallback record returned for unknown lookups.
const DefaultKey = "DEFAULT"

// Document type identifiers used by the onboarding flow.
const (
	DocPassport        = "passport"
	DocNationalID      = "national_id"
	DocDriversLicense  = "drivers_license"
	DocResidencePermit = "residence_permit"

	DocUtilityBill   = "utility_bill"
	DocBankStatement = "bank_statement"
)

var defaultCountry = model.CountryPolicy{
	Key:           DefaultKey,
	DisplayName:   "Other",
	POARequired:   false,
	DocumentTypes: []string{DocPassport, DocNationalID, DocDriversLicense},
}

var countries = map[string]model.CountryPolicy{
	"US": {
		Key:                      "US",
		DisplayName:              "United States",
		RequiresEnhancedDocument: true,
		DocumentTypes:            []string{DocPassport, DocDriversLicense},
	},
	"GB": {
		Key:           "GB",
		DisplayName:   "United Kingdom",
		DocumentTypes: []string{DocPassport, DocDriversLicense},
	},
	"DE": {
		Key:           "DE",
		DisplayName:   "Germany",
		DocumentTypes: []string{DocPassport, DocNationalID},
	},
	"NG": {
		Key:           "NG",
		DisplayName:   "Nigeria",
		POARequired:   true,
		DocumentTypes: []string{DocPassport, DocNationalID, DocDriversLicense},
	},
	"IN": {
		Key:           "IN",
		DisplayName:   "India",
		POARequired:   true,
		DocumentTypes: []string{DocPassport, DocNationalID},
	},
	"BR": {
		Key:           "BR",
		DisplayName:   "Brazil",
		POARequired:   true,
		DocumentTypes: []string{DocPassport, DocNationalID, DocDriversLicense},
	},
	"UA": {
		Key:                      "UA",
		DisplayName:              "Ukraine",
		POARequired:              true,
		RequiresEnhancedDocument: true,
		DocumentTypes:            []string{DocPassport, DocResidencePermit},
	},
}

// POADocumentTypes lists the accepted proof-of-address categories. The list
// does not vary by country.
var POADocumentTypes = []string{DocUtilityBill, DocBankStatement}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("policy: bad decimal literal " + s) // static table, caught at init
	}
	return d
}

var defaultCurrency = model.CurrencyPolicy{
	Key:         DefaultKey,
	DisplayName: "Unknown asset",
	Networks: []model.NetworkRecord{
		{
			ID:            "mainnet",
			DisplayName:   "Mainnet",
			IsActive:      true,
			Fee:           dec("0"),
			MinDeposit:    dec("0"),
			MinWithdraw:   dec("0"),
			Confirmations: 12,
			EstimatedTime: "~15 min",
		},
	},
}

var currencies = map[string]model.CurrencyPolicy{
	"BTC": {
		Key:         "BTC",
		DisplayName: "Bitcoin",
		Networks: []model.NetworkRecord{
			{
				ID:            "bitcoin",
				DisplayName:   "Bitcoin",
				IsActive:      true,
				Fee:           dec("0.0005"),
				MinDeposit:    dec("0.0001"),
				MinWithdraw:   dec("0.002"),
				Confirmations: 3,
				EstimatedTime: "~30 min",
			},
			{
				ID:            "lightning",
				DisplayName:   "Lightning",
				IsActive:      false,
				Fee:           dec("0.000001"),
				MinDeposit:    dec("0.00001"),
				MinWithdraw:   dec("0.0001"),
				Confirmations: 1,
				EstimatedTime: "instant",
			},
		},
	},
	"ETH": {
		Key:         "ETH",
		DisplayName: "Ethereum",
		Networks: []model.NetworkRecord{
			{
				ID:            "erc20",
				DisplayName:   "Ethereum (ERC20)",
				IsActive:      true,
				Fee:           dec("0.002"),
				MinDeposit:    dec("0.001"),
				MinWithdraw:   dec("0.01"),
				Confirmations: 12,
				EstimatedTime: "~5 min",
			},
			{
				ID:            "arbitrum",
				DisplayName:   "Arbitrum One",
				IsActive:      true,
				Fee:           dec("0.0003"),
				MinDeposit:    dec("0.0001"),
				MinWithdraw:   dec("0.001"),
				Confirmations: 30,
				EstimatedTime: "~2 min",
			},
		},
	},
	"USDT": {
		Key:         "USDT",
		DisplayName: "Tether",
		Networks: []model.NetworkRecord{
			{
				ID:            "erc20",
				DisplayName:   "Ethereum (ERC20)",
				IsActive:      true,
				Fee:           dec("5"),
				MinDeposit:    dec("1"),
				MinWithdraw:   dec("10"),
				Confirmations: 12,
				EstimatedTime: "~5 min",
			},
			{
				ID:            "trc20",
				DisplayName:   "Tron (TRC20)",
				IsActive:      true,
				Fee:           dec("1"),
				MinDeposit:    dec("1"),
				MinWithdraw:   dec("2"),
				Confirmations: 20,
				EstimatedTime: "~3 min",
			},
			{
				ID:            "solana",
				DisplayName:   "Solana",
				IsActive:      false,
				Fee:           dec("0.5"),
				MinDeposit:    dec("1"),
				MinWithdraw:   dec("1"),
				Confirmations: 1,
				EstimatedTime: "~1 min",
			},
		},
	},
}

// NormalizeKey trims and uppercases a lookup key.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// LookupCountry resolves the onboarding policy for a residence country.
// Unknown and empty keys resolve to the default record.
func LookupCountry(key string) model.CountryPolicy {
	if p, ok := countries[NormalizeKey(key)]; ok {
		return p
	}
	return defaultCountry
}

// LookupCurrency resolves the transaction policy for a currency ticker.
// Unknown and empty keys resolve to the default record.
func LookupCurrency(key string) model.CurrencyPolicy {
	if p, ok := currencies[NormalizeKey(key)]; ok {
		return p
	}
	return defaultCurrency
}

// Countries returns the keys of all configured country policies.
func Countries() []string {
	keys := make([]string, 0, len(countries))
	for k := range countries {
		keys = append(keys, k)
	}
	return keys
}

// Currencies returns the keys of all configured currency policies.
func Currencies() []string {
	keys := make([]string, 0, len(currencies))
	for k := range currencies {
		keys = append(keys, k)
	}
	return keys
}
