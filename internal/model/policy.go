package model

import "github.com/shopspring/decimal"

// NetworkRecord describes one transfer network of a currency.
type NetworkRecord struct {
	ID            string          `json:"id"`
	DisplayName   string          `json:"displayName"`
	IsActive      bool            `json:"isActive"`
	Fee           decimal.Decimal `json:"fee"`
	MinDeposit    decimal.Decimal `json:"minDeposit"`
	MinWithdraw   decimal.Decimal `json:"minWithdraw"`
	Confirmations int             `json:"confirmations"`
	EstimatedTime string          `json:"estimatedTime"`
}

// CountryPolicy is the onboarding rule set resolved for a residence country.
// Immutable after process start.
type CountryPolicy struct {
	Key                      string   `json:"key"`
	DisplayName              string   `json:"displayName"`
	POARequired              bool     `json:"poaRequired"`
	RequiresEnhancedDocument bool     `json:"requiresEnhancedDocument"`
	DocumentTypes            []string `json:"documentTypes"`
}

// CurrencyPolicy is the transaction rule set resolved for a currency ticker.
// Immutable after process start.
type CurrencyPolicy struct {
	Key         string          `json:"key"`
	DisplayName string          `json:"displayName"`
	Networks    []NetworkRecord `json:"networks"`
}

// Network finds a network of the policy by id. The second return is false
// when the id is unknown.
func (p CurrencyPolicy) Network(id string) (NetworkRecord, bool) {
	for _, n := range p.Networks {
		if n.ID == id {
			return n, true
		}
	}
	return NetworkRecord{}, false
}
