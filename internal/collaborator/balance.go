package collaborator

import (
	"sync"

	"github.com/shopspring/decimal"

	"exwiz/internal/policy"
)

// Balances is an in-memory balance provider. Reads are point-in-time; the
// wizard does not subscribe to updates.
type Balances struct {
	mu sync.RWMutex
	m  map[string]decimal.Decimal
}

// NewBalances seeds the provider. Keys are normalized currency tickers.
func NewBalances(seed map[string]decimal.Decimal) *Balances {
	b := &Balances{m: make(map[string]decimal.Decimal, len(seed))}
	for k, v := range seed {
		b.m[policy.NormalizeKey(k)] = v
	}
	return b
}

// Available returns the balance for a currency, zero when unknown.
func (b *Balances) Available(currency string) decimal.Decimal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.m[policy.NormalizeKey(currency)]
}

// Set replaces the balance for a currency.
func (b *Balances) Set(currency string, amount decimal.Decimal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[policy.NormalizeKey(currency)] = amount
}
