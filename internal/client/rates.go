package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"exwiz/internal/policy"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3"
)

// coinIDs maps exchange tickers to CoinGecko asset ids.
var coinIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"USDT": "tether",
}

// RateClient fetches fiat quotes used to decorate balance responses. A
// failed quote degrades the response, it never blocks a wizard.
type RateClient struct {
	baseURL string
	client  *http.Client
}

// NewRateClient creates a rate client. An empty baseURL selects the public
// CoinGecko API.
func NewRateClient(baseURL string) *RateClient {
	if baseURL == "" {
		baseURL = coingeckoAPI
	}
	return &RateClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// USDQuote gets the USD price for a currency ticker.
func (c *RateClient) USDQuote(ctx context.Context, currency string) (decimal.Decimal, error) {
	id, ok := coinIDs[policy.NormalizeKey(currency)]
	if !ok {
		return decimal.Zero, fmt.Errorf("no quote source for %q", currency)
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("failed to get quote: status %d", resp.StatusCode)
	}

	var priceResp map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode quote: %w", err)
	}

	usd, ok := priceResp[id]["usd"]
	if !ok {
		return decimal.Zero, fmt.Errorf("quote response missing %q", id)
	}
	return decimal.NewFromFloat(usd), nil
}
