package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// FetchError reports a settlement-rate fetch that failed after the retry
// policy was exhausted.
type FetchError struct {
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("rate fetch failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Config controls the fetch endpoint and retry policy.
type Config struct {
	// URL is the full quote endpoint, CoinGecko simple-price shaped.
	URL string
	// AssetID is the top-level key the rate is published under, e.g. "solana".
	AssetID string
	// Timeout bounds each individual attempt.
	Timeout time.Duration
	// Attempts is the total number of tries before giving up.
	Attempts int
}

// Client fetches the current USD value of one settlement-currency unit.
// It keeps no cache; every call is a live fetch.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient builds a client with the configured timeout and retry policy.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 2
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// CurrentRate returns the USD price of one settlement unit. On failure it
// retries up to the configured attempt count and then returns a *FetchError.
func (c *Client) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	var lastErr error
	for attempt := 1; attempt <= c.cfg.Attempts; attempt++ {
		rate, err := c.fetchOnce(ctx)
		if err == nil {
			return rate, nil
		}
		lastErr = err
		log.Printf("[rates] attempt %d/%d failed: %v", attempt, c.cfg.Attempts, err)

		if ctx.Err() != nil {
			break
		}
	}
	return decimal.Decimal{}, &FetchError{Attempts: c.cfg.Attempts, Err: lastErr}
}

func (c *Client) fetchOnce(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("fetch rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload map[string]struct {
		USD decimal.Decimal `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode rate: %w", err)
	}

	quote, ok := payload[c.cfg.AssetID]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("asset %q missing from response", c.cfg.AssetID)
	}
	if quote.USD.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("non-positive rate %s", quote.USD)
	}
	return quote.USD, nil
}
