// Package metalprice fetches gold and silver spot prices from an external
// HTTP JSON feed. The feed is treated as untrusted and unreliable: bounded
// timeout, one retry on 5xx or network errors, and strict payload checks.
// Fallback to cached prices is the oracle service's job, not the provider's.
package metalprice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hawlguard/zakat-backend/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Quote is one spot price reading: troy-ounce price in the request currency.
type Quote struct {
	Metal         domain.Metal
	Currency      string
	PricePerOunce decimal.Decimal
	FetchedAt     time.Time
}

// Provider fetches spot prices from the configured feed endpoint.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider for the given feed base URL.
func NewProvider(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "metalprice"),
	}
}

// FetchSpot fetches the current spot price for one metal in one currency.
// Any failure (network, timeout, non-2xx, malformed payload) is returned as
// an error; the caller decides whether cached data can stand in.
func (p *Provider) FetchSpot(ctx context.Context, metal domain.Metal, currency string) (Quote, error) {
	reqURL := fmt.Sprintf("%s/latest?%s", p.baseURL, url.Values{
		"base":    {currency},
		"symbols": {metal.Symbol()},
	}.Encode())

	p.log.DebugContext(ctx, "price feed request",
		slog.String("metal", metal.String()),
		slog.String("currency", currency),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("metalprice: create request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("X-Api-Key", p.apiKey)
	}

	resp, err := p.doWithRetry(ctx, req, metal)
	if err != nil {
		return Quote{}, fmt.Errorf("metalprice: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("metalprice: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, fmt.Errorf("metalprice: read body: %w", err)
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Quote{}, fmt.Errorf("metalprice: decode json: %w", err)
	}

	if !payload.Success {
		msg := "feed reported failure"
		if payload.Error != nil {
			msg = payload.Error.Message
		}
		return Quote{}, fmt.Errorf("metalprice: %s", msg)
	}

	rate, ok := payload.Rates[metal.Symbol()]
	if !ok {
		return Quote{}, fmt.Errorf("metalprice: symbol %s missing from response", metal.Symbol())
	}
	if rate <= 0 {
		return Quote{}, fmt.Errorf("metalprice: non-positive rate %v for %s", rate, metal.Symbol())
	}

	quote := Quote{
		Metal:         metal,
		Currency:      currency,
		PricePerOunce: decimal.NewFromFloat(rate),
		FetchedAt:     time.Now().UTC(),
	}

	p.log.DebugContext(ctx, "price feed response",
		slog.String("metal", metal.String()),
		slog.String("currency", currency),
		slog.String("per_ounce", quote.PricePerOunce.String()),
	)

	return quote, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, metal domain.Metal) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "price feed retry",
		slog.String("metal", metal.String()),
		slog.String("reason", reason),
	)

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	resp, err = p.httpClient.Do(req)
	return resp, err
}
