// Package market fetches daily close history for macro tickers from the
// Yahoo Finance chart API.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"goldgauge/internal/config"
)

// PricePoint is a single close observation.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Close     float64   `json:"close"`
}

// Series holds the close history for one symbol, oldest first.
type Series struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Closes returns the close values in chronological order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// Latest returns the most recent close.
func (s *Series) Latest() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Close
}

// chartResponse mirrors the slice of the chart API payload we consume.
// Close entries can be null for sessions with no trade, so they decode
// into pointers.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol   string `json:"symbol"`
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Client is a rate-limited chart API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	rng        string
	interval   string
}

// NewClient creates a market data client from market configuration.
func NewClient(cfg *config.MarketConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		rng:      cfg.Range,
		interval: cfg.Interval,
	}
}

// History fetches the configured range of daily closes for a symbol.
func (c *Client) History(ctx context.Context, symbol string) (*Series, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("market request interrupted: %w", err)
	}

	params := url.Values{}
	params.Set("range", c.rng)
	params.Set("interval", c.interval)
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The chart endpoint rejects requests without a browser-ish agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; goldgauge/1.0)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart data: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart API returned status %d for %s", resp.StatusCode, symbol)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}

	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s: %s",
			symbol, chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	series := &Series{Symbol: symbol}
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		series.Points = append(series.Points, PricePoint{
			Timestamp: time.Unix(ts, 0).UTC(),
			Close:     *closes[i],
		})
	}

	if len(series.Points) == 0 {
		return nil, fmt.Errorf("chart for %s contained no usable closes", symbol)
	}

	log.Debug().
		Str("symbol", symbol).
		Int("points", len(series.Points)).
		Float64("latest", series.Latest()).
		Msg("Close history fetched")

	return series, nil
}
