package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Configuration validation failed with %d error(s):\n\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	sb.WriteString("\nPlease fix the above errors and try again.\n")
	return sb.String()
}

// Validate performs comprehensive configuration validation
func (c *Config) Validate() error {
	var errors ValidationErrors

	// Validate App configuration
	errors = append(errors, c.validateApp()...)

	// Validate Feeds configuration
	errors = append(errors, c.validateFeeds()...)

	// Validate Market configuration
	errors = append(errors, c.validateMarket()...)

	// Validate Signals configuration
	errors = append(errors, c.validateSignals()...)

	// Validate Weights configuration
	errors = append(errors, c.validateWeights()...)

	// Validate Output configuration
	errors = append(errors, c.validateOutput()...)

	if len(errors) > 0 {
		return errors
	}

	return nil
}

func (c *Config) validateApp() ValidationErrors {
	var errors ValidationErrors

	if c.App.Name == "" {
		errors = append(errors, ValidationError{
			Field:   "app.name",
			Message: "Application name is required",
		})
	}

	if c.App.LogLevel == "" {
		errors = append(errors, ValidationError{
			Field:   "app.log_level",
			Message: "Log level is required (trace, debug, info, warn, error)",
		})
	} else {
		validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
		valid := false
		for _, level := range validLevels {
			if c.App.LogLevel == level {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, ValidationError{
				Field:   "app.log_level",
				Message: fmt.Sprintf("Invalid log level '%s'. Must be one of: %v", c.App.LogLevel, validLevels),
			})
		}
	}

	return errors
}

func (c *Config) validateFeeds() ValidationErrors {
	var errors ValidationErrors

	if len(c.Feeds.URLs) == 0 {
		errors = append(errors, ValidationError{
			Field:   "feeds.urls",
			Message: "At least one RSS feed URL is required",
		})
	}

	for i, feedURL := range c.Feeds.URLs {
		if !strings.HasPrefix(feedURL, "http://") && !strings.HasPrefix(feedURL, "https://") {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("feeds.urls[%d]", i),
				Message: fmt.Sprintf("Invalid feed URL '%s'. Must start with http:// or https://", feedURL),
			})
		}
	}

	if len(c.Feeds.Keywords) == 0 {
		errors = append(errors, ValidationError{
			Field:   "feeds.keywords",
			Message: "At least one relevance keyword is required",
		})
	}

	if c.Feeds.RecencyWindow <= 0 {
		errors = append(errors, ValidationError{
			Field:   "feeds.recency_window",
			Message: "Recency window must be greater than 0",
		})
	}

	if c.Feeds.RequestTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "feeds.request_timeout",
			Message: "Request timeout must be greater than 0",
		})
	}

	if c.Feeds.RequestsPerSecond <= 0 {
		errors = append(errors, ValidationError{
			Field:   "feeds.requests_per_second",
			Message: "Requests per second must be greater than 0",
		})
	}

	return errors
}

func (c *Config) validateMarket() ValidationErrors {
	var errors ValidationErrors

	if c.Market.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "market.base_url",
			Message: "Market data base URL is required",
		})
	} else if !strings.HasPrefix(c.Market.BaseURL, "http://") && !strings.HasPrefix(c.Market.BaseURL, "https://") {
		errors = append(errors, ValidationError{
			Field:   "market.base_url",
			Message: fmt.Sprintf("Invalid base URL '%s'. Must start with http:// or https://", c.Market.BaseURL),
		})
	}

	if c.Market.Range == "" {
		errors = append(errors, ValidationError{
			Field:   "market.range",
			Message: "History range is required (e.g. '5d')",
		})
	}

	if c.Market.Interval == "" {
		errors = append(errors, ValidationError{
			Field:   "market.interval",
			Message: "History interval is required (e.g. '1d')",
		})
	}

	symbols := []struct {
		field string
		value string
	}{
		{"market.dollar_symbol", c.Market.DollarSymbol},
		{"market.yield_symbol", c.Market.YieldSymbol},
		{"market.volatility_symbol", c.Market.VolatilitySymbol},
	}
	for _, s := range symbols {
		if s.value == "" {
			errors = append(errors, ValidationError{
				Field:   s.field,
				Message: "Ticker symbol is required",
			})
		}
	}

	if c.Market.RequestTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "market.request_timeout",
			Message: "Request timeout must be greater than 0",
		})
	}

	if c.Market.RequestsPerSecond <= 0 {
		errors = append(errors, ValidationError{
			Field:   "market.requests_per_second",
			Message: "Requests per second must be greater than 0",
		})
	}

	if c.Market.TrendPeriod < 1 {
		errors = append(errors, ValidationError{
			Field:   "market.trend_period",
			Message: "Trend period must be at least 1",
		})
	}

	return errors
}

func (c *Config) validateSignals() ValidationErrors {
	var errors ValidationErrors

	if c.Signals.DollarScale <= 0 {
		errors = append(errors, ValidationError{
			Field:   "signals.dollar_scale",
			Message: "Dollar scale must be greater than 0",
		})
	}

	if c.Signals.YieldFactor <= 0 {
		errors = append(errors, ValidationError{
			Field:   "signals.yield_factor",
			Message: "Yield factor must be greater than 0",
		})
	}

	return errors
}

func (c *Config) validateWeights() ValidationErrors {
	var errors ValidationErrors

	// Sums other than 1.0 are allowed; the blend does not renormalize.
	weights := []struct {
		field string
		value float64
	}{
		{"weights.news", c.Weights.News},
		{"weights.dollar", c.Weights.Dollar},
		{"weights.yield", c.Weights.Yield},
		{"weights.volatility", c.Weights.Volatility},
	}
	for _, w := range weights {
		if w.value < 0 {
			errors = append(errors, ValidationError{
				Field:   w.field,
				Message: fmt.Sprintf("Invalid weight %.2f. Must be non-negative", w.value),
			})
		}
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	if c.Output.ScorePath == "" {
		errors = append(errors, ValidationError{
			Field:   "output.score_path",
			Message: "Score output path is required",
		})
	}

	return errors
}
