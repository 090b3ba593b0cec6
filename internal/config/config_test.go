package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "goldgauge", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)

	assert.Len(t, cfg.Feeds.URLs, 5)
	assert.NotEmpty(t, cfg.Feeds.Keywords)
	assert.Equal(t, 2*time.Hour, cfg.Feeds.RecencyWindow)
	assert.Equal(t, 10*time.Second, cfg.Feeds.RequestTimeout)

	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Market.BaseURL)
	assert.Equal(t, "5d", cfg.Market.Range)
	assert.Equal(t, "1d", cfg.Market.Interval)
	assert.Equal(t, "DX-Y.NYB", cfg.Market.DollarSymbol)
	assert.Equal(t, "^TNX", cfg.Market.YieldSymbol)
	assert.Equal(t, "^VIX", cfg.Market.VolatilitySymbol)

	assert.Equal(t, 3.0, cfg.Signals.DollarScale)
	assert.Equal(t, 0.4, cfg.Signals.YieldFactor)

	assert.Equal(t, 0.60, cfg.Weights.News)
	assert.Equal(t, 0.20, cfg.Weights.Dollar)
	assert.Equal(t, 0.10, cfg.Weights.Yield)
	assert.Equal(t, 0.10, cfg.Weights.Volatility)

	assert.Equal(t, "market_context.csv", cfg.Output.ScorePath)
	assert.Empty(t, cfg.Output.ContextPath)
}

func TestLoadFromFile(t *testing.T) {
	content := `
app:
  log_level: debug
feeds:
  recency_window: 4h
weights:
  news: 0.5
  dollar: 0.3
output:
  score_path: scores/context.csv
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 4*time.Hour, cfg.Feeds.RecencyWindow)
	assert.Equal(t, 0.5, cfg.Weights.News)
	assert.Equal(t, 0.3, cfg.Weights.Dollar)
	assert.Equal(t, "scores/context.csv", cfg.Output.ScorePath)

	// Untouched keys keep their defaults
	assert.Equal(t, "goldgauge", cfg.App.Name)
	assert.Equal(t, 0.10, cfg.Weights.Yield)
	assert.Len(t, cfg.Feeds.URLs, 5)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feeds: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	content := `
signals:
  dollar_scale: -1.0
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signals.dollar_scale")
}
