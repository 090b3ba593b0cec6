package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"goldgauge/internal/bias"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Feeds     FeedsConfig     `mapstructure:"feeds"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	Market    MarketConfig    `mapstructure:"market"`
	Signals   SignalsConfig   `mapstructure:"signals"`
	Weights   bias.Weights    `mapstructure:"weights"`
	Output    OutputConfig    `mapstructure:"output"`
}

// AppConfig contains application-level settings
type AppConfig struct {
	Name     string `mapstructure:"name"`
	Version  string `mapstructure:"version"`
	LogLevel string `mapstructure:"log_level"`
}

// FeedsConfig contains RSS headline collection settings
type FeedsConfig struct {
	URLs              []string      `mapstructure:"urls"`
	Keywords          []string      `mapstructure:"keywords"`            // lowercase substrings matched against titles
	RecencyWindow     time.Duration `mapstructure:"recency_window"`      // drop entries older than this
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`     // per-feed fetch deadline
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // polite ceiling across feed hosts
}

// SentimentConfig contains headline scoring settings
type SentimentConfig struct {
	LexiconPath string `mapstructure:"lexicon_path"` // optional YAML overlay, phrase -> intensity
}

// MarketConfig contains market data API settings
type MarketConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Range             string        `mapstructure:"range"`    // e.g. "5d"
	Interval          string        `mapstructure:"interval"` // e.g. "1d"
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	DollarSymbol      string        `mapstructure:"dollar_symbol"`
	YieldSymbol       string        `mapstructure:"yield_symbol"`
	VolatilitySymbol  string        `mapstructure:"volatility_symbol"`
	TrendPeriod       int           `mapstructure:"trend_period"` // EMA period for trend context
}

// SignalsConfig contains indicator-to-signal conversion settings
type SignalsConfig struct {
	DollarScale float64 `mapstructure:"dollar_scale"` // percent change that saturates the dollar signal
	YieldFactor float64 `mapstructure:"yield_factor"` // absolute change multiplier for the yield signal
}

// OutputConfig contains result publication settings
type OutputConfig struct {
	ScorePath   string `mapstructure:"score_path"`
	ContextPath string `mapstructure:"context_path"` // optional JSON context dump, empty disables
}

// DefaultScorePath is the score sink used when configuration cannot name one.
const DefaultScorePath = "market_context.csv"

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("GOLDGAUGE")

	// Set defaults
	setDefaults(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; using defaults and environment variables
	}

	// Unmarshal into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration using comprehensive validation
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "goldgauge")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.log_level", "info")

	// Feed defaults
	v.SetDefault("feeds.urls", []string{
		"https://www.kitco.com/rss/all.xml",
		"https://www.fxstreet.com/rss/news",
		"https://www.investing.com/rss/news_285.rss",
		"https://www.dailyfx.com/rss/gold",
		"https://www.forexlive.com/feed/news",
	})
	v.SetDefault("feeds.keywords", []string{
		"gold", "xau", "xauusd", "precious metal",
		"fed", "federal reserve", "powell", "fomc",
		"inflation", "cpi", "ppi", "pce", "deflation",
		"rate", "interest rate", "rate cut", "rate hike",
		"dollar", "dxy", "usd", "greenback",
		"safe-haven", "safe haven", "haven",
		"geopolitical", "war", "conflict", "tension",
		"treasury", "yield", "bond",
		"nfp", "employment", "unemployment", "jobs",
		"recession", "crisis", "uncertainty", "volatility",
		"central bank", "stimulus", "tapering", "qe",
	})
	v.SetDefault("feeds.recency_window", 2*time.Hour)
	v.SetDefault("feeds.request_timeout", 10*time.Second)
	v.SetDefault("feeds.requests_per_second", 2.0)

	// Sentiment defaults
	v.SetDefault("sentiment.lexicon_path", "")

	// Market data defaults
	v.SetDefault("market.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("market.range", "5d")
	v.SetDefault("market.interval", "1d")
	v.SetDefault("market.request_timeout", 10*time.Second)
	v.SetDefault("market.requests_per_second", 4.0)
	v.SetDefault("market.dollar_symbol", "DX-Y.NYB") // DXY dollar index
	v.SetDefault("market.yield_symbol", "^TNX")      // US 10Y treasury yield
	v.SetDefault("market.volatility_symbol", "^VIX")
	v.SetDefault("market.trend_period", 3)

	// Signal defaults
	v.SetDefault("signals.dollar_scale", 3.0) // +/-3% DXY move saturates the signal
	v.SetDefault("signals.yield_factor", 0.4)

	// Weight defaults: news dominates, macro indicators refine
	v.SetDefault("weights.news", 0.60)
	v.SetDefault("weights.dollar", 0.20)
	v.SetDefault("weights.yield", 0.10)
	v.SetDefault("weights.volatility", 0.10)

	// Output defaults
	v.SetDefault("output.score_path", DefaultScorePath)
	v.SetDefault("output.context_path", "")
}
