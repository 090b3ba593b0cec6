// Package engine orchestrates one scoring run: collect headlines, score
// sentiment, fetch macro indicators, and blend everything into a market
// bias context.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"goldgauge/internal/bias"
	"goldgauge/internal/config"
	"goldgauge/internal/feeds"
	"goldgauge/internal/market"
	"goldgauge/internal/sentiment"
	"goldgauge/internal/signals"
)

// Engine wires the collection, scoring, and blending stages together.
type Engine struct {
	cfg      *config.Config
	fetcher  *feeds.Fetcher
	analyzer *sentiment.Analyzer
	market   *market.Client
	log      zerolog.Logger
}

// New builds an engine from configuration. A broken lexicon overlay file
// is a hard error; a run with a misconfigured lexicon would score garbage.
func New(cfg *config.Config) (*Engine, error) {
	lexicon, err := sentiment.NewLexicon(cfg.Sentiment.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build sentiment lexicon: %w", err)
	}

	return &Engine{
		cfg:      cfg,
		fetcher:  feeds.NewFetcher(&cfg.Feeds),
		analyzer: sentiment.NewAnalyzer(lexicon),
		market:   market.NewClient(&cfg.Market),
		log:      config.NewLogger("engine"),
	}, nil
}

// Run executes one scoring pass. Individual component failures degrade to
// a neutral contribution; Run returns an error only when every component
// failed and there is no market context to report.
func (e *Engine) Run(ctx context.Context) (*bias.MarketContext, error) {
	mc := &bias.MarketContext{
		RunID:     uuid.New().String(),
		Timestamp: time.Now().UTC(),
	}

	e.log.Info().Str("run_id", mc.RunID).Msg("Market bias run starting")

	newsOK := e.collectNews(ctx, mc)
	dollarOK := e.dollarSignal(ctx, mc)
	yieldOK := e.yieldSignal(ctx, mc)
	volatilityOK := e.volatilitySignal(ctx, mc)

	if !newsOK && !dollarOK && !yieldOK && !volatilityOK {
		return nil, fmt.Errorf("all data sources failed, no market context available")
	}

	mc.FinalScore = bias.Blend(mc.NewsScore, mc.DollarSignal, mc.YieldSignal, mc.VolatilitySignal, e.cfg.Weights)
	mc.BiasLabel = bias.Classify(mc.FinalScore)

	e.log.Info().
		Str("run_id", mc.RunID).
		Float64("score", mc.FinalScore).
		Str("bias", mc.BiasLabel).
		Bool("news_ok", newsOK).
		Bool("dollar_ok", dollarOK).
		Bool("yield_ok", yieldOK).
		Bool("volatility_ok", volatilityOK).
		Msg("Market bias run complete")

	return mc, nil
}

func (e *Engine) collectNews(ctx context.Context, mc *bias.MarketContext) bool {
	headlines, err := e.fetcher.Collect(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("Headline collection failed, news component stays neutral")
		return false
	}

	score, _ := e.analyzer.ScoreHeadlines(feeds.Titles(headlines))
	mc.NewsScore = score
	mc.HeadlineCount = len(headlines)
	return true
}

func (e *Engine) dollarSignal(ctx context.Context, mc *bias.MarketContext) bool {
	symbol := e.cfg.Market.DollarSymbol
	series, err := e.market.History(ctx, symbol)
	if err != nil {
		e.log.Error().Err(err).Str("symbol", symbol).Msg("Dollar index fetch failed, signal stays neutral")
		return false
	}

	result, err := signals.Dollar(series.Closes(), e.cfg.Signals.DollarScale)
	if err != nil {
		e.log.Error().Err(err).Str("symbol", symbol).Msg("Dollar signal unavailable, stays neutral")
		return false
	}

	mc.DollarSignal = result.Value
	mc.DollarTrend = market.Trend(series.Closes(), e.cfg.Market.TrendPeriod)
	return true
}

func (e *Engine) yieldSignal(ctx context.Context, mc *bias.MarketContext) bool {
	symbol := e.cfg.Market.YieldSymbol
	series, err := e.market.History(ctx, symbol)
	if err != nil {
		e.log.Error().Err(err).Str("symbol", symbol).Msg("Treasury yield fetch failed, signal stays neutral")
		return false
	}

	result, err := signals.Yield(series.Closes(), e.cfg.Signals.YieldFactor)
	if err != nil {
		e.log.Error().Err(err).Str("symbol", symbol).Msg("Yield signal unavailable, stays neutral")
		return false
	}

	mc.YieldSignal = result.Value
	mc.YieldTrend = market.Trend(series.Closes(), e.cfg.Market.TrendPeriod)
	return true
}

func (e *Engine) volatilitySignal(ctx context.Context, mc *bias.MarketContext) bool {
	symbol := e.cfg.Market.VolatilitySymbol
	series, err := e.market.History(ctx, symbol)
	if err != nil {
		e.log.Error().Err(err).Str("symbol", symbol).Msg("Volatility index fetch failed, signal stays neutral")
		return false
	}

	result, err := signals.Volatility(series.Closes())
	if err != nil {
		e.log.Error().Err(err).Str("symbol", symbol).Msg("Volatility signal unavailable, stays neutral")
		return false
	}

	mc.VolatilitySignal = result.Value
	mc.VolatilityTrend = market.Trend(series.Closes(), e.cfg.Market.TrendPeriod)
	return true
}
