// Package report publishes the scored market context: the plain-text score
// file consumed by downstream tooling and an optional JSON context dump.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"goldgauge/internal/bias"
	"goldgauge/internal/config"
)

// neutralScore is what the score file receives when a run cannot produce
// a real result. Consumers read it as "no directional conviction".
const neutralScore = "0.0000"

// Reporter writes scoring results to the configured output paths.
type Reporter struct {
	scorePath   string
	contextPath string
}

// NewReporter creates a reporter from output configuration.
func NewReporter(cfg *config.OutputConfig) *Reporter {
	return &Reporter{
		scorePath:   cfg.ScorePath,
		contextPath: cfg.ContextPath,
	}
}

// Publish logs the weighted breakdown and writes the final score to the
// score file, plus the full context as JSON when a context path is set.
func (r *Reporter) Publish(mc *bias.MarketContext, weights bias.Weights) error {
	components := []struct {
		name   string
		signal float64
		weight float64
	}{
		{"news", mc.NewsScore, weights.News},
		{"dollar", mc.DollarSignal, weights.Dollar},
		{"yield", mc.YieldSignal, weights.Yield},
		{"volatility", mc.VolatilitySignal, weights.Volatility},
	}
	for _, c := range components {
		log.Info().
			Str("component", c.name).
			Float64("signal", c.signal).
			Float64("weight", c.weight).
			Float64("contribution", c.signal*c.weight).
			Msg("Score component")
	}

	log.Info().
		Str("run_id", mc.RunID).
		Float64("score", mc.FinalScore).
		Str("bias", mc.BiasLabel).
		Int("headlines", mc.HeadlineCount).
		Msg("Final market bias")

	if err := r.writeScore(fmt.Sprintf("%.4f", mc.FinalScore)); err != nil {
		return err
	}

	if r.contextPath != "" {
		if err := r.writeContext(mc); err != nil {
			return err
		}
	}

	return nil
}

// PublishFallback writes the neutral score so that downstream consumers
// always find a parseable value, even after a failed run.
func (r *Reporter) PublishFallback() error {
	log.Warn().Str("path", r.scorePath).Msg("Publishing neutral fallback score")
	return r.writeScore(neutralScore)
}

func (r *Reporter) writeScore(value string) error {
	if dir := filepath.Dir(r.scorePath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(r.scorePath, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write score file: %w", err)
	}

	log.Debug().Str("path", r.scorePath).Str("score", value).Msg("Score file written")
	return nil
}

func (r *Reporter) writeContext(mc *bias.MarketContext) error {
	data, err := json.MarshalIndent(mc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode market context: %w", err)
	}

	if dir := filepath.Dir(r.contextPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(r.contextPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write context file: %w", err)
	}

	log.Debug().Str("path", r.contextPath).Msg("Context file written")
	return nil
}
