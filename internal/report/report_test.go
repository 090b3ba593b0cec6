package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldgauge/internal/bias"
	"goldgauge/internal/config"
)

func sampleContext() *bias.MarketContext {
	return &bias.MarketContext{
		RunID:            "test-run",
		NewsScore:        0.42,
		DollarSignal:     -0.1,
		YieldSignal:      0.05,
		VolatilitySignal: 0.3,
		FinalScore:       0.2672,
		BiasLabel:        bias.Bullish,
		HeadlineCount:    7,
		Timestamp:        time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublishWritesScore(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter(&config.OutputConfig{
		ScorePath: filepath.Join(dir, "score.csv"),
	})

	require.NoError(t, reporter.Publish(sampleContext(), bias.DefaultWeights()))

	data, err := os.ReadFile(filepath.Join(dir, "score.csv"))
	require.NoError(t, err)
	assert.Equal(t, "0.2672", string(data))
}

func TestPublishScoreFormatting(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.123456, "0.1235"},
		{-0.5678, "-0.5678"},
		{0.0, "0.0000"},
		{1.0, "1.0000"},
		{-1.0, "-1.0000"},
	}

	for _, tt := range tests {
		dir := t.TempDir()
		reporter := NewReporter(&config.OutputConfig{
			ScorePath: filepath.Join(dir, "score.csv"),
		})

		mc := sampleContext()
		mc.FinalScore = tt.score
		require.NoError(t, reporter.Publish(mc, bias.DefaultWeights()))

		data, err := os.ReadFile(filepath.Join(dir, "score.csv"))
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data), "score %v", tt.score)
	}
}

func TestPublishContextJSON(t *testing.T) {
	dir := t.TempDir()
	contextPath := filepath.Join(dir, "context.json")
	reporter := NewReporter(&config.OutputConfig{
		ScorePath:   filepath.Join(dir, "score.csv"),
		ContextPath: contextPath,
	})

	require.NoError(t, reporter.Publish(sampleContext(), bias.DefaultWeights()))

	data, err := os.ReadFile(contextPath)
	require.NoError(t, err)

	var got bias.MarketContext
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "test-run", got.RunID)
	assert.Equal(t, 0.2672, got.FinalScore)
	assert.Equal(t, bias.Bullish, got.BiasLabel)
	assert.Equal(t, 7, got.HeadlineCount)
}

func TestPublishContextDisabledByDefault(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter(&config.OutputConfig{
		ScorePath: filepath.Join(dir, "score.csv"),
	})

	require.NoError(t, reporter.Publish(sampleContext(), bias.DefaultWeights()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "score.csv", entries[0].Name())
}

func TestPublishFallback(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter(&config.OutputConfig{
		ScorePath: filepath.Join(dir, "score.csv"),
	})

	require.NoError(t, reporter.PublishFallback())

	data, err := os.ReadFile(filepath.Join(dir, "score.csv"))
	require.NoError(t, err)
	assert.Equal(t, "0.0000", string(data))
}

func TestPublishCreatesOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter(&config.OutputConfig{
		ScorePath: filepath.Join(dir, "nested", "out", "score.csv"),
	})

	require.NoError(t, reporter.PublishFallback())

	_, err := os.Stat(filepath.Join(dir, "nested", "out", "score.csv"))
	assert.NoError(t, err)
}

func TestPublishWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// The parent of the score path is a regular file, so directory
	// creation must fail.
	reporter := NewReporter(&config.OutputConfig{
		ScorePath: filepath.Join(blocker, "score.csv"),
	})

	err := reporter.Publish(sampleContext(), bias.DefaultWeights())
	require.Error(t, err)
}
