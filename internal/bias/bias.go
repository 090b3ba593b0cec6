package bias

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Bias labels, ordered from most bullish to most bearish.
const (
	StronglyBullish = "strongly bullish"
	Bullish         = "bullish"
	Neutral         = "neutral"
	Bearish         = "bearish"
	StronglyBearish = "strongly bearish"
)

// Weights holds the blend weights for the four signals. The defaults must
// sum to 1.0; this is verified by tests rather than enforced at runtime.
type Weights struct {
	News       float64 `mapstructure:"news" json:"news"`
	Dollar     float64 `mapstructure:"dollar" json:"dollar"`
	Yield      float64 `mapstructure:"yield" json:"yield"`
	Volatility float64 `mapstructure:"volatility" json:"volatility"`
}

// DefaultWeights returns the standard blend: news dominates, the dollar
// carries a fifth, yields and volatility split the remainder.
func DefaultWeights() Weights {
	return Weights{
		News:       0.60,
		Dollar:     0.20,
		Yield:      0.10,
		Volatility: 0.10,
	}
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.News + w.Dollar + w.Yield + w.Volatility
}

// MarketContext is the output aggregate of one run. FinalScore is the sole
// externally persisted value; everything else exists for observability.
type MarketContext struct {
	RunID            string    `json:"run_id"`
	NewsScore        float64   `json:"news_score"`
	DollarSignal     float64   `json:"dollar_signal"`
	YieldSignal      float64   `json:"yield_signal"`
	VolatilitySignal float64   `json:"volatility_signal"`
	FinalScore       float64   `json:"final_score"`
	BiasLabel        string    `json:"bias_label"`
	HeadlineCount    int       `json:"headline_count"`
	DollarTrend      string    `json:"dollar_trend,omitempty"`
	YieldTrend       string    `json:"yield_trend,omitempty"`
	VolatilityTrend  string    `json:"volatility_trend,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Blend combines the four signals into the final score. The weighted sum is
// clamped to [-1, +1]; with weights summing to 1.0 and bounded inputs the
// clamp never fires, but inputs are not trusted to be bounded here.
func Blend(news, dollar, yield, volatility float64, w Weights) float64 {
	score := news*w.News + dollar*w.Dollar + yield*w.Yield + volatility*w.Volatility

	log.Debug().
		Float64("news", news).
		Float64("dollar", dollar).
		Float64("yield", yield).
		Float64("volatility", volatility).
		Float64("weighted_sum", score).
		Msg("Blended signals")

	return clamp(score)
}

// Classify maps a final score to its bias label. Evaluated top-down, first
// match wins; exactly -0.2 is neutral and exactly -0.5 is bearish.
func Classify(score float64) string {
	switch {
	case score > 0.5:
		return StronglyBullish
	case score > 0.2:
		return Bullish
	case score >= -0.2:
		return Neutral
	case score >= -0.5:
		return Bearish
	default:
		return StronglyBearish
	}
}

func clamp(x float64) float64 {
	if x > 1.0 {
		return 1.0
	}
	if x < -1.0 {
		return -1.0
	}
	return x
}
