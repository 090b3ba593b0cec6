package signals

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// DollarResult represents the normalized dollar-index signal
type DollarResult struct {
	Value     float64 `json:"value"`
	Close     float64 `json:"close"`
	ChangePct float64 `json:"change_pct"`
	Direction string  `json:"direction"` // "rising", "falling", "flat"
}

// YieldResult represents the normalized treasury-yield signal
type YieldResult struct {
	Value     float64 `json:"value"`
	Close     float64 `json:"close"`
	Change    float64 `json:"change"`
	Direction string  `json:"direction"`
}

// VolatilityResult represents the normalized volatility (fear) signal
type VolatilityResult struct {
	Value float64 `json:"value"`
	Close float64 `json:"close"`
	Level string  `json:"level"` // "extreme fear", "high fear", "elevated", "complacency", "low fear", "normal"
}

// Clamp bounds x to [-1, +1].
func Clamp(x float64) float64 {
	if x > 1.0 {
		return 1.0
	}
	if x < -1.0 {
		return -1.0
	}
	return x
}

// Dollar normalizes a dollar-index close series into a gold bias signal.
// A strengthening dollar is inverse to gold, so the percent change between
// the first and last close is inverted, then scaled so a move of about
// ±scale percent saturates the signal.
func Dollar(closes []float64, scale float64) (*DollarResult, error) {
	if len(closes) < 2 {
		return nil, fmt.Errorf("insufficient data: got %d closes, need at least 2", len(closes))
	}
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale %v (must be positive)", scale)
	}

	first := closes[0]
	last := closes[len(closes)-1]
	if first == 0 {
		return nil, fmt.Errorf("first close is zero, cannot compute percent change")
	}
	changePct := (last - first) / first * 100

	value := Clamp(-changePct / scale)

	result := &DollarResult{
		Value:     value,
		Close:     last,
		ChangePct: changePct,
		Direction: direction(changePct),
	}

	log.Info().
		Float64("close", last).
		Float64("change_pct", changePct).
		Str("direction", result.Direction).
		Float64("signal", value).
		Msg("Dollar index signal computed")

	return result, nil
}

// Yield normalizes a benchmark bond-yield close series into a gold bias
// signal. Change is measured in absolute yield points, not percent: rising
// yields weigh on a non-yielding asset, so the change is inverted and scaled
// by factor.
func Yield(closes []float64, factor float64) (*YieldResult, error) {
	if len(closes) < 2 {
		return nil, fmt.Errorf("insufficient data: got %d closes, need at least 2", len(closes))
	}
	if factor <= 0 {
		return nil, fmt.Errorf("invalid factor %v (must be positive)", factor)
	}

	first := closes[0]
	last := closes[len(closes)-1]
	change := last - first

	value := Clamp(-change * factor)

	result := &YieldResult{
		Value:     value,
		Close:     last,
		Change:    change,
		Direction: direction(change),
	}

	log.Info().
		Float64("close", last).
		Float64("change", change).
		Str("direction", result.Direction).
		Float64("signal", value).
		Msg("Yield signal computed")

	return result, nil
}

// Volatility maps the latest close of a volatility index to a stepped fear
// signal. Breakpoints are hand-tuned; the ladder order matters: upper-bound
// checks run before lower-bound checks, all comparisons strict.
func Volatility(closes []float64) (*VolatilityResult, error) {
	if len(closes) < 1 {
		return nil, fmt.Errorf("insufficient data: no closes")
	}

	current := closes[len(closes)-1]

	var value float64
	var level string
	switch {
	case current > 30:
		value, level = 0.8, "extreme fear"
	case current > 25:
		value, level = 0.5, "high fear"
	case current > 20:
		value, level = 0.3, "elevated"
	case current < 12:
		value, level = -0.3, "complacency"
	case current < 15:
		value, level = -0.1, "low fear"
	default:
		value, level = 0.0, "normal"
	}

	result := &VolatilityResult{
		Value: value,
		Close: current,
		Level: level,
	}

	log.Info().
		Float64("close", current).
		Str("level", level).
		Float64("signal", value).
		Msg("Volatility signal computed")

	return result, nil
}

func direction(change float64) string {
	switch {
	case change > 0:
		return "rising"
	case change < 0:
		return "falling"
	default:
		return "flat"
	}
}
