package market

import (
	"github.com/cinar/indicator/v2/trend"
	"github.com/rs/zerolog/log"
)

// Trend labels the direction of a close series by comparing the latest
// close against its EMA: "rising", "falling", or "flat". The label is
// context for the published report and never feeds the bias score.
func Trend(closes []float64, period int) string {
	if period < 1 || len(closes) < period {
		return "flat"
	}

	// cinar indicators consume and produce channels
	pricesChan := make(chan float64, len(closes))
	for _, p := range closes {
		pricesChan <- p
	}
	close(pricesChan)

	emaIndicator := trend.NewEmaWithPeriod[float64](period)
	emaChan := emaIndicator.Compute(pricesChan)

	var emaValues []float64
	for val := range emaChan {
		emaValues = append(emaValues, val)
	}
	if len(emaValues) == 0 {
		return "flat"
	}

	currentEMA := emaValues[len(emaValues)-1]
	currentClose := closes[len(closes)-1]

	label := "flat"
	switch {
	case currentClose > currentEMA:
		label = "rising"
	case currentClose < currentEMA:
		label = "falling"
	}

	log.Debug().
		Float64("ema", currentEMA).
		Float64("close", currentClose).
		Str("trend", label).
		Msg("Trend computed")

	return label
}
