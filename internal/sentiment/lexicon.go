package sentiment

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Lexicon maps a lower-cased phrase (single word or space-separated) to a
// sentiment intensity in roughly [-4, +4]. Positive means bullish for gold
// once the domain overlay is applied.
type Lexicon map[string]float64

// baseLexicon carries general-purpose intensities for common news-wire
// vocabulary. Domain phrases in the gold overlay take precedence over
// anything listed here.
var baseLexicon = Lexicon{
	// upside vocabulary
	"gain": 1.8, "gains": 1.8, "gained": 1.8, "rally": 2.1, "rallies": 2.1,
	"surge": 2.3, "surges": 2.3, "surged": 2.3, "soar": 2.6, "soars": 2.6,
	"soared": 2.6, "jump": 1.9, "jumps": 1.9, "jumped": 1.9, "rise": 1.4,
	"rises": 1.4, "rose": 1.4, "rising": 1.4, "climb": 1.5, "climbs": 1.5,
	"climbed": 1.5, "boost": 1.7, "boosts": 1.7, "boosted": 1.7,
	"advance": 1.4, "advances": 1.4, "rebound": 1.8, "rebounds": 1.8,
	"recover": 1.6, "recovers": 1.6, "recovery": 1.7, "record": 1.5,
	"strong": 2.0, "strength": 1.8, "robust": 1.7, "growth": 1.6,
	"improve": 1.6, "improves": 1.6, "improved": 1.6, "improving": 1.6,
	"optimism": 2.0, "optimistic": 2.1, "hope": 1.6, "hopes": 1.6,
	"hopeful": 1.8, "confidence": 1.7, "confident": 1.8, "upbeat": 1.9,
	"positive": 1.8, "bullish": 2.4, "favorable": 1.8, "attractive": 1.5,
	"opportunity": 1.6, "outperform": 1.9, "outperforms": 1.9, "beat": 1.7,
	"beats": 1.7, "exceed": 1.6, "exceeds": 1.6, "expansion": 1.5,
	"breakthrough": 2.2, "success": 2.2, "successful": 2.2, "benefit": 1.5,
	"benefits": 1.5, "support": 1.2, "supportive": 1.4, "stable": 1.2,
	"stability": 1.3, "steady": 1.0, "calm": 1.2, "demand": 1.1,
	"higher": 1.1, "progress": 1.5, "agreement": 1.4, "deal": 1.3,
	"resolve": 1.5, "resolved": 1.6, "ease": 1.1, "eased": 1.1,

	// downside vocabulary
	"fall": -1.6, "falls": -1.6, "fell": -1.6, "falling": -1.6,
	"drop": -1.7, "drops": -1.7, "dropped": -1.7, "plunge": -2.5,
	"plunges": -2.5, "plunged": -2.5, "plummet": -2.7, "plummets": -2.7,
	"crash": -3.1, "crashes": -3.1, "tumble": -2.2, "tumbles": -2.2,
	"slump": -2.1, "slumps": -2.1, "slide": -1.6, "slides": -1.6,
	"decline": -1.6, "declines": -1.6, "declining": -1.6, "loss": -2.0,
	"losses": -2.0, "lose": -1.9, "loses": -1.9, "weak": -1.9,
	"weakness": -1.8, "weaker": -1.7, "weakens": -1.7, "fear": -2.2,
	"fears": -2.2, "panic": -2.9, "worry": -1.9, "worries": -1.9,
	"worried": -2.0, "concern": -1.6, "concerns": -1.6, "concerned": -1.7,
	"risk": -1.1, "risks": -1.1, "risky": -1.4, "threat": -2.3,
	"threats": -2.3, "threaten": -2.2, "threatens": -2.2, "warn": -1.9,
	"warns": -1.9, "warning": -2.0, "danger": -2.6, "dangerous": -2.6,
	"turmoil": -2.4, "chaos": -2.7, "collapse": -2.9, "collapses": -2.9,
	"default": -2.4, "defaults": -2.4, "downgrade": -2.0, "downgraded": -2.0,
	"miss": -1.5, "misses": -1.5, "missed": -1.5, "disappoint": -1.9,
	"disappoints": -1.9, "disappointing": -2.0, "pessimism": -2.0,
	"pessimistic": -2.1, "negative": -1.8, "bearish": -2.4, "doubt": -1.5,
	"doubts": -1.5, "slowdown": -1.8, "contraction": -1.8, "shrink": -1.6,
	"shrinks": -1.6, "cut": -1.2, "cuts": -1.2, "layoff": -2.2,
	"layoffs": -2.2, "selloff": -2.3, "sell-off": -2.3, "dump": -1.9,
	"dumps": -1.9, "volatile": -1.8, "volatility": -1.6, "unstable": -1.9,
	"instability": -2.0, "crisis": -3.0, "war": -2.9, "uncertainty": -1.9,
	"lower": -1.1, "recession": -2.4, "unrest": -2.2, "sanctions": -1.7,
	"escalation": -2.1, "escalates": -2.0,
}

// goldLexicon is the domain overlay. For gold, fear trades long: crisis,
// war, and uncertainty flip from bearish prose to bullish positioning,
// while a strong dollar and rising yields weigh on the metal.
var goldLexicon = Lexicon{
	// bullish for gold
	"rate cut": 3.5, "cut rates": 3.5, "cutting rates": 3.0,
	"dovish": 3.0, "dovish fed": 3.5, "dovish stance": 3.0,
	"weak dollar": 3.2, "dollar weakness": 3.2, "weaker dollar": 3.0,
	"inflation": 2.5, "high inflation": 3.0, "rising inflation": 2.8,
	"inflation surge": 3.0, "inflation soars": 3.2,
	"geopolitical": 2.5, "geopolitical risk": 3.0, "geopolitical tension": 3.0,
	"uncertainty": 2.3, "economic uncertainty": 2.8,
	"crisis": 3.0, "financial crisis": 3.5, "banking crisis": 3.5,
	"safe-haven": 3.5, "safe haven": 3.5, "haven demand": 3.2,
	"risk-off": 2.8, "risk aversion": 2.8,
	"recession": 2.5, "recession fears": 3.0, "recession risk": 2.8,
	"war": 3.0, "conflict": 2.5, "military": 2.0,
	"stimulus": 2.5, "easing": 2.5, "accommodation": 2.3,
	"quantitative easing": 3.0, "qe": 2.8,
	"gold rally": 3.5, "gold surge": 3.5, "gold bullish": 3.2,
	"buying gold": 2.5, "gold demand": 2.5,

	// bearish for gold
	"rate hike": -3.5, "hike rates": -3.5, "raising rates": -3.0,
	"hawkish": -3.0, "hawkish fed": -3.5, "hawkish stance": -3.0,
	"strong dollar": -3.2, "dollar strength": -3.2, "stronger dollar": -3.0,
	"tapering": -2.5, "taper": -2.3, "tightening": -2.5,
	"risk-on": -2.8, "risk appetite": -2.5,
	"strong economy": -2.0, "robust growth": -1.8, "economic strength": -2.0,
	"dollar rally": -3.0, "dxy surge": -3.0,
	"yields rise": -2.5, "rising yields": -2.5, "higher yields": -2.3,
	"gold falls": -3.0, "gold drops": -3.0, "gold bearish": -3.2,
	"selling gold": -2.5, "gold selloff": -3.0,
}

// NewLexicon builds the merged scoring table: the base table, overlaid with
// the gold domain table, then overlaid again with entries from the optional
// YAML file at overlayPath (a flat phrase -> intensity mapping). Later
// layers overwrite on conflict. The result is immutable by convention for
// the duration of one run.
func NewLexicon(overlayPath string) (Lexicon, error) {
	merged := make(Lexicon, len(baseLexicon)+len(goldLexicon))
	for phrase, intensity := range baseLexicon {
		merged[phrase] = intensity
	}
	for phrase, intensity := range goldLexicon {
		merged[phrase] = intensity
	}

	if overlayPath != "" {
		data, err := os.ReadFile(overlayPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read lexicon overlay: %w", err)
		}

		overlay := map[string]float64{}
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return nil, fmt.Errorf("failed to parse lexicon overlay: %w", err)
		}

		for phrase, intensity := range overlay {
			merged[strings.ToLower(phrase)] = intensity
		}

		log.Info().
			Int("entries", len(overlay)).
			Str("path", overlayPath).
			Msg("Applied lexicon overlay file")
	}

	log.Debug().Int("size", len(merged)).Msg("Lexicon built")
	return merged, nil
}

// maxPhraseWords returns the word count of the longest phrase key, used to
// bound the phrase-matching window during scoring.
func (l Lexicon) maxPhraseWords() int {
	max := 1
	for phrase := range l {
		if n := strings.Count(phrase, " ") + 1; n > max {
			max = n
		}
	}
	return max
}
