package sentiment

import (
	"math"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// Scoring constants for the rule-based model the lexicon intensities were
// calibrated against.
const (
	negationFactor   = -0.74 // applied once per negator found before a hit
	boosterStep      = 0.293 // magnitude shift per intensifier or dampener
	capsEmphasis     = 0.733 // extra magnitude for an all-caps hit in mixed-case text
	exclaimEmphasis  = 0.292 // per '!', counted up to four
	questionEmphasis = 0.18  // per '?' for two or three question marks
	questionCap      = 0.96  // flat emphasis for four or more question marks
	normalization    = 15.0  // alpha in x / sqrt(x^2 + alpha)
)

// negators flip and damp the polarity of a hit when found within the three
// preceding tokens. Contracted forms are matched with apostrophes removed.
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true, "nor": true,
	"none": true, "nothing": true, "nowhere": true, "without": true,
	"cannot": true, "cant": true, "dont": true, "wont": true, "isnt": true,
	"wasnt": true, "arent": true, "werent": true, "aint": true,
	"couldnt": true, "shouldnt": true, "wouldnt": true, "doesnt": true,
	"didnt": true, "hasnt": true, "havent": true, "hadnt": true,
}

// boosters shift the magnitude of the following sentiment hit. Positive
// entries intensify, negative entries dampen; influence decays with
// distance from the hit.
var boosters = map[string]float64{
	"absolutely": boosterStep, "amazingly": boosterStep, "awfully": boosterStep,
	"completely": boosterStep, "considerably": boosterStep, "decidedly": boosterStep,
	"deeply": boosterStep, "enormously": boosterStep, "entirely": boosterStep,
	"especially": boosterStep, "exceptionally": boosterStep, "extremely": boosterStep,
	"greatly": boosterStep, "highly": boosterStep, "hugely": boosterStep,
	"incredibly": boosterStep, "intensely": boosterStep, "majorly": boosterStep,
	"more": boosterStep, "most": boosterStep, "particularly": boosterStep,
	"purely": boosterStep, "quite": boosterStep, "really": boosterStep,
	"remarkably": boosterStep, "sharply": boosterStep, "so": boosterStep,
	"substantially": boosterStep, "thoroughly": boosterStep, "totally": boosterStep,
	"tremendously": boosterStep, "unusually": boosterStep, "utterly": boosterStep,
	"very": boosterStep,

	"almost": -boosterStep, "barely": -boosterStep, "hardly": -boosterStep,
	"less": -boosterStep, "little": -boosterStep, "marginally": -boosterStep,
	"occasionally": -boosterStep, "partly": -boosterStep, "scarcely": -boosterStep,
	"slightly": -boosterStep, "somewhat": -boosterStep,
}

// Analyzer scores short texts against an immutable merged lexicon.
type Analyzer struct {
	lexicon   Lexicon
	maxPhrase int
}

// NewAnalyzer creates an analyzer over the given lexicon.
func NewAnalyzer(lexicon Lexicon) *Analyzer {
	return &Analyzer{
		lexicon:   lexicon,
		maxPhrase: lexicon.maxPhraseWords(),
	}
}

// HeadlineScore records the per-headline outcome for observability.
type HeadlineScore struct {
	Title string
	Score float64
	Label string
}

// Label maps a per-headline compound score to its reporting label. The
// thresholds exist for log readability only and never feed back into
// scoring.
func Label(score float64) string {
	switch {
	case score > 0.1:
		return "bullish"
	case score < -0.1:
		return "bearish"
	default:
		return "neutral"
	}
}

// ScoreHeadlines scores every title and returns the arithmetic mean
// compound along with per-headline detail. An empty input yields exactly
// 0.0, the defined neutral fallback.
func (a *Analyzer) ScoreHeadlines(titles []string) (float64, []HeadlineScore) {
	if len(titles) == 0 {
		log.Warn().Msg("No headlines to score, news sentiment is neutral")
		return 0.0, nil
	}

	details := make([]HeadlineScore, 0, len(titles))
	sum := 0.0
	for _, title := range titles {
		score := a.Compound(title)
		sum += score
		label := Label(score)
		details = append(details, HeadlineScore{Title: title, Score: score, Label: label})

		log.Info().
			Str("label", label).
			Float64("score", score).
			Str("title", truncate(title, 80)).
			Msg("Headline scored")
	}

	mean := sum / float64(len(details))
	if mean > 1.0 {
		mean = 1.0
	} else if mean < -1.0 {
		mean = -1.0
	}

	log.Info().
		Int("headlines", len(details)).
		Float64("news_score", mean).
		Msg("News sentiment aggregated")

	return mean, details
}

// Compound computes the compound polarity of one text in [-1, +1].
// Multi-word lexicon phrases are matched before single words; negation,
// intensifiers, punctuation emphasis, and capitalization adjust each hit
// before the summed valence is normalized.
func (a *Analyzer) Compound(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0.0
	}

	mixedCase := hasMixedCase(tokens)

	sum := 0.0
	for i := 0; i < len(tokens); {
		width, valence, ok := a.matchAt(tokens, i)
		if !ok {
			i++
			continue
		}
		sum += adjustValence(tokens, i, width, valence, mixedCase)
		i += width
	}

	if sum == 0 {
		return 0.0
	}

	return normalize(applyPunctuation(text, sum))
}

// matchAt looks up the longest lexicon phrase starting at position i,
// falling back to the single token. Returns the matched width in tokens.
func (a *Analyzer) matchAt(tokens []token, i int) (int, float64, bool) {
	limit := a.maxPhrase
	if remaining := len(tokens) - i; remaining < limit {
		limit = remaining
	}
	for n := limit; n >= 2; n-- {
		if v, ok := a.lexicon[joinLower(tokens[i:i+n])]; ok {
			return n, v, true
		}
	}
	if v, ok := a.lexicon[tokens[i].lower]; ok {
		return 1, v, true
	}
	return 0, 0, false
}

// adjustValence applies capitalization emphasis, nearby intensifiers, and
// negation to a raw lexicon hit spanning tokens[start : start+width].
func adjustValence(tokens []token, start, width int, valence float64, mixedCase bool) float64 {
	if mixedCase && anyUpperWord(tokens[start:start+width]) {
		valence = shift(valence, capsEmphasis)
	}

	distanceScale := [3]float64{1.0, 0.95, 0.90}
	for d := 1; d <= 3 && start-d >= 0; d++ {
		prev := tokens[start-d]
		step, ok := boosters[prev.lower]
		if !ok {
			continue
		}
		if valence < 0 {
			step = -step
		}
		if mixedCase && isUpperWord(prev.raw) {
			if valence > 0 {
				step += capsEmphasis
			} else {
				step -= capsEmphasis
			}
		}
		valence += step * distanceScale[d-1]
	}

	for d := 1; d <= 3 && start-d >= 0; d++ {
		if isNegator(tokens[start-d].lower) {
			valence *= negationFactor
		}
	}

	// "least convincing" reads negated, "at least" does not
	if start >= 1 && tokens[start-1].lower == "least" {
		if start < 2 || tokens[start-2].lower != "at" {
			valence *= negationFactor
		}
	}

	return valence
}

// applyPunctuation adds exclamation and question-mark emphasis to the
// summed valence, aligned with its sign.
func applyPunctuation(text string, sum float64) float64 {
	emphasis := exclaimBoost(text) + questionBoost(text)
	if sum > 0 {
		return sum + emphasis
	}
	return sum - emphasis
}

func exclaimBoost(text string) float64 {
	count := strings.Count(text, "!")
	if count > 4 {
		count = 4
	}
	return float64(count) * exclaimEmphasis
}

func questionBoost(text string) float64 {
	count := strings.Count(text, "?")
	if count <= 1 {
		return 0
	}
	if count <= 3 {
		return float64(count) * questionEmphasis
	}
	return questionCap
}

// normalize maps the unbounded valence sum into [-1, +1].
func normalize(sum float64) float64 {
	compound := sum / math.Sqrt(sum*sum+normalization)
	if compound > 1.0 {
		return 1.0
	}
	if compound < -1.0 {
		return -1.0
	}
	return compound
}

type token struct {
	raw   string // edge punctuation stripped, case preserved
	lower string
}

// tokenize splits on whitespace and strips edge punctuation, keeping
// internal hyphens and apostrophes so entries like "safe-haven" and
// contractions survive as single tokens.
func tokenize(text string) []token {
	fields := strings.Fields(text)
	tokens := make([]token, 0, len(fields))
	for _, f := range fields {
		trimmed := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if trimmed == "" {
			continue
		}
		tokens = append(tokens, token{raw: trimmed, lower: strings.ToLower(trimmed)})
	}
	return tokens
}

func joinLower(tokens []token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.lower
	}
	return strings.Join(parts, " ")
}

func isNegator(lower string) bool {
	if negators[strings.ReplaceAll(lower, "'", "")] {
		return true
	}
	return strings.HasSuffix(lower, "n't")
}

// shift moves valence away from zero by amount, preserving sign.
func shift(valence, amount float64) float64 {
	if valence > 0 {
		return valence + amount
	}
	if valence < 0 {
		return valence - amount
	}
	return valence
}

// isUpperWord reports whether a token of two or more runes has letters and
// every letter is upper case.
func isUpperWord(s string) bool {
	if len([]rune(s)) < 2 {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// anyUpperWord reports whether any token in the span is an all-caps word.
func anyUpperWord(tokens []token) bool {
	for _, t := range tokens {
		if isUpperWord(t.raw) {
			return true
		}
	}
	return false
}

// hasMixedCase reports whether some tokens are all-caps but not all of
// them, which is when capitalization carries emphasis.
func hasMixedCase(tokens []token) bool {
	upper, lettered := 0, 0
	for _, t := range tokens {
		if !containsLetter(t.raw) {
			continue
		}
		lettered++
		if isUpperWord(t.raw) {
			upper++
		}
	}
	return upper > 0 && upper < lettered
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
