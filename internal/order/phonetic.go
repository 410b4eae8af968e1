package order

import (
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/windoze95/cardapio-api/internal/menu"
	"github.com/windoze95/cardapio-api/internal/textnorm"
)

const (
	defaultPhoneticThreshold = 0.85
	defaultFuzzyThreshold    = 0.92
)

// PhoneticOption configures a PhoneticMatch.
type PhoneticOption func(*PhoneticMatch)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score for a name that
// shares a Double Metaphone code with the phrase.
func WithPhoneticThreshold(threshold float64) PhoneticOption {
	return func(p *PhoneticMatch) {
		p.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score for a name with no
// phonetic overlap.
func WithFuzzyThreshold(threshold float64) PhoneticOption {
	return func(p *PhoneticMatch) {
		p.fuzzyThreshold = threshold
	}
}

// PhoneticMatch catches misheard names ("goiabda" for "goiabada") using
// Double Metaphone codes ranked by Jaro-Winkler similarity. Stopwords are
// ignored on both sides.
type PhoneticMatch struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// NewPhoneticMatch returns a PhoneticMatch with default thresholds.
func NewPhoneticMatch(opts ...PhoneticOption) PhoneticMatch {
	p := PhoneticMatch{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(&p)
	}
	return p
}

func (PhoneticMatch) Name() string { return "phonetic" }

func (p PhoneticMatch) Resolve(phrase string, catalog *menu.Catalog) (int, bool) {
	cleaned := textnorm.StripStopwords(phrase)
	if cleaned == "" {
		return -1, false
	}
	tokens := strings.Fields(cleaned)
	codes := metaphoneCodes(tokens)

	best := -1
	bestScore := 0.0
	bestPhonetic := false
	for i := 0; i < catalog.Len(); i++ {
		key := textnorm.StripStopwords(catalog.NormalizedName(i))
		if key == "" {
			continue
		}
		keyTokens := strings.Fields(key)
		score := similarity(tokens, keyTokens, cleaned, key)

		if overlaps(codes, metaphoneCodes(keyTokens)) {
			if score >= p.phoneticThreshold && (!bestPhonetic || score > bestScore) {
				best, bestScore, bestPhonetic = i, score, true
			}
		} else if !bestPhonetic && score >= p.fuzzyThreshold && score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, best >= 0
}

func metaphoneCodes(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		primary, secondary := matchr.DoubleMetaphone(t)
		if primary != "" {
			codes[primary] = struct{}{}
		}
		if secondary != "" {
			codes[secondary] = struct{}{}
		}
	}
	return codes
}

func overlaps(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// similarity compares the full strings and, for multi-word input, the
// strings with spaces removed.
func similarity(tokens, keyTokens []string, full, key string) float64 {
	score := matchr.JaroWinkler(full, key, false)
	if len(tokens) > 1 || len(keyTokens) > 1 {
		if s := matchr.JaroWinkler(strings.Join(tokens, ""), strings.Join(keyTokens, ""), false); s > score {
			score = s
		}
	}
	return score
}
