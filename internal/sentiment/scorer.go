// Package sentiment scores text polarity on a [-1, 1] scale using the
// VADER lexicon. Scoring is pure and deterministic: same text, same
// score, no I/O.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Scorer computes sentiment polarity for news text.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer creates a sentiment scorer with the default VADER lexicon.
func NewScorer() *Scorer {
	return &Scorer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Score returns the polarity of text in [-1.0, 1.0]. Empty or
// whitespace-only text scores 0.0; text with no recognized tokens also
// lands at 0.0 rather than erroring.
func (s *Scorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0.0
	}
	score := s.analyzer.PolarityScores(text).Compound
	return clamp(score, -1.0, 1.0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
