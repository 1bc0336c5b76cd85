package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Range(t *testing.T) {
	scorer := NewScorer()

	texts := []string{
		"Company reports record profits, stock soars on excellent results",
		"Company faces massive losses, bankruptcy fears grow, terrible quarter",
		"The company held its annual general meeting on Tuesday",
		"zxqw vbnm qqqq",
	}

	for _, text := range texts {
		score := scorer.Score(text)
		assert.GreaterOrEqual(t, score, -1.0, "text: %s", text)
		assert.LessOrEqual(t, score, 1.0, "text: %s", text)
	}
}

func TestScore_Polarity(t *testing.T) {
	scorer := NewScorer()

	positive := scorer.Score("Excellent results, profits surge, great outlook, stock rallies")
	negative := scorer.Score("Terrible losses, profits collapse, awful outlook, stock crashes")

	assert.Positive(t, positive)
	assert.Negative(t, negative)
	assert.Greater(t, positive, negative)
}

func TestScore_EmptyAndGarbage(t *testing.T) {
	scorer := NewScorer()

	assert.Equal(t, 0.0, scorer.Score(""))
	assert.Equal(t, 0.0, scorer.Score("   \t\n  "))
	// Tokens outside the lexicon carry no polarity
	assert.Equal(t, 0.0, scorer.Score("zxqw vbnm qqqq"))
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewScorer()

	text := "Strong earnings beat expectations but guidance disappoints"
	first := scorer.Score(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, scorer.Score(text))
	}
}
