package advisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/marketbrief/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
}

func TestAggregate_Labels(t *testing.T) {
	agg := NewAggregator(WithClock(fixedClock))

	tests := []struct {
		name      string
		scores    []float64
		wantLabel string
		wantMean  float64
	}{
		{"no news holds", nil, models.LabelHold, 0.0},
		{"empty slice holds", []float64{}, models.LabelHold, 0.0},
		{"positive buys", []float64{0.5, 0.3}, models.LabelBuy, 0.4},
		{"negative sells", []float64{-0.5, -0.3}, models.LabelSell, -0.4},
		{"neutral holds", []float64{0.05, -0.05}, models.LabelHold, 0.0},
		{"exactly buy threshold holds", []float64{0.1}, models.LabelHold, 0.1},
		{"exactly sell threshold holds", []float64{-0.1}, models.LabelHold, -0.1},
		{"mean lands on threshold holds", []float64{0.6, -0.4}, models.LabelHold, 0.1},
		{"just above threshold buys", []float64{0.11}, models.LabelBuy, 0.11},
		{"just below threshold sells", []float64{-0.11}, models.LabelSell, -0.11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := agg.Aggregate("AAPL", tt.scores)

			assert.Equal(t, "AAPL", rec.Ticker)
			assert.Equal(t, tt.wantLabel, rec.Label)
			assert.InDelta(t, tt.wantMean, rec.Sentiment, 1e-9)
			assert.Equal(t, len(tt.scores), rec.NewsCount)
			assert.Equal(t, fixedClock(), rec.ComputedAt)
		})
	}
}

func TestAnalyze_DefaultEnhancerIsNoop(t *testing.T) {
	agg := NewAggregator(WithClock(fixedClock))

	rsi := 20.0
	tech := &models.TechnicalSnapshot{Ticker: "AAPL", RSI14: &rsi}

	analysis := agg.Analyze("AAPL", []float64{0.0}, tech, nil)

	// Oversold RSI does not change the label without a rule enhancer
	assert.Equal(t, models.LabelHold, analysis.Recommendation.Label)
	assert.Empty(t, analysis.Notes)
	assert.Equal(t, tech, analysis.Technical)
	assert.Nil(t, analysis.Fundamental)
}

func TestRuleEnhancer_OversoldUpgrade(t *testing.T) {
	agg := NewAggregator(WithClock(fixedClock), WithEnhancer(RuleEnhancer{}))

	rsi := 25.0
	tech := &models.TechnicalSnapshot{RSI14: &rsi}

	analysis := agg.Analyze("TCS.NS", []float64{0.05}, tech, nil)

	assert.Equal(t, models.LabelBuy, analysis.Recommendation.Label)
	assert.InDelta(t, 0.7, analysis.Recommendation.Confidence, 1e-9)
	assert.Len(t, analysis.Notes, 1)
}

func TestRuleEnhancer_OverboughtDowngrade(t *testing.T) {
	agg := NewAggregator(WithClock(fixedClock), WithEnhancer(RuleEnhancer{}))

	rsi := 80.0
	tech := &models.TechnicalSnapshot{RSI14: &rsi}

	analysis := agg.Analyze("AAPL", []float64{0.5}, tech, nil)

	assert.Equal(t, models.LabelHold, analysis.Recommendation.Label)
	assert.InDelta(t, 0.4, analysis.Recommendation.Confidence, 1e-9)
}

func TestRuleEnhancer_ValuePERaisesConfidence(t *testing.T) {
	agg := NewAggregator(WithClock(fixedClock), WithEnhancer(RuleEnhancer{}))

	pe := 15.0
	fund := &models.FundamentalSnapshot{TrailingPE: &pe}

	analysis := agg.Analyze("JPM", []float64{0.5}, nil, fund)

	assert.Equal(t, models.LabelBuy, analysis.Recommendation.Label)
	assert.InDelta(t, 0.6, analysis.Recommendation.Confidence, 1e-9)
}

func TestRuleEnhancer_NilSnapshots(t *testing.T) {
	agg := NewAggregator(WithClock(fixedClock), WithEnhancer(RuleEnhancer{}))

	analysis := agg.Analyze("AAPL", []float64{0.5}, nil, nil)

	assert.Equal(t, models.LabelBuy, analysis.Recommendation.Label)
	assert.InDelta(t, 0.5, analysis.Recommendation.Confidence, 1e-9)
	assert.Empty(t, analysis.Notes)
}
