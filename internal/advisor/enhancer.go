package advisor

import (
	"fmt"

	"github.com/ternarybob/marketbrief/internal/models"
)

// Enhancer adjusts a sentiment-derived recommendation using whatever
// additional signals are available. Implementations must tolerate nil
// snapshots.
type Enhancer interface {
	Enhance(rec models.Recommendation, tech *models.TechnicalSnapshot, fund *models.FundamentalSnapshot) (models.Recommendation, []string)
}

// NoopEnhancer passes recommendations through unchanged.
type NoopEnhancer struct{}

func (NoopEnhancer) Enhance(rec models.Recommendation, _ *models.TechnicalSnapshot, _ *models.FundamentalSnapshot) (models.Recommendation, []string) {
	return rec, nil
}

// RSI levels and confidence bounds for rule enhancement.
const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0

	baseConfidence = 0.5
	minConfidence  = 0.3
	maxConfidence  = 1.0
)

// RuleEnhancer applies fixed technical/fundamental rules on top of the
// sentiment label: oversold RSI upgrades a Hold to Buy, overbought RSI
// downgrades a Buy to Hold, and a moderate P/E raises confidence.
type RuleEnhancer struct{}

func (RuleEnhancer) Enhance(rec models.Recommendation, tech *models.TechnicalSnapshot, fund *models.FundamentalSnapshot) (models.Recommendation, []string) {
	confidence := baseConfidence
	var notes []string

	if tech != nil && tech.RSI14 != nil {
		rsi := *tech.RSI14
		switch {
		case rsi < rsiOversold && rec.Label == models.LabelHold:
			rec.Label = models.LabelBuy
			confidence += 0.2
			notes = append(notes, fmt.Sprintf("RSI %.1f signals oversold, upgraded Hold to Buy", rsi))
		case rsi > rsiOverbought && rec.Label == models.LabelBuy:
			rec.Label = models.LabelHold
			confidence -= 0.1
			notes = append(notes, fmt.Sprintf("RSI %.1f signals overbought, downgraded Buy to Hold", rsi))
		}
	}

	if fund != nil && fund.TrailingPE != nil {
		pe := *fund.TrailingPE
		if pe > 0 && pe < 20 {
			confidence += 0.1
			notes = append(notes, fmt.Sprintf("P/E %.1f within value range", pe))
		}
	}

	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	rec.Confidence = confidence

	return rec, notes
}
