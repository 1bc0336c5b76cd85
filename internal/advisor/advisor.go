// Package advisor turns sentiment scores into Buy/Hold/Sell
// recommendations and optionally refines them with technical and
// fundamental signals.
package advisor

import (
	"time"

	"github.com/ternarybob/marketbrief/internal/models"
)

// Sentiment thresholds. Both comparisons are strict: a mean sitting
// exactly on a threshold stays Hold.
const (
	BuyThreshold  = 0.1
	SellThreshold = -0.1
)

// Aggregator derives recommendations from per-article sentiment scores.
type Aggregator struct {
	enhancer Enhancer
	now      func() time.Time
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithEnhancer sets the signal enhancer consulted by Analyze.
func WithEnhancer(e Enhancer) Option {
	return func(a *Aggregator) {
		if e != nil {
			a.enhancer = e
		}
	}
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator creates an aggregator. Without options it uses a no-op
// enhancer and the wall clock.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		enhancer: NoopEnhancer{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate computes the recommendation for one ticker from its article
// scores. Zero scores means no news: mean 0.0, Hold, count 0. That is a
// successful computation, not an error.
func (a *Aggregator) Aggregate(ticker string, scores []float64) models.Recommendation {
	mean := 0.0
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		mean = sum / float64(len(scores))
	}

	label := models.LabelHold
	switch {
	case mean > BuyThreshold:
		label = models.LabelBuy
	case mean < SellThreshold:
		label = models.LabelSell
	}

	return models.Recommendation{
		Ticker:     ticker,
		Label:      label,
		Sentiment:  mean,
		NewsCount:  len(scores),
		ComputedAt: a.now().UTC(),
	}
}

// Analyze combines the sentiment recommendation with technical and
// fundamental snapshots, running the configured enhancer over the
// result. Either snapshot may be nil.
func (a *Aggregator) Analyze(ticker string, scores []float64, tech *models.TechnicalSnapshot, fund *models.FundamentalSnapshot) models.Analysis {
	rec := a.Aggregate(ticker, scores)
	rec, notes := a.enhancer.Enhance(rec, tech, fund)

	return models.Analysis{
		Ticker:         ticker,
		Recommendation: rec,
		Technical:      tech,
		Fundamental:    fund,
		Notes:          notes,
	}
}
