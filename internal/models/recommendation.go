package models

import "time"

// Recommendation labels
const (
	LabelBuy  = "Buy"
	LabelHold = "Hold"
	LabelSell = "Sell"
)

// Recommendation is the per-ticker investment advice derived from news
// sentiment, optionally adjusted by technical/fundamental signals.
type Recommendation struct {
	Ticker     string    `json:"ticker"`
	Label      string    `json:"recommendation"`
	Sentiment  float64   `json:"avg_polarity"`
	NewsCount  int       `json:"news_count"`
	Confidence float64   `json:"confidence,omitempty"`
	ComputedAt time.Time `json:"computed_at"`
}

// Analysis is the combined per-ticker view: the sentiment-derived
// recommendation alongside technical and fundamental snapshots. Either
// snapshot may be nil when its upstream data was unavailable.
type Analysis struct {
	Ticker         string               `json:"ticker"`
	Recommendation Recommendation       `json:"recommendation"`
	Technical      *TechnicalSnapshot   `json:"technical,omitempty"`
	Fundamental    *FundamentalSnapshot `json:"fundamental,omitempty"`
	Notes          []string             `json:"notes,omitempty"`
}
