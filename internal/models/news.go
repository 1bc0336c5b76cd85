package models

import (
	"strings"
	"time"
)

// NewsItem is a single news article attributed to a ticker.
type NewsItem struct {
	Ticker      string    `json:"ticker"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// Text returns the text scored for sentiment: title and summary
// combined, since headlines alone are often too terse to carry polarity.
func (n NewsItem) Text() string {
	if n.Summary == "" {
		return n.Title
	}
	return strings.TrimSpace(n.Title + ". " + n.Summary)
}

// ScoredNews pairs a news item with its sentiment polarity.
type ScoredNews struct {
	NewsItem
	Score float64 `json:"score"`
}

// TickerSentiment is the per-ticker sentiment payload: every scored
// item plus the mean polarity across them.
type TickerSentiment struct {
	Ticker string       `json:"ticker"`
	Items  []ScoredNews `json:"items"`
	Mean   float64      `json:"mean"`
}
