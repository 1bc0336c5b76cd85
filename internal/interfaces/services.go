// Package interfaces defines service contracts shared across handlers,
// services and commands.
package interfaces

import (
	"context"

	"github.com/ternarybob/marketbrief/internal/common"
	"github.com/ternarybob/marketbrief/internal/marketdata"
	"github.com/ternarybob/marketbrief/internal/models"
)

// MarketDataService is the upstream provider client surface used by
// the pipeline. Every call is a single attempt; retries are the
// caller's decision and currently nobody retries.
type MarketDataService interface {
	FetchNews(ctx context.Context, symbol string, opts ...marketdata.QueryOption) ([]models.NewsItem, error)
	FetchPriceHistory(ctx context.Context, symbol string, lookbackDays int, opts ...marketdata.QueryOption) ([]models.PriceBar, error)
	FetchFundamentals(ctx context.Context, symbol string) (*models.FundamentalSnapshot, error)
}

// SentimentScorer scores text polarity in [-1, 1].
type SentimentScorer interface {
	Score(text string) float64
}

// CacheService is the TTL store for pipeline payloads.
type CacheService interface {
	Get(key string) (interface{}, bool)
	Put(key string, value interface{})
	Invalidate(key string)
	Clear()
}

// PipelineService runs the batch pipeline and the per-ticker lookups.
// Batch methods only ever omit tickers whose upstream fetch failed;
// they never fail wholesale because of one ticker.
type PipelineService interface {
	Registry() []common.Ticker
	News(ctx context.Context) ([]models.NewsItem, error)
	Sentiment(ctx context.Context) ([]models.TickerSentiment, error)
	Recommendations(ctx context.Context) ([]models.Recommendation, error)
	PriceChart(ctx context.Context, ticker string) (*models.PriceChart, error)
	Technical(ctx context.Context, ticker string) (*models.TechnicalSnapshot, error)
	Fundamental(ctx context.Context, ticker string) (*models.FundamentalSnapshot, error)
	Analysis(ctx context.Context, ticker string) (*models.Analysis, error)
}

// ReportService generates the recommendation report and emails it.
type ReportService interface {
	Run(ctx context.Context) (string, error)
}

// MailService sends email with optional file attachments.
type MailService interface {
	Send(to []string, subject, body string, attachments []string) error
	IsConfigured() bool
}

// SchedulerService manages recurring jobs.
type SchedulerService interface {
	Start() error
	Stop()
	RegisterJob(name, schedule string, job func()) error
	TriggerJob(name string) error
	JobNames() []string
}
