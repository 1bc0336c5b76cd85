// Package pipeline orchestrates the recommendation flow: fetch news
// and prices for every registry ticker, score sentiment, aggregate
// labels and serve the results through the TTL cache.
package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/marketbrief/internal/advisor"
	"github.com/ternarybob/marketbrief/internal/common"
	"github.com/ternarybob/marketbrief/internal/indicators"
	"github.com/ternarybob/marketbrief/internal/interfaces"
	"github.com/ternarybob/marketbrief/internal/marketdata"
	"github.com/ternarybob/marketbrief/internal/models"
	"github.com/ternarybob/marketbrief/internal/services/cache"
)

// ErrUnknownTicker is returned for per-ticker lookups outside the registry.
var ErrUnknownTicker = errors.New("unknown ticker")

// DefaultWorkers bounds the per-ticker fetch fan-out.
const DefaultWorkers = 5

// tickerNews is the cached unit of the news stage: one registry ticker
// with its fetched articles. Failed carries the upstream-failure flag so
// downstream stages can tell "no news" apart from "fetch failed".
type tickerNews struct {
	Ticker common.Ticker
	Items  []models.NewsItem
	Failed bool
}

// Service is the pipeline orchestrator.
type Service struct {
	registry     []common.Ticker
	client       interfaces.MarketDataService
	scorer       interfaces.SentimentScorer
	aggregator   *advisor.Aggregator
	cache        interfaces.CacheService
	logger       arbor.ILogger
	lookbackDays int
	newsLimit    int
	workers      int
}

// Option configures the pipeline service.
type Option func(*Service)

// WithLookbackDays sets the price-history window.
func WithLookbackDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.lookbackDays = days
		}
	}
}

// WithNewsLimit caps news items fetched per ticker.
func WithNewsLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.newsLimit = limit
		}
	}
}

// WithWorkers bounds the fetch fan-out.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates the pipeline over a ticker registry.
func NewService(registry []common.Ticker, client interfaces.MarketDataService, scorer interfaces.SentimentScorer, aggregator *advisor.Aggregator, cacheSvc interfaces.CacheService, opts ...Option) *Service {
	s := &Service{
		registry:     registry,
		client:       client,
		scorer:       scorer,
		aggregator:   aggregator,
		cache:        cacheSvc,
		lookbackDays: 300,
		newsLimit:    marketdata.DefaultNewsLimit,
		workers:      DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the configured tickers in registry order.
func (s *Service) Registry() []common.Ticker {
	return s.registry
}

// News returns every fetched article across the registry, in registry
// order. Tickers whose fetch failed contribute nothing.
func (s *Service) News(ctx context.Context) ([]models.NewsItem, error) {
	batches, err := s.newsBatches(ctx)
	if err != nil {
		return nil, err
	}

	var items []models.NewsItem
	for _, b := range batches {
		items = append(items, b.Items...)
	}
	return items, nil
}

// Sentiment scores every fetched article and returns the per-ticker
// breakdown. Failed tickers are absent; tickers with zero articles
// appear with an empty item list and mean 0.0.
func (s *Service) Sentiment(ctx context.Context) ([]models.TickerSentiment, error) {
	if cached, ok := s.cache.Get(cache.KeySentiment); ok {
		if result, ok := cached.([]models.TickerSentiment); ok {
			return result, nil
		}
	}

	batches, err := s.newsBatches(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.TickerSentiment, 0, len(batches))
	for _, b := range batches {
		if b.Failed {
			continue
		}
		ts := models.TickerSentiment{
			Ticker: b.Ticker.Symbol(),
			Items:  make([]models.ScoredNews, 0, len(b.Items)),
		}
		sum := 0.0
		for _, item := range b.Items {
			score := s.scorer.Score(item.Text())
			sum += score
			ts.Items = append(ts.Items, models.ScoredNews{NewsItem: item, Score: score})
		}
		if len(ts.Items) > 0 {
			ts.Mean = sum / float64(len(ts.Items))
		}
		result = append(result, ts)
	}

	s.cache.Put(cache.KeySentiment, result)
	return result, nil
}

// Recommendations aggregates per-ticker sentiment into Buy/Hold/Sell
// labels, in registry order. Failed tickers are absent; zero-news
// tickers come back Hold with count 0.
func (s *Service) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	if cached, ok := s.cache.Get(cache.KeyRecommendations); ok {
		if result, ok := cached.([]models.Recommendation); ok {
			return result, nil
		}
	}

	sentiments, err := s.Sentiment(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.Recommendation, 0, len(sentiments))
	for _, ts := range sentiments {
		scores := make([]float64, len(ts.Items))
		for i, item := range ts.Items {
			scores[i] = item.Score
		}
		result = append(result, s.aggregator.Aggregate(ts.Ticker, scores))
	}

	s.cache.Put(cache.KeyRecommendations, result)
	return result, nil
}

// PriceChart returns the close-price series for one registry ticker.
func (s *Service) PriceChart(ctx context.Context, raw string) (*models.PriceChart, error) {
	ticker, ok := common.FindTicker(s.registry, raw)
	if !ok {
		return nil, ErrUnknownTicker
	}

	bars, err := s.client.FetchPriceHistory(ctx, ticker.Symbol(), s.lookbackDays)
	if err != nil {
		return nil, err
	}

	chart := &models.PriceChart{
		Ticker: ticker.Symbol(),
		Points: make([]models.PricePoint, len(bars)),
	}
	for i, b := range bars {
		chart.Points[i] = models.PricePoint{
			Date:  b.Date.Format("2006-01-02"),
			Close: b.Close,
		}
		chart.FetchedAt = b.Date
	}
	return chart, nil
}

// Technical fetches price history and computes the indicator snapshot.
func (s *Service) Technical(ctx context.Context, raw string) (*models.TechnicalSnapshot, error) {
	ticker, ok := common.FindTicker(s.registry, raw)
	if !ok {
		return nil, ErrUnknownTicker
	}

	bars, err := s.client.FetchPriceHistory(ctx, ticker.Symbol(), s.lookbackDays)
	if err != nil {
		return nil, err
	}

	return indicators.Compute(ticker.Symbol(), bars)
}

// Fundamental fetches the fundamental snapshot for one registry ticker.
func (s *Service) Fundamental(ctx context.Context, raw string) (*models.FundamentalSnapshot, error) {
	ticker, ok := common.FindTicker(s.registry, raw)
	if !ok {
		return nil, ErrUnknownTicker
	}

	return s.client.FetchFundamentals(ctx, ticker.Symbol())
}

// Analysis combines sentiment, technicals and fundamentals for one
// ticker. Technical and fundamental fetch failures degrade to nil
// snapshots; only a news fetch failure fails the call.
func (s *Service) Analysis(ctx context.Context, raw string) (*models.Analysis, error) {
	ticker, ok := common.FindTicker(s.registry, raw)
	if !ok {
		return nil, ErrUnknownTicker
	}
	symbol := ticker.Symbol()

	items, err := s.client.FetchNews(ctx, symbol, marketdata.WithLimit(s.newsLimit))
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(items))
	for i, item := range items {
		scores[i] = s.scorer.Score(item.Text())
	}

	var tech *models.TechnicalSnapshot
	if bars, err := s.client.FetchPriceHistory(ctx, symbol, s.lookbackDays); err == nil {
		if snap, err := indicators.Compute(symbol, bars); err == nil {
			tech = snap
		}
	} else if s.logger != nil {
		s.logger.Warn().Err(err).Str("ticker", symbol).Msg("Price history unavailable for analysis")
	}

	var fund *models.FundamentalSnapshot
	if snap, err := s.client.FetchFundamentals(ctx, symbol); err == nil {
		fund = snap
	} else if s.logger != nil {
		s.logger.Warn().Err(err).Str("ticker", symbol).Msg("Fundamentals unavailable for analysis")
	}

	analysis := s.aggregator.Analyze(symbol, scores, tech, fund)
	return &analysis, nil
}

// newsBatches fetches news for every registry ticker through the cache.
// Fetches fan out over a bounded worker pool; per-ticker upstream
// failures mark the batch entry Failed and never abort the run.
func (s *Service) newsBatches(ctx context.Context) ([]tickerNews, error) {
	if cached, ok := s.cache.Get(cache.KeyNews); ok {
		if batches, ok := cached.([]tickerNews); ok {
			return batches, nil
		}
	}

	batches := make([]tickerNews, len(s.registry))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		common.SafeGo(s.logger, "news-fetch", func() {
			defer wg.Done()
			for i := range jobs {
				ticker := s.registry[i]
				items, err := s.client.FetchNews(ctx, ticker.Symbol(), marketdata.WithLimit(s.newsLimit))
				if err != nil {
					if s.logger != nil {
						s.logger.Warn().
							Err(err).
							Str("ticker", ticker.Symbol()).
							Msg("News fetch failed, ticker excluded from batch")
					}
					batches[i] = tickerNews{Ticker: ticker, Failed: true}
					continue
				}
				batches[i] = tickerNews{Ticker: ticker, Items: items}
			}
		})
	}

	for i := range s.registry {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.cache.Put(cache.KeyNews, batches)
	return batches, nil
}
