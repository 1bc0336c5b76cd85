package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/marketbrief/internal/models"
)

const (
	// DefaultBaseURL is the base URL for the stock data API.
	DefaultBaseURL = "https://stock.indianapi.in"

	// DefaultAuthHeader carries the API key on every request.
	DefaultAuthHeader = "X-API-Key"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 15 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 10

	// DefaultNewsLimit is the default maximum news items per ticker.
	DefaultNewsLimit = 10
)

// Client is a stock data API client.
type Client struct {
	baseURL    string
	apiKey     string
	authHeader string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAuthHeader sets the header name carrying the API key.
func WithAuthHeader(name string) ClientOption {
	return func(c *Client) {
		if name != "" {
			c.authHeader = name
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new stock data API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		authHeader: DefaultAuthHeader,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a GET request to the API. All failures, transport or
// HTTP-level, come back as *UpstreamError so callers have a single
// error shape to branch on.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RateLimitError{RetryAfter: time.Second}
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set(c.authHeader, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL+path).
			Msg("Market data API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Endpoint: path, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &UpstreamError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &UpstreamError{Endpoint: path, Message: "failed to decode response", Err: err}
	}

	return nil
}

// FetchNews retrieves recent news for a ticker. A provider failure
// surfaces as *UpstreamError; an empty article list is a normal result.
func (c *Client) FetchNews(ctx context.Context, symbol string, opts ...QueryOption) ([]models.NewsItem, error) {
	params := &queryParams{Limit: DefaultNewsLimit}
	for _, opt := range opts {
		opt(params)
	}

	query := url.Values{}
	query.Set("stock_name", symbol)

	var payload newsPayload
	if err := c.get(ctx, "/news", query, &payload); err != nil {
		return nil, err
	}

	items := payload.items(symbol)
	if params.Limit > 0 && len(items) > params.Limit {
		items = items[:params.Limit]
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("symbol", symbol).
			Int("count", len(items)).
			Msg("Fetched news")
	}

	return items, nil
}

// FetchPriceHistory retrieves daily close bars covering at least
// lookbackDays, oldest first. Zero bars is a valid (empty) result.
func (c *Client) FetchPriceHistory(ctx context.Context, symbol string, lookbackDays int, opts ...QueryOption) ([]models.PriceBar, error) {
	params := &queryParams{Period: periodForDays(lookbackDays)}
	for _, opt := range opts {
		opt(params)
	}

	query := url.Values{}
	query.Set("stock_name", symbol)
	query.Set("period", params.Period)
	query.Set("filter", "default")

	var payload historicalPayload
	if err := c.get(ctx, "/historical_data", query, &payload); err != nil {
		return nil, err
	}

	bars := payload.bars()
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	if c.logger != nil {
		c.logger.Debug().
			Str("symbol", symbol).
			Int("bars", len(bars)).
			Msg("Fetched price history")
	}

	return bars, nil
}

// FetchFundamentals retrieves the fundamental snapshot for a ticker.
// Single attempt, no caching; metrics the provider omits stay nil.
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (*models.FundamentalSnapshot, error) {
	query := url.Values{}
	query.Set("name", symbol)

	var payload fundamentalsPayload
	if err := c.get(ctx, "/stock", query, &payload); err != nil {
		return nil, err
	}

	snapshot := payload.snapshot(symbol)
	snapshot.FetchedAt = time.Now().UTC()
	return snapshot, nil
}

// periodForDays maps a lookback window to the provider's period values.
func periodForDays(days int) string {
	switch {
	case days <= 0:
		return "1yr"
	case days <= 31:
		return "1m"
	case days <= 93:
		return "3m"
	case days <= 186:
		return "6m"
	default:
		return "1yr"
	}
}
