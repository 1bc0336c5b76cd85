// Package marketdata provides the client for the upstream stock data
// provider. All news, price-history and fundamentals fetches go through
// this package.
package marketdata

import (
	"errors"
	"fmt"
	"time"
)

// QueryOption represents an optional parameter for API queries.
type QueryOption func(*queryParams)

// queryParams holds optional query parameters.
type queryParams struct {
	Period string // 1m, 3m, 6m, 1yr
	Limit  int
}

// WithPeriod sets the history period (1m, 3m, 6m, 1yr).
func WithPeriod(period string) QueryOption {
	return func(p *queryParams) {
		p.Period = period
	}
}

// WithLimit sets the maximum number of results.
func WithLimit(limit int) QueryOption {
	return func(p *queryParams) {
		p.Limit = limit
	}
}

// UpstreamError represents a failed call to the market-data provider:
// non-2xx status, transport failure or an undecodable payload. Batch
// callers treat it as "no data for this ticker", not a batch failure.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("market data error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
	}
	return fmt.Sprintf("market data error: %s (endpoint: %s)", e.Message, e.Endpoint)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err is an upstream provider failure.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// RateLimitError represents a rate limit error.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("market data rate limit exceeded, retry after %v", e.RetryAfter)
}
