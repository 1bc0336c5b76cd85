package models

import "time"

// PriceBar represents a single daily candlestick bar.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open,omitempty"`
	High   float64   `json:"high,omitempty"`
	Low    float64   `json:"low,omitempty"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume,omitempty"`
}

// PricePoint is a date/close pair for chart payloads.
type PricePoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// PriceChart is the close-price series served to chart consumers.
type PriceChart struct {
	Ticker    string       `json:"ticker"`
	Points    []PricePoint `json:"points"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// TechnicalSnapshot holds computed technical indicators for a ticker.
// Pointer fields are nil when the price history is too short for that
// indicator's window.
type TechnicalSnapshot struct {
	Ticker       string    `json:"ticker"`
	CurrentPrice float64   `json:"current_price"`
	RSI14        *float64  `json:"rsi_14,omitempty"`
	SMA20        *float64  `json:"sma_20,omitempty"`
	SMA50        *float64  `json:"sma_50,omitempty"`
	SMA200       *float64  `json:"sma_200,omitempty"`
	EMA12        *float64  `json:"ema_12,omitempty"`
	EMA26        *float64  `json:"ema_26,omitempty"`
	BarCount     int       `json:"bar_count"`
	ComputedAt   time.Time `json:"computed_at"`
}

// FundamentalSnapshot holds valuation and growth metrics for a ticker.
// Pointer fields are nil when the upstream provider omits the metric.
type FundamentalSnapshot struct {
	Ticker          string    `json:"ticker"`
	TrailingPE      *float64  `json:"trailing_pe,omitempty"`
	ForwardPE       *float64  `json:"forward_pe,omitempty"`
	MarketCap       *float64  `json:"market_cap,omitempty"`
	RevenueGrowth   *float64  `json:"revenue_growth,omitempty"`
	EarningsGrowth  *float64  `json:"earnings_growth,omitempty"`
	ProfitMargin    *float64  `json:"profit_margin,omitempty"`
	OperatingMargin *float64  `json:"operating_margin,omitempty"`
	DividendYield   *float64  `json:"dividend_yield,omitempty"`
	AnalystTarget   *float64  `json:"analyst_target,omitempty"`
	FetchedAt       time.Time `json:"fetched_at"`
}
