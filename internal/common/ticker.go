// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// Ticker represents a parsed exchange-qualified ticker.
// Format: EXCHANGE:CODE (e.g., "NSE:TCS", "NASDAQ:AAPL")
type Ticker struct {
	// Exchange is the exchange code (e.g., "NSE", "BSE", "NYSE", "NASDAQ")
	Exchange string
	// Code is the stock/security code (e.g., "TCS", "AAPL")
	Code string
	// Raw is the original ticker string
	Raw string
}

// ExchangeToSuffix maps exchange codes to the market-data provider suffixes.
// US listings carry no suffix; Indian listings use Yahoo-style .NS/.BO.
var ExchangeToSuffix = map[string]string{
	"NSE":    ".NS",
	"BSE":    ".BO",
	"NYSE":   "",
	"NASDAQ": "",
}

// SuffixToExchange maps provider suffixes back to exchange codes.
var SuffixToExchange = map[string]string{
	"NS": "NSE",
	"BO": "BSE",
}

// DefaultExchange is the exchange assumed when a ticker has no exchange
// prefix and no provider suffix. Overridable via [markets] default in TOML.
var DefaultExchange = "NASDAQ"

// SetDefaultExchange sets the default exchange for parsing tickers.
// Called during app initialization from config.
func SetDefaultExchange(exchange string) {
	if exchange != "" {
		DefaultExchange = strings.ToUpper(exchange)
	}
}

// ParseTicker parses an exchange-qualified ticker string.
// Supported forms:
//   - "NSE:TCS"  -> Exchange="NSE", Code="TCS" (colon separator)
//   - "TCS.NS"   -> Exchange="NSE", Code="TCS" (provider suffix)
//   - "AAPL"     -> Exchange=DefaultExchange, Code="AAPL"
//   - "aapl"     -> normalized to uppercase
func ParseTicker(ticker string) Ticker {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return Ticker{}
	}

	// Exchange prefix with colon separator (EXCHANGE:CODE)
	if idx := strings.Index(ticker, ":"); idx > 0 {
		exchange := strings.ToUpper(ticker[:idx])
		code := strings.ToUpper(ticker[idx+1:])
		return Ticker{
			Exchange: exchange,
			Code:     code,
			Raw:      ticker,
		}
	}

	// Provider suffix form (CODE.NS, CODE.BO). Use LastIndex because codes
	// can contain dots (e.g., "BRK.B").
	if idx := strings.LastIndex(ticker, "."); idx > 0 && idx < len(ticker)-1 {
		possibleSuffix := strings.ToUpper(ticker[idx+1:])
		if exchange, ok := SuffixToExchange[possibleSuffix]; ok {
			return Ticker{
				Exchange: exchange,
				Code:     strings.ToUpper(ticker[:idx]),
				Raw:      ticker,
			}
		}
	}

	// No exchange prefix - use default exchange
	return Ticker{
		Exchange: DefaultExchange,
		Code:     strings.ToUpper(ticker),
		Raw:      ticker,
	}
}

// String returns the full exchange-qualified ticker string.
func (t Ticker) String() string {
	if t.Exchange == "" || t.Code == "" {
		return t.Code
	}
	return t.Exchange + ":" + t.Code
}

// Symbol returns the market-data provider symbol.
// Example: "NSE:TCS" -> "TCS.NS", "NASDAQ:AAPL" -> "AAPL"
func (t Ticker) Symbol() string {
	if t.Code == "" {
		return ""
	}
	suffix, ok := ExchangeToSuffix[t.Exchange]
	if !ok {
		// Unknown exchanges pass the bare code through
		return t.Code
	}
	return t.Code + suffix
}

// Market returns the market tag for the ticker: "IN" for NSE/BSE
// listings, "US" otherwise.
func (t Ticker) Market() string {
	switch t.Exchange {
	case "NSE", "BSE":
		return "IN"
	}
	return "US"
}

// ParseTickers parses a list of ticker strings, dropping empties and
// duplicates while preserving order. The registry is static per run; all
// per-symbol lookups key off the parsed Ticker.
func ParseTickers(tickers []string) []Ticker {
	seen := make(map[string]bool, len(tickers))
	result := make([]Ticker, 0, len(tickers))
	for _, t := range tickers {
		parsed := ParseTicker(t)
		if parsed.Code == "" {
			continue
		}
		key := parsed.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, parsed)
	}
	return result
}

// FindTicker resolves a request parameter against the registry. Accepts
// any form ParseTicker accepts; a bare code matches the first registry
// entry with that code regardless of exchange.
func FindTicker(registry []Ticker, raw string) (Ticker, bool) {
	want := ParseTicker(raw)
	if want.Code == "" {
		return Ticker{}, false
	}
	explicit := strings.Contains(raw, ":")
	if !explicit {
		if idx := strings.LastIndex(raw, "."); idx > 0 {
			_, explicit = SuffixToExchange[strings.ToUpper(raw[idx+1:])]
		}
	}
	for _, t := range registry {
		if t.Code != want.Code {
			continue
		}
		if !explicit || t.Exchange == want.Exchange {
			return t, true
		}
	}
	return Ticker{}, false
}
