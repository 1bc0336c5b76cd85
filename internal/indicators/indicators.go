// Package indicators computes technical indicators over daily close
// bars. Calculations are pure; the only input is the bar slice, oldest
// first.
package indicators

import (
	"errors"
	"time"

	"github.com/ternarybob/marketbrief/internal/models"
)

// ErrInsufficientData is returned when no price history exists at all.
// Short-but-nonempty histories degrade per indicator instead.
var ErrInsufficientData = errors.New("insufficient price data")

// Indicator windows.
const (
	RSIPeriod = 14
	SMAShort  = 20
	SMAMedium = 50
	SMALong   = 200
	EMAFast   = 12
	EMASlow   = 26
)

// Compute derives the technical snapshot for a bar series. Each
// indicator needing more bars than available is reported nil; the
// remaining fields are still computed. Zero bars is the only hard error.
func Compute(ticker string, bars []models.PriceBar) (*models.TechnicalSnapshot, error) {
	if len(bars) == 0 {
		return nil, ErrInsufficientData
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	return &models.TechnicalSnapshot{
		Ticker:       ticker,
		CurrentPrice: closes[len(closes)-1],
		RSI14:        RSI(closes, RSIPeriod),
		SMA20:        SMA(closes, SMAShort),
		SMA50:        SMA(closes, SMAMedium),
		SMA200:       SMA(closes, SMALong),
		EMA12:        EMA(closes, EMAFast),
		EMA26:        EMA(closes, EMASlow),
		BarCount:     len(bars),
		ComputedAt:   time.Now().UTC(),
	}, nil
}

// SMA returns the simple moving average of the last period closes,
// or nil when fewer than period closes exist.
func SMA(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period {
		return nil
	}
	sum := 0.0
	for _, c := range closes[len(closes)-period:] {
		sum += c
	}
	avg := sum / float64(period)
	return &avg
}

// EMA returns the exponential moving average over the full series,
// seeded with the SMA of the first period closes and smoothed with
// multiplier 2/(period+1). Nil when fewer than period closes exist.
func EMA(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period {
		return nil
	}

	seed := 0.0
	for _, c := range closes[:period] {
		seed += c
	}
	ema := seed / float64(period)

	mult := 2.0 / float64(period+1)
	for _, c := range closes[period:] {
		ema = (c-ema)*mult + ema
	}
	return &ema
}

// RSI returns the relative strength index using Wilder's smoothing:
// the first average gain/loss is a simple mean over period changes,
// subsequent bars smooth with weight (period-1)/period. Nil when fewer
// than period+1 closes exist. An all-gain series reads 100, an
// all-loss series reads 0.
func RSI(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}

	avgGain := 0.0
	avgLoss := 0.0
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	var rsi float64
	switch {
	case avgLoss == 0 && avgGain == 0:
		rsi = 50.0
	case avgLoss == 0:
		rsi = 100.0
	case avgGain == 0:
		rsi = 0.0
	default:
		rs := avgGain / avgLoss
		rsi = 100.0 - 100.0/(1.0+rs)
	}
	return &rsi
}
