package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/marketbrief/internal/models"
)

func makeBars(closes []float64) []models.PriceBar {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func rampBars(n int, start, step float64) []models.PriceBar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return makeBars(closes)
}

func TestCompute_ZeroBars(t *testing.T) {
	_, err := Compute("AAPL", nil)
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = Compute("AAPL", []models.PriceBar{})
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestCompute_PartialWindows(t *testing.T) {
	// 60 bars: enough for RSI, SMA20, SMA50, EMA12, EMA26 but not SMA200
	snap, err := Compute("AAPL", rampBars(60, 100, 1))
	require.NoError(t, err)

	assert.Equal(t, "AAPL", snap.Ticker)
	assert.Equal(t, 159.0, snap.CurrentPrice)
	assert.Equal(t, 60, snap.BarCount)
	assert.NotNil(t, snap.RSI14)
	assert.NotNil(t, snap.SMA20)
	assert.NotNil(t, snap.SMA50)
	assert.Nil(t, snap.SMA200)
	assert.NotNil(t, snap.EMA12)
	assert.NotNil(t, snap.EMA26)
}

func TestCompute_SingleBar(t *testing.T) {
	snap, err := Compute("AAPL", makeBars([]float64{42.0}))
	require.NoError(t, err)

	assert.Equal(t, 42.0, snap.CurrentPrice)
	assert.Nil(t, snap.RSI14)
	assert.Nil(t, snap.SMA20)
	assert.Nil(t, snap.EMA12)
}

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	sma := SMA(closes, 5)
	require.NotNil(t, sma)
	assert.Equal(t, 3.0, *sma)

	sma = SMA(closes, 3)
	require.NotNil(t, sma)
	assert.Equal(t, 4.0, *sma)

	assert.Nil(t, SMA(closes, 6))
	assert.Nil(t, SMA(nil, 1))
}

func TestEMA_ConstantSeries(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 50.0
	}

	ema := EMA(closes, 12)
	require.NotNil(t, ema)
	assert.InDelta(t, 50.0, *ema, 1e-9)
}

func TestEMA_TracksRecentPrices(t *testing.T) {
	closes := make([]float64, 0, 40)
	for i := 0; i < 40; i++ {
		closes = append(closes, 100.0+float64(i))
	}

	ema12 := EMA(closes, 12)
	ema26 := EMA(closes, 26)
	require.NotNil(t, ema12)
	require.NotNil(t, ema26)

	// Faster EMA sits closer to the latest price on a rising series
	assert.Greater(t, *ema12, *ema26)
	assert.Less(t, *ema12, closes[len(closes)-1])
}

func TestRSI_Monotonic(t *testing.T) {
	up := make([]float64, 30)
	down := make([]float64, 30)
	for i := range up {
		up[i] = 100.0 + float64(i)
		down[i] = 100.0 - float64(i)
	}

	rsiUp := RSI(up, 14)
	require.NotNil(t, rsiUp)
	assert.Equal(t, 100.0, *rsiUp)

	rsiDown := RSI(down, 14)
	require.NotNil(t, rsiDown)
	assert.Equal(t, 0.0, *rsiDown)
}

func TestRSI_FlatSeries(t *testing.T) {
	flat := make([]float64, 30)
	for i := range flat {
		flat[i] = 100.0
	}

	rsi := RSI(flat, 14)
	require.NotNil(t, rsi)
	assert.Equal(t, 50.0, *rsi)
}

func TestRSI_Range(t *testing.T) {
	closes := []float64{
		44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
		45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00,
		46.03, 46.41, 46.22, 45.64,
	}

	rsi := RSI(closes, 14)
	require.NotNil(t, rsi)
	assert.Greater(t, *rsi, 0.0)
	assert.Less(t, *rsi, 100.0)
	// Mostly-rising series lands above the midline
	assert.Greater(t, *rsi, 50.0)
}

func TestRSI_InsufficientBars(t *testing.T) {
	closes := make([]float64, 14)
	assert.Nil(t, RSI(closes, 14)) // needs period+1
	assert.Nil(t, RSI(nil, 14))
}
