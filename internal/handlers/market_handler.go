package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/marketbrief/internal/interfaces"
)

// MarketHandler serves the pipeline outputs: news, sentiment,
// recommendations and the per-ticker lookups.
type MarketHandler struct {
	pipeline interfaces.PipelineService
	logger   arbor.ILogger
}

// NewMarketHandler creates a market handler.
func NewMarketHandler(pipeline interfaces.PipelineService, logger arbor.ILogger) *MarketHandler {
	return &MarketHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// NewsHandler returns all fetched articles across the registry.
// Tickers whose upstream fetch failed are simply absent; the endpoint
// never turns a partial batch into a 5xx.
func (h *MarketHandler) NewsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	items, err := h.pipeline.News(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("News batch failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(items),
		"news":  items,
	})
}

// SentimentHandler returns the per-ticker scored articles.
func (h *MarketHandler) SentimentHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	sentiments, err := h.pipeline.Sentiment(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Sentiment batch failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(sentiments),
		"sentiment": sentiments,
	})
}

// RecommendationsHandler returns the Buy/Hold/Sell set in registry order.
func (h *MarketHandler) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	recs, err := h.pipeline.Recommendations(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Recommendation batch failed")
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":           len(recs),
		"recommendations": recs,
	})
}

// PriceChartHandler returns the close-price series for ?ticker=.
func (h *MarketHandler) PriceChartHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker query parameter is required")
		return
	}

	chart, err := h.pipeline.PriceChart(r.Context(), ticker)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if len(chart.Points) == 0 {
		WriteError(w, http.StatusNotFound, "no price data for ticker")
		return
	}

	WriteJSON(w, http.StatusOK, chart)
}

// TechnicalHandler serves GET /technical/{ticker}.
func (h *MarketHandler) TechnicalHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker := PathSuffix(r, "/technical/")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker path segment is required")
		return
	}

	snapshot, err := h.pipeline.Technical(r.Context(), ticker)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// FundamentalHandler serves GET /fundamental/{ticker}.
func (h *MarketHandler) FundamentalHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker := PathSuffix(r, "/fundamental/")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker path segment is required")
		return
	}

	snapshot, err := h.pipeline.Fundamental(r.Context(), ticker)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// AnalysisHandler serves GET /analysis/{ticker}: the combined
// sentiment, technical and fundamental view.
func (h *MarketHandler) AnalysisHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ticker := PathSuffix(r, "/analysis/")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker path segment is required")
		return
	}

	analysis, err := h.pipeline.Analysis(r.Context(), ticker)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, analysis)
}
