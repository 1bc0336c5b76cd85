package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/marketbrief/internal/indicators"
	"github.com/ternarybob/marketbrief/internal/marketdata"
	"github.com/ternarybob/marketbrief/internal/services/pipeline"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// WriteServiceError maps pipeline errors onto HTTP statuses: an unknown
// ticker is the caller's fault, an empty price history is unprocessable
// and a provider failure is a bad gateway. Only per-ticker endpoints use
// this mapping; batch endpoints absorb upstream failures instead.
func WriteServiceError(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, pipeline.ErrUnknownTicker):
		return WriteError(w, http.StatusBadRequest, "unknown ticker")
	case errors.Is(err, indicators.ErrInsufficientData):
		return WriteError(w, http.StatusUnprocessableEntity, "insufficient price data")
	case marketdata.IsUpstream(err):
		return WriteError(w, http.StatusBadGateway, "market data provider unavailable")
	default:
		return WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// PathSuffix extracts the trailing path segment after prefix, e.g.
// "/technical/TCS.NS" with prefix "/technical/" yields "TCS.NS".
func PathSuffix(r *http.Request, prefix string) string {
	return strings.TrimPrefix(r.URL.Path, prefix)
}
