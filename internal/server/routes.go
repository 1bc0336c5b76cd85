package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Batch pipeline endpoints
	mux.HandleFunc("/news", s.app.MarketHandler.NewsHandler)
	mux.HandleFunc("/sentiment", s.app.MarketHandler.SentimentHandler)
	mux.HandleFunc("/recommendations", s.app.MarketHandler.RecommendationsHandler)

	// Per-ticker endpoints
	mux.HandleFunc("/price_chart", s.app.MarketHandler.PriceChartHandler) // ?ticker=
	mux.HandleFunc("/technical/", s.app.MarketHandler.TechnicalHandler)   // /{ticker}
	mux.HandleFunc("/fundamental/", s.app.MarketHandler.FundamentalHandler)
	mux.HandleFunc("/analysis/", s.app.MarketHandler.AnalysisHandler)

	// Reporting
	mux.HandleFunc("/run-daily-report", s.app.ReportHandler.RunDailyReportHandler)
	mux.HandleFunc("/jobs", s.app.ReportHandler.JobsHandler)

	// System
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/version", s.app.APIHandler.VersionHandler)

	// Catch-all 404 with JSON body
	mux.HandleFunc("/", s.handleRoot)

	return mux
}

// handleRoot answers the bare root with a service descriptor and
// everything else with a JSON 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"service":"marketbrief","endpoints":["/news","/sentiment","/recommendations","/price_chart","/technical/{ticker}","/fundamental/{ticker}","/analysis/{ticker}","/run-daily-report","/health","/version"]}`))
}
