package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"

	"github.com/ternarybob/marketbrief/internal/advisor"
	"github.com/ternarybob/marketbrief/internal/common"
	"github.com/ternarybob/marketbrief/internal/marketdata"
	"github.com/ternarybob/marketbrief/internal/sentiment"
	"github.com/ternarybob/marketbrief/internal/services/cache"
	"github.com/ternarybob/marketbrief/internal/services/pipeline"
)

func main() {
	configPath := os.Getenv("MARKETBRIEF_CONFIG")
	if configPath == "" {
		configPath = "marketbrief.toml"
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal console logger, kept quiet to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	common.SetDefaultExchange(config.Markets.Default)
	registry := common.ParseTickers(config.Markets.Tickers)
	if len(registry) == 0 {
		logger.Fatal().Msg("No tickers configured")
	}

	timeout, err := config.GatewayTimeout()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid gateway timeout")
	}
	client := marketdata.NewClient(config.MarketData.APIKey,
		marketdata.WithBaseURL(config.MarketData.BaseURL),
		marketdata.WithAuthHeader(config.MarketData.AuthHeader),
		marketdata.WithHTTPClient(&http.Client{Timeout: timeout}),
		marketdata.WithRateLimit(config.MarketData.RateLimit),
		marketdata.WithLogger(logger),
	)

	ttl, err := config.CacheTTL()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid cache TTL")
	}

	pipelineSvc := pipeline.NewService(
		registry,
		client,
		sentiment.NewScorer(),
		advisor.NewAggregator(advisor.WithEnhancer(advisor.RuleEnhancer{})),
		cache.NewService(cache.WithTTL(ttl)),
		pipeline.WithLookbackDays(config.MarketData.LookbackDays),
		pipeline.WithNewsLimit(config.MarketData.NewsLimit),
		pipeline.WithLogger(logger),
	)

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"marketbrief",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createGetRecommendationsTool(), handleGetRecommendations(pipelineSvc, logger))
	mcpServer.AddTool(createGetNewsTool(), handleGetNews(pipelineSvc, logger))
	mcpServer.AddTool(createGetTechnicalTool(), handleGetTechnical(pipelineSvc, logger))
	mcpServer.AddTool(createGetFundamentalTool(), handleGetFundamental(pipelineSvc, logger))
	mcpServer.AddTool(createGetAnalysisTool(), handleGetAnalysis(pipelineSvc, logger))

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
