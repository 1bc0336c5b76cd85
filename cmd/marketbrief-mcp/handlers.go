package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/marketbrief/internal/interfaces"
)

// handleGetRecommendations implements the get_recommendations tool
func handleGetRecommendations(pipeline interfaces.PipelineService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		recs, err := pipeline.Recommendations(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Recommendations failed")
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(fmt.Sprintf("Recommendation error: %v", err)),
				},
			}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(formatRecommendations(recs)),
			},
		}, nil
	}
}

// handleGetNews implements the get_news tool
func handleGetNews(pipeline interfaces.PipelineService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		items, err := pipeline.News(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("News fetch failed")
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(fmt.Sprintf("News error: %v", err)),
				},
			}, nil
		}

		ticker := request.GetString("ticker", "")

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(formatNews(items, ticker)),
			},
		}, nil
	}
}

// handleGetTechnical implements the get_technical_indicators tool
func handleGetTechnical(pipeline interfaces.PipelineService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent("Error: ticker parameter is required"),
				},
			}, nil
		}

		snapshot, err := pipeline.Technical(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("Technical computation failed")
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(fmt.Sprintf("Technical error: %v", err)),
				},
			}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(formatTechnical(snapshot)),
			},
		}, nil
	}
}

// handleGetFundamental implements the get_fundamental_snapshot tool
func handleGetFundamental(pipeline interfaces.PipelineService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent("Error: ticker parameter is required"),
				},
			}, nil
		}

		snapshot, err := pipeline.Fundamental(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("Fundamentals fetch failed")
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(fmt.Sprintf("Fundamentals error: %v", err)),
				},
			}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(formatFundamental(snapshot)),
			},
		}, nil
	}
}

// handleGetAnalysis implements the get_analysis tool
func handleGetAnalysis(pipeline interfaces.PipelineService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent("Error: ticker parameter is required"),
				},
			}, nil
		}

		analysis, err := pipeline.Analysis(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("Analysis failed")
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(fmt.Sprintf("Analysis error: %v", err)),
				},
			}, nil
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(formatAnalysis(analysis)),
			},
		}, nil
	}
}
