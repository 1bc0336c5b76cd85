package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetRecommendationsTool returns the get_recommendations tool definition
func createGetRecommendationsTool() mcp.Tool {
	return mcp.NewTool("get_recommendations",
		mcp.WithDescription("Get Buy/Hold/Sell recommendations for all tracked tickers, derived from news sentiment"),
	)
}

// createGetNewsTool returns the get_news tool definition
func createGetNewsTool() mcp.Tool {
	return mcp.NewTool("get_news",
		mcp.WithDescription("List recent news headlines for all tracked tickers"),
		mcp.WithString("ticker",
			mcp.Description("Filter by ticker symbol (e.g. AAPL, TCS.NS, NSE:INFY)"),
		),
	)
}

// createGetTechnicalTool returns the get_technical_indicators tool definition
func createGetTechnicalTool() mcp.Tool {
	return mcp.NewTool("get_technical_indicators",
		mcp.WithDescription("Compute RSI, SMA and EMA indicators from recent daily closes for one ticker"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol (e.g. AAPL, TCS.NS, NSE:INFY)"),
		),
	)
}

// createGetFundamentalTool returns the get_fundamental_snapshot tool definition
func createGetFundamentalTool() mcp.Tool {
	return mcp.NewTool("get_fundamental_snapshot",
		mcp.WithDescription("Fetch valuation and growth metrics (P/E, margins, dividend yield) for one ticker"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol (e.g. AAPL, TCS.NS, NSE:INFY)"),
		),
	)
}

// createGetAnalysisTool returns the get_analysis tool definition
func createGetAnalysisTool() mcp.Tool {
	return mcp.NewTool("get_analysis",
		mcp.WithDescription("Full analysis for one ticker: sentiment recommendation refined with technical and fundamental signals"),
		mcp.WithString("ticker",
			mcp.Required(),
			mcp.Description("Ticker symbol (e.g. AAPL, TCS.NS, NSE:INFY)"),
		),
	)
}
