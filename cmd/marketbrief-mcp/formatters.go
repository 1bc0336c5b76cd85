package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/marketbrief/internal/models"
)

// formatRecommendations formats the recommendation set as markdown
func formatRecommendations(recs []models.Recommendation) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Recommendations (%d tickers)\n\n", len(recs)))

	if len(recs) == 0 {
		sb.WriteString("No recommendations available.\n")
		return sb.String()
	}

	sb.WriteString("| Ticker | Recommendation | Sentiment | News |\n")
	sb.WriteString("|--------|----------------|-----------|------|\n")
	for _, rec := range recs {
		sb.WriteString(fmt.Sprintf("| %s | %s | %.4f | %d |\n",
			rec.Ticker, rec.Label, rec.Sentiment, rec.NewsCount))
	}

	return sb.String()
}

// formatNews formats news items as markdown, optionally filtered by ticker
func formatNews(items []models.NewsItem, ticker string) string {
	filtered := items
	if ticker != "" {
		filtered = nil
		for _, item := range items {
			if strings.EqualFold(item.Ticker, ticker) {
				filtered = append(filtered, item)
			}
		}
	}

	var sb strings.Builder
	if ticker != "" {
		sb.WriteString(fmt.Sprintf("## News for %s (%d items)\n\n", strings.ToUpper(ticker), len(filtered)))
	} else {
		sb.WriteString(fmt.Sprintf("## News (%d items)\n\n", len(filtered)))
	}

	if len(filtered) == 0 {
		sb.WriteString("No news found.\n")
		return sb.String()
	}

	for i, item := range filtered {
		sb.WriteString(fmt.Sprintf("%d. **%s** (%s)\n", i+1, item.Title, item.Ticker))
		if item.Source != "" {
			sb.WriteString(fmt.Sprintf("   Source: %s\n", item.Source))
		}
		if item.URL != "" {
			sb.WriteString(fmt.Sprintf("   URL: %s\n", item.URL))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatTechnical formats a technical snapshot as markdown
func formatTechnical(snapshot *models.TechnicalSnapshot) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Technical Indicators: %s\n\n", snapshot.Ticker))
	sb.WriteString(fmt.Sprintf("**Current Price:** %.2f\n", snapshot.CurrentPrice))
	sb.WriteString(fmt.Sprintf("**Bars:** %d\n\n", snapshot.BarCount))

	writeIndicator(&sb, "RSI(14)", snapshot.RSI14)
	writeIndicator(&sb, "SMA(20)", snapshot.SMA20)
	writeIndicator(&sb, "SMA(50)", snapshot.SMA50)
	writeIndicator(&sb, "SMA(200)", snapshot.SMA200)
	writeIndicator(&sb, "EMA(12)", snapshot.EMA12)
	writeIndicator(&sb, "EMA(26)", snapshot.EMA26)

	return sb.String()
}

func writeIndicator(sb *strings.Builder, name string, value *float64) {
	if value == nil {
		sb.WriteString(fmt.Sprintf("- %s: n/a (insufficient history)\n", name))
		return
	}
	sb.WriteString(fmt.Sprintf("- %s: %.2f\n", name, *value))
}

// formatFundamental formats a fundamental snapshot as markdown
func formatFundamental(snapshot *models.FundamentalSnapshot) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Fundamentals: %s\n\n", snapshot.Ticker))

	writeIndicator(&sb, "Trailing P/E", snapshot.TrailingPE)
	writeIndicator(&sb, "Forward P/E", snapshot.ForwardPE)
	writeIndicator(&sb, "Market Cap", snapshot.MarketCap)
	writeIndicator(&sb, "Revenue Growth", snapshot.RevenueGrowth)
	writeIndicator(&sb, "Earnings Growth", snapshot.EarningsGrowth)
	writeIndicator(&sb, "Profit Margin", snapshot.ProfitMargin)
	writeIndicator(&sb, "Operating Margin", snapshot.OperatingMargin)
	writeIndicator(&sb, "Dividend Yield", snapshot.DividendYield)
	writeIndicator(&sb, "Analyst Target", snapshot.AnalystTarget)

	return sb.String()
}

// formatAnalysis formats a full analysis as markdown
func formatAnalysis(analysis *models.Analysis) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Analysis: %s\n\n", analysis.Ticker))

	rec := analysis.Recommendation
	sb.WriteString(fmt.Sprintf("**Recommendation:** %s\n", rec.Label))
	sb.WriteString(fmt.Sprintf("**Sentiment:** %.4f across %d news items\n", rec.Sentiment, rec.NewsCount))
	if rec.Confidence > 0 {
		sb.WriteString(fmt.Sprintf("**Confidence:** %.2f\n", rec.Confidence))
	}
	sb.WriteString("\n")

	if analysis.Technical != nil {
		sb.WriteString(formatTechnical(analysis.Technical))
		sb.WriteString("\n")
	}

	if fund := analysis.Fundamental; fund != nil {
		sb.WriteString("## Fundamentals\n\n")
		writeIndicator(&sb, "Trailing P/E", fund.TrailingPE)
		writeIndicator(&sb, "Forward P/E", fund.ForwardPE)
		writeIndicator(&sb, "Dividend Yield", fund.DividendYield)
		writeIndicator(&sb, "Analyst Target", fund.AnalystTarget)
		sb.WriteString("\n")
	}

	if len(analysis.Notes) > 0 {
		sb.WriteString("## Notes\n\n")
		for _, note := range analysis.Notes {
			sb.WriteString(fmt.Sprintf("- %s\n", note))
		}
	}

	return sb.String()
}
