package marketdata

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ternarybob/marketbrief/internal/models"
)

// Provider payloads are loosely specified and drift between versions;
// the types here accept every field-name variant seen in the wild and
// normalize into the internal models.

// newsPayload accepts either a bare article array or a wrapped object.
type newsPayload struct {
	articles []newsArticle
}

func (p *newsPayload) UnmarshalJSON(data []byte) error {
	var direct []newsArticle
	if err := json.Unmarshal(data, &direct); err == nil {
		p.articles = direct
		return nil
	}

	var wrapped struct {
		News     []newsArticle `json:"news"`
		Data     []newsArticle `json:"data"`
		Articles []newsArticle `json:"articles"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	switch {
	case len(wrapped.News) > 0:
		p.articles = wrapped.News
	case len(wrapped.Data) > 0:
		p.articles = wrapped.Data
	default:
		p.articles = wrapped.Articles
	}
	return nil
}

type newsArticle struct {
	Title       string `json:"title"`
	Headline    string `json:"headline"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Source      string `json:"source"`
	Publisher   string `json:"publisher"`
	URL         string `json:"url"`
	Link        string `json:"link"`
	Date        string `json:"date"`
	PubDate     string `json:"pub_date"`
	PublishedAt string `json:"published_at"`
}

func (p *newsPayload) items(symbol string) []models.NewsItem {
	items := make([]models.NewsItem, 0, len(p.articles))
	for _, a := range p.articles {
		title := firstNonEmpty(a.Title, a.Headline)
		if title == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Ticker:      symbol,
			Title:       stripHTML(title),
			Summary:     stripHTML(firstNonEmpty(a.Summary, a.Description, a.Content)),
			Source:      firstNonEmpty(a.Source, a.Publisher),
			URL:         firstNonEmpty(a.URL, a.Link),
			PublishedAt: parseArticleTime(firstNonEmpty(a.Date, a.PubDate, a.PublishedAt)),
		})
	}
	return items
}

// historicalPayload carries dated close prices as dataset rows of
// [date, value] pairs; values arrive as strings or numbers.
type historicalPayload struct {
	Datasets []dataset `json:"datasets"`
}

type dataset struct {
	Metric string              `json:"metric"`
	Label  string              `json:"label"`
	Values [][]json.RawMessage `json:"values"`
}

func (p *historicalPayload) bars() []models.PriceBar {
	ds := p.priceDataset()
	if ds == nil {
		return nil
	}

	bars := make([]models.PriceBar, 0, len(ds.Values))
	for _, row := range ds.Values {
		if len(row) < 2 {
			continue
		}
		var dateStr string
		if err := json.Unmarshal(row[0], &dateStr); err != nil {
			continue
		}
		date := parseBarDate(dateStr)
		if date.IsZero() {
			continue
		}
		close, ok := rawToFloat(row[1])
		if !ok {
			continue
		}
		bars = append(bars, models.PriceBar{Date: date, Close: close})
	}
	return bars
}

func (p *historicalPayload) priceDataset() *dataset {
	for i := range p.Datasets {
		name := firstNonEmpty(p.Datasets[i].Metric, p.Datasets[i].Label)
		if strings.EqualFold(name, "price") {
			return &p.Datasets[i]
		}
	}
	if len(p.Datasets) > 0 {
		return &p.Datasets[0]
	}
	return nil
}

// fundamentalsPayload is an arbitrarily nested metrics object; lookup
// walks it depth-first for the first matching key variant.
type fundamentalsPayload map[string]interface{}

func (p fundamentalsPayload) snapshot(symbol string) *models.FundamentalSnapshot {
	return &models.FundamentalSnapshot{
		Ticker:          symbol,
		TrailingPE:      p.findFloat("trailingPE", "peRatio", "pe_ratio", "pe"),
		ForwardPE:       p.findFloat("forwardPE", "forward_pe"),
		MarketCap:       p.findFloat("marketCap", "market_cap", "mktCap"),
		RevenueGrowth:   p.findFloat("revenueGrowth", "revenue_growth"),
		EarningsGrowth:  p.findFloat("earningsGrowth", "earnings_growth"),
		ProfitMargin:    p.findFloat("profitMargins", "profitMargin", "profit_margin"),
		OperatingMargin: p.findFloat("operatingMargins", "operatingMargin", "operating_margin"),
		DividendYield:   p.findFloat("dividendYield", "dividend_yield"),
		AnalystTarget:   p.findFloat("targetMeanPrice", "analystTarget", "analyst_target", "priceTarget"),
	}
}

func (p fundamentalsPayload) findFloat(keys ...string) *float64 {
	for _, key := range keys {
		if v, ok := findKey(map[string]interface{}(p), key); ok {
			if f, ok := toFloat(v); ok {
				return &f
			}
		}
	}
	return nil
}

func findKey(m map[string]interface{}, key string) (interface{}, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	for _, v := range m {
		if nested, ok := v.(map[string]interface{}); ok {
			if found, ok := findKey(nested, key); ok {
				return found, true
			}
		}
	}
	return nil, false
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(t, "%")), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func rawToFloat(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return toFloat(s)
	}
	return 0, false
}

var articleTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 Jan 2006",
	"Jan 2, 2006",
}

func parseArticleTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range articleTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseBarDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// stripHTML flattens embedded markup to plain text. Provider summaries
// regularly arrive as HTML fragments.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
