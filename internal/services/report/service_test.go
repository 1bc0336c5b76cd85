package report

import (
	"context"
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/marketbrief/internal/common"
	"github.com/ternarybob/marketbrief/internal/models"
)

type stubPipeline struct {
	recs []models.Recommendation
	err  error
}

func (p *stubPipeline) Registry() []common.Ticker { return nil }
func (p *stubPipeline) News(ctx context.Context) ([]models.NewsItem, error) {
	return nil, nil
}
func (p *stubPipeline) Sentiment(ctx context.Context) ([]models.TickerSentiment, error) {
	return nil, nil
}
func (p *stubPipeline) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	return p.recs, p.err
}
func (p *stubPipeline) PriceChart(ctx context.Context, ticker string) (*models.PriceChart, error) {
	return nil, nil
}
func (p *stubPipeline) Technical(ctx context.Context, ticker string) (*models.TechnicalSnapshot, error) {
	return nil, nil
}
func (p *stubPipeline) Fundamental(ctx context.Context, ticker string) (*models.FundamentalSnapshot, error) {
	return nil, nil
}
func (p *stubPipeline) Analysis(ctx context.Context, ticker string) (*models.Analysis, error) {
	return nil, nil
}

type stubMailer struct {
	sent        bool
	to          []string
	attachments []string
	err         error
}

func (m *stubMailer) Send(to []string, subject, body string, attachments []string) error {
	m.sent = true
	m.to = to
	m.attachments = attachments
	return m.err
}

func (m *stubMailer) IsConfigured() bool { return true }

func sampleRecs() []models.Recommendation {
	at := time.Date(2026, 8, 25, 7, 0, 0, 0, time.UTC)
	return []models.Recommendation{
		{Ticker: "AAPL", Label: models.LabelBuy, Sentiment: 0.4231, NewsCount: 5, ComputedAt: at},
		{Ticker: "TCS.NS", Label: models.LabelHold, Sentiment: 0.0, NewsCount: 0, ComputedAt: at},
		{Ticker: "XOM", Label: models.LabelSell, Sentiment: -0.25, NewsCount: 3, ComputedAt: at},
	}
}

func newTestService(t *testing.T, pipeline *stubPipeline, mailer *stubMailer) *Service {
	t.Helper()
	cfg := common.ReportConfig{
		OutputDir: t.TempDir(),
		Recipient: "reader@example.com",
		Subject:   "Daily Investment Recommendations",
	}
	return NewService(pipeline, mailer, cfg, common.GetLogger(), WithClock(func() time.Time {
		return time.Date(2026, 8, 25, 7, 0, 0, 0, time.UTC)
	}))
}

func TestExport_CSVContent(t *testing.T) {
	svc := newTestService(t, &stubPipeline{}, &stubMailer{})

	path, err := svc.Export(sampleRecs())
	require.NoError(t, err)
	assert.Contains(t, path, "recommendations_20260825_070000.csv")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"ticker", "recommendation", "avg_polarity", "news_count", "computed_at"}, rows[0])
	assert.Equal(t, []string{"AAPL", "Buy", "0.4231", "5", "2026-08-25T07:00:00Z"}, rows[1])
	assert.Equal(t, []string{"TCS.NS", "Hold", "0.0000", "0", "2026-08-25T07:00:00Z"}, rows[2])
	assert.Equal(t, []string{"XOM", "Sell", "-0.2500", "3", "2026-08-25T07:00:00Z"}, rows[3])
}

func TestExport_EmptySet(t *testing.T) {
	svc := newTestService(t, &stubPipeline{}, &stubMailer{})

	path, err := svc.Export(nil)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestExportPDF(t *testing.T) {
	svc := newTestService(t, &stubPipeline{}, &stubMailer{})

	path, err := svc.ExportPDF(sampleRecs())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRun_ExportsAndSends(t *testing.T) {
	mailer := &stubMailer{}
	svc := newTestService(t, &stubPipeline{recs: sampleRecs()}, mailer)

	path, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, path)

	assert.True(t, mailer.sent)
	assert.Equal(t, []string{"reader@example.com"}, mailer.to)
	// CSV plus PDF summary
	assert.Len(t, mailer.attachments, 2)
}

func TestRun_SendFailureSurfaces(t *testing.T) {
	mailer := &stubMailer{err: assert.AnError}
	svc := newTestService(t, &stubPipeline{recs: sampleRecs()}, mailer)

	path, err := svc.Run(context.Background())
	require.Error(t, err)
	// Export already happened, path still reported
	assert.FileExists(t, path)
	assert.Contains(t, err.Error(), "email failed")
}

func TestRun_PipelineFailure(t *testing.T) {
	svc := newTestService(t, &stubPipeline{err: assert.AnError}, &stubMailer{})

	_, err := svc.Run(context.Background())
	require.Error(t, err)
}
