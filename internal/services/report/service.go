// Package report generates the recommendation snapshot artifacts (CSV
// plus a one-page PDF summary) and emails them to the configured
// recipient.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/marketbrief/internal/common"
	"github.com/ternarybob/marketbrief/internal/interfaces"
	"github.com/ternarybob/marketbrief/internal/models"
)

// csvHeader defines the report columns. Readers of the exported file
// depend on this order.
var csvHeader = []string{"ticker", "recommendation", "avg_polarity", "news_count", "computed_at"}

// Service generates and delivers recommendation reports.
type Service struct {
	pipeline interfaces.PipelineService
	mailer   interfaces.MailService
	config   common.ReportConfig
	logger   arbor.ILogger
	now      func() time.Time
}

// Option configures the report service.
type Option func(*Service)

// WithClock sets the timestamp source for report filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a report service.
func NewService(pipeline interfaces.PipelineService, mailer interfaces.MailService, config common.ReportConfig, logger arbor.ILogger, opts ...Option) *Service {
	s := &Service{
		pipeline: pipeline,
		mailer:   mailer,
		config:   config,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Export writes the recommendation set to a timestamped CSV under the
// output directory and returns its path. The file is write-once; nothing
// in the pipeline ever reads it back.
func (s *Service) Export(recs []models.Recommendation) (string, error) {
	if err := os.MkdirAll(s.config.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	filename := fmt.Sprintf("recommendations_%s.csv", s.now().UTC().Format("20060102_150405"))
	path := filepath.Join(s.config.OutputDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range recs {
		row := []string{
			rec.Ticker,
			rec.Label,
			fmt.Sprintf("%.4f", rec.Sentiment),
			fmt.Sprintf("%d", rec.NewsCount),
			rec.ComputedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}

	s.logger.Info().
		Str("path", path).
		Int("rows", len(recs)).
		Msg("Report exported")
	return path, nil
}

// ExportPDF writes a one-page PDF summary next to the CSV and returns
// its path.
func (s *Service) ExportPDF(recs []models.Recommendation) (string, error) {
	if err := os.MkdirAll(s.config.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	now := s.now().UTC()
	path := filepath.Join(s.config.OutputDir, fmt.Sprintf("summary_%s.pdf", now.Format("20060102_150405")))

	buys, holds, sells := 0, 0, 0
	for _, rec := range recs {
		switch rec.Label {
		case models.LabelBuy:
			buys++
		case models.LabelSell:
			sells++
		default:
			holds++
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Daily Investment Recommendations")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s UTC", now.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("%d tickers: %d Buy, %d Hold, %d Sell", len(recs), buys, holds, sells))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(35, 7, "Ticker", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Label", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Polarity", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "News", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, rec := range recs {
		pdf.CellFormat(35, 6, rec.Ticker, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, rec.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.4f", rec.Sentiment), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", rec.NewsCount), "1", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf summary: %w", err)
	}
	return path, nil
}

// Send emails an exported report to the recipient. A mail transport
// failure is returned as-is; the invoker decides what to do with it.
func (s *Service) Send(paths []string, recipient string) error {
	if recipient == "" {
		return fmt.Errorf("no report recipient configured")
	}

	subject := s.config.Subject
	if subject == "" {
		subject = "Daily Investment Recommendations"
	}
	body := fmt.Sprintf("Recommendation snapshot generated %s UTC. See attached files.", s.now().UTC().Format("2006-01-02 15:04"))

	return s.mailer.Send([]string{recipient}, subject, body, paths)
}

// Run executes the full report flow: recompute recommendations through
// the pipeline, export CSV and PDF, email them. Returns the CSV path.
// Export failures abort the run; a send failure is reported after the
// files are already on disk.
func (s *Service) Run(ctx context.Context) (string, error) {
	runID := uuid.New().String()[:8]
	s.logger.Info().Str("run_id", runID).Msg("Report run started")

	recs, err := s.pipeline.Recommendations(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to compute recommendations: %w", err)
	}

	csvPath, err := s.Export(recs)
	if err != nil {
		return "", err
	}

	attachments := []string{csvPath}
	if pdfPath, err := s.ExportPDF(recs); err != nil {
		s.logger.Warn().Err(err).Str("run_id", runID).Msg("PDF summary skipped")
	} else {
		attachments = append(attachments, pdfPath)
	}

	if err := s.Send(attachments, s.config.Recipient); err != nil {
		s.logger.Error().Err(err).Str("run_id", runID).Msg("Report email failed")
		return csvPath, fmt.Errorf("report exported to %s but email failed: %w", csvPath, err)
	}

	s.logger.Info().
		Str("run_id", runID).
		Str("path", csvPath).
		Str("recipient", s.config.Recipient).
		Msg("Report run complete")
	return csvPath, nil
}

var _ interfaces.ReportService = (*Service)(nil)
