// Package app wires configuration, services and handlers into a
// runnable application.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/marketbrief/internal/advisor"
	"github.com/ternarybob/marketbrief/internal/common"
	"github.com/ternarybob/marketbrief/internal/handlers"
	"github.com/ternarybob/marketbrief/internal/interfaces"
	"github.com/ternarybob/marketbrief/internal/marketdata"
	"github.com/ternarybob/marketbrief/internal/sentiment"
	"github.com/ternarybob/marketbrief/internal/services/cache"
	"github.com/ternarybob/marketbrief/internal/services/mailer"
	"github.com/ternarybob/marketbrief/internal/services/pipeline"
	"github.com/ternarybob/marketbrief/internal/services/report"
	"github.com/ternarybob/marketbrief/internal/services/scheduler"
)

// DailyReportJob is the scheduler job name for the emailed report.
const DailyReportJob = "daily-report"

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Services
	Registry  []common.Ticker
	Client    interfaces.MarketDataService
	Cache     interfaces.CacheService
	Pipeline  interfaces.PipelineService
	Mailer    interfaces.MailService
	Report    interfaces.ReportService
	Scheduler interfaces.SchedulerService

	// HTTP handlers
	APIHandler    *handlers.APIHandler
	MarketHandler *handlers.MarketHandler
	ReportHandler *handlers.ReportHandler
}

// New initializes the application with all dependencies. Services are
// built bottom-up: gateway client, scorer, aggregator and cache first,
// then the pipeline, then the report and scheduler layer on top of it.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	common.SetDefaultExchange(config.Markets.Default)
	registry := common.ParseTickers(config.Markets.Tickers)
	if len(registry) == 0 {
		return nil, fmt.Errorf("no tickers configured")
	}

	timeout, err := config.GatewayTimeout()
	if err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
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
		return nil, fmt.Errorf("invalid cache TTL: %w", err)
	}
	cacheSvc := cache.NewService(cache.WithTTL(ttl), cache.WithLogger(logger))

	scorer := sentiment.NewScorer()
	aggregator := advisor.NewAggregator(advisor.WithEnhancer(advisor.RuleEnhancer{}))

	pipelineSvc := pipeline.NewService(registry, client, scorer, aggregator, cacheSvc,
		pipeline.WithLookbackDays(config.MarketData.LookbackDays),
		pipeline.WithNewsLimit(config.MarketData.NewsLimit),
		pipeline.WithLogger(logger),
	)

	mailSvc := mailer.NewService(config.SMTP, logger)
	reportSvc := report.NewService(pipelineSvc, mailSvc, config.Report, logger)
	schedulerSvc := scheduler.NewService(logger)

	app := &App{
		Config:    config,
		Logger:    logger,
		Registry:  registry,
		Client:    client,
		Cache:     cacheSvc,
		Pipeline:  pipelineSvc,
		Mailer:    mailSvc,
		Report:    reportSvc,
		Scheduler: schedulerSvc,

		APIHandler:    handlers.NewAPIHandler(),
		MarketHandler: handlers.NewMarketHandler(pipelineSvc, logger),
		ReportHandler: handlers.NewReportHandler(reportSvc, schedulerSvc, logger),
	}

	if err := app.registerJobs(); err != nil {
		return nil, fmt.Errorf("failed to register scheduled jobs: %w", err)
	}

	logger.Info().
		Int("tickers", len(registry)).
		Str("provider", config.MarketData.BaseURL).
		Str("cache_ttl", ttl.String()).
		Msg("Application initialization complete")

	return app, nil
}

// registerJobs wires recurring jobs into the scheduler. The daily
// report schedule is skipped when mail delivery cannot work; the
// /run-daily-report endpoint still runs the export on demand.
func (a *App) registerJobs() error {
	if !a.Mailer.IsConfigured() {
		a.Logger.Warn().Msg("SMTP not configured, daily report schedule disabled")
		return nil
	}
	if a.Config.Report.Recipient == "" {
		a.Logger.Warn().Msg("No report recipient configured, daily report schedule disabled")
		return nil
	}

	return a.Scheduler.RegisterJob(DailyReportJob, a.Config.Report.Schedule, func() {
		if _, err := a.Report.Run(context.Background()); err != nil {
			a.Logger.Error().Err(err).Msg("Scheduled report run failed")
		}
	})
}

// Start launches background components (currently the scheduler).
func (a *App) Start() error {
	return a.Scheduler.Start()
}

// Close stops background components
func (a *App) Close() error {
	a.Scheduler.Stop()
	a.Logger.Info().Msg("Application stopped")
	return nil
}
