package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/marketbrief/internal/interfaces"
)

// ReportHandler triggers report runs over HTTP. External cron services
// hit /run-daily-report; the in-process scheduler uses the same report
// entry point.
type ReportHandler struct {
	report    interfaces.ReportService
	scheduler interfaces.SchedulerService
	logger    arbor.ILogger
}

// NewReportHandler creates a report handler.
func NewReportHandler(report interfaces.ReportService, scheduler interfaces.SchedulerService, logger arbor.ILogger) *ReportHandler {
	return &ReportHandler{
		report:    report,
		scheduler: scheduler,
		logger:    logger,
	}
}

// RunDailyReportHandler runs the report synchronously and reports the
// exported file path. Export or send failures surface as 500.
func (h *ReportHandler) RunDailyReportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	path, err := h.report.Run(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Report run failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"report": path,
	})
}

// JobsHandler lists registered scheduler jobs.
func (h *ReportHandler) JobsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs": h.scheduler.JobNames(),
	})
}
