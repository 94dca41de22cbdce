package handlers

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mnakahara/trade-journal-backend/internal/api/response"
	"github.com/mnakahara/trade-journal-backend/internal/report"
	"github.com/mnakahara/trade-journal-backend/internal/service"
)

// ReportHandler handles report-export HTTP requests
type ReportHandler struct {
	performanceService *service.PerformanceService
	recordService      *service.RecordService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(performanceService *service.PerformanceService, recordService *service.RecordService) *ReportHandler {
	return &ReportHandler{
		performanceService: performanceService,
		recordService:      recordService,
	}
}

// PerformanceReport handles GET /api/reports/performance?year=YYYY, streaming
// the yearly report workbook as an xlsx download.
func (h *ReportHandler) PerformanceReport(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	summary, err := h.performanceService.GetSummary(year)
	if err != nil {
		respondServiceError(w, err, "failed to compute performance summary")
		return
	}
	monthly, err := h.performanceService.GetMonthlySeries(year)
	if err != nil {
		respondServiceError(w, err, "failed to compute monthly series")
		return
	}
	records, err := h.recordService.GetAllRecords()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve records")
		return
	}
	records = service.RecordsTouchingYear(records, year)

	workbook, err := report.BuildWorkbook(summary, monthly, records)
	if err != nil {
		respondServiceError(w, err, "failed to build report")
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="performance-%d.xlsx"`, year))
	w.WriteHeader(http.StatusOK)
	if err := workbook.Write(w); err != nil {
		// Headers are already on the wire; all that is left is to log it.
		log.Error().Err(err).Int("year", year).Msg("failed to stream report workbook")
	}
}
