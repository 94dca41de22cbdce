package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mnakahara/trade-journal-backend/internal/api/response"
	"github.com/mnakahara/trade-journal-backend/internal/service"
)

// PerformanceHandler handles performance-analytics HTTP requests
type PerformanceHandler struct {
	performanceService *service.PerformanceService
}

// NewPerformanceHandler creates a new PerformanceHandler
func NewPerformanceHandler(performanceService *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
	}
}

// yearParam reads the year query parameter, defaulting to the current year.
func yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().UTC().Year(), nil
	}
	return strconv.Atoi(raw)
}

// SummaryResponse represents the aggregate performance metrics for one year.
// ProfitFactor is reported as a string when infinite, a number otherwise.
type SummaryResponse struct {
	Year                   int         `json:"year"`
	TotalRealizedPnL       float64     `json:"totalRealizedPnl"`
	WinRate                *float64    `json:"winRate"`
	AveragePnLAmount       *float64    `json:"averagePnlAmount"`
	AveragePnLPercent      *float64    `json:"averagePnlPercent"`
	AverageHoldingPeriod   float64     `json:"averageHoldingPeriod"`
	ProfitFactor           interface{} `json:"profitFactor"`
	MaximumDrawdown        float64     `json:"maximumDrawdown"`
	AverageRiskRewardRatio float64     `json:"averageRiskRewardRatio"`
	TradeCount             int         `json:"tradeCount"`
}

// Summary handles GET /api/performance/summary?year=YYYY.
func (h *PerformanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
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

	var profitFactor interface{} = summary.ProfitFactor
	if math.IsInf(summary.ProfitFactor, 1) {
		profitFactor = "Infinity"
	}

	respondJSON(w, http.StatusOK, SummaryResponse{
		Year:                   summary.Year,
		TotalRealizedPnL:       summary.TotalRealizedPnL,
		WinRate:                summary.WinRate,
		AveragePnLAmount:       summary.AveragePnLAmount,
		AveragePnLPercent:      summary.AveragePnLPercent,
		AverageHoldingPeriod:   summary.AverageHoldingPeriod,
		ProfitFactor:           profitFactor,
		MaximumDrawdown:        summary.MaximumDrawdown,
		AverageRiskRewardRatio: summary.AverageRiskRewardRatio,
		TradeCount:             summary.TradeCount,
	})
}

// MonthlyProfitResponse represents one month of realized P&L.
type MonthlyProfitResponse struct {
	Month int     `json:"month"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// Monthly handles GET /api/performance/monthly?year=YYYY.
func (h *PerformanceHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid year", err.Error())
		return
	}

	series, err := h.performanceService.GetMonthlySeries(year)
	if err != nil {
		respondServiceError(w, err, "failed to compute monthly series")
		return
	}

	resp := make([]MonthlyProfitResponse, len(series))
	for i, m := range series {
		resp[i] = MonthlyProfitResponse{Month: m.Month, Label: m.Label, Total: m.Total}
	}
	respondJSON(w, http.StatusOK, resp)
}

// defaultRankingSize is how many records a ranking returns when the request
// does not say.
const defaultRankingSize = 5

// Ranking handles GET /api/performance/ranking.
//
// Query parameters:
//   - by: "amount" (default) or "percent"
//   - order: "best" (default) or "worst"
//   - limit: positive integer, default 5
func (h *PerformanceHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	byPercent := false
	switch r.URL.Query().Get("by") {
	case "", "amount":
	case "percent":
		byPercent = true
	default:
		response.RespondError(w, http.StatusBadRequest, "by must be amount or percent", "")
		return
	}

	worst := false
	switch r.URL.Query().Get("order") {
	case "", "best":
	case "worst":
		worst = true
	default:
		response.RespondError(w, http.StatusBadRequest, "order must be best or worst", "")
		return
	}

	limit := defaultRankingSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "limit must be a positive integer", "")
			return
		}
		limit = parsed
	}

	records, err := h.performanceService.GetRanking(byPercent, worst, limit)
	if err != nil {
		respondServiceError(w, err, "failed to compute ranking")
		return
	}

	resp := make([]RecordResponse, len(records))
	for i := range records {
		resp[i] = recordResponse(records[i])
	}
	respondJSON(w, http.StatusOK, resp)
}
