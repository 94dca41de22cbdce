package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mnakahara/trade-journal-backend/internal/api/response"
	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/service"
)

// MarketdataHandler handles market-data HTTP requests
type MarketdataHandler struct {
	marketdataService *service.MarketdataService
	recordService     *service.RecordService
}

// NewMarketdataHandler creates a new MarketdataHandler
func NewMarketdataHandler(marketdataService *service.MarketdataService, recordService *service.RecordService) *MarketdataHandler {
	return &MarketdataHandler{
		marketdataService: marketdataService,
		recordService:     recordService,
	}
}

// parseDateParam parses a query date in "2006-01-02" or RFC3339 form.
func parseDateParam(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// Chart handles GET /api/marketdata/chart.
//
// Query parameters:
//   - code: security code, required
//   - market: market identifier, defaults to tokyo
//   - start_date, end_date: "2006-01-02", both required
func (h *MarketdataHandler) Chart(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		response.RespondError(w, http.StatusBadRequest, "code is required", "")
		return
	}

	market := model.Market(r.URL.Query().Get("market"))
	if market == "" {
		market = model.MarketTokyo
	}
	if !market.Valid() {
		response.RespondError(w, http.StatusBadRequest, "invalid market", string(market))
		return
	}

	startDate, err := parseDateParam(r.URL.Query().Get("start_date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to parse start_date", err.Error())
		return
	}
	endDate, err := parseDateParam(r.URL.Query().Get("end_date"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to parse end_date", err.Error())
		return
	}

	series, err := h.marketdataService.GetChartSeries(code, market, startDate, endDate)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve chart series")
		return
	}
	respondJSON(w, http.StatusOK, series)
}

// Securities handles GET /api/marketdata/securities, the cached listing.
func (h *MarketdataHandler) Securities(w http.ResponseWriter, r *http.Request) {
	securities, err := h.marketdataService.GetSecurities()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve securities")
		return
	}
	respondJSON(w, http.StatusOK, securities)
}

// Security handles GET /api/marketdata/securities/{code}, resolving one code
// against the cached listing.
func (h *MarketdataHandler) Security(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	security, err := h.marketdataService.LookupSecurity(code)
	if err != nil {
		respondServiceError(w, err, "failed to look up security")
		return
	}
	respondJSON(w, http.StatusOK, security)
}

// PrefetchResponse reports how many distinct codes a prefetch covered.
type PrefetchResponse struct {
	Codes int `json:"codes"`
}

// Prefetch handles POST /api/marketdata/prefetch, warming the price cache
// for every code in the journal.
//
// Query parameters:
//   - start_date, end_date: "2006-01-02", default to the trailing year
func (h *MarketdataHandler) Prefetch(w http.ResponseWriter, r *http.Request) {
	endDate := time.Now().UTC()
	startDate := endDate.AddDate(-1, 0, 0)

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "failed to parse start_date", err.Error())
			return
		}
		startDate = parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := parseDateParam(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "failed to parse end_date", err.Error())
			return
		}
		endDate = parsed
	}

	records, err := h.recordService.GetAllRecords()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve records")
		return
	}

	codes, err := h.marketdataService.PrefetchCharts(r.Context(), records, startDate, endDate)
	if err != nil {
		respondServiceError(w, err, "failed to prefetch charts")
		return
	}
	respondJSON(w, http.StatusOK, PrefetchResponse{Codes: codes})
}

// RefreshSecurities handles POST /api/marketdata/securities/refresh, forcing
// a re-download of the listed-securities reference.
func (h *MarketdataHandler) RefreshSecurities(w http.ResponseWriter, r *http.Request) {
	if err := h.marketdataService.RefreshSecurities(); err != nil {
		respondServiceError(w, err, "failed to refresh securities")
		return
	}

	config, err := h.marketdataService.GetConfig()
	if err != nil {
		respondServiceError(w, err, "failed to read market data config")
		return
	}
	respondJSON(w, http.StatusOK, config)
}

// Config handles GET /api/marketdata/config.
func (h *MarketdataHandler) Config(w http.ResponseWriter, r *http.Request) {
	config, err := h.marketdataService.GetConfig()
	if err != nil {
		respondServiceError(w, err, "failed to read market data config")
		return
	}
	respondJSON(w, http.StatusOK, config)
}

// TokenRequest carries the long-lived market-data refresh token.
type TokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SetToken handles PUT /api/marketdata/token, storing the refresh token
// encrypted at rest. The token is never returned by any endpoint.
func (h *MarketdataHandler) SetToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		response.RespondError(w, http.StatusBadRequest, "refreshToken is required", "")
		return
	}

	if err := h.marketdataService.SetRefreshToken(req.RefreshToken); err != nil {
		respondServiceError(w, err, "failed to store refresh token")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
