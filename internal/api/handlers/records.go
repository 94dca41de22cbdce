package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mnakahara/trade-journal-backend/internal/api/request"
	"github.com/mnakahara/trade-journal-backend/internal/api/response"
	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/service"
	"github.com/mnakahara/trade-journal-backend/internal/validation"
)

// RecordHandler handles stock-record HTTP requests
type RecordHandler struct {
	recordService *service.RecordService
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(recordService *service.RecordService) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
	}
}

// LegResponse represents one trade leg in a record response.
type LegResponse struct {
	ID      string  `json:"id"`
	Amount  float64 `json:"amount"`
	Shares  int     `json:"shares"`
	Date    string  `json:"date"`
	Emotion string  `json:"emotion"`
	Reason  string  `json:"reason,omitempty"`
}

// TagResponse represents one tag attached to a record.
type TagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// RecordResponse represents a stock record together with its derived state.
// HoldingPeriodDays is -1 while the position is still open.
type RecordResponse struct {
	ID                 string        `json:"id"`
	Code               string        `json:"code"`
	Market             string        `json:"market"`
	Name               string        `json:"name"`
	Position           string        `json:"position"`
	Purchase           LegResponse   `json:"purchase"`
	Sales              []LegResponse `json:"sales"`
	Tags               []TagResponse `json:"tags"`
	CreatedAt          string        `json:"createdAt"`
	TotalSoldShares    int           `json:"totalSoldShares"`
	RemainingShares    int           `json:"remainingShares"`
	IsFullyClosed      bool          `json:"isFullyClosed"`
	HoldingPeriodDays  int           `json:"holdingPeriodDays"`
	RealizedPnL        float64       `json:"realizedPnl"`
	RealizedPnLPercent *float64      `json:"realizedPnlPercent"`
}

func legResponse(leg model.TradeLeg) LegResponse {
	return LegResponse{
		ID:      leg.ID,
		Amount:  leg.Amount,
		Shares:  leg.Shares,
		Date:    leg.Date.Format("2006-01-02"),
		Emotion: leg.Emotion,
		Reason:  leg.Reason,
	}
}

func recordResponse(r model.StockRecord) RecordResponse {
	sales := make([]LegResponse, len(r.Sales))
	for i, s := range r.Sales {
		sales[i] = legResponse(s)
	}
	tags := make([]TagResponse, len(r.Tags))
	for i, t := range r.Tags {
		tags[i] = TagResponse{ID: t.ID, Name: t.Name, Color: t.Color}
	}

	return RecordResponse{
		ID:                 r.ID,
		Code:               r.Code,
		Market:             string(r.Market),
		Name:               r.Name,
		Position:           string(r.Position),
		Purchase:           legResponse(r.Purchase),
		Sales:              sales,
		Tags:               tags,
		CreatedAt:          r.CreatedAt.Format("2006-01-02"),
		TotalSoldShares:    r.TotalSoldShares(),
		RemainingShares:    r.RemainingShares(),
		IsFullyClosed:      r.IsFullyClosed(),
		HoldingPeriodDays:  r.HoldingPeriodDays(),
		RealizedPnL:        r.RealizedProfitAndLoss(),
		RealizedPnLPercent: r.RealizedProfitAndLossPercent(),
	}
}

// Records handles GET /api/records, returning the full journal.
func (h *RecordHandler) Records(w http.ResponseWriter, r *http.Request) {
	records, err := h.recordService.GetAllRecords()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve records")
		return
	}

	resp := make([]RecordResponse, len(records))
	for i := range records {
		resp[i] = recordResponse(records[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// Record handles GET /api/records/{uuid}.
func (h *RecordHandler) Record(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "uuid")

	record, err := h.recordService.GetRecord(recordID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve record")
		return
	}
	respondJSON(w, http.StatusOK, recordResponse(record))
}

// CreateRecord handles POST /api/records, creating a record from its initial
// purchase entry.
func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateRecord(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	record, err := h.recordService.CreateRecord(req)
	if err != nil {
		respondServiceError(w, err, "failed to create record")
		return
	}
	respondJSON(w, http.StatusCreated, recordResponse(record))
}

// UpdateRecord handles PUT /api/records/{uuid}.
func (h *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "uuid")

	var req request.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateRecord(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	record, err := h.recordService.UpdateRecord(recordID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update record")
		return
	}
	respondJSON(w, http.StatusOK, recordResponse(record))
}

// DeleteRecord handles DELETE /api/records/{uuid}.
func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "uuid")

	if err := h.recordService.DeleteRecord(recordID); err != nil {
		respondServiceError(w, err, "failed to delete record")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// AddSale handles POST /api/records/{uuid}/sales.
func (h *RecordHandler) AddSale(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "uuid")

	var req request.LegRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSale(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	record, err := h.recordService.AddSale(recordID, req)
	if err != nil {
		respondServiceError(w, err, "failed to add sale")
		return
	}
	respondJSON(w, http.StatusCreated, recordResponse(record))
}

// UpdateSale handles PUT /api/records/{uuid}/sales/{legId}.
func (h *RecordHandler) UpdateSale(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "uuid")
	legID := chi.URLParam(r, "legId")

	if err := validation.ValidateUUID(legID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid sale ID", err.Error())
		return
	}

	var req request.LegRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSale(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	record, err := h.recordService.UpdateSale(recordID, legID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update sale")
		return
	}
	respondJSON(w, http.StatusOK, recordResponse(record))
}

// DeleteSale handles DELETE /api/records/{uuid}/sales/{legId}.
func (h *RecordHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "uuid")
	legID := chi.URLParam(r, "legId")

	if err := validation.ValidateUUID(legID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid sale ID", err.Error())
		return
	}

	record, err := h.recordService.DeleteSale(recordID, legID)
	if err != nil {
		respondServiceError(w, err, "failed to delete sale")
		return
	}
	respondJSON(w, http.StatusOK, recordResponse(record))
}

// SetTags handles PUT /api/records/{uuid}/tags, replacing the record's tags.
func (h *RecordHandler) SetTags(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "uuid")

	var req request.SetTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.TagIDs) > 0 {
		if err := validation.ValidateUUIDs(req.TagIDs); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid tag IDs", err.Error())
			return
		}
	}

	record, err := h.recordService.SetTags(recordID, req.TagIDs)
	if err != nil {
		respondServiceError(w, err, "failed to set tags")
		return
	}
	respondJSON(w, http.StatusOK, recordResponse(record))
}
