package handlers

import (
	"net/http"
	"strconv"

	"github.com/mnakahara/trade-journal-backend/internal/api/response"
	"github.com/mnakahara/trade-journal-backend/internal/service"
)

// TreemapHandler handles treemap layout HTTP requests
type TreemapHandler struct {
	performanceService *service.PerformanceService
}

// NewTreemapHandler creates a new TreemapHandler
func NewTreemapHandler(performanceService *service.PerformanceService) *TreemapHandler {
	return &TreemapHandler{
		performanceService: performanceService,
	}
}

// Treemap handles GET /api/treemap?width=W&height=H, laying out the open
// portfolio in the given viewport. Root is null when nothing is open or the
// viewport is degenerate.
func (h *TreemapHandler) Treemap(w http.ResponseWriter, r *http.Request) {
	width, err := strconv.ParseFloat(r.URL.Query().Get("width"), 64)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "width must be a number", "")
		return
	}
	height, err := strconv.ParseFloat(r.URL.Query().Get("height"), 64)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "height must be a number", "")
		return
	}

	view, err := h.performanceService.GetTreemap(width, height)
	if err != nil {
		respondServiceError(w, err, "failed to compute treemap")
		return
	}
	respondJSON(w, http.StatusOK, view)
}
