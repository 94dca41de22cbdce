package handlers

import (
	"net/http"

	"github.com/mnakahara/trade-journal-backend/internal/model"
)

// EmotionHandler serves the emotion vocabularies the entry form offers.
type EmotionHandler struct{}

// NewEmotionHandler creates a new EmotionHandler
func NewEmotionHandler() *EmotionHandler {
	return &EmotionHandler{}
}

// EmotionResponse represents one selectable emotion.
type EmotionResponse struct {
	Value string `json:"value"`
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

// EmotionsResponse carries both vocabularies in display order.
type EmotionsResponse struct {
	Purchase []EmotionResponse `json:"purchase"`
	Sale     []EmotionResponse `json:"sale"`
}

// Emotions handles GET /api/emotions, the reference data for leg entry.
func (h *EmotionHandler) Emotions(w http.ResponseWriter, r *http.Request) {
	resp := EmotionsResponse{
		Purchase: make([]EmotionResponse, 0, len(model.PurchaseEmotions())),
		Sale:     make([]EmotionResponse, 0, len(model.SaleEmotions())),
	}

	for _, e := range model.PurchaseEmotions() {
		resp.Purchase = append(resp.Purchase, EmotionResponse{
			Value: string(e),
			Emoji: e.Emoji(),
			Label: e.Label(),
		})
	}
	for _, e := range model.SaleEmotions() {
		resp.Sale = append(resp.Sale, EmotionResponse{
			Value: string(e),
			Emoji: e.Emoji(),
			Label: e.Label(),
		})
	}

	respondJSON(w, http.StatusOK, resp)
}
