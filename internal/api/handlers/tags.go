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

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	tagService *service.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

func tagResponses(tags []model.Tag) []TagResponse {
	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = TagResponse{ID: t.ID, Name: t.Name, Color: t.Color}
	}
	return resp
}

// Tags handles GET /api/tags.
func (h *TagHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.GetAllTags()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve tags")
		return
	}
	respondJSON(w, http.StatusOK, tagResponses(tags))
}

// Palette handles GET /api/tags/palette, the name-deduplicated tag list used
// by the tag picker.
func (h *TagHandler) Palette(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.GetPalette()
	if err != nil {
		respondServiceError(w, err, "failed to retrieve tag palette")
		return
	}
	respondJSON(w, http.StatusOK, tagResponses(tags))
}

// Tag handles GET /api/tags/{uuid}.
func (h *TagHandler) Tag(w http.ResponseWriter, r *http.Request) {
	tagID := chi.URLParam(r, "uuid")

	tag, err := h.tagService.GetTag(tagID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve tag")
		return
	}
	respondJSON(w, http.StatusOK, TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color})
}

// CreateTag handles POST /api/tags.
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTag(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	tag, err := h.tagService.CreateTag(req)
	if err != nil {
		respondServiceError(w, err, "failed to create tag")
		return
	}
	respondJSON(w, http.StatusCreated, TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color})
}

// UpdateTag handles PUT /api/tags/{uuid}.
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	tagID := chi.URLParam(r, "uuid")

	var req request.UpdateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTag(req); err != nil {
		respondServiceError(w, err, "validation failed")
		return
	}

	tag, err := h.tagService.UpdateTag(tagID, req)
	if err != nil {
		respondServiceError(w, err, "failed to update tag")
		return
	}
	respondJSON(w, http.StatusOK, TagResponse{ID: tag.ID, Name: tag.Name, Color: tag.Color})
}

// DeleteTag handles DELETE /api/tags/{uuid}.
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	tagID := chi.URLParam(r, "uuid")

	if err := h.tagService.DeleteTag(tagID); err != nil {
		respondServiceError(w, err, "failed to delete tag")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
