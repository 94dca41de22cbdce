package validation

import (
	"strings"

	"github.com/mnakahara/trade-journal-backend/internal/api/request"
)

// ValidateCreateTag validates a tag creation request.
func ValidateCreateTag(req request.CreateTagRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if strings.TrimSpace(req.Color) == "" {
		errors["color"] = "color is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateTag validates a tag update request.
func ValidateUpdateTag(req request.UpdateTagRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Color != nil && strings.TrimSpace(*req.Color) == "" {
		errors["color"] = "color cannot be empty"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
