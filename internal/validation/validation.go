package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
)

// ErrEmptySlice indicates that a slice that must carry at least one element
// was empty.
var ErrEmptySlice = fmt.Errorf("slice cannot be empty")

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// ValidateUUIDs validates a slice of UUIDs
func ValidateUUIDs(ids []string) error {
	if len(ids) == 0 {
		return ErrEmptySlice
	}
	for _, id := range ids {
		if err := ValidateUUID(id); err != nil {
			return err
		}
	}
	return nil
}
