package validation

import (
	"strings"
	"time"

	"github.com/mnakahara/trade-journal-backend/internal/api/request"
	"github.com/mnakahara/trade-journal-backend/internal/model"
)

// validateLeg checks the shared leg fields; the emotion vocabulary check is
// the caller's because it depends on the leg kind.
func validateLeg(leg request.LegRequest, errors map[string]string) {
	if strings.TrimSpace(leg.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", leg.Date); err != nil {
		errors["date"] = err.Error()
	}

	if leg.Shares <= 0 {
		errors["shares"] = "shares must be positive"
	}

	if leg.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}
}

// ValidateCreateRecord validates a record creation request.
//
// Required fields:
//   - code, name: non-empty
//   - market: one of the known markets
//   - position: buy or sell
//   - purchase: a valid leg with a purchase-vocabulary emotion
func ValidateCreateRecord(req request.CreateRecordRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Code) == "" {
		errors["code"] = "code is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if !model.Market(req.Market).Valid() {
		errors["market"] = "invalid market: " + req.Market
	}
	if !model.Position(req.Position).Valid() {
		errors["position"] = "invalid position: " + req.Position
	}

	validateLeg(req.Purchase, errors)
	if !model.PurchaseEmotion(req.Purchase.Emotion).Valid() {
		errors["emotion"] = "invalid purchase emotion: " + req.Purchase.Emotion
	}

	if err := ValidateUUIDs(req.TagIDs); err != nil && len(req.TagIDs) > 0 {
		errors["tagIds"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateRecord validates a record update request. All fields are
// optional; present fields must be valid.
func ValidateUpdateRecord(req request.UpdateRecordRequest) error {
	errors := make(map[string]string)

	if req.Code != nil && strings.TrimSpace(*req.Code) == "" {
		errors["code"] = "code cannot be empty"
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Market != nil && !model.Market(*req.Market).Valid() {
		errors["market"] = "invalid market: " + *req.Market
	}
	if req.Position != nil && !model.Position(*req.Position).Valid() {
		errors["position"] = "invalid position: " + *req.Position
	}
	if req.Purchase != nil {
		validateLeg(*req.Purchase, errors)
		if !model.PurchaseEmotion(req.Purchase.Emotion).Valid() {
			errors["emotion"] = "invalid purchase emotion: " + req.Purchase.Emotion
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateSale validates a sale leg request against the sale vocabulary.
// The oversell check (sold shares exceeding the purchase) is a business
// rule enforced by the record service, not here.
func ValidateSale(req request.LegRequest) error {
	errors := make(map[string]string)

	validateLeg(req, errors)
	if !model.SaleEmotion(req.Emotion).Valid() {
		errors["emotion"] = "invalid sale emotion: " + req.Emotion
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
