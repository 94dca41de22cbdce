package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mnakahara/trade-journal-backend/internal/api/request"
	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/repository"
)

// RecordService handles stock-record business logic: creating records from
// purchase entries, editing legs and tags, and enforcing the oversell rule
// that the calculators deliberately do not enforce.
type RecordService struct {
	recordRepo *repository.RecordRepository
	tagRepo    *repository.TagRepository
}

// NewRecordService creates a new RecordService with the provided repository dependencies.
func NewRecordService(
	recordRepo *repository.RecordRepository,
	tagRepo *repository.TagRepository,
) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		tagRepo:    tagRepo,
	}
}

// GetAllRecords returns the full journal as an immutable snapshot.
func (s *RecordService) GetAllRecords() ([]model.StockRecord, error) {
	return s.recordRepo.GetAllRecords()
}

// GetRecord returns a single record.
func (s *RecordService) GetRecord(recordID string) (model.StockRecord, error) {
	return s.recordRepo.GetRecord(recordID)
}

// CreateRecord creates a record from its initial purchase entry. The request
// must already be validated; dates arrive as "2006-01-02" strings.
func (s *RecordService) CreateRecord(req request.CreateRecordRequest) (model.StockRecord, error) {
	purchase, err := legFromRequest(req.Purchase)
	if err != nil {
		return model.StockRecord{}, err
	}

	tags, err := s.tagRepo.GetTagsByIDs(req.TagIDs)
	if err != nil {
		return model.StockRecord{}, err
	}
	if len(tags) != len(req.TagIDs) {
		return model.StockRecord{}, apperrors.ErrTagNotFound
	}

	record := model.StockRecord{
		ID:        uuid.NewString(),
		Code:      req.Code,
		Market:    model.Market(req.Market),
		Name:      req.Name,
		Position:  model.Position(req.Position),
		Purchase:  purchase,
		Sales:     []model.TradeLeg{},
		Tags:      tags,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.recordRepo.CreateRecord(record); err != nil {
		return model.StockRecord{}, err
	}
	return record, nil
}

// UpdateRecord applies the present fields of an update request to an
// existing record. The purchase leg, when present, is replaced as a value;
// its synthetic ID is preserved.
func (s *RecordService) UpdateRecord(recordID string, req request.UpdateRecordRequest) (model.StockRecord, error) {
	record, err := s.recordRepo.GetRecord(recordID)
	if err != nil {
		return model.StockRecord{}, err
	}

	if req.Code != nil {
		record.Code = *req.Code
	}
	if req.Market != nil {
		record.Market = model.Market(*req.Market)
	}
	if req.Name != nil {
		record.Name = *req.Name
	}
	if req.Position != nil {
		record.Position = model.Position(*req.Position)
	}
	if req.Purchase != nil {
		purchase, err := legFromRequest(*req.Purchase)
		if err != nil {
			return model.StockRecord{}, err
		}
		purchase.ID = record.Purchase.ID

		// Shrinking the purchase below what is already sold would strand
		// the record in an oversold state.
		if purchase.Shares < record.TotalSoldShares() {
			return model.StockRecord{}, apperrors.ErrInsufficientShares
		}
		record.Purchase = purchase
	}

	if err := s.recordRepo.UpdateRecord(record); err != nil {
		return model.StockRecord{}, err
	}
	return record, nil
}

// DeleteRecord removes a record and everything attached to it.
func (s *RecordService) DeleteRecord(recordID string) error {
	return s.recordRepo.DeleteRecord(recordID)
}

// AddSale appends a sale leg, rejecting sales that would push the record
// past its purchased share count.
func (s *RecordService) AddSale(recordID string, req request.LegRequest) (model.StockRecord, error) {
	record, err := s.recordRepo.GetRecord(recordID)
	if err != nil {
		return model.StockRecord{}, err
	}

	if record.TotalSoldShares()+req.Shares > record.Purchase.Shares {
		return model.StockRecord{}, apperrors.ErrInsufficientShares
	}

	leg, err := legFromRequest(req)
	if err != nil {
		return model.StockRecord{}, err
	}
	leg.ID = uuid.NewString()

	if err := s.recordRepo.AddSale(recordID, leg); err != nil {
		return model.StockRecord{}, err
	}
	return s.recordRepo.GetRecord(recordID)
}

// UpdateSale replaces an existing sale leg with new values, keeping its
// position in the list. The oversell check counts every other sale plus the
// replacement.
func (s *RecordService) UpdateSale(recordID, legID string, req request.LegRequest) (model.StockRecord, error) {
	record, err := s.recordRepo.GetRecord(recordID)
	if err != nil {
		return model.StockRecord{}, err
	}

	otherShares := 0
	found := false
	for _, sale := range record.Sales {
		if sale.ID == legID {
			found = true
			continue
		}
		otherShares += sale.Shares
	}
	if !found {
		return model.StockRecord{}, apperrors.ErrSaleNotFound
	}
	if otherShares+req.Shares > record.Purchase.Shares {
		return model.StockRecord{}, apperrors.ErrInsufficientShares
	}

	leg, err := legFromRequest(req)
	if err != nil {
		return model.StockRecord{}, err
	}
	leg.ID = legID

	if err := s.recordRepo.UpdateSale(recordID, leg); err != nil {
		return model.StockRecord{}, err
	}
	return s.recordRepo.GetRecord(recordID)
}

// DeleteSale removes a single sale leg.
func (s *RecordService) DeleteSale(recordID, legID string) (model.StockRecord, error) {
	if err := s.recordRepo.DeleteSale(recordID, legID); err != nil {
		return model.StockRecord{}, err
	}
	return s.recordRepo.GetRecord(recordID)
}

// SetTags replaces the record's tags with the given tag IDs.
func (s *RecordService) SetTags(recordID string, tagIDs []string) (model.StockRecord, error) {
	if _, err := s.recordRepo.GetRecord(recordID); err != nil {
		return model.StockRecord{}, err
	}

	tags, err := s.tagRepo.GetTagsByIDs(tagIDs)
	if err != nil {
		return model.StockRecord{}, err
	}
	if len(tags) != len(tagIDs) {
		return model.StockRecord{}, apperrors.ErrTagNotFound
	}

	if err := s.recordRepo.SetTags(recordID, tagIDs); err != nil {
		return model.StockRecord{}, err
	}
	return s.recordRepo.GetRecord(recordID)
}

// legFromRequest builds a TradeLeg value from request fields, minting a new
// synthetic ID. Callers overwrite the ID when editing an existing leg.
func legFromRequest(req request.LegRequest) (model.TradeLeg, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.TradeLeg{}, fmt.Errorf("failed to parse leg date: %w", err)
	}
	return model.TradeLeg{
		ID:      uuid.NewString(),
		Amount:  req.Amount,
		Shares:  req.Shares,
		Date:    date.UTC(),
		Emotion: req.Emotion,
		Reason:  req.Reason,
	}, nil
}
