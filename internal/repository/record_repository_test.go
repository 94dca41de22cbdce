package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/repository"
	"github.com/mnakahara/trade-journal-backend/internal/testutil"
)

func TestGetAllRecordsSnapshotOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRecordRepository(db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.NewRecord().WithName("second").WithCreatedAt(base.Add(time.Hour)).Build(t, db)
	testutil.NewRecord().WithName("first").WithCreatedAt(base).Build(t, db)

	records, err := repo.GetAllRecords()
	if err != nil {
		t.Fatalf("GetAllRecords failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Name != "first" || records[1].Name != "second" {
		t.Errorf("Snapshot must be ordered by creation time: %s, %s",
			records[0].Name, records[1].Name)
	}
}

func TestGetAllRecordsAttachesLegsAndTags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRecordRepository(db)

	tag := testutil.CreateTag(t, db, "growth")
	built := testutil.NewRecord().
		WithPurchase(2500, 100, "2024-01-10").
		WithSale(2800, 50, "2024-03-15").
		WithSale(2900, 30, "2024-04-15").
		WithTags(tag.ID).
		Build(t, db)

	record, err := repo.GetRecord(built.ID)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}

	if record.Purchase.Amount != 2500 || record.Purchase.Shares != 100 {
		t.Errorf("Unexpected purchase leg: %+v", record.Purchase)
	}
	if len(record.Sales) != 2 {
		t.Fatalf("Expected 2 sales, got %d", len(record.Sales))
	}
	// Sales come back in seq order.
	if record.Sales[0].Shares != 50 || record.Sales[1].Shares != 30 {
		t.Errorf("Sales out of order: %+v", record.Sales)
	}
	if len(record.Tags) != 1 || record.Tags[0].ID != tag.ID {
		t.Errorf("Expected the growth tag, got %+v", record.Tags)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRecordRepository(db)

	_, err := repo.GetRecord(testutil.MakeID())
	if !errors.Is(err, apperrors.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
}

func TestCreateRecordRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRecordRepository(db)

	tag := testutil.CreateTag(t, db, "swing")
	record := model.StockRecord{
		ID:       testutil.MakeID(),
		Code:     "9984",
		Market:   model.MarketTokyo,
		Name:     "SoftBank Group",
		Position: model.PositionBuy,
		Purchase: model.TradeLeg{
			ID:      testutil.MakeID(),
			Amount:  6000,
			Shares:  50,
			Date:    testutil.MustDate("2024-02-01"),
			Emotion: "hopeful",
			Reason:  "oversold bounce",
		},
		Tags:      []model.Tag{tag},
		CreatedAt: time.Now().UTC(),
	}

	if err := repo.CreateRecord(record); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	loaded, err := repo.GetRecord(record.ID)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if loaded.Purchase.Reason != "oversold bounce" {
		t.Errorf("Expected purchase reason to round-trip, got %q", loaded.Purchase.Reason)
	}
	if len(loaded.Tags) != 1 {
		t.Errorf("Expected 1 tag link, got %d", len(loaded.Tags))
	}
}

func TestAddSaleAssignsSequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRecordRepository(db)

	built := testutil.NewRecord().WithPurchase(1000, 100, "2024-01-10").Build(t, db)

	first := model.TradeLeg{ID: testutil.MakeID(), Amount: 1100, Shares: 30,
		Date: testutil.MustDate("2024-02-01"), Emotion: "satisfied"}
	second := model.TradeLeg{ID: testutil.MakeID(), Amount: 1200, Shares: 20,
		Date: testutil.MustDate("2024-03-01"), Emotion: "calm"}

	if err := repo.AddSale(built.ID, first); err != nil {
		t.Fatalf("AddSale failed: %v", err)
	}
	if err := repo.AddSale(built.ID, second); err != nil {
		t.Fatalf("AddSale failed: %v", err)
	}

	record, err := repo.GetRecord(built.ID)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if len(record.Sales) != 2 {
		t.Fatalf("Expected 2 sales, got %d", len(record.Sales))
	}
	if record.Sales[0].ID != first.ID || record.Sales[1].ID != second.ID {
		t.Errorf("Sales must keep insertion order: %+v", record.Sales)
	}
}

func TestUpdateRecordNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRecordRepository(db)

	err := repo.UpdateRecord(model.StockRecord{
		ID:       testutil.MakeID(),
		Code:     "0000",
		Market:   model.MarketTokyo,
		Position: model.PositionBuy,
	})
	if !errors.Is(err, apperrors.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteRecordCascadesToLegsAndLinks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewRecordRepository(db)

	tag := testutil.CreateTag(t, db, "growth")
	built := testutil.NewRecord().
		WithSale(1100, 10, "2024-02-01").
		WithTags(tag.ID).
		Build(t, db)

	if err := repo.DeleteRecord(built.ID); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}

	testutil.AssertRowCount(t, db, "stock_record", 0)
	testutil.AssertRowCount(t, db, "trade_leg", 0)
	testutil.AssertRowCount(t, db, "record_tag", 0)
	// The tag itself survives.
	testutil.AssertRowCount(t, db, "tag", 1)
}
