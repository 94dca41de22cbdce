package service_test

import (
	"testing"
	"time"

	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/testutil"
)

func TestGetSummaryEndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)

	// 100 shares at 2500, sold as 50 at 2800 and 50 at 2900 during 2024.
	testutil.NewRecord().
		WithPurchase(2500, 100, "2024-01-10").
		WithSale(2800, 50, "2024-03-15").
		WithSale(2900, 50, "2024-06-20").
		Build(t, db)

	summary, err := svc.GetSummary(2024)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if summary.TotalRealizedPnL != 35000 {
		t.Errorf("Expected total P&L 35000, got %v", summary.TotalRealizedPnL)
	}
	if summary.WinRate == nil || *summary.WinRate != 100 {
		t.Errorf("Expected win rate 100, got %v", summary.WinRate)
	}
	if summary.AveragePnLAmount == nil || *summary.AveragePnLAmount != 35000 {
		t.Errorf("Expected average P&L 35000, got %v", summary.AveragePnLAmount)
	}
	if summary.AveragePnLPercent == nil || *summary.AveragePnLPercent != 14 {
		t.Errorf("Expected average P&L percent 14, got %v", summary.AveragePnLPercent)
	}
	if summary.TradeCount != 1 {
		t.Errorf("Expected trade count 1, got %d", summary.TradeCount)
	}
	// 2024-01-10 to 2024-06-20 is 162 days.
	if summary.AverageHoldingPeriod != 162 {
		t.Errorf("Expected holding period 162, got %v", summary.AverageHoldingPeriod)
	}
}

func TestGetSummaryEmptyYear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)

	summary, err := svc.GetSummary(2024)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if summary.TotalRealizedPnL != 0 {
		t.Errorf("Expected zero total, got %v", summary.TotalRealizedPnL)
	}
	if summary.WinRate != nil {
		t.Errorf("Expected nil win rate, got %v", *summary.WinRate)
	}
	if summary.AveragePnLAmount != nil || summary.AveragePnLPercent != nil {
		t.Error("Expected nil averages for an empty year")
	}
	if summary.ProfitFactor != 0 || summary.TradeCount != 0 {
		t.Errorf("Expected neutral set metrics, got %+v", summary)
	}
}

func TestGetMonthlySeries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)

	testutil.NewRecord().
		WithPurchase(1000, 30, "2024-01-05").
		WithSale(1100, 10, "2024-02-10").
		WithSale(1500, 10, "2024-11-01").
		Build(t, db)

	series, err := svc.GetMonthlySeries(2024)
	if err != nil {
		t.Fatalf("GetMonthlySeries failed: %v", err)
	}

	if len(series) != 2 {
		t.Fatalf("Expected 2 active months, got %d", len(series))
	}
	if series[0].Month != 2 || series[0].Total != 1000 {
		t.Errorf("Unexpected February bucket: %+v", series[0])
	}
	if series[1].Month != 11 || series[1].Total != 5000 {
		t.Errorf("Unexpected November bucket: %+v", series[1])
	}
}

func TestGetRankingEligibilityAndOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Lifetime P&L: +500, -300, -100, +200, in snapshot order.
	testutil.NewRecord().WithName("big win").WithCreatedAt(base).
		WithPurchase(100, 10, "2024-01-05").WithSale(150, 10, "2024-02-01").Build(t, db)
	testutil.NewRecord().WithName("big loss").WithCreatedAt(base.Add(time.Minute)).
		WithPurchase(100, 10, "2024-01-05").WithSale(70, 10, "2024-02-01").Build(t, db)
	testutil.NewRecord().WithName("small loss").WithCreatedAt(base.Add(2 * time.Minute)).
		WithPurchase(100, 10, "2024-01-05").WithSale(90, 10, "2024-02-01").Build(t, db)
	testutil.NewRecord().WithName("small win").WithCreatedAt(base.Add(3 * time.Minute)).
		WithPurchase(100, 10, "2024-01-05").WithSale(120, 10, "2024-02-01").Build(t, db)

	best, err := svc.GetRanking(false, false, 10)
	if err != nil {
		t.Fatalf("GetRanking failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("Expected 2 winners, got %d", len(best))
	}
	if best[0].Name != "big win" || best[1].Name != "small win" {
		t.Errorf("Unexpected best order: %s, %s", best[0].Name, best[1].Name)
	}

	worst, err := svc.GetRanking(false, true, 10)
	if err != nil {
		t.Fatalf("GetRanking failed: %v", err)
	}
	if len(worst) != 2 {
		t.Fatalf("Expected 2 losers, got %d", len(worst))
	}
	if worst[0].Name != "big loss" || worst[1].Name != "small loss" {
		t.Errorf("Unexpected worst order: %s, %s", worst[0].Name, worst[1].Name)
	}

	capped, err := svc.GetRanking(false, false, 1)
	if err != nil {
		t.Fatalf("GetRanking failed: %v", err)
	}
	if len(capped) != 1 || capped[0].Name != "big win" {
		t.Errorf("Unexpected capped ranking: %+v", capped)
	}
}

func TestGetTreemapWeightsOpenPositions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Open: 100 remaining at 2000 -> weight 200000.
	open := testutil.NewRecord().WithName("open").WithCreatedAt(base).
		WithPurchase(2000, 100, "2024-01-05").Build(t, db)
	// Half sold: 50 remaining at 1000 -> weight 50000.
	testutil.NewRecord().WithName("half").WithCreatedAt(base.Add(time.Minute)).
		WithPurchase(1000, 100, "2024-01-05").WithSale(1100, 50, "2024-02-01").Build(t, db)
	// Fully closed: skipped.
	testutil.NewRecord().WithName("closed").WithCreatedAt(base.Add(2 * time.Minute)).
		WithPurchase(1000, 10, "2024-01-05").WithSale(1100, 10, "2024-02-01").Build(t, db)

	view, err := svc.GetTreemap(800, 600)
	if err != nil {
		t.Fatalf("GetTreemap failed: %v", err)
	}

	if len(view.Entries) != 2 {
		t.Fatalf("Expected 2 treemap entries, got %d", len(view.Entries))
	}
	if view.Entries[0].RecordID != open.ID || view.Entries[0].Value != 200000 {
		t.Errorf("Unexpected first entry: %+v", view.Entries[0])
	}
	if view.Entries[1].Value != 50000 {
		t.Errorf("Unexpected second entry: %+v", view.Entries[1])
	}
	if view.Entries[0].Color != model.MarketTokyo.Color() {
		t.Errorf("Expected market color, got %s", view.Entries[0].Color)
	}
	if view.Root == nil {
		t.Fatal("Expected a layout root")
	}
}

func TestGetTreemapEmptyPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPerformanceService(t, db)

	view, err := svc.GetTreemap(800, 600)
	if err != nil {
		t.Fatalf("GetTreemap failed: %v", err)
	}
	if len(view.Entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(view.Entries))
	}
	if view.Root != nil {
		t.Error("Expected nil root for an empty portfolio")
	}
}
