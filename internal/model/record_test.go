package model

import (
	"testing"
	"time"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestTradeLegCost(t *testing.T) {
	leg := TradeLeg{Amount: 2500, Shares: 100}
	if got := leg.Cost(); got != 250000 {
		t.Errorf("Expected cost 250000, got %v", got)
	}
}

func TestDerivedShareCounts(t *testing.T) {
	r := StockRecord{
		Position: PositionBuy,
		Purchase: TradeLeg{Amount: 1000, Shares: 100, Date: date("2024-01-10")},
		Sales: []TradeLeg{
			{Amount: 1100, Shares: 30, Date: date("2024-02-01")},
			{Amount: 1200, Shares: 20, Date: date("2024-03-01")},
		},
	}

	if got := r.TotalSoldShares(); got != 50 {
		t.Errorf("Expected 50 sold shares, got %d", got)
	}
	if got := r.RemainingShares(); got != 50 {
		t.Errorf("Expected 50 remaining shares, got %d", got)
	}
	if r.IsFullyClosed() {
		t.Error("Expected record to be open")
	}
}

func TestRemainingSharesToleratesOversoldData(t *testing.T) {
	r := StockRecord{
		Purchase: TradeLeg{Shares: 10},
		Sales:    []TradeLeg{{Shares: 15}},
	}

	if got := r.RemainingShares(); got != -5 {
		t.Errorf("Expected -5 remaining shares, got %d", got)
	}
	if r.IsFullyClosed() {
		t.Error("Oversold record must not report fully closed")
	}
}

func TestHoldingPeriodDays(t *testing.T) {
	open := StockRecord{Purchase: TradeLeg{Date: date("2024-01-10")}}
	if got := open.HoldingPeriodDays(); got != OpenHoldingPeriod {
		t.Errorf("Expected open sentinel %d, got %d", OpenHoldingPeriod, got)
	}

	// List order decides the last sale, not the sale dates.
	r := StockRecord{
		Purchase: TradeLeg{Shares: 20, Date: date("2024-01-10")},
		Sales: []TradeLeg{
			{Shares: 10, Date: date("2024-03-10")},
			{Shares: 10, Date: date("2024-02-10")},
		},
	}
	if got := r.HoldingPeriodDays(); got != 31 {
		t.Errorf("Expected 31 days, got %d", got)
	}
}

func TestLastSaleFollowsListOrder(t *testing.T) {
	r := StockRecord{
		Sales: []TradeLeg{
			{ID: "first", Date: date("2024-05-01")},
			{ID: "second", Date: date("2024-04-01")},
		},
	}

	last, ok := r.LastSale()
	if !ok {
		t.Fatal("Expected a last sale")
	}
	if last.ID != "second" {
		t.Errorf("Expected list-order last sale, got %s", last.ID)
	}
}

func TestRealizedProfitAndLoss(t *testing.T) {
	long := StockRecord{
		Position: PositionBuy,
		Purchase: TradeLeg{Amount: 2500, Shares: 100, Date: date("2024-01-10")},
		Sales: []TradeLeg{
			{Amount: 2800, Shares: 50, Date: date("2024-02-01")},
			{Amount: 2900, Shares: 50, Date: date("2024-03-01")},
		},
	}
	if got := long.RealizedProfitAndLoss(); got != 35000 {
		t.Errorf("Expected P&L 35000, got %v", got)
	}

	short := long
	short.Position = PositionSell
	if got := short.RealizedProfitAndLoss(); got != -35000 {
		t.Errorf("Expected short P&L -35000, got %v", got)
	}
}

func TestRealizedProfitAndLossPercent(t *testing.T) {
	r := StockRecord{
		Position: PositionBuy,
		Purchase: TradeLeg{Amount: 2500, Shares: 100, Date: date("2024-01-10")},
		Sales: []TradeLeg{
			{Amount: 2800, Shares: 50, Date: date("2024-02-01")},
		},
	}

	if pct := r.RealizedProfitAndLossPercent(); pct != nil {
		t.Errorf("Expected nil percent while open, got %v", *pct)
	}

	r.Sales = append(r.Sales, TradeLeg{Amount: 2900, Shares: 50, Date: date("2024-03-01")})
	pct := r.RealizedProfitAndLossPercent()
	if pct == nil {
		t.Fatal("Expected a percent once fully closed")
	}
	if *pct != 14 {
		t.Errorf("Expected 14%%, got %v", *pct)
	}

	free := StockRecord{
		Position: PositionBuy,
		Purchase: TradeLeg{Amount: 0, Shares: 10},
		Sales:    []TradeLeg{{Amount: 100, Shares: 10}},
	}
	if pct := free.RealizedProfitAndLossPercent(); pct != nil {
		t.Errorf("Expected nil percent for zero cost, got %v", *pct)
	}
}
