package service

import (
	"sort"

	"github.com/mnakahara/trade-journal-backend/internal/model"
)

// Ranking only decides order; which records are eligible (e.g. losers only
// for a "worst trades" list) is the caller's filter and stays independent of
// the sort. Both rankings use a stable sort so records with equal keys keep
// their relative input order.

// TopNByAmount returns the first n records ordered by lifetime realized P&L,
// ascending for a "worst" list and descending for a "best" list.
func TopNByAmount(records []model.StockRecord, n int, ascending bool) []model.StockRecord {
	sorted := make([]model.StockRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].RealizedProfitAndLoss(), sorted[j].RealizedProfitAndLoss()
		if ascending {
			return a < b
		}
		return a > b
	})
	return firstN(sorted, n)
}

// TopNByPercent is TopNByAmount keyed on RealizedProfitAndLossPercent.
// Records without a defined percent (open or zero-cost positions) rank as 0.
func TopNByPercent(records []model.StockRecord, n int, ascending bool) []model.StockRecord {
	sorted := make([]model.StockRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a := percentOrZero(&sorted[i])
		b := percentOrZero(&sorted[j])
		if ascending {
			return a < b
		}
		return a > b
	})
	return firstN(sorted, n)
}

func percentOrZero(r *model.StockRecord) float64 {
	if pct := r.RealizedProfitAndLossPercent(); pct != nil {
		return *pct
	}
	return 0
}

func firstN(records []model.StockRecord, n int) []model.StockRecord {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}
