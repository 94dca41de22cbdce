package service

import (
	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/repository"
	"github.com/mnakahara/trade-journal-backend/internal/treemap"
)

// PerformanceService is the boundary between the record store and the pure
// metric functions: it materializes a snapshot once per request and hands it
// to the calculators, which never see the repository.
type PerformanceService struct {
	recordRepo *repository.RecordRepository
}

// NewPerformanceService creates a new PerformanceService with the provided repository dependencies.
func NewPerformanceService(recordRepo *repository.RecordRepository) *PerformanceService {
	return &PerformanceService{recordRepo: recordRepo}
}

// GetSummary computes the aggregate metrics for one calendar year.
// The set-scoped metrics (profit factor, drawdown, risk/reward) run over the
// records touching the year, in snapshot (insertion) order.
func (s *PerformanceService) GetSummary(year int) (model.PerformanceSummary, error) {
	records, err := s.recordRepo.GetAllRecords()
	if err != nil {
		return model.PerformanceSummary{}, err
	}

	base := RecordsTouchingYear(records, year)

	return model.PerformanceSummary{
		Year:                   year,
		TotalRealizedPnL:       round(TotalRealizedPnL(records, year)),
		WinRate:                roundPtr(WinRate(records, year)),
		AveragePnLAmount:       roundPtr(AverageProfitAndLossAmount(records, year)),
		AveragePnLPercent:      roundPtr(AverageProfitAndLossPercent(records, year)),
		AverageHoldingPeriod:   round(AverageHoldingPeriod(records, year)),
		ProfitFactor:           ProfitFactor(base),
		MaximumDrawdown:        round(MaximumDrawdown(base)),
		AverageRiskRewardRatio: round(AverageRiskRewardRatio(base)),
		TradeCount:             len(base),
	}, nil
}

// GetMonthlySeries computes the per-month realized P&L series for one year.
func (s *PerformanceService) GetMonthlySeries(year int) ([]model.MonthlyProfit, error) {
	records, err := s.recordRepo.GetAllRecords()
	if err != nil {
		return nil, err
	}
	return MonthlyProfitSeries(records, year), nil
}

// GetRanking returns the best or worst n records. A "best" ranking is
// eligible to winners only and sorts descending; a "worst" ranking to losers
// only, ascending. The eligibility classifier follows the ranking key:
// lifetime P&L for byPercent=false, percent-or-zero for byPercent=true.
func (s *PerformanceService) GetRanking(byPercent bool, worst bool, n int) ([]model.StockRecord, error) {
	records, err := s.recordRepo.GetAllRecords()
	if err != nil {
		return nil, err
	}

	eligible := make([]model.StockRecord, 0, len(records))
	for i := range records {
		var key float64
		if byPercent {
			key = percentOrZero(&records[i])
		} else {
			key = records[i].RealizedProfitAndLoss()
		}
		if worst && key < 0 {
			eligible = append(eligible, records[i])
		}
		if !worst && key >= 0 {
			eligible = append(eligible, records[i])
		}
	}

	if byPercent {
		return TopNByPercent(eligible, n, worst), nil
	}
	return TopNByAmount(eligible, n, worst), nil
}

// TreemapEntry describes one treemap cell's record: the weight that sized it
// and the metadata the consumer needs to label and color it.
type TreemapEntry struct {
	RecordID string  `json:"recordId"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Value    float64 `json:"value"`
}

// TreemapView is a computed treemap layout plus the entries the cell indexes
// refer to.
type TreemapView struct {
	Entries []TreemapEntry `json:"entries"`
	Root    *treemap.Node  `json:"root"`
}

// GetTreemap lays out the open portfolio as a treemap: one cell per record
// with remaining shares, weighted by remaining exposure at the purchase
// price. Records with nothing left (or oversold ones) are skipped.
func (s *PerformanceService) GetTreemap(width, height float64) (TreemapView, error) {
	records, err := s.recordRepo.GetAllRecords()
	if err != nil {
		return TreemapView{}, err
	}

	entries := []TreemapEntry{}
	weights := []float64{}
	for i := range records {
		r := &records[i]
		value := r.Purchase.Amount * float64(r.RemainingShares())
		if value <= 0 {
			continue
		}
		entries = append(entries, TreemapEntry{
			RecordID: r.ID,
			Code:     r.Code,
			Name:     r.Name,
			Color:    r.Market.Color(),
			Value:    value,
		})
		weights = append(weights, value)
	}

	return TreemapView{
		Entries: entries,
		Root:    treemap.Layout(weights, width, height),
	}, nil
}
