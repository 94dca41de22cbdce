package model

// PerformanceSummary holds the aggregate metrics for one calendar year.
// Optional values are nil on the documented empty/degenerate cases rather
// than zeroed, so the display layer can distinguish "no data" from 0.
type PerformanceSummary struct {
	Year                   int      `json:"year"`
	TotalRealizedPnL       float64  `json:"totalRealizedPnl"`
	WinRate                *float64 `json:"winRate"`
	AveragePnLAmount       *float64 `json:"averagePnlAmount"`
	AveragePnLPercent      *float64 `json:"averagePnlPercent"`
	AverageHoldingPeriod   float64  `json:"averageHoldingPeriod"`
	ProfitFactor           float64  `json:"profitFactor"`
	MaximumDrawdown        float64  `json:"maximumDrawdown"`
	AverageRiskRewardRatio float64  `json:"averageRiskRewardRatio"`
	TradeCount             int      `json:"tradeCount"`
}

// MonthlyProfit is one point of the monthly P&L series. Months without any
// sale activity are omitted from the series, not zero-filled; the chart
// renders gaps.
type MonthlyProfit struct {
	Month int     `json:"month"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}
