package service

import (
	"math"
	"time"

	"github.com/mnakahara/trade-journal-backend/internal/model"
)

// The metric functions in this file are pure and stateless: they take a
// materialized snapshot of records plus a target year and never touch the
// repository layer. Year scoping always filters individual sale legs, not
// whole records, so a record whose sales span two calendar years contributes
// its per-year portion to each.
//
// Every function is total over its input: empty or degenerate input resolves
// to the documented neutral value (0, nil, +Inf) rather than NaN or a panic.

// yearPnL computes the year-scoped proceeds, apportioned cost and signed
// profit for a single record. Cost is apportioned per share at the single
// purchase price.
func yearPnL(r *model.StockRecord, year int) (proceeds, cost, profit float64) {
	var soldShares int
	for _, s := range r.Sales {
		if s.Date.UTC().Year() != year {
			continue
		}
		proceeds += s.Cost()
		soldShares += s.Shares
	}
	cost = float64(soldShares) * r.Purchase.Amount
	profit = r.Position.SignedProfit(proceeds, cost)
	return proceeds, cost, profit
}

// TotalRealizedPnL sums the year-scoped realized profit and loss across all
// records. Returns 0 for an empty snapshot.
func TotalRealizedPnL(records []model.StockRecord, year int) float64 {
	var total float64
	for i := range records {
		_, _, profit := yearPnL(&records[i], year)
		total += profit
	}
	return total
}

// RecordsTouchingYear returns the records having at least one sale leg dated
// in the given year. This is the base population for the per-record metrics.
func RecordsTouchingYear(records []model.StockRecord, year int) []model.StockRecord {
	var out []model.StockRecord
	for _, r := range records {
		for _, s := range r.Sales {
			if s.Date.UTC().Year() == year {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// AverageHoldingPeriod averages the holding period, in days, of records whose
// last sale falls in the given year. A record selected by that filter always
// has at least one sale, so the open-position sentinel cannot occur in the
// happy path; negative values are still clamped to 0 so inconsistent input
// can never drag the average below zero. Returns 0 when no record qualifies.
func AverageHoldingPeriod(records []model.StockRecord, year int) float64 {
	var total float64
	var count int
	for i := range records {
		last, ok := records[i].LastSale()
		if !ok || last.Date.UTC().Year() != year {
			continue
		}
		days := records[i].HoldingPeriodDays()
		if days < 0 {
			days = 0
		}
		total += float64(days)
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// WinRate is the percentage of winning records among those touching the
// year. The population is year-scoped but the win/lose classifier is the
// record's lifetime RealizedProfitAndLossPercent; a nil percent (open
// position, zero cost) counts as a loss. That mixing of scopes is the
// journal's historical behavior and is preserved on purpose.
// Returns nil when no record touches the year.
func WinRate(records []model.StockRecord, year int) *float64 {
	base := RecordsTouchingYear(records, year)
	if len(base) == 0 {
		return nil
	}
	wins := 0
	for i := range base {
		if pct := base[i].RealizedProfitAndLossPercent(); pct != nil && *pct >= 0 {
			wins++
		}
	}
	rate := 100 * float64(wins) / float64(len(base))
	return &rate
}

// AverageProfitAndLossAmount averages the year-scoped realized P&L over the
// records touching the year. Returns nil when no record touches the year.
func AverageProfitAndLossAmount(records []model.StockRecord, year int) *float64 {
	base := RecordsTouchingYear(records, year)
	if len(base) == 0 {
		return nil
	}
	var total float64
	for i := range base {
		_, _, profit := yearPnL(&base[i], year)
		total += profit
	}
	avg := total / float64(len(base))
	return &avg
}

// AverageProfitAndLossPercent averages the year-scoped percentage return over
// the records touching the year, skipping records whose year-scoped cost is
// zero. Returns nil when every candidate was skipped.
func AverageProfitAndLossPercent(records []model.StockRecord, year int) *float64 {
	base := RecordsTouchingYear(records, year)
	var total float64
	var count int
	for i := range base {
		_, cost, profit := yearPnL(&base[i], year)
		if cost == 0 {
			continue
		}
		total += 100 * profit / cost
		count++
	}
	if count == 0 {
		return nil
	}
	avg := total / float64(count)
	return &avg
}

// MonthlyProfitSeries buckets the signed per-leg profit of every sale dated
// in the year by calendar month. Only months with at least one contributing
// sale appear, ordered by month number; the chart contract is gaps, not
// zeros.
func MonthlyProfitSeries(records []model.StockRecord, year int) []model.MonthlyProfit {
	totals := make(map[int]float64)
	for i := range records {
		r := &records[i]
		for _, s := range r.Sales {
			d := s.Date.UTC()
			if d.Year() != year {
				continue
			}
			cost := float64(s.Shares) * r.Purchase.Amount
			totals[int(d.Month())] += r.Position.SignedProfit(s.Cost(), cost)
		}
	}
	series := make([]model.MonthlyProfit, 0, len(totals))
	for m := 1; m <= 12; m++ {
		if total, ok := totals[m]; ok {
			series = append(series, model.MonthlyProfit{
				Month: m,
				Label: time.Month(m).String()[:3],
				Total: total,
			})
		}
	}
	return series
}

// ProfitFactor is total gains divided by total absolute losses over the
// given set, using each record's lifetime realized P&L. With zero losses it
// returns +Inf when there is any profit and 0 otherwise (including the empty
// set).
func ProfitFactor(records []model.StockRecord) float64 {
	var gains, losses float64
	for i := range records {
		pnl := records[i].RealizedProfitAndLoss()
		if pnl >= 0 {
			gains += pnl
		} else {
			losses += -pnl
		}
	}
	if losses == 0 {
		if gains > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return gains / losses
}

// MaximumDrawdown walks the records in the caller's order (typically
// insertion order; the input is never resorted), accumulating realized P&L
// and tracking the decline from the running peak as a percentage of that
// peak. Steps taken while the peak is still 0 contribute nothing. Returns
// the most negative drawdown seen, or 0 when the cumulative P&L never falls
// below its peak.
func MaximumDrawdown(records []model.StockRecord) float64 {
	var acc, peak, maxDrawdown float64
	for i := range records {
		acc += records[i].RealizedProfitAndLoss()
		if acc > peak {
			peak = acc
		}
		if peak == 0 {
			continue
		}
		drawdown := (acc - peak) / peak * 100
		if drawdown < maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown
}

// AverageRiskRewardRatio divides the average winner by the average absolute
// loser, partitioning on lifetime realized P&L (>= 0 wins). With no losing
// trades it returns 0 — not +Inf; the asymmetry with ProfitFactor is the
// journal's historical behavior and is preserved.
func AverageRiskRewardRatio(records []model.StockRecord) float64 {
	var winTotal, lossTotal float64
	var winCount, lossCount int
	for i := range records {
		pnl := records[i].RealizedProfitAndLoss()
		if pnl >= 0 {
			winTotal += pnl
			winCount++
		} else {
			lossTotal += -pnl
			lossCount++
		}
	}
	if lossCount == 0 || winCount == 0 {
		return 0
	}
	avgWin := winTotal / float64(winCount)
	avgLoss := lossTotal / float64(lossCount)
	if avgLoss == 0 {
		return 0
	}
	return avgWin / avgLoss
}
