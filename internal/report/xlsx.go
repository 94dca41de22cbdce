// Package report renders the yearly performance report as an xlsx workbook:
// a summary sheet with the aggregate metrics and a trades sheet with one row
// per record that touched the year.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mnakahara/trade-journal-backend/internal/model"
)

const (
	summarySheet = "Summary"
	tradesSheet  = "Trades"
)

// BuildWorkbook assembles the report workbook. The caller owns the returned
// file and must Close it after writing it out.
func BuildWorkbook(summary model.PerformanceSummary, monthly []model.MonthlyProfit, records []model.StockRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := fillSummarySheet(f, summary, monthly); err != nil {
		f.Close()
		return nil, err
	}
	if err := fillTradesSheet(f, records); err != nil {
		f.Close()
		return nil, err
	}

	// The default sheet is replaced by the two named ones.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	return f, nil
}

func fillSummarySheet(f *excelize.File, summary model.PerformanceSummary, monthly []model.MonthlyProfit) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headerStyle, err := headerStyle(f)
	if err != nil {
		return err
	}

	f.SetCellValue(summarySheet, "A1", fmt.Sprintf("Performance %d", summary.Year))
	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return fmt.Errorf("failed to merge title cells: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("failed to style title cells: %w", err)
	}

	rows := []struct {
		label string
		value any
	}{
		{"Total realized P&L", summary.TotalRealizedPnL},
		{"Win rate (%)", optional(summary.WinRate)},
		{"Average P&L", optional(summary.AveragePnLAmount)},
		{"Average P&L (%)", optional(summary.AveragePnLPercent)},
		{"Average holding period (days)", summary.AverageHoldingPeriod},
		{"Profit factor", finiteOrLabel(summary.ProfitFactor)},
		{"Maximum drawdown (%)", summary.MaximumDrawdown},
		{"Average risk/reward", summary.AverageRiskRewardRatio},
		{"Trades", summary.TradeCount},
	}
	for i, row := range rows {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+2), row.label)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+2), row.value)
	}

	monthlyTop := len(rows) + 3
	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", monthlyTop), "Monthly P&L")
	for i, m := range monthly {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", monthlyTop+1+i), m.Label)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", monthlyTop+1+i), m.Total)
	}

	return nil
}

func fillTradesSheet(f *excelize.File, records []model.StockRecord) error {
	if _, err := f.NewSheet(tradesSheet); err != nil {
		return fmt.Errorf("failed to create trades sheet: %w", err)
	}

	headerStyle, err := headerStyle(f)
	if err != nil {
		return err
	}

	headers := []string{
		"Code", "Name", "Market", "Position", "Purchased", "Sold",
		"Realized P&L", "P&L %", "Holding days", "Entry emotion",
		"Exit emotion", "Tags",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell name: %w", err)
		}
		f.SetCellValue(tradesSheet, cell, h)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return fmt.Errorf("failed to build header cell name: %w", err)
	}
	if err := f.SetCellStyle(tradesSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header cells: %w", err)
	}

	for i := range records {
		r := &records[i]
		row := i + 2

		tagNames := make([]string, 0, len(r.Tags))
		for _, t := range r.Tags {
			tagNames = append(tagNames, t.Name)
		}

		values := []any{
			r.Code,
			r.Name,
			string(r.Market),
			string(r.Position),
			r.Purchase.Shares,
			r.TotalSoldShares(),
			r.RealizedProfitAndLoss(),
			optional(r.RealizedProfitAndLossPercent()),
			holdingOrEmpty(r.HoldingPeriodDays()),
			model.PurchaseEmotion(r.Purchase.Emotion).Label(),
			exitEmotionLabel(r),
			strings.Join(tagNames, ", "),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			f.SetCellValue(tradesSheet, cell, v)
		}
	}

	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	styleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	return styleID, nil
}

// optional flattens a nullable metric into a cell value, empty when absent.
func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

// finiteOrLabel keeps the profit factor's +Inf convention readable in a cell.
func finiteOrLabel(v float64) any {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return v
}

// exitEmotionLabel labels the emotion of the last sale in list order, empty
// while the position is still open.
func exitEmotionLabel(r *model.StockRecord) string {
	last, ok := r.LastSale()
	if !ok {
		return ""
	}
	return model.SaleEmotion(last.Emotion).Label()
}

func holdingOrEmpty(days int) any {
	if days < 0 {
		return ""
	}
	return days
}
