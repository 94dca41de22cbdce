package model

import "time"

// OpenHoldingPeriod is the sentinel returned by HoldingPeriodDays while a
// record has no sale legs yet.
const OpenHoldingPeriod = -1

// TradeLeg is a single purchase or sale event within a stock record.
// Legs are value types: edits replace the leg inside the owning record's
// slice rather than mutating shared state in place. The synthetic ID exists
// because sale legs live in a list and must be individually editable and
// removable.
type TradeLeg struct {
	ID      string    `json:"id"`
	Amount  float64   `json:"amount"` // price per share
	Shares  int       `json:"shares"`
	Date    time.Time `json:"date"`
	Emotion string    `json:"emotion"` // purchase or sale vocabulary, depending on leg kind
	Reason  string    `json:"reason"`
}

// Cost returns the total value of the leg (price per share times shares).
func (l TradeLeg) Cost() float64 {
	return l.Amount * float64(l.Shares)
}

// StockRecord is a journaled trade: exactly one purchase leg, zero or more
// sale legs, and user-assigned tags. Sale legs keep their insertion order;
// the order is irrelevant for the calculations but is what the journal
// displays.
type StockRecord struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Market    Market     `json:"market"`
	Name      string     `json:"name"`
	Position  Position   `json:"position"`
	Purchase  TradeLeg   `json:"purchase"`
	Sales     []TradeLeg `json:"sales"`
	Tags      []Tag      `json:"tags"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
}

// TotalSoldShares is the sum of shares across all sale legs.
func (r *StockRecord) TotalSoldShares() int {
	total := 0
	for _, s := range r.Sales {
		total += s.Shares
	}
	return total
}

// RemainingShares is the purchase size minus everything sold so far.
// Malformed data (oversold records) yields a negative value; the editing
// layer rejects such sales, the calculators just tolerate them.
func (r *StockRecord) RemainingShares() int {
	return r.Purchase.Shares - r.TotalSoldShares()
}

// IsFullyClosed reports whether every purchased share has been sold.
func (r *StockRecord) IsFullyClosed() bool {
	return r.TotalSoldShares() == r.Purchase.Shares
}

// LastSale returns the most recently appended sale leg, or false when the
// position is still open. List order, not sale date, decides which leg is
// "last".
func (r *StockRecord) LastSale() (TradeLeg, bool) {
	if len(r.Sales) == 0 {
		return TradeLeg{}, false
	}
	return r.Sales[len(r.Sales)-1], true
}

// HoldingPeriodDays is the number of days between the purchase date and the
// last sale's date, both truncated to day granularity. Returns
// OpenHoldingPeriod (-1) while the record has no sales.
func (r *StockRecord) HoldingPeriodDays() int {
	last, ok := r.LastSale()
	if !ok {
		return OpenHoldingPeriod
	}
	from := startOfDay(r.Purchase.Date)
	to := startOfDay(last.Date)
	return int(to.Sub(from).Hours() / 24)
}

// RealizedProfitAndLoss is the position-signed profit over all sale legs,
// partial realization included: proceeds of every sale against the full
// purchase cost apportioned at the single purchase price.
func (r *StockRecord) RealizedProfitAndLoss() float64 {
	var proceeds float64
	for _, s := range r.Sales {
		proceeds += s.Cost()
	}
	return r.Position.SignedProfit(proceeds, r.Purchase.Cost())
}

// RealizedProfitAndLossPercent is the realized P&L as a percentage of the
// purchase cost. It is nil unless the position is fully closed, and nil when
// the purchase cost is zero.
func (r *StockRecord) RealizedProfitAndLossPercent() *float64 {
	if !r.IsFullyClosed() {
		return nil
	}
	cost := r.Purchase.Cost()
	if cost == 0 {
		return nil
	}
	pct := r.RealizedProfitAndLoss() / cost * 100
	return &pct
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
