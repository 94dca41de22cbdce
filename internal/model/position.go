package model

// Position indicates the direction of a stock record.
// It determines the sign convention for realized profit and loss:
// a long (buy) position profits when proceeds exceed cost, a short
// (sell) position profits when cost exceeds proceeds.
type Position string

const (
	// PositionBuy is a long position: profit = proceeds - cost.
	PositionBuy Position = "buy"

	// PositionSell is a short position: profit = cost - proceeds.
	PositionSell Position = "sell"
)

// Valid reports whether p is one of the known position values.
func (p Position) Valid() bool {
	return p == PositionBuy || p == PositionSell
}

// SignedProfit applies the position's sign convention to a cost/proceeds pair.
func (p Position) SignedProfit(proceeds, cost float64) float64 {
	if p == PositionSell {
		return cost - proceeds
	}
	return proceeds - cost
}
