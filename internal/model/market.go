package model

// Market identifies the exchange a stock is listed on.
type Market string

const (
	MarketTokyo   Market = "tokyo"
	MarketNagoya  Market = "nagoya"
	MarketSapporo Market = "sapporo"
	MarketFukuoka Market = "fukuoka"
	MarketOther   Market = "other"
)

// Markets lists all known markets in display order.
func Markets() []Market {
	return []Market{MarketTokyo, MarketNagoya, MarketSapporo, MarketFukuoka, MarketOther}
}

// Valid reports whether m is one of the known market values.
func (m Market) Valid() bool {
	switch m {
	case MarketTokyo, MarketNagoya, MarketSapporo, MarketFukuoka, MarketOther:
		return true
	}
	return false
}

// Symbol returns the short exchange symbol used when querying the chart API
// (ticker suffix style, e.g. "7203.T" for Tokyo). MarketOther has no suffix.
func (m Market) Symbol() string {
	switch m {
	case MarketTokyo:
		return "T"
	case MarketNagoya:
		return "N"
	case MarketSapporo:
		return "S"
	case MarketFukuoka:
		return "F"
	}
	return ""
}

// Color returns the display color associated with the market as a hex string.
func (m Market) Color() string {
	switch m {
	case MarketTokyo:
		return "#D32F2F"
	case MarketNagoya:
		return "#1976D2"
	case MarketSapporo:
		return "#388E3C"
	case MarketFukuoka:
		return "#F57C00"
	}
	return "#757575"
}
