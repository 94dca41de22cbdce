package model

import "time"

// OHLCV is a single day of price history for a listed security.
type OHLCV struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// SecurityInfo is one entry of the listed-securities reference data used for
// code/name lookups when entering a record.
type SecurityInfo struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Market    Market    `json:"market"`
	Sector    string    `json:"sector,omitempty"`
	FetchedAt time.Time `json:"fetchedAt,omitempty"`
}

// MarketDataConfig reports the state of the market-data integration.
// The refresh token itself is stored encrypted and never leaves the server.
type MarketDataConfig struct {
	Configured      bool       `json:"configured"`
	LastRefreshedAt *time.Time `json:"lastRefreshedAt,omitempty"`
	SecurityCount   int        `json:"securityCount"`
}
