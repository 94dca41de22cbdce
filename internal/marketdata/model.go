package marketdata

// tokenResponse is the raw payload of the token refresh endpoint.
type tokenResponse struct {
	IDToken string  `json:"idToken"`
	Message *string `json:"message"`
}

// quotesResponse is the raw payload of the daily quotes endpoint.
// All price arrays run parallel to Date entries inside each quote row.
type quotesResponse struct {
	DailyQuotes []quoteRow `json:"daily_quotes"`
	Message     *string    `json:"message"`
}

type quoteRow struct {
	Date   string  `json:"Date"`
	Code   string  `json:"Code"`
	Open   float64 `json:"Open"`
	High   float64 `json:"High"`
	Low    float64 `json:"Low"`
	Close  float64 `json:"Close"`
	Volume int64   `json:"Volume"`
}

// listedResponse is the raw payload of the listed-securities endpoint.
type listedResponse struct {
	Info    []listedRow `json:"info"`
	Message *string     `json:"message"`
}

type listedRow struct {
	Code       string `json:"Code"`
	Name       string `json:"CompanyName"`
	MarketCode string `json:"MarketCode"`
	SectorName string `json:"Sector17CodeName"`
}
