// Package marketdata is a thin client for the remote market-data API: daily
// price charts for the detail screen and the listed-securities reference
// used for code/name lookups. It does no caching of its own; the service
// layer owns the local cache.
package marketdata

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/model"
)

// Client wraps the remote market-data HTTP API.
type Client struct {
	http *resty.Client
}

// NewClient creates a market-data client against the given API base URL.
func NewClient(baseURL string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient}
}

// RefreshIDToken exchanges the long-lived refresh token for a short-lived ID
// token used on the data endpoints.
func (c *Client) RefreshIDToken(refreshToken string) (string, error) {
	var result tokenResponse

	resp, err := c.http.R().
		SetQueryParam("refreshtoken", refreshToken).
		SetResult(&result).
		Post("/token/auth_refresh")
	if err != nil {
		return "", fmt.Errorf("token refresh request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: token refresh returned status %d", apperrors.ErrMarketDataUnavailable, resp.StatusCode())
	}
	if result.IDToken == "" {
		return "", fmt.Errorf("%w: empty id token", apperrors.ErrMarketDataUnavailable)
	}

	return result.IDToken, nil
}

// FetchChartSeries fetches daily OHLCV data for a code within the inclusive
// date range. The market symbol is appended ticker-suffix style ("7203.T");
// codes on MarketOther go out bare.
func (c *Client) FetchChartSeries(idToken, code, marketSymbol string, startDate, endDate time.Time) ([]model.OHLCV, error) {
	symbol := code
	if marketSymbol != "" {
		symbol = code + "." + marketSymbol
	}

	var result quotesResponse

	resp, err := c.http.R().
		SetAuthToken(idToken).
		SetQueryParams(map[string]string{
			"code": symbol,
			"from": startDate.UTC().Format("2006-01-02"),
			"to":   endDate.UTC().Format("2006-01-02"),
		}).
		SetResult(&result).
		Get("/prices/daily_quotes")
	if err != nil {
		return nil, fmt.Errorf("chart request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: chart request returned status %d", apperrors.ErrMarketDataUnavailable, resp.StatusCode())
	}
	if result.Message != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrMarketDataUnavailable, *result.Message)
	}

	return parseQuotes(result)
}

// FetchListedSecurities fetches the full listed-securities reference data.
func (c *Client) FetchListedSecurities(idToken string) ([]model.SecurityInfo, error) {
	var result listedResponse

	resp, err := c.http.R().
		SetAuthToken(idToken).
		SetResult(&result).
		Get("/listed/info")
	if err != nil {
		return nil, fmt.Errorf("listed securities request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: listed securities request returned status %d", apperrors.ErrMarketDataUnavailable, resp.StatusCode())
	}
	if result.Message != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrMarketDataUnavailable, *result.Message)
	}

	securities := make([]model.SecurityInfo, 0, len(result.Info))
	for _, row := range result.Info {
		if row.Code == "" {
			continue
		}
		securities = append(securities, model.SecurityInfo{
			Code:   row.Code,
			Name:   row.Name,
			Market: marketFromCode(row.MarketCode),
			Sector: row.SectorName,
		})
	}

	return securities, nil
}

// parseQuotes converts the raw quote rows into OHLCV entries, validating
// that every row carries a parseable date.
func parseQuotes(result quotesResponse) ([]model.OHLCV, error) {
	if len(result.DailyQuotes) == 0 {
		return nil, fmt.Errorf("%w: no price data returned", apperrors.ErrMarketDataUnavailable)
	}

	series := make([]model.OHLCV, 0, len(result.DailyQuotes))
	for _, row := range result.DailyQuotes {
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quote date %q: %w", row.Date, err)
		}
		series = append(series, model.OHLCV{
			Date:   date.UTC(),
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}

	return series, nil
}

// QuoteForDate searches a series for the entry matching a specific day.
// Both sides are truncated to day granularity before comparing.
func QuoteForDate(series []model.OHLCV, target time.Time) (model.OHLCV, bool) {
	targetDay := target.UTC().Truncate(24 * time.Hour)
	for _, q := range series {
		if q.Date.UTC().Truncate(24 * time.Hour).Equal(targetDay) {
			return q, true
		}
	}
	return model.OHLCV{}, false
}

// marketFromCode maps the API's market codes onto the journal's markets.
func marketFromCode(code string) model.Market {
	switch code {
	case "0101", "0102", "0104", "0105", "0106", "0107", "0109", "0111", "0112", "0113":
		return model.MarketTokyo
	case "0302", "0303", "0304":
		return model.MarketNagoya
	case "0501":
		return model.MarketSapporo
	case "0401":
		return model.MarketFukuoka
	}
	return model.MarketOther
}
