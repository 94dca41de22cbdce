package marketdata

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/model"
)

// mockAPI serves canned responses for the endpoints the client hits.
func mockAPI(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func TestRefreshIDToken(t *testing.T) {
	client := mockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/token/auth_refresh" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("refreshtoken") != "my-refresh-token" {
			t.Errorf("Missing refresh token in query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"idToken": "short-lived-token"}`))
	})

	token, err := client.RefreshIDToken("my-refresh-token")
	if err != nil {
		t.Fatalf("RefreshIDToken failed: %v", err)
	}
	if token != "short-lived-token" {
		t.Errorf("Expected the issued token, got %q", token)
	}
}

func TestRefreshIDTokenRejected(t *testing.T) {
	client := mockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "The incoming token is invalid"}`, http.StatusBadRequest)
	})

	_, err := client.RefreshIDToken("expired")
	if !errors.Is(err, apperrors.ErrMarketDataUnavailable) {
		t.Errorf("Expected ErrMarketDataUnavailable, got %v", err)
	}
}

func TestFetchChartSeries(t *testing.T) {
	client := mockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prices/daily_quotes" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer id-token" {
			t.Errorf("Expected bearer auth, got %q", got)
		}
		if got := r.URL.Query().Get("code"); got != "7203.T" {
			t.Errorf("Expected ticker-suffix symbol, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"daily_quotes": [
			{"Date": "2024-03-01", "Code": "7203", "Open": 100, "High": 110, "Low": 95, "Close": 105, "Volume": 1000},
			{"Date": "2024-03-04", "Code": "7203", "Open": 105, "High": 115, "Low": 104, "Close": 112, "Volume": 1500}
		]}`))
	})

	series, err := client.FetchChartSeries("id-token", "7203", "T",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FetchChartSeries failed: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("Expected 2 quotes, got %d", len(series))
	}
	if series[0].Close != 105 || series[1].Volume != 1500 {
		t.Errorf("Unexpected series: %+v", series)
	}
}

func TestFetchChartSeriesEmpty(t *testing.T) {
	client := mockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"daily_quotes": []}`))
	})

	_, err := client.FetchChartSeries("id-token", "0000", "T",
		time.Now().AddDate(0, -1, 0), time.Now())
	if !errors.Is(err, apperrors.ErrMarketDataUnavailable) {
		t.Errorf("Expected ErrMarketDataUnavailable for empty series, got %v", err)
	}
}

func TestFetchListedSecurities(t *testing.T) {
	client := mockAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/listed/info" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"info": [
			{"Code": "7203", "CompanyName": "Toyota Motor", "MarketCode": "0111", "Sector17CodeName": "Automobiles"},
			{"Code": "", "CompanyName": "blank row", "MarketCode": "0111"},
			{"Code": "8954", "CompanyName": "Some REIT", "MarketCode": "0701"}
		]}`))
	})

	securities, err := client.FetchListedSecurities("id-token")
	if err != nil {
		t.Fatalf("FetchListedSecurities failed: %v", err)
	}
	if len(securities) != 2 {
		t.Fatalf("Expected rows without a code to be dropped, got %d", len(securities))
	}
	if securities[0].Market != model.MarketTokyo || securities[0].Sector != "Automobiles" {
		t.Errorf("Unexpected security: %+v", securities[0])
	}
	// Unknown market codes fall back to the catch-all market.
	if securities[1].Market != model.MarketOther {
		t.Errorf("Expected unknown market code to map to other, got %s", securities[1].Market)
	}
}

func TestQuoteForDate(t *testing.T) {
	series := []model.OHLCV{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Close: 105},
		{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Close: 112},
	}

	quote, ok := QuoteForDate(series, time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC))
	if !ok || quote.Close != 112 {
		t.Errorf("Expected the March 4 quote, got %+v ok=%v", quote, ok)
	}

	if _, ok := QuoteForDate(series, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)); ok {
		t.Error("Expected no quote for a missing day")
	}
}
