package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/mnakahara/trade-journal-backend/internal/apperrors"
	"github.com/mnakahara/trade-journal-backend/internal/marketdata"
	"github.com/mnakahara/trade-journal-backend/internal/model"
	"github.com/mnakahara/trade-journal-backend/internal/repository"
	"github.com/mnakahara/trade-journal-backend/internal/service"
	"github.com/mnakahara/trade-journal-backend/internal/testutil"
)

// chartAPIStub is a fake market-data API that records how many chart
// requests each code produced.
type chartAPIStub struct {
	mu     sync.Mutex
	charts map[string]int
}

func (a *chartAPIStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/token/auth_refresh":
			w.Write([]byte(`{"idToken": "short-lived-token"}`))
		case "/prices/daily_quotes":
			a.mu.Lock()
			a.charts[r.URL.Query().Get("code")]++
			a.mu.Unlock()
			w.Write([]byte(`{"daily_quotes": [
				{"Date": "2024-03-01", "Open": 100, "High": 110, "Low": 95, "Close": 105, "Volume": 1000},
				{"Date": "2024-03-04", "Open": 105, "High": 115, "Low": 104, "Close": 112, "Volume": 1500}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}
}

func (a *chartAPIStub) chartRequests() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for _, n := range a.charts {
		total += n
	}
	return total
}

func newTestMarketdataService(t *testing.T, baseURL string) *service.MarketdataService {
	t.Helper()
	db := testutil.SetupTestDB(t)

	key := &fernet.Key{}
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}

	return service.NewMarketdataService(
		marketdata.NewClient(baseURL),
		repository.NewSecurityRepository(db),
		repository.NewPriceRepository(db),
		repository.NewSettingsRepository(db),
		key,
	)
}

func prefetchRecords() []model.StockRecord {
	return []model.StockRecord{
		{Code: "7203", Market: model.MarketTokyo},
		{Code: "9984", Market: model.MarketTokyo},
		// Same code twice; the prefetch dedups.
		{Code: "7203", Market: model.MarketTokyo},
	}
}

func TestPrefetchChartsWarmsCachePerDistinctCode(t *testing.T) {
	stub := &chartAPIStub{charts: map[string]int{}}
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	svc := newTestMarketdataService(t, server.URL)
	if err := svc.SetRefreshToken("long-lived-token"); err != nil {
		t.Fatalf("SetRefreshToken failed: %v", err)
	}

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	codes, err := svc.PrefetchCharts(context.Background(), prefetchRecords(), start, end)
	if err != nil {
		t.Fatalf("PrefetchCharts failed: %v", err)
	}
	if codes != 2 {
		t.Errorf("Expected 2 distinct codes, got %d", codes)
	}
	if got := stub.chartRequests(); got != 2 {
		t.Errorf("Expected 2 chart requests, got %d", got)
	}

	// A second pass is served from the warmed cache.
	if _, err := svc.PrefetchCharts(context.Background(), prefetchRecords(), start, end); err != nil {
		t.Fatalf("PrefetchCharts failed: %v", err)
	}
	if got := stub.chartRequests(); got != 2 {
		t.Errorf("Expected cached prefetch to skip the API, got %d requests", got)
	}

	series, err := svc.GetChartSeries("9984", model.MarketTokyo, start, end)
	if err != nil {
		t.Fatalf("GetChartSeries failed: %v", err)
	}
	if len(series) != 2 || series[0].Close != 105 {
		t.Errorf("Unexpected cached series: %+v", series)
	}
}

func TestPrefetchChartsWithoutToken(t *testing.T) {
	stub := &chartAPIStub{charts: map[string]int{}}
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	svc := newTestMarketdataService(t, server.URL)

	_, err := svc.PrefetchCharts(context.Background(), prefetchRecords(),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, apperrors.ErrTokenNotConfigured) {
		t.Errorf("Expected ErrTokenNotConfigured, got %v", err)
	}
}
