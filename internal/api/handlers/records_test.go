package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mnakahara/trade-journal-backend/internal/api/handlers"
	"github.com/mnakahara/trade-journal-backend/internal/api/request"
	"github.com/mnakahara/trade-journal-backend/internal/testutil"
)

func createRecordBody() request.CreateRecordRequest {
	return request.CreateRecordRequest{
		Code:     "7203",
		Market:   "tokyo",
		Name:     "Toyota Motor",
		Position: "buy",
		Purchase: request.LegRequest{
			Amount:  2500,
			Shares:  100,
			Date:    "2024-01-10",
			Emotion: "confident",
			Reason:  "breakout above resistance",
		},
	}
}

func TestCreateAndGetRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewRecordHandler(testutil.NewTestRecordService(t, db))

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/records", createRecordBody(), nil)
	rec := httptest.NewRecorder()
	handler.CreateRecord(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created handlers.RecordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if created.Code != "7203" || created.Purchase.Shares != 100 {
		t.Errorf("Unexpected record: %+v", created)
	}
	if created.HoldingPeriodDays != -1 {
		t.Errorf("Open position must report holding period -1, got %d", created.HoldingPeriodDays)
	}

	getReq := testutil.NewRequestWithURLParams(http.MethodGet,
		"/api/records/"+created.ID, map[string]string{"uuid": created.ID})
	getRec := httptest.NewRecorder()
	handler.Record(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", getRec.Code, getRec.Body.String())
	}

	var fetched handlers.RecordResponse
	if err := json.Unmarshal(getRec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if fetched.ID != created.ID || fetched.Purchase.Reason != "breakout above resistance" {
		t.Errorf("Unexpected record: %+v", fetched)
	}
}

func TestCreateRecordValidationFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewRecordHandler(testutil.NewTestRecordService(t, db))

	body := createRecordBody()
	body.Market = "nasdaq"

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/records", body, nil)
	rec := httptest.NewRecorder()
	handler.CreateRecord(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	testutil.AssertRowCount(t, db, "stock_record", 0)
}

func TestGetRecordNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewRecordHandler(testutil.NewTestRecordService(t, db))

	id := testutil.MakeID()
	req := testutil.NewRequestWithURLParams(http.MethodGet,
		"/api/records/"+id, map[string]string{"uuid": id})
	rec := httptest.NewRecorder()
	handler.Record(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAddSaleOversellRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewRecordHandler(testutil.NewTestRecordService(t, db))

	built := testutil.NewRecord().WithPurchase(1000, 100, "2024-01-10").Build(t, db)

	sale := request.LegRequest{Amount: 1100, Shares: 101, Date: "2024-02-01", Emotion: "satisfied"}
	req := testutil.NewJSONRequest(t, http.MethodPost,
		"/api/records/"+built.ID+"/sales", sale, map[string]string{"uuid": built.ID})
	rec := httptest.NewRecorder()
	handler.AddSale(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	testutil.AssertRowCount(t, db, "trade_leg", 1)
}

func TestAddSaleClosesPosition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewRecordHandler(testutil.NewTestRecordService(t, db))

	built := testutil.NewRecord().WithPurchase(2500, 100, "2024-01-10").Build(t, db)

	sale := request.LegRequest{Amount: 2800, Shares: 100, Date: "2024-06-20", Emotion: "satisfied"}
	req := testutil.NewJSONRequest(t, http.MethodPost,
		"/api/records/"+built.ID+"/sales", sale, map[string]string{"uuid": built.ID})
	rec := httptest.NewRecorder()
	handler.AddSale(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp handlers.RecordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !resp.IsFullyClosed {
		t.Error("Expected the position to be fully closed")
	}
	if resp.RealizedPnL != 30000 {
		t.Errorf("Expected realized P&L 30000, got %v", resp.RealizedPnL)
	}
	if resp.RealizedPnLPercent == nil || *resp.RealizedPnLPercent != 12 {
		t.Errorf("Expected realized P&L percent 12, got %v", resp.RealizedPnLPercent)
	}
}

func TestDeleteRecordEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewRecordHandler(testutil.NewTestRecordService(t, db))

	built := testutil.NewRecord().Build(t, db)

	req := testutil.NewRequestWithURLParams(http.MethodDelete,
		"/api/records/"+built.ID, map[string]string{"uuid": built.ID})
	rec := httptest.NewRecorder()
	handler.DeleteRecord(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	testutil.AssertRowCount(t, db, "stock_record", 0)
}
