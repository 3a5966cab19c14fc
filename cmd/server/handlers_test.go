package main

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kuyumhesap/internal/pricing"
)

func doJSON(t *testing.T, srv *server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter(srv, "").ServeHTTP(rec, req)
	return rec
}

const goldCalculateBody = `{
	"material": "gold",
	"product": {"productGram": 1, "laborMilyem": 0.05},
	"market": {"goldPrice": 5900},
	"expenses": {"shipping": 120, "packaging": 120, "serviceFee": 20, "eCommerceTaxRate": 1.0},
	"scenarios": [
		{"name": "Senaryo 1", "commissionRate": 22, "salePrice": 6000},
		{"name": "Standart", "commissionRate": 22, "targetProfitRate": 15}
	]
}`

func TestHandleCalculate_GoldScenarios(t *testing.T) {
	rec := doJSON(t, newTestServer(t), http.MethodPost, "/calculate", goldCalculateBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results []pricing.Result `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}

	standard := resp.Results[0]
	if standard.Platform != "Standart" {
		t.Fatalf("first result = %q, want Standart first", standard.Platform)
	}
	// Auto-priced from the 15% target before calculating.
	if standard.SalePrice != 6463 {
		t.Fatalf("standard sale price = %v, want 6463", standard.SalePrice)
	}

	custom := resp.Results[1]
	if math.Abs(custom.NetProfit-613.50) > 1e-9 {
		t.Fatalf("net profit = %v, want 613.50", custom.NetProfit)
	}
	if math.Abs(custom.ProfitRate-10.225) > 1e-9 {
		t.Fatalf("profit rate = %v, want 10.225", custom.ProfitRate)
	}
}

func TestHandleCalculate_RejectsUnknownMaterial(t *testing.T) {
	body := `{"material": "platinum", "scenarios": [{"name": "Senaryo 1", "salePrice": 100}]}`
	rec := doJSON(t, newTestServer(t), http.MethodPost, "/calculate", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCalculate_RejectsZeroSalePriceCustomScenario(t *testing.T) {
	body := `{
		"material": "gold",
		"product": {"productGram": 1, "laborMilyem": 0.05},
		"market": {"goldPrice": 5900},
		"expenses": {"shipping": 120},
		"scenarios": [{"name": "Senaryo 1", "commissionRate": 22, "salePrice": 0}]
	}`
	rec := doJSON(t, newTestServer(t), http.MethodPost, "/calculate", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCalculate_SilverRequiresExchangeRate(t *testing.T) {
	body := `{
		"material": "silver",
		"product": {"productGram": 0.8, "laborUsd": 0.5},
		"market": {"silverPrice": 100},
		"expenses": {},
		"scenarios": [{"name": "Senaryo 1", "commissionRate": 22, "salePrice": 500}]
	}`
	rec := doJSON(t, newTestServer(t), http.MethodPost, "/calculate", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStandardSalePrice_DefaultsToStandardRates(t *testing.T) {
	body := `{
		"material": "gold",
		"product": {"productGram": 1, "laborMilyem": 0.05},
		"market": {"goldPrice": 5900},
		"expenses": {"shipping": 120, "packaging": 120, "serviceFee": 20, "eCommerceTaxRate": 1.0}
	}`
	rec := doJSON(t, newTestServer(t), http.MethodPost, "/standard-sale-price", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SalePrice float64 `json:"salePrice"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SalePrice != 6463 {
		t.Fatalf("sale price = %v, want 6463", resp.SalePrice)
	}
}

func TestHandleHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(t), http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("body = %s, want ok:true", rec.Body.String())
	}
}

func TestHandleSync_AcknowledgesSnapshot(t *testing.T) {
	rec := doJSON(t, newTestServer(t), http.MethodPost, "/sync", `{"goldProductInfo": {"productGram": 1}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
