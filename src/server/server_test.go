package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wacc-calculator/src/analysis"
	"wacc-calculator/src/logger"
	"wacc-calculator/src/models"
)

// -----------------------------------------------------------------------------
// Test doubles
// -----------------------------------------------------------------------------

type stubMetrics struct {
	record models.MTickerMetrics
}

func (s *stubMetrics) Name() string { return "stub" }

func (s *stubMetrics) Lookup(symbol string) (models.MTickerMetrics, bool) {
	rec := s.record
	rec.Symbol = symbol
	return rec, false
}

// -----------------------------------------------------------------------------

type memoryDB struct {
	saved    []models.MCalculationRecord
	cleanups int
}

func (m *memoryDB) Initialize() error { return nil }

func (m *memoryDB) SaveCalculation(rec models.MCalculationRecord) error {
	m.saved = append(m.saved, rec)
	return nil
}

func (m *memoryDB) RecentCalculations(limit int) ([]models.MCalculationRecord, error) {
	if limit > len(m.saved) {
		limit = len(m.saved)
	}
	return m.saved[:limit], nil
}

func (m *memoryDB) CleanupOldData() error {
	m.cleanups++
	return nil
}

func (m *memoryDB) Close() error { return nil }

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func fptr(v float64) *float64 { return &v }

func newTestServer(metrics MetricsProvider, db *memoryDB) *WaccServer {
	cfg := &models.MConfig{
		Name:     "wacc-calculator",
		Host:     "127.0.0.1",
		Port:     8010,
		LogLevel: "INFO",
		Cache:    models.MCacheConfig{TTLSeconds: 300},
		Assumptions: models.MAssumptionDefaults{
			RiskFreeRatePct:      4.0,
			MarketRiskPremiumPct: 5.0,
			CostOfDebtPct:        4.0,
			TaxRatePct:           25.0,
		},
	}
	log := logger.NewLogger(nil, "ServerTest")

	if db == nil {
		return NewWaccServer(cfg, log, metrics, analysis.NewWaccFacade(log), nil)
	}
	return NewWaccServer(cfg, log, metrics, analysis.NewWaccFacade(log), db)
}

func postJSON(t *testing.T, srv *WaccServer, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func getPath(srv *WaccServer, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

func TestPostWacc_Success(t *testing.T) {
	metrics := &stubMetrics{record: models.MTickerMetrics{
		MarketCap: fptr(800.0),
		TotalDebt: fptr(200.0),
		Beta:      fptr(1.2),
		FetchedAt: time.Now().UTC(),
	}}
	db := &memoryDB{}
	srv := newTestServer(metrics, db)

	w := postJSON(t, srv, "/api/wacc", models.MWaccRequest{
		Ticker:               "aapl",
		RiskFreeRatePct:      4.0,
		MarketRiskPremiumPct: 5.0,
		CostOfDebtPct:        4.0,
		TaxRatePct:           25.0,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.MWaccResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "AAPL", resp.Symbol)
	assert.Contains(t, resp.Message, "WACC for AAPL")
	assert.InDelta(t, 0.8, resp.Result.EquityWeight, 1e-9)
	assert.InDelta(t, 0.2, resp.Result.DebtWeight, 1e-9)
	assert.InDelta(t, 0.10, resp.Result.CostOfEquity, 1e-9)
	assert.InDelta(t, 0.03, resp.Result.AfterTaxCostOfDebt, 1e-9)
	assert.InDelta(t, 0.086, resp.Result.Wacc, 1e-9)

	require.Len(t, db.saved, 1)
	assert.Equal(t, "AAPL", db.saved[0].Symbol)
	assert.Equal(t, 1, db.cleanups)
}

func TestPostWacc_EmptyTicker(t *testing.T) {
	srv := newTestServer(&stubMetrics{}, nil)

	w := postJSON(t, srv, "/api/wacc", models.MWaccRequest{Ticker: "   "})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ticker symbol")
}

func TestPostWacc_UnresolvableMarketCap(t *testing.T) {
	// No market cap, no price+shares to derive one, no manual override.
	srv := newTestServer(&stubMetrics{}, nil)

	w := postJSON(t, srv, "/api/wacc", models.MWaccRequest{
		Ticker:               "MSFT",
		RiskFreeRatePct:      4.0,
		MarketRiskPremiumPct: 5.0,
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "tips")
}

func TestPostWacc_ManualOverride(t *testing.T) {
	srv := newTestServer(&stubMetrics{}, nil)

	w := postJSON(t, srv, "/api/wacc", models.MWaccRequest{
		Ticker:               "MSFT",
		RiskFreeRatePct:      4.0,
		MarketRiskPremiumPct: 5.0,
		ManualMarketCap:      1000.0,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.MWaccResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Missing beta defaults to 1.0, missing debt to zero.
	assert.Equal(t, 1000.0, resp.Inputs.EquityValue)
	assert.Equal(t, 0.0, resp.Inputs.TotalDebt)
	assert.Equal(t, 1.0, resp.Inputs.Beta)
	assert.InDelta(t, 1.0, resp.Result.EquityWeight, 1e-9)
	assert.InDelta(t, 0.09, resp.Result.Wacc, 1e-9)
}

func TestGetHistory(t *testing.T) {
	db := &memoryDB{saved: []models.MCalculationRecord{
		{Symbol: "AAPL", Wacc: 0.086},
		{Symbol: "MSFT", Wacc: 0.091},
	}}
	srv := newTestServer(&stubMetrics{}, db)

	w := getPath(srv, "/api/history?limit=1")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Calculations []models.MCalculationRecord `json:"calculations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Calculations, 1)
	assert.Equal(t, "AAPL", resp.Calculations[0].Symbol)
}

func TestGetHistory_NoDatabase(t *testing.T) {
	srv := newTestServer(&stubMetrics{}, nil)

	w := getPath(srv, "/api/history")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"calculations":[]`)
}

func TestGetConfig(t *testing.T) {
	srv := newTestServer(&stubMetrics{}, nil)

	w := getPath(srv, "/api/config")

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "stub", resp["data_source"])
	assert.Equal(t, 300.0, resp["cache_ttl_seconds"])
}

func TestGetHealth(t *testing.T) {
	srv := newTestServer(&stubMetrics{}, nil)

	w := getPath(srv, "/api/health")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestGetForm(t *testing.T) {
	srv := newTestServer(&stubMetrics{}, nil)

	w := getPath(srv, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "WACC")
	assert.Contains(t, w.Body.String(), "/api/wacc")
}
