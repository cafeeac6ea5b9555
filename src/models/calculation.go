package models

import "time"

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

// MFetchMetrics describes how the metrics for one request were obtained.
type MFetchMetrics struct {
	FetchSeconds float64 `json:"fetch_seconds"`
	CacheHit     bool    `json:"cache_hit"`
	MarketOpen   bool    `json:"market_open"`
}

// MCalculationEvent is the payload held as server state and pushed to
// websocket clients after each completed computation.
type MCalculationEvent struct {
	Type       string         `json:"type"` // "INITIAL" or "RESULT"
	Symbol     string         `json:"symbol"`
	Inputs     MWaccInputs    `json:"inputs"`
	Result     MWaccResult    `json:"result"`
	RawMetrics MTickerMetrics `json:"raw_metrics"`
	Metrics    MFetchMetrics  `json:"processing_metrics"`
	Timestamp  int64          `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// History Row
// -----------------------------------------------------------------------------

// MCalculationRecord is one persisted computation.
type MCalculationRecord struct {
	ID                 int64     `json:"id"`
	Symbol             string    `json:"symbol"`
	MarketCap          float64   `json:"market_cap"`
	TotalDebt          float64   `json:"total_debt"`
	Beta               float64   `json:"beta"`
	RiskFreeRate       float64   `json:"risk_free_rate"`
	MarketRiskPremium  float64   `json:"market_risk_premium"`
	CostOfDebt         float64   `json:"cost_of_debt"`
	TaxRate            float64   `json:"tax_rate"`
	EquityWeight       float64   `json:"equity_weight"`
	DebtWeight         float64   `json:"debt_weight"`
	CostOfEquity       float64   `json:"cost_of_equity"`
	AfterTaxCostOfDebt float64   `json:"after_tax_cost_of_debt"`
	Wacc               float64   `json:"wacc"`
	CreatedAt          time.Time `json:"created_at"`
}
