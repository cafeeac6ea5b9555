package models

// -----------------------------------------------------------------------------
// Form Submission
// -----------------------------------------------------------------------------

// MWaccRequest is one form submission. Rates arrive as percentages;
// ManualMarketCap of 0 means "use the fetched value".
type MWaccRequest struct {
	Ticker               string  `json:"ticker" form:"ticker"`
	RiskFreeRatePct      float64 `json:"risk_free_rate_pct" form:"risk_free_rate_pct"`
	MarketRiskPremiumPct float64 `json:"market_risk_premium_pct" form:"market_risk_premium_pct"`
	CostOfDebtPct        float64 `json:"cost_of_debt_pct" form:"cost_of_debt_pct"`
	TaxRatePct           float64 `json:"tax_rate_pct" form:"tax_rate_pct"`
	ManualMarketCap      float64 `json:"manual_market_cap" form:"manual_market_cap"`
}

// MWaccResponse is the rendered result of one fetch+compute cycle.
type MWaccResponse struct {
	Message    string         `json:"message"`
	Symbol     string         `json:"symbol"`
	Inputs     MWaccInputs    `json:"inputs"`
	Result     MWaccResult    `json:"result"`
	RawMetrics MTickerMetrics `json:"raw_metrics"`
	Metrics    MFetchMetrics  `json:"processing_metrics"`
}
