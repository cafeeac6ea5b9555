package models

// MWaccInputs are the resolved numeric inputs of one WACC computation.
// All rates are decimals (0.04 = 4%).
type MWaccInputs struct {
	EquityValue       float64 `json:"equity_value"`
	TotalDebt         float64 `json:"total_debt"`
	RiskFreeRate      float64 `json:"risk_free_rate"`
	MarketRiskPremium float64 `json:"market_risk_premium"`
	CostOfDebt        float64 `json:"cost_of_debt"`
	TaxRate           float64 `json:"tax_rate"`
	Beta              float64 `json:"beta"`
}

// MWaccResult holds the derived weights and cost components.
type MWaccResult struct {
	EquityWeight       float64 `json:"equity_weight"`
	DebtWeight         float64 `json:"debt_weight"`
	CostOfEquity       float64 `json:"cost_of_equity"`
	AfterTaxCostOfDebt float64 `json:"after_tax_cost_of_debt"`
	Wacc               float64 `json:"wacc"`
}
