package analysis

import (
	"wacc-calculator/src/analysis/core"
	"wacc-calculator/src/helpers"
	"wacc-calculator/src/logger"
	"wacc-calculator/src/models"
)

// -----------------------------------------------------------------------------
// WaccFacade
// -----------------------------------------------------------------------------

// WaccFacade turns a fetched metrics record plus user assumptions into a
// computed WACC result, applying the documented fallbacks.
type WaccFacade struct {
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewWaccFacade(log *logger.Logger) *WaccFacade {
	return &WaccFacade{Logger: log}
}

// -----------------------------------------------------------------------------

// Assumptions are the user-entered rates, already converted to decimals.
type Assumptions struct {
	RiskFreeRate      float64
	MarketRiskPremium float64
	CostOfDebt        float64
	TaxRate           float64
	// ManualMarketCap overrides the fetched market cap when > 0.
	ManualMarketCap float64
}

// -----------------------------------------------------------------------------

// ResolveInputs merges a metrics record with the user assumptions.
// A manual market cap, when supplied, always wins over the fetched value.
// Missing beta defaults to 1.0 and missing debt to 0.0; a market cap that is
// neither fetched nor overridden (or not positive) is a validation error.
func (f *WaccFacade) ResolveInputs(metrics models.MTickerMetrics, a Assumptions) (models.MWaccInputs, error) {
	marketCap := a.ManualMarketCap
	if marketCap <= 0 && metrics.MarketCap != nil {
		marketCap = *metrics.MarketCap
	}
	if marketCap <= 0 {
		return models.MWaccInputs{}, helpers.NewValidationError(
			"unable to retrieve market capitalization for %s; if the data source is rate limiting, try again in a minute or set a manual override", metrics.Symbol)
	}

	beta := 1.0
	if metrics.Beta != nil {
		beta = *metrics.Beta
	} else {
		f.Logger.Info("No beta for %s, defaulting to 1.0", metrics.Symbol)
	}

	totalDebt := 0.0
	if metrics.TotalDebt != nil {
		totalDebt = *metrics.TotalDebt
	} else {
		f.Logger.Info("No total debt for %s, defaulting to 0.0", metrics.Symbol)
	}

	return models.MWaccInputs{
		EquityValue:       marketCap,
		TotalDebt:         totalDebt,
		RiskFreeRate:      a.RiskFreeRate,
		MarketRiskPremium: a.MarketRiskPremium,
		CostOfDebt:        a.CostOfDebt,
		TaxRate:           a.TaxRate,
		Beta:              beta,
	}, nil
}

// -----------------------------------------------------------------------------

// Compute resolves the inputs and runs the WACC arithmetic in one step.
func (f *WaccFacade) Compute(metrics models.MTickerMetrics, a Assumptions) (models.MWaccInputs, models.MWaccResult, error) {
	inputs, err := f.ResolveInputs(metrics, a)
	if err != nil {
		return models.MWaccInputs{}, models.MWaccResult{}, err
	}
	return inputs, core.CalculateWACC(inputs), nil
}
