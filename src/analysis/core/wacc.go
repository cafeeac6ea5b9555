package core

import "wacc-calculator/src/models"

// -----------------------------------------------------------------------------

// CalculateWACC computes the weighted average cost of capital from resolved
// numeric inputs. Pure and deterministic; no I/O.
func CalculateWACC(in models.MWaccInputs) models.MWaccResult {
	equityValue := in.EquityValue

	// Negative debt is clamped; debt cannot be negative in this model.
	debtValue := in.TotalDebt
	if debtValue < 0 {
		debtValue = 0
	}

	totalCapital := equityValue + debtValue

	equityWeight := 0.0
	debtWeight := 0.0
	if totalCapital != 0 {
		equityWeight = equityValue / totalCapital
		debtWeight = debtValue / totalCapital
	}

	// CAPM
	costOfEquity := in.RiskFreeRate + in.Beta*in.MarketRiskPremium

	afterTaxCostOfDebt := in.CostOfDebt * (1 - in.TaxRate)

	wacc := equityWeight*costOfEquity + debtWeight*afterTaxCostOfDebt

	return models.MWaccResult{
		EquityWeight:       equityWeight,
		DebtWeight:         debtWeight,
		CostOfEquity:       costOfEquity,
		AfterTaxCostOfDebt: afterTaxCostOfDebt,
		Wacc:               wacc,
	}
}
