package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Input Form
// -----------------------------------------------------------------------------

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>WACC Calculator</title>
	<style>
		body { font-family: sans-serif; max-width: 640px; margin: 2em auto; }
		label { display: block; margin-top: 0.8em; }
		input { width: 12em; }
		#result { margin-top: 1.5em; white-space: pre-wrap; font-family: monospace; }
		.error { color: #b00020; }
	</style>
</head>
<body>
	<h1>Weighted Average Cost of Capital</h1>
	<p>Enter a ticker and your assumptions to compute WACC. All rates are
	entered as percentages. Fetched data is cached for {{.CacheTTLSeconds}}
	seconds; if the upstream rate-limits, wait briefly or supply a manual
	market cap override.</p>

	<form id="wacc-form">
		<label>Ticker <input name="ticker" value="AAPL"></label>
		<label>Risk-free rate (%) <input name="risk_free_rate_pct" type="number" step="0.1" value="{{.Assumptions.RiskFreeRatePct}}"></label>
		<label>Market risk premium (%) <input name="market_risk_premium_pct" type="number" step="0.1" value="{{.Assumptions.MarketRiskPremiumPct}}"></label>
		<label>Cost of debt (%) <input name="cost_of_debt_pct" type="number" step="0.1" value="{{.Assumptions.CostOfDebtPct}}"></label>
		<label>Marginal tax rate (%) <input name="tax_rate_pct" type="number" step="0.1" value="{{.Assumptions.TaxRatePct}}"></label>
		<label>Override market cap ($, 0 = use fetched) <input name="manual_market_cap" type="number" step="1000000" value="0"></label>
		<button type="submit">Calculate WACC</button>
	</form>

	<div id="result"></div>

	<script>
	document.getElementById('wacc-form').addEventListener('submit', async (e) => {
		e.preventDefault();
		const form = e.target;
		const payload = {
			ticker: form.ticker.value,
			risk_free_rate_pct: parseFloat(form.risk_free_rate_pct.value),
			market_risk_premium_pct: parseFloat(form.market_risk_premium_pct.value),
			cost_of_debt_pct: parseFloat(form.cost_of_debt_pct.value),
			tax_rate_pct: parseFloat(form.tax_rate_pct.value),
			manual_market_cap: parseFloat(form.manual_market_cap.value)
		};
		const out = document.getElementById('result');
		out.textContent = 'Calculating...';
		out.classList.remove('error');
		try {
			const resp = await fetch('/api/wacc', {
				method: 'POST',
				headers: {'Content-Type': 'application/json'},
				body: JSON.stringify(payload)
			});
			const data = await resp.json();
			if (!resp.ok) {
				out.classList.add('error');
				out.textContent = data.error + (data.tips ? '\n' + data.tips : '');
				return;
			}
			const r = data.result;
			out.textContent = data.message +
				'\n\nEquity weight: ' + (r.equity_weight * 100).toFixed(2) + '%' +
				'\nDebt weight: ' + (r.debt_weight * 100).toFixed(2) + '%' +
				'\nCost of equity (CAPM): ' + (r.cost_of_equity * 100).toFixed(2) + '%' +
				'\nAfter-tax cost of debt: ' + (r.after_tax_cost_of_debt * 100).toFixed(2) + '%' +
				'\n\nRaw fetch:\n' + JSON.stringify(data.raw_metrics, null, 2);
		} catch (err) {
			out.classList.add('error');
			out.textContent = 'Request failed: ' + err;
		}
	});
	</script>
</body>
</html>
`))

// -----------------------------------------------------------------------------

type formData struct {
	Assumptions     interface{}
	CacheTTLSeconds int
}

// -----------------------------------------------------------------------------

// getForm serves the input form, pre-filled with the configured defaults.
func (s *WaccServer) getForm(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	data := formData{
		Assumptions:     s.Config.Assumptions,
		CacheTTLSeconds: s.Config.Cache.TTLSeconds,
	}
	if err := formTemplate.Execute(c.Writer, data); err != nil {
		s.Logger.Error("Failed to render form: %v", err)
	}
}
