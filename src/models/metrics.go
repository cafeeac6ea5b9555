package models

import "time"

// MTickerMetrics is the flat record assembled from the data source for one symbol.
// Pointer fields stay nil when the upstream data was missing; the caller decides
// the fallback (beta defaults to 1.0, total debt to 0.0).
type MTickerMetrics struct {
	Symbol            string    `json:"symbol"`
	Price             *float64  `json:"price"`
	SharesOutstanding *float64  `json:"shares_outstanding"`
	MarketCap         *float64  `json:"market_cap"`
	Beta              *float64  `json:"beta"`
	TotalDebt         *float64  `json:"total_debt"`
	FetchedAt         time.Time `json:"fetched_at"`
}

// -----------------------------------------------------------------------------
// Balance Sheet Table
// -----------------------------------------------------------------------------

// MBalanceSheetRow is one labelled line of a balance sheet.
// Values are ordered most recent reporting period first; NaN marks a missing cell.
type MBalanceSheetRow struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// MBalanceSheet is a row-labelled, column-dated numeric table.
type MBalanceSheet struct {
	Rows []MBalanceSheetRow `json:"rows"`
}

// -----------------------------------------------------------------------------

func (b MBalanceSheet) Empty() bool {
	return len(b.Rows) == 0
}
