package yahoo

import "encoding/json"

// -----------------------------------------------------------------------------
// Yahoo Finance API response shapes. Numeric fields use pointers to handle null.
// -----------------------------------------------------------------------------

type yahooAPIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// -----------------------------------------------------------------------------
// v7 quote endpoint (snapshot)
// -----------------------------------------------------------------------------

type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []yahooQuoteResult `json:"result"`
		Error  *yahooAPIError     `json:"error"`
	} `json:"quoteResponse"`
}

type yahooQuoteResult struct {
	Symbol                     string   `json:"symbol"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	SharesOutstanding          *float64 `json:"sharesOutstanding"`
	MarketCap                  *float64 `json:"marketCap"`
	Beta                       *float64 `json:"beta"`
}

// -----------------------------------------------------------------------------
// v8 chart endpoint (historical closes, price fallback)
// -----------------------------------------------------------------------------

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"` // Use pointers to handle null
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooAPIError `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------
// v10 quoteSummary endpoint (extended company info and balance sheets)
// -----------------------------------------------------------------------------

// yahooRawValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} wrapper.
// An empty object means the figure exists but carries no number.
type yahooRawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type yahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []yahooQuoteSummaryResult `json:"result"`
		Error  *yahooAPIError            `json:"error"`
	} `json:"quoteSummary"`
}

type yahooQuoteSummaryResult struct {
	DefaultKeyStatistics         *yahooKeyStatistics     `json:"defaultKeyStatistics"`
	SummaryDetail                *yahooSummaryDetail     `json:"summaryDetail"`
	BalanceSheetHistory          *yahooBalanceSheetTable `json:"balanceSheetHistory"`
	BalanceSheetHistoryQuarterly *yahooBalanceSheetTable `json:"balanceSheetHistoryQuarterly"`
}

type yahooKeyStatistics struct {
	Beta              *yahooRawValue `json:"beta"`
	SharesOutstanding *yahooRawValue `json:"sharesOutstanding"`
}

type yahooSummaryDetail struct {
	Beta      *yahooRawValue `json:"beta"`
	MarketCap *yahooRawValue `json:"marketCap"`
}

// yahooBalanceSheetTable keeps statements as raw key/value pairs so the row
// labels can be matched generically, most recent reporting period first.
type yahooBalanceSheetTable struct {
	BalanceSheetStatements []map[string]json.RawMessage `json:"balanceSheetStatements"`
}
