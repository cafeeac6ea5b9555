package yahoo

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"wacc-calculator/src/analysis"
	"wacc-calculator/src/interfaces"
	"wacc-calculator/src/logger"
	"wacc-calculator/src/models"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// statement keys that are metadata, not balance sheet rows
var metaKeys = map[string]struct{}{
	"endDate": {},
	"maxAge":  {},
}

// -----------------------------------------------------------------------------

type YahooFinanceSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
	baseURL string
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(cfg *models.MConfig, netMgr interfaces.INetworkManager) *YahooFinanceSource {
	baseURL := cfg.DataSource.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &YahooFinanceSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  logger.NewLogger(nil, "YahooFinanceSource"),
		baseURL: baseURL,
	}
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) Name() string {
	if s.Config.DataSource.Name != "" {
		return s.Config.DataSource.Name
	}
	return "yahoo"
}

// -----------------------------------------------------------------------------

// FetchTickerMetrics assembles the flat metrics record for one symbol.
// Each upstream call may fail independently; a failure only leaves the
// corresponding fields nil.
func (s *YahooFinanceSource) FetchTickerMetrics(symbol string) models.MTickerMetrics {
	metrics := models.MTickerMetrics{
		Symbol:    symbol,
		FetchedAt: time.Now().UTC(),
	}

	// 1. Quote snapshot: last price, falling back to previous close.
	snapshot, err := s.fetchQuoteSnapshot(symbol)
	if err != nil {
		s.Logger.Warning("Quote snapshot failed for %s: %v", symbol, err)
		snapshot = yahooQuoteResult{}
	}

	metrics.Price = snapshot.RegularMarketPrice
	if metrics.Price == nil {
		metrics.Price = snapshot.RegularMarketPreviousClose
	}

	// 2. No snapshot price: latest close from recent trading days.
	if metrics.Price == nil {
		if close, err := s.fetchRecentClose(symbol); err != nil {
			s.Logger.Warning("History fallback failed for %s: %v", symbol, err)
		} else {
			metrics.Price = close
		}
	}

	// 3. Shares outstanding and market cap, deriving the latter when possible.
	metrics.SharesOutstanding = snapshot.SharesOutstanding
	metrics.MarketCap = snapshot.MarketCap
	if metrics.MarketCap == nil && metrics.Price != nil &&
		metrics.SharesOutstanding != nil && *metrics.SharesOutstanding != 0 {
		derived := *metrics.Price * *metrics.SharesOutstanding
		metrics.MarketCap = &derived
	}

	// 4. Beta from the extended company info, falling back to the snapshot.
	if beta, err := s.fetchBeta(symbol); err != nil {
		s.Logger.Warning("Company info failed for %s: %v", symbol, err)
	} else if beta != nil {
		metrics.Beta = beta
	}
	if metrics.Beta == nil {
		metrics.Beta = snapshot.Beta
	}

	// 5+6. Balance sheet (annual, else quarterly) and debt extraction.
	sheet, err := s.fetchBalanceSheet(symbol)
	if err != nil {
		s.Logger.Warning("Balance sheet failed for %s: %v", symbol, err)
	} else {
		metrics.TotalDebt = analysis.ExtractTotalDebt(sheet)
	}

	return metrics
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) fetchQuoteSnapshot(symbol string) (yahooQuoteResult, error) {
	url := fmt.Sprintf("%s/v7/finance/quote", s.baseURL)
	params := map[string]string{
		"symbols": symbol,
		"fields":  "regularMarketPrice,regularMarketPreviousClose,sharesOutstanding,marketCap,beta",
	}

	body, err := s.Network.Get(url, params)
	if err != nil {
		return yahooQuoteResult{}, fmt.Errorf("network error for %s: %w", symbol, err)
	}

	var resp yahooQuoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return yahooQuoteResult{}, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.QuoteResponse.Error != nil {
		return yahooQuoteResult{}, fmt.Errorf("yahoo api error: %s - %s",
			resp.QuoteResponse.Error.Code, resp.QuoteResponse.Error.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return yahooQuoteResult{}, fmt.Errorf("no quote result for %s", symbol)
	}

	return resp.QuoteResponse.Result[0], nil
}

// -----------------------------------------------------------------------------

// fetchRecentClose returns the latest non-null daily close over the configured
// fallback window (5 trading days unless overridden).
func (s *YahooFinanceSource) fetchRecentClose(symbol string) (*float64, error) {
	days := s.Config.DataSource.HistoryDays
	if days <= 0 {
		days = 5
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s", s.baseURL, symbol)
	params := map[string]string{
		"range":          fmt.Sprintf("%dd", days),
		"interval":       "1d",
		"includePrePost": "false",
	}

	body, err := s.Network.Get(url, params)
	if err != nil {
		return nil, fmt.Errorf("network error for %s: %w", symbol, err)
	}

	var resp yahooChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %s", symbol)
	}

	quotes := resp.Chart.Result[0].Indicators.Quote
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no quote data in response for %s", symbol)
	}

	closes := quotes[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			value := *closes[i]
			return &value, nil
		}
	}

	return nil, fmt.Errorf("no valid close for %s", symbol)
}

// -----------------------------------------------------------------------------

// fetchBeta pulls the extended company info and returns its beta, preferring
// the key statistics module over the summary detail.
func (s *YahooFinanceSource) fetchBeta(symbol string) (*float64, error) {
	result, err := s.fetchQuoteSummary(symbol, "defaultKeyStatistics,summaryDetail")
	if err != nil {
		return nil, err
	}

	if result.DefaultKeyStatistics != nil && result.DefaultKeyStatistics.Beta != nil {
		if raw := result.DefaultKeyStatistics.Beta.Raw; raw != nil {
			return raw, nil
		}
	}
	if result.SummaryDetail != nil && result.SummaryDetail.Beta != nil {
		if raw := result.SummaryDetail.Beta.Raw; raw != nil {
			return raw, nil
		}
	}

	return nil, nil
}

// -----------------------------------------------------------------------------

// fetchBalanceSheet prefers the annual statement table and falls back to the
// quarterly one when the annual table is empty.
func (s *YahooFinanceSource) fetchBalanceSheet(symbol string) (models.MBalanceSheet, error) {
	result, err := s.fetchQuoteSummary(symbol, "balanceSheetHistory,balanceSheetHistoryQuarterly")
	if err != nil {
		return models.MBalanceSheet{}, err
	}

	for _, table := range []*yahooBalanceSheetTable{
		result.BalanceSheetHistory,
		result.BalanceSheetHistoryQuarterly,
	} {
		if table == nil {
			continue
		}
		sheet := buildBalanceSheet(table.BalanceSheetStatements)
		if !sheet.Empty() {
			return sheet, nil
		}
	}

	return models.MBalanceSheet{}, nil
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) fetchQuoteSummary(symbol, modules string) (yahooQuoteSummaryResult, error) {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s", s.baseURL, symbol)
	params := map[string]string{
		"modules": modules,
	}

	body, err := s.Network.Get(url, params)
	if err != nil {
		return yahooQuoteSummaryResult{}, fmt.Errorf("network error for %s: %w", symbol, err)
	}

	var resp yahooQuoteSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return yahooQuoteSummaryResult{}, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.QuoteSummary.Error != nil {
		return yahooQuoteSummaryResult{}, fmt.Errorf("yahoo api error: %s - %s",
			resp.QuoteSummary.Error.Code, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return yahooQuoteSummaryResult{}, fmt.Errorf("no quoteSummary result for %s", symbol)
	}

	return resp.QuoteSummary.Result[0], nil
}

// -----------------------------------------------------------------------------

// buildBalanceSheet converts Yahoo's statement objects into a row-labelled
// table. Statements arrive most recent first; a key missing from a statement
// (or an empty value object) becomes a NaN cell.
func buildBalanceSheet(statements []map[string]json.RawMessage) models.MBalanceSheet {
	if len(statements) == 0 {
		return models.MBalanceSheet{}
	}

	// Collect row labels in first-seen order across statements.
	var labels []string
	seen := make(map[string]struct{})
	for _, stmt := range statements {
		for key := range stmt {
			if _, meta := metaKeys[key]; meta {
				continue
			}
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				labels = append(labels, key)
			}
		}
	}

	sheet := models.MBalanceSheet{}
	for _, label := range labels {
		row := models.MBalanceSheetRow{Label: label}
		for _, stmt := range statements {
			row.Values = append(row.Values, parseStatementCell(stmt[label]))
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	return sheet
}

// -----------------------------------------------------------------------------

// parseStatementCell reads a single statement value, accepting both the
// {"raw": n} wrapper and a bare number. Anything else is NaN.
func parseStatementCell(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return math.NaN()
	}

	var wrapped yahooRawValue
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Raw != nil {
		return *wrapped.Raw
	}

	var direct float64
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct
	}

	return math.NaN()
}
