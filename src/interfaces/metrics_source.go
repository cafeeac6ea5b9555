package interfaces

import "wacc-calculator/src/models"

// -----------------------------------------------------------------------------
// IMetricsSource interface for resolving ticker metrics from an external source.
// -----------------------------------------------------------------------------

type IMetricsSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// FetchTickerMetrics resolves the metrics needed for WACC for one symbol.
	// Fields that the upstream could not provide are left nil on the record;
	// missing data is never an error.
	FetchTickerMetrics(symbol string) models.MTickerMetrics
}
