package interfaces

import "wacc-calculator/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for the calculation history store.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveCalculation appends one completed computation to the history.
	SaveCalculation(rec models.MCalculationRecord) error

	// -----------------------------------------------------------------------------

	// RecentCalculations returns up to limit rows, newest first.
	RecentCalculations(limit int) ([]models.MCalculationRecord, error)

	// -----------------------------------------------------------------------------

	// CleanupOldData removes rows older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
