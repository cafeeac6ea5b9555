package interfaces

import "wacc-calculator/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defining the interface for sharing results with external systems.
// -----------------------------------------------------------------------------

type IDataExchanger interface {

	// -----------------------------------------------------------------------------

	// Broadcast pushes a completed calculation to connected listeners.
	Broadcast(event models.MCalculationEvent)

	// -----------------------------------------------------------------------------

	// Start the server
	Start() error

	// -----------------------------------------------------------------------------

	// Stop the server gracefully
	Stop() error
}
