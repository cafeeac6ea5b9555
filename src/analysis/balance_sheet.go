package analysis

import (
	"math"
	"strings"

	"wacc-calculator/src/models"
)

// -----------------------------------------------------------------------------
// Balance Sheet Debt Extraction
// -----------------------------------------------------------------------------

// debtLabels is the lookup order for total debt synonyms. The ordering is
// taken as given from the upstream vocabulary and preserved verbatim.
var debtLabels = []string{
	"totaldebt",
	"longtermdebt",
	"shortlongtermdebttotal",
	"longtermdebttotal",
	"shorttermdebttotal",
}

// -----------------------------------------------------------------------------

// NormalizeLabel normalizes a balance sheet row label for matching:
// trimmed, lower-cased, spaces and underscores removed.
func NormalizeLabel(label string) string {
	s := strings.TrimSpace(strings.ToLower(label))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}

// -----------------------------------------------------------------------------

// ExtractTotalDebt searches the balance sheet rows for the first label in
// debtLabels order and returns the value of the most recent reporting column.
// A NaN cell means the figure was reported but unusable: the result is
// "no value", not zero. Returns nil when nothing matched.
func ExtractTotalDebt(sheet models.MBalanceSheet) *float64 {
	if sheet.Empty() {
		return nil
	}

	for _, want := range debtLabels {
		for _, row := range sheet.Rows {
			if NormalizeLabel(row.Label) != want {
				continue
			}
			if len(row.Values) == 0 {
				return nil
			}
			value := row.Values[0]
			if math.IsNaN(value) {
				return nil
			}
			return &value
		}
	}

	return nil
}
