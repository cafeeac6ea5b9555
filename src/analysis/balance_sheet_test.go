package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wacc-calculator/src/models"
)

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Total Debt", "totaldebt"},
		{"total_debt", "totaldebt"},
		{"TOTALDEBT", "totaldebt"},
		{"  Long Term Debt  ", "longtermdebt"},
		{"Short_Long_Term_Debt Total", "shortlongtermdebttotal"},
		{"", ""},
	}

	for _, tt := range cases {
		assert.Equal(t, tt.want, NormalizeLabel(tt.in), "label %q", tt.in)
	}
}

func TestExtractTotalDebt_MatchesSeparatorVariants(t *testing.T) {
	variants := []string{"Total Debt", "total_debt", "TOTALDEBT"}

	for _, label := range variants {
		sheet := models.MBalanceSheet{Rows: []models.MBalanceSheetRow{
			{Label: "Cash", Values: []float64{50_000}},
			{Label: label, Values: []float64{120_000, 110_000}},
		}}

		debt := ExtractTotalDebt(sheet)
		require.NotNil(t, debt, "label %q should match", label)
		assert.Equal(t, 120_000.0, *debt)
	}
}

func TestExtractTotalDebt_PriorityOrder(t *testing.T) {
	// Total debt wins over long-term debt regardless of row order.
	sheet := models.MBalanceSheet{Rows: []models.MBalanceSheetRow{
		{Label: "Long Term Debt", Values: []float64{80_000}},
		{Label: "Total Debt", Values: []float64{95_000}},
	}}

	debt := ExtractTotalDebt(sheet)
	require.NotNil(t, debt)
	assert.Equal(t, 95_000.0, *debt)
}

func TestExtractTotalDebt_UsesMostRecentColumn(t *testing.T) {
	sheet := models.MBalanceSheet{Rows: []models.MBalanceSheetRow{
		{Label: "Long Term Debt", Values: []float64{42_000, 39_000, 35_000}},
	}}

	debt := ExtractTotalDebt(sheet)
	require.NotNil(t, debt)
	assert.Equal(t, 42_000.0, *debt)
}

func TestExtractTotalDebt_NaNMeansNoValue(t *testing.T) {
	sheet := models.MBalanceSheet{Rows: []models.MBalanceSheetRow{
		{Label: "Long Term Debt", Values: []float64{math.NaN(), 39_000}},
	}}

	// NaN in the most recent column is "no value", not zero.
	assert.Nil(t, ExtractTotalDebt(sheet))
}

func TestExtractTotalDebt_NoMatch(t *testing.T) {
	sheet := models.MBalanceSheet{Rows: []models.MBalanceSheetRow{
		{Label: "Total Assets", Values: []float64{1_000_000}},
		{Label: "Goodwill", Values: []float64{200_000}},
	}}

	assert.Nil(t, ExtractTotalDebt(sheet))
}

func TestExtractTotalDebt_EmptySheet(t *testing.T) {
	assert.Nil(t, ExtractTotalDebt(models.MBalanceSheet{}))
}
