package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicForSymbol(t *testing.T) {
	assert.Equal(t, "xnys", micForSymbol("AAPL"))
	assert.Equal(t, "xlon", micForSymbol("SHEL.L"))
	assert.Equal(t, "xpar", micForSymbol("AIR.PA"))
	assert.Equal(t, "xtks", micForSymbol("7203.T"))
}

// -----------------------------------------------------------------------------

func TestGetCalendar(t *testing.T) {
	tc := GetCalendar("AAPL")
	require.NotNil(t, tc)
	require.NotNil(t, tc.Timezone)
}

// -----------------------------------------------------------------------------

func TestFallbackTradingHours(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tc := &TradingCalendar{Fallback: true, Timezone: ny}

	// Wednesday 2026-01-07
	assert.True(t, tc.IsTradingDay(time.Date(2026, 1, 7, 12, 0, 0, 0, ny)))
	// Saturday
	assert.False(t, tc.IsTradingDay(time.Date(2026, 1, 10, 12, 0, 0, 0, ny)))

	assert.False(t, tc.IsOpenOnMinute(time.Date(2026, 1, 7, 9, 29, 0, 0, ny)))
	assert.True(t, tc.IsOpenOnMinute(time.Date(2026, 1, 7, 9, 30, 0, 0, ny)))
	assert.True(t, tc.IsOpenOnMinute(time.Date(2026, 1, 7, 15, 59, 0, 0, ny)))
	assert.False(t, tc.IsOpenOnMinute(time.Date(2026, 1, 7, 16, 0, 0, 0, ny)))
	assert.False(t, tc.IsOpenOnMinute(time.Date(2026, 1, 10, 12, 0, 0, 0, ny)))
}
