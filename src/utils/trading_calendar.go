package utils

import (
	"log"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar answers whether a symbol's exchange is currently trading,
// used as a staleness hint for quoted prices.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// micForSymbol maps a Yahoo symbol suffix to a MIC code (ISO 10383).
func micForSymbol(symbol string) string {
	suffixes := map[string]string{
		".L":  "xlon",
		".PA": "xpar",
		".DE": "xfra",
		".AS": "xams",
		".BR": "xbru",
		".MI": "xmil",
		".MC": "xmad",
		".ST": "xsto",
		".CO": "xcse",
		".HE": "xhel",
		".VI": "xwbo",
		".SW": "xswx",
		".TO": "xtse",
		".V":  "xtsx",
		".T":  "xtks",
		".HK": "xhkg",
		".AX": "xasx",
		".KS": "xkrx",
		".TW": "xtai",
		".SS": "xshg",
		".SZ": "xshe",
	}

	for suffix, mic := range suffixes {
		if strings.HasSuffix(symbol, suffix) {
			return mic
		}
	}
	// Default US NYSE
	return "xnys"
}

// -----------------------------------------------------------------------------

func GetCalendar(symbol string) *TradingCalendar {
	mic := micForSymbol(symbol)

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}

	if cal == nil {
		log.Printf("WARNING: Failed to load calendar for MIC '%s' and fallback 'xnys'. Using simple fallback (Mon-Fri 09:30-16:00 NY).", mic)
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC // Worst case
		}
		return &TradingCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}

	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}

		hour := t.Hour()
		minute := t.Minute()

		// 9:30 - 16:00 NY Time
		if (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16 {
			return true
		}
		return false
	}

	return tc.Calendar.IsOpen(t)
}

// -----------------------------------------------------------------------------

// IsMarketOpen reports whether the symbol's exchange is trading right now.
func IsMarketOpen(symbol string) bool {
	return GetCalendar(symbol).IsOpenOnMinute(time.Now().UTC())
}
