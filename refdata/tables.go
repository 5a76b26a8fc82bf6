// Package refdata holds the static reference tables used to default an
// index's fallback configuration: the fallback spread, the cessation date and
// the fallback calendar of each benchmark currency.
package refdata

import (
	"sort"
	"time"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/currency"
)

// Key addresses a table entry by currency code and tenor frequency.
type Key struct {
	Currency  string
	Frequency calendar.Frequency
}

// Tables maps (currency, frequency) to fallback parameters. A missing entry
// means "no data" and callers fall back to neutral values.
type Tables struct {
	spreadsBP        map[Key]float64
	cessation        map[Key]time.Time
	defaultCessation map[string]time.Time
	calendars        map[string]calendar.Calendar
}

// New returns empty tables.
func New() *Tables {
	return &Tables{
		spreadsBP:        make(map[Key]float64),
		cessation:        make(map[Key]time.Time),
		defaultCessation: make(map[string]time.Time),
		calendars:        make(map[string]calendar.Calendar),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Default returns the published IBOR fallback parameters for the LIBOR
// currencies. Spreads are ISDA fixed spread adjustments in basis points.
func Default() *Tables {
	t := New()

	spreads := map[string]map[calendar.Frequency]float64{
		currency.USD.Code: {calendar.Monthly: 11.448, calendar.Quarterly: 26.161, calendar.Semiannual: 42.826, calendar.Annual: 71.513},
		currency.GBP.Code: {calendar.Monthly: 3.26, calendar.Quarterly: 11.93, calendar.Semiannual: 27.66, calendar.Annual: 46.44},
		currency.CHF.Code: {calendar.Monthly: -5.71, calendar.Quarterly: 0.31, calendar.Semiannual: 7.41, calendar.Annual: 20.48},
		currency.JPY.Code: {calendar.Monthly: -2.923, calendar.Quarterly: 0.835, calendar.Semiannual: 5.809, calendar.Annual: 16.6},
	}
	for ccy, byFreq := range spreads {
		for f, bp := range byFreq {
			t.spreadsBP[Key{Currency: ccy, Frequency: f}] = bp
		}
	}

	endOf2021 := day(2021, time.December, 31)
	t.defaultCessation[currency.CHF.Code] = endOf2021
	t.defaultCessation[currency.GBP.Code] = endOf2021
	t.defaultCessation[currency.JPY.Code] = endOf2021
	t.defaultCessation[currency.USD.Code] = endOf2021
	for _, f := range []calendar.Frequency{calendar.Monthly, calendar.Quarterly, calendar.Semiannual} {
		t.cessation[Key{Currency: currency.USD.Code, Frequency: f}] = day(2023, time.June, 30)
	}

	t.calendars[currency.USD.Code] = calendar.USGovBond
	t.calendars[currency.GBP.Code] = calendar.UKExchange
	t.calendars[currency.CHF.Code] = calendar.CHF
	t.calendars[currency.JPY.Code] = calendar.JPN
	return t
}

// FallbackSpreadBP returns the fallback spread in basis points.
func (t *Tables) FallbackSpreadBP(ccy currency.Currency, f calendar.Frequency) (float64, bool) {
	bp, ok := t.spreadsBP[Key{Currency: ccy.Code, Frequency: f}]
	return bp, ok
}

// CessationDate returns the cessation date for the tenor frequency, or the
// currency-wide date when no tenor-specific one exists.
func (t *Tables) CessationDate(ccy currency.Currency, f calendar.Frequency) (time.Time, bool) {
	if d, ok := t.cessation[Key{Currency: ccy.Code, Frequency: f}]; ok {
		return d, true
	}
	d, ok := t.defaultCessation[ccy.Code]
	return d, ok
}

// FallbackCalendar returns the calendar of the replacement rate.
func (t *Tables) FallbackCalendar(ccy currency.Currency) (calendar.Calendar, bool) {
	c, ok := t.calendars[ccy.Code]
	return c, ok
}

// SetFallbackSpreadBP adds or replaces a spread entry.
func (t *Tables) SetFallbackSpreadBP(ccy currency.Currency, f calendar.Frequency, bp float64) {
	t.spreadsBP[Key{Currency: ccy.Code, Frequency: f}] = bp
}

// SetCessationDate adds or replaces a cessation entry. NoFrequency sets the
// currency-wide date.
func (t *Tables) SetCessationDate(ccy currency.Currency, f calendar.Frequency, d time.Time) {
	if f == calendar.NoFrequency {
		t.defaultCessation[ccy.Code] = d
		return
	}
	t.cessation[Key{Currency: ccy.Code, Frequency: f}] = d
}

// SetFallbackCalendar adds or replaces a calendar entry.
func (t *Tables) SetFallbackCalendar(ccy currency.Currency, c calendar.Calendar) {
	t.calendars[ccy.Code] = c
}

// Currencies lists every currency with at least one entry, sorted.
func (t *Tables) Currencies() []string {
	seen := make(map[string]struct{})
	for k := range t.spreadsBP {
		seen[k.Currency] = struct{}{}
	}
	for k := range t.cessation {
		seen[k.Currency] = struct{}{}
	}
	for c := range t.defaultCessation {
		seen[c] = struct{}{}
	}
	for c := range t.calendars {
		seen[c] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
