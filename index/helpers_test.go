package index_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/currency"
	"github.com/meenmo/iborfallback/daycount"
	"github.com/meenmo/iborfallback/index"
	"github.com/meenmo/iborfallback/utils"
)

var d = utils.MustParseDate

// dfCurve returns the listed discount factors and 1 elsewhere.
type dfCurve map[time.Time]float64

func (c dfCurve) DF(t time.Time) float64 {
	if df, ok := c[t]; ok {
		return df
	}
	return 1
}

type mapHistory map[string]float64

func (h mapHistory) Fixing(_ context.Context, name string, date time.Time) (float64, bool, error) {
	r, ok := h[name+"@"+utils.FormatDate(date)]
	return r, ok, nil
}

// shrinkingCalendar treats every day as a business day and moves tenor
// advances one day backwards.
type shrinkingCalendar struct{}

func (shrinkingCalendar) Name() string { return "SHRINKING" }
func (shrinkingCalendar) IsBusinessDay(time.Time) bool { return true }
func (shrinkingCalendar) Adjust(t time.Time, _ calendar.BusinessDayConvention) time.Time {
	return t
}
func (shrinkingCalendar) AddBusinessDays(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) }
func (shrinkingCalendar) Advance(t time.Time, p calendar.Period, _ calendar.BusinessDayConvention, _ bool) time.Time {
	if p.Units == calendar.Days {
		return t.AddDate(0, 0, p.Length)
	}
	return t.AddDate(0, 0, -1)
}

func usdLibor3M(t *testing.T, forwarding, fallback index.DiscountCurve) *index.RateIndex {
	t.Helper()
	ix, err := index.NewLibor(index.LiborParams{
		FamilyName:              "USDLibor",
		Tenor:                   calendar.P(3, calendar.Months),
		SettlementDays:          2,
		Currency:                currency.USD,
		FinancialCenterCalendar: calendar.USSettlement,
		DayCount:                daycount.Act360,
		ForwardingCurve:         forwarding,
		FallbackCurve:           fallback,
	})
	require.NoError(t, err)
	return ix
}
