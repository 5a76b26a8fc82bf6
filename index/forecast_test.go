package index_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/currency"
	"github.com/meenmo/iborfallback/daycount"
	"github.com/meenmo/iborfallback/index"
)

func scenarioCurves() (forwarding, fallback dfCurve) {
	forwarding = dfCurve{d("2023-07-03"): 0.995, d("2023-10-03"): 0.990}
	fallback = dfCurve{d("2023-06-30"): 0.993, d("2023-09-29"): 0.988}
	return forwarding, fallback
}

func TestRegime(t *testing.T) {
	t.Parallel()

	fwd, fb := scenarioCurves()
	ix := usdLibor3M(t, fwd, fb)

	assert.Equal(t, index.Standard, ix.Regime(d("2023-06-29")))
	assert.Equal(t, index.Fallback, ix.Regime(d("2023-06-30")))
	assert.Equal(t, index.Fallback, ix.Regime(d("2024-03-01")))

	assert.Equal(t, index.Standard, ix.WithFallbackCurve(nil).Regime(d("2024-03-01")))
	assert.Equal(t, index.Standard, ix.WithCessationDate(time.Time{}).Regime(d("2024-03-01")))
	assert.Equal(t, "fallback", index.Fallback.String())
}

func TestForecast_StandardBeforeCessation(t *testing.T) {
	t.Parallel()

	fwd, fb := scenarioCurves()
	ix := usdLibor3M(t, fwd, fb)

	f, err := ix.ForecastDetail(d("2023-06-29"), time.Time{})
	require.NoError(t, err)

	yf := 92.0 / 360.0
	assert.Equal(t, index.Standard, f.Regime)
	assert.Equal(t, d("2023-07-03"), f.Start)
	assert.Equal(t, d("2023-10-03"), f.End)
	assert.InDelta(t, yf, f.YearFraction, 1e-15)
	assert.Equal(t, 0.0, f.Spread)
	assert.InDelta(t, (0.995/0.990-1)/yf, f.Rate, 1e-14)
}

func TestForecast_FallbackOnCessationDate(t *testing.T) {
	t.Parallel()

	fwd, fb := scenarioCurves()
	ix := usdLibor3M(t, fwd, fb)

	f, err := ix.ForecastDetail(d("2023-06-30"), time.Time{})
	require.NoError(t, err)

	yf := 91.0 / 360.0
	assert.Equal(t, index.Fallback, f.Regime)
	assert.Equal(t, d("2023-06-30"), f.Start)
	assert.Equal(t, d("2023-09-29"), f.End)
	assert.Equal(t, 0, f.SearchSteps)
	assert.InDelta(t, 0.0026161, f.Spread, 1e-15)
	assert.InDelta(t, (0.993/0.988-1)/yf+26.161/10000, f.Rate, 1e-14)

	rate, err := ix.ForecastFixing(d("2023-06-30"), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, f.Rate, rate)
}

func TestForecast_FallbackWithPaymentDate(t *testing.T) {
	t.Parallel()

	fb := dfCurve{d("2023-06-27"): 0.994, d("2023-09-27"): 0.989}
	ix := usdLibor3M(t, nil, fb)

	f, err := ix.ForecastDetail(d("2023-06-30"), d("2023-09-29"))
	require.NoError(t, err)

	yf := 92.0 / 360.0
	assert.Equal(t, d("2023-06-27"), f.Start)
	assert.Equal(t, d("2023-09-27"), f.End)
	assert.Equal(t, 3, f.SearchSteps)
	assert.InDelta(t, (0.994/0.989-1)/yf+0.0026161, f.Rate, 1e-14)
}

func TestForecast_MissingCurve(t *testing.T) {
	t.Parallel()

	_, fb := scenarioCurves()
	ix := usdLibor3M(t, nil, fb)

	_, err := ix.ForecastFixing(d("2023-06-29"), time.Time{})
	assert.ErrorIs(t, err, index.ErrMissingCurve)

	// Without a fallback curve the index never leaves the standard regime.
	ix = usdLibor3M(t, nil, nil)
	_, err = ix.ForecastFixing(d("2023-07-03"), time.Time{})
	assert.ErrorIs(t, err, index.ErrMissingCurve)
}

func TestForecast_MissingFallbackCalendar(t *testing.T) {
	t.Parallel()

	ix, err := index.NewIborIndex(index.IborParams{
		FamilyName:     "Test",
		Tenor:          calendar.P(3, calendar.Months),
		SettlementDays: 2,
		Currency:       currency.USD,
		FixingCalendar: calendar.WeekendsOnly,
		DayCount:       daycount.Act360,
		FallbackCurve:  dfCurve{},
		CessationDate:  index.Set(d("2023-01-02")),
	})
	require.NoError(t, err)

	_, err = ix.ForecastFixing(d("2023-03-01"), time.Time{})
	assert.ErrorIs(t, err, index.ErrMissingFallbackCalendar)
}

func TestForecast_DegenerateAccrual(t *testing.T) {
	t.Parallel()

	ix, err := index.NewIborIndex(index.IborParams{
		FamilyName:      "Broken",
		Tenor:           calendar.P(3, calendar.Months),
		SettlementDays:  2,
		FixingCalendar:  shrinkingCalendar{},
		DayCount:        daycount.Act360,
		ForwardingCurve: dfCurve{},
	})
	require.NoError(t, err)

	_, err = ix.ForecastFixing(d("2023-03-01"), time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, index.ErrDegenerateAccrual)

	var accrual *index.AccrualError
	require.True(t, errors.As(err, &accrual))
	assert.Equal(t, d("2023-03-03"), accrual.Start)
	assert.Equal(t, d("2023-03-02"), accrual.End)
	assert.Less(t, accrual.YearFraction, 0.0)
	assert.Contains(t, err.Error(), "non positive time")
}

func TestForecast_DegenerateAccrualBeforeMissingCurve(t *testing.T) {
	t.Parallel()

	ix, err := index.NewIborIndex(index.IborParams{
		FamilyName:     "Broken",
		Tenor:          calendar.P(1, calendar.Months),
		SettlementDays: 0,
		FixingCalendar: shrinkingCalendar{},
		DayCount:       daycount.Act365F,
	})
	require.NoError(t, err)

	_, err = ix.ForecastFixing(d("2023-03-01"), time.Time{})
	assert.ErrorIs(t, err, index.ErrDegenerateAccrual)
	assert.NotErrorIs(t, err, index.ErrMissingCurve)
}

func TestForecast_InvalidFixingDate(t *testing.T) {
	t.Parallel()

	fwd, fb := scenarioCurves()
	ix := usdLibor3M(t, fwd, fb)

	_, err := ix.ForecastFixing(d("2023-07-01"), time.Time{})
	assert.ErrorIs(t, err, index.ErrInvalidFixingDate)
}

func TestClone_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	fwd, fb := scenarioCurves()
	ix := usdLibor3M(t, fwd, fb)

	other := dfCurve{}
	clone := ix.Clone(other, nil)
	assert.Equal(t, other, clone.ForwardingCurve())
	assert.Equal(t, fb, clone.FallbackCurve())
	assert.Equal(t, fwd, ix.ForwardingCurve())

	noSpread := ix.WithFallbackSpread(0)
	assert.Equal(t, 0.0, noSpread.FallbackSpread())
	assert.InDelta(t, 0.0026161, ix.FallbackSpread(), 1e-15)

	moved := ix.WithCessationDate(d("2024-01-02"))
	assert.Equal(t, index.Standard, moved.Regime(d("2023-06-30")))
	assert.Equal(t, index.Fallback, ix.Regime(d("2023-06-30")))
	assert.Equal(t, ix.Name(), moved.Name())
}

func TestNewOvernightIndex(t *testing.T) {
	t.Parallel()

	curve := dfCurve{d("2023-03-01"): 0.9999, d("2023-03-02"): 0.9998}
	ix, err := index.NewOvernightIndex("SOFR", 0, currency.USD, calendar.USGovBond, daycount.Act360, curve)
	require.NoError(t, err)
	assert.Equal(t, "SOFRON Actual/360", ix.Name())

	rate, err := ix.ForecastFixing(d("2023-03-01"), time.Time{})
	require.NoError(t, err)
	assert.InDelta(t, (0.9999/0.9998-1)*360, rate, 1e-12)

	// Fallback maturity follows the standard rule when no fallback calendar is set.
	got, err := ix.MaturityDateFallback(d("2023-03-03"))
	require.NoError(t, err)
	assert.Equal(t, d("2023-03-06"), got)
}

func TestNewIborIndex_Validation(t *testing.T) {
	t.Parallel()

	base := index.IborParams{
		FamilyName:     "Test",
		Tenor:          calendar.P(6, calendar.Months),
		SettlementDays: 2,
		FixingCalendar: calendar.TARGET,
		DayCount:       daycount.Act360,
	}

	ix, err := index.NewIborIndex(base)
	require.NoError(t, err)
	assert.Equal(t, calendar.ModifiedFollowing, ix.BusinessDayConvention())

	p := base
	p.FixingCalendar = nil
	_, err = index.NewIborIndex(p)
	assert.Error(t, err)

	p = base
	p.Tenor = calendar.Period{}
	_, err = index.NewIborIndex(p)
	assert.ErrorIs(t, err, index.ErrInvalidTenor)

	p = base
	p.ObservationShift = index.Set(-1)
	_, err = index.NewIborIndex(p)
	assert.Error(t, err)
}
