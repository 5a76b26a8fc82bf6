package registry

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/config"
	"github.com/meenmo/iborfallback/index"
	"github.com/meenmo/iborfallback/utils"
)

func ptr[T any](v T) *T { return &v }

func testApp() *config.App {
	return &config.App{
		Engine: config.DefaultConfig,
		Store: config.StoreConfig{
			Backend: "memory",
			Fixings: map[string]config.Fixings{
				"euribor6m": {"2023-06-29": 0.0402},
			},
		},
		Curves: map[string]config.CurveConfig{
			"estr": {Settlement: "2023-06-27", FlatRate: ptr(0.0335)},
			"sofr": {Settlement: "2023-06-27", FlatRate: ptr(0.0509)},
		},
		Indices: map[string]config.IndexConfig{
			"euribor6m": {
				Kind:             "ibor",
				Family:           "Euribor",
				Currency:         "EUR",
				Tenor:            "6M",
				SettlementDays:   2,
				FixingCalendar:   "TARGET",
				ForwardingCurve:  "estr",
				FallbackCurve:    "estr",
				CessationDate:    "2023-07-03",
				FallbackSpreadBP: ptr(5.0),
				FallbackCalendar: "TARGET",
			},
			"usdliboron": {
				Kind:            "daily_libor",
				Currency:        "USD",
				FinancialCenter: "US_SETTLEMENT",
				ForwardingCurve: "sofr",
			},
			"usdlibor3m": {
				Currency:        "USD",
				Tenor:           "3M",
				SettlementDays:  2,
				FinancialCenter: "US_SETTLEMENT",
				FallbackCurve:   "sofr",
			},
		},
	}
}

func build(t *testing.T, app *config.App) *Registry {
	t.Helper()
	reg, err := Build(context.Background(), app, zerolog.Nop())
	require.NoError(t, err)
	return reg
}

func TestBuild_IborKind(t *testing.T) {
	reg := build(t, testApp())

	ix, err := reg.Index("EURIBOR6M")
	require.NoError(t, err)
	assert.Equal(t, "Euribor6M Actual/360", ix.Name())
	assert.Equal(t, calendar.TARGET, ix.FixingCalendar())
	assert.Equal(t, calendar.ModifiedFollowing, ix.BusinessDayConvention())
	assert.True(t, ix.EndOfMonth())
	assert.Equal(t, reg.Curves["estr"], ix.ForwardingCurve())
	assert.InDelta(t, 0.0005, ix.FallbackSpread(), 1e-15)
	assert.Equal(t, index.Standard, ix.Regime(utils.MustParseDate("2023-06-30")))
	assert.Equal(t, index.Fallback, ix.Regime(utils.MustParseDate("2023-07-03")))

	rate, err := ix.PastFixing(context.Background(), utils.MustParseDate("2023-06-29"))
	require.NoError(t, err)
	assert.Equal(t, 0.0402, rate)
}

func TestBuild_DailyLiborKind(t *testing.T) {
	reg := build(t, testApp())

	ix, err := reg.Index("usdliboron")
	require.NoError(t, err)
	assert.Equal(t, "USDLiborON Actual/360", ix.Name())
	assert.Equal(t, calendar.P(1, calendar.Days), ix.Tenor())
	assert.Equal(t, calendar.Following, ix.BusinessDayConvention())
	assert.Nil(t, ix.FallbackCurve())
	assert.Equal(t, index.Standard, ix.Regime(utils.MustParseDate("2024-01-02")))

	rate, err := ix.ForecastFixing(utils.MustParseDate("2023-06-29"), time.Time{})
	require.NoError(t, err)
	assert.Greater(t, rate, 0.0)
}

func TestBuild_Errors(t *testing.T) {
	app := testApp()
	app.Indices["bad"] = config.IndexConfig{Kind: "swap", Tenor: "3M"}
	_, err := Build(context.Background(), app, zerolog.Nop())
	assert.ErrorContains(t, err, `unknown index kind "swap"`)

	app = testApp()
	app.Indices["bad"] = config.IndexConfig{Kind: "ibor", Tenor: "3M", FixingCalendar: "TARGET", ForwardingCurve: "sonia"}
	_, err = Build(context.Background(), app, zerolog.Nop())
	assert.ErrorContains(t, err, `unknown curve "sonia"`)

	app = testApp()
	app.Store.Fixings["gbplibor6m"] = config.Fixings{"2023-06-29": 0.05}
	_, err = Build(context.Background(), app, zerolog.Nop())
	assert.ErrorContains(t, err, `unknown index "gbplibor6m"`)
}

func TestPaymentDate(t *testing.T) {
	reg := build(t, testApp())

	// Maturity 2023-10-05, then two US government bond days over Columbus Day.
	libor, err := reg.Index("usdlibor3m")
	require.NoError(t, err)
	got, err := PaymentDate(libor, utils.MustParseDate("2023-06-30"))
	require.NoError(t, err)
	assert.Equal(t, utils.MustParseDate("2023-10-10"), got)

	// Maturity 2024-01-03, then one TARGET day.
	euribor, err := reg.Index("euribor6m")
	require.NoError(t, err)
	got, err = PaymentDate(euribor, utils.MustParseDate("2023-06-29"))
	require.NoError(t, err)
	assert.Equal(t, utils.MustParseDate("2024-01-04"), got)

	_, err = PaymentDate(libor, utils.MustParseDate("2023-07-01"))
	assert.ErrorIs(t, err, index.ErrInvalidFixingDate)
}
