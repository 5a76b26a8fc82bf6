// Package registry builds curves, indices and the fixing store described by
// the application config.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/config"
	"github.com/meenmo/iborfallback/currency"
	"github.com/meenmo/iborfallback/curve"
	"github.com/meenmo/iborfallback/daycount"
	"github.com/meenmo/iborfallback/fixings"
	"github.com/meenmo/iborfallback/index"
	"github.com/meenmo/iborfallback/refdata"
	"github.com/meenmo/iborfallback/utils"
)

const storeTimeout = 5 * time.Second

// Registry holds everything the commands look up by name. Names are
// lower-case.
type Registry struct {
	Tables  *refdata.Tables
	Curves  map[string]*curve.Curve
	Indices map[string]*index.RateIndex
	Store   fixings.Store
}

// Build constructs the registry. The engine settings in app become the active
// index configuration.
func Build(ctx context.Context, app *config.App, log zerolog.Logger) (*Registry, error) {
	config.SetConfig(app.Engine)

	tables, err := LoadTables(app)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		Tables:  tables,
		Curves:  make(map[string]*curve.Curve, len(app.Curves)),
		Indices: make(map[string]*index.RateIndex, len(app.Indices)),
	}

	for name, cc := range app.Curves {
		c, err := buildCurve(cc)
		if err != nil {
			return nil, fmt.Errorf("curve %s: %w", name, err)
		}
		r.Curves[strings.ToLower(name)] = c
	}

	store, err := openStore(ctx, app.Store, log)
	if err != nil {
		return nil, err
	}
	r.Store = store

	for name, ic := range app.Indices {
		ix, err := r.buildIndex(ic)
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", name, err)
		}
		r.Indices[strings.ToLower(name)] = ix.WithFixingHistory(store).WithLogger(log)
	}

	if app.Store.Backend == "" || strings.EqualFold(app.Store.Backend, "memory") {
		seed := make(map[string]map[string]float64, len(app.Store.Fixings))
		for name, fx := range app.Store.Fixings {
			ix, err := r.Index(name)
			if err != nil {
				return nil, fmt.Errorf("store fixings: %w", err)
			}
			seed[ix.Name()] = fx
		}
		if err := fixings.Seed(ctx, store, seed); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// LoadTables returns the default reference tables with the configured
// override file merged on top.
func LoadTables(app *config.App) (*refdata.Tables, error) {
	if app.ReferenceData == "" {
		return refdata.Default(), nil
	}
	return refdata.Load(app.ReferenceData)
}

// Index looks up an index by config name, case-insensitively.
func (r *Registry) Index(name string) (*index.RateIndex, error) {
	ix, ok := r.Indices[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown index %q (known: %s)", name, strings.Join(r.IndexNames(), ", "))
	}
	return ix, nil
}

// IndexNames lists the configured index names, sorted.
func (r *Registry) IndexNames() []string {
	names := make([]string, 0, len(r.Indices))
	for n := range r.Indices {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PaymentDate derives a coupon payment date for a fixing: the nominal
// maturity moved by the currency's payment lag on the fallback calendar, or
// on the fixing calendar when the index has none.
func PaymentDate(ix *index.RateIndex, fixingDate time.Time) (time.Time, error) {
	vd, err := ix.ValueDate(fixingDate)
	if err != nil {
		return time.Time{}, err
	}
	cal := ix.FallbackCalendar()
	if cal == nil {
		cal = ix.FixingCalendar()
	}
	return cal.AddBusinessDays(ix.MaturityDate(vd), currency.PaymentLag(ix.Currency())), nil
}

func openStore(ctx context.Context, sc config.StoreConfig, log zerolog.Logger) (fixings.Store, error) {
	var (
		store fixings.Store
		err   error
	)
	switch strings.ToLower(sc.Backend) {
	case "", "memory":
		return fixings.NewMemoryStore(log), nil
	case "postgres":
		store, err = fixings.OpenPostgres(ctx, sc.DSN, storeTimeout, log)
	case "redis":
		store, err = fixings.DialRedis(ctx, sc.Addr, sc.Password, sc.DB, sc.Prefix, log)
	default:
		return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}
	if err != nil || sc.CacheSize <= 0 {
		return store, err
	}
	return fixings.NewCachedStore(store, sc.CacheSize, log)
}

func parseDayCount(s string, def daycount.Convention) (daycount.Convention, error) {
	if s == "" {
		return def, nil
	}
	dc, ok := daycount.Parse(s)
	if !ok {
		return "", fmt.Errorf("unknown day count %q", s)
	}
	return dc, nil
}

func lookupCalendar(name, field string) (calendar.Calendar, error) {
	cal, ok := calendar.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: unknown calendar %q", field, name)
	}
	return cal, nil
}

func buildCurve(cc config.CurveConfig) (*curve.Curve, error) {
	settlement, err := utils.ParseDate(cc.Settlement)
	if err != nil {
		return nil, fmt.Errorf("settlement: %w", err)
	}
	dc, err := parseDayCount(cc.DayCount, daycount.Act365F)
	if err != nil {
		return nil, err
	}

	if cc.FlatRate != nil {
		horizon := settlement.AddDate(30, 0, 0)
		if cc.Horizon != "" {
			if horizon, err = utils.ParseDate(cc.Horizon); err != nil {
				return nil, fmt.Errorf("horizon: %w", err)
			}
		}
		return curve.NewFlatCurve(settlement, *cc.FlatRate, dc, horizon)
	}

	dfs := make(map[time.Time]float64, len(cc.Nodes))
	for raw, df := range cc.Nodes {
		d, err := utils.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("node: %w", err)
		}
		dfs[d] = df
	}
	return curve.NewCurveFromDFs(settlement, dfs, dc)
}

func (r *Registry) curve(name string) (index.DiscountCurve, error) {
	if name == "" {
		return nil, nil
	}
	c, ok := r.Curves[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown curve %q", name)
	}
	return c, nil
}

func (r *Registry) buildIndex(ic config.IndexConfig) (*index.RateIndex, error) {
	ccy := currency.Parse(ic.Currency)
	family := ic.Family
	if family == "" {
		family = ccy.Code + "Libor"
	}
	dc, err := parseDayCount(ic.DayCount, daycount.Act360)
	if err != nil {
		return nil, err
	}
	fwd, err := r.curve(ic.ForwardingCurve)
	if err != nil {
		return nil, err
	}
	fb, err := r.curve(ic.FallbackCurve)
	if err != nil {
		return nil, err
	}

	kind := strings.ToLower(ic.Kind)
	switch kind {
	case "overnight":
		cal, err := lookupCalendar(ic.FixingCalendar, "fixing_calendar")
		if err != nil {
			return nil, err
		}
		return index.NewOvernightIndex(family, ic.SettlementDays, ccy, cal, dc, fwd)
	case "daily_libor":
		cal, err := lookupCalendar(ic.FinancialCenter, "financial_center")
		if err != nil {
			return nil, err
		}
		return index.NewDailyTenorLibor(family, ic.SettlementDays, ccy, cal, dc, fwd)
	}

	tenor, err := calendar.ParsePeriod(ic.Tenor)
	if err != nil {
		return nil, err
	}
	var cessation index.Override[time.Time]
	if ic.CessationDate != "" {
		d, err := utils.ParseDate(ic.CessationDate)
		if err != nil {
			return nil, fmt.Errorf("cessation_date: %w", err)
		}
		cessation = index.Set(d)
	}
	var spread index.Override[float64]
	if ic.FallbackSpreadBP != nil {
		spread = index.Set(*ic.FallbackSpreadBP / 10000)
	}
	var shift index.Override[int]
	if ic.ObservationShift != nil {
		shift = index.Set(*ic.ObservationShift)
	}

	switch kind {
	case "", "libor":
		center, err := lookupCalendar(ic.FinancialCenter, "financial_center")
		if err != nil {
			return nil, err
		}
		var fbCal index.Override[calendar.Calendar]
		if ic.FallbackCalendar != "" {
			cal, err := lookupCalendar(ic.FallbackCalendar, "fallback_calendar")
			if err != nil {
				return nil, err
			}
			fbCal = index.Set(cal)
		}
		return index.NewLibor(index.LiborParams{
			FamilyName:              family,
			Tenor:                   tenor,
			SettlementDays:          ic.SettlementDays,
			Currency:                ccy,
			FinancialCenterCalendar: center,
			DayCount:                dc,
			ForwardingCurve:         fwd,
			FallbackCurve:           fb,
			CessationDate:           cessation,
			FallbackSpread:          spread,
			ObservationShift:        shift,
			FallbackCalendar:        fbCal,
			Tables:                  r.Tables,
		})
	case "ibor":
		fixingCal, err := lookupCalendar(ic.FixingCalendar, "fixing_calendar")
		if err != nil {
			return nil, err
		}
		var fbCal calendar.Calendar
		if ic.FallbackCalendar != "" {
			if fbCal, err = lookupCalendar(ic.FallbackCalendar, "fallback_calendar"); err != nil {
				return nil, err
			}
		}
		var conv calendar.BusinessDayConvention
		if ic.Convention != "" {
			c, ok := calendar.ParseConvention(ic.Convention)
			if !ok {
				return nil, fmt.Errorf("unknown convention %q", ic.Convention)
			}
			conv = c
		}
		eom := index.EndOfMonthForTenor(tenor)
		if ic.EndOfMonth != nil {
			eom = *ic.EndOfMonth
		}
		return index.NewIborIndex(index.IborParams{
			FamilyName:       family,
			Tenor:            tenor,
			SettlementDays:   ic.SettlementDays,
			Currency:         ccy,
			FixingCalendar:   fixingCal,
			Convention:       conv,
			EndOfMonth:       eom,
			DayCount:         dc,
			ForwardingCurve:  fwd,
			FallbackCurve:    fb,
			CessationDate:    cessation,
			FallbackSpread:   spread,
			ObservationShift: shift,
			FallbackCalendar: fbCal,
		})
	default:
		return nil, fmt.Errorf("unknown index kind %q", ic.Kind)
	}
}
