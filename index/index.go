// Package index implements interest-rate benchmark indices whose fixings
// switch to a spread-adjusted replacement rate after the benchmark's
// cessation date.
//
// A RateIndex is immutable. Curve, cessation-date and spread rebinding return
// a new index, so one value can be shared by concurrent fixing computations.
package index

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/config"
	"github.com/meenmo/iborfallback/currency"
	"github.com/meenmo/iborfallback/daycount"
)

// DiscountCurve provides discount factors used to infer forward rates. A nil
// interface means "no curve"; pass an untyped nil, not a nil pointer.
type DiscountCurve interface {
	DF(t time.Time) float64
}

// FixingHistory supplies published fixings.
type FixingHistory interface {
	Fixing(ctx context.Context, indexName string, date time.Time) (float64, bool, error)
}

// RateIndex is an IBOR-style benchmark with an optional fallback regime.
type RateIndex struct {
	familyName     string
	tenor          calendar.Period
	fixingDays     int
	currency       currency.Currency
	fixingCalendar calendar.Calendar

	// valueCalendar, when set, adjusts the value date (Following) after the
	// settlement lag has been applied on the fixing calendar.
	valueCalendar    calendar.Calendar
	maturityCalendar calendar.Calendar
	convention       calendar.BusinessDayConvention
	endOfMonth       bool
	dayCount         daycount.Convention

	// inheritFallbackMaturity makes MaturityDateFallback reuse MaturityDate.
	inheritFallbackMaturity bool

	cessationDate    time.Time
	fallbackSpread   float64
	obsPeriodShift   int
	fallbackCalendar calendar.Calendar

	forwarding   DiscountCurve
	fallback     DiscountCurve
	history      FixingHistory
	searchMargin int
	log          zerolog.Logger
}

// IborParams configures a generic IBOR index. Unset overrides resolve to
// neutral values: no cessation date, zero spread, the configured default
// observation shift.
type IborParams struct {
	FamilyName     string
	Tenor          calendar.Period
	SettlementDays int
	Currency       currency.Currency
	FixingCalendar calendar.Calendar
	Convention     calendar.BusinessDayConvention
	EndOfMonth     bool
	DayCount       daycount.Convention

	ForwardingCurve DiscountCurve
	FallbackCurve   DiscountCurve

	CessationDate Override[time.Time]

	// FallbackSpread is additive, in decimal (0.0026161 == 26.161bp).
	FallbackSpread   Override[float64]
	ObservationShift Override[int]
	FallbackCalendar calendar.Calendar

	// StandardFallbackMaturity makes MaturityDateFallback reuse MaturityDate,
	// end-of-month rule included.
	StandardFallbackMaturity bool
}

// NewIborIndex builds a generic IBOR index.
func NewIborIndex(p IborParams) (*RateIndex, error) {
	if p.FamilyName == "" {
		return nil, errors.New("NewIborIndex: family name is required")
	}
	if p.FixingCalendar == nil {
		return nil, fmt.Errorf("NewIborIndex: %s: fixing calendar is required", p.FamilyName)
	}
	if p.SettlementDays < 0 {
		return nil, fmt.Errorf("NewIborIndex: %s: negative settlement days %d", p.FamilyName, p.SettlementDays)
	}
	if p.Tenor.Length <= 0 {
		return nil, fmt.Errorf("NewIborIndex: %s: %w: %s", p.FamilyName, ErrInvalidTenor, p.Tenor)
	}
	if p.DayCount == "" {
		return nil, fmt.Errorf("NewIborIndex: %s: day count is required", p.FamilyName)
	}
	if p.Convention == "" {
		p.Convention = ConventionForTenor(p.Tenor)
	}

	cfg := config.GetConfig()
	shift := p.ObservationShift.Or(cfg.DefaultObservationShift)
	if shift < 0 {
		return nil, fmt.Errorf("NewIborIndex: %s: negative observation shift %d", p.FamilyName, shift)
	}

	ix := &RateIndex{
		familyName:       p.FamilyName,
		tenor:            p.Tenor,
		fixingDays:       p.SettlementDays,
		currency:         p.Currency,
		fixingCalendar:   p.FixingCalendar,
		maturityCalendar: p.FixingCalendar,
		convention:       p.Convention,
		endOfMonth:       p.EndOfMonth,
		dayCount:         p.DayCount,
		cessationDate:    p.CessationDate.Or(time.Time{}),
		fallbackSpread:   p.FallbackSpread.Or(0),
		obsPeriodShift:   shift,
		fallbackCalendar: p.FallbackCalendar,
		searchMargin:     cfg.SearchMarginSteps,
		log:              zerolog.Nop(),
		forwarding:       p.ForwardingCurve,
		fallback:         p.FallbackCurve,

		inheritFallbackMaturity: p.StandardFallbackMaturity,
	}
	return ix, nil
}

// NewOvernightIndex builds a 1D index with Following and no end-of-month rule.
func NewOvernightIndex(familyName string, settlementDays int, ccy currency.Currency, fixingCalendar calendar.Calendar, dc daycount.Convention, forwarding DiscountCurve) (*RateIndex, error) {
	return NewIborIndex(IborParams{
		FamilyName:      familyName,
		Tenor:           calendar.P(1, calendar.Days),
		SettlementDays:  settlementDays,
		Currency:        ccy,
		FixingCalendar:  fixingCalendar,
		Convention:      calendar.Following,
		EndOfMonth:      false,
		DayCount:        dc,
		ForwardingCurve: forwarding,

		StandardFallbackMaturity: true,
	})
}

// Name is the family name, tenor and day count, e.g. "USDLibor3M Actual/360".
func (ix *RateIndex) Name() string {
	tenor := ix.tenor.String()
	if ix.tenor.Units == calendar.Days && ix.tenor.Length == 1 {
		tenor = "ON"
	}
	return ix.familyName + tenor + " " + ix.dayCount.Name()
}

func (ix *RateIndex) FamilyName() string { return ix.familyName }
func (ix *RateIndex) Tenor() calendar.Period { return ix.tenor }
func (ix *RateIndex) FixingDays() int { return ix.fixingDays }
func (ix *RateIndex) Currency() currency.Currency { return ix.currency }
func (ix *RateIndex) FixingCalendar() calendar.Calendar { return ix.fixingCalendar }
func (ix *RateIndex) FallbackCalendar() calendar.Calendar { return ix.fallbackCalendar }
func (ix *RateIndex) BusinessDayConvention() calendar.BusinessDayConvention { return ix.convention }
func (ix *RateIndex) EndOfMonth() bool { return ix.endOfMonth }
func (ix *RateIndex) DayCount() daycount.Convention { return ix.dayCount }
func (ix *RateIndex) FallbackSpread() float64 { return ix.fallbackSpread }
func (ix *RateIndex) ObservationShift() int { return ix.obsPeriodShift }
func (ix *RateIndex) ForwardingCurve() DiscountCurve { return ix.forwarding }
func (ix *RateIndex) FallbackCurve() DiscountCurve { return ix.fallback }

// CessationDate returns the configured cessation date, if any.
func (ix *RateIndex) CessationDate() (time.Time, bool) {
	return ix.cessationDate, !ix.cessationDate.IsZero()
}

func (ix *RateIndex) clone() *RateIndex {
	c := *ix
	return &c
}

// WithForwardingCurve returns a copy bound to another forwarding curve.
func (ix *RateIndex) WithForwardingCurve(c DiscountCurve) *RateIndex {
	out := ix.clone()
	out.forwarding = c
	return out
}

// WithFallbackCurve returns a copy bound to another fallback curve. A nil
// curve disables the fallback regime.
func (ix *RateIndex) WithFallbackCurve(c DiscountCurve) *RateIndex {
	out := ix.clone()
	out.fallback = c
	return out
}

// Clone returns a copy linked to different curves. A nil fallback keeps the
// current fallback curve.
func (ix *RateIndex) Clone(forwarding, fallback DiscountCurve) *RateIndex {
	out := ix.WithForwardingCurve(forwarding)
	if fallback != nil {
		out.fallback = fallback
	}
	return out
}

// WithCessationDate returns a copy with another cessation date. The zero
// time removes it.
func (ix *RateIndex) WithCessationDate(d time.Time) *RateIndex {
	out := ix.clone()
	out.cessationDate = d
	return out
}

// WithFallbackSpread returns a copy with another additive spread (decimal).
func (ix *RateIndex) WithFallbackSpread(s float64) *RateIndex {
	out := ix.clone()
	out.fallbackSpread = s
	return out
}

// WithFixingHistory returns a copy reading past fixings from h.
func (ix *RateIndex) WithFixingHistory(h FixingHistory) *RateIndex {
	out := ix.clone()
	out.history = h
	return out
}

// WithLogger returns a copy logging to l.
func (ix *RateIndex) WithLogger(l zerolog.Logger) *RateIndex {
	out := ix.clone()
	out.log = l.With().Str("index", ix.Name()).Logger()
	return out
}
