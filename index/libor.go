package index

import (
	"fmt"
	"time"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/currency"
	"github.com/meenmo/iborfallback/daycount"
	"github.com/meenmo/iborfallback/refdata"
)

// ConventionForTenor is the LIBOR business-day convention: Following for day
// and week tenors, ModifiedFollowing for month and year tenors.
func ConventionForTenor(p calendar.Period) calendar.BusinessDayConvention {
	switch p.Units {
	case calendar.Days, calendar.Weeks:
		return calendar.Following
	default:
		return calendar.ModifiedFollowing
	}
}

// EndOfMonthForTenor is true for month and year tenors.
func EndOfMonthForTenor(p calendar.Period) bool {
	switch p.Units {
	case calendar.Days, calendar.Weeks:
		return false
	default:
		return true
	}
}

// LiborParams configures a LIBOR index. Unset overrides are looked up in
// Tables (refdata.Default when nil) and otherwise left neutral.
type LiborParams struct {
	FamilyName              string
	Tenor                   calendar.Period
	SettlementDays          int
	Currency                currency.Currency
	FinancialCenterCalendar calendar.Calendar
	DayCount                daycount.Convention

	ForwardingCurve DiscountCurve
	FallbackCurve   DiscountCurve

	CessationDate Override[time.Time]
	// FallbackSpread is in decimal. Table spreads are converted from bp.
	FallbackSpread   Override[float64]
	ObservationShift Override[int]
	FallbackCalendar Override[calendar.Calendar]

	Tables *refdata.Tables
}

// NewLibor builds a LIBOR index fixed in London. Value and maturity dates are
// adjusted on the joint London and financial-centre calendar.
func NewLibor(p LiborParams) (*RateIndex, error) {
	if p.Tenor.Units == calendar.Days {
		return nil, fmt.Errorf("NewLibor: %s: %w: %s (use NewDailyTenorLibor)", p.FamilyName, ErrInvalidTenor, p.Tenor)
	}
	if p.Currency == currency.EUR {
		return nil, fmt.Errorf("NewLibor: %s: %w: %s", p.FamilyName, ErrReservedCurrency, p.Currency)
	}
	if p.FinancialCenterCalendar == nil {
		return nil, fmt.Errorf("NewLibor: %s: financial centre calendar is required", p.FamilyName)
	}

	tables := p.Tables
	if tables == nil {
		tables = refdata.Default()
	}
	freq := p.Tenor.Frequency()

	cessation := resolve(p.CessationDate, func() (time.Time, bool) {
		return tables.CessationDate(p.Currency, freq)
	}, time.Time{})
	spread := resolve(p.FallbackSpread, func() (float64, bool) {
		bp, ok := tables.FallbackSpreadBP(p.Currency, freq)
		return bp / 10000, ok
	}, 0)
	fallbackCal := resolve(p.FallbackCalendar, func() (calendar.Calendar, bool) {
		return tables.FallbackCalendar(p.Currency)
	}, nil)

	ix, err := NewIborIndex(IborParams{
		FamilyName:       p.FamilyName,
		Tenor:            p.Tenor,
		SettlementDays:   p.SettlementDays,
		Currency:         p.Currency,
		FixingCalendar:   calendar.UKExchange,
		Convention:       ConventionForTenor(p.Tenor),
		EndOfMonth:       EndOfMonthForTenor(p.Tenor),
		DayCount:         p.DayCount,
		ForwardingCurve:  p.ForwardingCurve,
		FallbackCurve:    p.FallbackCurve,
		CessationDate:    Set(cessation),
		FallbackSpread:   Set(spread),
		ObservationShift: p.ObservationShift,
		FallbackCalendar: fallbackCal,
	})
	if err != nil {
		return nil, err
	}

	joint := calendar.NewJoint(calendar.UKExchange, p.FinancialCenterCalendar)
	ix.valueCalendar = joint
	ix.maturityCalendar = joint
	return ix, nil
}

// NewDailyTenorLibor builds a 1D LIBOR fixed on the joint London and
// financial-centre calendar. It carries no fallback configuration.
func NewDailyTenorLibor(familyName string, settlementDays int, ccy currency.Currency, financialCenter calendar.Calendar, dc daycount.Convention, forwarding DiscountCurve) (*RateIndex, error) {
	if ccy == currency.EUR {
		return nil, fmt.Errorf("NewDailyTenorLibor: %s: %w: %s", familyName, ErrReservedCurrency, ccy)
	}
	if financialCenter == nil {
		return nil, fmt.Errorf("NewDailyTenorLibor: %s: financial centre calendar is required", familyName)
	}
	tenor := calendar.P(1, calendar.Days)
	return NewIborIndex(IborParams{
		FamilyName:      familyName,
		Tenor:           tenor,
		SettlementDays:  settlementDays,
		Currency:        ccy,
		FixingCalendar:  calendar.NewJoint(calendar.UKExchange, financialCenter),
		Convention:      ConventionForTenor(tenor),
		EndOfMonth:      EndOfMonthForTenor(tenor),
		DayCount:        dc,
		ForwardingCurve: forwarding,
	})
}
