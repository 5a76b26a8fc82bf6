package index

import (
	"fmt"
	"time"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/utils"
)

// IsValidFixingDate reports whether d is a business day on the fixing calendar.
func (ix *RateIndex) IsValidFixingDate(d time.Time) bool {
	return ix.fixingCalendar.IsBusinessDay(d)
}

func (ix *RateIndex) checkFixingDate(d time.Time) error {
	if !ix.IsValidFixingDate(d) {
		return fmt.Errorf("%s: %w: %s", ix.Name(), ErrInvalidFixingDate, utils.FormatDate(d))
	}
	return nil
}

// ValueDate is the fixing date advanced by the settlement lag on the fixing
// calendar.
func (ix *RateIndex) ValueDate(fixingDate time.Time) (time.Time, error) {
	if err := ix.checkFixingDate(fixingDate); err != nil {
		return time.Time{}, err
	}
	d := ix.fixingCalendar.Advance(fixingDate, calendar.P(ix.fixingDays, calendar.Days), calendar.Following, false)
	if ix.valueCalendar != nil {
		d = ix.valueCalendar.Adjust(d, calendar.Following)
	}
	return d, nil
}

// MaturityDate advances valueDate by the tenor under the index convention
// and end-of-month rule.
func (ix *RateIndex) MaturityDate(valueDate time.Time) time.Time {
	return ix.maturityCalendar.Advance(valueDate, ix.tenor, ix.convention, ix.endOfMonth)
}

// FixingDate moves valueDate back by the settlement lag on the fixing calendar.
func (ix *RateIndex) FixingDate(valueDate time.Time) time.Time {
	return ix.fixingCalendar.Advance(valueDate, calendar.P(ix.fixingDays, calendar.Days).Negate(), calendar.Following, false)
}

// ValueDateFallback is the start of the fallback accrual period: the spot
// date on the fallback calendar moved back offset business days.
func (ix *RateIndex) ValueDateFallback(fixingDate time.Time, offset int) (time.Time, error) {
	if err := ix.checkFixingDate(fixingDate); err != nil {
		return time.Time{}, err
	}
	if ix.fallbackCalendar == nil {
		return time.Time{}, fmt.Errorf("%s: %w", ix.Name(), ErrMissingFallbackCalendar)
	}
	spot := ix.fallbackCalendar.Advance(fixingDate, calendar.P(ix.fixingDays, calendar.Days), calendar.Following, false)
	return ix.fallbackCalendar.Advance(spot, calendar.P(offset, calendar.Days).Negate(), calendar.Following, false), nil
}

// MaturityDateFallback advances valueDate by the tenor on the fallback
// calendar. The end-of-month rule never applies.
func (ix *RateIndex) MaturityDateFallback(valueDate time.Time) (time.Time, error) {
	if ix.inheritFallbackMaturity {
		return ix.MaturityDate(valueDate), nil
	}
	if ix.fallbackCalendar == nil {
		return time.Time{}, fmt.Errorf("%s: %w", ix.Name(), ErrMissingFallbackCalendar)
	}
	return ix.fallbackCalendar.Advance(valueDate, ix.tenor, ix.convention, false), nil
}
