package index

import (
	"fmt"
	"time"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/utils"
)

// Window is a fallback observation window.
type Window struct {
	// FixingDate is the fixing date the window was derived from, after any
	// backward steps.
	FixingDate time.Time
	Start      time.Time
	End        time.Time
	// Cutoff is the latest allowed End.
	Cutoff time.Time
	Steps  int
}

// FallbackWindow locates the fallback accrual window for a nominal fixing
// date. With a zero paymentDate the window starts from the nominal fixing
// date. Otherwise the fixing date steps back one business day at a time
// until the window ends on or before paymentDate minus the observation shift.
func (ix *RateIndex) FallbackWindow(fixingDate, paymentDate time.Time) (Window, error) {
	shift := ix.obsPeriodShift
	current := fixingDate

	d1, d2, err := ix.fallbackDates(current, shift)
	if err != nil {
		return Window{}, err
	}

	cutoff := d2
	if !paymentDate.IsZero() {
		cutoff = ix.fixingCalendar.Advance(paymentDate, calendar.P(shift, calendar.Days).Negate(), calendar.Following, false)
	}

	// Any reachable cutoff lies within one window length of steps.
	maxSteps := int(utils.Days(d1, d2)) + shift + ix.searchMargin
	steps := 0
	for d2.After(cutoff) {
		if steps >= maxSteps {
			ix.log.Warn().
				Str("fixing_date", utils.FormatDate(fixingDate)).
				Str("cutoff", utils.FormatDate(cutoff)).
				Int("steps", steps).
				Msg("fallback search exhausted")
			return Window{}, fmt.Errorf("%s: %w: fixing %s, cutoff %s after %d steps",
				ix.Name(), ErrSearchExhausted, utils.FormatDate(fixingDate), utils.FormatDate(cutoff), steps)
		}
		current = ix.fixingCalendar.Advance(current, calendar.P(-1, calendar.Days), calendar.Following, false)
		steps++
		if d1, d2, err = ix.fallbackDates(current, shift); err != nil {
			return Window{}, err
		}
		ix.log.Trace().
			Int("step", steps).
			Str("fixing_date", utils.FormatDate(current)).
			Str("start", utils.FormatDate(d1)).
			Str("end", utils.FormatDate(d2)).
			Msg("fallback search step")
	}

	return Window{FixingDate: current, Start: d1, End: d2, Cutoff: cutoff, Steps: steps}, nil
}

func (ix *RateIndex) fallbackDates(fixingDate time.Time, shift int) (time.Time, time.Time, error) {
	d1, err := ix.ValueDateFallback(fixingDate, shift)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	d2, err := ix.MaturityDateFallback(d1)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return d1, d2, nil
}
