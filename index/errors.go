package index

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/iborfallback/utils"
)

var (
	// ErrInvalidFixingDate is returned when a fixing date is not a business
	// day on the index's fixing calendar.
	ErrInvalidFixingDate = errors.New("invalid fixing date")
	// ErrDegenerateAccrual is returned when an accrual period has a
	// non-positive year fraction.
	ErrDegenerateAccrual = errors.New("degenerate accrual period")
	// ErrMissingCurve is returned when the selected regime needs a curve that
	// is not bound to the index.
	ErrMissingCurve = errors.New("missing curve")
	// ErrMissingFallbackCalendar is returned when fallback dates are requested
	// from an index without a fallback calendar.
	ErrMissingFallbackCalendar = errors.New("missing fallback calendar")
	// ErrSearchExhausted is returned when the fallback observation search does
	// not reach the cut-off within its step bound.
	ErrSearchExhausted = errors.New("fallback observation search exhausted")
	// ErrMissingFixing is returned when a past fixing is not in the history.
	ErrMissingFixing = errors.New("missing fixing")
	// ErrInvalidTenor is returned when a tenor is not allowed for the index kind.
	ErrInvalidTenor = errors.New("invalid tenor")
	// ErrReservedCurrency is returned when a currency has a dedicated index
	// kind and cannot use the generic constructor.
	ErrReservedCurrency = errors.New("reserved currency")
)

// AccrualError reports the dates behind a degenerate accrual period.
type AccrualError struct {
	Index        string
	Start        time.Time
	End          time.Time
	YearFraction float64
	DayCount     string
}

func (e *AccrualError) Error() string {
	return fmt.Sprintf("%s: cannot calculate forward rate between %s and %s: non positive time (%g) using %s daycounter",
		e.Index, utils.FormatDate(e.Start), utils.FormatDate(e.End), e.YearFraction, e.DayCount)
}

func (e *AccrualError) Unwrap() error { return ErrDegenerateAccrual }
