package index

import (
	"context"
	"fmt"
	"time"

	"github.com/meenmo/iborfallback/utils"
)

// FixingRequest asks for the fixing of one date.
type FixingRequest struct {
	FixingDate time.Time
	// PaymentDate is the coupon payment date used by the fallback search.
	// Zero means none.
	PaymentDate time.Time
	// EvaluationDate separates past and future fixings. Zero means today (UTC).
	EvaluationDate time.Time
	// ForecastTodaysFixing forecasts a fixing on the evaluation date even when
	// the history has it.
	ForecastTodaysFixing bool
}

// Fixing returns a published fixing for past dates and a forecast for future
// ones. A fixing on the evaluation date is read from the history when
// available and forecast otherwise.
func (ix *RateIndex) Fixing(ctx context.Context, req FixingRequest) (float64, error) {
	if err := ix.checkFixingDate(req.FixingDate); err != nil {
		return 0, err
	}

	today := req.EvaluationDate
	if today.IsZero() {
		now := time.Now().UTC()
		today = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	switch {
	case req.FixingDate.After(today), req.FixingDate.Equal(today) && req.ForecastTodaysFixing:
		return ix.ForecastFixing(req.FixingDate, req.PaymentDate)
	case req.FixingDate.Before(today):
		return ix.PastFixing(ctx, req.FixingDate)
	}

	if ix.history != nil {
		rate, ok, err := ix.history.Fixing(ctx, ix.Name(), req.FixingDate)
		if err != nil {
			return 0, fmt.Errorf("%s: read fixing %s: %w", ix.Name(), utils.FormatDate(req.FixingDate), err)
		}
		if ok {
			return rate, nil
		}
	}
	return ix.ForecastFixing(req.FixingDate, req.PaymentDate)
}

// PastFixing reads a published fixing from the history.
func (ix *RateIndex) PastFixing(ctx context.Context, date time.Time) (float64, error) {
	if ix.history == nil {
		return 0, fmt.Errorf("%s: %w: %s (no fixing history)", ix.Name(), ErrMissingFixing, utils.FormatDate(date))
	}
	rate, ok, err := ix.history.Fixing(ctx, ix.Name(), date)
	if err != nil {
		return 0, fmt.Errorf("%s: read fixing %s: %w", ix.Name(), utils.FormatDate(date), err)
	}
	if !ok {
		return 0, fmt.Errorf("%s: %w: %s", ix.Name(), ErrMissingFixing, utils.FormatDate(date))
	}
	return rate, nil
}
