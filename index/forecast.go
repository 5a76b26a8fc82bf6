package index

import (
	"fmt"
	"time"

	"github.com/meenmo/iborfallback/utils"
)

// Forecast is a forecast fixing with the dates and inputs behind it.
type Forecast struct {
	FixingDate   time.Time
	Regime       Regime
	Start        time.Time
	End          time.Time
	YearFraction float64
	Spread       float64
	Rate         float64
	SearchSteps  int
}

// ForecastFixing forecasts the fixing for fixingDate. paymentDate is only used
// by the fallback regime; pass the zero time when there is none.
func (ix *RateIndex) ForecastFixing(fixingDate, paymentDate time.Time) (float64, error) {
	f, err := ix.ForecastDetail(fixingDate, paymentDate)
	if err != nil {
		return 0, err
	}
	return f.Rate, nil
}

// ForecastDetail is ForecastFixing with the accrual period and regime used.
func (ix *RateIndex) ForecastDetail(fixingDate, paymentDate time.Time) (Forecast, error) {
	regime := ix.Regime(fixingDate)
	ix.log.Debug().
		Str("fixing_date", utils.FormatDate(fixingDate)).
		Str("regime", regime.String()).
		Msg("forecast")

	out := Forecast{FixingDate: fixingDate, Regime: regime}
	var curve DiscountCurve

	switch regime {
	case Fallback:
		w, err := ix.FallbackWindow(fixingDate, paymentDate)
		if err != nil {
			return Forecast{}, err
		}
		out.Start, out.End, out.SearchSteps = w.Start, w.End, w.Steps
		out.Spread = ix.fallbackSpread
		curve = ix.fallback
	default:
		d1, err := ix.ValueDate(fixingDate)
		if err != nil {
			return Forecast{}, err
		}
		out.Start, out.End = d1, ix.MaturityDate(d1)
		curve = ix.forwarding
	}

	t := ix.dayCount.YearFraction(out.Start, out.End)
	if t <= 0 {
		return Forecast{}, &AccrualError{
			Index:        ix.Name(),
			Start:        out.Start,
			End:          out.End,
			YearFraction: t,
			DayCount:     ix.dayCount.Name(),
		}
	}
	if curve == nil {
		return Forecast{}, fmt.Errorf("%s: %w: no %s curve", ix.Name(), ErrMissingCurve, curveRole(regime))
	}

	out.YearFraction = t
	out.Rate = (curve.DF(out.Start)/curve.DF(out.End)-1)/t + out.Spread
	return out, nil
}

func curveRole(r Regime) string {
	if r == Fallback {
		return "fallback"
	}
	return "forwarding"
}
