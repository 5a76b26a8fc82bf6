package index

import "time"

// Regime tells which curve and date rules price a fixing.
type Regime int

const (
	// Standard prices off the forwarding curve with the benchmark's own dates.
	Standard Regime = iota
	// Fallback prices off the fallback curve over the shifted observation
	// window, plus the fallback spread.
	Fallback
)

func (r Regime) String() string {
	switch r {
	case Standard:
		return "standard"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Regime decides the regime of a single fixing. A fixing is standard unless a
// cessation date and a fallback curve are both set and the fixing is on or
// after the cessation date.
func (ix *RateIndex) Regime(fixingDate time.Time) Regime {
	if ix.cessationDate.IsZero() || ix.fallback == nil || fixingDate.Before(ix.cessationDate) {
		return Standard
	}
	return Fallback
}
