package curve

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/meenmo/iborfallback/daycount"
	"github.com/meenmo/iborfallback/utils"
)

// ErrNoNodes is returned when a curve is built without discount factors.
var ErrNoNodes = errors.New("curve: no discount factor nodes")

// Curve is a discount curve on a set of dated discount factors.
//
// Between nodes, discount factors are log-linearly interpolated (flat forward)
// on the curve's time axis. Beyond the last node the last forward is extended.
type Curve struct {
	settlement      time.Time
	nodes           []time.Time
	discountFactors map[time.Time]float64
	dayCount        daycount.Convention
}

// NewCurveFromDFs creates a curve from explicitly provided discount factors.
// A node at the settlement date with DF 1.0 is added when missing.
func NewCurveFromDFs(settlement time.Time, dfs map[time.Time]float64, dc daycount.Convention) (*Curve, error) {
	if len(dfs) == 0 {
		return nil, ErrNoNodes
	}
	if dc == "" {
		dc = daycount.Act365F
	}
	c := &Curve{
		settlement:      settlement,
		discountFactors: make(map[time.Time]float64, len(dfs)+1),
		dayCount:        dc,
	}
	for t, df := range dfs {
		if df <= 0 || math.IsNaN(df) || math.IsInf(df, 0) {
			return nil, fmt.Errorf("curve: invalid discount factor %v at %s", df, utils.FormatDate(t))
		}
		if t.Before(settlement) {
			return nil, fmt.Errorf("curve: node %s before settlement %s", utils.FormatDate(t), utils.FormatDate(settlement))
		}
		c.discountFactors[t] = df
	}
	if _, ok := c.discountFactors[settlement]; !ok {
		c.discountFactors[settlement] = 1.0
	}
	for t := range c.discountFactors {
		c.nodes = append(c.nodes, t)
	}
	utils.SortDates(c.nodes)
	return c, nil
}

// NewFlatCurve builds a curve with a constant continuously-compounded zero
// rate (decimal) out to the given horizon.
func NewFlatCurve(settlement time.Time, rate float64, dc daycount.Convention, horizon time.Time) (*Curve, error) {
	if dc == "" {
		dc = daycount.Act365F
	}
	if !horizon.After(settlement) {
		return nil, fmt.Errorf("curve: horizon %s not after settlement %s", utils.FormatDate(horizon), utils.FormatDate(settlement))
	}
	t := dc.YearFraction(settlement, horizon)
	return NewCurveFromDFs(settlement, map[time.Time]float64{horizon: math.Exp(-rate * t)}, dc)
}

// DF returns the discount factor at t. Dates on or before settlement return 1.
func (c *Curve) DF(t time.Time) float64 {
	if df, ok := c.discountFactors[t]; ok {
		return df
	}
	if !t.After(c.settlement) {
		return 1.0
	}
	if len(c.nodes) < 2 {
		return c.discountFactors[c.nodes[0]]
	}
	d1, d2 := utils.AdjacentDates(t, c.nodes)
	df1 := c.discountFactors[d1]
	df2 := c.discountFactors[d2]

	t1 := c.dayCount.YearFraction(c.settlement, d1)
	t2 := c.dayCount.YearFraction(c.settlement, d2)
	tTarget := c.dayCount.YearFraction(c.settlement, t)

	if t2 == t1 {
		return df1
	}
	forwardRate := math.Log(df1/df2) / (t2 - t1)
	return df1 * math.Exp(-forwardRate*(tTarget-t1))
}

// Settlement returns the curve's settlement date.
func (c *Curve) Settlement() time.Time {
	return c.settlement
}

// DayCount returns the curve's time-axis convention.
func (c *Curve) DayCount() daycount.Convention {
	return c.dayCount
}

// Nodes returns the curve's node dates in ascending order.
func (c *Curve) Nodes() []time.Time {
	out := make([]time.Time, len(c.nodes))
	copy(out, c.nodes)
	return out
}
