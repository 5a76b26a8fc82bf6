package daycount

import (
	"strings"
	"time"

	"github.com/meenmo/iborfallback/utils"
)

// Convention is a day count convention.
type Convention string

const (
	Act360     Convention = "ACT/360"
	Act365F    Convention = "ACT/365F"
	Thirty360  Convention = "30/360"
	ThirtyE360 Convention = "30E/360"
	ActActISDA Convention = "ACT/ACT"
)

var names = map[Convention]string{
	Act360:     "Actual/360",
	Act365F:    "Actual/365 (Fixed)",
	Thirty360:  "30/360 (Bond Basis)",
	ThirtyE360: "30E/360 (Eurobond Basis)",
	ActActISDA: "Actual/Actual (ISDA)",
}

// Parse accepts the codes above and a few common aliases.
func Parse(s string) (Convention, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "ACT/360", "A360", "ACTUAL/360":
		return Act360, true
	case "ACT/365F", "ACT/365", "A365F", "ACTUAL/365 (FIXED)":
		return Act365F, true
	case "30/360", "30U/360":
		return Thirty360, true
	case "30E/360":
		return ThirtyE360, true
	case "ACT/ACT", "ACT/ACT ISDA", "ACTUAL/ACTUAL":
		return ActActISDA, true
	}
	return "", false
}

// Name is the long name used in index names and error messages.
func (c Convention) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return string(c)
}

// YearFraction computes the year fraction between two dates.
func (c Convention) YearFraction(start, end time.Time) float64 {
	switch c {
	case Act360:
		return utils.Days(start, end) / 360.0
	case Thirty360:
		return thirty360US(start, end)
	case ThirtyE360:
		return thirty360E(start, end)
	case ActActISDA:
		return actActISDA(start, end)
	default:
		return utils.Days(start, end) / 365.0
	}
}

func thirty360E(start, end time.Time) float64 {
	d1 := start.Day()
	if d1 > 30 {
		d1 = 30
	}
	d2 := end.Day()
	if d2 > 30 {
		d2 = 30
	}
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

func thirty360US(start, end time.Time) float64 {
	d1 := start.Day()
	if d1 == 31 {
		d1 = 30
	}
	d2 := end.Day()
	if d2 == 31 && d1 == 30 {
		d2 = 30
	}
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

func actActISDA(start, end time.Time) float64 {
	if end.Before(start) {
		return -actActISDA(end, start)
	}
	if start.Year() == end.Year() {
		return utils.Days(start, end) / daysInYear(start.Year())
	}
	nextYear := time.Date(start.Year()+1, 1, 1, 0, 0, 0, 0, time.UTC)
	thisYear := time.Date(end.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	sum := utils.Days(start, nextYear) / daysInYear(start.Year())
	sum += float64(end.Year() - start.Year() - 1)
	sum += utils.Days(thisYear, end) / daysInYear(end.Year())
	return sum
}

func daysInYear(y int) float64 {
	if y%4 == 0 && (y%100 != 0 || y%400 == 0) {
		return 366
	}
	return 365
}
