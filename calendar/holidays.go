package calendar

import "time"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// easterSunday uses the anonymous Gregorian algorithm.
func easterSunday(y int) time.Time {
	a := y % 19
	b := y / 100
	c := y % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(y, time.Month(month), day)
}

// nthWeekday returns the n-th given weekday of the month (n >= 1).
func nthWeekday(y int, m time.Month, wd time.Weekday, n int) time.Time {
	first := date(y, m, 1)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}

func lastWeekday(y int, m time.Month, wd time.Weekday) time.Time {
	last := date(y, m+1, 0)
	offset := (int(last.Weekday()) - int(wd) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

// observedUS moves a Saturday holiday to Friday and a Sunday holiday to Monday.
func observedUS(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

func isEasterRelated(t time.Time, offsets ...int) bool {
	easter := easterSunday(t.Year())
	for _, o := range offsets {
		if sameDay(t, easter.AddDate(0, 0, o)) {
			return true
		}
	}
	return false
}

func isTargetHoliday(t time.Time) bool {
	m, d := t.Month(), t.Day()
	switch {
	case m == time.January && d == 1,
		m == time.May && d == 1,
		m == time.December && (d == 25 || d == 26):
		return true
	}
	return isEasterRelated(t, -2, 1)
}

var ukSpecialHolidays = map[string]struct{}{
	"2011-04-29": {}, // royal wedding
	"2012-06-05": {}, // diamond jubilee
	"2022-06-03": {}, // platinum jubilee
	"2022-09-19": {}, // state funeral
	"2023-05-08": {}, // coronation
}

func isUKExchangeHoliday(t time.Time) bool {
	if _, ok := ukSpecialHolidays[t.Format("2006-01-02")]; ok {
		return true
	}
	y, m, d, w := t.Year(), t.Month(), t.Day(), t.Weekday()
	switch {
	case m == time.January && (d == 1 || ((d == 2 || d == 3) && w == time.Monday)):
		return true
	case m == time.December && (d == 25 || (d == 27 && (w == time.Monday || w == time.Tuesday))):
		return true
	case m == time.December && (d == 26 || (d == 28 && (w == time.Monday || w == time.Tuesday))):
		return true
	case m == time.August && sameDay(t, lastWeekday(y, time.August, time.Monday)):
		return true
	}
	if isEasterRelated(t, -2, 1) {
		return true
	}
	earlyMay := nthWeekday(y, time.May, time.Monday, 1)
	if y == 1995 || y == 2020 {
		earlyMay = date(y, time.May, 8)
	}
	if sameDay(t, earlyMay) {
		return true
	}
	spring := lastWeekday(y, time.May, time.Monday)
	switch y {
	case 2002, 2012:
		spring = date(y, time.June, 4)
	case 2022:
		spring = date(y, time.June, 2)
	}
	return sameDay(t, spring)
}

// isUSFederalHoliday covers the holidays shared by the settlement and
// government bond calendars.
func isUSFederalHoliday(t time.Time) bool {
	y := t.Year()
	fixed := []time.Time{
		nthWeekday(y, time.January, time.Monday, 3),
		nthWeekday(y, time.February, time.Monday, 3),
		lastWeekday(y, time.May, time.Monday),
		observedUS(date(y, time.July, 4)),
		nthWeekday(y, time.September, time.Monday, 1),
		nthWeekday(y, time.October, time.Monday, 2),
		nthWeekday(y, time.November, time.Thursday, 4),
		observedUS(date(y, time.December, 25)),
	}
	if y >= 2022 {
		fixed = append(fixed, observedUS(date(y, time.June, 19)))
	}
	for _, h := range fixed {
		if sameDay(t, h) {
			return true
		}
	}
	return false
}

func isUSSettlementHoliday(t time.Time) bool {
	m, d, w := t.Month(), t.Day(), t.Weekday()
	switch {
	case m == time.January && (d == 1 || (d == 2 && w == time.Monday)):
		return true
	case m == time.December && d == 31 && w == time.Friday:
		return true
	case sameDay(t, observedUS(date(t.Year(), time.November, 11))):
		return true
	}
	return isUSFederalHoliday(t)
}

var usGovBondSpecialHolidays = map[string]struct{}{
	"2018-12-05": {}, // national day of mourning
	"2025-01-09": {}, // national day of mourning
}

func isUSGovBondHoliday(t time.Time) bool {
	if _, ok := usGovBondSpecialHolidays[t.Format("2006-01-02")]; ok {
		return true
	}
	m, d, w := t.Month(), t.Day(), t.Weekday()
	switch {
	case m == time.January && (d == 1 || (d == 2 && w == time.Monday)):
		return true
	case m == time.November && (d == 11 || (d == 12 && w == time.Monday)):
		return true
	}
	if isEasterRelated(t, -2) {
		return true
	}
	return isUSFederalHoliday(t)
}

func isSwissHoliday(t time.Time) bool {
	m, d := t.Month(), t.Day()
	switch {
	case m == time.January && (d == 1 || d == 2),
		m == time.May && d == 1,
		m == time.August && d == 1,
		m == time.December && (d == 25 || d == 26):
		return true
	}
	return isEasterRelated(t, -2, 1, 39, 50)
}

var japanSpecialHolidays = map[string]struct{}{
	"2019-04-30": {}, // enthronement
	"2019-05-01": {},
	"2019-05-02": {},
	"2019-10-22": {}, // enthronement ceremony
}

// equinoxDay is the observed equinox day in March (base 20.8431) or September
// (base 23.2488), valid for 1980-2099.
func equinoxDay(y int, base float64) int {
	n := y - 1980
	return int(base+0.242194*float64(n)) - n/4
}

// japanNationalHoliday covers the statutory dates, before substitution.
func japanNationalHoliday(t time.Time) bool {
	y, m, d := t.Year(), t.Month(), t.Day()
	switch m {
	case time.January:
		return d == 1 || sameDay(t, nthWeekday(y, time.January, time.Monday, 2))
	case time.February:
		return d == 11 || (d == 23 && y >= 2020)
	case time.March:
		return d == equinoxDay(y, 20.8431)
	case time.April:
		return d == 29
	case time.May:
		return d == 3 || d == 4 || d == 5
	case time.July:
		switch y {
		case 2020:
			return d == 23 || d == 24
		case 2021:
			return d == 22 || d == 23
		}
		return sameDay(t, nthWeekday(y, time.July, time.Monday, 3))
	case time.August:
		switch y {
		case 2020:
			return d == 10
		case 2021:
			return d == 8
		}
		return d == 11 && y >= 2016
	case time.September:
		return d == equinoxDay(y, 23.2488) || sameDay(t, nthWeekday(y, time.September, time.Monday, 3))
	case time.October:
		return y != 2020 && y != 2021 && sameDay(t, nthWeekday(y, time.October, time.Monday, 2))
	case time.November:
		return d == 3 || d == 23
	case time.December:
		return d == 23 && y >= 1989 && y <= 2018
	}
	return false
}

// japanSubstituteHoliday: a holiday on Sunday moves to the next day that is
// not itself a holiday.
func japanSubstituteHoliday(t time.Time) bool {
	if japanNationalHoliday(t) {
		return false
	}
	for p := t.AddDate(0, 0, -1); japanNationalHoliday(p); p = p.AddDate(0, 0, -1) {
		if p.Weekday() == time.Sunday {
			return true
		}
	}
	return false
}

// japanCitizensHoliday: a day between two holidays is a holiday.
func japanCitizensHoliday(t time.Time) bool {
	return !japanNationalHoliday(t) &&
		japanNationalHoliday(t.AddDate(0, 0, -1)) &&
		japanNationalHoliday(t.AddDate(0, 0, 1))
}

func isJapanHoliday(t time.Time) bool {
	m, d := t.Month(), t.Day()
	// bank holidays
	if (m == time.January && d <= 3) || (m == time.December && d == 31) {
		return true
	}
	if _, ok := japanSpecialHolidays[t.Format("2006-01-02")]; ok {
		return true
	}
	return japanNationalHoliday(t) || japanSubstituteHoliday(t) || japanCitizensHoliday(t)
}
