package calendar

import (
	"strings"
	"time"

	"github.com/meenmo/iborfallback/utils"
)

// Calendar answers business-day questions and moves dates across business days.
type Calendar interface {
	Name() string
	IsBusinessDay(t time.Time) bool
	Adjust(t time.Time, c BusinessDayConvention) time.Time
	AddBusinessDays(t time.Time, n int) time.Time
	Advance(t time.Time, p Period, c BusinessDayConvention, endOfMonth bool) time.Time
}

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	WeekendsOnly CalendarID = "WEEKENDS"
	TARGET       CalendarID = "TARGET"
	UKExchange   CalendarID = "UK_EXCHANGE"
	USSettlement CalendarID = "US_SETTLEMENT"
	USGovBond    CalendarID = "US_GOVBOND"
	CHF          CalendarID = "CHF"
	JPN          CalendarID = "JPN"
)

var knownCalendars = map[CalendarID]func(time.Time) bool{
	WeekendsOnly: func(time.Time) bool { return false },
	TARGET:       isTargetHoliday,
	UKExchange:   isUKExchangeHoliday,
	USSettlement: isUSSettlementHoliday,
	USGovBond:    isUSGovBondHoliday,
	CHF:          isSwissHoliday,
	JPN:          isJapanHoliday,
}

// Lookup resolves a calendar name, case-insensitively. Joint calendars are
// written as "A+B".
func Lookup(name string) (Calendar, bool) {
	name = strings.TrimSpace(strings.ToUpper(name))
	if name == "" {
		return nil, false
	}
	if strings.Contains(name, "+") {
		var parts []Calendar
		for _, p := range strings.Split(name, "+") {
			c, ok := Lookup(p)
			if !ok {
				return nil, false
			}
			parts = append(parts, c)
		}
		return NewJoint(parts...), true
	}
	id := CalendarID(name)
	if _, ok := knownCalendars[id]; !ok {
		return nil, false
	}
	return id, true
}

func (id CalendarID) Name() string { return string(id) }

func (id CalendarID) isHoliday(t time.Time) bool {
	if f, ok := knownCalendars[id]; ok {
		return f(t)
	}
	return false
}

// IsBusinessDay checks weekends and the holiday rules of the calendar.
func (id CalendarID) IsBusinessDay(t time.Time) bool {
	if isWeekend(t) {
		return false
	}
	return !id.isHoliday(t)
}

func (id CalendarID) Adjust(t time.Time, c BusinessDayConvention) time.Time {
	return adjust(id.IsBusinessDay, t, c)
}

func (id CalendarID) AddBusinessDays(t time.Time, n int) time.Time {
	return addBusinessDays(id.IsBusinessDay, t, n)
}

func (id CalendarID) Advance(t time.Time, p Period, c BusinessDayConvention, endOfMonth bool) time.Time {
	return advance(id.IsBusinessDay, t, p, c, endOfMonth)
}

// Joint is a calendar whose holidays are the union of its members' holidays.
type Joint struct {
	members []Calendar
}

// NewJoint joins holidays of the given calendars.
func NewJoint(members ...Calendar) Joint {
	return Joint{members: members}
}

func (j Joint) Name() string {
	names := make([]string, len(j.members))
	for i, m := range j.members {
		names[i] = m.Name()
	}
	return strings.Join(names, "+")
}

func (j Joint) IsBusinessDay(t time.Time) bool {
	for _, m := range j.members {
		if !m.IsBusinessDay(t) {
			return false
		}
	}
	return true
}

func (j Joint) Adjust(t time.Time, c BusinessDayConvention) time.Time {
	return adjust(j.IsBusinessDay, t, c)
}

func (j Joint) AddBusinessDays(t time.Time, n int) time.Time {
	return addBusinessDays(j.IsBusinessDay, t, n)
}

func (j Joint) Advance(t time.Time, p Period, c BusinessDayConvention, endOfMonth bool) time.Time {
	return advance(j.IsBusinessDay, t, p, c, endOfMonth)
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// addBusinessDays advances n business days (n can be negative).
func addBusinessDays(isBusinessDay func(time.Time) bool, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if isBusinessDay(t) {
			n -= step
		}
	}
	return t
}

func advance(isBusinessDay func(time.Time) bool, t time.Time, p Period, c BusinessDayConvention, endOfMonth bool) time.Time {
	switch p.Units {
	case Days:
		if p.Length == 0 {
			return adjust(isBusinessDay, t, c)
		}
		return addBusinessDays(isBusinessDay, t, p.Length)
	case Weeks:
		return adjust(isBusinessDay, t.AddDate(0, 0, 7*p.Length), c)
	default:
		months := p.Length
		if p.Units == Years {
			months *= 12
		}
		target := utils.AddMonth(t, months)
		if endOfMonth && isEndOfMonth(isBusinessDay, t) {
			return lastBusinessDayOfMonth(isBusinessDay, target)
		}
		return adjust(isBusinessDay, target, c)
	}
}

// isEndOfMonth reports whether t is the last business day of its month.
func isEndOfMonth(isBusinessDay func(time.Time) bool, t time.Time) bool {
	return adjust(isBusinessDay, t.AddDate(0, 0, 1), Following).Month() != t.Month()
}

func lastBusinessDayOfMonth(isBusinessDay func(time.Time) bool, t time.Time) time.Time {
	last := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return adjust(isBusinessDay, last, Preceding)
}

// IsEndOfMonth checks if t is the last business day of its month on cal.
func IsEndOfMonth(cal Calendar, t time.Time) bool {
	return isEndOfMonth(cal.IsBusinessDay, t)
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal Calendar, t time.Time) time.Time {
	return lastBusinessDayOfMonth(cal.IsBusinessDay, t)
}
