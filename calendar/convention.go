package calendar

import (
	"strings"
	"time"
)

// BusinessDayConvention rolls a non-business day onto a business day.
type BusinessDayConvention string

const (
	Following         BusinessDayConvention = "FOLLOWING"
	ModifiedFollowing BusinessDayConvention = "MODIFIED_FOLLOWING"
	Preceding         BusinessDayConvention = "PRECEDING"
	ModifiedPreceding BusinessDayConvention = "MODIFIED_PRECEDING"
	Unadjusted        BusinessDayConvention = "UNADJUSTED"
)

// ParseConvention accepts the constant names above, case-insensitively.
func ParseConvention(s string) (BusinessDayConvention, bool) {
	c := BusinessDayConvention(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_"))
	switch c {
	case Following, ModifiedFollowing, Preceding, ModifiedPreceding, Unadjusted:
		return c, true
	}
	return "", false
}

func adjust(isBusinessDay func(time.Time) bool, t time.Time, c BusinessDayConvention) time.Time {
	switch c {
	case Unadjusted:
		return t
	case Following:
		for !isBusinessDay(t) {
			t = t.AddDate(0, 0, 1)
		}
		return t
	case Preceding:
		for !isBusinessDay(t) {
			t = t.AddDate(0, 0, -1)
		}
		return t
	case ModifiedPreceding:
		d := adjust(isBusinessDay, t, Preceding)
		if d.Month() != t.Month() {
			return adjust(isBusinessDay, t, Following)
		}
		return d
	default:
		d := adjust(isBusinessDay, t, Following)
		if d.Month() != t.Month() {
			return adjust(isBusinessDay, t, Preceding)
		}
		return d
	}
}
