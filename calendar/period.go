package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPeriod is returned when a tenor string cannot be parsed.
var ErrInvalidPeriod = errors.New("invalid period")

// TimeUnit is the unit of a Period.
type TimeUnit int

const (
	Days TimeUnit = iota
	Weeks
	Months
	Years
)

func (u TimeUnit) String() string {
	switch u {
	case Days:
		return "D"
	case Weeks:
		return "W"
	case Months:
		return "M"
	case Years:
		return "Y"
	default:
		return "?"
	}
}

// Frequency is the number of periods per year.
type Frequency int

const (
	NoFrequency      Frequency = -1
	Once             Frequency = 0
	Annual           Frequency = 1
	Semiannual       Frequency = 2
	EveryFourthMonth Frequency = 3
	Quarterly        Frequency = 4
	Bimonthly        Frequency = 6
	Monthly          Frequency = 12
	EveryFourthWeek  Frequency = 13
	Biweekly         Frequency = 26
	Weekly           Frequency = 52
	Daily            Frequency = 365
	OtherFrequency   Frequency = 999
)

// Period is a length of time such as 3M or 1Y.
type Period struct {
	Length int
	Units  TimeUnit
}

// P is shorthand for Period{Length: n, Units: u}.
func P(n int, u TimeUnit) Period {
	return Period{Length: n, Units: u}
}

// ParsePeriod converts tenor strings like "1D", "2W", "3M", "1Y" to a Period.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	var unit TimeUnit
	switch s[len(s)-1] {
	case 'D':
		unit = Days
	case 'W':
		unit = Weeks
	case 'M':
		unit = Months
	case 'Y':
		unit = Years
	default:
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Length: n, Units: unit}, nil
}

func (p Period) String() string {
	return strconv.Itoa(p.Length) + p.Units.String()
}

// Frequency returns how many periods of this length fit in a year.
// Lengths that do not divide a year evenly return OtherFrequency.
func (p Period) Frequency() Frequency {
	n := p.Length
	if n < 0 {
		n = -n
	}
	if n == 0 {
		if p.Units == Years {
			return NoFrequency
		}
		return Once
	}
	switch p.Units {
	case Years:
		if n == 1 {
			return Annual
		}
		return OtherFrequency
	case Months:
		if 12%n == 0 && n <= 12 {
			return Frequency(12 / n)
		}
		return OtherFrequency
	case Weeks:
		switch n {
		case 1:
			return Weekly
		case 2:
			return Biweekly
		case 4:
			return EveryFourthWeek
		}
		return OtherFrequency
	case Days:
		if n == 1 {
			return Daily
		}
		return OtherFrequency
	}
	return OtherFrequency
}

// Negate returns the period with its sign flipped.
func (p Period) Negate() Period {
	return Period{Length: -p.Length, Units: p.Units}
}
