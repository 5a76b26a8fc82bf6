package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndFormatDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2023-06-30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2023-06-30", FormatDate(d))
	assert.Equal(t, "null", FormatDate(time.Time{}))

	_, err = ParseDate("30/06/2023")
	assert.Error(t, err)
	assert.Panics(t, func() { MustParseDate("2023-02-30") })
}

func TestAddMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from   string
		months int
		want   string
	}{
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-03-31", -1, "2023-02-28"},
		{"2023-06-30", 3, "2023-09-30"},
		{"2023-11-15", 14, "2025-01-15"},
	}
	for _, tc := range cases {
		assert.Equal(t, MustParseDate(tc.want), AddMonth(MustParseDate(tc.from), tc.months), tc.from)
	}
}

func TestDaysAndRound(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 92.0, Days(MustParseDate("2023-07-03"), MustParseDate("2023-10-03")))
	assert.Equal(t, 26.161, RoundTo(0.0026161*10000, 6))
}

func TestSortAndAdjacentDates(t *testing.T) {
	t.Parallel()

	dates := []time.Time{MustParseDate("2023-07-03"), MustParseDate("2023-01-02"), MustParseDate("2023-04-03")}
	SortDates(dates)
	assert.Equal(t, MustParseDate("2023-01-02"), dates[0])

	lo, hi := AdjacentDates(MustParseDate("2023-05-01"), dates)
	assert.Equal(t, dates[1], lo)
	assert.Equal(t, dates[2], hi)

	lo, hi = AdjacentDates(MustParseDate("2022-12-01"), dates)
	assert.Equal(t, dates[0], lo)
	assert.Equal(t, dates[1], hi)

	lo, hi = AdjacentDates(MustParseDate("2024-01-01"), dates)
	assert.Equal(t, dates[1], lo)
	assert.Equal(t, dates[2], hi)

	assert.Panics(t, func() { AdjacentDates(MustParseDate("2023-05-01"), dates[:1]) })
}
