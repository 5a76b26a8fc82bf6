package daycount_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/iborfallback/daycount"
	"github.com/meenmo/iborfallback/utils"
)

func TestYearFraction(t *testing.T) {
	t.Parallel()

	d := utils.MustParseDate
	cases := []struct {
		dc         daycount.Convention
		start, end string
		want       float64
	}{
		{daycount.Act360, "2023-07-03", "2023-10-03", 92.0 / 360.0},
		{daycount.Act365F, "2023-07-03", "2023-10-03", 92.0 / 365.0},
		{daycount.Thirty360, "2023-01-31", "2023-03-31", 60.0 / 360.0},
		{daycount.ThirtyE360, "2023-01-31", "2023-02-28", 28.0 / 360.0},
		{daycount.ActActISDA, "2023-12-01", "2024-03-01", 31.0/365.0 + 60.0/366.0},
		{daycount.Act360, "2023-10-03", "2023-07-03", -92.0 / 360.0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, tc.dc.YearFraction(d(tc.start), d(tc.end)), 1e-14, "%s %s-%s", tc.dc, tc.start, tc.end)
	}
}

func TestParseAndName(t *testing.T) {
	t.Parallel()

	dc, ok := daycount.Parse("actual/360")
	require.True(t, ok)
	assert.Equal(t, daycount.Act360, dc)
	assert.Equal(t, "Actual/360", dc.Name())

	dc, ok = daycount.Parse("ACT/365")
	require.True(t, ok)
	assert.Equal(t, "Actual/365 (Fixed)", dc.Name())

	_, ok = daycount.Parse("BUS/252")
	assert.False(t, ok)
	assert.Equal(t, "BUS/252", daycount.Convention("BUS/252").Name())
}
