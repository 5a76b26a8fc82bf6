package fixings_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/iborfallback/fixings"
	"github.com/meenmo/iborfallback/index"
	"github.com/meenmo/iborfallback/utils"
)

var (
	_ index.FixingHistory = (*fixings.MemoryStore)(nil)
	_ index.FixingHistory = (*fixings.PostgresStore)(nil)
	_ index.FixingHistory = (*fixings.RedisStore)(nil)
	_ fixings.Store       = (*fixings.MemoryStore)(nil)
)

const libor3M = "USDLibor3M Actual/360"

func TestMemoryStore_AddAndFixing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := fixings.NewMemoryStore(zerolog.Nop())

	require.NoError(t, s.Add(ctx, libor3M, utils.MustParseDate("2023-06-29"), 0.0552))

	rate, ok, err := s.Fixing(ctx, libor3M, utils.MustParseDate("2023-06-29"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.0552, rate)

	_, ok, err = s.Fixing(ctx, libor3M, utils.MustParseDate("2023-06-28"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Fixing(ctx, "GBPLibor3M Actual/365 (Fixed)", utils.MustParseDate("2023-06-29"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := fixings.NewMemoryStore(zerolog.Nop())
	start := utils.MustParseDate("2023-01-02")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			date := start.AddDate(0, 0, i)
			assert.NoError(t, s.Add(ctx, libor3M, date, float64(i)/1000))
			_, _, err := s.Fixing(ctx, libor3M, date)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}

func TestSeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := fixings.NewMemoryStore(zerolog.Nop())

	err := fixings.Seed(ctx, s, map[string]map[string]float64{
		libor3M: {"2023-06-28": 0.0551, "2023-06-29": 0.0552},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	err = fixings.Seed(ctx, s, map[string]map[string]float64{libor3M: {"29/06/2023": 0.05}})
	assert.Error(t, err)

	err = fixings.Seed(ctx, s, map[string]map[string]float64{libor3M: {"2023-06-30": math.NaN()}})
	assert.ErrorIs(t, err, fixings.ErrInvalidRate)
}
