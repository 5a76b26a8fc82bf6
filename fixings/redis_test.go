package fixings

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/iborfallback/utils"
)

func TestRedisStore_Fixing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "", zerolog.Nop())
	ctx := context.Background()
	key := "fixings:USDLibor3M Actual/360"

	t.Run("hit", func(t *testing.T) {
		mock.ExpectHGet(key, "2023-06-29").SetVal("0.0552")

		rate, ok, err := store.Fixing(ctx, "USDLibor3M Actual/360", utils.MustParseDate("2023-06-29"))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0.0552, rate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		mock.ExpectHGet(key, "2023-06-30").RedisNil()

		_, ok, err := store.Fixing(ctx, "USDLibor3M Actual/360", utils.MustParseDate("2023-06-30"))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		mock.ExpectHGet(key, "2023-07-03").SetErr(redis.TxFailedErr)

		_, _, err := store.Fixing(ctx, "USDLibor3M Actual/360", utils.MustParseDate("2023-07-03"))
		assert.ErrorIs(t, err, redis.TxFailedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed value", func(t *testing.T) {
		mock.ExpectHGet(key, "2023-07-05").SetVal("n/a")

		_, _, err := store.Fixing(ctx, "USDLibor3M Actual/360", utils.MustParseDate("2023-07-05"))
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStore_Add(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, "rates", zerolog.Nop())

	mock.ExpectHSet("rates:CHFLibor3M Actual/360", "2021-12-30", "-0.0076").SetVal(1)

	err := store.Add(context.Background(), "CHFLibor3M Actual/360", utils.MustParseDate("2021-12-30"), -0.0076)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
