package fixings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// RedisStore keeps one hash per index, keyed "<prefix>:<index name>", with
// ISO dates as fields.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	log    zerolog.Logger
}

// DialRedis connects to addr and checks the connection.
func DialRedis(ctx context.Context, addr, password string, db int, prefix string, log zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("fixings: connect redis %s: %w", addr, err)
	}
	return NewRedisStore(client, prefix, log), nil
}

func NewRedisStore(client redis.Cmdable, prefix string, log zerolog.Logger) *RedisStore {
	if prefix == "" {
		prefix = "fixings"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		log:    log.With().Str("store", "redis").Logger(),
	}
}

func (r *RedisStore) key(indexName string) string {
	return r.prefix + ":" + indexName
}

func (r *RedisStore) Fixing(ctx context.Context, indexName string, date time.Time) (float64, bool, error) {
	val, err := r.client.HGet(ctx, r.key(indexName), dateKey(date)).Result()
	if errors.Is(err, redis.Nil) {
		r.log.Debug().Str("index", indexName).Str("date", dateKey(date)).Msg("fixing not found")
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("fixings: hget %s %s: %w", r.key(indexName), dateKey(date), err)
	}
	rate, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("fixings: %s %s: %w", r.key(indexName), dateKey(date), err)
	}
	return rate, true, nil
}

func (r *RedisStore) Add(ctx context.Context, indexName string, date time.Time, rate float64) error {
	val := strconv.FormatFloat(rate, 'g', -1, 64)
	if err := r.client.HSet(ctx, r.key(indexName), dateKey(date), val).Err(); err != nil {
		return fmt.Errorf("fixings: hset %s %s: %w", r.key(indexName), dateKey(date), err)
	}
	return nil
}
