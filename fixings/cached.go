package fixings

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
)

// CachedStore keeps recently read fixings in memory in front of a slower
// store. Only hits are cached; a miss is asked again next time.
type CachedStore struct {
	next  Store
	cache *lru.Cache
	log   zerolog.Logger
}

// NewCachedStore wraps next with an LRU cache holding up to size fixings.
func NewCachedStore(next Store, size int, log zerolog.Logger) (*CachedStore, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("fixings: create cache: %w", err)
	}
	return &CachedStore{
		next:  next,
		cache: cache,
		log:   log.With().Str("store", "cache").Logger(),
	}, nil
}

func cacheKey(indexName string, date time.Time) string {
	return indexName + "@" + dateKey(date)
}

func (s *CachedStore) Fixing(ctx context.Context, indexName string, date time.Time) (float64, bool, error) {
	key := cacheKey(indexName, date)
	if v, ok := s.cache.Get(key); ok {
		return v.(float64), true, nil
	}
	rate, ok, err := s.next.Fixing(ctx, indexName, date)
	if err != nil || !ok {
		return rate, ok, err
	}
	s.cache.Add(key, rate)
	return rate, true, nil
}

// Add writes through to the wrapped store and refreshes the cached value.
func (s *CachedStore) Add(ctx context.Context, indexName string, date time.Time, rate float64) error {
	if err := s.next.Add(ctx, indexName, date, rate); err != nil {
		s.cache.Remove(cacheKey(indexName, date))
		return err
	}
	s.cache.Add(cacheKey(indexName, date), rate)
	return nil
}

// Len returns the number of cached fixings.
func (s *CachedStore) Len() int {
	return s.cache.Len()
}
