package fixings

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MemoryStore is a map-backed store for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	rates map[string]map[string]float64
	log   zerolog.Logger
}

func NewMemoryStore(log zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		rates: make(map[string]map[string]float64),
		log:   log.With().Str("store", "memory").Logger(),
	}
}

func (m *MemoryStore) Fixing(_ context.Context, indexName string, date time.Time) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.rates[indexName][dateKey(date)]
	if !ok {
		m.log.Debug().Str("index", indexName).Str("date", dateKey(date)).Msg("fixing not found")
	}
	return val, ok, nil
}

func (m *MemoryStore) Add(_ context.Context, indexName string, date time.Time, rate float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byDate, ok := m.rates[indexName]
	if !ok {
		byDate = make(map[string]float64)
		m.rates[indexName] = byDate
	}
	byDate[dateKey(date)] = rate
	return nil
}

// Len returns the number of stored fixings.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, byDate := range m.rates {
		n += len(byDate)
	}
	return n
}
