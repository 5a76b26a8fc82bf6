// Package fixings stores published benchmark fixings by index name and date.
// Every store satisfies index.FixingHistory.
package fixings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/meenmo/iborfallback/utils"
)

// ErrInvalidRate is returned by Seed for non-finite rates.
var ErrInvalidRate = errors.New("fixings: invalid rate")

// Store reads and writes fixings. A missing fixing is (0, false, nil).
type Store interface {
	Fixing(ctx context.Context, indexName string, date time.Time) (float64, bool, error)
	Add(ctx context.Context, indexName string, date time.Time, rate float64) error
}

// Seed adds fixings given as index name -> ISO date -> rate.
func Seed(ctx context.Context, s Store, byIndex map[string]map[string]float64) error {
	for name, byDate := range byIndex {
		for raw, rate := range byDate {
			date, err := utils.ParseDate(raw)
			if err != nil {
				return fmt.Errorf("fixings: %s: %w", name, err)
			}
			if math.IsNaN(rate) || math.IsInf(rate, 0) {
				return fmt.Errorf("%w: %s %s", ErrInvalidRate, name, raw)
			}
			if err := s.Add(ctx, name, date, rate); err != nil {
				return err
			}
		}
	}
	return nil
}

func dateKey(t time.Time) string {
	return t.Format(utils.DateLayout)
}
