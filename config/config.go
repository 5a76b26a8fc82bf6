package config

import "sync"

// Config holds engine parameters shared by every index built after it is set.
type Config struct {
	// DefaultObservationShift is the number of business days between the end of
	// the fallback observation window and the coupon payment date when an
	// index does not set its own shift.
	DefaultObservationShift int `mapstructure:"default_observation_shift"`

	// SearchMarginSteps is added to the fallback window length in calendar
	// days and the observation shift to bound the backward fallback search. Exceeding the bound signals a calendar or
	// payment-date misconfiguration.
	SearchMarginSteps int `mapstructure:"search_margin_steps"`
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	DefaultObservationShift: 2,
	SearchMarginSteps:       10,
}

var (
	mu  sync.RWMutex
	cfg = DefaultConfig
)

// SetConfig replaces the active configuration. Indices already constructed
// keep the configuration they were built with.
func SetConfig(c Config) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
