package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// App is the command-line application configuration.
type App struct {
	Log           LogConfig              `mapstructure:"log"`
	Store         StoreConfig            `mapstructure:"store"`
	ReferenceData string                 `mapstructure:"reference_data"`
	Engine        Config                 `mapstructure:"engine"`
	Curves        map[string]CurveConfig `mapstructure:"curves"`
	Indices       map[string]IndexConfig `mapstructure:"indices"`
}

// LogConfig selects the log level and console formatting.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// StoreConfig selects where historical fixings are read from.
// Backend is one of "memory", "postgres" or "redis". CacheSize > 0 puts an
// LRU of that many fixings in front of the postgres and redis backends.
type StoreConfig struct {
	Backend   string             `mapstructure:"backend"`
	DSN       string             `mapstructure:"dsn"`
	Addr      string             `mapstructure:"addr"`
	Password  string             `mapstructure:"password"`
	DB        int                `mapstructure:"db"`
	Prefix    string             `mapstructure:"prefix"`
	CacheSize int                `mapstructure:"cache_size"`
	Fixings   map[string]Fixings `mapstructure:"fixings"`
}

// Fixings maps ISO dates to rates (decimal) for the in-memory store.
type Fixings map[string]float64

// CurveConfig describes a discount curve either by discount-factor nodes or
// by a flat continuously-compounded rate.
type CurveConfig struct {
	Settlement string             `mapstructure:"settlement"`
	DayCount   string             `mapstructure:"day_count"`
	Nodes      map[string]float64 `mapstructure:"nodes"`
	FlatRate   *float64           `mapstructure:"flat_rate"`
	Horizon    string             `mapstructure:"horizon"`
}

// IndexConfig describes a rate index. Optional pointer fields left nil are
// resolved from the reference tables.
type IndexConfig struct {
	Kind             string   `mapstructure:"kind"` // libor, ibor, overnight, daily_libor
	Family           string   `mapstructure:"family"`
	Currency         string   `mapstructure:"currency"`
	Tenor            string   `mapstructure:"tenor"`
	SettlementDays   int      `mapstructure:"settlement_days"`
	DayCount         string   `mapstructure:"day_count"`
	FixingCalendar   string   `mapstructure:"fixing_calendar"`
	FinancialCenter  string   `mapstructure:"financial_center"`
	Convention       string   `mapstructure:"convention"`
	EndOfMonth       *bool    `mapstructure:"end_of_month"`
	ForwardingCurve  string   `mapstructure:"forwarding_curve"`
	FallbackCurve    string   `mapstructure:"fallback_curve"`
	CessationDate    string   `mapstructure:"cessation_date"`
	FallbackSpreadBP *float64 `mapstructure:"fallback_spread_bp"`
	ObservationShift *int     `mapstructure:"observation_shift"`
	FallbackCalendar string   `mapstructure:"fallback_calendar"`
}

// Load reads the application config from path. Environment variables
// prefixed with FALLBACKFIX_ override file values (e.g. FALLBACKFIX_LOG_LEVEL).
func Load(path string) (*App, error) {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.prefix", "fixings")
	v.SetDefault("engine.default_observation_shift", DefaultConfig.DefaultObservationShift)
	v.SetDefault("engine.search_margin_steps", DefaultConfig.SearchMarginSteps)

	v.SetEnvPrefix("FALLBACKFIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}
	return &app, nil
}

// Validate checks cross-references between indices and curves. Map keys are
// lower-cased by viper, so references are compared lower-cased.
func (a *App) Validate() error {
	var errs []error
	for name, ix := range a.Indices {
		if ix.ForwardingCurve != "" {
			if _, ok := a.Curves[strings.ToLower(ix.ForwardingCurve)]; !ok {
				errs = append(errs, fmt.Errorf("index %s: unknown forwarding curve %q", name, ix.ForwardingCurve))
			}
		}
		if ix.FallbackCurve != "" {
			if _, ok := a.Curves[strings.ToLower(ix.FallbackCurve)]; !ok {
				errs = append(errs, fmt.Errorf("index %s: unknown fallback curve %q", name, ix.FallbackCurve))
			}
		}
	}
	switch strings.ToLower(a.Store.Backend) {
	case "", "memory", "postgres", "redis":
	default:
		errs = append(errs, fmt.Errorf("store: unknown backend %q", a.Store.Backend))
	}
	if a.Store.CacheSize < 0 {
		errs = append(errs, errors.New("store: cache_size must be >= 0"))
	}
	if a.Engine.SearchMarginSteps < 0 {
		errs = append(errs, errors.New("engine: search_margin_steps must be >= 0"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
