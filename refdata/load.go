package refdata

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/currency"
	"github.com/meenmo/iborfallback/utils"
)

// defaultTenorKey marks a currency-wide cessation date in YAML.
const defaultTenorKey = "default"

// File is the YAML layout of a reference-data override file.
//
//	fallback_spreads_bp:
//	  USD: {1M: 11.448, 3M: 26.161}
//	cessation_dates:
//	  USD: {default: 2021-12-31, 3M: 2023-06-30}
//	fallback_calendars:
//	  USD: US_GOVBOND
type File struct {
	FallbackSpreadsBP map[string]map[string]float64 `yaml:"fallback_spreads_bp"`
	CessationDates    map[string]map[string]string  `yaml:"cessation_dates"`
	FallbackCalendars map[string]string             `yaml:"fallback_calendars"`
}

// Load returns the default tables with the file at path merged on top.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refdata: read %s: %w", path, err)
	}
	t := Default()
	if err := t.MergeYAML(data); err != nil {
		return nil, fmt.Errorf("refdata: %s: %w", path, err)
	}
	return t, nil
}

// MergeYAML adds or replaces entries from a YAML document. The tables are
// left untouched when the document is invalid.
func (t *Tables) MergeYAML(data []byte) error {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	staged := New()
	for ccy, byTenor := range f.FallbackSpreadsBP {
		c := currency.Parse(ccy)
		for tenor, bp := range byTenor {
			p, err := calendar.ParsePeriod(tenor)
			if err != nil {
				return fmt.Errorf("fallback_spreads_bp.%s: %w", ccy, err)
			}
			staged.SetFallbackSpreadBP(c, p.Frequency(), bp)
		}
	}
	for ccy, byTenor := range f.CessationDates {
		c := currency.Parse(ccy)
		for tenor, raw := range byTenor {
			d, err := utils.ParseDate(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("cessation_dates.%s.%s: %w", ccy, tenor, err)
			}
			if strings.EqualFold(tenor, defaultTenorKey) {
				staged.SetCessationDate(c, calendar.NoFrequency, d)
				continue
			}
			p, err := calendar.ParsePeriod(tenor)
			if err != nil {
				return fmt.Errorf("cessation_dates.%s: %w", ccy, err)
			}
			staged.SetCessationDate(c, p.Frequency(), d)
		}
	}
	for ccy, name := range f.FallbackCalendars {
		cal, ok := calendar.Lookup(name)
		if !ok {
			return fmt.Errorf("fallback_calendars.%s: unknown calendar %q", ccy, name)
		}
		staged.SetFallbackCalendar(currency.Parse(ccy), cal)
	}

	for k, v := range staged.spreadsBP {
		t.spreadsBP[k] = v
	}
	for k, v := range staged.cessation {
		t.cessation[k] = v
	}
	for k, v := range staged.defaultCessation {
		t.defaultCessation[k] = v
	}
	for k, v := range staged.calendars {
		t.calendars[k] = v
	}
	return nil
}
