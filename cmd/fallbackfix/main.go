package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/meenmo/iborfallback/calendar"
	"github.com/meenmo/iborfallback/cmd/fallbackfix/internal/registry"
	"github.com/meenmo/iborfallback/config"
	"github.com/meenmo/iborfallback/currency"
	"github.com/meenmo/iborfallback/index"
	"github.com/meenmo/iborfallback/internal/logger"
	"github.com/meenmo/iborfallback/refdata"
	"github.com/meenmo/iborfallback/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	logLevel   string
	pretty     bool

	index         string
	date          string
	payDate       string
	payLag        bool
	evalDate      string
	forecastToday bool
}

type app struct {
	opts   *options
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{opts: &options{}, stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fallbackfix",
		Short:         "IBOR fixings across the benchmark cessation date",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.configPath, "config", os.Getenv("FALLBACKFIX_CONFIG"), "YAML config path")
	pf.StringVar(&a.opts.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")
	pf.BoolVar(&a.opts.pretty, "pretty", false, "human-readable logs")

	root.AddCommand(a.fixingCmd(), a.forecastCmd(), a.windowCmd(), a.datesCmd(), a.tablesCmd())
	return root
}

func (a *app) addFixingFlags(cmd *cobra.Command, withPayment bool) {
	f := cmd.Flags()
	f.StringVar(&a.opts.index, "index", "", "index name from the config")
	f.StringVar(&a.opts.date, "date", "", "fixing date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("date")
	if withPayment {
		f.StringVar(&a.opts.payDate, "pay-date", "", "coupon payment date (YYYY-MM-DD)")
		f.BoolVar(&a.opts.payLag, "pay-lag", false, "derive the payment date from the currency payment lag")
		cmd.MarkFlagsMutuallyExclusive("pay-date", "pay-lag")
	}
}

// setup loads the config and builds the registry.
func (a *app) setup(ctx context.Context) (*registry.Registry, error) {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if a.opts.logLevel != "" {
		level = a.opts.logLevel
	}
	log := logger.New(logger.Config{Level: level, Pretty: cfg.Log.Pretty || a.opts.pretty, Out: a.stderr})
	logger.SetGlobalLogger(log)
	log.Debug().Str("config", a.opts.configPath).Int("indices", len(cfg.Indices)).Msg("config loaded")

	return registry.Build(ctx, cfg, log)
}

// target resolves the index, fixing date and optional payment date flags.
func (a *app) target(reg *registry.Registry) (*index.RateIndex, time.Time, time.Time, error) {
	ix, err := reg.Index(a.opts.index)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	fixingDate, err := utils.ParseDate(a.opts.date)
	if err != nil {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("--date: %w", err)
	}
	var payDate time.Time
	switch {
	case a.opts.payDate != "":
		if payDate, err = utils.ParseDate(a.opts.payDate); err != nil {
			return nil, time.Time{}, time.Time{}, fmt.Errorf("--pay-date: %w", err)
		}
	case a.opts.payLag:
		if payDate, err = registry.PaymentDate(ix, fixingDate); err != nil {
			return nil, time.Time{}, time.Time{}, err
		}
	}
	return ix, fixingDate, payDate, nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type fixingOutput struct {
	Index       string  `json:"index"`
	FixingDate  string  `json:"fixing_date"`
	PaymentDate string  `json:"payment_date,omitempty"`
	Rate        float64 `json:"rate"`
}

func (a *app) fixingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixing",
		Short: "Fixing for a date: published when past, forecast otherwise",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			ix, fixingDate, payDate, err := a.target(reg)
			if err != nil {
				return err
			}
			req := index.FixingRequest{
				FixingDate:           fixingDate,
				PaymentDate:          payDate,
				ForecastTodaysFixing: a.opts.forecastToday,
			}
			if a.opts.evalDate != "" {
				if req.EvaluationDate, err = utils.ParseDate(a.opts.evalDate); err != nil {
					return fmt.Errorf("--eval-date: %w", err)
				}
			}
			rate, err := ix.Fixing(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := fixingOutput{Index: ix.Name(), FixingDate: utils.FormatDate(fixingDate), Rate: rate}
			if !payDate.IsZero() {
				out.PaymentDate = utils.FormatDate(payDate)
			}
			return a.writeJSON(out)
		},
	}
	a.addFixingFlags(cmd, true)
	cmd.Flags().StringVar(&a.opts.evalDate, "eval-date", "", "evaluation date (YYYY-MM-DD), default today")
	cmd.Flags().BoolVar(&a.opts.forecastToday, "forecast-today", false, "forecast a fixing on the evaluation date")
	return cmd
}

type forecastOutput struct {
	Index        string  `json:"index"`
	FixingDate   string  `json:"fixing_date"`
	PaymentDate  string  `json:"payment_date,omitempty"`
	Regime       string  `json:"regime"`
	Start        string  `json:"accrual_start"`
	End          string  `json:"accrual_end"`
	YearFraction float64 `json:"year_fraction"`
	SpreadBP     float64 `json:"spread_bp"`
	Rate         float64 `json:"rate"`
	SearchSteps  int     `json:"search_steps"`
}

func (a *app) forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast fixing with the regime and accrual period used",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			ix, fixingDate, payDate, err := a.target(reg)
			if err != nil {
				return err
			}
			f, err := ix.ForecastDetail(fixingDate, payDate)
			if err != nil {
				return err
			}
			out := forecastOutput{
				Index:        ix.Name(),
				FixingDate:   utils.FormatDate(fixingDate),
				Regime:       f.Regime.String(),
				Start:        utils.FormatDate(f.Start),
				End:          utils.FormatDate(f.End),
				YearFraction: f.YearFraction,
				SpreadBP:     utils.RoundTo(f.Spread*10000, 6),
				Rate:         f.Rate,
				SearchSteps:  f.SearchSteps,
			}
			if !payDate.IsZero() {
				out.PaymentDate = utils.FormatDate(payDate)
			}
			return a.writeJSON(out)
		},
	}
	a.addFixingFlags(cmd, true)
	return cmd
}

type windowOutput struct {
	Index         string `json:"index"`
	NominalFixing string `json:"nominal_fixing_date"`
	FixingDate    string `json:"fixing_date"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Cutoff        string `json:"cutoff"`
	Steps         int    `json:"steps"`
}

func (a *app) windowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Fallback observation window for a fixing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			ix, fixingDate, payDate, err := a.target(reg)
			if err != nil {
				return err
			}
			w, err := ix.FallbackWindow(fixingDate, payDate)
			if err != nil {
				return err
			}
			return a.writeJSON(windowOutput{
				Index:         ix.Name(),
				NominalFixing: utils.FormatDate(fixingDate),
				FixingDate:    utils.FormatDate(w.FixingDate),
				Start:         utils.FormatDate(w.Start),
				End:           utils.FormatDate(w.End),
				Cutoff:        utils.FormatDate(w.Cutoff),
				Steps:         w.Steps,
			})
		},
	}
	a.addFixingFlags(cmd, true)
	return cmd
}

type datesOutput struct {
	Index                string `json:"index"`
	Regime               string `json:"regime"`
	FixingDate           string `json:"fixing_date"`
	ValueDate            string `json:"value_date"`
	MaturityDate         string `json:"maturity_date"`
	ValueDateFallback    string `json:"value_date_fallback,omitempty"`
	MaturityDateFallback string `json:"maturity_date_fallback,omitempty"`
}

func (a *app) datesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Value and maturity dates under both regimes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			ix, fixingDate, _, err := a.target(reg)
			if err != nil {
				return err
			}
			vd, err := ix.ValueDate(fixingDate)
			if err != nil {
				return err
			}
			out := datesOutput{
				Index:        ix.Name(),
				Regime:       ix.Regime(fixingDate).String(),
				FixingDate:   utils.FormatDate(fixingDate),
				ValueDate:    utils.FormatDate(vd),
				MaturityDate: utils.FormatDate(ix.MaturityDate(vd)),
			}
			vdf, err := ix.ValueDateFallback(fixingDate, ix.ObservationShift())
			switch {
			case errors.Is(err, index.ErrMissingFallbackCalendar):
			case err != nil:
				return err
			default:
				mdf, err := ix.MaturityDateFallback(vdf)
				if err != nil {
					return err
				}
				out.ValueDateFallback = utils.FormatDate(vdf)
				out.MaturityDateFallback = utils.FormatDate(mdf)
			}
			return a.writeJSON(out)
		},
	}
	a.addFixingFlags(cmd, false)
	return cmd
}

type tableRow struct {
	Currency         string             `json:"currency"`
	FallbackCalendar string             `json:"fallback_calendar,omitempty"`
	SpreadsBP        map[string]float64 `json:"fallback_spreads_bp,omitempty"`
	CessationDates   map[string]string  `json:"cessation_dates,omitempty"`
}

func (a *app) tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Reference fallback spreads, cessation dates and calendars",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.opts.configPath)
			if err != nil {
				return err
			}
			tables, err := registry.LoadTables(cfg)
			if err != nil {
				return err
			}
			return a.writeJSON(tableRows(tables))
		},
	}
}

var tableTenors = []calendar.Period{
	calendar.P(1, calendar.Months),
	calendar.P(3, calendar.Months),
	calendar.P(6, calendar.Months),
	calendar.P(1, calendar.Years),
}

func tableRows(t *refdata.Tables) []tableRow {
	var rows []tableRow
	for _, code := range t.Currencies() {
		ccy := currency.Parse(code)
		row := tableRow{
			Currency:       code,
			SpreadsBP:      make(map[string]float64),
			CessationDates: make(map[string]string),
		}
		if cal, ok := t.FallbackCalendar(ccy); ok {
			row.FallbackCalendar = cal.Name()
		}
		for _, p := range tableTenors {
			if bp, ok := t.FallbackSpreadBP(ccy, p.Frequency()); ok {
				row.SpreadsBP[p.String()] = bp
			}
			if d, ok := t.CessationDate(ccy, p.Frequency()); ok {
				row.CessationDates[p.String()] = utils.FormatDate(d)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
