// Package commands holds the jcal command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jcal/internal/calendar"
	"jcal/internal/config"
	"jcal/internal/ics"
	appLog "jcal/internal/log"
	"jcal/internal/schedule"
	"jcal/internal/web"
)

// NewRootCommand creates the root command and its persistent flags.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jcal",
		Short: "Gregorian and Persian (Jalali) calendar tool",
		Long: "jcal converts dates between the Gregorian and the Persian (Jalali) calendar, " +
			"prints month grids, and serves the same conversions and annotated ICS feeds over HTTP.",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to YAML config file (created with defaults if missing)")
	flags.String("calendar", "", "Calendar: jalali or gregorian (overrides config)")
	flags.String("timezone", "", "IANA timezone (overrides config)")
	flags.String("log-level", "", "Log level: debug, info, error (overrides config)")

	return rootCmd
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <date>",
		Short: "Convert a date between calendars",
		Long: "Parse a date written in the source calendar (default: the configured calendar) " +
			"and print it in both calendars. Accepts YYYY/MM/DD[ HH:mm[:ss]] and " +
			"YYYY-MM-DD[THH:mm[:ss[.fff]]][Z|±HH:MM].",
		Example: "  jcal convert 1403/01/01\n  jcal convert --from gregorian 2024-03-20T12:00:00+03:30",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			from := cfg.Kind()
			if name, _ := cmd.Flags().GetString("from"); name != "" {
				if from, err = calendar.ParseKind(name); err != nil {
					return err
				}
			}
			layout, _ := cmd.Flags().GetString("format")
			if layout == "" {
				layout = cfg.DateFormat
			}

			d, err := calendar.Parse(from, args[0], dateOptions(cfg)...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printDate(out, d, layout)
			printDate(out, d.In(otherKind(from)), layout)
			return nil
		},
	}
	cmd.Flags().String("from", "", "Calendar the date is written in")
	cmd.Flags().String("format", "", "Output layout (tokens YYYY MM DD HH mm ss)")
	return cmd
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format <epoch-seconds|date> <layout>",
		Short: "Render an instant or a date with a layout",
		Long: "Render epoch seconds, or a date written in the configured calendar, with a layout. " +
			"Tokens: YYYY YYY YY Y, MM M, DD D, HH H, mm m, ss s; everything else is copied.",
		Example: "  jcal format 1710000000 'YYYY/MM/DD HH:mm'\n  jcal --calendar gregorian format 2024-03-07 YY/M/D",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			var in calendar.Input = calendar.Text(args[0])
			if secs, err := strconv.ParseFloat(args[0], 64); err == nil {
				in = calendar.Timestamp(secs)
			}
			d := calendar.New(cfg.Kind(), in, dateOptions(cfg)...)
			if d.IsInvalid() {
				return fmt.Errorf("invalid date %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Format(args[1]))
			return nil
		},
	}
}

// NewMonthCommand creates the month command.
func NewMonthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "month [year month]",
		Short: "Print a month grid",
		Long:  "Print a month of the configured calendar, weeks starting on the configured week_start. Defaults to the current month.",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			kind := cfg.Kind()
			today := calendar.Now(kind, dateOptions(cfg)...)
			year, month := today.FullYear(), today.MonthNumber()
			switch len(args) {
			case 2:
				if month, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("month: %w", err)
				}
				fallthrough
			case 1:
				if year, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("year: %w", err)
				}
			}

			grid := calendar.MonthGrid(kind, year, month, cfg.FirstWeekday())
			if grid == nil {
				return fmt.Errorf("month %d is outside 1..12", month)
			}
			printMonth(cmd.OutOrStdout(), kind, year, month, cfg.FirstWeekday(), grid)
			return nil
		},
	}
}

// NewLeapCommand creates the leap command.
func NewLeapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "leap <year>",
		Short: "Report whether a year is a leap year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year: %w", err)
			}
			kind := cfg.Kind()
			verdict := "is not"
			if kind.IsLeap(year) {
				verdict = "is"
			}
			lastMonth := 12
			if kind == calendar.Gregorian {
				lastMonth = 2
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s a leap year in the %s calendar (month %d has %d days)\n",
				year, verdict, kind, lastMonth, kind.MonthDays(year, lastMonth))
			return nil
		},
	}
}

// NewEventsCommand creates the events command.
func NewEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Fetch configured ICS feeds and list upcoming events",
		Long: "Fetch every configured ICS feed once, expand recurrences over horizon_days and " +
			"print each occurrence with its date in the configured calendar.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if days, _ := cmd.Flags().GetInt("days"); days > 0 {
				cfg.HorizonDays = days
			}

			collect := schedule.FromConfig(cfg, ics.NewFetcher(cfg.CacheDir, nil), nil)
			snap, err := collect(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, o := range snap.Occurrences {
				fmt.Fprintf(out, "%s  %s  %s\n", o.StartStamp.Text, o.SourceID, o.Summary)
			}
			for _, e := range snap.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", e)
			}

			if path, _ := cmd.Flags().GetString("ics"); path != "" {
				body := ics.ExportICS(snap.Occurrences, time.Now())
				if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
					return err
				}
				appLog.Info("ics export written", "path", path, "occurrences", len(snap.Occurrences))
			}
			return nil
		},
	}
	cmd.Flags().String("ics", "", "Also write the annotated occurrences to this ICS file")
	cmd.Flags().Int("days", 0, "Override horizon_days")
	return cmd
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the ICS refresh schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
				cfg.Listen = listen
			}

			appLog.Info("effective config",
				"listen", cfg.Listen,
				"timezone", cfg.Timezone,
				"calendar", cfg.Calendar,
				"refresh", cfg.RefreshCron,
				"horizon_days", cfg.HorizonDays,
				"ics_count", len(cfg.ICS),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var events web.Snapshotter
			if len(cfg.ICS) > 0 {
				collect := schedule.FromConfig(cfg, ics.NewFetcher(cfg.CacheDir, nil), nil)
				refresher, err := schedule.New(cfg.RefreshCron, cfg.Location(), collect)
				if err != nil {
					return err
				}
				if err := refresher.Start(ctx); err != nil {
					return err
				}
				defer refresher.Stop()
				events = refresher
			}

			err = web.NewServer(cfg, events).ListenAndServe(ctx)
			appLog.Info("jcal exiting")
			return err
		},
	}
	cmd.Flags().String("listen", "", "HTTP listen address (overrides config)")
	return cmd
}

// loadConfig reads --config (defaults when empty), applies the persistent
// flag overrides, validates the result and sets the log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	}

	if v, _ := flags.GetString("calendar"); v != "" {
		cfg.Calendar = v
	}
	if v, _ := flags.GetString("timezone"); v != "" {
		cfg.Timezone = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	return cfg, nil
}

func dateOptions(cfg *config.Config) []calendar.Option {
	return []calendar.Option{
		calendar.InLocation(cfg.Location()),
		calendar.WithOneBasedClock(cfg.OneBasedClock),
	}
}

func otherKind(k calendar.Kind) calendar.Kind {
	if k == calendar.Jalali {
		return calendar.Gregorian
	}
	return calendar.Jalali
}

func printDate(w io.Writer, d calendar.Date, layout string) {
	fmt.Fprintf(w, "%-9s %s  %s\n", d.Calendar(), d.Format(layout), time.Weekday(d.Day()))
}

func printMonth(w io.Writer, kind calendar.Kind, year, month int, first time.Weekday, grid []calendar.Week) {
	fmt.Fprintf(w, "%s %04d/%02d\n", kind, year, month)

	var b strings.Builder
	for i := 0; i < 7; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(time.Weekday((int(first) + i) % 7).String()[:2])
	}
	fmt.Fprintln(w, b.String())

	for _, week := range grid {
		b.Reset()
		for i, cd := range week {
			if i > 0 {
				b.WriteByte(' ')
			}
			if cd.Day == 0 {
				b.WriteString("  ")
				continue
			}
			fmt.Fprintf(&b, "%2d", cd.Day)
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

