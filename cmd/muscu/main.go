package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"muscu/internal/cli"
	"muscu/internal/core"
	"muscu/internal/events"
	applog "muscu/internal/log"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg.LogLevel, os.Stderr)

	ctx, stop := cli.SignalContext(context.Background(), logger)
	defer stop()

	app, err := cli.Bootstrap(ctx, cfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to start", applog.FieldError, err)
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	changes, _ := app.Bus.Subscribe()
	go watchChanges(ctx, changes)

	root := newRootCmd(&rootOptions{app: app, now: time.Now})
	err = root.ExecuteContext(ctx)
	if cerr := app.Close(); cerr != nil {
		logger.WarnContext(ctx, "Failed to close backend", applog.FieldError, cerr)
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions carries what every command shares.
type rootOptions struct {
	app  *cli.App
	now  func() time.Time
	date string
}

// day resolves --date, defaulting to today.
func (o *rootOptions) day() (core.Date, error) {
	if strings.TrimSpace(o.date) == "" || o.date == "today" {
		return o.today(), nil
	}
	if o.date == "yesterday" {
		return o.today().AddDays(-1), nil
	}
	d, err := core.ParseDate(o.date)
	if err != nil {
		return core.Date{}, fmt.Errorf("--date %q: %w", o.date, err)
	}
	return d, nil
}

func (o *rootOptions) today() core.Date {
	return core.DateOf(o.now())
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "muscu",
		Short:         "Personal gym session tracker",
		Long:          "Log gym sessions, climb the tiers and see what each session really costs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.date, "date", "", "day to act on (YYYY-MM-DD, today, yesterday)")

	root.AddCommand(newLogCmd(opts))
	root.AddCommand(newRemoveCmd(opts))
	root.AddCommand(newToggleCmd(opts))
	root.AddCommand(newDayCmd(opts))
	root.AddCommand(newEditDayCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newTiersCmd(opts))
	root.AddCommand(newPriceCmd(opts))
	root.AddCommand(newOnboardCmd(opts))
	root.AddCommand(newPeriodCmd(opts))
	root.AddCommand(newResetCmd(opts))
	root.AddCommand(newCatalogCmd(opts))
	return root
}

// watchChanges logs change events until the bus closes.
func watchChanges(ctx context.Context, changes <-chan events.Event) {
	for e := range changes {
		slog.DebugContext(ctx, "Change event",
			"kind", string(e.Kind),
			applog.FieldDate, e.Date.String(),
			applog.FieldActivity, e.Activity,
			applog.FieldKey, e.Key)
	}
}
