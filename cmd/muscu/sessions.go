package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"muscu/internal/catalog"
	"muscu/internal/core"
)

func newLogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "log [activity...]",
		Short: "Log one or more activities",
		Long:  "Log activities on --date (default today). With no activity, the configured default activity is logged.",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := opts.day()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{opts.app.Config.DefaultActivity}
			}

			green := color.New(color.FgGreen).SprintFunc()
			gray := color.New(color.FgHiBlack).SprintFunc()
			out := cmd.OutOrStdout()
			for _, a := range args {
				inserted, err := opts.app.Ledger.LogActivity(cmd.Context(), day, a)
				if err != nil {
					return err
				}
				label := activityLabel(opts.app.Catalog, a)
				if inserted {
					_, _ = fmt.Fprintf(out, "%s %s logged on %s\n", green("✓"), label, day)
				} else {
					_, _ = fmt.Fprintf(out, "%s %s already logged on %s\n", gray("•"), label, day)
				}
			}
			return nil
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "remove [activity]",
		Short: "Remove an activity, or every activity with --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := opts.day()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if all {
				if len(args) > 0 {
					return fmt.Errorf("--all takes no activity")
				}
				n, err := opts.app.Ledger.RemoveAllOnDate(cmd.Context(), day)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "removed %d activities on %s\n", n, day)
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("remove needs exactly one activity, or --all")
			}
			removed, err := opts.app.Ledger.RemoveActivity(cmd.Context(), day, args[0])
			if err != nil {
				return err
			}
			if !removed {
				_, _ = fmt.Fprintf(out, "%s was not logged on %s\n", args[0], day)
				return nil
			}
			_, _ = fmt.Fprintf(out, "%s %s removed from %s\n",
				color.New(color.FgRed).Sprint("✗"), activityLabel(opts.app.Catalog, args[0]), day)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "remove every activity on the day")
	return cmd
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <activity>",
		Short: "Log the activity if absent, remove it if present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := opts.day()
			if err != nil {
				return err
			}
			present, err := opts.app.Ledger.ToggleActivity(cmd.Context(), day, args[0])
			if err != nil {
				return err
			}
			state := "off"
			if present {
				state = "on"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", activityLabel(opts.app.Catalog, args[0]), state, day)
			return nil
		},
	}
}

func newDayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "day",
		Short: "Show the activities logged on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := opts.day()
			if err != nil {
				return err
			}
			activities, err := opts.app.Ledger.ActivitiesOnDate(cmd.Context(), day)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\n", color.New(color.FgCyan, color.Bold).Sprint(day.Format("Monday 2 January 2006")))
			if len(activities) == 0 {
				_, _ = fmt.Fprintf(out, "  %s\n", color.New(color.FgHiBlack).Sprint("rest day"))
				return nil
			}
			for _, a := range activities {
				_, _ = fmt.Fprintf(out, "  %s\n", activityLabel(opts.app.Catalog, a))
			}
			return nil
		},
	}
}

func newEditDayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit-day [activity...]",
		Short: "Replace the activities of a day",
		Long:  "Make the given activities exactly the ones logged on --date. No activity clears the day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := opts.day()
			if err != nil {
				return err
			}
			added, removed, err := opts.app.Ledger.SetActivitiesOnDate(cmd.Context(), day, args)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d added, %d removed\n", day, added, removed)
			return nil
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var from, to string
	var period bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged sessions",
		Long:  "List every session newest first, a --from/--to range oldest first, or the tracking --period.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				records []core.Session
				err     error
			)
			switch {
			case period:
				records, err = opts.app.Tracker.PeriodRecords(ctx)
			case from != "" || to != "":
				start, end, rerr := parseRange(from, to, opts.today())
				if rerr != nil {
					return rerr
				}
				records, err = opts.app.Ledger.RecordsInPeriod(ctx, start, end)
			default:
				records, err = opts.app.Ledger.AllRecords(ctx)
			}
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), opts.app.Catalog, records)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&period, "period", false, "only sessions inside the tracking period")
	return cmd
}

func parseRange(from, to string, today core.Date) (core.Date, core.Date, error) {
	end := today
	if to != "" {
		d, err := core.ParseDate(to)
		if err != nil {
			return core.Date{}, core.Date{}, fmt.Errorf("--to %q: %w", to, err)
		}
		end = d
	}
	if from == "" {
		return core.Date{}, core.Date{}, fmt.Errorf("--from is required with --to")
	}
	start, err := core.ParseDate(from)
	if err != nil {
		return core.Date{}, core.Date{}, fmt.Errorf("--from %q: %w", from, err)
	}
	return start, end, nil
}

func printRecords(w io.Writer, cat *catalog.Catalog, records []core.Session) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "no sessions")
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%s  %s\n", r.Date, activityLabel(cat, r.Activity)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d sessions\n", len(records))
	return err
}

func activityLabel(cat *catalog.Catalog, activity string) string {
	return cat.Emoji(strings.TrimSpace(activity)) + " " + strings.TrimSpace(activity)
}
