package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"muscu/internal/core"
)

func newPriceCmd(opts *rootOptions) *cobra.Command {
	price := &cobra.Command{Use: "price", Short: "Subscription prices per category"}

	price.AddCommand(&cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set the yearly price of a category (0 means not subscribed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := opts.app.Settings.SetCategoryPrice(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s price set to %s\n", args[0], amount)
			return nil
		},
	})

	price.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show prices and cost per session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			costs, err := opts.app.Tracker.Costs(cmd.Context())
			if err != nil {
				return err
			}
			printCosts(cmd.OutOrStdout(), costs)
			return nil
		},
	})
	return price
}

func newOnboardCmd(opts *rootOptions) *cobra.Command {
	var prices map[string]string
	cmd := &cobra.Command{
		Use:   "onboard <start>",
		Short: "Set the subscription start date and prices",
		Long:  "Set the tracking start (the end follows one year later) and optionally prices, e.g. --price classes=300,gym=250.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := core.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("start %q: %w", args[0], err)
			}
			amounts := make(map[string]core.Money, len(prices))
			for id, raw := range prices {
				amounts[id] = core.ParsePrice(raw)
			}
			if err := opts.app.Settings.CompleteOnboarding(cmd.Context(), start, amounts); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s tracking from %s to %s\n",
				color.New(color.FgGreen).Sprint("✓"), start, start.SubscriptionEnd())
			ids := make([]string, 0, len(amounts))
			for id := range amounts {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				_, _ = fmt.Fprintf(out, "  %s: %s\n", id, amounts[id])
			}
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&prices, "price", nil, "category=amount pairs")
	return cmd
}

func newPeriodCmd(opts *rootOptions) *cobra.Command {
	period := &cobra.Command{Use: "period", Short: "Tracking period dates"}

	period.AddCommand(&cobra.Command{
		Use:   "start <date>",
		Short: "Set the start date; the end moves to one year later",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := core.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("start %q: %w", args[0], err)
			}
			end, err := opts.app.Settings.UpdateStartDate(cmd.Context(), start)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tracking period %s → %s\n", start, end)
			return nil
		},
	})

	period.AddCommand(&cobra.Command{
		Use:   "end <date>",
		Short: "Override the end date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			end, err := core.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("end %q: %w", args[0], err)
			}
			if err := opts.app.Settings.UpdateEndDate(cmd.Context(), end); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tracking period ends %s\n", end)
			return nil
		},
	})
	return period
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var all, yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every session (and prices with --all)",
		Long:  "Delete every logged session. With --all, prices go back to zero too. Tracking dates are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("reset deletes data, pass --yes to confirm")
			}
			ctx := cmd.Context()
			var err error
			if all {
				err = opts.app.Tracker.ResetAllData(ctx)
			} else {
				err = opts.app.Ledger.ResetSessions(ctx)
			}
			if err != nil {
				return err
			}
			what := "sessions"
			if all {
				what = "sessions and prices"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s reset\n", color.New(color.FgRed).Sprint("✗"), what)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also reset prices")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	return cmd
}
