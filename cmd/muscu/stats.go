package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"muscu/internal/core"
)

// tierColors is indexed by rank - 1 and wraps past the end.
var tierColors = []color.Attribute{
	color.FgHiBlack,
	color.FgCyan,
	color.FgGreen,
	color.FgYellow,
	color.FgRed,
	color.FgMagenta,
	color.FgHiYellow,
}

func tierColor(t core.Tier) *color.Color {
	if t.Rank < 1 {
		return color.New(color.Reset)
	}
	return color.New(tierColors[(t.Rank-1)%len(tierColors)], color.Bold)
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show tier, counts and cost per session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := opts.day()
			if err != nil {
				return err
			}
			ov, err := opts.app.Tracker.Overview(cmd.Context(), day)
			if err != nil {
				return err
			}
			printOverview(cmd.OutOrStdout(), ov)
			return nil
		},
	}
}

func printOverview(w io.Writer, ov core.Overview) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	tier := ov.Tier.Current
	_, _ = fmt.Fprintf(w, "\n%s\n\n", cyan("=== Muscu ==="))
	_, _ = fmt.Fprintf(w, "%s %s  %s\n", tier.Emoji, tierColor(tier).Sprint(tier.Name), gray(tier.Description))
	_, _ = fmt.Fprintf(w, "  %d sessions  %s\n", ov.TotalCount, renderProgressBar(ov.Tier.Progress*100, 30))
	if ov.Tier.HasNext {
		_, _ = fmt.Fprintf(w, "  %d more to reach %s %s\n", ov.Tier.SessionsToNext, ov.Tier.Next.Emoji, ov.Tier.Next.Name)
	} else {
		_, _ = fmt.Fprintf(w, "  %s\n", gray("top tier reached"))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "%s\n", yellow("Activity:"))
	_, _ = fmt.Fprintf(w, "  This week:  %d\n", ov.WeekCount)
	_, _ = fmt.Fprintf(w, "  This month: %d\n", ov.MonthCount)
	if len(ov.TodayActivities) > 0 {
		_, _ = fmt.Fprintf(w, "  Today:      %s\n", strings.Join(ov.TodayActivities, ", "))
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "%s\n", yellow("Tracking period:"))
	if ov.Period.IsSet() {
		_, _ = fmt.Fprintf(w, "  %s → %s\n", ov.Period.Start, ov.Period.End)
		_, _ = fmt.Fprintf(w, "  Day %d of %d, %d remaining\n", ov.Period.DaysPassed, ov.Period.TotalDays, ov.Period.DaysRemaining)
		_, _ = fmt.Fprintf(w, "  Sessions:   %d\n", ov.PeriodCount)
	} else {
		_, _ = fmt.Fprintf(w, "  %s\n", gray("not set, run `muscu onboard <start>`"))
	}
	_, _ = fmt.Fprintln(w)

	printCosts(w, ov.Costs)
}

func printCosts(w io.Writer, costs core.CostBreakdown) {
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	_, _ = fmt.Fprintf(w, "%s\n", yellow("Cost per session:"))
	for _, c := range costs.Categories {
		price := gray("unset")
		if c.Price.IsSet() {
			price = c.Price.String()
		}
		_, _ = fmt.Fprintf(w, "  %-16s %4d sessions  %-12s %s\n", c.Category.Name, c.Count, price, c.PerSession)
	}
	_, _ = fmt.Fprintf(w, "  %-16s %4d sessions  %-12s %s\n", "Total", costs.PaidSessionCount, costs.TotalPrice, green(costs.GlobalPerSession.String()))
}

// renderProgressBar renders a text-based progress bar
func renderProgressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	bar := color.New(color.FgGreen).Sprint(strings.Repeat("█", filled)) +
		color.New(color.FgHiBlack).Sprint(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %.0f%%", bar, percent)
}

func newTiersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Show the tier table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, total, err := opts.app.Tracker.TierStatus(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range opts.app.Tracker.Tiers() {
				marker := "  "
				if t.Rank == status.Current.Rank {
					marker = "▶ "
				}
				line := fmt.Sprintf("%s%d. %s %-14s %-10s", marker, t.Rank, t.Emoji, t.Name, t.RangeLabel())
				if t.MonthlyPace != "" {
					line += "  " + t.MonthlyPace
				}
				if t.Unlocked(total) {
					line = tierColor(t).Sprint(line)
				} else {
					line = color.New(color.FgHiBlack).Sprint(line)
				}
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List categories and their activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cat := opts.app.Catalog
			for _, c := range cat.Categories() {
				name := color.New(color.FgYellow).Sprint(c.Name)
				if c.Free {
					name += color.New(color.FgHiBlack).Sprint(" (free)")
				}
				_, _ = fmt.Fprintf(out, "%s [%s]\n", name, c.ID)
				member := cat.InCategory(c.ID)
				for _, a := range cat.Activities() {
					if member(a.Label) {
						_, _ = fmt.Fprintf(out, "  %s %s\n", cat.Emoji(a.Label), a.Label)
					}
				}
			}
			return nil
		},
	}
}
