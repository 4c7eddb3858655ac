package services

import (
	"context"
	"fmt"
	"log/slog"

	"muscu/internal/catalog"
	"muscu/internal/core"
)

// Tracker combines the ledger, the settings and the catalog into the
// read models shown to the user. Nothing is cached: every call reads
// the current state.
type Tracker struct {
	ledger   *Ledger
	settings *SettingsService
	catalog  *catalog.Catalog
}

func NewTracker(ledger *Ledger, settings *SettingsService, cat *catalog.Catalog) *Tracker {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Tracker{ledger: ledger, settings: settings, catalog: cat}
}

func (t *Tracker) Ledger() *Ledger { return t.ledger }
func (t *Tracker) Settings() *SettingsService { return t.settings }
func (t *Tracker) Catalog() *catalog.Catalog { return t.catalog }
func (t *Tracker) Tiers() []core.Tier { return t.catalog.Tiers() }

// TierStatus resolves the tier reached by the all-time session count.
func (t *Tracker) TierStatus(ctx context.Context) (core.TierStatus, int, error) {
	total, err := t.ledger.TotalCount(ctx)
	if err != nil {
		return core.TierStatus{}, 0, err
	}
	return core.NewTierStatus(t.catalog.Tiers(), total), total, nil
}

// Costs computes the per-category and global per-session prices.
func (t *Tracker) Costs(ctx context.Context) (core.CostBreakdown, error) {
	settings, err := t.settings.Load(ctx)
	if err != nil {
		return core.CostBreakdown{}, err
	}
	counts, err := t.ledger.CountsByCategory(ctx)
	if err != nil {
		return core.CostBreakdown{}, err
	}
	return core.ComputeCosts(t.catalog.Categories(), settings.Prices, counts), nil
}

// PeriodRecords lists the records inside the configured tracking window.
// Nothing is returned while either end of the window is unset.
func (t *Tracker) PeriodRecords(ctx context.Context) ([]core.Session, error) {
	settings, err := t.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if settings.StartDate.IsEmpty() || settings.EndDate.IsEmpty() {
		return nil, nil
	}
	return t.ledger.RecordsInPeriod(ctx, settings.StartDate, settings.EndDate)
}

// Overview builds the dashboard summary as seen from today.
func (t *Tracker) Overview(ctx context.Context, today core.Date) (core.Overview, error) {
	if err := today.Validate(); err != nil {
		return core.Overview{}, err
	}
	settings, err := t.settings.Load(ctx)
	if err != nil {
		return core.Overview{}, err
	}

	status, total, err := t.TierStatus(ctx)
	if err != nil {
		return core.Overview{}, err
	}
	ov := core.Overview{
		Today:      today,
		TotalCount: total,
		Tier:       status,
		Period:     settings.Period(today),
	}

	if ov.Period.IsSet() {
		if ov.PeriodCount, err = t.ledger.CountInPeriod(ctx, settings.StartDate, settings.EndDate); err != nil {
			return core.Overview{}, err
		}
	}
	if ov.WeekCount, err = t.ledger.CountInWeek(ctx, today); err != nil {
		return core.Overview{}, err
	}
	if ov.MonthCount, err = t.ledger.CountInMonth(ctx, today); err != nil {
		return core.Overview{}, err
	}
	if ov.TodayActivities, err = t.ledger.ActivitiesOnDate(ctx, today); err != nil {
		return core.Overview{}, err
	}

	counts, err := t.ledger.CountsByCategory(ctx)
	if err != nil {
		return core.Overview{}, err
	}
	ov.Costs = core.ComputeCosts(t.catalog.Categories(), settings.Prices, counts)
	return ov, nil
}

// ResetAllData deletes every record and zeroes every price. Tracking
// dates and the onboarding flag are kept.
func (t *Tracker) ResetAllData(ctx context.Context) error {
	if err := t.ledger.ResetSessions(ctx); err != nil {
		return err
	}
	if err := t.settings.ResetPrices(ctx); err != nil {
		return fmt.Errorf("reset prices: %w", err)
	}
	slog.InfoContext(ctx, "All data reset")
	return nil
}
