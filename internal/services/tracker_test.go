package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muscu/internal/catalog"
	"muscu/internal/core"
	"muscu/internal/store/memory"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	st := memory.New()
	cat := catalog.Default()
	return NewTracker(NewLedger(st, cat, nil), NewSettingsService(st, cat, nil), cat)
}

func TestTrackerTwoWorkoutsAtFifty(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	for _, d := range []core.Date{core.NewDate(2025, 8, 1), core.NewDate(2025, 8, 2)} {
		_, err := tr.Ledger().LogActivity(ctx, d, "Workout")
		require.NoError(t, err)
	}

	status, total, err := tr.TierStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, tr.Tiers()[0].Rank, status.Current.Rank)

	_, err = tr.Settings().SetCategoryPrice(ctx, "gym", "50")
	require.NoError(t, err)

	costs, err := tr.Costs(ctx)
	require.NoError(t, err)

	var gym core.CategoryCost
	for _, c := range costs.Categories {
		if c.Category.ID == "gym" {
			gym = c
		}
	}
	require.True(t, gym.PerSession.OK)
	assert.InDelta(t, 25.0, gym.PerSession.Euros, 1e-9)
	assert.InDelta(t, 25.0, costs.GlobalPerSession.Euros, 1e-9)
}

func TestTrackerCostsIgnoreFreeAndUnpricedCategories(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)
	day := core.NewDate(2025, 8, 1)

	for _, a := range []string{"Dynamo", "Circuit Training", "Running", "Autres"} {
		_, err := tr.Ledger().LogActivity(ctx, day, a)
		require.NoError(t, err)
	}
	_, err := tr.Settings().SetCategoryPrice(ctx, "classes", "100")
	require.NoError(t, err)

	costs, err := tr.Costs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), costs.TotalPrice.Cents)
	assert.Equal(t, 2, costs.PaidSessionCount)
	assert.InDelta(t, 50.0, costs.GlobalPerSession.Euros, 1e-9)

	for _, c := range costs.Categories {
		assert.False(t, c.Category.Free, "free categories have no cost line")
		if c.Category.ID == "equipment" {
			assert.False(t, c.PerSession.OK)
			assert.Equal(t, "--", c.PerSession.String())
		}
	}
}

func TestTrackerOverview(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	_, err := tr.Settings().UpdateStartDate(ctx, core.NewDate(2025, 1, 1))
	require.NoError(t, err)

	for _, e := range []struct {
		date     core.Date
		activity string
	}{
		{core.NewDate(2024, 12, 30), "Workout"},
		{core.NewDate(2025, 8, 4), "Workout"},
		{core.NewDate(2025, 8, 6), "Dynamo"},
		{core.NewDate(2025, 8, 6), "Running"},
	} {
		_, err := tr.Ledger().LogActivity(ctx, e.date, e.activity)
		require.NoError(t, err)
	}

	today := core.NewDate(2025, 8, 6)
	ov, err := tr.Overview(ctx, today)
	require.NoError(t, err)

	assert.Equal(t, 4, ov.TotalCount)
	assert.Equal(t, 3, ov.PeriodCount, "the record before the start date is outside the period")
	assert.Equal(t, 3, ov.WeekCount)
	assert.Equal(t, 3, ov.MonthCount)
	assert.Equal(t, []string{"Dynamo", "Running"}, ov.TodayActivities)
	assert.Equal(t, 217, ov.Period.DaysPassed)
	assert.Equal(t, 365, ov.Period.TotalDays)
	assert.Equal(t, 148, ov.Period.DaysRemaining)
	assert.Equal(t, 1, ov.Tier.Current.Rank)
	assert.True(t, ov.Tier.HasNext)
	assert.Equal(t, 7, ov.Tier.SessionsToNext)

	_, err = tr.Overview(ctx, core.Date{})
	assert.ErrorIs(t, err, core.ErrInvalidDate)
}

func TestTrackerPeriodRecordsNeedBothDates(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	_, err := tr.Ledger().LogActivity(ctx, core.NewDate(2025, 3, 1), "Workout")
	require.NoError(t, err)

	records, err := tr.PeriodRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = tr.Settings().UpdateStartDate(ctx, core.NewDate(2025, 1, 1))
	require.NoError(t, err)

	records, err = tr.PeriodRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestTrackerResetAllDataKeepsDates(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	_, err := tr.Ledger().LogActivity(ctx, core.NewDate(2025, 3, 1), "Workout")
	require.NoError(t, err)
	_, err = tr.Settings().SetCategoryPrice(ctx, "gym", "300")
	require.NoError(t, err)
	_, err = tr.Settings().UpdateStartDate(ctx, core.NewDate(2025, 1, 1))
	require.NoError(t, err)

	require.NoError(t, tr.ResetAllData(ctx))

	total, err := tr.Ledger().TotalCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	settings, err := tr.Settings().Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, settings.Price("gym").Cents)
	assert.Equal(t, "2025-01-01", settings.StartDate.String())
	assert.Equal(t, "2026-01-01", settings.EndDate.String())
}

func TestTrackerResetSessionsKeepsPrices(t *testing.T) {
	ctx := context.Background()
	tr := newTestTracker(t)

	_, err := tr.Ledger().LogActivity(ctx, core.NewDate(2025, 3, 1), "Workout")
	require.NoError(t, err)
	_, err = tr.Settings().SetCategoryPrice(ctx, "gym", "300")
	require.NoError(t, err)

	require.NoError(t, tr.Ledger().ResetSessions(ctx))

	settings, err := tr.Settings().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), settings.Price("gym").Cents)
}
