package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"muscu/internal/catalog"
	"muscu/internal/core"
	"muscu/internal/events"
	applog "muscu/internal/log"
	"muscu/internal/store"
)

// Ledger owns the set of logged sessions and every count derived from it.
// Counts are recomputed from the store on each call.
type Ledger struct {
	sessions store.SessionStore
	catalog  *catalog.Catalog
	bus      *events.Bus
	newID    func() string
}

func NewLedger(sessions store.SessionStore, cat *catalog.Catalog, bus *events.Bus) *Ledger {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Ledger{
		sessions: sessions,
		catalog:  cat,
		bus:      bus,
		newID:    uuid.NewString,
	}
}

func normalize(date core.Date, activity string) (core.Date, string, error) {
	if err := date.Validate(); err != nil {
		return core.Date{}, "", err
	}
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return core.Date{}, "", core.ErrEmptyActivity
	}
	return date, activity, nil
}

// LogActivity records activity on date. Logging an existing pair is a
// silent no-op; inserted reports which case happened.
func (l *Ledger) LogActivity(ctx context.Context, date core.Date, activity string) (bool, error) {
	date, activity, err := normalize(date, activity)
	if err != nil {
		return false, err
	}

	inserted, err := l.sessions.Insert(ctx, core.Session{
		ID:       l.newID(),
		Date:     date,
		Activity: activity,
	})
	if err != nil {
		return false, fmt.Errorf("log activity: %w", err)
	}
	if !inserted {
		slog.DebugContext(ctx, "Activity already logged",
			applog.NewFields().WithSession(date.String(), activity).ToSlice()...)
		return false, nil
	}

	if !l.catalog.Known(activity) {
		slog.WarnContext(ctx, "Logged activity outside the catalog",
			applog.FieldActivity, activity)
	}
	slog.InfoContext(ctx, "Activity logged",
		applog.NewFields().
			WithOperation(applog.OpLog).
			WithSession(date.String(), activity).
			ToSlice()...)
	l.publish(ctx, events.NewSessionEvent(events.SessionLogged, date, activity))
	return true, nil
}

// RemoveActivity deletes the (date, activity) record if present.
func (l *Ledger) RemoveActivity(ctx context.Context, date core.Date, activity string) (bool, error) {
	date, activity, err := normalize(date, activity)
	if err != nil {
		return false, err
	}

	removed, err := l.sessions.Delete(ctx, date, activity)
	if err != nil {
		return false, fmt.Errorf("remove activity: %w", err)
	}
	if removed {
		slog.InfoContext(ctx, "Activity removed",
			applog.NewFields().
				WithOperation(applog.OpRemove).
				WithSession(date.String(), activity).
				ToSlice()...)
		l.publish(ctx, events.NewSessionEvent(events.SessionRemoved, date, activity))
	}
	return removed, nil
}

// RemoveAllOnDate deletes every record dated date.
func (l *Ledger) RemoveAllOnDate(ctx context.Context, date core.Date) (int, error) {
	if err := date.Validate(); err != nil {
		return 0, err
	}
	n, err := l.sessions.DeleteByDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("remove activities on %s: %w", date, err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Activities removed for day",
			applog.FieldDate, date.String(),
			applog.FieldCount, n)
		l.publish(ctx, events.NewSessionEvent(events.SessionRemoved, date, ""))
	}
	return n, nil
}

// ToggleActivity flips the presence of (date, activity) and reports the
// new state.
func (l *Ledger) ToggleActivity(ctx context.Context, date core.Date, activity string) (bool, error) {
	date, activity, err := normalize(date, activity)
	if err != nil {
		return false, err
	}

	exists, err := l.sessions.Exists(ctx, date, activity)
	if err != nil {
		return false, fmt.Errorf("toggle activity: %w", err)
	}
	slog.DebugContext(ctx, "Toggling activity",
		applog.NewFields().
			WithOperation(applog.OpToggle).
			WithSession(date.String(), activity).
			ToSlice()...)
	if exists {
		if _, err := l.RemoveActivity(ctx, date, activity); err != nil {
			return true, err
		}
		return false, nil
	}
	if _, err := l.LogActivity(ctx, date, activity); err != nil {
		return false, err
	}
	return true, nil
}

// SetActivitiesOnDate makes the activities logged on date exactly wanted.
func (l *Ledger) SetActivitiesOnDate(ctx context.Context, date core.Date, wanted []string) (added, removed int, err error) {
	if err := date.Validate(); err != nil {
		return 0, 0, err
	}
	current, err := l.ActivitiesOnDate(ctx, date)
	if err != nil {
		return 0, 0, err
	}

	want := make(map[string]struct{}, len(wanted))
	for _, a := range wanted {
		if a = strings.TrimSpace(a); a != "" {
			want[a] = struct{}{}
		}
	}
	have := make(map[string]struct{}, len(current))
	for _, a := range current {
		have[a] = struct{}{}
		if _, keep := want[a]; keep {
			continue
		}
		ok, err := l.RemoveActivity(ctx, date, a)
		if err != nil {
			return added, removed, err
		}
		if ok {
			removed++
		}
	}
	for a := range want {
		if _, ok := have[a]; ok {
			continue
		}
		ok, err := l.LogActivity(ctx, date, a)
		if err != nil {
			return added, removed, err
		}
		if ok {
			added++
		}
	}
	return added, removed, nil
}

// ResetSessions deletes every record. Settings are not touched.
func (l *Ledger) ResetSessions(ctx context.Context) error {
	if err := l.sessions.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	slog.InfoContext(ctx, "All sessions reset", applog.FieldOperation, applog.OpReset)
	l.publish(ctx, events.Event{Kind: events.SessionsCleared, Timestamp: time.Now()})
	return nil
}

// ActivitiesOnDate returns the sorted set of labels logged on date.
func (l *Ledger) ActivitiesOnDate(ctx context.Context, date core.Date) ([]string, error) {
	sessions, err := l.sessions.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list activities on %s: %w", date, err)
	}
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Activity)
	}
	sort.Strings(out)
	return out, nil
}

// AllRecords returns every record, newest first.
func (l *Ledger) AllRecords(ctx context.Context) ([]core.Session, error) {
	sessions, err := l.sessions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// TotalCount is the all-time number of records. It alone drives the tier.
func (l *Ledger) TotalCount(ctx context.Context) (int, error) {
	n, err := l.sessions.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// CountInPeriod counts records dated within [start, end]. An inverted
// range counts nothing.
func (l *Ledger) CountInPeriod(ctx context.Context, start, end core.Date) (int, error) {
	if end.Before(start) {
		return 0, nil
	}
	n, err := l.sessions.CountRange(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("count sessions in period: %w", err)
	}
	return n, nil
}

// RecordsInPeriod lists records dated within [start, end], oldest first.
func (l *Ledger) RecordsInPeriod(ctx context.Context, start, end core.Date) ([]core.Session, error) {
	if end.Before(start) {
		return nil, nil
	}
	sessions, err := l.sessions.ListRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sessions in period: %w", err)
	}
	return sessions, nil
}

// CountInWeek counts records in the Monday..Sunday week containing day.
func (l *Ledger) CountInWeek(ctx context.Context, day core.Date) (int, error) {
	start, end := day.WeekBounds()
	return l.CountInPeriod(ctx, start, end)
}

// CountInMonth counts records in the calendar month containing day.
func (l *Ledger) CountInMonth(ctx context.Context, day core.Date) (int, error) {
	start, end := day.MonthBounds()
	return l.CountInPeriod(ctx, start, end)
}

// CountMatching counts records whose activity satisfies member.
func (l *Ledger) CountMatching(ctx context.Context, member func(activity string) bool) (int, error) {
	sessions, err := l.AllRecords(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range sessions {
		if member(s.Activity) {
			n++
		}
	}
	return n, nil
}

// CountByCategory counts records whose activity belongs to categoryID.
func (l *Ledger) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	if _, ok := l.catalog.Category(categoryID); !ok {
		return 0, fmt.Errorf("%w: %q", core.ErrUnknownCategory, categoryID)
	}
	return l.CountMatching(ctx, l.catalog.InCategory(categoryID))
}

// CountsByCategory counts records per category ID in a single pass.
// Activities outside the catalog are not counted anywhere.
func (l *Ledger) CountsByCategory(ctx context.Context) (map[string]int, error) {
	sessions, err := l.AllRecords(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, cat := range l.catalog.Categories() {
		counts[cat.ID] = 0
	}
	for _, s := range sessions {
		if cat, ok := l.catalog.CategoryOf(s.Activity); ok {
			counts[cat.ID]++
		}
	}
	return counts, nil
}

func (l *Ledger) publish(ctx context.Context, e events.Event) {
	if l.bus == nil {
		return
	}
	l.bus.Publish(ctx, e)
}
