package core

// TrackingPeriod is the configured subscription window seen from a given day.
type TrackingPeriod struct {
	Start         Date
	End           Date
	DaysPassed    int
	TotalDays     int
	DaysRemaining int
}

// IsSet reports whether both ends of the window are known.
func (p TrackingPeriod) IsSet() bool {
	return !p.Start.IsEmpty() && !p.End.IsEmpty()
}

// NewTrackingPeriod computes day counters for today. Missing dates leave
// the counters that depend on them at zero; negative spans clamp to zero.
func NewTrackingPeriod(start, end, today Date) TrackingPeriod {
	p := TrackingPeriod{Start: start, End: end}
	if !start.IsEmpty() {
		p.DaysPassed = max(0, start.DaysUntil(today))
	}
	if !end.IsEmpty() {
		p.DaysRemaining = max(0, today.DaysUntil(end))
	}
	if p.IsSet() {
		p.TotalDays = start.DaysUntil(end)
	}
	return p
}

// TierStatus is where a session count stands in the tier table.
type TierStatus struct {
	Current        Tier
	Progress       float64
	Next           Tier
	HasNext        bool
	SessionsToNext int
}

// NewTierStatus resolves the tier, progress and next step for count.
func NewTierStatus(tiers []Tier, count int) TierStatus {
	current := TierForCount(tiers, count)
	st := TierStatus{
		Current:  current,
		Progress: ProgressInTier(count, current),
	}
	st.Next, st.HasNext = NextTier(tiers, current)
	if st.HasNext {
		st.SessionsToNext, _ = SessionsToNextTier(count, current)
	}
	return st
}

// Overview is the compact dashboard summary for one day.
type Overview struct {
	Today           Date
	TotalCount      int
	Tier            TierStatus
	Period          TrackingPeriod
	PeriodCount     int
	WeekCount       int
	MonthCount      int
	TodayActivities []string
	Costs           CostBreakdown
}
