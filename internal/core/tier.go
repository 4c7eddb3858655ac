package core

import (
	"errors"
	"fmt"
	"math"
)

// Unbounded marks the open upper end of the terminal tier.
const Unbounded = math.MaxInt

var ErrInvalidTiers = errors.New("invalid tier table")

// Tier is a gamification rank unlocked by a cumulative session count.
type Tier struct {
	Rank        int
	Name        string
	Emoji       string
	MinSessions int
	MaxSessions int // Unbounded for the last tier
	Description string
	Color       string // #RRGGBB
	MonthlyPace string
	WeeklyPace  string
}

// IsTerminal reports whether the tier is open-ended.
func (t Tier) IsTerminal() bool {
	return t.MaxSessions == Unbounded
}

// Contains reports whether count falls inside the tier's inclusive range.
func (t Tier) Contains(count int) bool {
	return count >= t.MinSessions && count <= t.MaxSessions
}

// Unlocked reports whether count has reached the tier.
func (t Tier) Unlocked(count int) bool {
	return count >= t.MinSessions
}

// Range is the number of sessions spanned by a bounded tier.
func (t Tier) Range() int {
	if t.IsTerminal() {
		return 0
	}
	return t.MaxSessions - t.MinSessions + 1
}

// RangeLabel renders "26-50" or "251+".
func (t Tier) RangeLabel() string {
	if t.IsTerminal() {
		return fmt.Sprintf("%d+", t.MinSessions)
	}
	return fmt.Sprintf("%d-%d", t.MinSessions, t.MaxSessions)
}

// TierForCount returns the first tier whose range contains count, or the
// first tier of the table when none does.
func TierForCount(tiers []Tier, count int) Tier {
	for _, t := range tiers {
		if t.Contains(count) {
			return t
		}
	}
	if len(tiers) == 0 {
		return Tier{}
	}
	return tiers[0]
}

// ProgressInTier returns the completed fraction of tier, counting sessions
// inclusively from the tier's first qualifying session: reaching MinSessions
// already yields 1/Range. The terminal tier is always complete.
func ProgressInTier(count int, tier Tier) float64 {
	if tier.IsTerminal() {
		return 1.0
	}
	r := tier.Range()
	if r <= 0 {
		return 1.0
	}
	p := float64(count-tier.MinSessions+1) / float64(r)
	return math.Min(1, math.Max(0, p))
}

// SessionsToNextTier returns how many more sessions unlock the next tier.
// The second result is false for the terminal tier.
func SessionsToNextTier(count int, tier Tier) (int, bool) {
	if tier.IsTerminal() {
		return 0, false
	}
	return tier.MaxSessions - count + 1, true
}

// NextTier returns the tier ranked right after tier.
func NextTier(tiers []Tier, tier Tier) (Tier, bool) {
	for i, t := range tiers {
		if t.Rank == tier.Rank && i+1 < len(tiers) {
			return tiers[i+1], true
		}
	}
	return Tier{}, false
}

// ValidateTiers checks that the table partitions [0, ∞): ranks run 1..n,
// the first tier starts at 0, each tier starts right after the previous one
// ends, and only the last tier is unbounded.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidTiers)
	}
	if tiers[0].MinSessions != 0 {
		return fmt.Errorf("%w: first tier starts at %d", ErrInvalidTiers, tiers[0].MinSessions)
	}
	for i, t := range tiers {
		if t.Rank != i+1 {
			return fmt.Errorf("%w: tier %q has rank %d, want %d", ErrInvalidTiers, t.Name, t.Rank, i+1)
		}
		last := i == len(tiers)-1
		if last != t.IsTerminal() {
			return fmt.Errorf("%w: only the last tier may be unbounded (tier %d)", ErrInvalidTiers, t.Rank)
		}
		if t.MaxSessions < t.MinSessions {
			return fmt.Errorf("%w: tier %d ends before it starts", ErrInvalidTiers, t.Rank)
		}
		if i > 0 && t.MinSessions != tiers[i-1].MaxSessions+1 {
			return fmt.Errorf("%w: gap or overlap before tier %d", ErrInvalidTiers, t.Rank)
		}
	}
	return nil
}
