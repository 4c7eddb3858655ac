package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTiersPartitionCounts(t *testing.T) {
	tiers := DefaultTiers()
	require.NoError(t, ValidateTiers(tiers))
	require.Len(t, tiers, 7)

	for c := 0; c <= 400; c++ {
		matches := 0
		for _, tier := range tiers {
			if tier.Contains(c) {
				matches++
			}
		}
		require.Equalf(t, 1, matches, "count %d matched %d tiers", c, matches)
	}
	assert.True(t, tiers[len(tiers)-1].Contains(1_000_000))
}

func TestTierForCount(t *testing.T) {
	tiers := DefaultTiers()
	tests := []struct {
		count int
		rank  int
	}{
		{0, 1},
		{2, 1},
		{10, 1},
		{11, 2},
		{25, 2},
		{26, 3},
		{100, 4},
		{101, 5},
		{180, 5},
		{181, 6},
		{250, 6},
		{251, 7},
		{9999, 7},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.rank, TierForCount(tiers, tt.count).Rank, "count %d", tt.count)
	}
}

func TestTierForCountFallsBackToFirstTier(t *testing.T) {
	broken := []Tier{
		{Rank: 1, Name: "a", MinSessions: 5, MaxSessions: 9},
		{Rank: 2, Name: "b", MinSessions: 10, MaxSessions: Unbounded},
	}
	assert.Equal(t, "a", TierForCount(broken, 2).Name)
	assert.Equal(t, Tier{}, TierForCount(nil, 3))
}

func TestTierForCountFirstMatchWinsOnOverlap(t *testing.T) {
	overlapping := []Tier{
		{Rank: 1, Name: "a", MinSessions: 0, MaxSessions: 10},
		{Rank: 2, Name: "b", MinSessions: 5, MaxSessions: Unbounded},
	}
	assert.Equal(t, "a", TierForCount(overlapping, 7).Name)
}

func TestProgressInTier(t *testing.T) {
	for _, tier := range DefaultTiers() {
		if tier.IsTerminal() {
			assert.Equal(t, 1.0, ProgressInTier(tier.MinSessions, tier))
			assert.Equal(t, 1.0, ProgressInTier(tier.MinSessions+500, tier))
			continue
		}
		r := float64(tier.MaxSessions - tier.MinSessions + 1)
		assert.InDeltaf(t, 1/r, ProgressInTier(tier.MinSessions, tier), 1e-12, "tier %d at min", tier.Rank)
		assert.Equalf(t, 1.0, ProgressInTier(tier.MaxSessions, tier), "tier %d at max", tier.Rank)
	}

	first := DefaultTiers()[0]
	assert.InDelta(t, 3.0/11.0, ProgressInTier(2, first), 1e-12)
	// Counts outside the tier are clamped.
	assert.Equal(t, 1.0, ProgressInTier(50, first))
	second := DefaultTiers()[1]
	assert.Equal(t, 0.0, ProgressInTier(0, second))
}

func TestSessionsToNextTier(t *testing.T) {
	tiers := DefaultTiers()
	n, ok := SessionsToNextTier(2, tiers[0])
	require.True(t, ok)
	assert.Equal(t, 9, n)

	n, ok = SessionsToNextTier(10, tiers[0])
	require.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = SessionsToNextTier(300, tiers[6])
	assert.False(t, ok)
}

func TestNextTier(t *testing.T) {
	tiers := DefaultTiers()
	next, ok := NextTier(tiers, tiers[0])
	require.True(t, ok)
	assert.Equal(t, 2, next.Rank)

	_, ok = NextTier(tiers, tiers[6])
	assert.False(t, ok)
}

func TestTierLabels(t *testing.T) {
	tiers := DefaultTiers()
	assert.Equal(t, "26-50", tiers[2].RangeLabel())
	assert.Equal(t, "251+", tiers[6].RangeLabel())
	assert.Equal(t, 25, tiers[2].Range())
	assert.True(t, tiers[2].Unlocked(26))
	assert.False(t, tiers[2].Unlocked(25))
}

func TestValidateTiers(t *testing.T) {
	tests := []struct {
		name  string
		tiers []Tier
	}{
		{"empty", nil},
		{"not starting at zero", []Tier{
			{Rank: 1, MinSessions: 1, MaxSessions: Unbounded},
		}},
		{"gap", []Tier{
			{Rank: 1, MinSessions: 0, MaxSessions: 10},
			{Rank: 2, MinSessions: 12, MaxSessions: Unbounded},
		}},
		{"overlap", []Tier{
			{Rank: 1, MinSessions: 0, MaxSessions: 10},
			{Rank: 2, MinSessions: 10, MaxSessions: Unbounded},
		}},
		{"bounded last tier", []Tier{
			{Rank: 1, MinSessions: 0, MaxSessions: 10},
			{Rank: 2, MinSessions: 11, MaxSessions: 20},
		}},
		{"unbounded middle tier", []Tier{
			{Rank: 1, MinSessions: 0, MaxSessions: Unbounded},
			{Rank: 2, MinSessions: 11, MaxSessions: Unbounded},
		}},
		{"rank out of order", []Tier{
			{Rank: 2, MinSessions: 0, MaxSessions: 10},
			{Rank: 1, MinSessions: 11, MaxSessions: Unbounded},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateTiers(tt.tiers), ErrInvalidTiers)
		})
	}
}

func TestNewTierStatus(t *testing.T) {
	st := NewTierStatus(DefaultTiers(), 2)
	assert.Equal(t, 1, st.Current.Rank)
	assert.True(t, st.HasNext)
	assert.Equal(t, 2, st.Next.Rank)
	assert.Equal(t, 9, st.SessionsToNext)

	st = NewTierStatus(DefaultTiers(), 400)
	assert.Equal(t, 7, st.Current.Rank)
	assert.False(t, st.HasNext)
	assert.Equal(t, 1.0, st.Progress)
}
