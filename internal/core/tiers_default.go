package core

// DefaultTiers is the canonical tier table. Keep ranks stable: stats output
// and catalog overrides refer to tiers by rank.
func DefaultTiers() []Tier {
	return []Tier{
		{Rank: 1, Name: "Vieux Rongeur", Emoji: "🐀", MinSessions: 0, MaxSessions: 10,
			Description: "Tu débutes... continue !", Color: "#78716C"},
		{Rank: 2, Name: "Mini Mouse", Emoji: "🐭", MinSessions: 11, MaxSessions: 25,
			Description: "Tu prends le rythme !", Color: "#0EA5E9"},
		{Rank: 3, Name: "Knight Mouse", Emoji: "🐭⚔️", MinSessions: 26, MaxSessions: 50,
			Description: "Un vrai guerrier !", Color: "#10B981",
			MonthlyPace: "≈ 2-4 sessions/month", WeeklyPace: "≈ 0.5-1 session/week"},
		{Rank: 4, Name: "King Rat", Emoji: "👑🐀", MinSessions: 51, MaxSessions: 100,
			Description: "Respect, ta majesté !", Color: "#F59E0B",
			MonthlyPace: "≈ 4-8 sessions/month", WeeklyPace: "≈ 1-2 sessions/week"},
		{Rank: 5, Name: "Oonga Boonga", Emoji: "🦍", MinSessions: 101, MaxSessions: 180,
			Description: "MODE BÊTE ACTIVÉ !", Color: "#EF4444",
			MonthlyPace: "≈ 8-15 sessions/month", WeeklyPace: "≈ 2-3 sessions/week"},
		{Rank: 6, Name: "Légende", Emoji: "🏆", MinSessions: 181, MaxSessions: 250,
			Description: "Tu es une LÉGENDE !", Color: "#8B5CF6",
			MonthlyPace: "≈ 15-21 sessions/month", WeeklyPace: "≈ 3-5 sessions/week"},
		{Rank: 7, Name: "Immortel", Emoji: "🔱✨", MinSessions: 251, MaxSessions: Unbounded,
			Description: "Plus rien ne t'arrête.", Color: "#EAB308",
			MonthlyPace: "≈ 21+ sessions/month", WeeklyPace: "≈ 5+ sessions/week"},
	}
}
