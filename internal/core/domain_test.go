package core

import (
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-08-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(NewDate(2025, 8, 1)) {
		t.Fatalf("got %v", d)
	}
	if d.String() != "2025-08-01" {
		t.Fatalf("String() = %q", d.String())
	}

	for _, bad := range []string{"", "01/08/2025", "2025-13-01", "2025-08-01T10:00:00Z"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
	if (Date{}).String() != "" {
		t.Fatalf("unset date must render empty")
	}
}

func TestDateArithmetic(t *testing.T) {
	start := NewDate(2025, 1, 1)
	if got := start.SubscriptionEnd(); !got.Equal(NewDate(2026, 1, 1)) {
		t.Fatalf("SubscriptionEnd() = %v", got)
	}
	// 2024 is a leap year: 365 days lands one day short of the anniversary.
	if got := NewDate(2024, 1, 1).SubscriptionEnd(); !got.Equal(NewDate(2024, 12, 31)) {
		t.Fatalf("leap SubscriptionEnd() = %v", got)
	}
	if n := start.DaysUntil(NewDate(2025, 3, 1)); n != 59 {
		t.Fatalf("DaysUntil = %d", n)
	}

	// 2025-08-06 is a Wednesday.
	mon, sun := NewDate(2025, 8, 6).WeekBounds()
	if !mon.Equal(NewDate(2025, 8, 4)) || !sun.Equal(NewDate(2025, 8, 10)) {
		t.Fatalf("WeekBounds = %v..%v", mon, sun)
	}
	mon, sun = NewDate(2025, 8, 10).WeekBounds()
	if !mon.Equal(NewDate(2025, 8, 4)) || !sun.Equal(NewDate(2025, 8, 10)) {
		t.Fatalf("WeekBounds(sunday) = %v..%v", mon, sun)
	}
	first, last := NewDate(2024, 2, 10).MonthBounds()
	if !first.Equal(NewDate(2024, 2, 1)) || !last.Equal(NewDate(2024, 2, 29)) {
		t.Fatalf("MonthBounds = %v..%v", first, last)
	}
}

func TestDateWithin(t *testing.T) {
	d := NewDate(2025, 8, 2)
	if !d.Within(d, d) {
		t.Fatalf("a single-day range must contain its day")
	}
	if d.Within(NewDate(2025, 8, 3), NewDate(2025, 8, 1)) {
		t.Fatalf("an inverted range must be empty")
	}
}

func TestSessionValidate(t *testing.T) {
	good := Session{Date: NewDate(2025, 1, 1), Activity: "Workout"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Session{
		{Date: Date{}, Activity: "Workout"},
		{Date: NewDate(2025, 1, 1), Activity: "  "},
	}
	for i, s := range bads {
		if err := s.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
