package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the only textual form dates take when persisted or parsed.
const DateLayout = "2006-01-02"

// SubscriptionDays is the length of a tracking period derived from its start date.
const SubscriptionDays = 365

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Session is one logged activity on one calendar day.
	Session struct {
		ID       string
		Date     Date
		Activity string
	}

	Category struct {
		ID   string
		Name string
		Free bool // Free categories never take part in cost math
	}

	Activity struct {
		Label    string
		Emoji    string
		Category string // Category ID
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyActivity   = errors.New("empty activity")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyCategory   = errors.New("empty category")
	ErrUnknownCategory = errors.New("unknown category")
	ErrFreeCategory    = errors.New("free category has no price")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String returns the ISO calendar form, or "" for an unset date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// IsEmpty returns true if the date is unset
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// AddDays returns the date n calendar days later.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to other (negative if other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool  { return d.Time.Equal(other.Time) }

// Within reports whether d lies in the inclusive range [start, end].
// An inverted range contains nothing.
func (d Date) Within(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

// SubscriptionEnd returns the end of the tracking period starting at d.
func (d Date) SubscriptionEnd() Date {
	return d.AddDays(SubscriptionDays)
}

// WeekBounds returns the Monday and Sunday of the week containing d.
func (d Date) WeekBounds() (Date, Date) {
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDays(-offset)
	return monday, monday.AddDays(6)
}

// MonthBounds returns the first and last day of d's month.
func (d Date) MonthBounds() (Date, Date) {
	first := NewDate(d.Year(), int(d.Month()), 1)
	return first, Date{Time: first.AddDate(0, 1, -1)}
}

func (s Session) Validate() error {
	if err := s.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Activity) == "" {
		return ErrEmptyActivity
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyCategory
	}
	return nil
}
