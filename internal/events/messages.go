package events

import (
	"time"

	"muscu/internal/core"
)

// Kind names what changed.
type Kind string

const (
	SessionLogged   Kind = "session.logged"
	SessionRemoved  Kind = "session.removed"
	SessionsCleared Kind = "sessions.cleared"
	SettingsChanged Kind = "settings.changed"
)

// Event is a change notification. Subscribers re-read state; the event
// only says what moved.
type Event struct {
	Kind      Kind
	Date      core.Date // zero for settings and full clears
	Activity  string
	Key       string // settings key for SettingsChanged
	Timestamp time.Time
}

// NewSessionEvent describes a change to one (date, activity) record.
func NewSessionEvent(kind Kind, date core.Date, activity string) Event {
	return Event{
		Kind:      kind,
		Date:      date,
		Activity:  activity,
		Timestamp: time.Now(),
	}
}

// NewSettingsEvent describes a change to one settings key.
func NewSettingsEvent(key string) Event {
	return Event{
		Kind:      SettingsChanged,
		Key:       key,
		Timestamp: time.Now(),
	}
}
