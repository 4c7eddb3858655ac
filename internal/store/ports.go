package store

import (
	"context"

	"muscu/internal/core"
)

// Ports for outbound adapters.
type (
	// SessionStore is the structured record store behind the ledger.
	// Records are unique per (date, activity).
	SessionStore interface {
		// Insert stores s unless a record for the same date and activity
		// exists. inserted is false for the duplicate case.
		Insert(ctx context.Context, s core.Session) (inserted bool, err error)
		Delete(ctx context.Context, date core.Date, activity string) (deleted bool, err error)
		DeleteByDate(ctx context.Context, date core.Date) (deleted int, err error)
		DeleteAll(ctx context.Context) error
		Exists(ctx context.Context, date core.Date, activity string) (bool, error)

		// ListAll returns every record, newest date first.
		ListAll(ctx context.Context) ([]core.Session, error)
		ListByDate(ctx context.Context, date core.Date) ([]core.Session, error)
		// ListRange returns records dated within [start, end], oldest first.
		ListRange(ctx context.Context, start, end core.Date) ([]core.Session, error)
		Count(ctx context.Context) (int, error)
		CountRange(ctx context.Context, start, end core.Date) (int, error)
	}

	// SettingsStore is a small key-value store of scalar settings.
	SettingsStore interface {
		GetSetting(ctx context.Context, key string) (value string, found bool, err error)
		SetSetting(ctx context.Context, key, value string) error
	}
)
