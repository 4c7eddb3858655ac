package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"muscu/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer, one local user.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert implements store.SessionStore
func (r *SQLiteRepository) Insert(ctx context.Context, s core.Session) (bool, error) {
	if err := s.Validate(); err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO gym_sessions (id, date, activity) VALUES (?, ?, ?)
		 ON CONFLICT (date, activity) DO NOTHING`,
		s.ID, s.Date.String(), s.Activity)
	if err != nil {
		return false, fmt.Errorf("insert session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert session rows affected: %w", err)
	}

	if n > 0 {
		slog.DebugContext(ctx, "Session saved to SQLite",
			"id", s.ID,
			"date", s.Date.String(),
			"activity", s.Activity)
	}
	return n > 0, nil
}

// Delete implements store.SessionStore
func (r *SQLiteRepository) Delete(ctx context.Context, date core.Date, activity string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM gym_sessions WHERE date = ? AND activity = ?`,
		date.String(), activity)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete session rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteByDate implements store.SessionStore
func (r *SQLiteRepository) DeleteByDate(ctx context.Context, date core.Date) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gym_sessions WHERE date = ?`, date.String())
	if err != nil {
		return 0, fmt.Errorf("delete sessions by date: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete sessions by date rows affected: %w", err)
	}
	return int(n), nil
}

// DeleteAll implements store.SessionStore
func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM gym_sessions`); err != nil {
		return fmt.Errorf("delete all sessions: %w", err)
	}
	slog.InfoContext(ctx, "All sessions deleted from SQLite")
	return nil
}

// Exists implements store.SessionStore
func (r *SQLiteRepository) Exists(ctx context.Context, date core.Date, activity string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM gym_sessions WHERE date = ? AND activity = ? LIMIT 1`,
		date.String(), activity).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return true, nil
}

// ListAll implements store.SessionStore
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Session, error) {
	return r.query(ctx, `SELECT id, date, activity FROM gym_sessions ORDER BY date DESC, activity ASC`)
}

// ListByDate implements store.SessionStore
func (r *SQLiteRepository) ListByDate(ctx context.Context, date core.Date) ([]core.Session, error) {
	return r.query(ctx,
		`SELECT id, date, activity FROM gym_sessions WHERE date = ? ORDER BY activity ASC`,
		date.String())
}

// ListRange implements store.SessionStore
func (r *SQLiteRepository) ListRange(ctx context.Context, start, end core.Date) ([]core.Session, error) {
	return r.query(ctx,
		`SELECT id, date, activity FROM gym_sessions
		 WHERE date BETWEEN ? AND ? ORDER BY date ASC, activity ASC`,
		start.String(), end.String())
}

// Count implements store.SessionStore. Rows with a malformed date are
// left out, matching ListAll.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	sessions, err := r.query(ctx, `SELECT id, date, activity FROM gym_sessions`)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return len(sessions), nil
}

// CountRange implements store.SessionStore
func (r *SQLiteRepository) CountRange(ctx context.Context, start, end core.Date) (int, error) {
	sessions, err := r.query(ctx,
		`SELECT id, date, activity FROM gym_sessions WHERE date BETWEEN ? AND ?`,
		start.String(), end.String())
	if err != nil {
		return 0, fmt.Errorf("count sessions in range: %w", err)
	}
	return len(sessions), nil
}

// GetSetting implements store.SettingsStore
func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting implements store.SettingsStore
func (r *SQLiteRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]core.Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []core.Session
	for rows.Next() {
		var id, date, activity string
		if err := rows.Scan(&id, &date, &activity); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			slog.WarnContext(ctx, "Skipping session with malformed date",
				"id", id,
				"date", date)
			continue
		}
		sessions = append(sessions, core.Session{ID: id, Date: d, Activity: activity})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}
