package memory

import (
	"context"
	"sort"
	"sync"

	"muscu/internal/core"
)

type sessionKey struct {
	date     string
	activity string
}

// Store keeps sessions and settings in process memory.
type Store struct {
	mu       sync.Mutex
	items    map[sessionKey]core.Session
	settings map[string]string
}

func New() *Store {
	return &Store{
		items:    make(map[sessionKey]core.Session),
		settings: make(map[string]string),
	}
}

func keyOf(date core.Date, activity string) sessionKey {
	return sessionKey{date: date.String(), activity: activity}
}

// Insert stores the session unless its (date, activity) pair exists.
func (s *Store) Insert(_ context.Context, sess core.Session) (bool, error) {
	if err := sess.Validate(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := keyOf(sess.Date, sess.Activity)
	if _, ok := s.items[k]; ok {
		return false, nil
	}
	s.items[k] = sess
	return true, nil
}

func (s *Store) Delete(_ context.Context, date core.Date, activity string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := keyOf(date, activity)
	if _, ok := s.items[k]; !ok {
		return false, nil
	}
	delete(s.items, k)
	return true, nil
}

func (s *Store) DeleteByDate(_ context.Context, date core.Date) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := date.String()
	n := 0
	for k := range s.items {
		if k.date == day {
			delete(s.items, k)
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[sessionKey]core.Session)
	return nil
}

func (s *Store) Exists(_ context.Context, date core.Date, activity string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[keyOf(date, activity)]
	return ok, nil
}

// ListAll returns every session, newest date first.
func (s *Store) ListAll(_ context.Context) ([]core.Session, error) {
	out := s.filter(func(core.Session) bool { return true })
	sortSessions(out, true)
	return out, nil
}

func (s *Store) ListByDate(_ context.Context, date core.Date) ([]core.Session, error) {
	out := s.filter(func(sess core.Session) bool { return sess.Date.Equal(date) })
	sortSessions(out, false)
	return out, nil
}

// ListRange returns sessions dated within [start, end], oldest first.
func (s *Store) ListRange(_ context.Context, start, end core.Date) ([]core.Session, error) {
	out := s.filter(func(sess core.Session) bool { return sess.Date.Within(start, end) })
	sortSessions(out, false)
	return out, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

func (s *Store) CountRange(ctx context.Context, start, end core.Date) (int, error) {
	out, err := s.ListRange(ctx, start, end)
	return len(out), err
}

func (s *Store) GetSetting(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *Store) SetSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

// Close is a no-op; it lets the store stand in for persistent backends.
func (s *Store) Close() error {
	return nil
}

func (s *Store) filter(keep func(core.Session) bool) []core.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Session, 0, len(s.items))
	for _, sess := range s.items {
		if keep(sess) {
			out = append(out, sess)
		}
	}
	return out
}

// sortSessions orders by date, then activity so output is stable.
func sortSessions(items []core.Session, newestFirst bool) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Date.Equal(b.Date) {
			if newestFirst {
				return a.Date.After(b.Date)
			}
			return a.Date.Before(b.Date)
		}
		return a.Activity < b.Activity
	})
}
