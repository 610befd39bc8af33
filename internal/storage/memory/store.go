// Package memory is a process-local Provider used by tests and by the
// "memory" database driver. It enforces the same keys and constraints as the
// SQL schema so callers observe identical failures.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/bujo/internal/models"
	"github.com/julianstephens/bujo/internal/storage"
)

type logKey struct {
	habitID string
	date    string
}

type Store struct {
	mu sync.RWMutex

	profiles    map[string]models.Profile
	collections map[string]models.Collection
	entries     map[string]models.Entry
	habits      map[string]models.HabitTracker
	logs        map[logKey]models.HabitLog
	backlinks   map[string]models.Backlink

	Now   func() time.Time
	NewID func() string
}

var _ storage.Provider = (*Store)(nil)

func New() *Store {
	return &Store{
		profiles:    make(map[string]models.Profile),
		collections: make(map[string]models.Collection),
		entries:     make(map[string]models.Entry),
		habits:      make(map[string]models.HabitTracker),
		logs:        make(map[logKey]models.HabitLog),
		backlinks:   make(map[string]models.Backlink),
		Now:         time.Now,
		NewID:       func() string { return uuid.New().String() },
	}
}

func (s *Store) Init(ctx context.Context) error { return nil }
func (s *Store) Load(ctx context.Context) error { return nil }
func (s *Store) Close() error                   { return nil }

func (s *Store) GetConfigPath() string {
	return "memory"
}

func (s *Store) stamp() time.Time {
	return s.Now().UTC()
}

// byCreation sorts on created_at then id, matching the SQL ORDER BY
func byCreation[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return idi < idj
	})
}

func (s *Store) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) InsertProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[p.ID]; exists {
		return models.Profile{}, fmt.Errorf("duplicate profile %s: %w", p.ID, storage.ErrConstraint)
	}
	s.profiles[p.ID] = p
	return p, nil
}

func (s *Store) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Collection, 0)
	for _, c := range s.collections {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	byCreation(out, func(c models.Collection) (time.Time, string) { return c.CreatedAt, c.ID })
	return out, nil
}

func (s *Store) InsertCollection(ctx context.Context, c models.Collection) (models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[c.UserID]; !ok {
		return models.Collection{}, fmt.Errorf("collection owner %s has no profile: %w", c.UserID, storage.ErrConstraint)
	}
	if !c.Type.Valid() {
		return models.Collection{}, fmt.Errorf("collection type %q: %w", c.Type, storage.ErrConstraint)
	}

	c.ID = s.NewID()
	c.CreatedAt = s.stamp()
	s.collections[c.ID] = c
	return c, nil
}

func (s *Store) ListEntries(ctx context.Context, f storage.EntryFilter) ([]models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Entry, 0)
	for _, e := range s.entries {
		if e.UserID != f.UserID || e.ScheduledDate != f.Date {
			continue
		}
		if f.CollectionID != nil && (e.CollectionID == nil || *e.CollectionID != *f.CollectionID) {
			continue
		}
		out = append(out, e)
	}
	byCreation(out, func(e models.Entry) (time.Time, string) { return e.CreatedAt, e.ID })
	return out, nil
}

func (s *Store) GetEntry(ctx context.Context, userID, id string) (models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return models.Entry{}, storage.ErrNotFound
	}
	return e, nil
}

func (s *Store) InsertEntry(ctx context.Context, e models.Entry) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !e.Type.Valid() {
		return models.Entry{}, fmt.Errorf("entry type %q: %w", e.Type, storage.ErrConstraint)
	}
	if !e.Status.Valid() {
		return models.Entry{}, fmt.Errorf("entry status %q: %w", e.Status, storage.ErrConstraint)
	}
	if e.CollectionID != nil {
		if _, ok := s.collections[*e.CollectionID]; !ok {
			return models.Entry{}, fmt.Errorf("collection %s: %w", *e.CollectionID, storage.ErrConstraint)
		}
	}
	if e.ParentID != nil {
		if _, ok := s.entries[*e.ParentID]; !ok {
			return models.Entry{}, fmt.Errorf("parent entry %s: %w", *e.ParentID, storage.ErrConstraint)
		}
	}
	if len(e.Content) == 0 {
		e.Content = []byte("null")
	}

	e.ID = s.NewID()
	e.CreatedAt = s.stamp()
	s.entries[e.ID] = e
	return e, nil
}

func (s *Store) ListHabits(ctx context.Context, userID string) ([]models.HabitTracker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.HabitTracker, 0)
	for _, h := range s.habits {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	byCreation(out, func(h models.HabitTracker) (time.Time, string) { return h.CreatedAt, h.ID })
	return out, nil
}

func (s *Store) InsertHabit(ctx context.Context, h models.HabitTracker) (models.HabitTracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(h.Frequency) == 0 {
		h.Frequency = []byte("null")
	}
	h.ID = s.NewID()
	h.CreatedAt = s.stamp()
	s.habits[h.ID] = h
	return h, nil
}

func (s *Store) ownsHabit(userID, habitID string) bool {
	h, ok := s.habits[habitID]
	return ok && h.UserID == userID
}

func (s *Store) ListHabitLogsByDate(ctx context.Context, userID, date string) ([]models.HabitLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.HabitLog, 0)
	for key, l := range s.logs {
		if key.date == date && s.ownsHabit(userID, key.habitID) {
			out = append(out, l)
		}
	}
	byCreation(out, func(l models.HabitLog) (time.Time, string) { return l.CreatedAt, l.ID })
	return out, nil
}

func (s *Store) ToggleHabitLog(ctx context.Context, userID, habitID, date string, value float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ownsHabit(userID, habitID) {
		return false, storage.ErrNotFound
	}

	key := logKey{habitID, date}
	if _, exists := s.logs[key]; exists {
		delete(s.logs, key)
		return false, nil
	}
	s.logs[key] = models.HabitLog{
		ID:          s.NewID(),
		HabitID:     habitID,
		CompletedAt: date,
		Value:       &value,
		CreatedAt:   s.stamp(),
	}
	return true, nil
}

func (s *Store) ListBacklinks(ctx context.Context, userID, entryID string) ([]models.Backlink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Backlink, 0)
	if e, ok := s.entries[entryID]; !ok || e.UserID != userID {
		return out, nil
	}
	for _, b := range s.backlinks {
		if b.Touches(entryID) {
			out = append(out, b)
		}
	}
	byCreation(out, func(b models.Backlink) (time.Time, string) { return b.CreatedAt, b.ID })
	return out, nil
}

func (s *Store) InsertBacklink(ctx context.Context, b models.Backlink) (models.Backlink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.NewID()
	b.CreatedAt = s.stamp()
	s.backlinks[b.ID] = b
	return b, nil
}
