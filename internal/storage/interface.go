package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/bujo/internal/models"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("not found")

// ErrConstraint is returned by the in-memory backend where a SQL backend
// would report a foreign key, unique or check violation.
var ErrConstraint = errors.New("constraint violation")

// EntryFilter scopes an entry listing. CollectionID narrows it when set.
type EntryFilter struct {
	UserID       string
	Date         string
	CollectionID *string
}

// Provider is the remote store. Reads take the owner id so each backend
// applies the same per-user row rules; ids and created_at are assigned by the store.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	// Profiles
	GetProfile(ctx context.Context, id string) (models.Profile, error)
	InsertProfile(ctx context.Context, p models.Profile) (models.Profile, error)

	// Collections
	ListCollections(ctx context.Context, userID string) ([]models.Collection, error)
	InsertCollection(ctx context.Context, c models.Collection) (models.Collection, error)

	// Entries
	ListEntries(ctx context.Context, f EntryFilter) ([]models.Entry, error)
	GetEntry(ctx context.Context, userID, id string) (models.Entry, error)
	InsertEntry(ctx context.Context, e models.Entry) (models.Entry, error)

	// Habits
	ListHabits(ctx context.Context, userID string) ([]models.HabitTracker, error)
	InsertHabit(ctx context.Context, h models.HabitTracker) (models.HabitTracker, error)
	ListHabitLogsByDate(ctx context.Context, userID, date string) ([]models.HabitLog, error)
	// ToggleHabitLog atomically inserts a log (with value) for (habitID, date) when
	// none exists and deletes it otherwise. It reports whether a log exists afterwards.
	// ErrNotFound is returned when the habit is not owned by userID.
	ToggleHabitLog(ctx context.Context, userID, habitID, date string, value float64) (bool, error)

	// Backlinks
	// ListBacklinks returns links where entryID is either endpoint. It is empty
	// unless entryID is an entry owned by userID.
	ListBacklinks(ctx context.Context, userID, entryID string) ([]models.Backlink, error)
	InsertBacklink(ctx context.Context, b models.Backlink) (models.Backlink, error)

	// Utils
	GetConfigPath() string
}
