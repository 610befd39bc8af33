package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/bujo/internal/models"
	"github.com/julianstephens/bujo/internal/storage"
)

const testUser = "user-1"

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	// Stepping clock so created_at ordering is deterministic
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	tick := 0
	store.Now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}

	name := "Test User"
	if _, err := store.InsertProfile(context.Background(), models.Profile{ID: testUser, FullName: &name}); err != nil {
		t.Fatalf("failed to insert profile: %v", err)
	}
	return store
}

func TestLoad_NotInitialized(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(context.Background()); err == nil {
		t.Fatal("expected error loading an uninitialized store")
	}
}

func TestLoad_AfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	first := New(path)
	if err := first.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	first.Close()

	second := New(path)
	defer second.Close()
	if err := second.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if second.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", second.GetConfigPath(), path)
	}
}

func TestProfiles(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	p, err := store.GetProfile(ctx, testUser)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if p.FullName == nil || *p.FullName != "Test User" {
		t.Errorf("FullName = %v, want Test User", p.FullName)
	}
	if p.AvatarURL != nil {
		t.Errorf("AvatarURL = %v, want nil", *p.AvatarURL)
	}

	if _, err := store.GetProfile(ctx, "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetProfile(missing) error = %v, want ErrNotFound", err)
	}

	if _, err := store.InsertProfile(ctx, models.Profile{ID: testUser}); err == nil {
		t.Error("expected duplicate profile insert to fail")
	}
}

func TestCollections(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	titles := []string{"Daily Log", "Reading List", "Ideas"}
	for _, title := range titles {
		c, err := store.InsertCollection(ctx, models.Collection{UserID: testUser, Title: title, Type: models.CollectionJournal})
		if err != nil {
			t.Fatalf("InsertCollection(%q) error = %v", title, err)
		}
		if c.ID == "" || c.CreatedAt.IsZero() {
			t.Errorf("InsertCollection(%q) did not assign id and created_at: %+v", title, c)
		}
	}

	got, err := store.ListCollections(ctx, testUser)
	if err != nil {
		t.Fatalf("ListCollections() error = %v", err)
	}
	if len(got) != len(titles) {
		t.Fatalf("ListCollections() returned %d rows, want %d", len(got), len(titles))
	}
	for i, c := range got {
		if c.Title != titles[i] {
			t.Errorf("collection %d title = %q, want %q", i, c.Title, titles[i])
		}
		if c.IsPinned {
			t.Errorf("collection %d pinned by default", i)
		}
	}

	other, err := store.ListCollections(ctx, "someone-else")
	if err != nil {
		t.Fatalf("ListCollections(other) error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("other user sees %d collections, want 0", len(other))
	}
}

func TestCollections_RequireProfile(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.InsertCollection(context.Background(), models.Collection{UserID: "no-profile", Title: "x", Type: models.CollectionProject})
	if err == nil {
		t.Fatal("expected foreign key violation for missing profile")
	}
}

func TestEntries(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	col, err := store.InsertCollection(ctx, models.Collection{UserID: testUser, Title: "Work", Type: models.CollectionProject})
	if err != nil {
		t.Fatalf("InsertCollection() error = %v", err)
	}

	raw := "Buy milk"
	first, err := store.InsertEntry(ctx, models.Entry{
		UserID:        testUser,
		Type:          models.EntryTask,
		Status:        models.StatusTodo,
		RawText:       &raw,
		ScheduledDate: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("InsertEntry() error = %v", err)
	}
	if string(first.Content) != "null" {
		t.Errorf("Content = %s, want null", first.Content)
	}

	if _, err := store.InsertEntry(ctx, models.Entry{
		UserID:        testUser,
		CollectionID:  &col.ID,
		ParentID:      &first.ID,
		Type:          models.EntryNote,
		Status:        models.StatusTodo,
		Content:       []byte(`{"type":"doc"}`),
		ScheduledDate: "2024-03-01",
	}); err != nil {
		t.Fatalf("InsertEntry(child) error = %v", err)
	}
	if _, err := store.InsertEntry(ctx, models.Entry{
		UserID:        testUser,
		Type:          models.EntryEvent,
		Status:        models.StatusTodo,
		ScheduledDate: "2024-03-02",
	}); err != nil {
		t.Fatalf("InsertEntry(next day) error = %v", err)
	}

	day, err := store.ListEntries(ctx, storage.EntryFilter{UserID: testUser, Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(day) != 2 {
		t.Fatalf("ListEntries() returned %d rows, want 2", len(day))
	}
	if day[0].ID != first.ID {
		t.Errorf("first entry = %s, want %s", day[0].ID, first.ID)
	}
	if day[0].RawText == nil || *day[0].RawText != raw {
		t.Errorf("RawText = %v, want %q", day[0].RawText, raw)
	}
	if day[1].ParentID == nil || *day[1].ParentID != first.ID {
		t.Errorf("ParentID = %v, want %s", day[1].ParentID, first.ID)
	}
	if string(day[1].Content) != `{"type":"doc"}` {
		t.Errorf("Content = %s", day[1].Content)
	}

	scoped, err := store.ListEntries(ctx, storage.EntryFilter{UserID: testUser, Date: "2024-03-01", CollectionID: &col.ID})
	if err != nil {
		t.Fatalf("ListEntries(collection) error = %v", err)
	}
	if len(scoped) != 1 || scoped[0].CollectionID == nil || *scoped[0].CollectionID != col.ID {
		t.Errorf("ListEntries(collection) = %+v, want the single child entry", scoped)
	}

	got, err := store.GetEntry(ctx, testUser, first.ID)
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if got.Type != models.EntryTask {
		t.Errorf("Type = %s, want task", got.Type)
	}
	if _, err := store.GetEntry(ctx, "someone-else", first.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetEntry(other user) error = %v, want ErrNotFound", err)
	}
}

func TestEntries_RejectsBadType(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.InsertEntry(context.Background(), models.Entry{
		UserID:        testUser,
		Type:          "reminder",
		Status:        models.StatusTodo,
		ScheduledDate: "2024-03-01",
	})
	if err == nil {
		t.Fatal("expected check constraint violation for unknown entry type")
	}
}

func TestHabitToggle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	goal := 8.0
	habit, err := store.InsertHabit(ctx, models.HabitTracker{UserID: testUser, Name: "Water", GoalValue: &goal})
	if err != nil {
		t.Fatalf("InsertHabit() error = %v", err)
	}

	habits, err := store.ListHabits(ctx, testUser)
	if err != nil {
		t.Fatalf("ListHabits() error = %v", err)
	}
	if len(habits) != 1 || habits[0].GoalValue == nil || *habits[0].GoalValue != goal {
		t.Fatalf("ListHabits() = %+v", habits)
	}
	if habits[0].Unit != nil {
		t.Errorf("Unit = %v, want nil", *habits[0].Unit)
	}

	sequence := []bool{true, false, true}
	for i, want := range sequence {
		done, err := store.ToggleHabitLog(ctx, testUser, habit.ID, "2024-03-01", 1)
		if err != nil {
			t.Fatalf("toggle %d error = %v", i, err)
		}
		if done != want {
			t.Errorf("toggle %d = %v, want %v", i, done, want)
		}
	}

	logs, err := store.ListHabitLogsByDate(ctx, testUser, "2024-03-01")
	if err != nil {
		t.Fatalf("ListHabitLogsByDate() error = %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("ListHabitLogsByDate() returned %d rows, want 1", len(logs))
	}
	if logs[0].Value == nil || *logs[0].Value != 1 {
		t.Errorf("Value = %v, want 1", logs[0].Value)
	}

	other, err := store.ListHabitLogsByDate(ctx, testUser, "2024-03-02")
	if err != nil {
		t.Fatalf("ListHabitLogsByDate(other day) error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("other day has %d logs, want 0", len(other))
	}

	hidden, err := store.ListHabitLogsByDate(ctx, "someone-else", "2024-03-01")
	if err != nil {
		t.Fatalf("ListHabitLogsByDate(other user) error = %v", err)
	}
	if len(hidden) != 0 {
		t.Errorf("other user sees %d logs, want 0", len(hidden))
	}
}

func TestHabitToggle_NotOwned(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	habit, err := store.InsertHabit(ctx, models.HabitTracker{UserID: testUser, Name: "Read"})
	if err != nil {
		t.Fatalf("InsertHabit() error = %v", err)
	}

	if _, err := store.ToggleHabitLog(ctx, "someone-else", habit.ID, "2024-03-01", 1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("toggle by other user error = %v, want ErrNotFound", err)
	}
	if _, err := store.ToggleHabitLog(ctx, testUser, "missing", "2024-03-01", 1); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("toggle missing habit error = %v, want ErrNotFound", err)
	}
}

func TestHabitToggle_Concurrent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	habit, err := store.InsertHabit(ctx, models.HabitTracker{UserID: testUser, Name: "Stretch"})
	if err != nil {
		t.Fatalf("InsertHabit() error = %v", err)
	}

	for _, n := range []int{7, 8} {
		t.Run(fmt.Sprintf("%d toggles", n), func(t *testing.T) {
			date := fmt.Sprintf("2024-04-%02d", n)
			var wg sync.WaitGroup
			errs := make(chan error, n)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := store.ToggleHabitLog(ctx, testUser, habit.ID, date, 1); err != nil {
						errs <- err
					}
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				t.Fatalf("concurrent toggle error = %v", err)
			}

			logs, err := store.ListHabitLogsByDate(ctx, testUser, date)
			if err != nil {
				t.Fatalf("ListHabitLogsByDate() error = %v", err)
			}
			if len(logs) != n%2 {
				t.Errorf("after %d toggles found %d logs, want %d", n, len(logs), n%2)
			}
		})
	}
}

func insertTestEntry(t *testing.T, store *Store, userID string) models.Entry {
	t.Helper()
	e, err := store.InsertEntry(context.Background(), models.Entry{
		UserID:        userID,
		Type:          models.EntryNote,
		Status:        models.StatusTodo,
		ScheduledDate: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("InsertEntry() error = %v", err)
	}
	return e
}

func TestBacklinks(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	a := insertTestEntry(t, store, testUser)
	b := insertTestEntry(t, store, testUser)
	c := insertTestEntry(t, store, testUser)

	snippet := "see also"
	out, err := store.InsertBacklink(ctx, models.Backlink{SourceEntryID: a.ID, TargetEntryID: b.ID, ContextSnippet: &snippet})
	if err != nil {
		t.Fatalf("InsertBacklink() error = %v", err)
	}
	in, err := store.InsertBacklink(ctx, models.Backlink{SourceEntryID: c.ID, TargetEntryID: a.ID})
	if err != nil {
		t.Fatalf("InsertBacklink() error = %v", err)
	}
	if _, err := store.InsertBacklink(ctx, models.Backlink{SourceEntryID: b.ID, TargetEntryID: c.ID}); err != nil {
		t.Fatalf("InsertBacklink() error = %v", err)
	}

	links, err := store.ListBacklinks(ctx, testUser, a.ID)
	if err != nil {
		t.Fatalf("ListBacklinks() error = %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("ListBacklinks() returned %d rows, want 2", len(links))
	}
	if links[0].ID != out.ID || links[1].ID != in.ID {
		t.Errorf("ListBacklinks() order = [%s %s], want [%s %s]", links[0].ID, links[1].ID, out.ID, in.ID)
	}
	if links[0].ContextSnippet == nil || *links[0].ContextSnippet != snippet {
		t.Errorf("ContextSnippet = %v, want %q", links[0].ContextSnippet, snippet)
	}
	if links[1].ContextSnippet != nil {
		t.Errorf("ContextSnippet = %v, want nil", *links[1].ContextSnippet)
	}
}

func TestBacklinks_OwnerScoped(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	a := insertTestEntry(t, store, testUser)
	b := insertTestEntry(t, store, testUser)

	if _, err := store.InsertBacklink(ctx, models.Backlink{SourceEntryID: a.ID, TargetEntryID: b.ID}); err != nil {
		t.Fatalf("InsertBacklink() error = %v", err)
	}
	if _, err := store.InsertBacklink(ctx, models.Backlink{SourceEntryID: a.ID, TargetEntryID: a.ID}); err != nil {
		t.Fatalf("InsertBacklink() error = %v", err)
	}

	mine, err := store.ListBacklinks(ctx, testUser, a.ID)
	if err != nil {
		t.Fatalf("ListBacklinks() error = %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("ListBacklinks(owner) returned %d rows, want 2", len(mine))
	}

	theirs, err := store.ListBacklinks(ctx, "someone-else", a.ID)
	if err != nil {
		t.Fatalf("ListBacklinks() error = %v", err)
	}
	if len(theirs) != 0 {
		t.Errorf("ListBacklinks(other user) returned %d rows, want 0", len(theirs))
	}

	unknown, err := store.ListBacklinks(ctx, testUser, "no-such-entry")
	if err != nil {
		t.Fatalf("ListBacklinks() error = %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("ListBacklinks(unknown entry) returned %d rows, want 0", len(unknown))
	}
}
