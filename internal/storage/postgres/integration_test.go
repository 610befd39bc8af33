package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/julianstephens/bujo/internal/models"
	"github.com/julianstephens/bujo/internal/storage"
)

// TestStore_Integration runs against a real database.
// Example: POSTGRES_TEST_URL="postgres://bujo_user@localhost:5432/bujo_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	ctx := context.Background()
	store := New(connStr)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	userID := uuid.New().String()
	if _, err := store.InsertProfile(ctx, models.NewProfile(models.User{ID: userID})); err != nil {
		t.Fatalf("Failed to insert profile: %v", err)
	}

	t.Run("Collections", func(t *testing.T) {
		c, err := store.InsertCollection(ctx, models.Collection{UserID: userID, Title: "Daily", Type: models.CollectionJournal})
		if err != nil {
			t.Fatalf("Failed to insert collection: %v", err)
		}
		list, err := store.ListCollections(ctx, userID)
		if err != nil {
			t.Fatalf("Failed to list collections: %v", err)
		}
		if len(list) != 1 || list[0].ID != c.ID {
			t.Errorf("Expected [%s], got %+v", c.ID, list)
		}
	})

	t.Run("Entries", func(t *testing.T) {
		if _, err := store.InsertEntry(ctx, models.Entry{UserID: userID, Type: models.EntryIdea, Status: models.StatusTodo, ScheduledDate: "2024-05-01"}); err != nil {
			t.Fatalf("Failed to insert entry: %v", err)
		}
		entries, err := store.ListEntries(ctx, storage.EntryFilter{UserID: userID, Date: "2024-05-01"})
		if err != nil {
			t.Fatalf("Failed to list entries: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("Expected 1 entry, got %d", len(entries))
		}
	})

	t.Run("HabitToggle", func(t *testing.T) {
		h, err := store.InsertHabit(ctx, models.HabitTracker{UserID: userID, Name: "Walk"})
		if err != nil {
			t.Fatalf("Failed to insert habit: %v", err)
		}
		for i, want := range []bool{true, false} {
			done, err := store.ToggleHabitLog(ctx, userID, h.ID, "2024-05-01", 1)
			if err != nil {
				t.Fatalf("Toggle %d failed: %v", i, err)
			}
			if done != want {
				t.Errorf("Toggle %d = %v, want %v", i, done, want)
			}
		}
	})
}
