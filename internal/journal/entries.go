package journal

import (
	"context"
	"encoding/json"

	bujoerrors "github.com/julianstephens/bujo/internal/errors"
	"github.com/julianstephens/bujo/internal/logger"
	"github.com/julianstephens/bujo/internal/models"
	"github.com/julianstephens/bujo/internal/storage"
)

type FetchEntriesInput struct {
	CollectionID *string
	Date         string
}

// CreateEntryInput describes a new entry. An empty Status means todo and
// Content is stored as given.
type CreateEntryInput struct {
	CollectionID  *string
	ParentID      *string
	Type          models.EntryType
	Status        models.EntryStatus
	Content       json.RawMessage
	RawText       *string
	ScheduledDate string
}

// FetchEntriesByDate lists the entries scheduled on in.Date, optionally
// narrowed to one collection. No match yields an empty slice.
func (c *Client) FetchEntriesByDate(ctx context.Context, in FetchEntriesInput) ([]models.Entry, error) {
	if err := validDate(in.Date); err != nil {
		return nil, err
	}
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := c.store.ListEntries(ctx, storage.EntryFilter{
		UserID:       user.ID,
		Date:         in.Date,
		CollectionID: in.CollectionID,
	})
	if err != nil {
		return nil, bujoerrors.Query("fetch entries", err)
	}
	return entries, nil
}

// FetchEntry returns one of the signed-in user's entries.
// Another user's entry is reported as storage.ErrNotFound.
func (c *Client) FetchEntry(ctx context.Context, id string) (models.Entry, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return models.Entry{}, err
	}
	entry, err := c.store.GetEntry(ctx, user.ID, id)
	if err != nil {
		return models.Entry{}, bujoerrors.Query("fetch entry", err)
	}
	return entry, nil
}

func (c *Client) CreateEntry(ctx context.Context, in CreateEntryInput) (models.Entry, error) {
	if in.Status == "" {
		in.Status = models.StatusTodo
	}
	if !in.Type.Valid() {
		return models.Entry{}, bujoerrors.Invalidf("entry type %q", in.Type)
	}
	if !in.Status.Valid() {
		return models.Entry{}, bujoerrors.Invalidf("entry status %q", in.Status)
	}
	if err := validDate(in.ScheduledDate); err != nil {
		return models.Entry{}, err
	}
	if err := validJSON("content", in.Content); err != nil {
		return models.Entry{}, err
	}

	user, err := c.CurrentUser(ctx)
	if err != nil {
		return models.Entry{}, err
	}

	entry, err := c.store.InsertEntry(ctx, models.Entry{
		UserID:        user.ID,
		CollectionID:  in.CollectionID,
		ParentID:      in.ParentID,
		Type:          in.Type,
		Status:        in.Status,
		Content:       in.Content,
		RawText:       in.RawText,
		ScheduledDate: in.ScheduledDate,
	})
	if err != nil {
		return models.Entry{}, bujoerrors.Query("create entry", err)
	}
	logger.Debug("Created entry", "id", entry.ID, "type", entry.Type, "date", entry.ScheduledDate)
	return entry, nil
}
