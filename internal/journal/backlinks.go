package journal

import (
	"context"

	bujoerrors "github.com/julianstephens/bujo/internal/errors"
	"github.com/julianstephens/bujo/internal/models"
)

type CreateBacklinkInput struct {
	SourceEntryID  string
	TargetEntryID  string
	ContextSnippet *string
}

// FetchBacklinksForEntry returns links where entryID is the source or the target.
// Only entries owned by the signed-in user have visible links.
func (c *Client) FetchBacklinksForEntry(ctx context.Context, entryID string) ([]models.Backlink, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	links, err := c.store.ListBacklinks(ctx, user.ID, entryID)
	if err != nil {
		return nil, bujoerrors.Query("fetch backlinks", err)
	}
	return links, nil
}

// CreateBacklink records a link between two entries. Neither endpoint is checked.
func (c *Client) CreateBacklink(ctx context.Context, in CreateBacklinkInput) (models.Backlink, error) {
	if _, err := c.CurrentUser(ctx); err != nil {
		return models.Backlink{}, err
	}
	link, err := c.store.InsertBacklink(ctx, models.Backlink{
		SourceEntryID:  in.SourceEntryID,
		TargetEntryID:  in.TargetEntryID,
		ContextSnippet: in.ContextSnippet,
	})
	if err != nil {
		return models.Backlink{}, bujoerrors.Query("create backlink", err)
	}
	return link, nil
}
