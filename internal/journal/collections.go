package journal

import (
	"context"

	bujoerrors "github.com/julianstephens/bujo/internal/errors"
	"github.com/julianstephens/bujo/internal/logger"
	"github.com/julianstephens/bujo/internal/models"
)

type CreateCollectionInput struct {
	Title string
	Type  models.CollectionType
}

// FetchCollections lists the session user's collections, oldest first.
func (c *Client) FetchCollections(ctx context.Context) ([]models.Collection, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	collections, err := c.store.ListCollections(ctx, user.ID)
	if err != nil {
		return nil, bujoerrors.Query("fetch collections", err)
	}
	return collections, nil
}

// CreateCollection inserts a collection owned by the session user, creating
// the user's profile first when it does not exist yet.
func (c *Client) CreateCollection(ctx context.Context, in CreateCollectionInput) (models.Collection, error) {
	if !in.Type.Valid() {
		return models.Collection{}, bujoerrors.Invalidf("collection type %q must be one of %v", in.Type, models.CollectionTypes)
	}

	user, err := c.CurrentUser(ctx)
	if err != nil {
		return models.Collection{}, err
	}
	if _, err := c.ensureProfile(ctx, user); err != nil {
		return models.Collection{}, err
	}

	col, err := c.store.InsertCollection(ctx, models.Collection{
		UserID: user.ID,
		Title:  in.Title,
		Type:   in.Type,
	})
	if err != nil {
		return models.Collection{}, bujoerrors.Query("create collection", err)
	}
	logger.Debug("Created collection", "id", col.ID, "type", col.Type)
	return col, nil
}
