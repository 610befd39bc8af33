// Package journal is the data-access layer: every operation resolves the
// session user, talks to the store on that user's behalf, and wraps store
// failures as QueryError with the operation name.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/julianstephens/bujo/internal/constants"
	bujoerrors "github.com/julianstephens/bujo/internal/errors"
	"github.com/julianstephens/bujo/internal/logger"
	"github.com/julianstephens/bujo/internal/models"
	"github.com/julianstephens/bujo/internal/session"
	"github.com/julianstephens/bujo/internal/storage"
)

// Client performs journal operations for the user behind a session.
type Client struct {
	store    storage.Provider
	sessions session.Provider
}

func NewClient(store storage.Provider, sessions session.Provider) *Client {
	return &Client{store: store, sessions: sessions}
}

// Store returns the backing store.
func (c *Client) Store() storage.Provider {
	return c.store
}

// CurrentUser resolves the session user or fails with ErrNotAuthenticated.
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	user, err := c.sessions.CurrentUser(ctx)
	if err != nil {
		return models.User{}, err
	}
	if user.ID == "" {
		return models.User{}, bujoerrors.ErrNotAuthenticated
	}
	return user, nil
}

// EnsureProfile creates the profile row for the session user if it is missing.
// It is safe to call repeatedly and from concurrent sessions of the same user.
func (c *Client) EnsureProfile(ctx context.Context) (models.Profile, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	return c.ensureProfile(ctx, user)
}

func (c *Client) ensureProfile(ctx context.Context, user models.User) (models.Profile, error) {
	const op = "ensure profile"

	p, err := c.store.GetProfile(ctx, user.ID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Profile{}, bujoerrors.Query(op, err)
	}

	p, err = c.store.InsertProfile(ctx, models.NewProfile(user))
	if err != nil {
		// Lost a race with another session creating the same row
		if existing, getErr := c.store.GetProfile(ctx, user.ID); getErr == nil {
			return existing, nil
		}
		return models.Profile{}, bujoerrors.Query(op, err)
	}
	logger.Info("Created profile", "user", user.ID)
	return p, nil
}

func validDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return bujoerrors.Invalidf("date %q is not YYYY-MM-DD", date)
	}
	return nil
}

// validJSON accepts an empty document, stored as JSON null
func validJSON(field string, doc json.RawMessage) error {
	if len(doc) > 0 && !json.Valid(doc) {
		return bujoerrors.Invalidf("%s is not valid JSON", field)
	}
	return nil
}
