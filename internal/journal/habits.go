package journal

import (
	"context"
	"encoding/json"
	"strings"

	bujoerrors "github.com/julianstephens/bujo/internal/errors"
	"github.com/julianstephens/bujo/internal/logger"
	"github.com/julianstephens/bujo/internal/models"
)

// completedValue is the value recorded when a habit is toggled on
const completedValue = 1

type CreateHabitInput struct {
	Name      string
	GoalValue *float64
	Unit      *string
	Frequency json.RawMessage
}

type ToggleHabitInput struct {
	HabitID string
	Date    string
}

func (c *Client) FetchHabits(ctx context.Context) ([]models.HabitTracker, error) {
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := c.store.ListHabits(ctx, user.ID)
	if err != nil {
		return nil, bujoerrors.Query("fetch habits", err)
	}
	return habits, nil
}

// FetchHabitLogsByDate returns every log on date across the user's habits.
// Callers correlate logs to trackers by HabitID.
func (c *Client) FetchHabitLogsByDate(ctx context.Context, date string) ([]models.HabitLog, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := c.store.ListHabitLogsByDate(ctx, user.ID, date)
	if err != nil {
		return nil, bujoerrors.Query("fetch habit logs", err)
	}
	return logs, nil
}

// ToggleHabitForDate flips the habit's completion for the date and reports
// whether it is done afterwards. The flip is a single store operation, so
// overlapping toggles never leave more than one log.
func (c *Client) ToggleHabitForDate(ctx context.Context, in ToggleHabitInput) (bool, error) {
	if err := validDate(in.Date); err != nil {
		return false, err
	}
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return false, err
	}

	done, err := c.store.ToggleHabitLog(ctx, user.ID, in.HabitID, in.Date, completedValue)
	if err != nil {
		return false, bujoerrors.Query("toggle habit", err)
	}
	logger.Debug("Toggled habit", "habit", in.HabitID, "date", in.Date, "done", done)
	return done, nil
}

func (c *Client) CreateHabit(ctx context.Context, in CreateHabitInput) (models.HabitTracker, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.HabitTracker{}, bujoerrors.Invalidf("habit name cannot be empty")
	}
	if err := validJSON("frequency", in.Frequency); err != nil {
		return models.HabitTracker{}, err
	}
	user, err := c.CurrentUser(ctx)
	if err != nil {
		return models.HabitTracker{}, err
	}

	habit, err := c.store.InsertHabit(ctx, models.HabitTracker{
		UserID:    user.ID,
		Name:      name,
		GoalValue: in.GoalValue,
		Unit:      in.Unit,
		Frequency: in.Frequency,
	})
	if err != nil {
		return models.HabitTracker{}, bujoerrors.Query("create habit", err)
	}
	return habit, nil
}

// FindHabit picks the session user's habit referenced by ref: an exact id,
// a case-insensitive name, or an unambiguous id prefix.
func (c *Client) FindHabit(ctx context.Context, ref string) (models.HabitTracker, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.HabitTracker{}, bujoerrors.Invalidf("habit reference is empty")
	}
	habits, err := c.FetchHabits(ctx)
	if err != nil {
		return models.HabitTracker{}, err
	}

	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}

	var matches []models.HabitTracker
	for _, h := range habits {
		if strings.HasPrefix(h.ID, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.HabitTracker{}, bujoerrors.Invalidf("no habit matches %q", ref)
	default:
		return models.HabitTracker{}, bujoerrors.Invalidf("%q matches %d habits", ref, len(matches))
	}
}
