package habits

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/bujo/internal/cli/clitest"
	bujoerrors "github.com/julianstephens/bujo/internal/errors"
)

func TestHabitAddAndList(t *testing.T) {
	ctx, out := clitest.NewContext(t, true)

	require.NoError(t, (&HabitListCmd{}).Run(ctx))
	assert.Equal(t, "No habits found.\n", out.String())

	goal := 8.0
	require.NoError(t, (&HabitAddCmd{Name: "Water", Goal: &goal, Unit: "glasses"}).Run(ctx))
	require.NoError(t, (&HabitAddCmd{Name: " Stretch "}).Run(ctx))

	out.Reset()
	require.NoError(t, (&HabitListCmd{}).Run(ctx))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "  Water goal 8 glasses"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "  Stretch"), lines[1])
}

func TestHabitToggle(t *testing.T) {
	ctx, out := clitest.NewContext(t, true)
	require.NoError(t, (&HabitAddCmd{Name: "Water"}).Run(ctx))
	require.NoError(t, (&HabitAddCmd{Name: "Walk"}).Run(ctx))

	out.Reset()
	require.NoError(t, (&HabitToggleCmd{Habit: "water"}).Run(ctx))
	assert.Equal(t, "Marked habit \"Water\" for 2024-03-01\n", out.String())

	out.Reset()
	require.NoError(t, (&HabitTodayCmd{}).Run(ctx))
	assert.Equal(t, "Habits for 2024-03-01:\n  [x] Water\n  [ ] Walk\n", out.String())

	// Other days are unaffected
	ctx.Date = "2024-03-02"
	out.Reset()
	require.NoError(t, (&HabitTodayCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "[ ] Water")

	ctx.Date = clitest.Date
	out.Reset()
	require.NoError(t, (&HabitToggleCmd{Habit: "Water"}).Run(ctx))
	assert.Equal(t, "Unmarked habit \"Water\" for 2024-03-01\n", out.String())

	logs, err := ctx.Journal.FetchHabitLogsByDate(ctx.Context(), clitest.Date)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestHabitToggle_UnknownHabit(t *testing.T) {
	ctx, _ := clitest.NewContext(t, true)

	assert.ErrorIs(t, (&HabitToggleCmd{Habit: "Run"}).Run(ctx), bujoerrors.ErrInvalidInput)
}

func TestHabit_SignedOut(t *testing.T) {
	ctx, _ := clitest.NewContext(t, false)

	assert.ErrorIs(t, (&HabitListCmd{}).Run(ctx), bujoerrors.ErrNotAuthenticated)
	assert.ErrorIs(t, (&HabitTodayCmd{}).Run(ctx), bujoerrors.ErrNotAuthenticated)
	assert.ErrorIs(t, (&HabitAddCmd{Name: "x"}).Run(ctx), bujoerrors.ErrNotAuthenticated)
}
