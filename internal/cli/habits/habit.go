package habits

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/tui"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark or unmark a habit for --date."`
	Today  HabitTodayCmd  `cmd:"" help:"Show habit status for --date." default:"1"`
}

type HabitAddCmd struct {
	Name string   `arg:"" optional:"" help:"Habit name. Prompts when omitted."`
	Goal *float64 `help:"Daily goal."`
	Unit string   `help:"Unit of the goal."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	var in journal.CreateHabitInput
	if strings.TrimSpace(c.Name) == "" {
		fm := &tui.HabitFormModel{Unit: c.Unit}
		if c.Goal != nil {
			fm.Goal = strconv.FormatFloat(*c.Goal, 'f', -1, 64)
		}
		if err := tui.NewHabitForm(fm).Run(); err != nil {
			return fmt.Errorf("habit prompt: %w", err)
		}
		var err error
		if in, err = fm.Input(); err != nil {
			return err
		}
	} else {
		in = journal.CreateHabitInput{
			Name:      strings.TrimSpace(c.Name),
			GoalValue: c.Goal,
			Unit:      cli.OptionalString(c.Unit),
		}
	}

	habit, err := ctx.Journal.CreateHabit(ctx.Context(), in)
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s (%s)\n", habit.Name, cli.ShortID(habit.ID))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Journal.FetchHabits(ctx.Context())
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		ctx.Printf("No habits found.\n")
		return nil
	}

	for _, h := range habits {
		goal := ""
		if h.GoalValue != nil {
			goal = " goal " + strconv.FormatFloat(*h.GoalValue, 'f', -1, 64)
			if h.Unit != nil {
				goal += " " + *h.Unit
			}
		}
		ctx.Printf("%s  %s%s\n", cli.ShortID(h.ID), h.Name, goal)
	}
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit name, id or id prefix."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(0)
	if err != nil {
		return err
	}

	habit, err := ctx.Journal.FindHabit(ctx.Context(), c.Habit)
	if err != nil {
		return err
	}

	done, err := ctx.Journal.ToggleHabitForDate(ctx.Context(), journal.ToggleHabitInput{
		HabitID: habit.ID,
		Date:    date,
	})
	if err != nil {
		return err
	}

	if done {
		ctx.Printf("Marked habit %q for %s\n", habit.Name, date)
	} else {
		ctx.Printf("Unmarked habit %q for %s\n", habit.Name, date)
	}
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(0)
	if err != nil {
		return err
	}

	habits, err := ctx.Journal.FetchHabits(ctx.Context())
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.Printf("No habits found.\n")
		return nil
	}

	logs, err := ctx.Journal.FetchHabitLogsByDate(ctx.Context(), date)
	if err != nil {
		return err
	}
	done := make(map[string]bool, len(logs))
	for _, l := range logs {
		done[l.HabitID] = true
	}

	ctx.Printf("Habits for %s:\n", date)
	for _, h := range habits {
		mark := "[ ]"
		if done[h.ID] {
			mark = "[x]"
		}
		ctx.Printf("  %s %s\n", mark, h.Name)
	}
	return nil
}
