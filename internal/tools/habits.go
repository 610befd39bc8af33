package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/models"
)

// HabitTools holds references needed by habit tool handlers.
type HabitTools struct {
	Journal  *journal.Client
	Timezone string
}

// --- Input types ---

type ListHabitsInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date in YYYY-MM-DD format (default: today)"`
}

type CreateHabitInput struct {
	Name      string   `json:"name" jsonschema:"Habit name"`
	GoalValue *float64 `json:"goal_value,omitempty" jsonschema:"Daily goal"`
	Unit      string   `json:"unit,omitempty" jsonschema:"Unit of the goal (e.g., glasses, minutes)"`
}

type ToggleHabitInput struct {
	Habit string `json:"habit" jsonschema:"Habit id, id prefix or name"`
	Date  string `json:"date,omitempty" jsonschema:"Date in YYYY-MM-DD format (default: today)"`
}

// HabitStatus is one tracker with its completion on the requested date.
type HabitStatus struct {
	models.HabitTracker
	Date string `json:"date"`
	Done bool   `json:"done"`
}

type toggleResult struct {
	HabitID string `json:"habit_id"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Done    bool   `json:"done"`
}

// --- Handlers ---

func (t *HabitTools) ListHabits(ctx context.Context, _ *mcp.CallToolRequest, input ListHabitsInput) (*mcp.CallToolResult, any, error) {
	date, err := resolveDate(input.Date, t.Timezone)
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	habits, err := t.Journal.FetchHabits(ctx)
	if err != nil {
		return toolError("Failed to list habits: %v", err), nil, nil
	}
	logs, err := t.Journal.FetchHabitLogsByDate(ctx, date)
	if err != nil {
		return toolError("Failed to list habit logs: %v", err), nil, nil
	}

	done := make(map[string]bool, len(logs))
	for _, l := range logs {
		done[l.HabitID] = true
	}
	statuses := make([]HabitStatus, 0, len(habits))
	for _, h := range habits {
		statuses = append(statuses, HabitStatus{HabitTracker: h, Date: date, Done: done[h.ID]})
	}
	return toolJSON(statuses)
}

func (t *HabitTools) CreateHabit(ctx context.Context, _ *mcp.CallToolRequest, input CreateHabitInput) (*mcp.CallToolResult, any, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return toolError("Habit name is required"), nil, nil
	}

	habit, err := t.Journal.CreateHabit(ctx, journal.CreateHabitInput{
		Name:      name,
		GoalValue: input.GoalValue,
		Unit:      optional(input.Unit),
	})
	if err != nil {
		return toolError("Failed to create habit: %v", err), nil, nil
	}
	return toolJSON(habit)
}

func (t *HabitTools) ToggleHabit(ctx context.Context, _ *mcp.CallToolRequest, input ToggleHabitInput) (*mcp.CallToolResult, any, error) {
	date, err := resolveDate(input.Date, t.Timezone)
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	habit, err := t.Journal.FindHabit(ctx, input.Habit)
	if err != nil {
		return toolError("Failed to find habit: %v", err), nil, nil
	}

	done, err := t.Journal.ToggleHabitForDate(ctx, journal.ToggleHabitInput{HabitID: habit.ID, Date: date})
	if err != nil {
		return toolError("Failed to toggle habit: %v", err), nil, nil
	}
	return toolJSON(toggleResult{HabitID: habit.ID, Name: habit.Name, Date: date, Done: done})
}
