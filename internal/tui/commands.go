package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/bujo/internal/capture"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/models"
)

// Responses carry the date they were requested for so a page that has moved
// on can drop them.

type entriesLoadedMsg struct {
	date    string
	entries []models.Entry
	err     error
}

type habitsLoadedMsg struct {
	habits []models.HabitTracker
	err    error
}

type logsLoadedMsg struct {
	date string
	logs []models.HabitLog
	err  error
}

type habitToggledMsg struct {
	habitID string
	date    string
	done    bool
	err     error
}

type entryCreatedMsg struct {
	date  string
	entry models.Entry
	err   error
}

type habitCreatedMsg struct {
	habit models.HabitTracker
	err   error
}

func (m Model) fetchEntries(date string) tea.Cmd {
	client, ctx, collectionID := m.client, m.ctx, m.collectionID
	return func() tea.Msg {
		entries, err := client.FetchEntriesByDate(ctx, journal.FetchEntriesInput{CollectionID: collectionID, Date: date})
		return entriesLoadedMsg{date: date, entries: entries, err: err}
	}
}

func (m Model) fetchHabits() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		habits, err := client.FetchHabits(ctx)
		return habitsLoadedMsg{habits: habits, err: err}
	}
}

func (m Model) fetchLogs(date string) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		logs, err := client.FetchHabitLogsByDate(ctx, date)
		return logsLoadedMsg{date: date, logs: logs, err: err}
	}
}

func (m Model) toggleHabit(habitID, date string) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		done, err := client.ToggleHabitForDate(ctx, journal.ToggleHabitInput{HabitID: habitID, Date: date})
		return habitToggledMsg{habitID: habitID, date: date, done: done, err: err}
	}
}

func (m Model) createEntry(draft capture.Draft, date string) tea.Cmd {
	client, ctx, collectionID := m.client, m.ctx, m.collectionID
	return func() tea.Msg {
		raw := draft.RawText
		entry, err := client.CreateEntry(ctx, journal.CreateEntryInput{
			CollectionID:  collectionID,
			Type:          draft.Type,
			Content:       draft.Content,
			RawText:       &raw,
			ScheduledDate: date,
		})
		return entryCreatedMsg{date: date, entry: entry, err: err}
	}
}

func (m Model) createHabit(in journal.CreateHabitInput) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		habit, err := client.CreateHabit(ctx, in)
		return habitCreatedMsg{habit: habit, err: err}
	}
}
