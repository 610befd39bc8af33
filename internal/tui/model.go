// Package tui is the interactive journal: a day page with a bullet composer
// and a habit page, both scoped to the selected date.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/bujo/internal/capture"
	"github.com/julianstephens/bujo/internal/constants"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/tui/components/day"
	"github.com/julianstephens/bujo/internal/tui/components/habits"
)

type HabitFormModel struct {
	Name string
	Goal string
	Unit string
}

// Options configure a new Model.
type Options struct {
	Date         string
	Timezone     string
	CollectionID *string
}

type Model struct {
	ctx           context.Context
	client        *journal.Client
	tz            string
	date          string
	collectionID  *string
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	dayModel      day.Model
	habitsModel   habits.Model
	composer      *capture.Composer
	input         textarea.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	err           error
	status        string
	quitting      bool
	width         int
	height        int
}

func NewModel(ctx context.Context, client *journal.Client, opts Options) Model {
	input := textarea.New()
	input.Placeholder = "- task   o event   . note   > idea"
	input.ShowLineNumbers = false
	input.SetHeight(3)
	input.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		ctx:          ctx,
		client:       client,
		tz:           opts.Timezone,
		date:         opts.Date,
		collectionID: opts.CollectionID,
		state:        constants.StateDay,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		dayModel:     day.New(0, 0),
		habitsModel:  habits.New(0, 0),
		composer:     capture.NewComposer(),
		input:        input,
	}
}

// Date is the page currently shown
func (m Model) Date() string {
	return m.date
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateCompose:
		return []key.Binding{m.keys.Submit, m.keys.Cancel}
	case constants.StateHabits:
		return []key.Binding{m.keys.Tab, m.keys.PrevDay, m.keys.NextDay, m.keys.Quit, m.keys.Help}
	}
	return []key.Binding{m.keys.Tab, m.keys.PrevDay, m.keys.NextDay, m.keys.Compose, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.Today}
	editing := []key.Binding{m.keys.Compose, m.keys.Submit, m.keys.Cancel}
	return [][]key.Binding{global, navigation, editing}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchEntries(m.date), m.fetchHabits(), m.fetchLogs(m.date))
}
