package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/bujo/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type Item struct {
	Habit models.HabitTracker
	Done  bool
}

func (i Item) Title() string {
	if i.Done {
		return "✓ " + i.Habit.Name
	}
	return "○ " + i.Habit.Name
}

func (i Item) Description() string {
	status := "not done"
	if i.Done {
		status = "done"
	}
	if i.Habit.GoalValue == nil {
		return status
	}
	unit := ""
	if i.Habit.Unit != nil {
		unit = " " + *i.Habit.Unit
	}
	return fmt.Sprintf("%s · goal %g%s", status, *i.Habit.GoalValue, unit)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter", "x"),
			key.WithHelp("space", "toggle"),
		),
	}
}

type Model struct {
	list   list.Model
	keys   KeyMap
	habits []models.HabitTracker
	done   map[string]bool // habitID -> done on the shown date
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle}
	}

	return Model{
		list: l,
		keys: keys,
		done: make(map[string]bool),
	}
}

// SetHabits replaces the tracker list, keeping the done marks
func (m *Model) SetHabits(habits []models.HabitTracker) {
	m.habits = habits
	m.refresh()
}

// SetLogs replaces the done marks with the logs of the shown date
func (m *Model) SetLogs(logs []models.HabitLog) {
	m.done = make(map[string]bool, len(logs))
	for _, l := range logs {
		m.done[l.HabitID] = true
	}
	m.refresh()
}

func (m *Model) SetDone(habitID string, done bool) {
	m.done[habitID] = done
	m.refresh()
}

func (m Model) IsDone(habitID string) bool {
	return m.done[habitID]
}

func (m *Model) refresh() {
	items := make([]list.Item, len(m.habits))
	for i, h := range m.habits {
		items[i] = Item{Habit: h, Done: m.done[h.ID]}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
