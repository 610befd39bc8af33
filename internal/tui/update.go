package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/bujo/internal/capture"
	"github.com/julianstephens/bujo/internal/constants"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/logger"
	"github.com/julianstephens/bujo/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, composer, status and help
		listHeight := msg.Height - 12
		if listHeight < 3 {
			listHeight = 3
		}
		m.dayModel.SetSize(msg.Width-4, listHeight)
		m.habitsModel.SetSize(msg.Width-4, listHeight+5)
		m.input.SetWidth(msg.Width - 8)
		return m, nil

	case entriesLoadedMsg:
		if msg.date != m.date {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.dayModel.SetEntries(msg.entries)
		return m, nil

	case habitsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.habitsModel.SetHabits(msg.habits)
		return m, nil

	case logsLoadedMsg:
		if msg.date != m.date {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.habitsModel.SetLogs(msg.logs)
		return m, nil

	case habitToggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.date == m.date {
			m.habitsModel.SetDone(msg.habitID, msg.done)
		}
		return m, nil

	case entryCreatedMsg:
		if msg.err != nil {
			m.composer.Fail(msg.err)
			m.err = msg.err
			logger.Warn("Failed to create entry", "error", msg.err)
			return m, nil
		}
		m.composer.Confirm()
		m.input.SetValue(m.composer.Text())
		m.err = nil
		m.status = fmt.Sprintf("Saved %s", msg.entry.Type)
		if msg.date == m.date {
			return m, m.fetchEntries(m.date)
		}
		return m, nil

	case habitCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("Added habit %q", msg.habit.Name)
		return m, m.fetchHabits()

	case habits.ToggleHabitMsg:
		return m, m.toggleHabit(msg.ID, m.date)

	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = NewHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = constants.StateAddHabit
		return m, m.form.Init()
	}

	switch m.state {
	case constants.StateCompose:
		return m.updateCompose(msg)
	case constants.StateAddHabit:
		return m.updateHabitForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.NumMainTabs
			return m, nil
		case key.Matches(msg, m.keys.PrevDay):
			return m.shiftDay(-1)
		case key.Matches(msg, m.keys.NextDay):
			return m.shiftDay(1)
		case key.Matches(msg, m.keys.Today):
			today, err := journal.Today(m.tz)
			if err != nil {
				m.err = err
				return m, nil
			}
			return m.gotoDate(today)
		case key.Matches(msg, m.keys.Refresh):
			return m, tea.Batch(m.fetchEntries(m.date), m.fetchHabits(), m.fetchLogs(m.date))
		case m.state == constants.StateDay && key.Matches(msg, m.keys.Compose):
			m.state = constants.StateCompose
			return m, m.input.Focus()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDay:
		m.dayModel, cmd = m.dayModel.Update(msg)
	case constants.StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) shiftDay(days int) (tea.Model, tea.Cmd) {
	next, err := journal.ShiftDate(m.date, days)
	if err != nil {
		m.err = err
		return m, nil
	}
	return m.gotoDate(next)
}

// gotoDate switches the page and requests its data. Responses for the old
// date still in flight are dropped when they arrive.
func (m Model) gotoDate(date string) (tea.Model, tea.Cmd) {
	m.date = date
	m.err = nil
	m.status = ""
	m.dayModel.SetEntries(nil)
	m.habitsModel.SetLogs(nil)
	return m, tea.Batch(m.fetchEntries(date), m.fetchLogs(date))
}

// updateCompose feeds keystrokes through the bullet composer; the textarea
// only renders the composer's buffer.
func (m Model) updateCompose(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.state = constants.StateDay
		m.input.Blur()
		return m, nil
	case key.Matches(keyMsg, m.keys.Submit):
		return m.submit()
	case keyMsg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	switch keyMsg.Type {
	case tea.KeyRunes:
		if edit := m.composer.Insert(string(keyMsg.Runes)); edit.Matched {
			m.status = fmt.Sprintf("Type: %s", edit.Type)
		}
	case tea.KeySpace:
		if edit := m.composer.Insert(" "); edit.Matched {
			m.status = fmt.Sprintf("Type: %s", edit.Type)
		}
	case tea.KeyTab:
		m.composer.Insert("\t")
	case tea.KeyEnter:
		m.composer.Insert("\n")
	case tea.KeyBackspace:
		m.composer.Backspace()
	default:
		return m, nil
	}
	m.input.SetValue(m.composer.Text())
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.composer.Pending() {
		return m, nil
	}
	draft, err := m.composer.Submit()
	if err != nil {
		if errors.Is(err, capture.ErrEmptyDraft) {
			m.status = "Nothing to save"
			return m, nil
		}
		m.err = err
		return m, nil
	}
	m.status = "Saving…"
	return m, m.createEntry(draft, m.date)
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		in, err := m.habitForm.Input()
		if err != nil {
			m.err = err
			return m, cmd
		}
		return m, tea.Batch(cmd, m.createHabit(in))
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

// NewHabitForm builds the add-habit form bound to fm
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Daily Goal (optional)").
				Value(&fm.Goal).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
						return fmt.Errorf("goal must be a number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Unit (optional)").
				Value(&fm.Unit),
		),
	).WithTheme(huh.ThemeDracula())
}

// Input converts the form values into a CreateHabitInput
func (fm *HabitFormModel) Input() (journal.CreateHabitInput, error) {
	in := journal.CreateHabitInput{Name: strings.TrimSpace(fm.Name)}
	if goal := strings.TrimSpace(fm.Goal); goal != "" {
		v, err := strconv.ParseFloat(goal, 64)
		if err != nil {
			return in, fmt.Errorf("invalid goal %q: %w", goal, err)
		}
		in.GoalValue = &v
	}
	if unit := strings.TrimSpace(fm.Unit); unit != "" {
		in.Unit = &unit
	}
	return in, nil
}
