package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/bujo/internal/constants"
	bujoerrors "github.com/julianstephens/bujo/internal/errors"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDay, constants.StateCompose:
		content = lipgloss.JoinVertical(lipgloss.Left,
			docStyle.Render(m.dayModel.View()),
			m.viewComposer(),
		)
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateAddHabit:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	titles := []string{"Day", "Habits"}
	active := m.state
	if active == constants.StateCompose {
		active = constants.StateDay
	}
	if active == constants.StateAddHabit {
		active = m.previousState
	}

	tabs := make([]string, 0, len(titles)+1)
	for i, title := range titles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, dateStyle.Render(m.date))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewComposer() string {
	style := composerStyle
	if m.state == constants.StateCompose {
		style = focusedComposerStyle
	}
	return style.Render(m.input.View())
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render(bujoerrors.Format(m.err))
	}
	if m.status != "" {
		return mutedStyle.Render(m.status)
	}
	return ""
}
