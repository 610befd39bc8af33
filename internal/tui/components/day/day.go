// Package day lists the entries of one journal page.
package day

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/bujo/internal/models"
)

type Item struct {
	Entry models.Entry
	Depth int
}

func (i Item) Title() string {
	text := i.Entry.Text()
	if text == "" {
		text = "(empty)"
	}
	return strings.Repeat("  ", i.Depth) + i.Entry.Signifier() + " " + text
}

func (i Item) Description() string {
	if i.Entry.Type == models.EntryTask {
		return strings.Repeat("  ", i.Depth) + string(i.Entry.Type) + " · " + string(i.Entry.Status)
	}
	return strings.Repeat("  ", i.Depth) + string(i.Entry.Type)
}

func (i Item) FilterValue() string { return i.Entry.Text() }

type Model struct {
	list list.Model
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	return Model{list: l}
}

// SetEntries shows entries with children nested under their parent.
func (m *Model) SetEntries(entries []models.Entry) {
	m.list.SetItems(Flatten(entries))
}

// Flatten converts entries to list items in outline order.
func Flatten(entries []models.Entry) []list.Item {
	outline := models.Outline(entries)
	items := make([]list.Item, len(outline))
	for i, o := range outline {
		items[i] = Item{Entry: o.Entry, Depth: o.Depth}
	}
	return items
}

// Selected returns the highlighted entry, if any
func (m Model) Selected() (models.Entry, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Entry, ok
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  Nothing logged for this day.\n  Press 'n' to add an entry."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
