package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/logger"
	"github.com/julianstephens/bujo/internal/tui"
)

type TuiCmd struct {
	Collection string `help:"Only show entries in this collection."`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Journal.EnsureProfile(ctx.Context()); err != nil {
		return err
	}

	date, err := ctx.ResolveDate(0)
	if err != nil {
		return err
	}

	model := tui.NewModel(ctx.Context(), ctx.Journal, tui.Options{
		Date:         date,
		Timezone:     ctx.Timezone(),
		CollectionID: cli.OptionalString(c.Collection),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx.Context()))
	if _, err := p.Run(); err != nil {
		logger.Error("TUI exited with error", "error", err)
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
