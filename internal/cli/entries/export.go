package entries

import (
	"fmt"
	"os"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/export"
)

type ExportCmd struct {
	Format     string `help:"Output format." enum:"md,html" default:"md"`
	Collection string `help:"Only export entries in this collection."`
	Output     string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(0)
	if err != nil {
		return err
	}

	log, err := export.Collect(ctx.Context(), ctx.Journal, date, cli.OptionalString(c.Collection))
	if err != nil {
		return err
	}

	if c.Output == "" {
		return export.Write(ctx.Writer(), log, export.Format(c.Format))
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	if err := export.Write(f, log, export.Format(c.Format)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.Printf("Exported %s to %s\n", date, c.Output)
	return nil
}
