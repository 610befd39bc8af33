package collections

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/models"
)

type CollectionCmd struct {
	List CollectionListCmd `cmd:"" help:"List collections." default:"1"`
	Add  CollectionAddCmd  `cmd:"" help:"Create a collection."`
}

type CollectionListCmd struct{}

func (c *CollectionListCmd) Run(ctx *cli.Context) error {
	collections, err := ctx.Journal.FetchCollections(ctx.Context())
	if err != nil {
		return err
	}

	if len(collections) == 0 {
		ctx.Printf("No collections found.\n")
		return nil
	}

	for _, col := range collections {
		pin := ""
		if col.IsPinned {
			pin = " *"
		}
		ctx.Printf("%s  %-12s %s%s\n", col.ID, col.Type, col.Title, pin)
	}
	return nil
}

type CollectionAddCmd struct {
	Title string `arg:"" optional:"" help:"Collection title. Prompts when omitted."`
	Type  string `help:"Collection type." enum:"journal,project,zettelkasten" default:"journal"`
}

func (c *CollectionAddCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(c.Title) == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}

	col, err := ctx.Journal.CreateCollection(ctx.Context(), journal.CreateCollectionInput{
		Title: strings.TrimSpace(c.Title),
		Type:  models.CollectionType(c.Type),
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added %s collection %q (%s)\n", col.Type, col.Title, col.ID)
	return nil
}

// prompt asks for the title and type interactively
func (c *CollectionAddCmd) prompt() error {
	options := make([]huh.Option[string], 0, len(models.CollectionTypes))
	for _, t := range models.CollectionTypes {
		options = append(options, huh.NewOption(string(t), string(t)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&c.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(options...).
				Value(&c.Type),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return fmt.Errorf("collection prompt: %w", err)
	}
	return nil
}
