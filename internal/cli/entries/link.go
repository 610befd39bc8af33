package entries

import (
	"errors"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/storage"
)

type LinkCmd struct {
	List LinkListCmd `cmd:"" help:"List links to and from an entry."`
	Add  LinkAddCmd  `cmd:"" help:"Link one entry to another."`
}

type LinkListCmd struct {
	Entry string `arg:"" help:"Entry id."`
}

func (c *LinkListCmd) Run(ctx *cli.Context) error {
	links, err := ctx.Journal.FetchBacklinksForEntry(ctx.Context(), c.Entry)
	if err != nil {
		return err
	}

	if len(links) == 0 {
		ctx.Printf("No links for %s.\n", c.Entry)
		return nil
	}
	for _, l := range links {
		direction, other := "->", l.TargetEntryID
		if l.TargetEntryID == c.Entry {
			direction, other = "<-", l.SourceEntryID
		}
		line := direction + " " + other
		// Links are not checked on insert, so the other end may be missing
		entry, err := ctx.Journal.FetchEntry(ctx.Context(), other)
		switch {
		case err == nil:
			line += "  " + cli.FormatEntry(entry, 0)
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}
		if l.ContextSnippet != nil {
			line += "  \"" + *l.ContextSnippet + "\""
		}
		ctx.Printf("%s\n", line)
	}
	return nil
}

type LinkAddCmd struct {
	Source  string `arg:"" help:"Entry the link starts from."`
	Target  string `arg:"" help:"Entry the link points to."`
	Context string `help:"Text surrounding the link."`
}

func (c *LinkAddCmd) Run(ctx *cli.Context) error {
	link, err := ctx.Journal.CreateBacklink(ctx.Context(), journal.CreateBacklinkInput{
		SourceEntryID:  c.Source,
		TargetEntryID:  c.Target,
		ContextSnippet: cli.OptionalString(c.Context),
	})
	if err != nil {
		return err
	}

	ctx.Printf("Linked %s -> %s (%s)\n", link.SourceEntryID, link.TargetEntryID, link.ID)
	return nil
}
