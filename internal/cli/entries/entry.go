package entries

import (
	"errors"
	"strings"

	"github.com/julianstephens/bujo/internal/capture"
	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/models"
)

type EntryCmd struct {
	List EntryListCmd `cmd:"" help:"Show the daily log for --date." default:"1"`
	Add  EntryAddCmd  `cmd:"" help:"Log an entry on --date."`
}

type EntryListCmd struct {
	Prev       bool   `help:"Show the day before --date." xor:"shift"`
	Next       bool   `help:"Show the day after --date." xor:"shift"`
	Collection string `help:"Only show entries in this collection."`
	IDs        bool   `name:"ids" help:"Print entry ids."`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	offset := 0
	if c.Prev {
		offset = -1
	} else if c.Next {
		offset = 1
	}
	date, err := ctx.ResolveDate(offset)
	if err != nil {
		return err
	}

	list, err := ctx.Journal.FetchEntriesByDate(ctx.Context(), journal.FetchEntriesInput{
		CollectionID: cli.OptionalString(c.Collection),
		Date:         date,
	})
	if err != nil {
		return err
	}

	ctx.Printf("%s\n", date)
	if len(list) == 0 {
		ctx.Printf("  No entries.\n")
		return nil
	}
	for _, item := range models.Outline(list) {
		line := "  " + cli.FormatEntry(item.Entry, item.Depth)
		if c.IDs {
			line += "  [" + item.Entry.ID + "]"
		}
		ctx.Printf("%s\n", line)
	}
	return nil
}

type EntryAddCmd struct {
	Text       []string `arg:"" help:"Entry text. A leading '-', 'o', '.' or '>' sets the type; put '--' before it."`
	Type       string   `help:"Entry type (task, event, note, idea), overriding the bullet."`
	Status     string   `help:"Entry status." enum:"todo,completed,migrated,cancelled" default:"todo"`
	Collection string   `help:"Collection to file the entry under."`
	Parent     string   `help:"Parent entry id for nesting."`
}

func (c *EntryAddCmd) Run(ctx *cli.Context) error {
	entryType, text := capture.ParseLine(strings.Join(c.Text, " "))
	if text == "" {
		return errors.New("entry text cannot be empty")
	}
	if c.Type != "" {
		entryType = models.EntryType(c.Type)
	}

	date, err := ctx.ResolveDate(0)
	if err != nil {
		return err
	}
	content, err := capture.Document(text)
	if err != nil {
		return err
	}

	entry, err := ctx.Journal.CreateEntry(ctx.Context(), journal.CreateEntryInput{
		CollectionID:  cli.OptionalString(c.Collection),
		ParentID:      cli.OptionalString(c.Parent),
		Type:          entryType,
		Status:        models.EntryStatus(c.Status),
		Content:       content,
		RawText:       &text,
		ScheduledDate: date,
	})
	if err != nil {
		return err
	}

	ctx.Printf("Logged %s on %s: %s\n", entry.Type, entry.ScheduledDate, cli.FormatEntry(entry, 0))
	ctx.Printf("  id: %s\n", entry.ID)
	return nil
}
