// Package export renders a day of the journal as Markdown or HTML.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/models"
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// Source is the subset of the journal client an export reads from.
type Source interface {
	FetchEntriesByDate(ctx context.Context, in journal.FetchEntriesInput) ([]models.Entry, error)
	FetchHabits(ctx context.Context) ([]models.HabitTracker, error)
	FetchHabitLogsByDate(ctx context.Context, date string) ([]models.HabitLog, error)
}

// DailyLog is everything recorded for one date.
type DailyLog struct {
	Date    string
	Entries []models.Entry
	Habits  []models.HabitTracker
	Logs    []models.HabitLog
}

// Collect fetches the daily log for date, optionally scoped to one collection.
func Collect(ctx context.Context, src Source, date string, collectionID *string) (DailyLog, error) {
	entries, err := src.FetchEntriesByDate(ctx, journal.FetchEntriesInput{CollectionID: collectionID, Date: date})
	if err != nil {
		return DailyLog{}, err
	}
	habits, err := src.FetchHabits(ctx)
	if err != nil {
		return DailyLog{}, err
	}
	logs, err := src.FetchHabitLogsByDate(ctx, date)
	if err != nil {
		return DailyLog{}, err
	}
	return DailyLog{Date: date, Entries: entries, Habits: habits, Logs: logs}, nil
}

// Write renders the log in the given format.
func Write(w io.Writer, log DailyLog, format Format) error {
	md := Markdown(log)
	switch format {
	case FormatMarkdown, "":
		_, err := io.WriteString(w, md)
		return err
	case FormatHTML:
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(md), &buf); err != nil {
			return fmt.Errorf("failed to convert markdown: %w", err)
		}
		_, err := buf.WriteTo(w)
		return err
	default:
		return fmt.Errorf("unsupported export format %q (use md or html)", format)
	}
}

// Markdown renders the log. Child entries are nested under their parent when
// the parent is on the same page.
func Markdown(log DailyLog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", log.Date)

	b.WriteString("## Entries\n\n")
	if len(log.Entries) == 0 {
		b.WriteString("_No entries._\n")
	} else {
		writeEntries(&b, log.Entries)
	}

	if len(log.Habits) > 0 {
		done := make(map[string]bool, len(log.Logs))
		for _, l := range log.Logs {
			done[l.HabitID] = true
		}
		b.WriteString("\n## Habits\n\n")
		for _, h := range log.Habits {
			mark := " "
			if done[h.ID] {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", mark, escape(h.Name))
		}
	}
	return b.String()
}

func writeEntries(b *strings.Builder, entries []models.Entry) {
	for _, o := range models.Outline(entries) {
		fmt.Fprintf(b, "%s- %s\n", strings.Repeat("  ", o.Depth), Line(o.Entry))
	}
}

// Line renders one entry with its bullet-journal signifier.
func Line(e models.Entry) string {
	text := escape(e.Text())
	if text == "" {
		text = "_(empty)_"
	}

	if e.Type == models.EntryTask {
		switch e.Status {
		case models.StatusCompleted:
			return "[x] " + text
		case models.StatusMigrated:
			return "[>] " + text
		case models.StatusCancelled:
			return "~~" + text + "~~"
		default:
			return "[ ] " + text
		}
	}

	switch e.Type {
	case models.EntryEvent:
		return "○ " + text
	case models.EntryIdea:
		return "! " + text
	default:
		return "– " + text
	}
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"#", `\#`,
)

func escape(s string) string {
	return mdEscaper.Replace(strings.ReplaceAll(s, "\n", " "))
}
