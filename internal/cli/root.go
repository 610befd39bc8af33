package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/bujo/internal/config"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/models"
	"github.com/julianstephens/bujo/internal/session"
	"github.com/julianstephens/bujo/internal/storage"
)

type Context struct {
	Ctx      context.Context
	Config   *config.Config
	Store    storage.Provider
	Sessions *session.Manager
	Journal  *journal.Client
	// Date is the --date flag; empty means today in the configured timezone.
	Date string
	Out  io.Writer
}

// Writer returns the command output, stdout unless Out is set
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

// Context returns the command's context.Context
func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Timezone returns the configured timezone name
func (c *Context) Timezone() string {
	if c.Config == nil {
		return ""
	}
	return c.Config.Timezone
}

// ResolveDate returns --date, or today when it was not given, shifted by offset days
func (c *Context) ResolveDate(offset int) (string, error) {
	date := c.Date
	if date == "" {
		today, err := journal.Today(c.Timezone())
		if err != nil {
			return "", err
		}
		date = today
	}
	return journal.ShiftDate(date, offset)
}

// OptionalString returns nil for blank input
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// FormatEntry renders one entry as a rapid-logging line
func FormatEntry(e models.Entry, depth int) string {
	return fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), e.Signifier(), e.Text())
}

// ShortID trims an id for list output
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
