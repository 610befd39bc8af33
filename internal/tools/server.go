// Package tools exposes the journal as an MCP tool server.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/julianstephens/bujo/internal/constants"
	"github.com/julianstephens/bujo/internal/journal"
)

// New creates an MCP server with every journal tool registered.
// Dates default to today in tz.
func New(client *journal.Client, tz string) *mcp.Server {
	jt := &JournalTools{Journal: client, Timezone: tz}
	ht := &HabitTools{Journal: client, Timezone: tz}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    constants.AppName,
		Version: constants.Version,
	}, nil)

	// Session and profile
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "whoami",
		Description: "Show the signed-in user",
	}, jt.WhoAmI)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "ensure_profile",
		Description: "Create the signed-in user's profile if it does not exist yet",
	}, jt.EnsureProfile)

	// Collections
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_collections",
		Description: "List the user's collections, oldest first",
	}, jt.ListCollections)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_collection",
		Description: "Create a collection (journal, project or zettelkasten)",
	}, jt.CreateCollection)

	// Entries
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_entries",
		Description: "List the entries scheduled on a date, optionally within one collection",
	}, jt.ListEntries)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_entry",
		Description: "Log an entry. A leading bullet sets the type: '- ' task, 'o ' event, '. ' note, '> ' idea",
	}, jt.CreateEntry)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "export_day",
		Description: "Render a day's entries and habits as markdown or html",
	}, jt.ExportDay)

	// Backlinks
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_backlinks",
		Description: "List links where the entry is the source or the target",
	}, jt.ListBacklinks)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_backlink",
		Description: "Link two entries",
	}, jt.CreateBacklink)

	// Habits
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_habits",
		Description: "List habit trackers with their completion on a date",
	}, ht.ListHabits)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_habit",
		Description: "Create a habit tracker",
	}, ht.CreateHabit)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "toggle_habit",
		Description: "Flip a habit's completion for a date and report whether it is now done",
	}, ht.ToggleHabit)

	return srv
}
