package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/julianstephens/bujo/internal/capture"
	"github.com/julianstephens/bujo/internal/export"
	"github.com/julianstephens/bujo/internal/journal"
	"github.com/julianstephens/bujo/internal/models"
)

// JournalTools holds references needed by the collection, entry and backlink handlers.
type JournalTools struct {
	Journal  *journal.Client
	Timezone string
}

// --- Input types ---

type CreateCollectionInput struct {
	Title string `json:"title" jsonschema:"Collection title"`
	Type  string `json:"type" jsonschema:"Collection type: journal, project or zettelkasten"`
}

type ListEntriesInput struct {
	Date         string `json:"date,omitempty" jsonschema:"Date in YYYY-MM-DD format (default: today)"`
	CollectionID string `json:"collection_id,omitempty" jsonschema:"Only list entries in this collection"`
}

type CreateEntryInput struct {
	Text         string `json:"text" jsonschema:"Entry text, optionally starting with a bullet symbol"`
	Date         string `json:"date,omitempty" jsonschema:"Date in YYYY-MM-DD format (default: today)"`
	Type         string `json:"type,omitempty" jsonschema:"Entry type: task, event, note or idea (overrides the bullet)"`
	Status       string `json:"status,omitempty" jsonschema:"Entry status: todo, completed, migrated or cancelled (default: todo)"`
	CollectionID string `json:"collection_id,omitempty" jsonschema:"Collection to file the entry under"`
	ParentID     string `json:"parent_id,omitempty" jsonschema:"Parent entry for nesting"`
}

type ExportDayInput struct {
	Date         string `json:"date,omitempty" jsonschema:"Date in YYYY-MM-DD format (default: today)"`
	Format       string `json:"format,omitempty" jsonschema:"Output format: md or html (default: md)"`
	CollectionID string `json:"collection_id,omitempty" jsonschema:"Only export entries in this collection"`
}

type ListBacklinksInput struct {
	EntryID string `json:"entry_id" jsonschema:"Entry whose links to list"`
}

type CreateBacklinkInput struct {
	SourceEntryID  string `json:"source_entry_id" jsonschema:"Entry the link starts from"`
	TargetEntryID  string `json:"target_entry_id" jsonschema:"Entry the link points to"`
	ContextSnippet string `json:"context_snippet,omitempty" jsonschema:"Text surrounding the link"`
}

// --- Handlers ---

func (t *JournalTools) WhoAmI(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	user, err := t.Journal.CurrentUser(ctx)
	if err != nil {
		return toolError("Failed to resolve session: %v", err), nil, nil
	}
	return toolJSON(user)
}

func (t *JournalTools) EnsureProfile(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	profile, err := t.Journal.EnsureProfile(ctx)
	if err != nil {
		return toolError("Failed to ensure profile: %v", err), nil, nil
	}
	return toolJSON(profile)
}

func (t *JournalTools) ListCollections(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	collections, err := t.Journal.FetchCollections(ctx)
	if err != nil {
		return toolError("Failed to list collections: %v", err), nil, nil
	}
	if collections == nil {
		collections = []models.Collection{}
	}
	return toolJSON(collections)
}

func (t *JournalTools) CreateCollection(ctx context.Context, _ *mcp.CallToolRequest, input CreateCollectionInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Title) == "" {
		return toolError("Collection title is required"), nil, nil
	}

	col, err := t.Journal.CreateCollection(ctx, journal.CreateCollectionInput{
		Title: strings.TrimSpace(input.Title),
		Type:  models.CollectionType(input.Type),
	})
	if err != nil {
		return toolError("Failed to create collection: %v", err), nil, nil
	}
	return toolJSON(col)
}

func (t *JournalTools) ListEntries(ctx context.Context, _ *mcp.CallToolRequest, input ListEntriesInput) (*mcp.CallToolResult, any, error) {
	date, err := resolveDate(input.Date, t.Timezone)
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	entries, err := t.Journal.FetchEntriesByDate(ctx, journal.FetchEntriesInput{
		CollectionID: optional(input.CollectionID),
		Date:         date,
	})
	if err != nil {
		return toolError("Failed to list entries: %v", err), nil, nil
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	return toolJSON(entries)
}

func (t *JournalTools) CreateEntry(ctx context.Context, _ *mcp.CallToolRequest, input CreateEntryInput) (*mcp.CallToolResult, any, error) {
	entryType, text := capture.ParseLine(input.Text)
	if strings.TrimSpace(text) == "" {
		return toolError("Entry text is required"), nil, nil
	}
	if input.Type != "" {
		entryType = models.EntryType(input.Type)
	}

	date, err := resolveDate(input.Date, t.Timezone)
	if err != nil {
		return toolError("%v", err), nil, nil
	}
	content, err := capture.Document(text)
	if err != nil {
		return toolError("Failed to build entry content: %v", err), nil, nil
	}

	entry, err := t.Journal.CreateEntry(ctx, journal.CreateEntryInput{
		CollectionID:  optional(input.CollectionID),
		ParentID:      optional(input.ParentID),
		Type:          entryType,
		Status:        models.EntryStatus(input.Status),
		Content:       content,
		RawText:       &text,
		ScheduledDate: date,
	})
	if err != nil {
		return toolError("Failed to create entry: %v", err), nil, nil
	}
	return toolJSON(entry)
}

func (t *JournalTools) ExportDay(ctx context.Context, _ *mcp.CallToolRequest, input ExportDayInput) (*mcp.CallToolResult, any, error) {
	date, err := resolveDate(input.Date, t.Timezone)
	if err != nil {
		return toolError("%v", err), nil, nil
	}

	log, err := export.Collect(ctx, t.Journal, date, optional(input.CollectionID))
	if err != nil {
		return toolError("Failed to collect %s: %v", date, err), nil, nil
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, log, export.Format(input.Format)); err != nil {
		return toolError("Failed to export %s: %v", date, err), nil, nil
	}
	return toolText(buf.String()), nil, nil
}

func (t *JournalTools) ListBacklinks(ctx context.Context, _ *mcp.CallToolRequest, input ListBacklinksInput) (*mcp.CallToolResult, any, error) {
	if input.EntryID == "" {
		return toolError("Entry id is required"), nil, nil
	}

	links, err := t.Journal.FetchBacklinksForEntry(ctx, input.EntryID)
	if err != nil {
		return toolError("Failed to list backlinks: %v", err), nil, nil
	}
	if links == nil {
		links = []models.Backlink{}
	}
	return toolJSON(links)
}

func (t *JournalTools) CreateBacklink(ctx context.Context, _ *mcp.CallToolRequest, input CreateBacklinkInput) (*mcp.CallToolResult, any, error) {
	if input.SourceEntryID == "" || input.TargetEntryID == "" {
		return toolError("Both source_entry_id and target_entry_id are required"), nil, nil
	}

	link, err := t.Journal.CreateBacklink(ctx, journal.CreateBacklinkInput{
		SourceEntryID:  input.SourceEntryID,
		TargetEntryID:  input.TargetEntryID,
		ContextSnippet: optional(input.ContextSnippet),
	})
	if err != nil {
		return toolError("Failed to create backlink: %v", err), nil, nil
	}
	return toolJSON(link)
}

// --- Helpers ---

func resolveDate(date, tz string) (string, error) {
	if date == "" {
		return journal.Today(tz)
	}
	return journal.ShiftDate(date, 0)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
