package models

import "time"

type Backlink struct {
	ID             string    `json:"id"`
	SourceEntryID  string    `json:"source_entry_id"`
	TargetEntryID  string    `json:"target_entry_id"`
	ContextSnippet *string   `json:"context_snippet"`
	CreatedAt      time.Time `json:"created_at"`
}

// Touches reports whether the entry is either endpoint of the link.
func (b Backlink) Touches(entryID string) bool {
	return b.SourceEntryID == entryID || b.TargetEntryID == entryID
}
