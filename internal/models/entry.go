package models

import (
	"encoding/json"
	"time"
)

type EntryType string

const (
	EntryTask  EntryType = "task"
	EntryEvent EntryType = "event"
	EntryNote  EntryType = "note"
	EntryIdea  EntryType = "idea"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryTask, EntryEvent, EntryNote, EntryIdea:
		return true
	}
	return false
}

type EntryStatus string

const (
	StatusTodo      EntryStatus = "todo"
	StatusCompleted EntryStatus = "completed"
	StatusMigrated  EntryStatus = "migrated"
	StatusCancelled EntryStatus = "cancelled"
)

func (s EntryStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusCompleted, StatusMigrated, StatusCancelled:
		return true
	}
	return false
}

// Entry is a single bullet-journal item scheduled on a calendar date.
// Content is an uninterpreted structured document; only the editor knows its schema.
type Entry struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	CollectionID  *string         `json:"collection_id"`
	ParentID      *string         `json:"parent_id"`
	Type          EntryType       `json:"type"`
	Status        EntryStatus     `json:"status"`
	Content       json.RawMessage `json:"content"`
	RawText       *string         `json:"raw_text"`
	ScheduledDate string          `json:"scheduled_date"` // YYYY-MM-DD format
	CreatedAt     time.Time       `json:"created_at"`
}

// Text returns the raw text of the entry, or an empty string when none was captured.
func (e Entry) Text() string {
	if e.RawText == nil {
		return ""
	}
	return *e.RawText
}

// Signifier is the rapid-logging mark shown before the entry text.
func (e Entry) Signifier() string {
	if e.Type == EntryTask {
		switch e.Status {
		case StatusCompleted:
			return "×"
		case StatusMigrated:
			return ">"
		case StatusCancelled:
			return "~"
		default:
			return "•"
		}
	}
	switch e.Type {
	case EntryEvent:
		return "○"
	case EntryIdea:
		return "!"
	default:
		return "–"
	}
}
