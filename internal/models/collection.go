package models

import "time"

type CollectionType string

const (
	CollectionJournal      CollectionType = "journal"
	CollectionProject      CollectionType = "project"
	CollectionZettelkasten CollectionType = "zettelkasten"
)

// CollectionTypes lists every supported collection type in display order.
var CollectionTypes = []CollectionType{CollectionJournal, CollectionProject, CollectionZettelkasten}

func (t CollectionType) Valid() bool {
	switch t {
	case CollectionJournal, CollectionProject, CollectionZettelkasten:
		return true
	}
	return false
}

type Collection struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Title     string         `json:"title"`
	Type      CollectionType `json:"type"`
	IsPinned  bool           `json:"is_pinned"`
	CreatedAt time.Time      `json:"created_at"`
}
