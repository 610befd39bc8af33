package constants

import "time"

const (
	AppName            = "bujo"
	DefaultKeyringUser = "database-connection"
	SessionKeyringUser = "session-token"
	SecretKeyringUser  = "session-secret"
	DefaultConfigPath  = "~/.config/bujo/config.yaml"
	DefaultDBPath      = "~/.config/bujo/bujo.db"
	Version            = "v0.1.0"

	// DateFormat is the calendar-date format used for every date-scoped field (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is the fixed-width UTC format used for created_at columns.
	// Fixed width keeps lexical order equal to chronological order.
	TimestampFormat = "2006-01-02T15:04:05.000000000Z"

	// Environment overrides
	EnvSessionToken = "BUJO_SESSION_TOKEN"
	EnvDBConnection = "BUJO_DB_CONNECTION"
	EnvSessionKey   = "BUJO_SESSION_SECRET"

	DefaultSessionTTL = 30 * 24 * time.Hour

	// Table names
	TableProfiles      = "profiles"
	TableCollections   = "collections"
	TableEntries       = "entries"
	TableHabitTrackers = "habit_trackers"
	TableHabitLogs     = "habit_logs"
	TableBacklinks     = "backlinks"
)

// SessionState is the active view of the TUI
type SessionState int

const (
	StateDay SessionState = iota
	StateHabits
	StateCompose
	StateAddHabit
)

// NumMainTabs counts the tab-switchable views at the start of SessionState
const NumMainTabs = 2
