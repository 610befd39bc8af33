package models

import (
	"encoding/json"
	"time"
)

// HabitTracker is a recurring habit definition.
// Frequency is an opaque schedule descriptor stored as JSON.
type HabitTracker struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	GoalValue *float64        `json:"goal_value"`
	Unit      *string         `json:"unit"`
	Frequency json.RawMessage `json:"frequency"`
	CreatedAt time.Time       `json:"created_at"`
}

// HabitLog records one day's completion of a habit.
// There is at most one log per (HabitID, CompletedAt).
type HabitLog struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	CompletedAt string    `json:"completed_at"` // YYYY-MM-DD format
	Value       *float64  `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
}
