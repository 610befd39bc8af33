package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "not authenticated",
			err:      fmt.Errorf("create entry: %w", ErrNotAuthenticated),
			expected: "Error: create entry: not authenticated (run 'bujo login' first)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s", "entries")
	if got != "Error: failed to load entries" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestQueryError(t *testing.T) {
	cause := errors.New("relation \"entries\" does not exist")
	err := Query("fetch entries", cause)

	if err.Error() != "fetch entries: relation \"entries\" does not exist" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("QueryError should unwrap to its cause")
	}
	if !IsQueryError(err) {
		t.Error("IsQueryError should report true")
	}
	if IsQueryError(cause) {
		t.Error("IsQueryError should report false for a plain error")
	}
	if Query("noop", nil) != nil {
		t.Error("Query with nil error should return nil")
	}
}

func TestInvalidf(t *testing.T) {
	err := Invalidf("unknown entry type %q", "chore")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatal("Invalidf should wrap ErrInvalidInput")
	}
	if err.Error() != `invalid input: unknown entry type "chore"` {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
