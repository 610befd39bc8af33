package capture

import (
	"testing"

	"github.com/julianstephens/bujo/internal/models"
)

func TestTypeForSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		want   models.EntryType
	}{
		{"-", models.EntryTask},
		{"o", models.EntryEvent},
		{".", models.EntryNote},
		{">", models.EntryIdea},
		{"*", models.EntryNote},
		{"", models.EntryNote},
		{"O", models.EntryNote},
	}

	for _, tt := range tests {
		if got := TypeForSymbol(tt.symbol); got != tt.want {
			t.Errorf("TypeForSymbol(%q) = %s, want %s", tt.symbol, got, tt.want)
		}
	}
}

func TestMatchBullet(t *testing.T) {
	tests := []struct {
		line   string
		symbol string
		ok     bool
	}{
		{"- ", "-", true},
		{"o ", "o", true},
		{". ", ".", true},
		{"> ", ">", true},
		{"-\t", "-", true},
		{"* ", "", false},
		{"x ", "", false},
		{"-", "", false},
		{"-  ", "", false},
		{" - ", "", false},
		{"-x ", "", false},
		{"buy - ", "", false},
	}

	for _, tt := range tests {
		symbol, ok := MatchBullet(tt.line)
		if ok != tt.ok || symbol != tt.symbol {
			t.Errorf("MatchBullet(%q) = (%q, %v), want (%q, %v)", tt.line, symbol, ok, tt.symbol, tt.ok)
		}
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line     string
		wantType models.EntryType
		wantText string
	}{
		{"- buy milk", models.EntryTask, "buy milk"},
		{"o dentist at 3", models.EntryEvent, "dentist at 3"},
		{". slept badly", models.EntryNote, "slept badly"},
		{"> write a parser", models.EntryIdea, "write a parser"},
		{"  - indented task", models.EntryTask, "indented task"},
		{"plain text", models.EntryNote, "plain text"},
		{"* starred", models.EntryNote, "* starred"},
		{"-no space", models.EntryNote, "-no space"},
		{"- ", models.EntryTask, ""},
	}

	for _, tt := range tests {
		gotType, gotText := ParseLine(tt.line)
		if gotType != tt.wantType || gotText != tt.wantText {
			t.Errorf("ParseLine(%q) = (%s, %q), want (%s, %q)", tt.line, gotType, gotText, tt.wantType, tt.wantText)
		}
	}
}
