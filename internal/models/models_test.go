package models

import "testing"

func strPtr(s string) *string { return &s }

func TestOutline(t *testing.T) {
	entries := []Entry{
		{ID: "a"},
		{ID: "b", ParentID: strPtr("a")},
		{ID: "c"},
		{ID: "d", ParentID: strPtr("b")},
		{ID: "e", ParentID: strPtr("elsewhere")},
		{ID: "f", ParentID: strPtr("a")},
	}

	got := Outline(entries)
	want := []struct {
		id    string
		depth int
	}{
		{"a", 0}, {"b", 1}, {"d", 2}, {"f", 1}, {"c", 0}, {"e", 0},
	}
	if len(got) != len(want) {
		t.Fatalf("Outline() returned %d items, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Entry.ID != w.id || got[i].Depth != w.depth {
			t.Errorf("item %d = (%s, %d), want (%s, %d)", i, got[i].Entry.ID, got[i].Depth, w.id, w.depth)
		}
	}
}

func TestOutline_Cycle(t *testing.T) {
	entries := []Entry{
		{ID: "x", ParentID: strPtr("y")},
		{ID: "y", ParentID: strPtr("x")},
		{ID: "self", ParentID: strPtr("self")},
	}
	if got := Outline(entries); len(got) != 3 {
		t.Errorf("Outline() returned %d items, want all 3", len(got))
	}
}

func TestEnumValidity(t *testing.T) {
	for _, ct := range CollectionTypes {
		if !ct.Valid() {
			t.Errorf("%s should be valid", ct)
		}
	}
	if CollectionType("folder").Valid() {
		t.Error("folder should not be a valid collection type")
	}
	if EntryType("reminder").Valid() || !EntryIdea.Valid() {
		t.Error("entry type validity mismatch")
	}
	if EntryStatus("done").Valid() || !StatusMigrated.Valid() {
		t.Error("entry status validity mismatch")
	}
}

func TestSignifier(t *testing.T) {
	tests := []struct {
		entry Entry
		want  string
	}{
		{Entry{Type: EntryTask, Status: StatusTodo}, "•"},
		{Entry{Type: EntryTask, Status: StatusCompleted}, "×"},
		{Entry{Type: EntryTask, Status: StatusMigrated}, ">"},
		{Entry{Type: EntryTask, Status: StatusCancelled}, "~"},
		{Entry{Type: EntryEvent}, "○"},
		{Entry{Type: EntryNote}, "–"},
		{Entry{Type: EntryIdea}, "!"},
	}
	for _, tt := range tests {
		if got := tt.entry.Signifier(); got != tt.want {
			t.Errorf("Signifier(%s/%s) = %q, want %q", tt.entry.Type, tt.entry.Status, got, tt.want)
		}
	}
}

func TestNewProfile(t *testing.T) {
	p := NewProfile(User{ID: "u1", Metadata: UserMetadata{FullName: "Ada"}})
	if p.ID != "u1" || p.FullName == nil || *p.FullName != "Ada" {
		t.Errorf("NewProfile() = %+v", p)
	}
	if p.AvatarURL != nil {
		t.Errorf("AvatarURL = %q, want nil", *p.AvatarURL)
	}
}

func TestBacklinkTouches(t *testing.T) {
	b := Backlink{SourceEntryID: "s", TargetEntryID: "t"}
	if !b.Touches("s") || !b.Touches("t") || b.Touches("u") {
		t.Errorf("Touches mismatch for %+v", b)
	}
}
