package storage

import (
	"sort"
	"testing"
	"time"
)

func TestFormatTimestamp_SortsChronologically(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(time.Second),
		base,
		base.Add(1500 * time.Millisecond),
		base.Add(time.Nanosecond),
		base.Add(10 * time.Second),
	}

	formatted := make([]string, len(times))
	for i, ts := range times {
		formatted[i] = FormatTimestamp(ts)
	}
	sort.Strings(formatted)
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	for i := range times {
		if formatted[i] != FormatTimestamp(times[i]) {
			t.Errorf("lexical order %d = %s, want %s", i, formatted[i], FormatTimestamp(times[i]))
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 3, 1, 9, 0, 0, 500, time.UTC)

	got, err := ParseTimestamp(FormatTimestamp(want))
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp() = %v, want %v", got, want)
	}

	got, err = ParseTimestamp("2024-03-01T10:00:00.0000005+01:00")
	if err != nil {
		t.Fatalf("ParseTimestamp(RFC3339) error = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp(RFC3339) = %v, want %v", got, want)
	}

	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestFormatTimestamp_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	ts := time.Date(2024, 3, 1, 19, 0, 0, 0, loc)

	if got, want := FormatTimestamp(ts), "2024-03-02T00:00:00.000000000Z"; got != want {
		t.Errorf("FormatTimestamp() = %s, want %s", got, want)
	}
}
