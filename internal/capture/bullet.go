// Package capture turns typed bullet-journal lines into entry drafts.
//
// A line that starts with one of the rapid-logging symbols followed by a
// space picks the entry type:
//
//	-  task
//	o  event
//	.  note
//	>  idea
package capture

import (
	"regexp"
	"strings"

	"github.com/julianstephens/bujo/internal/models"
)

// bulletRule matches a line holding exactly one symbol and one whitespace
var bulletRule = regexp.MustCompile(`^([-o.>])\s$`)

var symbolTypes = map[string]models.EntryType{
	"-": models.EntryTask,
	"o": models.EntryEvent,
	".": models.EntryNote,
	">": models.EntryIdea,
}

// TypeForSymbol maps a bullet symbol to its entry type. Unknown symbols are notes.
func TypeForSymbol(symbol string) models.EntryType {
	if t, ok := symbolTypes[symbol]; ok {
		return t
	}
	return models.EntryNote
}

// MatchBullet applies the input rule to the text of the current line up to the cursor.
func MatchBullet(lineBeforeCursor string) (string, bool) {
	m := bulletRule.FindStringSubmatch(lineBeforeCursor)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseLine classifies a complete line such as "- buy milk". Lines without a
// leading symbol are notes and are returned trimmed.
func ParseLine(line string) (models.EntryType, string) {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) >= 2 {
		if symbol, ok := MatchBullet(trimmed[:2]); ok {
			return TypeForSymbol(symbol), strings.TrimSpace(trimmed[2:])
		}
	}
	return models.EntryNote, strings.TrimSpace(line)
}
