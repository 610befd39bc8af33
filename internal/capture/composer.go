package capture

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/bujo/internal/models"
)

// ErrEmptyDraft is returned by Submit when the buffer holds only whitespace.
var ErrEmptyDraft = errors.New("nothing to save")

// Edit describes the effect of one Insert. Type is set when the bullet rule fired.
type Edit struct {
	Matched bool
	Type    models.EntryType
}

// Draft is the entry a submit would create.
type Draft struct {
	Type    models.EntryType
	Content json.RawMessage
	RawText string
}

// Composer is a line-oriented compose buffer with the bullet input rule.
// The last resolved type sticks for the life of the composer, across submits.
// Composer is not safe for concurrent use.
type Composer struct {
	lines     []string
	lastType  models.EntryType
	pending   bool
	submitted string
	lastErr   error
}

func NewComposer() *Composer {
	return &Composer{lines: []string{""}}
}

// Insert types text at the end of the buffer one rune at a time, so the
// rule sees the line exactly as a user typing it would produce.
func (c *Composer) Insert(text string) Edit {
	var edit Edit
	for _, r := range text {
		if r == '\n' {
			c.lines = append(c.lines, "")
			continue
		}
		cur := len(c.lines) - 1
		c.lines[cur] += string(r)

		if symbol, ok := MatchBullet(c.lines[cur]); ok {
			c.lines[cur] = ""
			c.lastType = TypeForSymbol(symbol)
			edit = Edit{Matched: true, Type: c.lastType}
		}
	}
	return edit
}

// Backspace removes the last rune, joining lines at a line start.
func (c *Composer) Backspace() {
	cur := len(c.lines) - 1
	if c.lines[cur] == "" {
		if cur > 0 {
			c.lines = c.lines[:cur]
		}
		return
	}
	_, size := utf8.DecodeLastRuneInString(c.lines[cur])
	c.lines[cur] = c.lines[cur][:len(c.lines[cur])-size]
}

// SetText replaces the buffer without applying the rule.
func (c *Composer) SetText(text string) {
	c.lines = strings.Split(text, "\n")
}

// Text returns the buffer with lines joined by newlines.
func (c *Composer) Text() string {
	return strings.Join(c.lines, "\n")
}

// LastType is the type a submit would use: the last rule match, or note.
func (c *Composer) LastType() models.EntryType {
	if c.lastType == "" {
		return models.EntryNote
	}
	return c.lastType
}

// Pending reports whether a submitted draft awaits Confirm or Fail.
func (c *Composer) Pending() bool {
	return c.pending
}

// Err is the failure passed to the last Fail call, cleared on the next submit.
func (c *Composer) Err() error {
	return c.lastErr
}

// Submit builds a draft from the buffer. The buffer is left untouched until
// Confirm so a failed create never loses the text.
func (c *Composer) Submit() (Draft, error) {
	raw := strings.TrimSpace(c.Text())
	if raw == "" {
		return Draft{}, ErrEmptyDraft
	}

	content, err := json.Marshal(c.document())
	if err != nil {
		return Draft{}, err
	}

	c.pending = true
	c.submitted = c.Text()
	c.lastErr = nil
	return Draft{
		Type:    c.LastType(),
		Content: content,
		RawText: raw,
	}, nil
}

// Confirm removes the persisted draft from the buffer. Text typed after the
// submit is kept. If the submitted text itself was edited while pending, the
// whole buffer is kept.
func (c *Composer) Confirm() {
	text := c.Text()
	if rest, ok := strings.CutPrefix(text, c.submitted); ok {
		c.lines = strings.Split(strings.TrimPrefix(rest, "\n"), "\n")
	}
	c.pending = false
	c.submitted = ""
	c.lastErr = nil
}

// Fail records a failed create and keeps the draft for another attempt.
func (c *Composer) Fail(err error) {
	c.pending = false
	c.submitted = ""
	c.lastErr = err
}

type node struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Content []node `json:"content,omitempty"`
}

// document renders the buffer as a rich-text document: one paragraph per line
func (c *Composer) document() node {
	doc := node{Type: "doc", Content: make([]node, 0, len(c.lines))}
	for _, line := range c.lines {
		p := node{Type: "paragraph"}
		if line != "" {
			p.Content = []node{{Type: "text", Text: line}}
		}
		doc.Content = append(doc.Content, p)
	}
	return doc
}

// Document returns the rich-text JSON for text, one paragraph per line.
func Document(text string) (json.RawMessage, error) {
	c := &Composer{lines: strings.Split(text, "\n")}
	return json.Marshal(c.document())
}
