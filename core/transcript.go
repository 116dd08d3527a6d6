package core

import (
	"bytes"
	"encoding/json"
	"time"

	. "github.com/stevegt/goadapt"
	"github.com/stevegt/gptchat/client"
)

// DateFormat is the layout of Transcript.DateCreated: ISO-8601 in UTC
// with millisecond precision.
const DateFormat = "2006-01-02T15:04:05.000Z"

// Transcript is the conversation of one session.  The first message is
// the system message; the rest alternate user, assistant.  Messages are
// only ever appended.
type Transcript struct {
	Messages    []client.ChatMsg `json:"messages"`
	Model       string           `json:"model"`
	DateCreated string           `json:"dateCreated"`
}

// NewTranscript starts a transcript for model with the given system
// prompt.
func NewTranscript(model, sysmsg string, created time.Time) *Transcript {
	return &Transcript{
		Messages:    []client.ChatMsg{{Role: client.RoleSystem, Content: sysmsg}},
		Model:       model,
		DateCreated: created.UTC().Format(DateFormat),
	}
}

// nextRole returns the role the next appended message must have.
func (t *Transcript) nextRole() string {
	if len(t.Messages)%2 == 1 {
		return client.RoleUser
	}
	return client.RoleAssistant
}

// AppendUser appends a user message.
func (t *Transcript) AppendUser(content string) {
	t.append(client.RoleUser, content)
}

// AppendAssistant appends an assistant message.
func (t *Transcript) AppendAssistant(content string) {
	t.append(client.RoleAssistant, content)
}

func (t *Transcript) append(role, content string) {
	Assert(t.nextRole() == role, "transcript expects a %s message next, got %s", t.nextRole(), role)
	t.Messages = append(t.Messages, client.ChatMsg{Role: role, Content: content})
}

// Turns returns the number of completed user/assistant exchanges.
func (t *Transcript) Turns() int {
	return (len(t.Messages) - 1) / 2
}

// Marshal renders the transcript as indented JSON in field order
// messages, model, dateCreated.
func (t *Transcript) Marshal() (buf []byte, err error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err = enc.Encode(t)
	if err != nil {
		return
	}
	// Encode always adds a newline
	buf = bytes.TrimSuffix(b.Bytes(), []byte("\n"))
	return
}
