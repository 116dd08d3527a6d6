package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/stevegt/goadapt"
	"github.com/stevegt/gptchat/client"
)

var testStart = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestNewTranscript(t *testing.T) {
	// local times are converted to UTC
	loc := time.FixedZone("X", 2*60*60)
	tr := NewTranscript("model-fast", "Be terse.", testStart.In(loc).Add(1234*time.Millisecond))
	Tassert(t, tr.DateCreated == "2024-05-01T12:00:01.234Z", "unexpected date %q", tr.DateCreated)
	Tassert(t, len(tr.Messages) == 1 && tr.Messages[0].Role == client.RoleSystem, "unexpected messages %v", tr.Messages)
	Tassert(t, tr.Turns() == 0, "expected 0 turns, got %d", tr.Turns())
}

func TestTranscriptAppendOrder(t *testing.T) {
	tr := NewTranscript("model-fast", "Be terse.", testStart)
	tr.AppendUser("Hi")
	tr.AppendAssistant("Hello")
	Tassert(t, tr.Turns() == 1, "expected 1 turn, got %d", tr.Turns())

	defer func() {
		r := recover()
		Tassert(t, r != nil, "appending two assistant messages in a row should panic")
		Tassert(t, len(tr.Messages) == 3, "transcript was modified: %v", tr.Messages)
	}()
	tr.AppendAssistant("again")
}

func TestTranscriptMarshal(t *testing.T) {
	tr := NewTranscript("model-fast", "Be terse.", testStart)
	tr.AppendUser("Is <b> & </b> html?")
	tr.AppendAssistant("Yes.")
	buf, err := tr.Marshal()
	Tassert(t, err == nil, "Marshal: %v", err)
	want := `{
  "messages": [
    {
      "role": "system",
      "content": "Be terse."
    },
    {
      "role": "user",
      "content": "Is <b> & </b> html?"
    },
    {
      "role": "assistant",
      "content": "Yes."
    }
  ],
  "model": "model-fast",
  "dateCreated": "2024-05-01T12:00:00.000Z"
}`
	Tassert(t, string(buf) == want, "unexpected json:\n%s", buf)
}

func TestStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	tr := NewTranscript("model-fast", "Be terse.", testStart)
	tr.AppendUser("Hi")
	tr.AppendAssistant("Hello")

	path := store.Path(tr)
	Tassert(t, path == filepath.Join(dir, "model-fast-2024-05-01T12:00:00.000Z.json"), "unexpected path %q", path)

	err := store.Save(tr)
	Tassert(t, err == nil, "Save: %v", err)
	first, err := os.ReadFile(path)
	Tassert(t, err == nil, "reading transcript: %v", err)

	// saving again without new messages changes nothing
	err = store.Save(tr)
	Tassert(t, err == nil, "Save: %v", err)
	second, err := os.ReadFile(path)
	Tassert(t, err == nil, "reading transcript: %v", err)
	Tassert(t, bytes.Equal(first, second), "second save differs:\n%s\n%s", first, second)

	var got Transcript
	err = json.Unmarshal(second, &got)
	Tassert(t, err == nil, "unmarshal: %v", err)
	Tassert(t, got.Model == "model-fast" && got.DateCreated == tr.DateCreated, "unexpected header %+v", got)
	Tassert(t, len(got.Messages) == 3 && got.Messages[2].Content == "Hello", "unexpected messages %v", got.Messages)

	// a later save of the same session overwrites the same file
	tr.AppendUser("Again")
	tr.AppendAssistant("Hello again")
	err = store.Save(tr)
	Tassert(t, err == nil, "Save: %v", err)
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	Tassert(t, err == nil, "glob: %v", err)
	Tassert(t, len(matches) == 1, "expected one transcript file, got %v", matches)
}

func TestStoreSaveMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "conversations"))
	tr := NewTranscript("model-fast", "Be terse.", testStart)
	err := store.Save(tr)
	var serr *StorageError
	Tassert(t, errors.As(err, &serr), "expected a StorageError, got %v", err)
	Tassert(t, serr.Path == store.Path(tr), "unexpected path %q", serr.Path)
	_, statErr := os.Stat(store.Dir)
	Tassert(t, os.IsNotExist(statErr), "Save should not create the directory")
}
