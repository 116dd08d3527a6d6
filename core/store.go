package core

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	. "github.com/stevegt/goadapt"
)

// DefaultDir is the directory transcripts are written to when none is
// given.  It is never created by gptchat.
var DefaultDir = "conversations"

// lockName is the advisory lock file held while a transcript is
// written.
const lockName = ".gptchat.lock"

// Store writes transcripts into a directory, one file per session.
type Store struct {
	Dir string
}

// NewStore returns a Store for dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the file a transcript is saved to.  It depends only on
// the model and creation time, so every save of a session lands on
// the same file.
func (s *Store) Path(t *Transcript) string {
	return filepath.Join(s.Dir, Spf("%s-%s.json", t.Model, t.DateCreated))
}

// Save writes the transcript, replacing any earlier save of the same
// session.
func (s *Store) Save(t *Transcript) (err error) {
	path := s.Path(t)
	buf, err := t.Marshal()
	if err != nil {
		return &StorageError{Path: path, Err: err}
	}
	// the lock file lives in Dir, so a missing Dir fails here
	lock := flock.New(filepath.Join(s.Dir, lockName))
	err = lock.Lock()
	if err != nil {
		return &StorageError{Path: path, Err: err}
	}
	defer lock.Unlock()
	err = os.WriteFile(path, buf, 0644)
	if err != nil {
		return &StorageError{Path: path, Err: err}
	}
	Debug("saved %d messages to %s", len(t.Messages), path)
	return
}
