// Package history keeps generated artifacts in memory so the front-end can
// list, re-download, and clear its creations. Nothing is persisted; restarting
// the server starts with an empty history.
package history

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the requested entry does not exist or was evicted.
var ErrNotFound = errors.New("history: entry not found")

// Mode distinguishes how an entry was created.
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeEdit     Mode = "edit"
)

// Entry is one generated artifact plus the prompt that produced it.
type Entry struct {
	ID        string
	Mode      Mode
	Prompt    string
	MIMEType  string
	Data      []byte
	Text      string
	CreatedAt time.Time
}

// Store is a bounded, newest-first in-memory history. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	limit   int
	entries []Entry
	now     func() time.Time
}

// NewStore creates a store that holds at most limit entries, evicting the
// oldest on overflow.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = 50
	}
	return &Store{limit: limit, now: time.Now}
}

// Add records a new entry and returns it with its assigned ID and timestamp.
func (s *Store) Add(mode Mode, prompt, mimeType string, data []byte, text string) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Mode:      mode,
		Prompt:    prompt,
		MIMEType:  mimeType,
		Data:      append([]byte(nil), data...),
		Text:      text,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
	return entry
}

// Get returns the entry with the given ID.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// List returns all entries, newest first.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Delete removes a single entry.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Len reports the current number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
