// SPDX-License-Identifier: EPL-2.0

package library

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/ik5/audsort/decode"
	"github.com/ik5/audsort/loudness"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Entry is one decoded file in a List.
type Entry struct {
	ID     uuid.UUID
	Record *decode.Record

	// Title and Artist come from the file's tags when metadata loading is
	// enabled; they are empty otherwise.
	Title  string
	Artist string
}

func NewEntry(rec *decode.Record) Entry {
	return Entry{ID: uuid.New(), Record: rec}
}

// Name is the title when known, the file name otherwise.
func (e Entry) Name() string {
	if e.Title != "" {
		return e.Title
	}
	return filepath.Base(e.Record.Path)
}

func (e Entry) Score() float64 {
	return loudness.Score(e.Record.Samples)
}

// List is an ordered collection of entries, safe for concurrent use.
type List struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewList(entries ...Entry) *List {
	return &List{entries: slices.Clone(entries)}
}

func (l *List) Append(entries ...Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entries...)
}

// Remove deletes the entry with id and reports whether it was present.
func (l *List) Remove(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.entries, func(e Entry) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	l.entries = slices.Delete(l.entries, i, i+1)

	return true
}

func (l *List) RemoveAt(i int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i < 0 || i >= len(l.entries) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(l.entries))
	}
	l.entries = slices.Delete(l.entries, i, i+1)

	return nil
}

// Entries returns a copy of the list in its current order.
func (l *List) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.entries)
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}

// SortByLoudness orders the list quietest first. Entries with equal scores
// keep their order.
func (l *List) SortByLoudness() {
	l.mu.Lock()
	defer l.mu.Unlock()

	loudness.Sort(l.entries, func(e Entry) []int16 { return e.Record.Samples })
}

// Scores returns the loudness of every entry, in list order.
func (l *List) Scores() []float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	scores := make([]float64, len(l.entries))
	for i, e := range l.entries {
		scores[i] = e.Score()
	}
	return scores
}
