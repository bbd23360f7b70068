// SPDX-License-Identifier: EPL-2.0

package library

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ik5/audsort/decode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(path string, samples ...int16) Entry {
	return NewEntry(&decode.Record{Path: path, Samples: samples})
}

func paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Record.Path
	}
	return out
}

func TestEntry_Name(t *testing.T) {
	t.Parallel()

	e := entry("/music/rock/track01.mp3", 1)
	assert.Equal(t, "track01.mp3", e.Name())

	e.Title = "Intro"
	assert.Equal(t, "Intro", e.Name())
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.NotEqual(t, e.ID, entry("/music/rock/track01.mp3").ID)
}

func TestList_AppendAndRemove(t *testing.T) {
	t.Parallel()

	a, b, c := entry("a", 1), entry("b", 2), entry("c", 3)
	l := NewList(a)
	l.Append(b, c)

	require.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"a", "b", "c"}, paths(l.Entries()))

	assert.True(t, l.Remove(b.ID))
	assert.False(t, l.Remove(b.ID))
	assert.False(t, l.Remove(uuid.New()))
	assert.Equal(t, []string{"a", "c"}, paths(l.Entries()))

	require.NoError(t, l.RemoveAt(0))
	assert.Equal(t, []string{"c"}, paths(l.Entries()))

	assert.ErrorIs(t, l.RemoveAt(1), ErrIndexOutOfRange)
	assert.ErrorIs(t, l.RemoveAt(-1), ErrIndexOutOfRange)
	assert.Equal(t, 1, l.Len())
}

func TestList_EntriesIsACopy(t *testing.T) {
	t.Parallel()

	l := NewList(entry("a"), entry("b"))
	got := l.Entries()
	got[0] = entry("changed")

	assert.Equal(t, []string{"a", "b"}, paths(l.Entries()))
}

func TestList_SortByLoudness(t *testing.T) {
	t.Parallel()

	l := NewList(
		entry("loud", 3000, -3000),
		entry("tie-1", 100),
		entry("empty"),
		entry("tie-2", -100),
		entry("quiet", 1),
	)

	l.SortByLoudness()

	assert.Equal(t, []string{"empty", "quiet", "tie-1", "tie-2", "loud"}, paths(l.Entries()))
	assert.Equal(t, []float64{0, 1, 100, 100, 3000}, l.Scores())
}

func TestList_ConcurrentUse(t *testing.T) {
	t.Parallel()

	l := NewList()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := entry("x", int16(i))
			l.Append(e)
			_ = l.Scores()
			l.SortByLoudness()
			if i%2 == 0 {
				l.Remove(e.ID)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 25, l.Len())
}
