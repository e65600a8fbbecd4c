package service

import (
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/maze-editor-api/editor"
	"github.com/beka-birhanu/maze-editor-api/editor/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// recordingBroadcaster remembers every event it was handed.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events map[uuid.UUID][]editor.Event
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{events: make(map[uuid.UUID][]editor.Event)}
}

func (b *recordingBroadcaster) Broadcast(id uuid.UUID, ev editor.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[id] = append(b.events[id], ev)
}

func (b *recordingBroadcaster) received(id uuid.UUID, t editor.EventType) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ev := range b.events[id] {
		if ev.Type == t {
			return true
		}
	}
	return false
}

func TestEditorSessionManager(t *testing.T) {
	t.Run("hosts sessions and returns them by id", func(t *testing.T) {
		m, err := NewEditorSessionManager(&Config{})
		assert.NoError(t, err)
		defer m.StopAll()

		id, sess, err := m.Create(editor.Config{Text: "P.E"})
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.NotNil(t, sess)

		got, err := m.Get(id)
		assert.NoError(t, err)
		assert.Same(t, sess, got)
	})

	t.Run("reports unknown session ids", func(t *testing.T) {
		m, err := NewEditorSessionManager(&Config{})
		assert.NoError(t, err)
		defer m.StopAll()

		_, err = m.Get(uuid.New())
		assert.ErrorIs(t, err, ErrSessionNotFound)

		assert.ErrorIs(t, m.Remove(uuid.New()), ErrSessionNotFound)
	})

	t.Run("remove closes the session", func(t *testing.T) {
		m, err := NewEditorSessionManager(&Config{})
		assert.NoError(t, err)
		defer m.StopAll()

		id, sess, err := m.Create(editor.Config{Text: "P.E"})
		assert.NoError(t, err)

		assert.NoError(t, m.Remove(id))

		_, err = m.Get(id)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.ErrorIs(t, sess.SetText("##"), editor.ErrSessionClosed)
	})

	t.Run("caps the number of hosted sessions", func(t *testing.T) {
		m, err := NewEditorSessionManager(&Config{MaxSessions: 1})
		assert.NoError(t, err)
		defer m.StopAll()

		_, _, err = m.Create(editor.Config{})
		assert.NoError(t, err)

		_, _, err = m.Create(editor.Config{})
		assert.ErrorIs(t, err, ErrTooManySessions)
	})

	t.Run("rejects invalid session configs", func(t *testing.T) {
		m, err := NewEditorSessionManager(&Config{})
		assert.NoError(t, err)
		defer m.StopAll()

		_, _, err = m.Create(editor.Config{
			Symbols: &maze.SymbolConfig{Wall: '#', Path: '#', Start: 'P', End: 'E'},
		})
		assert.ErrorIs(t, err, maze.ErrInvalidSymbolMapping)
	})

	t.Run("forwards session events to the broadcaster", func(t *testing.T) {
		b := newRecordingBroadcaster()
		m, err := NewEditorSessionManager(&Config{Broadcaster: b})
		assert.NoError(t, err)
		defer m.StopAll()

		id, sess, err := m.Create(editor.Config{Text: "P.E"})
		assert.NoError(t, err)

		assert.NoError(t, sess.SetText("PE"))

		assert.Eventually(t, func() bool {
			return b.received(id, editor.EventGridRebuilt)
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("stop all closes every session", func(t *testing.T) {
		m, err := NewEditorSessionManager(&Config{})
		assert.NoError(t, err)

		_, first, err := m.Create(editor.Config{Text: "P.E"})
		assert.NoError(t, err)
		_, second, err := m.Create(editor.Config{Text: "P.E"})
		assert.NoError(t, err)

		m.StopAll()

		assert.ErrorIs(t, first.SetText("#"), editor.ErrSessionClosed)
		assert.ErrorIs(t, second.SetText("#"), editor.ErrSessionClosed)
	})
}

func TestEditorSessionManagerSweep(t *testing.T) {
	m, err := NewEditorSessionManager(&Config{
		TTL:        10 * time.Millisecond,
		SweepEvery: 20 * time.Millisecond,
	})
	assert.NoError(t, err)
	defer m.StopAll()

	id, _, err := m.Create(editor.Config{Text: "P.E"})
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := m.Get(id)
		return err != nil
	}, time.Second, 10*time.Millisecond, "idle session should be swept")
}
