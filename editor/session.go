package editor

import (
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/beka-birhanu/maze-editor-api/editor/maze"
)

// Session-related errors.
var (
	ErrReplayInProgress = errors.New("a replay is already in progress")
	ErrSessionClosed    = errors.New("editor session is closed")
)

const (
	defaultStepDelay = 150 * time.Millisecond

	// eventBufferSize bounds the event channel. A consumer that falls
	// this far behind starts losing events rather than blocking edits.
	eventBufferSize = 64
)

// Session is one live maze editing session. It owns the maze text, the
// symbol mapping, the key binding, the grid parsed from them, and the
// cursor walking that grid. Every change goes through the session so the
// grid is always in sync with the text.
//
// All methods are safe for concurrent use.
type Session struct {
	text       string              // current maze text
	symbols    maze.SymbolConfig   // symbol mapping the grid was parsed with
	moveKeys   maze.MoveKeyConfig  // key binding for moves and move strings
	grid       *maze.Grid          // grid parsed from text under symbols
	generation uint64              // bumped on every grid replacement
	cursor     maze.Position       // agent position on the grid
	hasCursor  bool                // false until a solve or a manual move
	solution   *maze.SolverResult  // most recent solve of the current grid
	replaying  bool                // a replay goroutine is walking the grid
	stepDelay  time.Duration       // pause between replay steps
	events     chan Event          // observable session changes
	done       chan struct{}       // closed when the session closes
	closed     bool
	lastActive time.Time
	logger     *log.Logger
	sync.RWMutex
}

// Config carries the options for a new session. Zero values fall back to
// defaults, so Config{} is a valid empty session.
type Config struct {
	Text      string
	Symbols   *maze.SymbolConfig  // nil means DefaultSymbols
	MoveKeys  *maze.MoveKeyConfig // nil means DefaultMoveKeys
	StepDelay time.Duration       // non-positive means the default delay
	Logger    *log.Logger
}

// New creates a session and parses its initial grid. It returns an error
// when the configured symbol mapping or key binding is invalid.
func New(cfg Config) (*Session, error) {
	symbols := maze.DefaultSymbols()
	if cfg.Symbols != nil {
		symbols = *cfg.Symbols
	}
	if err := symbols.Validate(); err != nil {
		return nil, err
	}

	moveKeys := maze.DefaultMoveKeys()
	if cfg.MoveKeys != nil {
		moveKeys = *cfg.MoveKeys
	}
	if err := moveKeys.Validate(); err != nil {
		return nil, err
	}

	stepDelay := cfg.StepDelay
	if stepDelay <= 0 {
		stepDelay = defaultStepDelay
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "editor: ", log.LstdFlags)
	}

	return &Session{
		text:       cfg.Text,
		symbols:    symbols,
		moveKeys:   moveKeys,
		grid:       maze.BuildGrid(cfg.Text, symbols),
		generation: 1,
		stepDelay:  stepDelay,
		events:     make(chan Event, eventBufferSize),
		done:       make(chan struct{}),
		lastActive: time.Now(),
		logger:     logger,
	}, nil
}

// State is a point-in-time snapshot of a session. The grid and solution it
// references are never mutated after the snapshot; later edits replace
// them wholesale.
type State struct {
	Text       string
	Symbols    maze.SymbolConfig
	MoveKeys   maze.MoveKeyConfig
	Grid       *maze.Grid
	Generation uint64
	Cursor     *maze.Position // nil until a solve or manual move places it
	Solution   *maze.SolverResult
	Replaying  bool
}

// State returns a snapshot of the session and marks it active.
func (s *Session) State() State {
	s.Lock()
	defer s.Unlock()
	s.touchLocked()

	st := State{
		Text:       s.text,
		Symbols:    s.symbols,
		MoveKeys:   s.moveKeys,
		Grid:       s.grid,
		Generation: s.generation,
		Solution:   s.solution,
		Replaying:  s.replaying,
	}
	if s.hasCursor {
		cursor := s.cursor
		st.Cursor = &cursor
	}
	return st
}

// Events returns the channel of session changes. The channel closes when
// the session does. Consumers must keep draining it; a full buffer drops
// events instead of blocking edits.
func (s *Session) Events() <-chan Event {
	return s.events
}

// LastActive returns the time of the session's most recent operation.
func (s *Session) LastActive() time.Time {
	s.RLock()
	defer s.RUnlock()
	return s.lastActive
}

// SetText replaces the maze text and rebuilds the grid. A replay that was
// walking the old grid is invalidated.
func (s *Session) SetText(text string) error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	s.text = text
	s.rebuildLocked()
	return nil
}

// SetSymbols replaces the symbol mapping and rebuilds the grid from the
// unchanged text. An invalid mapping is rejected and the old one kept.
func (s *Session) SetSymbols(symbols maze.SymbolConfig) error {
	if err := symbols.Validate(); err != nil {
		return err
	}

	s.Lock()
	defer s.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	s.symbols = symbols
	s.rebuildLocked()
	return nil
}

// SetMoveKeys replaces the key binding. An invalid binding is rejected and
// the old one kept. The grid does not depend on keys, so it survives; move
// strings of earlier solves keep the spelling they were solved with.
func (s *Session) SetMoveKeys(keys maze.MoveKeyConfig) error {
	if err := keys.Validate(); err != nil {
		return err
	}

	s.Lock()
	defer s.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	s.moveKeys = keys
	s.touchLocked()
	return nil
}

// Solve searches the current grid and places the cursor on the start
// cell. It fails with ErrReplayInProgress while a replay is walking.
func (s *Session) Solve() (maze.SolverResult, error) {
	return s.solve(false)
}

// SolveAndReplay solves like Solve and then walks the cursor along the
// route, one step per configured delay, emitting a cursor event per step.
// The walk is abandoned when a text or symbol change replaces the grid.
func (s *Session) SolveAndReplay() (maze.SolverResult, error) {
	return s.solve(true)
}

func (s *Session) solve(animate bool) (maze.SolverResult, error) {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return maze.SolverResult{}, ErrSessionClosed
	}
	if s.replaying {
		return maze.SolverResult{}, ErrReplayInProgress
	}
	s.touchLocked()

	res, err := maze.Solve(s.grid, s.moveKeys)
	if err != nil {
		s.emitLocked(Event{Type: EventSolveFailed, Generation: s.generation, Notice: err.Error()})
		return maze.SolverResult{}, err
	}

	s.solution = &res
	s.cursor = res.Path[0]
	s.hasCursor = true
	cursor := s.cursor
	s.emitLocked(Event{
		Type:       EventSolved,
		Generation: s.generation,
		Cursor:     &cursor,
		Moves:      res.Moves,
		Total:      res.Steps(),
	})

	if animate {
		s.replaying = true
		s.emitLocked(Event{
			Type:       EventReplayStarted,
			Generation: s.generation,
			Moves:      res.Moves,
			Total:      res.Steps(),
		})
		go s.replay(s.generation, res.Path)
	}

	return res, nil
}

// ManualMove applies one key press to the cursor. The first move of a
// session starts the cursor on the start cell. Unbound keys and blocked
// moves are silent no-ops; the returned bool reports whether the cursor
// moved. Manual moves are rejected while a replay is walking.
func (s *Session) ManualMove(key rune) (bool, error) {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return false, ErrSessionClosed
	}
	if s.replaying {
		return false, ErrReplayInProgress
	}
	s.touchLocked()

	dir, ok := s.moveKeys.DirectionFor(key)
	if !ok {
		return false, nil
	}

	if !s.hasCursor {
		if s.grid.Start == nil {
			return false, nil
		}
		s.cursor = s.grid.Start.Position
		s.hasCursor = true
	}

	next, ok := s.grid.NextCell(s.cursor, dir)
	if !ok {
		return false, nil
	}

	s.cursor = next
	cursor := s.cursor
	s.emitLocked(Event{Type: EventCursorMoved, Generation: s.generation, Cursor: &cursor})
	return true, nil
}

// Close shuts the session down. The event channel closes, a running
// replay stops at its next step, and every later operation fails with
// ErrSessionClosed. Close is idempotent.
func (s *Session) Close() {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.replaying = false
	close(s.done)
	close(s.events)
}

// rebuildLocked reparses the grid from the current text and symbols.
// Everything derived from the old grid is dropped with it.
func (s *Session) rebuildLocked() {
	s.grid = maze.BuildGrid(s.text, s.symbols)
	s.generation++
	s.hasCursor = false
	s.solution = nil
	s.replaying = false
	s.touchLocked()
	s.emitLocked(Event{Type: EventGridRebuilt, Generation: s.generation})
}

// replay walks the cursor along path, one tick at a time. gen pins the
// grid the route was solved on; the walk stops as soon as the session
// moves past that generation.
func (s *Session) replay(gen uint64, path []maze.Position) {
	ticker := time.NewTicker(s.stepDelay)
	defer ticker.Stop()

	total := len(path) - 1
	for i := 1; i < len(path); i++ {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}

		s.Lock()
		if s.closed {
			s.Unlock()
			return
		}
		if s.generation != gen {
			// The rebuild already cleared the replaying flag. The stale
			// route must not touch the new grid.
			s.emitLocked(Event{
				Type:       EventReplayAborted,
				Generation: s.generation,
				Notice:     "maze changed during replay",
			})
			s.Unlock()
			return
		}

		s.cursor = path[i]
		s.hasCursor = true
		s.touchLocked()
		cursor := s.cursor
		s.emitLocked(Event{
			Type:       EventCursorMoved,
			Generation: gen,
			Cursor:     &cursor,
			Step:       i,
			Total:      total,
		})
		s.Unlock()
	}

	s.Lock()
	if !s.closed && s.generation == gen {
		s.replaying = false
		s.emitLocked(Event{Type: EventReplayEnded, Generation: gen, Total: total})
	}
	s.Unlock()
}

// touchLocked marks the session active. Callers hold the write lock.
func (s *Session) touchLocked() {
	s.lastActive = time.Now()
}

// emitLocked publishes an event without ever blocking the caller.
// Callers hold the write lock.
func (s *Session) emitLocked(ev Event) {
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
		s.logger.Printf("event buffer full, dropping %s", ev.Type)
	}
}
