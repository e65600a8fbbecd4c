package editor

import "github.com/beka-birhanu/maze-editor-api/editor/maze"

// EventType labels an observable session change.
type EventType string

// Session event types.
const (
	// EventGridRebuilt fires after a text or symbol change replaced the
	// grid. The cursor and any solution are gone with the old grid.
	EventGridRebuilt EventType = "grid_rebuilt"
	// EventSolved fires after a successful solve. Moves spells the route
	// and Total counts its steps.
	EventSolved EventType = "solved"
	// EventSolveFailed fires when a solve finds no route or no endpoints.
	EventSolveFailed EventType = "solve_failed"
	// EventReplayStarted fires when an animated replay begins.
	EventReplayStarted EventType = "replay_started"
	// EventCursorMoved fires for every cursor change, manual or replayed.
	// During a replay Step and Total report the progress.
	EventCursorMoved EventType = "cursor_moved"
	// EventReplayEnded fires when a replay walks its full route.
	EventReplayEnded EventType = "replay_ended"
	// EventReplayAborted fires when a grid change invalidates a running
	// replay before it finishes.
	EventReplayAborted EventType = "replay_aborted"
)

// Event is one observable session change, shaped for the wire.
type Event struct {
	Type       EventType      `json:"type"`
	Generation uint64         `json:"generation"`
	Cursor     *maze.Position `json:"cursor,omitempty"`
	Step       int            `json:"step,omitempty"`
	Total      int            `json:"total,omitempty"`
	Moves      string         `json:"moves,omitempty"`
	Notice     string         `json:"notice,omitempty"`
}
