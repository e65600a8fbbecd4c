package i

import (
	"github.com/beka-birhanu/maze-editor-api/editor"
	"github.com/google/uuid"
)

// Broadcaster pushes session events to whoever is watching the session.
type Broadcaster interface {
	Broadcast(sessionID uuid.UUID, event editor.Event)
}
