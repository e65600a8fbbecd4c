package i

import (
	"github.com/beka-birhanu/maze-editor-api/editor"
	"github.com/google/uuid"
)

// SessionManager hosts editor sessions and hands them out by id.
type SessionManager interface {
	// Create hosts a new editor session and returns its id.
	Create(cfg editor.Config) (uuid.UUID, *editor.Session, error)

	// Get returns the session with the given id.
	// Returns an error when no such session is hosted.
	Get(id uuid.UUID) (*editor.Session, error)

	// Remove closes the session with the given id and discards it.
	Remove(id uuid.UUID) error
}
