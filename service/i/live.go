package i

import (
	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

// LiveFeed feeds a hosted session's events to websocket subscribers.
type LiveFeed interface {
	// Serve subscribes conn to the session's events and blocks until the
	// subscriber disconnects.
	Serve(conn *websocket.Conn, sessionID uuid.UUID)
}
