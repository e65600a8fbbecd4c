package ws

import (
	"log"
	"os"

	"github.com/beka-birhanu/maze-editor-api/editor"
	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

const eventQueueSize = 256

// Frame is one JSON message pushed to the subscribers of a session.
type Frame struct {
	SessionID string       `json:"session_id"`
	Event     editor.Event `json:"event"`
}

// Hub fans editor session events out to websocket subscribers. Every
// subscriber watches exactly one session and receives that session's
// events as JSON frames, in the order the session emitted them.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	events     chan Frame
	stop       chan bool
	done       chan struct{} // closed once the hub loop has shut down
	logger     *log.Logger
}

// NewHub creates a hub. Run Listen in its own goroutine before serving
// connections.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(os.Stderr, "ws: ", log.LstdFlags)
	}
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		events:     make(chan Frame, eventQueueSize),
		stop:       make(chan bool, 1),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Listen runs the hub loop until Stop is called.
func (h *Hub) Listen() {
	for {
		select {
		case <-h.stop:
			close(h.done)
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
				c.conn.Close()
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.logger.Printf("subscriber joined session %s (%d connected)", c.sessionID, len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.logger.Printf("subscriber left session %s (%d connected)", c.sessionID, len(h.clients))
			}

		case frame := <-h.events:
			for c := range h.clients {
				if c.sessionID.String() != frame.SessionID {
					continue
				}
				select {
				case c.send <- frame:
				default:
					// Slow subscriber. Drop the frame rather than stall
					// every other connection.
				}
			}
		}
	}
}

// Stop shuts the hub loop down and disconnects every subscriber.
func (h *Hub) Stop() {
	select {
	case h.stop <- true:
	default:
	}
}

// Broadcast queues a session event for delivery to its subscribers. It
// never blocks; events beyond the queue capacity are dropped.
func (h *Hub) Broadcast(sessionID uuid.UUID, ev editor.Event) {
	frame := Frame{SessionID: sessionID.String(), Event: ev}
	select {
	case h.events <- frame:
	default:
		h.logger.Printf("event queue full, dropping %s for session %s", ev.Type, sessionID)
	}
}

// Serve subscribes conn to the session's events and blocks until the peer
// disconnects or the hub stops. It is shaped to run inside a
// websocket.Handler.
func (h *Hub) Serve(conn *websocket.Conn, sessionID uuid.UUID) {
	c := &client{
		hub:       h,
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan Frame, clientQueueSize),
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writerThread()
	c.readerThread()
}
