package ws

import (
	"github.com/google/uuid"
	"golang.org/x/net/websocket"
)

const clientQueueSize = 32

// client is one websocket subscriber bound to a single session.
type client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID uuid.UUID
	send      chan Frame
}

// writerThread pushes queued frames to the connection until the hub closes
// the queue or the connection dies.
func (c *client) writerThread() {
	for frame := range c.send {
		if err := websocket.JSON.Send(c.conn, frame); err != nil {
			return
		}
	}
}

// readerThread drains inbound traffic until the peer goes away, then
// unsubscribes. Subscribers have nothing to say; whatever arrives is
// discarded.
func (c *client) readerThread() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		var msg string
		if err := websocket.Message.Receive(c.conn, &msg); err != nil {
			return
		}
	}
}
