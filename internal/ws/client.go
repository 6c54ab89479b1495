package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/avlin/browsercraft-go/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Ping period must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size
	maxMessageSize = 4096

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client represents one websocket connection
type Client struct {
	id          model.ConnectionID
	conn        *websocket.Conn
	connectedAt time.Time

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

// NewClient creates a client for an upgraded connection
func NewClient(id model.ConnectionID, conn *websocket.Conn) *Client {
	return &Client{
		id:          id,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ID returns the client's connection id
func (c *Client) ID() model.ConnectionID {
	return c.id
}

// Send queues a message for delivery to this client only. Messages are
// dropped if the client's buffer is full or the client has been closed.
// The hub may close a client while its read loop is still dispatching,
// so the closed check and the channel send hold the same lock the close
// does.
func (c *Client) Send(message []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- message:
	default:
	}
}

// closeSend closes the send channel exactly once and marks the client
// closed so late Sends become no-ops
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump drains the send channel onto the connection and keeps the
// connection alive with pings. Runs in its own goroutine per client.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
