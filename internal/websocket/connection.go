package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Transport defaults applied when configuration passes zero values
const (
	defaultWriteTimeout = 5 * time.Second
	defaultWriteBuffer  = 100
)

// Connection wraps one live channel to a client.
// ARCHITECTURAL DISCOVERY: WebSocket writes must be serialized to prevent
// race conditions - a single writer goroutine gives each session an ordered
// message stream without callers coordinating
type Connection struct {
	conn         *websocket.Conn
	writeCh      chan []byte // FUNCTIONAL DISCOVERY: buffer absorbs detection bursts without blocking senders
	writeTimeout time.Duration
	sessionID    string // Set once before registration
	ctx          context.Context
	cancel       context.CancelFunc
	closeOnce    sync.Once
	mu           sync.RWMutex // Protect session binding
}

// NewConnection creates a new live-channel wrapper and starts its writer.
// Non-positive transport settings fall back to the package defaults.
func NewConnection(conn *websocket.Conn, writeTimeout time.Duration, bufferSize int) *Connection {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	if bufferSize <= 0 {
		bufferSize = defaultWriteBuffer
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Connection{
		conn:         conn,
		writeCh:      make(chan []byte, bufferSize),
		writeTimeout: writeTimeout,
		ctx:          ctx,
		cancel:       cancel,
	}

	go c.writeLoop()

	return c
}

// ARCHITECTURAL DISCOVERY: Single writer goroutine pattern eliminates races
func (c *Connection) writeLoop() {
	defer func() {
		for len(c.writeCh) > 0 {
			<-c.writeCh // Drain remaining messages
		}
		close(c.writeCh)
	}()

	for {
		select {
		case data, ok := <-c.writeCh:
			if !ok {
				return
			}

			// FUNCTIONAL DISCOVERY: Write deadline keeps one stalled client
			// from pinning the writer goroutine indefinitely
			if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// WriteJSON queues a JSON payload on the session's ordered stream
func (c *Connection) WriteJSON(v interface{}) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	data, err := json.Marshal(v)
	if err != nil {
		return ErrInvalidJSON
	}

	select {
	case c.writeCh <- data:
		return nil
	case <-time.After(c.writeTimeout):
		return ErrWriteTimeout
	case <-c.ctx.Done():
		return ErrConnectionClosed
	}
}

// Close tears down the channel exactly once
// ARCHITECTURAL DISCOVERY: Clean shutdown requires careful goroutine coordination
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()

		if c.conn != nil {
			err = c.conn.Close()
		}

		// writeCh is closed by the writeLoop goroutine
	})
	return err
}

// SetSession binds the connection to its session identifier
func (c *Connection) SetSession(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = sessionID
}

// GetSessionID returns the bound session identifier, empty before binding
func (c *Connection) GetSessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}
