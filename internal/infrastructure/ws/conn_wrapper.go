package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// safeConn serializes writes to a websocket connection. gorilla allows one
// concurrent writer, and both the write pump and shutdown write here.
type safeConn struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func newSafeConn(c *websocket.Conn) *safeConn {
	return &safeConn{conn: c}
}

func (s *safeConn) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return websocket.ErrCloseSent
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(v)
}

func (s *safeConn) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return websocket.ErrCloseSent
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// close sends a close frame with code and reason, then closes the socket.
// Only the first call has any effect.
func (s *safeConn) close(code int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	msg := websocket.FormatCloseMessage(code, reason)
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	return s.conn.Close()
}
