package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one subscriber to the history stream of an employee.
type Client struct {
	conn       *safeConn
	raw        *websocket.Conn
	Message    chan *WSMessage
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
}

func NewClient(conn *websocket.Conn, id, employeeID string) *Client {
	return &Client{
		conn:       newSafeConn(conn),
		raw:        conn,
		Message:    make(chan *WSMessage, 64), // buffered to avoid dead-locks on slow clients
		ID:         id,
		EmployeeID: employeeID,
	}
}

// ReadMessage drains the connection so control frames are processed. The
// stream is one-way; text sent by the client is ignored.
func (c *Client) ReadMessage(hub *Hub, logger logging.Logger) {
	defer func() {
		hub.Unregister(c)
		_ = c.conn.close(websocket.CloseNormalClosure, "")
	}()

	c.raw.SetReadLimit(512)
	_ = c.raw.SetReadDeadline(time.Now().Add(pongWait))
	c.raw.SetPongHandler(func(string) error {
		return c.raw.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.raw.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn(logging.WebSocket, logging.HistoryNotify, "history stream read error", map[logging.ExtraKey]any{
					"ClientId":           c.ID,
					logging.EmployeeID:   c.EmployeeID,
					logging.ErrorMessage: err.Error(),
				})
			}
			return
		}
	}
}

func (c *Client) WriteMessage(logger logging.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.close(websocket.CloseNormalClosure, "")
	}()

	for {
		select {
		case msg, ok := <-c.Message:
			if !ok {
				// the hub dropped this client or is shutting down
				_ = c.conn.close(websocket.CloseGoingAway, "stream closed")
				return
			}
			if err := c.conn.writeJSON(msg); err != nil {
				logger.Warn(logging.WebSocket, logging.HistoryNotify, "history stream write error", map[logging.ExtraKey]any{
					"ClientId":           c.ID,
					logging.ErrorMessage: err.Error(),
				})
				return
			}
		case <-ticker.C:
			if err := c.conn.ping(); err != nil {
				return
			}
		}
	}
}
