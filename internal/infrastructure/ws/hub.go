package ws

import (
	"context"
	"errors"

	"github.com/hilthontt/personnel/internal/domain"
	"github.com/hilthontt/personnel/internal/infrastructure/logging"
)

var ErrStreamBusy = errors.New("history stream buffer is full")

// Hub fans recorded history out to the clients watching each employee. All
// subscription state is owned by the Run loop.
type Hub struct {
	register    chan *Client
	unregister  chan *Client
	broadcast   chan *WSMessage
	subscribers map[string]map[string]*Client // employeeID -> clientID -> client
	done        chan struct{}
	logger      logging.Logger
}

func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *WSMessage, 256),
		subscribers: make(map[string]map[string]*Client),
		done:        make(chan struct{}),
		logger:      logger,
	}
}

func (h *Hub) Run(ctx context.Context) error {
	defer func() {
		h.closeAll()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case cl := <-h.register:
			clients, ok := h.subscribers[cl.EmployeeID]
			if !ok {
				clients = make(map[string]*Client)
				h.subscribers[cl.EmployeeID] = clients
			}
			clients[cl.ID] = cl
			h.deliver(cl, NewStreamReady(cl.EmployeeID))

		case cl := <-h.unregister:
			h.remove(cl)

		case msg := <-h.broadcast:
			for _, cl := range h.subscribers[msg.EmployeeID] {
				h.deliver(cl, msg)
			}
		}
	}
}

// deliver drops a client whose buffer is full rather than blocking the hub.
func (h *Hub) deliver(cl *Client, msg *WSMessage) {
	select {
	case cl.Message <- msg:
	default:
		h.logger.Warn(logging.WebSocket, logging.HistoryNotify, "dropping slow history stream client", map[logging.ExtraKey]any{
			"ClientId":         cl.ID,
			logging.EmployeeID: cl.EmployeeID,
		})
		h.remove(cl)
	}
}

func (h *Hub) remove(cl *Client) {
	clients, ok := h.subscribers[cl.EmployeeID]
	if !ok {
		return
	}
	if _, ok := clients[cl.ID]; !ok {
		return
	}
	delete(clients, cl.ID)
	close(cl.Message)
	if len(clients) == 0 {
		delete(h.subscribers, cl.EmployeeID)
	}
}

func (h *Hub) closeAll() {
	for _, clients := range h.subscribers {
		for _, cl := range clients {
			h.remove(cl)
		}
	}
}

// Register subscribes the client. It reports false once the hub has stopped.
func (h *Hub) Register(cl *Client) bool {
	select {
	case h.register <- cl:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(cl *Client) {
	select {
	case h.unregister <- cl:
	case <-h.done:
	}
}

// HistoryRecorded queues the record for the employee's subscribers without
// waiting on slow clients.
func (h *Hub) HistoryRecorded(ctx context.Context, history *domain.EmployeeHistory) error {
	select {
	case h.broadcast <- NewHistoryRecorded(history):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrStreamBusy
	}
}
