package websocket

import (
	"encoding/json"
	"sync"

	"github.com/postigiusti/bacheca/internal/app/models"
	"github.com/postigiusti/bacheca/internal/pkg/logger"
)

// Event is the envelope pushed to connected clients
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event types
const (
	EventNewMessage = "message.new"
)

// Hub tracks connected clients keyed by user ID and fans events out to
// them. A user may hold several connections (multiple tabs or devices).
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes client registration until the program exits
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]struct{})
			}
			h.clients[client.userID][client] = struct{}{}
			h.mu.Unlock()
			logger.Debug().Int64("userID", client.userID).Msg("WebSocket client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mu.Unlock()
			logger.Debug().Int64("userID", client.userID).Msg("WebSocket client disconnected")
		}
	}
}

// NotifyNewMessage pushes a direct message event to the recipient's
// connections. Implements services.MessageNotifier.
func (h *Hub) NotifyNewMessage(recipientID int64, message *models.Message) {
	h.sendToUser(recipientID, Event{Type: EventNewMessage, Payload: message})
}

func (h *Hub) sendToUser(userID int64, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal websocket event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer, drop the event rather than block the hub.
		}
	}
}
