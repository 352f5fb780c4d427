package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client represents a connected WebSocket subscriber. A user may hold
// several clients at once (one per browser tab).
type Client struct {
	Hub    *Hub
	UserID uint
	Admin  bool
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub fans table-change events out to every connected client so the
// bookings UI can refetch without polling.
type Hub struct {
	// Registered clients, keyed by the client itself
	Clients map[*Client]bool

	// Broadcast channel for change events
	Broadcast chan *ChangeEvent

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// ChangeEvent announces that rows in a table changed.
type ChangeEvent struct {
	Type      string    `json:"type"`
	Table     string    `json:"table"`
	Event     string    `json:"event"` // INSERT, UPDATE or DELETE
	RecordID  uint      `json:"record_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan *ChangeEvent, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Client registered: user=%d admin=%v", client.UserID, client.Admin)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Client unregistered: user=%d", client.UserID)

		case event := <-h.Broadcast:
			h.broadcastEvent(event)
		}
	}
}

// NotifyChange queues a change event for broadcast. Safe to call from
// request handlers; drops the event rather than blocking.
func (h *Hub) NotifyChange(table, event string, recordID uint) {
	msg := &ChangeEvent{
		Type:      "change",
		Table:     table,
		Event:     event,
		RecordID:  recordID,
		Timestamp: time.Now(),
	}

	select {
	case h.Broadcast <- msg:
	default:
		log.Printf("⚠️ Change broadcast dropped: %s %s", table, event)
	}
}

// broadcastEvent sends an event to all connected clients
func (h *Hub) broadcastEvent(event *ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Error marshaling change event: %v", err)
		return
	}

	for client := range h.Clients {
		select {
		case client.Send <- data:
		default:
			close(client.Send)
			delete(h.Clients, client)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}
