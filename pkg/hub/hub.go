package hub

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/internal/log"
)

// Hub maintains the set of active clients and broadcasts messages to them.
// One hub serves one stream; the dashboard uses a hub per event feed.
type Hub struct {
	logger *slog.Logger

	// Registered clients
	clients map[*Client]bool

	// Inbound messages to broadcast
	broadcast chan Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Guards clients for count reads and slow-client eviction
	mu sync.Mutex

	stop chan struct{}
	once sync.Once
}

// New creates a new Hub
func New(name string) *Hub {
	return &Hub{
		logger:     log.With("hub", name),
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
	}
}

// Run starts the hub's main loop.
// This should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("client connected", "total", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("client disconnected", "remaining", count)

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's buffer is full, they're too slow. Evict.
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("dropped slow client")
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.stop) })
}

// registerClient hands a client to the run loop. After Stop there is no
// receiver left, so the client is refused instead of blocking the handler.
func (h *Hub) registerClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.stop:
		close(c.send)
	}
}

// unregisterClient is the stop-aware counterpart for the read pump's exit
// path; a plain channel send would block forever once the run loop is gone.
func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stop:
	}
}

// Broadcast sends a message to all connected clients
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	case <-h.stop:
	default:
		// Broadcast channel full - drop message
		h.logger.Warn("broadcast channel full, dropping message")
	}
}

// BroadcastEvent encodes an enveloped event and broadcasts it to all clients.
func (h *Hub) BroadcastEvent(event string, payload any) error {
	data, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		return err
	}
	h.Broadcast(NewJSONMessage(data))
	return nil
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
