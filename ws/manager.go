package ws

import (
	"sync"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
)

// Event is the wire envelope pushed to clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// WebSocketManager tracks connected clients and fans events out to all of
// them. Clients are keyed by connection id, so one user may hold several
// open sockets.
type WebSocketManager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 64),
	}
}

// Run owns the client registry. Must run in its own goroutine.
func (m *WebSocketManager) Run() {
	log := logger.GetLogger()
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client.ID] = client
			total := len(m.clients)
			m.mu.Unlock()
			log.Debug("websocket client registered", "client_id", client.ID, "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client.ID]; ok {
				close(client.Send)
				delete(m.clients, client.ID)
			}
			total := len(m.clients)
			m.mu.Unlock()
			log.Debug("websocket client unregistered", "client_id", client.ID, "total", total)

		case event := <-m.broadcast:
			m.fanOut(event)
		}
	}
}

// Broadcast queues an event for every connected client. Satisfies the
// service layer's broadcaster contract.
func (m *WebSocketManager) Broadcast(event string, payload any) {
	m.broadcast <- Event{Event: event, Data: payload}
}

func (m *WebSocketManager) fanOut(event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, client := range m.clients {
		select {
		case client.Send <- event:
		default:
			// Slow consumer; drop the connection rather than block the hub.
			logger.GetLogger().Warn("websocket client dropped, send buffer full", "client_id", id)
			go func(c *Client) {
				m.unregister <- c
			}(client)
		}
	}
}
