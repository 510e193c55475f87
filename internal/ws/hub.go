package ws

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/maelvns/featherpost-be/internal/models"
	"github.com/maelvns/featherpost-be/internal/visibility"
)

// Hub maintains the set of connected feed clients and broadcasts message
// events to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Outbound events for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the Hub's event processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Feed client disconnected")
			}
		case event := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- event:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// MessageCreated broadcasts a freshly created message to every connected
// client. The embedded owner is masked for an anonymous viewer.
func (h *Hub) MessageCreated(m *models.Message) {
	event := NewMessageCreatedEvent(visibility.MaskMessage(m, 0))
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode feed event")
		return
	}
	h.Broadcast <- payload
}
