package ws

import (
	"github.com/google/uuid"

	"github.com/maelvns/featherpost-be/internal/models"
)

// Event is the envelope for every frame pushed to feed clients.
type Event struct {
	ID      string `json:"eventId"`
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}

// NewMessageCreatedEvent wraps a created message in a feed event.
func NewMessageCreatedEvent(m *models.Message) Event {
	return Event{
		ID:      uuid.New().String(),
		Action:  "message_created",
		Payload: m,
	}
}
