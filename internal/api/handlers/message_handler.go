package handlers

import (
	"net/http"

	"github.com/maelvns/featherpost-be/internal/models"
	"github.com/maelvns/featherpost-be/internal/services"
	"github.com/maelvns/featherpost-be/internal/visibility"
)

// MessageHandler handles HTTP requests for message resources.
type MessageHandler struct {
	service services.MessageServiceProvider
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service services.MessageServiceProvider) *MessageHandler {
	return &MessageHandler{service: service}
}

// Get handles GET /messages/{id}. Messages are public to any authenticated
// caller.
func (h *MessageHandler) Get(r *http.Request) (any, error) {
	viewer, err := caller(r)
	if err != nil {
		return nil, err
	}
	id, err := messageIDParam(r)
	if err != nil {
		return nil, err
	}

	message, err := h.service.Get(id)
	if err != nil {
		return nil, err
	}
	return visibility.MaskMessage(message, viewer.ID), nil
}

// Create handles POST /messages.
func (h *MessageHandler) Create(r *http.Request) (any, error) {
	authUser, err := caller(r)
	if err != nil {
		return nil, err
	}

	var message models.Message
	present, err := decodeBody(r, &message)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, invalidRequest("Invalid JSON body")
	}

	created, err := h.service.Create(authUser, &message)
	if err != nil {
		return nil, err
	}
	return visibility.MaskMessage(created, authUser.ID), nil
}

// Update handles POST /messages/{id}.
func (h *MessageHandler) Update(r *http.Request) (any, error) {
	authUser, err := caller(r)
	if err != nil {
		return nil, err
	}
	id, err := messageIDParam(r)
	if err != nil {
		return nil, err
	}

	var message models.Message
	present, err := decodeBody(r, &message)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, invalidRequest("Invalid JSON body")
	}

	updated, err := h.service.Update(authUser, id, &message)
	if err != nil {
		return nil, err
	}
	return visibility.MaskMessage(updated, authUser.ID), nil
}

// Delete handles DELETE /messages/{id}.
func (h *MessageHandler) Delete(r *http.Request) (any, error) {
	authUser, err := caller(r)
	if err != nil {
		return nil, err
	}
	id, err := messageIDParam(r)
	if err != nil {
		return nil, err
	}
	return nil, h.service.Delete(authUser, id)
}

// List handles GET /messages: the caller's own messages, or another user's
// via "?user={id}" subject to the follow-based visibility rule.
func (h *MessageHandler) List(r *http.Request) (any, error) {
	authUser, err := caller(r)
	if err != nil {
		return nil, err
	}

	targetID := authUser.ID
	if ref, ok := stringQuery(r, "user"); ok {
		targetID, err = parseUserRef(r, ref)
		if err != nil {
			return nil, err
		}
	}

	messages, err := h.service.ListFor(authUser, targetID)
	if err != nil {
		return nil, err
	}

	masked := make([]models.Message, 0, len(messages))
	for i := range messages {
		masked = append(masked, *visibility.MaskMessage(&messages[i], authUser.ID))
	}
	return masked, nil
}
