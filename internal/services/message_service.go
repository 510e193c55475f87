package services

import (
	"net/http"
	"time"

	"github.com/maelvns/featherpost-be/internal/models"
	"github.com/maelvns/featherpost-be/internal/store"
	"github.com/maelvns/featherpost-be/internal/visibility"
)

// Feed receives every created message for live delivery. A nil feed is
// valid and drops the events.
type Feed interface {
	MessageCreated(m *models.Message)
}

// MessageServiceProvider defines the interface for message services.
type MessageServiceProvider interface {
	Get(id int64) (*models.Message, error)
	Create(caller *models.User, m *models.Message) (*models.Message, error)
	Update(caller *models.User, id int64, m *models.Message) (*models.Message, error)
	Delete(caller *models.User, id int64) error
	ListFor(caller *models.User, targetID int64) ([]models.Message, error)
}

// MessageService provides business logic for message management.
type MessageService struct {
	store store.Store
	feed  Feed
}

// NewMessageService creates a new MessageService.
func NewMessageService(st store.Store, feed Feed) *MessageService {
	return &MessageService{store: st, feed: feed}
}

func messageNotFound() *models.APIError {
	return models.NewAPIError(http.StatusNotFound, "messageNotFound", "The message you requested does not exist")
}

func unauthorizedOperation(message string) *models.APIError {
	return models.NewAPIError(http.StatusBadRequest, "unauthorizedOperation", message)
}

// Get loads a message by id. Messages are public: no ownership check.
func (s *MessageService) Get(id int64) (*models.Message, error) {
	message, err := s.store.GetMessage(id)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, messageNotFound()
	}
	return message, nil
}

// Create persists a new message. Owner, date and id are server-assigned no
// matter what the client sent.
func (s *MessageService) Create(caller *models.User, m *models.Message) (*models.Message, error) {
	m.ID = 0
	m.User = caller
	m.Date = time.Now().UTC().Truncate(time.Second)

	if err := s.store.InsertMessage(m); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.MessageCreated(m)
	}
	return m, nil
}

// Update replaces the stored record wholesale (upsert semantics), keeping
// the original creation date and owner when the record already exists.
func (s *MessageService) Update(caller *models.User, id int64, m *models.Message) (*models.Message, error) {
	if !visibility.CanModifyMessage(m, caller.ID) {
		return nil, unauthorizedOperation("You cannot edit a message which is not yours")
	}

	existing, err := s.store.GetMessage(id)
	if err != nil {
		return nil, err
	}

	m.ID = id
	m.User = caller
	if existing != nil {
		if !visibility.CanModifyMessage(existing, caller.ID) {
			return nil, unauthorizedOperation("You cannot edit a message which is not yours")
		}
		m.Date = existing.Date
	} else if m.Date.IsZero() {
		m.Date = time.Now().UTC().Truncate(time.Second)
	}

	if err := s.store.InsertMessage(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a message after checking existence, then ownership.
func (s *MessageService) Delete(caller *models.User, id int64) error {
	message, err := s.store.GetMessage(id)
	if err != nil {
		return err
	}
	if message == nil {
		return messageNotFound()
	}
	if !visibility.CanModifyMessage(message, caller.ID) {
		return unauthorizedOperation("You cannot delete a message which is not yours")
	}
	return s.store.DeleteMessage(id)
}

// ListFor returns the target user's messages after the visibility checks:
// the target must exist, and a caller listing someone else's messages must
// be following them.
func (s *MessageService) ListFor(caller *models.User, targetID int64) ([]models.Message, error) {
	target, err := s.store.GetUser(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, userNotFound()
	}

	allowed, err := visibility.CanViewMessagesOf(s.store, caller.ID, targetID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, models.NewAPIError(http.StatusUnauthorized, "unauthorizedMessages",
			"You can see only your messages or the messages of followed users")
	}

	return s.store.ListMessagesByOwner(targetID)
}
