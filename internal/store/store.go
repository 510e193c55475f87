package store

import "github.com/maelvns/featherpost-be/internal/models"

// UserPage is one page of users plus the cursor to fetch the next page.
// An empty cursor means there are no further pages.
type UserPage struct {
	Users  []models.User `json:"users"`
	Cursor string        `json:"continuationToken"`
}

// UserStore is the persistence contract for user records.
type UserStore interface {
	// AllocateID reserves a fresh user id without persisting a record.
	AllocateID() (int64, error)
	// GetUser returns (nil, nil) when no user has the given id.
	GetUser(id int64) (*models.User, error)
	GetUserByLogin(login string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers(limit int, cursor string) (*UserPage, error)
	// SaveUser inserts or overwrites the record under u.ID.
	SaveUser(u *models.User) error
	DeleteUser(id int64) error
	CountUsers() (int64, error)
}

// MessageStore is the persistence contract for messages.
type MessageStore interface {
	// GetMessage returns (nil, nil) when no message has the given id.
	GetMessage(id int64) (*models.Message, error)
	ListMessagesByOwner(ownerID int64) ([]models.Message, error)
	// InsertMessage upserts; a zero id means the store allocates one and
	// writes it back into m.
	InsertMessage(m *models.Message) error
	DeleteMessage(id int64) error
	DeleteMessagesByOwner(ownerID int64) error
	// DeleteOrphanMessages removes messages whose owner no longer exists
	// and reports how many were swept.
	DeleteOrphanMessages() (int64, error)
	CountMessages() (int64, error)
}

// FollowStore persists directional follow edges.
type FollowStore interface {
	SetFollow(followerID, followedID int64, followed bool) error
	IsFollowing(followerID, followedID int64) (bool, error)
	ListFollowed(userID int64, limit int, cursor string) (*UserPage, error)
	ListFollowers(userID int64, limit int, cursor string) (*UserPage, error)
}

// Store is the full entity store handed to the services.
type Store interface {
	UserStore
	MessageStore
	FollowStore
}
