package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/maelvns/featherpost-be/internal/auth"
	"github.com/maelvns/featherpost-be/internal/blob"
	"github.com/maelvns/featherpost-be/internal/imagecheck"
	"github.com/maelvns/featherpost-be/internal/models"
	"github.com/maelvns/featherpost-be/internal/store"
)

// UserPatch is a partial profile update. Only the fields present in the
// request body are validated and applied.
type UserPatch struct {
	Login        *string `json:"login"`
	Password     *string `json:"password"`
	Email        *string `json:"email"`
	Avatar       *string `json:"avatar"`
	CoverPicture *string `json:"coverPicture"`
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Create(u *models.User) (string, error)
	Get(id int64) (*models.User, error)
	Update(caller *models.User, patch *UserPatch) (*models.User, error)
	SetFollowed(callerID, targetID int64, followed bool) error
	UploadAvatar(ctx context.Context, caller *models.User, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, caller *models.User) error
	List(limit int, cursor string) (*store.UserPage, error)
	ListFollowed(userID int64, limit int, cursor string) (*store.UserPage, error)
	ListFollowers(userID int64, limit int, cursor string) (*store.UserPage, error)
}

// UserService provides business logic for user management.
type UserService struct {
	store  store.Store
	blobs  blob.Store
	images imagecheck.Checker
	tokens *auth.TokenService
}

// NewUserService creates a new UserService.
func NewUserService(st store.Store, blobs blob.Store, images imagecheck.Checker, tokens *auth.TokenService) *UserService {
	return &UserService{store: st, blobs: blobs, images: images, tokens: tokens}
}

func userNotFound() *models.APIError {
	return models.NewAPIError(http.StatusBadRequest, "userNotFound", "The user you requested does not exist")
}

// hashPassword hashes a password with the user id mixed into the input, so
// an id has to be allocated before the hash can be computed.
func hashPassword(id int64, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(fmt.Sprintf("%d:%s", id, password)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// gravatarURL synthesizes a deterministic avatar from an email address.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "http://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=wavatar"
}

// Create validates and persists a new user and returns a freshly minted
// token bound to the new id.
func (s *UserService) Create(u *models.User) (string, error) {
	if !validLogin(u.Login) {
		return "", models.NewAPIError(http.StatusBadRequest, "invalidLogin", "Login did not match the specs")
	}
	if !validPassword(u.Password) {
		return "", models.NewAPIError(http.StatusBadRequest, "invalidPassword", "Password did not match the specs")
	}
	if !validEmail(u.Email) {
		return "", models.NewAPIError(http.StatusBadRequest, "invalidEmail", "Invalid email")
	}
	if existing, err := s.store.GetUserByLogin(u.Login); err != nil {
		return "", err
	} else if existing != nil {
		return "", models.NewAPIError(http.StatusBadRequest, "duplicateLogin", "Duplicate login")
	}
	if existing, err := s.store.GetUserByEmail(u.Email); err != nil {
		return "", err
	} else if existing != nil {
		return "", models.NewAPIError(http.StatusBadRequest, "duplicateEmail", "Duplicate email")
	}

	// The id is allocated first because it salts the password hash.
	id, err := s.store.AllocateID()
	if err != nil {
		return "", err
	}
	u.ID = id
	u.Avatar = gravatarURL(u.Email)

	hash, err := hashPassword(u.ID, u.Password)
	if err != nil {
		return "", err
	}
	u.PasswordHash = hash
	u.Password = ""

	if err := s.store.SaveUser(u); err != nil {
		return "", err
	}

	return s.tokens.Mint(u.ID)
}

// Get loads a user by id.
func (s *UserService) Get(id int64) (*models.User, error) {
	user, err := s.store.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userNotFound()
	}
	return user, nil
}

// Update validates every field present in the patch, then merges them into
// the caller's record in a single write. A failing field aborts the whole
// update; nothing is persisted.
func (s *UserService) Update(caller *models.User, patch *UserPatch) (*models.User, error) {
	updated := *caller

	if patch.Login != nil {
		if !validLogin(*patch.Login) {
			return nil, models.NewAPIError(http.StatusBadRequest, "invalidLogin", "Login did not match the specs")
		}
		if *patch.Login != caller.Login {
			if existing, err := s.store.GetUserByLogin(*patch.Login); err != nil {
				return nil, err
			} else if existing != nil {
				return nil, models.NewAPIError(http.StatusBadRequest, "duplicateLogin", "Duplicate login")
			}
		}
		updated.Login = *patch.Login
	}

	if patch.Password != nil {
		if !validPassword(*patch.Password) {
			return nil, models.NewAPIError(http.StatusBadRequest, "invalidPassword", "Password did not match the specs")
		}
		hash, err := hashPassword(caller.ID, *patch.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	if patch.Email != nil {
		if !validEmail(*patch.Email) {
			return nil, models.NewAPIError(http.StatusBadRequest, "invalidEmail", "Invalid email")
		}
		if *patch.Email != caller.Email {
			if existing, err := s.store.GetUserByEmail(*patch.Email); err != nil {
				return nil, err
			} else if existing != nil {
				return nil, models.NewAPIError(http.StatusBadRequest, "duplicateEmail", "Duplicate email")
			}
		}
		updated.Email = *patch.Email
	}

	if patch.Avatar != nil {
		if !s.images.IsImageURL(*patch.Avatar) {
			return nil, models.NewAPIError(http.StatusBadRequest, "invalidAvatar", "Invalid avatar image")
		}
		updated.Avatar = *patch.Avatar
	}

	if patch.CoverPicture != nil {
		if !s.images.IsImageURL(*patch.CoverPicture) {
			return nil, models.NewAPIError(http.StatusBadRequest, "invalidCoverPicture", "Invalid cover picture image")
		}
		updated.CoverPicture = *patch.CoverPicture
	}

	if err := s.store.SaveUser(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetFollowed creates or destroys the follow edge from caller to target.
func (s *UserService) SetFollowed(callerID, targetID int64, followed bool) error {
	target, err := s.store.GetUser(targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return userNotFound()
	}
	return s.store.SetFollow(callerID, targetID, followed)
}

// UploadAvatar stores the image bytes under a caller-scoped key, points the
// caller's avatar at the resulting URL and returns it.
func (s *UserService) UploadAvatar(ctx context.Context, caller *models.User, contentType string, data []byte) (string, error) {
	ext, err := fileExtFromContentType(contentType)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatar-%d%s", caller.ID, ext)
	url, err := s.blobs.Put(ctx, key, contentType, data)
	if err != nil {
		return "", err
	}

	caller.Avatar = url
	if err := s.store.SaveUser(caller); err != nil {
		return "", err
	}
	return url, nil
}

// Delete removes the caller's account and cascades to their messages and
// avatar blob. The cascade is not atomic: each step is idempotent and safely
// re-runnable, and the first failure aborts the remaining steps (the janitor
// re-runs the message sweep for crashed cascades).
func (s *UserService) Delete(ctx context.Context, caller *models.User) error {
	if err := s.store.DeleteUser(caller.ID); err != nil {
		return err
	}

	if err := s.store.DeleteMessagesByOwner(caller.ID); err != nil {
		return err
	}

	if s.images.IsImageURL(caller.Avatar) {
		if err := s.blobs.Delete(ctx, blob.KeyFromURL(caller.Avatar)); err != nil {
			return err
		}
	}

	log.Info().Int64("user_id", caller.ID).Msg("Deleted user account")
	return nil
}

// List returns one page of all users.
func (s *UserService) List(limit int, cursor string) (*store.UserPage, error) {
	return s.store.ListUsers(limit, cursor)
}

// ListFollowed returns one page of the users a user follows.
func (s *UserService) ListFollowed(userID int64, limit int, cursor string) (*store.UserPage, error) {
	return s.store.ListFollowed(userID, limit, cursor)
}

// ListFollowers returns one page of a user's followers.
func (s *UserService) ListFollowers(userID int64, limit int, cursor string) (*store.UserPage, error) {
	return s.store.ListFollowers(userID, limit, cursor)
}
