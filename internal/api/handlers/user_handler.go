package handlers

import (
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/maelvns/featherpost-be/internal/models"
	"github.com/maelvns/featherpost-be/internal/services"
	"github.com/maelvns/featherpost-be/internal/store"
	"github.com/maelvns/featherpost-be/internal/visibility"
)

// UserHandler handles HTTP requests for user resources.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users: register a new account and return a token
// bound to it. This is the only resource route without authentication.
func (h *UserHandler) Create(r *http.Request) (any, error) {
	var user models.User
	present, err := decodeBody(r, &user)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, invalidRequest("Invalid JSON body")
	}

	token, err := h.service.Create(&user)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", user.ID).Str("login", user.Login).Msg("Registered user")
	return token, nil
}

// Get handles GET /users/{id|me}.
func (h *UserHandler) Get(r *http.Request) (any, error) {
	viewer, err := caller(r)
	if err != nil {
		return nil, err
	}
	id, err := userIDParam(r)
	if err != nil {
		return nil, err
	}

	user, err := h.service.Get(id)
	if err != nil {
		return nil, err
	}
	return visibility.MaskUser(user, viewer.ID), nil
}

// Update handles POST /users/{id|me}: partial profile update, plus the
// follow/unfollow side effect when the "followed" flag is present. A body
// targeting another user is rejected; a follow flag targeting another user
// is the point.
func (h *UserHandler) Update(r *http.Request) (any, error) {
	authUser, err := caller(r)
	if err != nil {
		return nil, err
	}
	id, err := userIDParam(r)
	if err != nil {
		return nil, err
	}

	var patch services.UserPatch
	present, err := decodeBody(r, &patch)
	if err != nil {
		return nil, err
	}

	result := authUser
	if present {
		if !visibility.CanEditProfile(authUser.ID, id) {
			return nil, models.NewAPIError(http.StatusBadRequest, "unauthorizedOperation",
				"You cannot edit another user than yourself")
		}
		result, err = h.service.Update(authUser, &patch)
		if err != nil {
			return nil, err
		}
	}

	if followed, ok, err := boolQuery(r, "followed"); err != nil {
		return nil, err
	} else if ok {
		if err := h.service.SetFollowed(authUser.ID, id, followed); err != nil {
			return nil, err
		}
	}

	return visibility.MaskUser(result, authUser.ID), nil
}

// UploadAvatar handles PUT /users/avatar: store the request body as the
// caller's avatar image.
func (h *UserHandler) UploadAvatar(r *http.Request) (any, error) {
	authUser, err := caller(r)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, invalidRequest("Could not read request body")
	}

	url, err := h.service.UploadAvatar(r.Context(), authUser, r.Header.Get("Content-Type"), data)
	if err != nil {
		return nil, err
	}
	return models.Avatar{ServingURL: url}, nil
}

// Delete handles DELETE /users: remove the caller's own account and cascade
// to their messages and avatar blob.
func (h *UserHandler) Delete(r *http.Request) (any, error) {
	authUser, err := caller(r)
	if err != nil {
		return nil, err
	}
	return nil, h.service.Delete(r.Context(), authUser)
}

// List handles GET /users: all users by default, or the followed/follower
// sets when the corresponding flag carries a user reference. Pagination is
// driven by "limit" and "continuationToken".
func (h *UserHandler) List(r *http.Request) (any, error) {
	viewer, err := caller(r)
	if err != nil {
		return nil, err
	}
	limit, _, err := intQuery(r, "limit")
	if err != nil {
		return nil, err
	}
	cursor, _ := stringQuery(r, "continuationToken")

	var page *store.UserPage
	if ref, ok := stringQuery(r, "followedBy"); ok {
		id, err := parseUserRef(r, ref)
		if err != nil {
			return nil, err
		}
		page, err = h.service.ListFollowed(id, limit, cursor)
		if err != nil {
			return nil, err
		}
	} else if ref, ok := stringQuery(r, "followerOf"); ok {
		id, err := parseUserRef(r, ref)
		if err != nil {
			return nil, err
		}
		page, err = h.service.ListFollowers(id, limit, cursor)
		if err != nil {
			return nil, err
		}
	} else {
		page, err = h.service.List(limit, cursor)
		if err != nil {
			return nil, err
		}
	}

	for i := range page.Users {
		page.Users[i] = *visibility.MaskUser(&page.Users[i], viewer.ID)
	}
	return page, nil
}
