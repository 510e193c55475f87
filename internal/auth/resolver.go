package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/maelvns/featherpost-be/internal/models"
	"github.com/maelvns/featherpost-be/internal/store"
)

type contextKey string

const userKey = contextKey("authUser")

// WithUser returns a context carrying the resolved caller.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the caller resolved by the auth middleware, or nil.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// Resolver turns a request credential into a caller identity. Resolution is
// idempotent and side-effect-free; callers may invoke it more than once per
// request.
type Resolver struct {
	tokens *TokenService
	users  store.UserStore
}

// NewResolver creates a Resolver backed by the given token service and store.
func NewResolver(tokens *TokenService, users store.UserStore) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

func invalidAuthorization(message string) *models.APIError {
	return models.NewAPIError(http.StatusUnauthorized, "invalidAuthorization", message)
}

// Caller resolves the user behind the request's Authorization header.
func (a *Resolver) Caller(r *http.Request) (*models.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, invalidAuthorization("Missing authorization header")
	}

	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenStr == "" {
		return nil, invalidAuthorization("Invalid authorization header format")
	}

	userID, err := a.tokens.Verify(tokenStr)
	if err != nil {
		return nil, invalidAuthorization("Invalid token")
	}

	user, err := a.users.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, invalidAuthorization("Invalid token")
	}
	return user, nil
}
