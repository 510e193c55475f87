package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/maelvns/featherpost-be/internal/auth"
	"github.com/maelvns/featherpost-be/internal/models"
)

// ResourceFunc is a resource operation: it returns the value to serialize,
// or an error to render at the boundary.
type ResourceFunc func(r *http.Request) (any, error)

// Resource adapts a ResourceFunc into an http.HandlerFunc. This is the
// single place where results are serialized and failures become response
// bodies; handlers below it only return values and errors.
func Resource(fn ResourceFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := fn(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if result == nil {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.Error().Err(err).Msg("Failed to encode response")
		}
	}
}

// writeError renders any failure as a well-formed error body. Client-visible
// failures pass through with their own status; anything else is an opaque
// 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) {
		log.Error().Err(err).Msg("Unhandled error")
		apiErr = models.NewAPIError(http.StatusInternalServerError, "internalError", "Internal server error")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	if err := json.NewEncoder(w).Encode(apiErr); err != nil {
		log.Error().Err(err).Msg("Failed to encode error response")
	}
}

// RequireUser resolves the caller behind the request credential and makes it
// available to the handlers. Requests it rejects never reach a resource.
func RequireUser(resolver *auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Caller(r)
			if err != nil {
				writeError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// caller returns the authenticated user; the middleware guarantees it is set
// on every protected route.
func caller(r *http.Request) (*models.User, error) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		return nil, errors.New("no authenticated user in request context")
	}
	return user, nil
}
