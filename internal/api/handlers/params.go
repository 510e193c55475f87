package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/maelvns/featherpost-be/internal/models"
)

func invalidRequest(message string) *models.APIError {
	return models.NewAPIError(http.StatusBadRequest, "invalidRequest", message)
}

// parseUserRef resolves a user reference that is either a numeric id or the
// literal "me", meaning the caller. Anything else is a client error raised
// before any store access.
func parseUserRef(r *http.Request, ref string) (int64, error) {
	if ref == "me" {
		user, err := caller(r)
		if err != nil {
			return 0, err
		}
		return user.ID, nil
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return 0, invalidRequest("Invalid user id " + ref)
	}
	return id, nil
}

// userIDParam extracts the {id|me} path segment.
func userIDParam(r *http.Request) (int64, error) {
	return parseUserRef(r, chi.URLParam(r, "id"))
}

// messageIDParam extracts the numeric {id} path segment.
func messageIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidRequest("Invalid message id " + raw)
	}
	return id, nil
}

func stringQuery(r *http.Request, name string) (string, bool) {
	if !r.URL.Query().Has(name) {
		return "", false
	}
	return r.URL.Query().Get(name), true
}

func intQuery(r *http.Request, name string) (int, bool, error) {
	raw, ok := stringQuery(r, name)
	if !ok || raw == "" {
		return 0, ok, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, invalidRequest("Invalid integer parameter " + name)
	}
	return v, true, nil
}

func boolQuery(r *http.Request, name string) (bool, bool, error) {
	raw, ok := stringQuery(r, name)
	if !ok {
		return false, false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, true, invalidRequest("Invalid boolean parameter " + name)
	}
	return v, true, nil
}

// decodeBody decodes the JSON request body into v. An empty body is not an
// error: it reports false so callers can treat the body as absent. Field-
// level validation is the handler's job, not the binder's.
func decodeBody(r *http.Request, v any) (bool, error) {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, invalidRequest("Invalid JSON body")
	}
	return true, nil
}
