package models

// APIError is the failure value every layer of the request pipeline returns.
// It carries everything the boundary needs to render the failure: an HTTP
// status, a short machine-readable code and a human message.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewAPIError creates a new APIError.
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}
