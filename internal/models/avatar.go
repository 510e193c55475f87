package models

// Avatar is the response shape for an avatar upload.
type Avatar struct {
	ServingURL string `json:"servingUrl"`
}
