package models

// User represents a user account in the system.
//
// Password only carries client-supplied plaintext on the way in; outbound
// representations always replace it with the masking sentinel. The stored
// hash lives in PasswordHash and never reaches the wire.
type User struct {
	ID           int64  `json:"id"`
	Login        string `json:"login"`
	Password     string `json:"password"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar"`
	CoverPicture string `json:"coverPicture"`
}
