package services

import (
	"net/http"
	"net/mail"
	"regexp"

	"github.com/maelvns/featherpost-be/internal/models"
)

// Never rely on the client application, always re-validate.
var (
	loginPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]{4,12}$`)
	passwordPattern = regexp.MustCompile(`^\w{4,12}$`)
)

func validLogin(login string) bool {
	return loginPattern.MatchString(login)
}

func validPassword(password string) bool {
	return passwordPattern.MatchString(password)
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// fileExtFromContentType resolves the file extension to store an upload
// under. Unrecognized content types are a client error.
func fileExtFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	}
	return "", models.NewAPIError(http.StatusUnsupportedMediaType, "mimetypeError", "Unrecognized content type "+contentType)
}
