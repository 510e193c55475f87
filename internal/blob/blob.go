// Package blob abstracts the object storage holding uploaded images.
package blob

import (
	"context"
	"strings"
)

// Store is an opaque put/delete-by-key blob store returning a public URL.
type Store interface {
	// Put stores data under key with the given content type and returns the
	// public serving URL.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// KeyFromURL extracts the storage key from a serving URL (its last path
// segment).
func KeyFromURL(url string) string {
	return url[strings.LastIndex(url, "/")+1:]
}
