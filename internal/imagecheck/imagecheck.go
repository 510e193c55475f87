// Package imagecheck validates that a URL actually serves an image. A regex
// on the URL alone is not enough; the target has to exist and reply with an
// image content type.
package imagecheck

import (
	"net/http"
	"strings"
	"time"
)

// Checker reports whether a URL serves an image.
type Checker interface {
	IsImageURL(url string) bool
}

// HTTPChecker probes the URL over HTTP. Network errors fail closed.
type HTTPChecker struct {
	client *http.Client
}

// New creates an HTTPChecker with a bounded request timeout.
func New() *HTTPChecker {
	return &HTTPChecker{client: &http.Client{Timeout: 10 * time.Second}}
}

// IsImageURL fetches the URL headers and checks for an image/* content type.
func (c *HTTPChecker) IsImageURL(url string) bool {
	if url == "" {
		return false
	}
	if ok, decided := c.probe(http.MethodHead, url); decided {
		return ok
	}
	// Some hosts reject HEAD; retry with GET before giving up.
	ok, _ := c.probe(http.MethodGet, url)
	return ok
}

func (c *HTTPChecker) probe(method, url string) (isImage, decided bool) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return false, true
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return false, false
	}
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "image/"), true
}
