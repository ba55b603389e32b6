// Package fetcher performs the HTTP side of a crawl: one blocking GET per
// page, returning the raw body bytes.
package fetcher

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// ErrUnexpectedStatus marks a response outside the 2xx range.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// ErrNotText marks a response whose Content-Type is not a text page.
var ErrNotText = errors.New("response is not a text page")

type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Response carries the raw bytes of a successful fetch plus the HTTP
// metadata the caller records.
type Response struct {
	Body        []byte
	StatusCode  int
	ContentType string
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Get fetches a URL and returns the raw response body. Non-2xx responses
// and non-text content types are errors; the returned Response still
// carries the status code so callers can record it.
func (f *Fetcher) Get(url string) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	out := &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if !IsTextContentType(out.ContentType) {
		return out, fmt.Errorf("%w: %s", ErrNotText, out.ContentType)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("failed to read response body: %w", err)
	}
	out.Body = body

	return out, nil
}

// IsTextContentType reports whether a Content-Type header names a page we
// persist: text/* or application/xhtml+xml. An absent header is accepted,
// since some hosts omit it for plain HTML.
func IsTextContentType(ctype string) bool {
	if ctype == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(ctype)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(ctype, ";")[0]))
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/xhtml+xml"
}
