package fetcher

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(5*time.Second, "pagedump-test/1.0")
}

func TestGet_Success(t *testing.T) {
	body := "<html><body>page one</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "pagedump-test/1.0" {
			t.Errorf("User-Agent = %q, want %q", got, "pagedump-test/1.0")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	resp, err := newTestFetcher().Get(srv.URL)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != body {
		t.Errorf("Body = %q, want %q", resp.Body, body)
	}
}

func TestGet_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	resp, err := newTestFetcher().Get(srv.URL)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("Get() error = %v, want ErrUnexpectedStatus", err)
	}
	if resp == nil || resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("response should carry status 500, got %+v", resp)
	}
}

func TestGet_NonTextContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 0x50})
	}))
	defer srv.Close()

	_, err := newTestFetcher().Get(srv.URL)
	if !errors.Is(err, ErrNotText) {
		t.Fatalf("Get() error = %v, want ErrNotText", err)
	}
}

func TestGet_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestFetcher().Get(srv.URL)
	if err == nil {
		t.Fatal("Get() on closed server should fail")
	}
	if errors.Is(err, ErrUnexpectedStatus) || errors.Is(err, ErrNotText) {
		t.Errorf("network failure misclassified: %v", err)
	}
}

func TestIsTextContentType(t *testing.T) {
	tests := []struct {
		ctype string
		want  bool
	}{
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"text/plain", true},
		{"application/xhtml+xml", true},
		{"", true},
		{"application/json", false},
		{"image/png", false},
		{"application/octet-stream", false},
	}

	for _, tt := range tests {
		if got := IsTextContentType(tt.ctype); got != tt.want {
			t.Errorf("IsTextContentType(%q) = %v, want %v", tt.ctype, got, tt.want)
		}
	}
}
