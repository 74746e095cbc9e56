package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetJSON_DecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/scalers/dog" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("User-Agent"); got != "pet-matcher-test" {
			t.Errorf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"species":"dog","mean":[1,2]}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", Options{UserAgent: "pet-matcher-test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out struct {
		Species string    `json:"species"`
		Mean    []float64 `json:"mean"`
	}
	if err := c.GetJSON(context.Background(), "v1/scalers/dog", &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if out.Species != "dog" || len(out.Mean) != 2 {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestGetJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, Options{})
	err := c.GetJSON(context.Background(), "/x", nil)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusNotFound || httpErr.Body != "nope" {
		t.Fatalf("unexpected error: %+v", httpErr)
	}
}

func TestGetJSON_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 64)))
	}))
	defer srv.Close()

	c, _ := New(srv.URL, Options{MaxBody: 16})
	if err := c.GetJSON(context.Background(), "/x", nil); !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}
}

func TestNew_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "ftp://host/x"} {
		if _, err := New(raw, Options{}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
