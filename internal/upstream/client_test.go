package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func noBackoff(int) time.Duration { return 0 }

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization %q", got)
		}
		if r.URL.Path != "/spaces/doc/page" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", 1024)
	defer c.Close()
	page, err := c.FetchPage(context.Background(), "/spaces/doc/page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(page) != "<html></html>" {
		t.Errorf("unexpected page %q", page)
	}
}

func TestFetchPage_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 1024)
	c.backoff = noBackoff
	page, err := c.FetchPage(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(page) != "ok" || calls.Load() != 3 {
		t.Errorf("expected success on third call, got %q after %d calls", page, calls.Load())
	}
}

func TestFetchPage_NoWaitAfterLastAttempt(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 1024)
	var waits []int
	c.backoff = func(attempt int) time.Duration {
		waits = append(waits, attempt)
		return 0
	}
	_, err := c.FetchPage(context.Background(), "p")
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusBadGateway {
		t.Fatalf("expected a 502 status error, got %v", err)
	}
	if calls.Load() != MaxRetries {
		t.Errorf("expected %d calls, got %d", MaxRetries, calls.Load())
	}
	if len(waits) != MaxRetries-1 {
		t.Errorf("expected %d waits between attempts, got %v", MaxRetries-1, waits)
	}
}

func TestFetchPage_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 1024)
	c.backoff = noBackoff
	_, err := c.FetchPage(context.Background(), "p")
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusForbidden {
		t.Fatalf("expected 403 status error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected a single call, got %d", calls.Load())
	}
}

func TestFetchPage_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := NewClient(srv.URL, "", 1024)
	if _, err := c.FetchPage(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchPage_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 64))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 16)
	if _, err := c.FetchPage(context.Background(), "big"); err == nil {
		t.Error("expected size error")
	}
}

func TestBackoff(t *testing.T) {
	for attempt := 0; attempt < 8; attempt++ {
		d := Backoff(attempt)
		if d <= 0 || d > 45*time.Second {
			t.Errorf("attempt %d: backoff %v out of range", attempt, d)
		}
	}
}
