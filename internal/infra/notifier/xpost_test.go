package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestXPoster_Post(t *testing.T) {
	t.Run("should POST to tweets endpoint with bearer auth", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotPayload xPostPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("expected Content-Type=application/json, got %q", r.Header.Get("Content-Type"))
			}
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &gotPayload); err != nil {
				t.Errorf("failed to parse request body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		poster := NewXPoster(XConfig{
			APIBaseURL:  server.URL + "/2/",
			BearerToken: "test-token",
			Timeout:     10 * time.Second,
		})

		err := poster.Post(context.Background(), 42, "New Article Published: Budget vote tonight")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotPath != "/2/tweets" {
			t.Errorf("expected path=/2/tweets, got %q", gotPath)
		}
		if gotAuth != "Bearer test-token" {
			t.Errorf("expected bearer auth header, got %q", gotAuth)
		}
		if gotPayload.Text != "New Article Published: Budget vote tonight" {
			t.Errorf("unexpected payload text %q", gotPayload.Text)
		}
	})

	t.Run("should skip silently when bearer token is missing", func(t *testing.T) {
		requestCount := int32(0)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		poster := NewXPoster(XConfig{
			APIBaseURL:  server.URL + "/2/",
			BearerToken: "",
			Timeout:     10 * time.Second,
		})

		err := poster.Post(context.Background(), 42, "text")
		if err != nil {
			t.Fatalf("expected nil for missing token, got %v", err)
		}
		if atomic.LoadInt32(&requestCount) != 0 {
			t.Errorf("expected no HTTP requests, got %d", requestCount)
		}
	})

	t.Run("should return ClientError for 4xx with response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"detail": "Forbidden"}`))
		}))
		defer server.Close()

		poster := NewXPoster(XConfig{
			APIBaseURL:  server.URL + "/2/",
			BearerToken: "test-token",
			Timeout:     10 * time.Second,
		})

		err := poster.Post(context.Background(), 42, "text")
		if err == nil {
			t.Fatal("expected client error, got nil")
		}
		clientErr, ok := err.(*ClientError)
		if !ok {
			t.Fatalf("expected ClientError, got %T", err)
		}
		if clientErr.StatusCode != http.StatusForbidden {
			t.Errorf("expected status code=403, got %d", clientErr.StatusCode)
		}
		if !strings.Contains(clientErr.Message, "Forbidden") {
			t.Errorf("expected message to carry response body, got %q", clientErr.Message)
		}
	})

	t.Run("should return ServerError for 5xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		poster := NewXPoster(XConfig{
			APIBaseURL:  server.URL + "/2/",
			BearerToken: "test-token",
			Timeout:     10 * time.Second,
		})

		err := poster.Post(context.Background(), 42, "text")
		if err == nil {
			t.Fatal("expected server error, got nil")
		}
		if _, ok := err.(*ServerError); !ok {
			t.Fatalf("expected ServerError, got %T", err)
		}
	})

	t.Run("should truncate text over the post limit", func(t *testing.T) {
		var gotPayload xPostPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &gotPayload)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		poster := NewXPoster(XConfig{
			APIBaseURL:  server.URL + "/2/",
			BearerToken: "test-token",
			Timeout:     10 * time.Second,
		})

		long := strings.Repeat("x", 400)
		if err := poster.Post(context.Background(), 42, long); err != nil {
			t.Fatalf("Post err=%v", err)
		}
		if len(gotPayload.Text) != maxPostLength {
			t.Errorf("expected text length=%d, got %d", maxPostLength, len(gotPayload.Text))
		}
		if !strings.HasSuffix(gotPayload.Text, "...") {
			t.Errorf("expected truncated text to end with '...', got %q", gotPayload.Text[len(gotPayload.Text)-5:])
		}
	})

	t.Run("should handle network timeout as error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		poster := NewXPoster(XConfig{
			APIBaseURL:  server.URL + "/2/",
			BearerToken: "test-token",
			Timeout:     50 * time.Millisecond,
		})

		if err := poster.Post(context.Background(), 42, "text"); err == nil {
			t.Fatal("expected timeout error, got nil")
		}
	})
}

func TestTruncate(t *testing.T) {
	t.Run("should not truncate short text", func(t *testing.T) {
		if got := truncate("short", 100, "..."); got != "short" {
			t.Errorf("expected %q, got %q", "short", got)
		}
	})

	t.Run("should append suffix past the limit", func(t *testing.T) {
		got := truncate(strings.Repeat("a", 100), 50, "...")
		if len(got) != 53 {
			t.Errorf("expected length=53, got %d", len(got))
		}
		if !strings.HasSuffix(got, "...") {
			t.Errorf("expected result to end with '...', got %q", got)
		}
	})
}
