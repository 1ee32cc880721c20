package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nashvel/convenience-store-sub000/config"
)

func TestNewFromConfigAppliesTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()
	defer close(release)

	c := NewFromConfig(config.Config{
		APIBaseURL:     ts.URL,
		RequestTimeout: 50 * time.Millisecond,
	})

	start := time.Now()
	err := c.Get(context.Background(), "/slow", nil)
	if err == nil {
		t.Fatalf("expected a timeout error from a stalled server")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout did not bound the request, took %v", elapsed)
	}
}

func TestNewFromConfigEnablesBreaker(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"down"}`))
	}))
	defer ts.Close()

	c := NewFromConfig(config.Config{
		APIBaseURL:     ts.URL,
		RequestTimeout: time.Second,
		BreakerEnabled: true,
	})

	// Every call fails; after enough of them the breaker opens and
	// calls stop reaching the server.
	var err error
	for i := 0; i < 6; i++ {
		err = c.Get(context.Background(), "/down", nil)
		if err == nil {
			t.Fatalf("expected every call to fail")
		}
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("expected the final failure to come from the open breaker, got %v", err)
	}
	if !strings.Contains(err.Error(), "circuit breaker") {
		t.Fatalf("expected a circuit breaker error, got %v", err)
	}
}

func TestNewFromConfigWithoutBreakerPassesErrorsThrough(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"down"}`))
	}))
	defer ts.Close()

	c := NewFromConfig(config.Config{
		APIBaseURL:     ts.URL,
		RequestTimeout: time.Second,
	})

	for i := 0; i < 6; i++ {
		err := c.Get(context.Background(), "/down", nil)
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
			t.Fatalf("expected a plain 500 on call %d, got %v", i, err)
		}
	}
}
