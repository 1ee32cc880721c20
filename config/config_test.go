package config

import (
	"os"
	"testing"
	"time"
)

var configKeys = []string{
	"STOREFRONT_API_URL",
	"STOREFRONT_REQUEST_TIMEOUT",
	"STOREFRONT_POLL_INTERVAL",
	"STOREFRONT_BREAKER_ENABLED",
	"FAKEAPI_PORT",
}

// clearEnv unsets every config key, restoring it after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Fatalf("unexpected default base URL: %s", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.RequestTimeout)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Fatalf("unexpected default poll interval: %v", cfg.PollInterval)
	}
	if !cfg.BreakerEnabled {
		t.Fatalf("expected breaker enabled by default")
	}
	if cfg.DevServerPort != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.DevServerPort)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_API_URL", "http://staging:9090/api")
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "250ms")
	t.Setenv("STOREFRONT_POLL_INTERVAL", "3s")
	t.Setenv("STOREFRONT_BREAKER_ENABLED", "false")
	t.Setenv("FAKEAPI_PORT", "9999")

	cfg := Load()
	if cfg.APIBaseURL != "http://staging:9090/api" {
		t.Fatalf("unexpected base URL: %s", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 250*time.Millisecond {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
	if cfg.PollInterval != 3*time.Second {
		t.Fatalf("unexpected poll interval: %v", cfg.PollInterval)
	}
	if cfg.BreakerEnabled {
		t.Fatalf("expected breaker disabled")
	}
	if cfg.DevServerPort != "9999" {
		t.Fatalf("unexpected port: %s", cfg.DevServerPort)
	}
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "soon")
	t.Setenv("STOREFRONT_BREAKER_ENABLED", "maybe")

	cfg := Load()
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("expected default timeout for garbage input, got %v", cfg.RequestTimeout)
	}
	if !cfg.BreakerEnabled {
		t.Fatalf("expected default breaker setting for garbage input")
	}
}
