package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Blank out anything the environment may carry; getEnv treats empty as unset.
	for _, key := range []string{"PORT", "BIND_ADDRESS", "TOKEN_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.BindAddress != "localhost" {
		t.Fatalf("BindAddress = %q, want localhost", cfg.BindAddress)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
}

func TestListenAddr(t *testing.T) {
	t.Setenv("BIND_ADDRESS", "0.0.0.0")
	t.Setenv("PORT", "9090")

	cfg := Load()
	if got := cfg.ListenAddr(); got != "0.0.0.0:9090" {
		t.Fatalf("ListenAddr() = %q, want 0.0.0.0:9090", got)
	}
}

func TestDurationEnvFallsBackOnGarbage(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := Load()
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("TokenTTL = %v, want 1h fallback", cfg.TokenTTL)
	}
}
