package config

import (
	"strings"
	"testing"
	"time"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load must fail without a signing secret")
	}
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load must fail on a short signing secret")
	}
	if !strings.Contains(err.Error(), "secret") {
		t.Errorf("error should mention the secret, got: %v", err)
	}
}

func TestLoad_Valid(t *testing.T) {
	t.Setenv("JWT_SECRET", validSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token.Secret != validSecret {
		t.Error("token secret not picked up from JWT_SECRET")
	}
	if cfg.Token.TTL != time.Hour {
		t.Errorf("default TTL should be 1h, got %s", cfg.Token.TTL)
	}
	if cfg.Server.Port == 0 {
		t.Error("server port default not applied")
	}
	if cfg.Log.Level == "" {
		t.Error("log level default not applied")
	}
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("JWT_EXPIRATION", "30m")
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/identity")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token.TTL != 30*time.Minute {
		t.Errorf("JWT_EXPIRATION: expected 30m, got %s", cfg.Token.TTL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("PORT: expected 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.DSN != "postgres://localhost:5432/identity" {
		t.Errorf("DATABASE_URL: got %q", cfg.Database.DSN)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("LOG_LEVEL: expected debug, got %s", cfg.Log.Level)
	}
}
