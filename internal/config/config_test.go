package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/saxansaxo/backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected default addr: %q", cfg.Addr)
	}
	if cfg.DatabasePath != "saxansaxo.db" {
		t.Fatalf("unexpected default database path: %q", cfg.DatabasePath)
	}
	if cfg.MediaDir != "media" {
		t.Fatalf("unexpected default media dir: %q", cfg.MediaDir)
	}
	if cfg.AccessTokenTTL != time.Hour {
		t.Fatalf("unexpected access token ttl: %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 24*time.Hour {
		t.Fatalf("unexpected refresh token ttl: %v", cfg.RefreshTokenTTL)
	}
	if cfg.RateBurst <= 0 || cfg.RateRPS <= 0 {
		t.Fatalf("rate limits must default on: %v rps, %d burst", cfg.RateRPS, cfg.RateBurst)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SAXANSAXO_ADDR", ":9999")
	t.Setenv("SAXANSAXO_DATABASE_PATH", "other.db")
	t.Setenv("SAXANSAXO_RATE_BURST", "3")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.DatabasePath != "other.db" || cfg.RateBurst != 3 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_YAMLOverridesEnv(t *testing.T) {
	t.Setenv("SAXANSAXO_ADDR", ":9999")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "addr: \":7777\"\njwt_secret: filesecret\naccess_token_ttl: 30m\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr != ":7777" {
		t.Fatalf("yaml did not override env: %q", cfg.Addr)
	}
	if cfg.JWTSecret != "filesecret" {
		t.Fatalf("yaml secret not applied: %q", cfg.JWTSecret)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("yaml duration not applied: %v", cfg.AccessTokenTTL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
