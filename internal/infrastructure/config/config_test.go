package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadClient_Defaults(t *testing.T) {
	cfg, err := LoadClientWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" || cfg.CredentialBackend != BackendFile || cfg.CredentialKey != "token" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", cfg.Redis.Addr)
	}
}

func TestLoadClient_Overrides(t *testing.T) {
	cfg, err := LoadClientWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"MARKETPLACE_API_URL":            "https://api.example.com",
		"MARKETPLACE_CREDENTIAL_BACKEND": "redis",
		"MARKETPLACE_HTTP_TIMEOUT":       "3s",
		"REDIS_DB":                       "2",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" || cfg.CredentialBackend != BackendRedis || cfg.HTTPTimeout != 3*time.Second || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadClient_UnknownBackend(t *testing.T) {
	_, err := LoadClientWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"MARKETPLACE_CREDENTIAL_BACKEND": "sqlite",
	}))
	if err == nil || !strings.Contains(err.Error(), "sqlite") {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
}

func TestResolveCredentialPath(t *testing.T) {
	cfg := &ClientConfig{CredentialPath: "/tmp/cred"}
	if p, err := cfg.ResolveCredentialPath(); err != nil || p != "/tmp/cred" {
		t.Fatalf("explicit path: %q %v", p, err)
	}

	t.Setenv("HOME", "/home/ana")
	cfg = &ClientConfig{CredentialKey: "token"}
	p, err := cfg.ResolveCredentialPath()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p != filepath.Join("/home/ana", ".marketplace", "token") {
		t.Fatalf("unexpected default path %q", p)
	}
}

func TestLoadAPI(t *testing.T) {
	cfg, err := LoadAPIWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":      "9090",
		"TOKEN_TTL": "1h",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.TokenTTL != time.Hour || cfg.Mongo.URI != "" || cfg.Mongo.Database != "marketplace" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	_, err = LoadAPIWith(context.Background(), envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if err == nil {
		t.Fatalf("expected production without JWT_SECRET to fail")
	}
}
