package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"INTELICOP_CONFIG", "INTELICOP_AUTH_URL", "INTELICOP_BACKEND_URL",
		"SESSION_STORE", "SESSION_FILE", "SESSION_SECRET",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"RABBITMQ_URL", "MEETING_EVENTS_EXCHANGE", "MEETING_EVENTS_QUEUE", "METRICS_TEXTFILE",
		"VISITORS_REVALIDATE_ON_RESCHEDULE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.AuthURL != "http://localhost:8080" || cfg.Backend.APIURL != "http://localhost:8081" {
		t.Errorf("unexpected backend defaults %+v", cfg.Backend)
	}
	if cfg.Session.Store != SessionStoreRedis {
		t.Errorf("expected redis store by default, got %s", cfg.Session.Store)
	}
	if cfg.Events.Exchange != "intelicop.meetings" || cfg.Events.Queue != "visitor-meetings" || cfg.Events.RabbitMQURL != "" {
		t.Errorf("unexpected events defaults %+v", cfg.Events)
	}
	if cfg.Visitors.RevalidateOnReschedule {
		t.Error("expected reschedule revalidation off by default")
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "intelicop.yaml")
	yaml := `
backend:
  auth_url: http://auth.internal:8080
  api_url: http://api.internal:8081
session:
  store: file
  file: /tmp/session.json
  secret: from-file
redis:
  db: 2
visitors:
  revalidate_on_reschedule: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Setenv("INTELICOP_BACKEND_URL", "http://api.override:9000")
	t.Setenv("REDIS_DB", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.AuthURL != "http://auth.internal:8080" {
		t.Errorf("expected auth URL from file, got %s", cfg.Backend.AuthURL)
	}
	if cfg.Backend.APIURL != "http://api.override:9000" {
		t.Errorf("expected env to override file, got %s", cfg.Backend.APIURL)
	}
	if cfg.Session.Store != SessionStoreFile || cfg.Session.Secret != "from-file" {
		t.Errorf("unexpected session config %+v", cfg.Session)
	}
	if cfg.Redis.DB != 5 {
		t.Errorf("expected REDIS_DB 5, got %d", cfg.Redis.DB)
	}
	if !cfg.Visitors.RevalidateOnReschedule {
		t.Error("expected revalidation from file")
	}
}

func TestLoad_ConfigFromEnvPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("session:\n  secret: env-path\n"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Setenv("INTELICOP_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Session.Secret != "env-path" {
		t.Errorf("expected secret from INTELICOP_CONFIG file, got %q", cfg.Session.Secret)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		file     string
		expected string
	}{
		{"missing secret", nil, "", "SESSION_SECRET is required"},
		{"unknown store", map[string]string{"SESSION_SECRET": "x", "SESSION_STORE": "memcache"}, "", "unknown session store"},
		{"bad redis db", map[string]string{"SESSION_SECRET": "x", "REDIS_DB": "two"}, "", "invalid integer for REDIS_DB"},
		{"bad bool", map[string]string{"SESSION_SECRET": "x", "VISITORS_REVALIDATE_ON_RESCHEDULE": "maybe"}, "", "invalid boolean"},
		{"bad yaml", map[string]string{"SESSION_SECRET": "x"}, "backend: [", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = filepath.Join(t.TempDir(), "bad.yaml")
				if err := os.WriteFile(path, []byte(tt.file), 0o600); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("expected error containing %q, got %v", tt.expected, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for a missing config file")
	}
}

func TestConfig_StringMasksSecrets(t *testing.T) {
	cfg := defaults()
	cfg.Session.Secret = "do-not-print"
	cfg.Redis.Password = "hunter2"
	s := cfg.String()
	if strings.Contains(s, "do-not-print") || strings.Contains(s, "hunter2") {
		t.Errorf("expected secrets masked, got %s", s)
	}
}
