package config

import (
	"strings"
	"testing"
	"time"
)

// baseEnv pins every variable Load reads so the host environment cannot leak in.
func baseEnv(t *testing.T) {
	t.Helper()
	for key, value := range map[string]string{
		"APP_ENV":                  "development",
		"HTTP_ADDR":                ":8080",
		"DATABASE_URL":             "",
		"ASSET_STORE_TIMEOUT":      "5s",
		"ADMIN_TOKEN":              "",
		"AUTH_JWT_SECRET":          "",
		"AUTH_JWT_AUDIENCE":        "authenticated",
		"CORS_ORIGINS":             "http://localhost:9002",
		"CORS_ALLOW_ALL":           "false",
		"CORS_ALLOW_CREDENTIALS":   "false",
		"GEMINI_API_KEY":           "",
		"SMTP_HOST":                "",
		"SMTP_PORT":                "587",
		"EMAIL_ENABLED":            "true",
		"EMAIL_FROM_ADDRESS":       "",
		"REDIS_URL":                "",
		"ASYNQ_QUEUE":              "default",
		"ASYNQ_CONCURRENCY":        "5",
		"LEASE_EXPIRY_CRON":        "@every 1h",
		"AI_RATE_LIMIT_PER_MINUTE": "10",
	} {
		t.Setenv(key, value)
	}
}

func TestLoadDefaults(t *testing.T) {
	baseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IsProduction() {
		t.Fatal("expected development environment")
	}
	if cfg.GetAssetStoreTimeout() != 5*time.Second {
		t.Fatalf("expected 5s store timeout, got %s", cfg.GetAssetStoreTimeout())
	}
	if cfg.IsDatabaseConfigured() || cfg.IsAIEnabled() || cfg.GetEmailEnabled() {
		t.Fatalf("expected optional integrations off, got %+v", cfg)
	}
	if len(cfg.GetCORSOrigins()) != 1 || cfg.GetCORSAllowAll() {
		t.Fatalf("unexpected cors settings: %v allowAll=%v", cfg.GetCORSOrigins(), cfg.GetCORSAllowAll())
	}
	if cfg.GetAsynqQueueName() != "default" || cfg.GetAsynqConcurrency() != 5 {
		t.Fatalf("unexpected asynq settings: %q %d", cfg.GetAsynqQueueName(), cfg.GetAsynqConcurrency())
	}
	if cfg.GetAIRateLimitPerMinute() != 10 {
		t.Fatalf("expected 10 requests per minute, got %d", cfg.GetAIRateLimitPerMinute())
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "zero store timeout",
			env:  map[string]string{"ASSET_STORE_TIMEOUT": "0s"},
			want: "ASSET_STORE_TIMEOUT",
		},
		{
			name: "unparsable store timeout",
			env:  map[string]string{"ASSET_STORE_TIMEOUT": "soon"},
			want: "ASSET_STORE_TIMEOUT",
		},
		{
			name: "production without database",
			env:  map[string]string{"APP_ENV": "production", "ADMIN_TOKEN": "a", "AUTH_JWT_SECRET": "s"},
			want: "DATABASE_URL",
		},
		{
			name: "production without admin token",
			env:  map[string]string{"APP_ENV": "production", "DATABASE_URL": "postgres://x", "AUTH_JWT_SECRET": "s"},
			want: "ADMIN_TOKEN",
		},
		{
			name: "production without jwt secret",
			env:  map[string]string{"APP_ENV": "Production", "DATABASE_URL": "postgres://x", "ADMIN_TOKEN": "a"},
			want: "AUTH_JWT_SECRET",
		},
		{
			name: "smtp without sender address",
			env:  map[string]string{"SMTP_HOST": "smtp.example.com"},
			want: "EMAIL_FROM_ADDRESS",
		},
		{
			name: "no cors origins",
			env:  map[string]string{"CORS_ORIGINS": " , "},
			want: "CORS_ORIGINS",
		},
		{
			name: "wildcard with credentials",
			env:  map[string]string{"CORS_ORIGINS": "*", "CORS_ALLOW_CREDENTIALS": "true"},
			want: "CORS_ALLOW_CREDENTIALS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadCORSWildcardAllowsAll(t *testing.T) {
	baseEnv(t)
	t.Setenv("CORS_ORIGINS", "https://railspace.example, *")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.GetCORSAllowAll() {
		t.Fatal("expected wildcard origin to allow all")
	}
}

func TestLoadEmailNeedsHost(t *testing.T) {
	baseEnv(t)
	t.Setenv("EMAIL_FROM_ADDRESS", "noreply@railspace.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GetEmailEnabled() {
		t.Fatal("expected email disabled without SMTP_HOST")
	}

	t.Setenv("SMTP_HOST", "smtp.example.com")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.GetEmailEnabled() || cfg.GetSMTPPort() != 587 {
		t.Fatalf("expected email enabled on port 587, got enabled=%v port=%d", cfg.GetEmailEnabled(), cfg.GetSMTPPort())
	}
}
