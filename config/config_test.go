package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("FRONTEND_URL", "")

	cfg := Load()
	if cfg.Env != "development" {
		t.Fatalf("env = %q, want development", cfg.Env)
	}
	if cfg.Port != "3000" {
		t.Fatalf("port = %q, want 3000", cfg.Port)
	}
	if cfg.JWTExpiresIn != 24*time.Hour {
		t.Fatalf("jwt ttl = %v, want 24h", cfg.JWTExpiresIn)
	}
	if got := cfg.CORSOrigins(); !reflect.DeepEqual(got, []string{"http://localhost:5173"}) {
		t.Fatalf("cors origins = %v", got)
	}
}

func TestLoadFallsBackToNodeEnv(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "production")
	if cfg := Load(); !cfg.IsProduction() {
		t.Fatalf("env = %q, want production", cfg.Env)
	}
}

func TestInvalidDurationUsesDefault(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "one day")
	if cfg := Load(); cfg.JWTExpiresIn != 24*time.Hour {
		t.Fatalf("jwt ttl = %v, want default", cfg.JWTExpiresIn)
	}
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	cfg := &Config{Env: "production", JWTExpiresIn: time.Hour, BcryptCost: 10}
	if _, err := cfg.Validate(); err == nil {
		t.Fatal("expected missing secret to fail in production")
	}
}

func TestValidateDevelopmentSecretFallback(t *testing.T) {
	cfg := &Config{Env: "development", JWTExpiresIn: time.Hour, BcryptCost: 10}
	warnings, err := cfg.Validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one", warnings)
	}
	if cfg.JWTSecret == "" {
		t.Fatal("expected development secret to be set")
	}
}

func TestValidateRanges(t *testing.T) {
	cases := []Config{
		{Env: "development", JWTSecret: "s", JWTExpiresIn: 0, BcryptCost: 10},
		{Env: "development", JWTSecret: "s", JWTExpiresIn: time.Hour, BcryptCost: 2},
		{Env: "development", JWTSecret: "s", JWTExpiresIn: time.Hour, BcryptCost: 40},
	}
	for i := range cases {
		if _, err := cases[i].Validate(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestPostgresDSNPrefersDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://x@y/z", DBUser: "u"}
	if got := cfg.PostgresDSN(); got != "postgres://x@y/z" {
		t.Fatalf("dsn = %q", got)
	}
	cfg.DatabaseURL = ""
	cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode = "p", "h", "5432", "d", "disable"
	if got := cfg.PostgresDSN(); got != "postgres://u:p@h:5432/d?sslmode=disable" {
		t.Fatalf("dsn = %q", got)
	}
}
