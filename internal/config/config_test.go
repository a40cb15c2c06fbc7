package config

import (
	"testing"

	"github.com/robharvey123/cricket-platform/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config with defaults: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected default env %q, got %q", EnvDev, cfg.AppEnv)
	}
	if cfg.ServiceName != "cricket-platform-api" {
		t.Fatalf("unexpected default service name %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected default http addr %q", cfg.HTTPAddr)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("swagger should default on outside prod")
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DB_URL default, got %q", cfg.DBURL)
	}
	if !cfg.CacheEnabled {
		t.Fatalf("cache should default enabled")
	}
	if cfg.RecalcMaxWorkers != 4 {
		t.Fatalf("expected 4 default recalc workers, got %d", cfg.RecalcMaxWorkers)
	}
	if cfg.PlayCricketBaseURL != "https://play-cricket.com/api/v2" {
		t.Fatalf("unexpected default provider base url %q", cfg.PlayCricketBaseURL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected default CORS origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected default log level %v", cfg.LogLevel)
	}
}

func TestLoad_ProdDisablesSwagger(t *testing.T) {
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("swagger must default off in prod")
	}
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_QStashRequiresToken(t *testing.T) {
	t.Setenv("QSTASH_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED without QSTASH_TOKEN")
	}
}

func TestLoad_QStashRequiresInternalJobToken(t *testing.T) {
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "qs-token")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://api.example.com")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED without INTERNAL_JOB_TOKEN")
	}

	t.Setenv("INTERNAL_JOB_TOKEN", "job-token")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.InternalJobToken != "job-token" {
		t.Fatalf("unexpected internal job token %q", cfg.InternalJobToken)
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected uptrace dsn %q", cfg.UptraceDSN)
	}
}

func TestLoad_InvalidWorkerCount(t *testing.T) {
	t.Setenv("RECALC_MAX_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for RECALC_MAX_WORKERS=0")
	}
}
