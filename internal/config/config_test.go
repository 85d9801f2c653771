package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	for _, key := range []string{
		"STORAGE_DRIVER", "CACHE_ENABLED", "CACHE_DRIVER", "CACHE_TTL",
		"SCORING_WORKERS", "SCORING_MATCH_CONCURRENCY", "UPTRACE_ENABLED",
		"UPTRACE_DSN", "OTEL_EXPORTER_OTLP_HEADERS", "PYROSCOPE_ENABLED",
		"ADMIN_TOKEN", "APP_HTTP_ADDR",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if !cfg.CacheEnabled || cfg.CacheDriver != CacheMemory || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache defaults: enabled=%v driver=%q ttl=%s", cfg.CacheEnabled, cfg.CacheDriver, cfg.CacheTTL)
	}
	if cfg.ScoringWorkers != 8 || cfg.ScoringMatchConcurrency != 4 {
		t.Fatalf("unexpected scoring defaults: workers=%d matches=%d", cfg.ScoringWorkers, cfg.ScoringMatchConcurrency)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("postgres accepted case-insensitively", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "Postgres")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StoragePostgres {
			t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
		}
	})

	t.Run("unknown driver rejected", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_RedisCacheRequiresURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("REDIS_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when CACHE_DRIVER=redis without REDIS_URL")
	}

	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected RedisURL: %q", cfg.RedisURL)
	}
}

func TestLoad_AdminTokenRequiredInProd(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ADMIN_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when ADMIN_TOKEN is empty in prod")
	}

	t.Setenv("ADMIN_TOKEN", "secret")
	if _, err := Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func TestLoad_ScoringBounds(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero workers", key: "SCORING_WORKERS", value: "0"},
		{name: "non numeric workers", key: "SCORING_WORKERS", value: "many"},
		{name: "zero match concurrency", key: "SCORING_MATCH_CONCURRENCY", value: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "npl-fantasy-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "npl-fantasy-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheTTLMustBePositive(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_TTL", "0s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for CACHE_TTL=0s")
	}
}

func TestLoad_RedisBreakerSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("REDIS_BREAKER_FAILURES", "3")
	t.Setenv("REDIS_BREAKER_OPEN_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RedisBreakerFailures != 3 || cfg.RedisBreakerOpenTimeout != 30*time.Second {
		t.Fatalf("unexpected breaker settings: failures=%d open=%s", cfg.RedisBreakerFailures, cfg.RedisBreakerOpenTimeout)
	}

	t.Setenv("REDIS_BREAKER_FAILURES", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for REDIS_BREAKER_FAILURES=0")
	}
}

func TestLoad_QStashRequiresTokens(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "qstash-token")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://api.example.com")
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without INTERNAL_JOB_TOKEN")
	}

	t.Setenv("INTERNAL_JOB_TOKEN", "job-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.QStashEnabled || cfg.QStashBaseURL != "https://qstash.upstash.io" || cfg.QStashRetries != 3 {
		t.Fatalf("unexpected qstash config: %+v", cfg)
	}
}

func TestLoad_CacheMaxEntries(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheMaxEntries != 10000 {
		t.Fatalf("unexpected default CACHE_MAX_ENTRIES: %d", cfg.CacheMaxEntries)
	}

	t.Setenv("CACHE_MAX_ENTRIES", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative CACHE_MAX_ENTRIES")
	}
}
