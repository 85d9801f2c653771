package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/npl-fantasy/internal/config"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
)

func startTracing(cfg config.Config, logger *logging.Logger) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	switch {
	case !cfg.UptraceEnabled:
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return noop
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return noop
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(resourceAttributes(cfg)...),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)
	return uptrace.Shutdown
}

// resourceAttributes tags every span with the backends this instance runs on.
func resourceAttributes(cfg config.Config) []attribute.KeyValue {
	cache := cfg.CacheDriver
	if !cfg.CacheEnabled {
		cache = "none"
	}
	return []attribute.KeyValue{
		attribute.String("npl.storage_driver", cfg.StorageDriver),
		attribute.String("npl.cache_driver", cache),
		attribute.Bool("npl.job_queue_enabled", cfg.QStashEnabled),
	}
}
