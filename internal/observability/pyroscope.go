package observability

import (
	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/npl-fantasy/internal/config"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
)

// Scoring is CPU and allocation bound; heap-in-use and goroutine profiles
// cover the worker pools.
var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

func startProfiling(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"version": cfg.ServiceVersion,
			"storage": cfg.StorageDriver,
		},
		ProfileTypes: profileTypes,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled", "application", cfg.PyroscopeAppName)
	return profiler.Stop, nil
}
