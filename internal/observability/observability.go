package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/npl-fantasy/internal/config"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
)

// Shutdown flushes exporters and stops the profiler.
type Shutdown func(ctx context.Context) error

// Start brings up tracing and profiling as configured. Either may be
// disabled; the returned Shutdown is always safe to call.
func Start(cfg config.Config, logger *logging.Logger) (Shutdown, error) {
	if logger == nil {
		logger = logging.Default()
	}

	stopTracing := startTracing(cfg, logger)
	stopProfiling, err := startProfiling(cfg, logger)
	if err != nil {
		_ = stopTracing(context.Background())
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}

	return func(ctx context.Context) error {
		var errs []error
		if err := stopProfiling(); err != nil {
			errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
		}
		if err := stopTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
		}
		return errors.Join(errs...)
	}, nil
}
