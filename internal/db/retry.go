package db

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// RetryConfig defines the backoff behavior of a RetryExecutor.
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// DefaultRetryConfig matches the sqlite busy/lock profile: short waits,
// few attempts.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:        3,
	InitialDelay:      100 * time.Millisecond,
	MaxDelay:          800 * time.Millisecond,
	BackoffMultiplier: 2.0,
}

// RetryExecutor runs storage closures with bounded exponential backoff.
// Operations passed to Do must be idempotent: a failed sqlite statement or
// transaction leaves no partial effect, so re-executing it is safe. That
// precondition is on the caller, not enforced here.
type RetryExecutor struct {
	config RetryConfig
	logger *slog.Logger
	sink   FailureSink
}

// NewRetryExecutor builds an executor. A zero-value config falls back to
// DefaultRetryConfig wholesale; in any other config MaxRetries: 0 means a
// single attempt and only unset delay fields are defaulted. A nil logger
// falls back to slog.Default and a nil sink disables exhaustion records.
func NewRetryExecutor(config RetryConfig, logger *slog.Logger, sink FailureSink) *RetryExecutor {
	if config == (RetryConfig{}) {
		config = DefaultRetryConfig
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = DefaultRetryConfig.InitialDelay
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = DefaultRetryConfig.MaxDelay
	}
	if config.BackoffMultiplier <= 0 {
		config.BackoffMultiplier = DefaultRetryConfig.BackoffMultiplier
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryExecutor{config: config, logger: logger, sink: sink}
}

// Do executes op up to MaxRetries+1 times. A fatal classification stops
// immediately regardless of remaining budget; a retryable one sleeps
// min(initial·multiplier^(attempt-1), max) and tries again. After the
// budget is exhausted a best-effort record goes to the failure sink.
func (executor *RetryExecutor) Do(ctx context.Context, operation string, op func() error) error {
	maxAttempts := executor.config.MaxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := op()
		if err == nil {
			if attempt > 1 {
				executor.logger.InfoContext(ctx, "storage operation recovered",
					"operation", operation, "attempt", attempt)
			}
			return nil
		}

		class := Classify(err)
		storageFaultsMetric.WithLabelValues(class.String()).Inc()
		if class == FaultFatal {
			return err
		}

		lastErr = err
		if attempt == maxAttempts {
			executor.reportExhausted(ctx, operation, attempt, err)
			break
		}

		delay := backoffDelay(attempt, executor.config)
		retryAttemptsMetric.WithLabelValues(operation).Inc()
		executor.logger.WarnContext(ctx, "transient storage fault, retrying",
			"operation", operation, "attempt", attempt, "delay", delay, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, maxAttempts, lastErr)
}

func (executor *RetryExecutor) reportExhausted(ctx context.Context, operation string, attempts int, cause error) {
	retryExhaustedMetric.WithLabelValues(operation).Inc()
	if executor.sink == nil {
		return
	}
	details := map[string]any{
		"operation": operation,
		"attempts":  attempts,
		"retryable": true,
	}
	if sinkErr := executor.sink.Log(ctx, "storage", "storage retry budget exhausted", cause, details); sinkErr != nil {
		executor.logger.WarnContext(ctx, "failure sink rejected record",
			"operation", operation, "error", sinkErr)
	}
}

func backoffDelay(attempt int, config RetryConfig) time.Duration {
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffMultiplier, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	return time.Duration(delay)
}
