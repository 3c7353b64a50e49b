// Package observability provides the logging, metrics, and tracing hooks
// used by the singleton stores.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Only the slow path (first initialization of a type) is traced; the
// read fast path only touches the lookup counter.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds store context to a logger.
// Returns a new logger with store_kind and store_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "shared", store.ID())
//	enriched.Info("warming up") // includes store_kind, store_id
func EnrichLogger(logger *slog.Logger, kind, storeID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("store_kind", kind),
		slog.String("store_id", storeID),
	)
}

// LogInitComplete logs that a value was constructed and committed.
func LogInitComplete(logger *slog.Logger, typeName string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("singleton initialized",
		slog.String("type", typeName),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogInitDiscarded logs that a constructed value lost the insertion race and
// was dropped in favour of the value already stored.
func LogInitDiscarded(logger *slog.Logger, typeName string) {
	if logger == nil {
		return
	}
	logger.Debug("singleton init discarded, existing value kept",
		slog.String("type", typeName),
	)
}

// LogInitError logs an initializer that returned an error.
func LogInitError(logger *slog.Logger, typeName string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("singleton init failed",
		slog.String("type", typeName),
		slog.String("error", err.Error()),
	)
}

// LogInitAborted logs an initializer that panicked or called runtime.Goexit.
// The panic keeps unwinding to the caller; nothing was stored.
func LogInitAborted(logger *slog.Logger, typeName string) {
	if logger == nil {
		return
	}
	logger.Error("singleton init aborted",
		slog.String("type", typeName),
	)
}

// LogReentrant logs a reentrant construction attempt.
func LogReentrant(logger *slog.Logger, typeName string) {
	if logger == nil {
		return
	}
	logger.Error("singleton reentrant init",
		slog.String("type", typeName),
	)
}

// LogStoreClosed logs that a confined store was torn down.
func LogStoreClosed(logger *slog.Logger, entries int) {
	if logger == nil {
		return
	}
	logger.Debug("confined store closed",
		slog.Int("entries", entries),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Milliseconds converts d to fractional milliseconds for log fields.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
