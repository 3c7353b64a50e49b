package shared

import (
	"log/slog"

	"github.com/randalmurphal/singleton/pkg/singleton/config"
	serrors "github.com/randalmurphal/singleton/pkg/singleton/errors"
	"github.com/randalmurphal/singleton/pkg/singleton/observability"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger. A nil logger disables logging.
// Default: nil
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.obs.Logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
//
// Example:
//
//	store := shared.New(shared.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *Store) {
		if m != nil {
			s.obs.Metrics = m
		}
	}
}

// WithSpanManager sets the span manager used around initializers.
// Default: observability.NoopSpanManager{}
func WithSpanManager(sm observability.SpanManager) Option {
	return func(s *Store) {
		if sm != nil {
			s.obs.Spans = sm
		}
	}
}

// WithInitRetry sets the retry policy TryGetOrInit applies to failing
// initializers.
// Default: errors.NoRetry
func WithInitRetry(cfg serrors.RetryConfig) Option {
	return func(s *Store) {
		s.retry = cfg
	}
}

// WithSettings applies settings decoded from a config file.
// Logging, when enabled, writes to os.Stderr.
func WithSettings(settings config.Settings) Option {
	return func(s *Store) {
		if logger := settings.Logger(nil); logger != nil {
			s.obs.Logger = logger
		}
		if settings.Metrics {
			s.obs.Metrics = observability.NewMetricsRecorder()
		}
		if settings.Tracing {
			s.obs.Spans = observability.NewSpanManager()
		}
		s.retry = settings.Retry()
	}
}
