package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	serrors "github.com/randalmurphal/singleton/pkg/singleton/errors"
)

// Section is the key under which store settings may be nested in a larger
// application config file.
const Section = "singleton"

// Settings are the store options that can be driven from a config file.
type Settings struct {
	// Metrics enables OpenTelemetry metrics. Default: false
	Metrics bool
	// Tracing enables an OpenTelemetry span per initialization. Default: false
	Tracing bool
	// Logging enables structured logging. Default: false
	Logging bool
	// LogLevel is the minimum level logged. Default: info
	LogLevel slog.Level
	// LogFormat is "text" or "json". Default: text
	LogFormat string
	// OwnerCheck makes confined stores verify the calling goroutine.
	// Default: true
	OwnerCheck bool
	// InitAttempts is how many times TryGetOrInit runs a failing
	// initializer before reporting the error. Default: 1
	InitAttempts int
	// InitBackoff is the pause before the second attempt; it doubles after
	// each further failure. Default: 100ms
	InitBackoff time.Duration
}

// DefaultSettings returns the settings used when no config is supplied.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:     slog.LevelInfo,
		LogFormat:    "text",
		OwnerCheck:   true,
		InitAttempts: 1,
		InitBackoff:  100 * time.Millisecond,
	}
}

// Settings decodes store settings from c. If c has a "singleton" section the
// settings are read from it, otherwise from the top level.
//
// Recognized keys: metrics, tracing, logging, log_level, log_format,
// owner_check, init_attempts, init_backoff.
func (c Config) Settings() Settings {
	if c.Has(Section) {
		c = c.Sub(Section)
	}

	s := DefaultSettings()
	s.Metrics = c.Bool("metrics", s.Metrics)
	s.Tracing = c.Bool("tracing", s.Tracing)
	s.Logging = c.Bool("logging", s.Logging)
	s.LogLevel = c.Level("log_level", s.LogLevel)
	s.LogFormat = strings.ToLower(c.String("log_format", s.LogFormat))
	s.OwnerCheck = c.Bool("owner_check", s.OwnerCheck)
	s.InitAttempts = c.Int("init_attempts", s.InitAttempts)
	s.InitBackoff = c.Duration("init_backoff", s.InitBackoff)
	return s
}

// Retry returns the initializer retry policy described by s.
func (s Settings) Retry() serrors.RetryConfig {
	if s.InitAttempts <= 1 {
		return serrors.NoRetry
	}
	return serrors.NewRetryConfig(
		serrors.WithMaxAttempts(s.InitAttempts),
		serrors.WithInitialBackoff(s.InitBackoff),
		serrors.WithMaxBackoff(max(s.InitBackoff*8, serrors.DefaultRetry.MaxBackoff)),
	)
}

// Logger builds the logger described by s, writing to w (os.Stderr if nil).
// Returns nil when logging is disabled; the stores treat a nil logger as off.
func (s Settings) Logger(w io.Writer) *slog.Logger {
	if !s.Logging {
		return nil
	}
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: s.LogLevel}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
