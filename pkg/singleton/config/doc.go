/*
Package config provides type-safe configuration extraction from map[string]any
and decodes the store settings shared by the shared and confined stores.

# Basic Usage

Load a file and decode settings:

	cfg, err := config.FromFile("app.yaml")
	if err != nil {
	    return err
	}
	settings := cfg.Settings()
	store := shared.New(shared.WithSettings(settings))

The settings may sit at the top level or under a "singleton" section:

	singleton:
	  metrics: true
	  tracing: false
	  logging: true
	  log_level: debug
	  log_format: json
	  owner_check: true
	  init_attempts: 3
	  init_backoff: 250ms

# Accessors

Accessors never fail; a missing key or a value of the wrong type yields the
supplied default:

	cfg := config.New(map[string]any{"logging": true})
	cfg.Bool("logging", false)             // true
	cfg.String("log_format", "text")       // "text"
	cfg.Level("log_level", slog.LevelInfo) // slog.LevelInfo
	cfg.Int("init_attempts", 1)            // 1
*/
package config
