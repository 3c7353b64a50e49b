// Package shared provides a type-indexed singleton store that any number of
// goroutines may use at once.
//
// A Store maps each Go type to at most one value. The first GetOrInit for a
// type runs the supplied initializer and stores its result; every later call
// returns a pointer to that same value.
//
// # Basic Usage
//
//	type Registry struct{ ... }
//
//	reg := shared.GetOrInit(shared.Default(), func() Registry {
//	    return Registry{...}
//	})
//
// # Concurrency
//
// Lookups take a read lock. Initializers run with no lock held, so an
// initializer may look up other types, or even its own type, without
// deadlocking. When several goroutines miss on the same type together, each
// runs its initializer and the first insert wins; the losers' values are
// discarded and all callers observe the winner.
//
// # Failure
//
// A panicking initializer leaves the store unchanged and the panic reaches
// the caller as is. TryGetOrInit reports initializer errors as
// *errors.InitError.
//
// # Observability
//
// Stores accept a slog logger, an OpenTelemetry metrics recorder and a span
// manager through options, or all three at once from configuration:
//
//	store := shared.NewFromConfig(cfg)
package shared
