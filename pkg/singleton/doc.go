// Package singleton returns one lazily built instance per Go type.
//
// Ask for a type and say how to build it; the first call builds, every later
// call gets the same instance:
//
//	cfg := singleton.Get(func() Config { return loadConfig() })
//
// No variable, name, or key is declared. The type is the key.
//
// Two stores back this package:
//
//   - Get and TryGet use the process-wide shared store (package shared).
//     Any goroutine may call them; the returned *T lives for the whole
//     process and is shared by everyone, so mutate it only with its own
//     synchronization.
//   - With uses the confined store of the current goroutine (package
//     confined), set up by Confine. The value is handed to a visitor and may
//     be mutated freely on that goroutine.
//
// # Basic Usage
//
//	singleton.Confine(func() {
//	    singleton.With(newScratch, func(s *Scratch) {
//	        s.Reset()
//	    })
//	})
//
// # Errors
//
// Initializer errors from TryGet are returned as *errors.InitError. Misuse,
// such as reentrant construction in a confined store or calling With outside
// Confine, panics with an error from package errors that can be recovered
// and inspected with errors.Is and errors.As.
//
// # Subpackages
//
//   - typemap: the type-keyed container both stores build on
//   - shared: the concurrent store
//   - confined: the goroutine-bound store
//   - errors: error types and categories
//   - observability: logging, metrics, and tracing hooks
//   - config: settings loaded from YAML or JSON
//   - registry: the goroutine-to-store registry used by confined.Run
package singleton
