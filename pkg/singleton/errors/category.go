// Package errors provides the error taxonomy shared by the singleton stores.
//
// The package distinguishes four failure classes:
//   - Initializer: a user-supplied initializer returned an error
//   - Reentrant: an initializer transitively requested its own type
//   - Internal: a slot was read back under the wrong type
//   - Confinement: a confined store was used outside its goroutine
//
// Only Initializer failures are returned as errors. The other classes are
// logic defects and are raised with panic; recover() callers can still use
// errors.As on the recovered value.
package errors

import "errors"

// Category represents the class of a store failure.
type Category int

const (
	// CategoryUnknown is returned for errors the store did not produce.
	CategoryUnknown Category = iota

	// CategoryInitializer indicates the initializer failed. Nothing was
	// committed and the next call will run the initializer again.
	CategoryInitializer

	// CategoryReentrant indicates reentrant construction of a type in a
	// confined store.
	CategoryReentrant

	// CategoryInternal indicates a broken store invariant.
	CategoryInternal

	// CategoryConfinement indicates a confined store was reached from the
	// wrong goroutine, after it was closed, or not at all.
	CategoryConfinement
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryInitializer:
		return "initializer"
	case CategoryReentrant:
		return "reentrant"
	case CategoryInternal:
		return "internal"
	case CategoryConfinement:
		return "confinement"
	default:
		return "unknown"
	}
}

// Sentinel errors. The typed errors in this package unwrap to one of these.
var (
	// ErrInit indicates an initializer returned an error.
	ErrInit = errors.New("singleton: initializer failed")

	// ErrInitAborted indicates an initializer panicked or exited its
	// goroutine instead of returning. It is recorded in metrics and spans;
	// the panic itself reaches the caller unchanged.
	ErrInitAborted = errors.New("singleton: initializer did not return")

	// ErrReentrantInit indicates reentrant initialization of a type.
	ErrReentrantInit = errors.New("singleton: reentrant init")

	// ErrTypeMismatch indicates a slot holds a value of a different type
	// than the one it is keyed under.
	ErrTypeMismatch = errors.New("singleton: slot type mismatch")

	// ErrWrongGoroutine indicates a confined store was used from a goroutine
	// other than its owner.
	ErrWrongGoroutine = errors.New("singleton: confined store used from another goroutine")

	// ErrStoreClosed indicates a confined store was used after Close.
	ErrStoreClosed = errors.New("singleton: confined store closed")

	// ErrNotConfined indicates a confined lookup ran outside any confined scope.
	ErrNotConfined = errors.New("singleton: no confined store for this goroutine")
)

// Categorize determines which failure class err belongs to.
func Categorize(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	switch {
	case errors.Is(err, ErrInit), errors.Is(err, ErrInitAborted):
		return CategoryInitializer
	case errors.Is(err, ErrReentrantInit):
		return CategoryReentrant
	case errors.Is(err, ErrTypeMismatch):
		return CategoryInternal
	case errors.Is(err, ErrWrongGoroutine),
		errors.Is(err, ErrStoreClosed),
		errors.Is(err, ErrNotConfined):
		return CategoryConfinement
	}
	return CategoryUnknown
}

// IsFatal reports whether err indicates a defect in the calling code rather
// than an initializer failure that a later call may recover from.
func IsFatal(err error) bool {
	switch Categorize(err) {
	case CategoryReentrant, CategoryInternal, CategoryConfinement:
		return true
	default:
		return false
	}
}

// FromPanic converts a recovered panic value into an error when it is one of
// the store's own failures. It returns nil for any other value, including
// panics raised by user initializers.
func FromPanic(v any) error {
	err, ok := v.(error)
	if !ok || Categorize(err) == CategoryUnknown {
		return nil
	}
	return err
}
