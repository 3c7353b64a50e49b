package errors

import "fmt"

// InitError wraps an error returned by an initializer.
type InitError struct {
	// Type is the name of the type being initialized.
	Type string
	// Store is the id of the store the value was requested from.
	Store string
	// Err is the error returned by the initializer.
	Err error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("singleton: init %s: %v", e.Type, e.Err)
}

// Unwrap returns the initializer error.
func (e *InitError) Unwrap() error {
	return e.Err
}

// Is reports ErrInit so callers can match any initializer failure.
func (e *InitError) Is(target error) bool {
	return target == ErrInit
}

// ReentrantInitError indicates that constructing a value of Type
// transitively requested the same type from the same confined store.
type ReentrantInitError struct {
	// Type is the name of the type being constructed.
	Type string
	// Store is the id of the confined store.
	Store string
}

// Error implements the error interface.
func (e *ReentrantInitError) Error() string {
	return fmt.Sprintf("singleton: reentrant init of %s", e.Type)
}

// Unwrap returns ErrReentrantInit for errors.Is support.
func (e *ReentrantInitError) Unwrap() error {
	return ErrReentrantInit
}

// TypeMismatchError indicates a slot keyed under Want holds a value of Got.
type TypeMismatchError struct {
	Want string
	Got  string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("singleton: slot for %s holds %s", e.Want, e.Got)
}

// Unwrap returns ErrTypeMismatch for errors.Is support.
func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// ConfinementError indicates a confined store was used outside the rules of
// confinement.
type ConfinementError struct {
	// Store is the id of the confined store.
	Store string
	// Owner is the id of the goroutine the store is bound to.
	Owner int64
	// Caller is the id of the goroutine that made the call.
	Caller int64
	// Err is ErrWrongGoroutine or ErrStoreClosed.
	Err error
}

// Error implements the error interface.
func (e *ConfinementError) Error() string {
	if e.Owner != e.Caller {
		return fmt.Sprintf("%v: store %s owned by goroutine %d, called from goroutine %d",
			e.Err, e.Store, e.Owner, e.Caller)
	}
	return fmt.Sprintf("%v: store %s", e.Err, e.Store)
}

// Unwrap returns the underlying sentinel.
func (e *ConfinementError) Unwrap() error {
	return e.Err
}
