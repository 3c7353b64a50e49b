// Package confined provides a type-indexed singleton store owned by one
// goroutine.
//
// A confined Store needs no locks because only its owner goroutine ever
// touches it. Values are reached through a visitor:
//
//	confined.Run(func(s *confined.Store) {
//	    confined.GetOrInitWith(s, newBuffer, func(b *Buffer) {
//	        b.Reset()
//	    })
//	})
//
// # Construction states
//
// Each type is Absent, InProgress, or Ready. An initializer that asks the
// store for its own type while it runs triggers a panic with
// *errors.ReentrantInitError; a visitor asking for its own type is fine
// because the type is already Ready.
//
// # Confinement
//
// The store remembers the goroutine that created it. By default every call
// checks the caller against it and panics with *errors.ConfinementError on a
// mismatch. The check parses the runtime stack header and can be turned off
// with WithOwnerCheck(false) or the owner_check config key.
//
// Run registers the store for the goroutine so that Local can find it
// further down the call stack. WithStore and FromContext pass it through a
// context instead.
package confined
