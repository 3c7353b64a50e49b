package singleton

import (
	"github.com/randalmurphal/singleton/pkg/singleton/confined"
	serrors "github.com/randalmurphal/singleton/pkg/singleton/errors"
	"github.com/randalmurphal/singleton/pkg/singleton/shared"
)

// Get returns the process-wide instance of T, building it with init on first
// use. See shared.GetOrInit.
func Get[T any](init func() T) *T {
	return shared.GetOrInit(shared.Default(), init)
}

// TryGet is Get for initializers that can fail. On error nothing is stored
// and a later call tries again.
func TryGet[T any](init func() (T, error)) (*T, error) {
	return shared.TryGetOrInit(shared.Default(), init)
}

// With passes the current goroutine's instance of T to visit, building it
// with init on first use. See confined.GetOrInitWith.
//
// With must run inside Confine on the same goroutine; otherwise it panics
// with errors.ErrNotConfined.
func With[T any](init func() T, visit func(*T)) {
	s, ok := confined.Local()
	if !ok {
		panic(serrors.ErrNotConfined)
	}
	confined.GetOrInitWith(s, init, visit)
}

// Confine runs fn with a fresh confined store for the current goroutine.
// Values built by With during fn are dropped when fn returns.
func Confine(fn func(), opts ...confined.Option) {
	confined.Run(func(*confined.Store) { fn() }, opts...)
}
