// Package typemap provides a heterogeneous container keyed by type identity.
//
// A Map holds at most one value per distinct Go type. Each value lives in a
// Box, a heap cell the map owns and never moves, replaces, or removes. A
// pointer obtained from a Box therefore stays valid for as long as anything
// references it, regardless of how the map grows afterwards.
//
// Map is not safe for concurrent use. The shared and confined stores add the
// synchronization or confinement that makes it usable.
//
// Operations are package-level generic functions because Go methods cannot
// take type parameters:
//
//	m := typemap.New()
//	b, inserted := typemap.InsertIfAbsent(m, typemap.NewBox(42))
//	got, ok := typemap.Get[int](m)  // got == b, ok == true
package typemap

import (
	"fmt"
	"reflect"
	"sort"

	serrors "github.com/randalmurphal/singleton/pkg/singleton/errors"
)

// Key returns the type identity values of T are stored under.
// Interface types are keyed by the interface itself, not the dynamic type.
func Key[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// slot is the type-erased cell stored in the map. key is the tag the slot was
// inserted under; box is always a *Box[T] for that same T.
type slot struct {
	key reflect.Type
	box any
}

// Map is a type-keyed container with monotonic insertion.
type Map struct {
	slots map[reflect.Type]*slot
}

// New creates an empty Map.
func New() *Map {
	return &Map{slots: make(map[reflect.Type]*slot)}
}

// Len returns the number of types stored.
func (m *Map) Len() int {
	return len(m.slots)
}

// Types returns the stored type identities ordered by their string form.
func (m *Map) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(m.slots))
	for k := range m.slots {
		types = append(types, k)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// Contains reports whether a value of T is stored.
func Contains[T any](m *Map) bool {
	_, ok := m.slots[Key[T]()]
	return ok
}

// Get returns the box stored for T.
func Get[T any](m *Map) (*Box[T], bool) {
	s, ok := m.slots[Key[T]()]
	if !ok {
		return nil, false
	}
	return unbox[T](s), true
}

// InsertIfAbsent stores b for T unless a box for T is already present.
// It returns the box that is stored after the call and whether b was the one
// inserted. When T was already present b is discarded; nothing is overwritten.
func InsertIfAbsent[T any](m *Map, b *Box[T]) (*Box[T], bool) {
	key := Key[T]()
	if s, ok := m.slots[key]; ok {
		return unbox[T](s), false
	}
	m.slots[key] = &slot{key: key, box: b}
	return b, true
}

// unbox recovers the typed box from s. A slot whose tag or payload does not
// match T means the map invariant is broken; that is never recoverable.
func unbox[T any](s *slot) *Box[T] {
	want := Key[T]()
	if s.key != want {
		panic(&serrors.TypeMismatchError{Want: want.String(), Got: s.key.String()})
	}
	b, ok := s.box.(*Box[T])
	if !ok {
		panic(&serrors.TypeMismatchError{Want: want.String(), Got: fmt.Sprintf("%T", s.box)})
	}
	return b
}
