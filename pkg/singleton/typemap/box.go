package typemap

// Box is a stable-address cell for one value of T.
//
// A Box is always heap allocated by NewBox and never copied by the map, so
// the address returned by Ptr is fixed for the Box's whole life.
type Box[T any] struct {
	value T
}

// NewBox allocates a Box holding v.
func NewBox[T any](v T) *Box[T] {
	return &Box[T]{value: v}
}

// Ptr returns the address of the boxed value.
//
// This is the only place a store turns a map-scoped lookup into a reference
// that outlives the lock or scope it was found under. That is sound because
// boxes are never removed or replaced once inserted, and the garbage
// collector keeps the box alive for as long as the returned pointer is
// reachable. Callers of a confined store must additionally keep the pointer
// on the store's goroutine.
func (b *Box[T]) Ptr() *T {
	return &b.value
}
