// Package registry provides a generic thread-safe registry for values indexed by key.
//
// Registry is designed for read-heavy workloads using sync.RWMutex. It supports
// any comparable key type and any value type through Go generics.
//
// The confined store uses a Registry[int64, *confined.Store] to find the store
// bound to the calling goroutine. Swap and Restore let a nested scope shadow
// an outer entry and put it back on exit:
//
//	old, hadOld := r.Swap(goid, inner)
//	defer r.Restore(goid, old, hadOld)
//
// Unlike the type-keyed stores, a Registry supports deletion and overwrite;
// it is bookkeeping, not a singleton store.
package registry
