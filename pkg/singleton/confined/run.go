package confined

import "github.com/randalmurphal/singleton/pkg/singleton/registry"

// stores maps goroutine ids to the store Run registered for them.
var stores = registry.New[int64, *Store]()

// Run creates a store bound to the calling goroutine, makes it the
// goroutine's Local store, and calls fn with it. When fn returns or panics
// the store is closed and the previous Local store, if any, is restored.
//
//	confined.Run(func(s *confined.Store) {
//	    confined.GetOrInitWith(s, newParser, func(p *Parser) { ... })
//	})
func Run(fn func(*Store), opts ...Option) {
	s := New(opts...)
	prev, hadPrev := stores.Swap(s.owner, s)
	defer func() {
		stores.Restore(s.owner, prev, hadPrev)
		s.Close()
	}()
	fn(s)
}

// Local returns the store Run registered for the calling goroutine.
func Local() (*Store, bool) {
	return stores.Get(goid())
}
