package shared

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/randalmurphal/singleton/pkg/singleton/config"
	serrors "github.com/randalmurphal/singleton/pkg/singleton/errors"
	"github.com/randalmurphal/singleton/pkg/singleton/observability"
	"github.com/randalmurphal/singleton/pkg/singleton/typemap"
)

// Kind labels shared stores in logs, metrics, and spans.
const Kind = "shared"

// Store is a concurrency-safe type-indexed singleton store.
// The zero value is not usable; create stores with New.
type Store struct {
	mu    sync.RWMutex
	m     *typemap.Map
	obs   observability.Instruments
	retry serrors.RetryConfig
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		m:     typemap.New(),
		obs:   observability.NewInstruments(Kind, uuid.NewString()),
		retry: serrors.NoRetry,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.obs.Bind()
	return s
}

// NewFromConfig creates a store configured from cfg's settings.
func NewFromConfig(cfg config.Config) *Store {
	return New(WithSettings(cfg.Settings()))
}

var defaultStore = sync.OnceValue(func() *Store { return New() })

// Default returns the process-wide store. It is created on first use and
// never torn down.
func Default() *Store {
	return defaultStore()
}

// ID returns the store's unique id.
func (s *Store) ID() string {
	return s.obs.StoreID
}

// Len returns the number of types stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Len()
}

// Types returns the stored types ordered by name.
func (s *Store) Types() []reflect.Type {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Types()
}

// GetOrInit returns the value stored for T, running init to create it if T
// has no value yet.
//
// init runs without any lock held, so it may itself call GetOrInit for T or
// any other type. Goroutines that miss at the same time each run their own
// init; the first value inserted is kept, every caller receives a pointer to
// it, and the other values are dropped. A panic in init reaches the caller
// unchanged and leaves nothing stored, so the next call runs init again.
//
// The returned pointer stays valid for as long as the caller holds it. The
// value is shared by every goroutine that asks for T; mutating it needs the
// value's own synchronization.
func GetOrInit[T any](s *Store, init func() T) *T {
	p, _ := getOrInit(s, func() (T, error) { return init(), nil })
	return p
}

// TryGetOrInit is GetOrInit for initializers that can fail. A non-nil error
// from init is returned as an *errors.InitError and nothing is stored.
//
// With a retry policy set (WithInitRetry), init is run again after retryable
// errors, still without any lock held.
func TryGetOrInit[T any](s *Store, init func() (T, error)) (*T, error) {
	if s.retry.Enabled() {
		once := init
		init = func() (T, error) {
			return serrors.Retry(context.Background(), s.retry, once)
		}
	}
	return getOrInit(s, init)
}

// Load returns the value stored for T without initializing it.
func Load[T any](s *Store) (*T, bool) {
	b, ok := load[T](s)
	if !ok {
		return nil, false
	}
	return b.Ptr(), true
}

func load[T any](s *Store) (*typemap.Box[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return typemap.Get[T](s.m)
}

func insert[T any](s *Store, b *typemap.Box[T]) (*typemap.Box[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return typemap.InsertIfAbsent(s.m, b)
}

func getOrInit[T any](s *Store, init func() (T, error)) (*T, error) {
	b, ok := load[T](s)
	if s.obs.MetricsEnabled() {
		s.obs.Lookup(typemap.Key[T]().String(), ok)
	}
	if ok {
		return b.Ptr(), nil
	}

	name := typemap.Key[T]().String()
	run := s.obs.StartInit(name)

	// No lock is held here: init may reenter the store.
	v, err := observability.CallInit(run, init)
	if err != nil {
		run.Failed(err)
		return nil, &serrors.InitError{Type: name, Store: s.ID(), Err: err}
	}

	b, inserted := insert(s, typemap.NewBox(v))

	if inserted {
		run.Committed()
	} else {
		run.Discarded()
	}
	return b.Ptr(), nil
}
