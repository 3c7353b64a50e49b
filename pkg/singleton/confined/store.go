package confined

import (
	"context"
	"reflect"

	"github.com/google/uuid"

	"github.com/randalmurphal/singleton/pkg/singleton/config"
	serrors "github.com/randalmurphal/singleton/pkg/singleton/errors"
	"github.com/randalmurphal/singleton/pkg/singleton/observability"
	"github.com/randalmurphal/singleton/pkg/singleton/typemap"
)

// Kind labels confined stores in logs, metrics, and spans.
const Kind = "confined"

// State is the construction state of one type in a Store.
type State int

const (
	// Absent means no value exists and none is being built.
	Absent State = iota
	// InProgress means the initializer for the type is running.
	InProgress
	// Ready means the value exists.
	Ready
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case InProgress:
		return "in_progress"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Store is a type-indexed singleton store owned by a single goroutine.
//
// A Store takes no locks. Every method and function that accepts a Store
// must be called on the goroutine that created it; with the owner check
// enabled (the default) calls from anywhere else panic with an
// *errors.ConfinementError.
type Store struct {
	m          *typemap.Map
	states     map[reflect.Type]State
	owner      int64
	checkOwner bool
	closed     bool
	obs        observability.Instruments
	retry      serrors.RetryConfig
}

// New creates an empty store owned by the calling goroutine.
// Most callers want Run, which also registers the store for Local.
func New(opts ...Option) *Store {
	s := &Store{
		m:          typemap.New(),
		states:     make(map[reflect.Type]State),
		owner:      goid(),
		checkOwner: true,
		obs:        observability.NewInstruments(Kind, uuid.NewString()),
		retry:      serrors.NoRetry,
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

// ID returns the store's unique id.
func (s *Store) ID() string {
	return s.obs.StoreID
}

// Owner returns the id of the goroutine the store is bound to.
func (s *Store) Owner() int64 {
	return s.owner
}

// Len returns the number of types with a ready value.
func (s *Store) Len() int {
	s.mustOwn()
	return s.m.Len()
}

// Types returns the types with a ready value, ordered by name.
func (s *Store) Types() []reflect.Type {
	s.mustOwn()
	return s.m.Types()
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mustOwn()
	return s.closed
}

// Close ends the store's life. Later lookups panic with ErrStoreClosed.
// Pointers already handed out stay valid. Close is idempotent.
func (s *Store) Close() {
	s.mustOwn()
	if s.closed {
		return
	}
	s.closed = true
	observability.LogStoreClosed(s.obs.Logger, s.m.Len())
}

// mustOwn panics unless the caller is the owner goroutine.
func (s *Store) mustOwn() {
	if !s.checkOwner {
		return
	}
	if caller := goid(); caller != s.owner {
		panic(&serrors.ConfinementError{
			Store:  s.ID(),
			Owner:  s.owner,
			Caller: caller,
			Err:    serrors.ErrWrongGoroutine,
		})
	}
}

// enter guards every lookup.
func (s *Store) enter() {
	s.mustOwn()
	if s.closed {
		panic(&serrors.ConfinementError{
			Store:  s.ID(),
			Owner:  s.owner,
			Caller: s.owner,
			Err:    serrors.ErrStoreClosed,
		})
	}
}

// StateOf returns the construction state of T in s.
func StateOf[T any](s *Store) State {
	s.mustOwn()
	if typemap.Contains[T](s.m) {
		return Ready
	}
	return s.states[typemap.Key[T]()]
}

// GetOrInitWith ensures s holds a value of T, running init to create it if
// needed, and then calls visit with a pointer to the stored value.
//
// visit may call GetOrInitWith again for any type, T included: reentrant
// access is allowed. Reentrant construction is not. If init, directly or
// indirectly, asks s for T while T is still being built, the inner call
// panics with an *errors.ReentrantInitError.
//
// A panic in init leaves T absent, so the next call runs init again.
//
// The pointer given to visit may be kept and mutated, but only on the
// owner goroutine.
func GetOrInitWith[T any](s *Store, init func() T, visit func(*T)) {
	_ = with(s, func() (T, error) { return init(), nil }, visit)
}

// TryGetOrInitWith is GetOrInitWith for initializers that can fail. A non-nil
// error from init is returned as an *errors.InitError, T stays absent, and
// visit is not called. Failing attempts are retried per WithInitRetry while T
// stays InProgress.
func TryGetOrInitWith[T any](s *Store, init func() (T, error), visit func(*T)) error {
	if s.retry.Enabled() {
		once := init
		init = func() (T, error) {
			return serrors.Retry(context.Background(), s.retry, once)
		}
	}
	return with(s, init, visit)
}

func with[T any](s *Store, init func() (T, error), visit func(*T)) error {
	s.enter()
	p, err := getOrInit(s, init)
	if err != nil {
		return err
	}
	visit(p)
	return nil
}

func getOrInit[T any](s *Store, init func() (T, error)) (*T, error) {
	key := typemap.Key[T]()
	b, ok := typemap.Get[T](s.m)
	if s.obs.MetricsEnabled() {
		s.obs.Lookup(key.String(), ok)
	}
	if ok {
		return b.Ptr(), nil
	}

	name := key.String()
	if s.states[key] == InProgress {
		reentrant(s, name)
	}

	s.states[key] = InProgress
	settled := false
	defer func() {
		if !settled {
			delete(s.states, key)
		}
	}()

	run := s.obs.StartInit(name)
	v, err := observability.CallInit(run, init)
	if err != nil {
		run.Failed(err)
		return nil, &serrors.InitError{Type: name, Store: s.ID(), Err: err}
	}
	if s.states[key] != InProgress || typemap.Contains[T](s.m) {
		// init built T through some path that escaped the InProgress check.
		rerr := &serrors.ReentrantInitError{Type: name, Store: s.ID()}
		run.Reentrant(rerr)
		panic(rerr)
	}

	b, _ = typemap.InsertIfAbsent(s.m, typemap.NewBox(v))
	s.states[key] = Ready
	settled = true
	run.Committed()
	return b.Ptr(), nil
}

func reentrant(s *Store, typeName string) {
	err := &serrors.ReentrantInitError{Type: typeName, Store: s.ID()}
	s.obs.StartInit(typeName).Reentrant(err)
	panic(err)
}
