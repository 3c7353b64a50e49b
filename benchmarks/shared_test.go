package benchmarks

import (
	"sync"
	"testing"

	"github.com/randalmurphal/singleton/pkg/singleton"
	"github.com/randalmurphal/singleton/pkg/singleton/observability"
	"github.com/randalmurphal/singleton/pkg/singleton/shared"
)

// Value for benchmarks.
type Value struct {
	N int
}

// filler is a distinct type per index, used to grow a store.
type filler[T any] struct{}

func newValue() Value { return Value{N: 1} }

// BenchmarkShared_Hit measures the read fast path.
func BenchmarkShared_Hit(b *testing.B) {
	s := shared.New()
	shared.GetOrInit(s, newValue)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		shared.GetOrInit(s, newValue)
	}
}

// BenchmarkShared_Hit_Large measures the fast path in a store holding many types.
func BenchmarkShared_Hit_Large(b *testing.B) {
	s := shared.New()
	fill(s)
	shared.GetOrInit(s, newValue)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		shared.GetOrInit(s, newValue)
	}
}

// BenchmarkShared_Hit_Metrics measures the fast path with a metrics recorder.
func BenchmarkShared_Hit_Metrics(b *testing.B) {
	s := shared.New(shared.WithMetrics(observability.NewMetricsRecorder()))
	shared.GetOrInit(s, newValue)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		shared.GetOrInit(s, newValue)
	}
}

// BenchmarkShared_Miss measures first initialization in a fresh store.
func BenchmarkShared_Miss(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := shared.New()
		shared.GetOrInit(s, newValue)
	}
}

// BenchmarkShared_Parallel measures concurrent readers.
func BenchmarkShared_Parallel(b *testing.B) {
	s := shared.New()
	shared.GetOrInit(s, newValue)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			shared.GetOrInit(s, newValue)
		}
	})
}

// BenchmarkSyncOnce is the baseline: a hand-declared package variable.
func BenchmarkSyncOnce(b *testing.B) {
	get := sync.OnceValue(newValue)
	get()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = get()
	}
}

// BenchmarkGet measures the facade over the default store.
func BenchmarkGet(b *testing.B) {
	singleton.Get(newValue)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		singleton.Get(newValue)
	}
}

func fill(s *shared.Store) {
	shared.GetOrInit(s, func() filler[int] { return filler[int]{} })
	shared.GetOrInit(s, func() filler[int8] { return filler[int8]{} })
	shared.GetOrInit(s, func() filler[int16] { return filler[int16]{} })
	shared.GetOrInit(s, func() filler[int32] { return filler[int32]{} })
	shared.GetOrInit(s, func() filler[int64] { return filler[int64]{} })
	shared.GetOrInit(s, func() filler[uint] { return filler[uint]{} })
	shared.GetOrInit(s, func() filler[uint8] { return filler[uint8]{} })
	shared.GetOrInit(s, func() filler[uint16] { return filler[uint16]{} })
	shared.GetOrInit(s, func() filler[uint32] { return filler[uint32]{} })
	shared.GetOrInit(s, func() filler[uint64] { return filler[uint64]{} })
	shared.GetOrInit(s, func() filler[string] { return filler[string]{} })
	shared.GetOrInit(s, func() filler[float32] { return filler[float32]{} })
	shared.GetOrInit(s, func() filler[float64] { return filler[float64]{} })
	shared.GetOrInit(s, func() filler[bool] { return filler[bool]{} })
}
