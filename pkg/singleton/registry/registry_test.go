package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New[string, int]()
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
}

func TestRegisterAndGet(t *testing.T) {
	r := New[string, int]()

	r.Register("one", 1)
	r.Register("two", 2)

	v, ok := r.Get("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	// Non-existent key
	v, ok = r.Get("three")
	assert.False(t, ok)
	assert.Equal(t, 0, v) // zero value
}

func TestRegisterOverwrite(t *testing.T) {
	r := New[string, string]()

	r.Register("key", "old")
	r.Register("key", "new")

	v, ok := r.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, r.Len())
}

func TestHasAndDelete(t *testing.T) {
	r := New[int64, string]()
	r.Register(7, "seven")

	assert.True(t, r.Has(7))
	r.Delete(7)
	assert.False(t, r.Has(7))

	// Should not panic
	r.Delete(8)
	assert.Equal(t, 0, r.Len())
}

func TestSwapAndRestore(t *testing.T) {
	t.Run("shadow and restore existing", func(t *testing.T) {
		r := New[int64, string]()
		r.Register(1, "outer")

		old, hadOld := r.Swap(1, "inner")
		assert.True(t, hadOld)
		assert.Equal(t, "outer", old)

		v, _ := r.Get(1)
		assert.Equal(t, "inner", v)

		r.Restore(1, old, hadOld)
		v, ok := r.Get(1)
		require.True(t, ok)
		assert.Equal(t, "outer", v)
	})

	t.Run("restore without previous deletes", func(t *testing.T) {
		r := New[int64, string]()

		old, hadOld := r.Swap(1, "only")
		assert.False(t, hadOld)
		assert.Equal(t, "", old)
		assert.True(t, r.Has(1))

		r.Restore(1, old, hadOld)
		assert.False(t, r.Has(1))
	})
}

func TestConcurrentSwapDistinctKeys(t *testing.T) {
	r := New[int64, int]()
	var wg sync.WaitGroup
	n := 100

	for i := range n {
		wg.Add(1)
		go func(key int64) {
			defer wg.Done()
			old, hadOld := r.Swap(key, int(key))
			v, ok := r.Get(key)
			assert.True(t, ok)
			assert.Equal(t, int(key), v)
			r.Restore(key, old, hadOld)
		}(int64(i))
	}

	wg.Wait()
	assert.Equal(t, 0, r.Len())
}

func BenchmarkGet(b *testing.B) {
	r := New[int64, int]()
	for i := range 1000 {
		r.Register(int64(i), i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := int64(0)
		for pb.Next() {
			r.Get(i % 1000)
			i++
		}
	})
}
