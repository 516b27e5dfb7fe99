package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableCachesPointers(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyFrames)
	b := r.Ints.Get(KeyFrames)
	assert.Same(t, a, b)
	assert.True(t, r.Ints.Has(KeyFrames))
	assert.False(t, r.Ints.Has(KeyPulses))
}

func TestTableConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	ptrs := make([]*Float, 32)
	var wg sync.WaitGroup
	for i := range ptrs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			ptrs[i] = r.Floats.Get(KeyFPS)
		}()
	}
	wg.Wait()
	for _, p := range ptrs {
		assert.Same(t, ptrs[0], p)
	}
	assert.Equal(t, 1, r.Floats.Len())
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyPulses).Store(7)
	r.Floats.Get(KeyFPS).Set(59.5)
	r.Bools.Get(KeyLowMode).Store(true)
	r.Strings.Get(KeyMode).Store("low")

	s := r.Snapshot()
	assert.Equal(t, int64(7), s.Ints[KeyPulses])
	assert.Equal(t, 59.5, s.Floats[KeyFPS])
	assert.True(t, s.Bools[KeyLowMode])
	assert.Equal(t, "low", s.Strings[KeyMode])
	assert.Equal(t, 4, r.Len())
}

func TestKeysSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b")
	r.Ints.Get("a")
	r.Ints.Get("c")
	assert.Equal(t, []string{"a", "b", "c"}, r.Ints.Keys())
}

func TestZeroValues(t *testing.T) {
	var f Float
	var s Text
	assert.Zero(t, f.Get())
	assert.Empty(t, s.Load())
	s.Store("convergence")
	assert.Equal(t, "convergence", s.Load())
}
