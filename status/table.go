package status

import (
	"slices"
	"sync"
)

// Table maps figure keys to values of one kind
// The frame loop keeps the returned pointers, so lookups after the first are off the hot path
type Table[T any] struct {
	m sync.Map // string -> *T
}

func newTable[T any]() *Table[T] {
	return &Table[T]{}
}

// Get returns the value for key, registering it on first use
func (t *Table[T]) Get(key string) *T {
	if v, ok := t.m.Load(key); ok {
		return v.(*T)
	}
	v, _ := t.m.LoadOrStore(key, new(T))
	return v.(*T)
}

func (t *Table[T]) Has(key string) bool {
	_, ok := t.m.Load(key)
	return ok
}

// Keys lists registered keys in order
func (t *Table[T]) Keys() []string {
	var keys []string
	t.m.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)
	return keys
}

func (t *Table[T]) Len() int {
	n := 0
	t.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Each visits every value in key order
func (t *Table[T]) Each(fn func(key string, v *T)) {
	for _, k := range t.Keys() {
		fn(k, t.Get(k))
	}
}
