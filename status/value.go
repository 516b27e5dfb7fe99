package status

import (
	"math"
	"sync/atomic"
)

// Float is a float64 gauge; the zero value reads 0
type Float struct {
	bits atomic.Uint64
}

func (f *Float) Set(v float64) {
	f.bits.Store(math.Float64bits(v))
}

func (f *Float) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Text is a short label such as the page name or governor mode
type Text struct {
	v atomic.Value
}

func (t *Text) Store(s string) {
	t.v.Store(s)
}

func (t *Text) Load() string {
	s, _ := t.v.Load().(string)
	return s
}
