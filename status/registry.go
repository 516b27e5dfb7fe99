// Package status holds lock-free runtime figures shared by the overlay and the metrics endpoint
package status

import "sync/atomic"

// Registry groups figures by kind
// The frame loop writes; the overlay and the metrics scrape read snapshots from any goroutine
type Registry struct {
	Bools   *Table[atomic.Bool]
	Ints    *Table[atomic.Int64]
	Floats  *Table[Float]
	Strings *Table[Text]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   newTable[atomic.Bool](),
		Ints:    newTable[atomic.Int64](),
		Floats:  newTable[Float](),
		Strings: newTable[Text](),
	}
}

// Snapshot is a point-in-time copy of every figure
type Snapshot struct {
	Bools   map[string]bool
	Ints    map[string]int64
	Floats  map[string]float64
	Strings map[string]string
}

// Snapshot copies all current values
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Bools:   make(map[string]bool),
		Ints:    make(map[string]int64),
		Floats:  make(map[string]float64),
		Strings: make(map[string]string),
	}
	r.Bools.Each(func(k string, v *atomic.Bool) { s.Bools[k] = v.Load() })
	r.Ints.Each(func(k string, v *atomic.Int64) { s.Ints[k] = v.Load() })
	r.Floats.Each(func(k string, v *Float) { s.Floats[k] = v.Get() })
	r.Strings.Each(func(k string, v *Text) { s.Strings[k] = v.Load() })
	return s
}

// Len counts registered figures of every kind
func (r *Registry) Len() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Strings.Len()
}
