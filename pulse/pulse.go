// Package pulse animates signals travelling along connections
package pulse

import (
	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// progressEpsilon absorbs float accumulation so n steps of 1/n complete on step n
const progressEpsilon = 1e-9

// Pulse is a timed straight-line animation between two coordinates captured at spawn
type Pulse struct {
	ID       uint64
	From, To int
	// Edge is the graph edge the pulse rides, -1 when free-standing
	Edge int

	Start, End vmath.Vec2
	Progress   float64
	Speed      float64
	// Fade multiplies Color.A every step; 0 or 1 disables fading
	Fade  float64
	Color palette.Color
	Size  float64
}

// Position returns the interpolated render position
func (p *Pulse) Position() vmath.Vec2 {
	return vmath.Lerp(p.Start, p.End, vmath.Clamp01(p.Progress))
}

// Step advances progress by speed and reports completion
func (p *Pulse) Step() bool {
	if p.Speed > 0 {
		p.Progress += p.Speed
	}
	if p.Fade > 0 && p.Fade < 1 {
		p.Color.A *= p.Fade
	}
	if p.Progress >= 1-progressEpsilon {
		p.Progress = 1
		return true
	}
	return false
}

// Spec describes a pulse to spawn
type Spec struct {
	Speed float64
	Fade  float64
	Color palette.Color
	Size  float64
}

// ArriveFunc runs after the target's activity was raised to peak
// target is nil when the destination no longer exists
type ArriveFunc func(p Pulse, target *field.Point)

// Tracker owns the in-flight pulses of one scene
type Tracker struct {
	pulses []Pulse
	nextID uint64
	peak   float64
}

// NewTracker creates a tracker that sets arrival activity to peak
func NewTracker(peak float64) *Tracker {
	return &Tracker{peak: peak}
}

// Peak returns the arrival activity level
func (t *Tracker) Peak() float64 {
	return t.peak
}

// Spawn starts a pulse from→to, capturing both current positions
// Returns 0 when either end does not exist
func (t *Tracker) Spawn(f *field.Field, from, to int, s Spec) uint64 {
	src, ok := f.Get(from)
	if !ok {
		return 0
	}
	dst, ok := f.Get(to)
	if !ok {
		return 0
	}
	t.nextID++
	t.pulses = append(t.pulses, Pulse{
		ID:    t.nextID,
		From:  from,
		To:    to,
		Edge:  -1,
		Start: src.Pos,
		End:   dst.Pos,
		Speed: s.Speed,
		Fade:  s.Fade,
		Color: s.Color,
		Size:  s.Size,
	})
	return t.nextID
}

// SpawnOnEdge starts a pulse along edge idx unless one is already riding it
func (t *Tracker) SpawnOnEdge(f *field.Field, g *linker.Graph, idx int, s Spec) uint64 {
	e, ok := g.Edge(idx)
	if !ok || e.Pulse != 0 {
		return 0
	}
	id := t.Spawn(f, e.From, e.To, s)
	if id == 0 {
		return 0
	}
	t.pulses[len(t.pulses)-1].Edge = idx
	e.Pulse = id
	return id
}

// Advance steps every pulse once, removing completed ones
// On completion the target's activity is set to peak and onArrive runs
func (t *Tracker) Advance(f *field.Field, g *linker.Graph, onArrive ArriveFunc) int {
	arrived := 0
	kept := t.pulses[:0]
	for i := range t.pulses {
		p := t.pulses[i]
		if !p.Step() {
			kept = append(kept, p)
			continue
		}
		arrived++

		if g != nil {
			if e, ok := g.Edge(p.Edge); ok && e.Pulse == p.ID {
				e.Pulse = 0
			}
		}
		target, ok := f.Get(p.To)
		if ok {
			target.Activity = t.peak
		} else {
			target = nil
		}
		if onArrive != nil {
			onArrive(p, target)
		}
	}
	clear(t.pulses[len(kept):])
	t.pulses = kept
	return arrived
}

// Active returns the in-flight pulses; the slice is only valid until the next Advance
func (t *Tracker) Active() []Pulse {
	return t.pulses
}

// Len returns the number of in-flight pulses
func (t *Tracker) Len() int {
	return len(t.pulses)
}

// Has reports whether pulse id is still in flight
func (t *Tracker) Has(id uint64) bool {
	for i := range t.pulses {
		if t.pulses[i].ID == id {
			return true
		}
	}
	return false
}

// Reset drops all pulses and frees their edges
func (t *Tracker) Reset(g *linker.Graph) {
	if g != nil {
		for i := range g.Edges {
			g.Edges[i].Pulse = 0
		}
	}
	t.pulses = t.pulses[:0]
}
