// Package field owns the animated points of one scene and advances them per tick
package field

import (
	"math/rand"

	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// Motion selects the per-tick motion rule of a point
type Motion uint8

const (
	// MotionStatic points never move
	MotionStatic Motion = iota
	// MotionLinear adds velocity and wraps at the edges
	MotionLinear
	// MotionHeading steers by a spinning heading and reflects on the outer edges
	MotionHeading
	// MotionBounce moves along a heading and reflects on bounds inset by the radius
	MotionBounce
	// MotionOrbital circles the field centre with an oscillating radius
	MotionOrbital
	// MotionFollow eases towards Target and parks once close enough
	MotionFollow
)

var motionNames = [...]string{"static", "linear", "heading", "bounce", "orbital", "follow"}

func (m Motion) String() string {
	if int(m) < len(motionNames) {
		return motionNames[m]
	}
	return "unknown"
}

// Kind tags points with a role that changes rendering and linking
type Kind uint8

const (
	KindOrdinary Kind = iota
	// KindUser follows the pointer
	KindUser
	// KindSignature belongs to a named contributor
	KindSignature
	// KindHub is the broadcasting centre of a network
	KindHub
)

// Class is the cosmetic type used by the astrorganism simulation
type Class uint8

const (
	ClassNone Class = iota
	ClassOrganic
	ClassDigital
	ClassIntegrated
)

var classNames = [...]string{"none", "organic", "digital", "integrated"}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// ParseClass maps a config name to a Class
func ParseClass(s string) (Class, bool) {
	for i, n := range classNames {
		if n == s {
			return Class(i), true
		}
	}
	return ClassNone, false
}

// Orbit holds polar motion parameters around the field centre
type Orbit struct {
	Angle        float64
	AngularSpeed float64
	Radius       float64
	Frequency    float64
	Phase        float64
}

// Signal is an expanding ring emitted by a point
type Signal struct {
	Active   bool
	Radius   float64
	Strength float64
}

// Point is one animated node
// ID equals the point's index in its field and never changes
type Point struct {
	ID     int
	Kind   Kind
	Motion Motion
	Class  Class
	Label  string

	Pos     vmath.Vec2
	Vel     vmath.Vec2
	Heading float64
	Speed   float64
	Spin    float64
	Orbit   Orbit

	Target    vmath.Vec2
	Following bool

	Base   palette.Color
	Color  palette.Color
	Radius float64

	Activity float64
	Signal   Signal

	// Links is the ordered adjacency list; entries may repeat
	Links []int
}

// Special reports whether the point has a non-ordinary role
func (p *Point) Special() bool {
	return p.Kind != KindOrdinary
}

// HasLink reports whether id is already in the adjacency list
func (p *Point) HasLink(id int) bool {
	for _, l := range p.Links {
		if l == id {
			return true
		}
	}
	return false
}

// Range is a closed float interval sampled uniformly
type Range struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// Sample draws from the range; a degenerate range returns Min
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// IntRange is a closed integer interval sampled uniformly
type IntRange struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

// Sample draws from the range; a degenerate range returns Min
func (r IntRange) Sample(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}
