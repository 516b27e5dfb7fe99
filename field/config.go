package field

import (
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// Layout selects how initial positions are generated
type Layout uint8

const (
	// LayoutUniform scatters points uniformly over the bounds
	LayoutUniform Layout = iota
	// LayoutRing places point i at angle i/n·2π and a sampled distance from the centre
	LayoutRing
	// LayoutFixed places points on fractional anchors, spilling to uniform when anchors run out
	LayoutFixed
)

// ClassWeight is one weighted class choice
type ClassWeight struct {
	Class  Class
	Weight float64
}

// Config is the immutable motion and appearance setup of a field
type Config struct {
	Motion Motion
	Layout Layout

	Radius Range
	// Velocity is sampled per axis for linear motion
	Velocity Range
	MaxSpeed float64
	// PerturbChance is the per-tick probability of nudging a linear velocity by ±PerturbAmount/2
	PerturbChance float64
	PerturbAmount float64

	// Speed and Spin drive heading and bounce motion
	Speed Range
	Spin  Range

	AngularSpeed   Range
	OrbitAmplitude float64
	// OrbitFrequency is sampled per point and multiplies Time inside the radius oscillation
	OrbitFrequency Range

	RingDistance Range
	// Anchors are fractions of the bounds size
	Anchors []vmath.Vec2

	Palette palette.Palette
	Classes []ClassWeight

	Activity      Range
	ActivityDecay float64

	FollowEase    float64
	FollowEpsilon float64
}
