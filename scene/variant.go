// Package scene drives one animated point field per page container and the registry that runs them
package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned for variant names and selectors no scene implements
var ErrUnknownVariant = errors.New("unknown scene variant")

// Variant names one scene behaviour
type Variant string

const (
	VariantBackdrop      Variant = "backdrop"
	VariantSignatures    Variant = "signatures"
	VariantCell          Variant = "cell"
	VariantNeural        Variant = "neural"
	VariantNetwork       Variant = "network"
	VariantBrain         Variant = "brain"
	VariantAstrorganism  Variant = "astrorganism"
	VariantConstellation Variant = "constellation"
	VariantRing          Variant = "ring"
)

// variants keeps declaration order for listings
var variants = []Variant{
	VariantBackdrop,
	VariantSignatures,
	VariantCell,
	VariantNeural,
	VariantNetwork,
	VariantBrain,
	VariantAstrorganism,
	VariantConstellation,
	VariantRing,
}

var selectors = map[Variant]string{
	VariantBackdrop:      ".astrorganism-visualization",
	VariantSignatures:    ".signature-canvas",
	VariantCell:          ".cell-simulation",
	VariantNeural:        ".neural-simulation",
	VariantNetwork:       ".network-simulation",
	VariantBrain:         ".brain-simulation",
	VariantAstrorganism:  ".astrorganism-simulation",
	VariantConstellation: ".constellation",
	VariantRing:          ".luna-constellation",
}

// Variants returns every known variant
func Variants() []Variant {
	return append([]Variant(nil), variants...)
}

// Selector returns the container selector the variant attaches to
func (v Variant) Selector() string {
	return selectors[v]
}

// Valid reports whether v names an implemented behaviour
func (v Variant) Valid() bool {
	_, ok := selectors[v]
	return ok
}

// ParseVariant accepts a variant name or its container selector
func ParseVariant(s string) (Variant, error) {
	s = strings.TrimSpace(s)
	if v := Variant(s); v.Valid() {
		return v, nil
	}
	for v, sel := range selectors {
		if sel == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}
