// Package page lays out scene containers over the terminal and swaps them as the visitor navigates
package page

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/lixenwraith/luna-scenes/scene"
)

// ErrUnknownPage is returned when switching to a page that is not declared
var ErrUnknownPage = errors.New("unknown page")

// Name identifies a page
type Name string

const (
	Landing     Name = "landing"
	Convergence Name = "convergence"
	Signatures  Name = "signatures"
)

// Box is a rectangle in fractions of the page
type Box struct {
	X, Y, W, H float64
}

// Full covers the whole page, or the whole screen for fixed containers
var Full = Box{0, 0, 1, 1}

// Container is one element a scene mounts into
type Container struct {
	Selector string
	Variant  scene.Variant
	Box      Box
	// Fixed containers are laid out against the screen and ignore scrolling
	Fixed bool
	// Opacity overrides the variant default when positive
	Opacity float64
}

// Page is a scrollable layout of containers
type Page struct {
	Name Name
	// Height is the page height in screens, at least one
	Height     float64
	Containers []Container
}

// Rows returns the page height in rows for a screen of rows rows
func (p Page) Rows(rows int) int {
	return int(math.Round(math.Max(p.Height, 1) * float64(rows)))
}

// rect converts b to cells inside a w×h area, rounding to the nearest cell
func (b Box) rect(w, h int) image.Rectangle {
	x0 := int(b.X*float64(w) + 0.5)
	y0 := int(b.Y*float64(h) + 0.5)
	x1 := int((b.X+b.W)*float64(w) + 0.5)
	y1 := int((b.Y+b.H)*float64(h) + 0.5)
	return image.Rect(x0, y0, x1, y1)
}

// backdrop sits behind every page
var backdrop = Container{Selector: scene.VariantBackdrop.Selector(), Variant: scene.VariantBackdrop, Box: Full, Fixed: true}

// Default returns the three pages of the site
func Default() []Page {
	return []Page{
		{
			Name:   Landing,
			Height: 2,
			Containers: []Container{
				backdrop,
				{Selector: scene.VariantRing.Selector(), Variant: scene.VariantRing, Box: Box{0.25, 0.02, 0.5, 0.46}},
				{Selector: scene.VariantConstellation.Selector(), Variant: scene.VariantConstellation, Box: Box{0, 0.52, 1, 0.46}},
			},
		},
		{
			Name:   Convergence,
			Height: 3,
			Containers: []Container{
				backdrop,
				{Selector: scene.VariantCell.Selector(), Variant: scene.VariantCell, Box: Box{0.04, 0.02, 0.44, 0.28}},
				{Selector: scene.VariantNeural.Selector(), Variant: scene.VariantNeural, Box: Box{0.52, 0.02, 0.44, 0.28}},
				{Selector: scene.VariantNetwork.Selector(), Variant: scene.VariantNetwork, Box: Box{0.04, 0.35, 0.44, 0.28}},
				{Selector: scene.VariantBrain.Selector(), Variant: scene.VariantBrain, Box: Box{0.52, 0.35, 0.44, 0.28}},
				{Selector: scene.VariantAstrorganism.Selector(), Variant: scene.VariantAstrorganism, Box: Box{0.15, 0.68, 0.7, 0.3}},
			},
		},
		{
			Name:   Signatures,
			Height: 1,
			Containers: []Container{
				backdrop,
				{Selector: scene.VariantSignatures.Selector(), Variant: scene.VariantSignatures, Box: Box{0.1, 0.1, 0.8, 0.75}},
			},
		},
	}
}

// Lookup finds name among pages
func Lookup(pages []Page, name Name) (Page, error) {
	for _, p := range pages {
		if p.Name == name {
			return p, nil
		}
	}
	return Page{}, fmt.Errorf("%w: %q", ErrUnknownPage, string(name))
}
