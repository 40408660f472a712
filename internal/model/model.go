package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSheet is returned when sheet dimensions or padding are out of range.
var ErrInvalidSheet = errors.New("invalid sheet")

// Sheet is the rectangular stock that shapes are packed onto.
type Sheet struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"` // Clearance between shapes and from every sheet edge
}

// Validate checks that the sheet has a positive size and non-negative padding.
func (s Sheet) Validate() error {
	if !isFinite(s.Width) || !isFinite(s.Height) || s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %gx%g", ErrInvalidSheet, s.Width, s.Height)
	}
	if !isFinite(s.Padding) || s.Padding < 0 {
		return fmt.Errorf("%w: padding must be non-negative, got %g", ErrInvalidSheet, s.Padding)
	}
	return nil
}

// Area returns the raw sheet area.
func (s Sheet) Area() float64 {
	return s.Width * s.Height
}

// Algorithm names a packing strategy.
type Algorithm string

const (
	AlgorithmShelf    Algorithm = "shelf"    // Row-based shelf packing (fastest)
	AlgorithmGreedy   Algorithm = "greedy"   // Full-sheet scan with rotation
	AlgorithmMaxRects Algorithm = "maxrects" // Maximal free rectangles (usually densest)
)

// Algorithms lists every strategy in comparison order.
var Algorithms = []Algorithm{AlgorithmShelf, AlgorithmGreedy, AlgorithmMaxRects}

// DisplayName returns the label used in comparison tables.
func (a Algorithm) DisplayName() string {
	switch a {
	case AlgorithmShelf:
		return "Shelf"
	case AlgorithmGreedy:
		return "Greedy"
	case AlgorithmMaxRects:
		return "MaxRects"
	default:
		return string(a)
	}
}

// ParseAlgorithm converts a case-insensitive name into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Algorithms {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown algorithm %q", s)
}

// UniqueAlgorithms returns algos without repeats, keeping first occurrences.
func UniqueAlgorithms(algos []Algorithm) []Algorithm {
	seen := make(map[Algorithm]bool, len(algos))
	out := make([]Algorithm, 0, len(algos))
	for _, a := range algos {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// PackSettings holds the packing configuration for one run.
type PackSettings struct {
	Algorithm Algorithm `json:"algorithm"`
}

// DefaultSettings returns settings that select the maximal-rectangles packer.
func DefaultSettings() PackSettings {
	return PackSettings{Algorithm: AlgorithmMaxRects}
}

// Placement represents a single shape placed on the sheet.
type Placement struct {
	Shape   Shape   `json:"-"`
	X       float64 `json:"x"`       // Left edge of the bounding box
	Y       float64 `json:"y"`       // Top edge of the bounding box
	Rotated bool    `json:"rotated"` // Whether a rectangle was rotated 90 degrees
}

// PlacedWidth returns the effective width considering rotation.
func (p Placement) PlacedWidth() float64 {
	if p.Rotated {
		return p.Shape.Height()
	}
	return p.Shape.Width()
}

// PlacedHeight returns the effective height considering rotation.
func (p Placement) PlacedHeight() float64 {
	if p.Rotated {
		return p.Shape.Width()
	}
	return p.Shape.Height()
}

// Bounds returns the placed bounding box.
func (p Placement) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.PlacedWidth(), H: p.PlacedHeight()}
}

// PackResult holds the outcome of one packing run.
type PackResult struct {
	Algorithm  Algorithm   `json:"algorithm"`
	Sheet      Sheet       `json:"sheet"`
	Placements []Placement `json:"placements"`
	NotPlaced  []Shape     `json:"-"`
}

// Placed returns the placement for a shape id.
func (r PackResult) Placed(id int) (Placement, bool) {
	for _, p := range r.Placements {
		if p.Shape.ID() == id {
			return p, true
		}
	}
	return Placement{}, false
}

// NotPlacedIDs returns the ids of shapes that did not fit, in processing order.
func (r PackResult) NotPlacedIDs() []int {
	ids := make([]int, 0, len(r.NotPlaced))
	for _, s := range r.NotPlaced {
		ids = append(ids, s.ID())
	}
	return ids
}

// UsedArea returns the padded area of all placed shapes as defined by PaddedArea.
func (r PackResult) UsedArea() float64 {
	var total float64
	for _, p := range r.Placements {
		total += PaddedArea(p.Shape, r.Sheet.Padding)
	}
	return total
}

// NetArea returns the unpadded area of all placed shapes.
func (r PackResult) NetArea() float64 {
	var total float64
	for _, p := range r.Placements {
		total += NetArea(p.Shape)
	}
	return total
}

// Efficiency returns the fill percentage of the sheet.
func (r PackResult) Efficiency() float64 {
	ta := r.Sheet.Area()
	if ta == 0 {
		return 0
	}
	return (r.UsedArea() / ta) * 100.0
}
