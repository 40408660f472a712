// Package engine implements the sheet packing strategies: shelf, greedy and
// maximal rectangles. Every strategy is a pure function of the sheet and the
// shape list; input shapes are never modified.
package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/piwi3910/ShapePack/internal/model"
)

var (
	// ErrUnknownAlgorithm is returned by Pack for an algorithm it does not implement.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	// ErrDuplicateID is returned by Pack when two shapes share an id.
	ErrDuplicateID = errors.New("duplicate shape id")
)

// Packer runs the configured packing strategy.
type Packer struct {
	Settings model.PackSettings
}

func New(settings model.PackSettings) *Packer {
	return &Packer{Settings: settings}
}

// Pack validates the input and runs the configured algorithm. Shapes that do
// not fit end up in NotPlaced; that is not an error.
func (p *Packer) Pack(sheet model.Sheet, shapes []model.Shape) (model.PackResult, error) {
	if err := sheet.Validate(); err != nil {
		return model.PackResult{}, err
	}
	if err := checkUniqueIDs(shapes); err != nil {
		return model.PackResult{}, err
	}

	switch p.Settings.Algorithm {
	case model.AlgorithmShelf:
		return PackShelf(sheet, shapes), nil
	case model.AlgorithmGreedy:
		return PackGreedy(sheet, shapes), nil
	case model.AlgorithmMaxRects:
		return PackMaxRects(sheet, shapes), nil
	default:
		return model.PackResult{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, p.Settings.Algorithm)
	}
}

func checkUniqueIDs(shapes []model.Shape) error {
	seen := make(map[int]bool, len(shapes))
	for _, s := range shapes {
		if seen[s.ID()] {
			return fmt.Errorf("%w: %d", ErrDuplicateID, s.ID())
		}
		seen[s.ID()] = true
	}
	return nil
}

// sortDescending returns a copy of shapes ordered by key, largest first.
// Equal keys keep their input order.
func sortDescending(shapes []model.Shape, key func(model.Shape) float64) []model.Shape {
	sorted := make([]model.Shape, len(shapes))
	copy(sorted, shapes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	return sorted
}

func byHeight(s model.Shape) float64  { return s.Height() }
func byMaxSide(s model.Shape) float64 { return s.MaxSide() }

// orientation is one candidate footprint of a shape.
type orientation struct {
	w, h    float64
	rotated bool
}

// orientations returns the footprints to try, original first. Only
// non-square rectangles get a rotated candidate.
func orientations(s model.Shape) []orientation {
	o := []orientation{{w: s.Width(), h: s.Height()}}
	if s.CanRotate() {
		o = append(o, orientation{w: s.Height(), h: s.Width(), rotated: true})
	}
	return o
}

// occupancy tracks the bounding boxes placed so far on one sheet.
type occupancy struct {
	sheet model.Sheet
	boxes []model.Rect
}

func newOccupancy(sheet model.Sheet) *occupancy {
	return &occupancy{sheet: sheet}
}

// blocker returns the first placed box that r comes closer than the padding to.
func (o *occupancy) blocker(r model.Rect) (model.Rect, bool) {
	for _, b := range o.boxes {
		if model.PaddedOverlap(r, b, o.sheet.Padding) {
			return b, true
		}
	}
	return model.Rect{}, false
}

// fits reports whether r stays inside the padded sheet and clear of every placed box.
func (o *occupancy) fits(r model.Rect) bool {
	if !model.InsideSheet(r, o.sheet.Width, o.sheet.Height, o.sheet.Padding) {
		return false
	}
	_, blocked := o.blocker(r)
	return !blocked
}

func (o *occupancy) add(r model.Rect) {
	o.boxes = append(o.boxes, r)
}

// recorder accumulates placements and failures for one run and logs them.
type recorder struct {
	result model.PackResult
}

func newRecorder(algorithm model.Algorithm, sheet model.Sheet, n int) *recorder {
	return &recorder{result: model.PackResult{
		Algorithm:  algorithm,
		Sheet:      sheet,
		Placements: make([]model.Placement, 0, n),
		NotPlaced:  []model.Shape{},
	}}
}

func (r *recorder) place(s model.Shape, x, y float64, rotated bool) {
	r.result.Placements = append(r.result.Placements, model.Placement{Shape: s, X: x, Y: y, Rotated: rotated})
	Logger().Debug("shape placed",
		"algorithm", r.result.Algorithm, "id", s.ID(), "kind", s.Kind().String(),
		"x", x, "y", y, "rotated", rotated)
}

func (r *recorder) reject(s model.Shape) {
	r.result.NotPlaced = append(r.result.NotPlaced, s)
	Logger().Debug("shape not placed",
		"algorithm", r.result.Algorithm, "id", s.ID(), "kind", s.Kind().String(),
		"width", s.Width(), "height", s.Height())
}

func (r *recorder) finish() model.PackResult {
	Logger().Info("packing run complete",
		"algorithm", r.result.Algorithm,
		"placed", len(r.result.Placements),
		"not_placed", len(r.result.NotPlaced))
	return r.result
}
