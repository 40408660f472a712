package engine

import (
	"math"

	"github.com/piwi3910/ShapePack/internal/model"
)

// scanStep is the distance between candidate origins in the greedy scan.
const scanStep = 1.0

// PackGreedy places shapes largest side first at the first free position of a
// full-sheet scan. Rows are scanned from the bottom of the sheet upwards and
// each row left to right. Rectangles try their original orientation over the
// whole sheet before the rotated one.
func PackGreedy(sheet model.Sheet, shapes []model.Shape) model.PackResult {
	rec := newRecorder(model.AlgorithmGreedy, sheet, len(shapes))
	occ := newOccupancy(sheet)

	for _, s := range sortDescending(shapes, byMaxSide) {
		placed := false
		for _, o := range orientations(s) {
			x, y, ok := occ.scan(o.w, o.h)
			if !ok {
				continue
			}
			occ.add(model.Rect{X: x, Y: y, W: o.w, H: o.h})
			rec.place(s, x, y, o.rotated)
			placed = true
			break
		}
		if !placed {
			rec.reject(s)
		}
	}

	return rec.finish()
}

// scan returns the first origin, bottom row first and left to right within a
// row, where a w x h box fits. When a candidate is blocked the scan jumps to
// the first grid position past the blocking box; every skipped position
// would have collided with it.
func (o *occupancy) scan(w, h float64) (float64, float64, bool) {
	pad := o.sheet.Padding
	for y := o.sheet.Height - h - pad; y >= pad; y -= scanStep {
		for x := pad; x+w+pad <= o.sheet.Width; {
			b, blocked := o.blocker(model.Rect{X: x, Y: y, W: w, H: h})
			if !blocked {
				return x, y, true
			}
			next := b.X + b.W + pad
			steps := math.Ceil((next - x) / scanStep)
			if steps < 1 {
				steps = 1
			}
			x += steps * scanStep
		}
	}
	return 0, 0, false
}
