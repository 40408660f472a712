package engine

import "github.com/piwi3910/ShapePack/internal/model"

// PackMaxRects places shapes largest side first into a list of maximal free
// rectangles. Each shape takes the first free rectangle, in list order, that
// holds its padded footprint; rectangles try their original orientation
// before the rotated one within each free rectangle.
//
// Triangles and polygons reserve their whole padded bounding box.
func PackMaxRects(sheet model.Sheet, shapes []model.Shape) model.PackResult {
	rec := newRecorder(model.AlgorithmMaxRects, sheet, len(shapes))
	packer := newMaxRectsPacker(sheet)

	for _, s := range sortDescending(shapes, byMaxSide) {
		x, y, rotated, ok := packer.insert(s)
		if ok {
			rec.place(s, x, y, rotated)
		} else {
			rec.reject(s)
		}
	}

	return rec.finish()
}

// maxRectsPacker maintains the free rectangles of one sheet and splits them
// on each insertion.
type maxRectsPacker struct {
	freeRects []rect
	occ       *occupancy
	padding   float64
}

type rect struct {
	x, y, w, h float64
}

func newMaxRectsPacker(sheet model.Sheet) *maxRectsPacker {
	return &maxRectsPacker{
		freeRects: []rect{{0, 0, sheet.Width, sheet.Height}},
		occ:       newOccupancy(sheet),
		padding:   sheet.Padding,
	}
}

// insert tries to place s. Returns the shape origin and rotation on success.
// The free list is untouched when nothing fits.
func (mp *maxRectsPacker) insert(s model.Shape) (float64, float64, bool, bool) {
	pad := mp.padding
	for _, fr := range mp.freeRects {
		for _, o := range orientations(s) {
			fw, fh := o.w+2*pad, o.h+2*pad
			if fr.w < fw || fr.h < fh {
				continue
			}
			x, y := fr.x+pad, fr.y+pad
			box := model.Rect{X: x, Y: y, W: o.w, H: o.h}
			// Cross-check against placed shapes in case the free list drifted.
			if !mp.occ.fits(box) {
				continue
			}
			mp.occ.add(box)
			mp.splitAroundPlacement(rect{x: fr.x, y: fr.y, w: fw, h: fh})
			return x, y, o.rotated, true
		}
	}
	return 0, 0, false, false
}

// splitAroundPlacement replaces every free rect that overlaps the placed rect
// with up to four maximal sub-rects that avoid it, then prunes contained rects.
func (mp *maxRectsPacker) splitAroundPlacement(placed rect) {
	var newRects []rect

	for _, r := range mp.freeRects {
		if !rectsOverlap(r, placed) {
			newRects = append(newRects, r)
			continue
		}

		// Left strip (full height of original rect)
		if placed.x > r.x {
			newRects = append(newRects, rect{
				x: r.x, y: r.y,
				w: placed.x - r.x, h: r.h,
			})
		}
		// Right strip (full height of original rect)
		if placed.x+placed.w < r.x+r.w {
			newRects = append(newRects, rect{
				x: placed.x + placed.w, y: r.y,
				w: (r.x + r.w) - (placed.x + placed.w), h: r.h,
			})
		}
		// Top strip (full width of original rect)
		if placed.y > r.y {
			newRects = append(newRects, rect{
				x: r.x, y: r.y,
				w: r.w, h: placed.y - r.y,
			})
		}
		// Bottom strip (full width of original rect)
		if placed.y+placed.h < r.y+r.h {
			newRects = append(newRects, rect{
				x: r.x, y: placed.y + placed.h,
				w: r.w, h: (r.y + r.h) - (placed.y + placed.h),
			})
		}
	}

	mp.freeRects = pruneContained(newRects)
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// pruneContained removes any rect that is fully contained within another.
// Of several identical rects only the first is kept.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if a == b && j > i {
				continue
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x && outer.y <= inner.y &&
		outer.x+outer.w >= inner.x+inner.w &&
		outer.y+outer.h >= inner.y+inner.h
}
