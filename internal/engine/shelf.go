package engine

import "github.com/piwi3910/ShapePack/internal/model"

// PackShelf places shapes left to right in rows, tallest first. A shape that
// does not fit the current row opens a new one below it; a shape that then
// does not fit the remaining height is skipped. Rows are never revisited and
// nothing is rotated.
func PackShelf(sheet model.Sheet, shapes []model.Shape) model.PackResult {
	rec := newRecorder(model.AlgorithmShelf, sheet, len(shapes))
	pad := sheet.Padding

	x, y := pad, pad
	rowHeight := 0.0

	for _, s := range sortDescending(shapes, byHeight) {
		w, h := s.Width(), s.Height()

		// Wider than an empty row: no row can ever take it.
		if pad+w+pad > sheet.Width {
			rec.reject(s)
			continue
		}

		if x+w+pad > sheet.Width {
			x = pad
			y += rowHeight + pad
			rowHeight = 0
		}

		if y+h+pad > sheet.Height {
			rec.reject(s)
			continue
		}

		rec.place(s, x, y, false)
		x += w + pad
		if h > rowHeight {
			rowHeight = h
		}
	}

	return rec.finish()
}
