package engine

import (
	"testing"

	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackGreedy_BottomRowFirst(t *testing.T) {
	tests := []struct {
		name    string
		padding float64
		want    []model.Rect
	}{
		{"no padding", 0, []model.Rect{{X: 0, Y: 20, W: 10, H: 10}, {X: 10, Y: 20, W: 10, H: 10}}},
		{"padding 2", 2, []model.Rect{{X: 2, Y: 18, W: 10, H: 10}, {X: 14, Y: 18, W: 10, H: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := model.Sheet{Width: 30, Height: 30, Padding: tt.padding}
			shapes := []model.Shape{mustRect(t, 1, 10, 10), mustRect(t, 2, 10, 10)}

			result := PackGreedy(sheet, shapes)

			require.Len(t, result.Placements, 2)
			for i, want := range tt.want {
				assert.Equal(t, want, result.Placements[i].Bounds())
			}
		})
	}
}

func TestPackGreedy_Rotation(t *testing.T) {
	sheet := model.Sheet{Width: 50, Height: 30}

	t.Run("original orientation fits", func(t *testing.T) {
		result := PackGreedy(sheet, []model.Shape{mustRect(t, 1, 40, 10)})
		p := requirePlaced(t, result, 1)
		assert.False(t, p.Rotated)
		assert.Equal(t, 0.0, p.X)
		assert.Equal(t, 20.0, p.Y)
	})

	t.Run("only rotated fits", func(t *testing.T) {
		result := PackGreedy(sheet, []model.Shape{mustRect(t, 1, 10, 40)})
		p := requirePlaced(t, result, 1)
		assert.True(t, p.Rotated)
		assert.Equal(t, 40.0, p.PlacedWidth())
		assert.Equal(t, 10.0, p.PlacedHeight())
		assert.Equal(t, 0.0, p.X)
		assert.Equal(t, 20.0, p.Y)
	})
}

func TestPackGreedy_OriginalOrientationScansWholeSheetFirst(t *testing.T) {
	// The upright 20x10 is found in the top row before the rotated
	// orientation is ever tried next to the first shape.
	sheet := model.Sheet{Width: 40, Height: 20}
	shapes := []model.Shape{mustRect(t, 1, 30, 10), mustRect(t, 2, 20, 10)}

	result := PackGreedy(sheet, shapes)

	p2 := requirePlaced(t, result, 2)
	assert.False(t, p2.Rotated)
	assert.Equal(t, 0.0, p2.X)
	assert.Equal(t, 0.0, p2.Y)
}

// naiveScan is the unoptimised scan: every grid point, no jumps.
func naiveScan(o *occupancy, w, h float64) (float64, float64, bool) {
	pad := o.sheet.Padding
	for y := o.sheet.Height - h - pad; y >= pad; y -= scanStep {
		for x := pad; x+w+pad <= o.sheet.Width; x += scanStep {
			if _, blocked := o.blocker(model.Rect{X: x, Y: y, W: w, H: h}); !blocked {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func TestOccupancyScan_MatchesNaiveScan(t *testing.T) {
	sheet := model.Sheet{Width: 120, Height: 90, Padding: 2}
	occ := newOccupancy(sheet)

	for _, s := range sortDescending(randomShapes(t, 42, 30), byMaxSide) {
		for _, o := range orientations(s) {
			x, y, ok := occ.scan(o.w, o.h)
			nx, ny, nok := naiveScan(occ, o.w, o.h)
			require.Equal(t, nok, ok, "shape %d", s.ID())
			require.Equal(t, nx, x, "shape %d", s.ID())
			require.Equal(t, ny, y, "shape %d", s.ID())
			if ok {
				occ.add(model.Rect{X: x, Y: y, W: o.w, H: o.h})
				break
			}
		}
	}
}

func TestPackGreedy_LargestSideFirst(t *testing.T) {
	sheet := model.Sheet{Width: 100, Height: 100}
	shapes := []model.Shape{mustRect(t, 1, 10, 10), mustCircle(t, 2, 20)}

	result := PackGreedy(sheet, shapes)

	require.Len(t, result.Placements, 2)
	assert.Equal(t, 2, result.Placements[0].Shape.ID())
	assert.Equal(t, model.Rect{X: 0, Y: 60, W: 40, H: 40}, result.Placements[0].Bounds())
}
