package engine

import (
	"testing"

	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxRects_SplitLeavesTwoMaximalRects(t *testing.T) {
	mp := newMaxRectsPacker(model.Sheet{Width: 100, Height: 100})

	x, y, rotated, ok := mp.insert(mustRect(t, 1, 50, 50))

	require.True(t, ok)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	assert.False(t, rotated)
	assert.Equal(t, []rect{
		{x: 50, y: 0, w: 50, h: 100},
		{x: 0, y: 50, w: 100, h: 50},
	}, mp.freeRects)
}

func TestMaxRects_FailedInsertKeepsFreeList(t *testing.T) {
	mp := newMaxRectsPacker(model.Sheet{Width: 100, Height: 100})

	_, _, _, ok := mp.insert(mustRect(t, 1, 200, 20))

	assert.False(t, ok)
	assert.Equal(t, []rect{{x: 0, y: 0, w: 100, h: 100}}, mp.freeRects)
}

func TestPackMaxRects_Padding(t *testing.T) {
	sheet := model.Sheet{Width: 100, Height: 100, Padding: 5}
	shapes := []model.Shape{mustRect(t, 1, 40, 40), mustRect(t, 2, 40, 40)}

	result := PackMaxRects(sheet, shapes)

	require.Len(t, result.Placements, 2)
	assert.Equal(t, model.Rect{X: 5, Y: 5, W: 40, H: 40}, result.Placements[0].Bounds())
	assert.Equal(t, model.Rect{X: 55, Y: 5, W: 40, H: 40}, result.Placements[1].Bounds())
	assertValidResult(t, sheet, shapes, result)
}

func TestPackMaxRects_RotatesWhenNeeded(t *testing.T) {
	sheet := model.Sheet{Width: 50, Height: 100}

	result := PackMaxRects(sheet, []model.Shape{mustRect(t, 1, 80, 40)})

	p := requirePlaced(t, result, 1)
	assert.True(t, p.Rotated)
	assert.Equal(t, model.Rect{X: 0, Y: 0, W: 40, H: 80}, p.Bounds())
}

func TestPackMaxRects_FillsSheetExactly(t *testing.T) {
	sheet := model.Sheet{Width: 100, Height: 100}
	shapes := []model.Shape{
		mustRect(t, 1, 50, 50),
		mustRect(t, 2, 50, 50),
		mustRect(t, 3, 50, 50),
		mustRect(t, 4, 50, 50),
	}

	result := PackMaxRects(sheet, shapes)

	require.Len(t, result.Placements, 4)
	assert.Empty(t, result.NotPlaced)
	want := []model.Rect{
		{X: 0, Y: 0, W: 50, H: 50},
		{X: 50, Y: 0, W: 50, H: 50},
		{X: 0, Y: 50, W: 50, H: 50},
		{X: 50, Y: 50, W: 50, H: 50},
	}
	for i, w := range want {
		assert.Equal(t, w, result.Placements[i].Bounds())
	}
	assert.InDelta(t, 100.0, result.Efficiency(), 1e-9)
}

func TestPackMaxRects_PolygonReservesBoundingBox(t *testing.T) {
	lShape := mustPolygon(t, 1, model.Outline{
		{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10},
		{X: 10, Y: 10}, {X: 10, Y: 30}, {X: 0, Y: 30},
	})
	mp := newMaxRectsPacker(model.Sheet{Width: 100, Height: 100})

	_, _, rotated, ok := mp.insert(lShape)

	require.True(t, ok)
	assert.False(t, rotated)
	assert.Equal(t, []rect{
		{x: 30, y: 0, w: 70, h: 100},
		{x: 0, y: 30, w: 100, h: 70},
	}, mp.freeRects)
}

func TestPruneContained(t *testing.T) {
	tests := []struct {
		name  string
		input []rect
		want  []rect
	}{
		{
			name:  "contained rect removed",
			input: []rect{{0, 0, 10, 10}, {0, 0, 20, 20}},
			want:  []rect{{0, 0, 20, 20}},
		},
		{
			name:  "duplicates keep one copy",
			input: []rect{{5, 5, 10, 10}, {5, 5, 10, 10}},
			want:  []rect{{5, 5, 10, 10}},
		},
		{
			name:  "overlapping rects kept",
			input: []rect{{0, 0, 20, 10}, {10, 0, 20, 10}},
			want:  []rect{{0, 0, 20, 10}, {10, 0, 20, 10}},
		},
		{
			name:  "single rect",
			input: []rect{{1, 2, 3, 4}},
			want:  []rect{{1, 2, 3, 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pruneContained(tt.input))
		})
	}
}

func TestRectsOverlap_TouchingIsNotOverlap(t *testing.T) {
	a := rect{0, 0, 10, 10}
	assert.False(t, rectsOverlap(a, rect{10, 0, 10, 10}))
	assert.False(t, rectsOverlap(a, rect{0, 10, 10, 10}))
	assert.True(t, rectsOverlap(a, rect{9, 9, 10, 10}))
}
