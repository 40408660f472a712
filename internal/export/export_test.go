package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShapePack/internal/engine"
	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestResult packs one shape of every kind plus one that cannot fit.
func buildTestResult(t *testing.T, algo model.Algorithm) model.PackResult {
	t.Helper()
	rect, err := model.NewRectangle(1, 80, 30)
	require.NoError(t, err)
	circle, err := model.NewCircle(2, 15)
	require.NoError(t, err)
	tri, err := model.NewTriangle(3, model.Outline{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 20, Y: 30}})
	require.NoError(t, err)
	poly, err := model.NewPolygon(4, model.Outline{
		{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 30}, {X: 0, Y: 30},
	})
	require.NoError(t, err)
	huge, err := model.NewRectangle(5, 1000, 1000)
	require.NoError(t, err)

	result, err := engine.New(model.PackSettings{Algorithm: algo}).Pack(
		model.Sheet{Width: 200, Height: 120, Padding: 2},
		[]model.Shape{rect, circle, tri, poly, huge})
	require.NoError(t, err)
	require.Len(t, result.Placements, 4)
	return result
}

func TestWritePlacementsJSON(t *testing.T) {
	result := buildTestResult(t, model.AlgorithmMaxRects)
	path := filepath.Join(t.TempDir(), "output_maxrects.json")

	require.NoError(t, WritePlacementsJSON(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 4)

	for i, e := range entries {
		assert.Equal(t, float64(i+1), e["id"], "entries are ordered by id")
		assert.Contains(t, e, "x")
		assert.Contains(t, e, "y")
	}
	assert.Contains(t, entries[0], "rotated", "rectangles carry rotated")
	for _, e := range entries[1:] {
		assert.NotContains(t, e, "rotated")
	}

	p, ok := result.Placed(1)
	require.True(t, ok)
	assert.Equal(t, p.X, entries[0]["x"])
	assert.Equal(t, p.Rotated, entries[0]["rotated"])
}

func TestWritePlacementsJSON_NothingPlaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WritePlacementsJSON(path, model.PackResult{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
