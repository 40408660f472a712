package export

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderImage_Size(t *testing.T) {
	result := buildTestResult(t, model.AlgorithmShelf)

	img, err := RenderImage(result, PNGOptions{Scale: 2})
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestRenderImage_FillsShapes(t *testing.T) {
	rect, err := model.NewRectangle(1, 40, 40)
	require.NoError(t, err)
	result := model.PackResult{
		Algorithm:  model.AlgorithmShelf,
		Sheet:      model.Sheet{Width: 100, Height: 100},
		Placements: []model.Placement{{Shape: rect, X: 10, Y: 10}},
	}

	img, err := RenderImage(result, DefaultPNGOptions())
	require.NoError(t, err)

	want := kindColor(model.KindRectangle)
	got := img.RGBAAt(15, 45)
	assert.Equal(t, want, got, "inside the rectangle, away from the label")
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, img.RGBAAt(80, 80), "empty sheet stays white")
	assert.Equal(t, borderColor, img.RGBAAt(0, 50))
}

func TestRenderImage_Errors(t *testing.T) {
	_, err := RenderImage(model.PackResult{Sheet: model.Sheet{Width: 10, Height: 10}}, PNGOptions{Scale: 0})
	assert.Error(t, err)

	_, err = RenderImage(model.PackResult{}, DefaultPNGOptions())
	assert.ErrorIs(t, err, model.ErrInvalidSheet)
}

func TestRenderPNG_WritesDecodableFile(t *testing.T) {
	result := buildTestResult(t, model.AlgorithmGreedy)
	path := filepath.Join(t.TempDir(), "layout_greedy.png")

	require.NoError(t, RenderPNG(path, result, DefaultPNGOptions()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}
