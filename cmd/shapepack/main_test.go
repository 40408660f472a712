package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/ShapePack/internal/engine"
	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/piwi3910/ShapePack/internal/project"
	"github.com/piwi3910/ShapePack/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInput = `Width: 120
Height: 80
Padding: 2
ID Type Params
1 rectangle 50 30
2 circle 12
3 triangle 0 0 30 0 15 20
4 rectangle 500 10
`

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(testInput), 0644))
	return path
}

func TestRun_WritesOutputs(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	out := filepath.Join(dir, "out")
	cfgPath := filepath.Join(dir, "config.json")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", cfgPath, "-out", out, "-png", "-pdf", "-xlsx", "-labels", input}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	for _, name := range []string{
		"comparison_results.json",
		"output_shelf.json", "output_greedy.json", "output_maxrects.json",
		"layout_shelf.png", "layout_greedy.png", "layout_maxrects.png",
		"report.pdf", "comparison.xlsx",
	} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
	labels, err := filepath.Glob(filepath.Join(out, "labels_*.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(out, "labels_maxrects.pdf")}, labels,
		"labels follow the default algorithm")

	data, err := os.ReadFile(filepath.Join(out, "comparison_results.json"))
	require.NoError(t, err)
	var entries []struct {
		Algorithm    string
		Placed       int
		NotPlacedIDs []int
	}
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, 3, e.Placed, e.Algorithm)
		assert.Equal(t, []int{4}, e.NotPlacedIDs, e.Algorithm)
	}

	assert.True(t, strings.Contains(stdout.String(), "MaxRects"), stdout.String())
	assert.Contains(t, stdout.String(), "Best: ")

	cfg, err := project.LoadAppConfig(cfgPath)
	require.NoError(t, err)
	require.Len(t, cfg.RecentInputs, 1)
	assert.Equal(t, input, cfg.RecentInputs[0])
	assert.False(t, cfg.WritePDF, "flags are not persisted")
}

func TestRun_AlgorithmSubsetAndSheetOverride(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-config", filepath.Join(dir, "config.json"), "-out", out,
		"-algo", "greedy", "-width", "600", "-png=false", input,
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	_, err = os.Stat(filepath.Join(out, "output_greedy.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "output_shelf.json"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "layout_greedy.png"))
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(out, "comparison_results.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Placed": 4`, "wider sheet fits the long rectangle")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	var stdout, stderr bytes.Buffer

	err := run([]string{"-config", cfgPath}, &stdout, &stderr)
	assert.Error(t, err, "missing input")

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("Width: 10\nHeight: 10\nPadding: 0\nh\n1 hexagon 3\n"), 0644))
	err = run([]string{"-config", cfgPath, "-out", dir, bad}, &stdout, &stderr)
	assert.ErrorContains(t, err, "unsupported shape type")

	err = run([]string{"-config", cfgPath, "-algo", "skyline", writeInput(t, dir)}, &stdout, &stderr)
	assert.ErrorContains(t, err, "skyline")

	err = run([]string{"-config", cfgPath, "-log-level", "loud", writeInput(t, dir)}, &stdout, &stderr)
	assert.ErrorContains(t, err, "invalid log level")
}

func TestResolveSheet(t *testing.T) {
	cfg := model.DefaultAppConfig()
	declared := &model.Sheet{Width: 50, Height: 40, Padding: 1}

	assert.Equal(t, *declared, resolveSheet(declared, cfg, options{}))
	assert.Equal(t, cfg.DefaultSheet(), resolveSheet(nil, cfg, options{}))

	o := options{padding: 3, set: map[string]bool{"padding": true}}
	assert.Equal(t, model.Sheet{Width: 50, Height: 40, Padding: 3}, resolveSheet(declared, cfg, o))
}

func TestRun_LabelsUseConfiguredDefaultAlgorithm(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	out := filepath.Join(dir, "out")
	cfgPath := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultAlgorithm = model.AlgorithmShelf
	cfg.WritePNG = false
	require.NoError(t, project.SaveAppConfig(cfgPath, cfg))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", cfgPath, "-out", out, "-algo", "greedy", "-labels", input}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	_, err = os.Stat(filepath.Join(out, "labels_shelf.pdf"))
	assert.NoError(t, err, "shelf is packed for labels even though only greedy is compared")
	_, err = os.Stat(filepath.Join(out, "labels_greedy.pdf"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(out, "output_shelf.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_DuplicateAlgorithmsRunOnce(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-config", filepath.Join(dir, "config.json"), "-out", out,
		"-algo", "shelf,greedy,SHELF", input,
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	data, err := os.ReadFile(filepath.Join(out, "comparison_results.json"))
	require.NoError(t, err)
	var entries []struct{ Algorithm string }
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Shelf", entries[0].Algorithm)
	assert.Equal(t, "Greedy", entries[1].Algorithm)
}

func TestLabelRun(t *testing.T) {
	sheet := model.Sheet{Width: 120, Height: 80, Padding: 2}
	a, err := model.NewRectangle(1, 50, 30)
	require.NoError(t, err)
	b, err := model.NewCircle(2, 12)
	require.NoError(t, err)
	shapes := []model.Shape{a, b}

	results, err := engine.Compare(sheet, shapes, []model.Algorithm{model.AlgorithmGreedy})
	require.NoError(t, err)
	comparison := report.NewComparison(sheet, results)

	cfg := model.DefaultAppConfig()

	cfg.DefaultAlgorithm = model.AlgorithmGreedy
	got, err := labelRun(cfg, comparison, sheet, shapes)
	require.NoError(t, err)
	assert.Equal(t, results[0].Result.Placements, got.Placements, "reuses the compared run")

	cfg.DefaultAlgorithm = model.AlgorithmShelf
	got, err = labelRun(cfg, comparison, sheet, shapes)
	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmShelf, got.Algorithm)
	assert.Equal(t, engine.PackShelf(sheet, shapes).Placements, got.Placements)

	cfg.DefaultAlgorithm = ""
	got, err = labelRun(cfg, comparison, sheet, shapes)
	require.NoError(t, err)
	assert.Equal(t, model.AlgorithmGreedy, got.Algorithm, "best run when no default is set")
}

func TestParseAlgorithms(t *testing.T) {
	algos, err := parseAlgorithms("maxrects, shelf")
	require.NoError(t, err)
	assert.Equal(t, []model.Algorithm{model.AlgorithmMaxRects, model.AlgorithmShelf}, algos)

	algos, err = parseAlgorithms("greedy,shelf,greedy")
	require.NoError(t, err)
	assert.Equal(t, []model.Algorithm{model.AlgorithmGreedy, model.AlgorithmShelf}, algos)

	_, err = parseAlgorithms(" , ")
	assert.Error(t, err)
}
