package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/ShapePack/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestResult(t, model.AlgorithmMaxRects)); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no_placements.pdf")

	result := model.PackResult{Algorithm: model.AlgorithmShelf, Sheet: model.Sheet{Width: 10, Height: 10}}
	if err := ExportLabels(path, result); err == nil {
		t.Fatal("expected error for result with no placements, got nil")
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	var shapes []model.Shape
	for i := 1; i <= 35; i++ {
		s, err := model.NewCircle(i, 2)
		if err != nil {
			t.Fatal(err)
		}
		shapes = append(shapes, s)
	}
	result := model.PackResult{Algorithm: model.AlgorithmGreedy, Sheet: model.Sheet{Width: 100, Height: 100}}
	for i, s := range shapes {
		result.Placements = append(result.Placements, model.Placement{Shape: s, X: float64(i%20) * 5, Y: float64(i/20) * 5})
	}

	path := filepath.Join(t.TempDir(), "many.pdf")
	if err := ExportLabels(path, result); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
}

func TestCollectLabelInfos(t *testing.T) {
	rect, err := model.NewRectangle(7, 30, 10)
	if err != nil {
		t.Fatal(err)
	}
	result := model.PackResult{
		Algorithm:  model.AlgorithmMaxRects,
		Sheet:      model.Sheet{Width: 100, Height: 100},
		Placements: []model.Placement{{Shape: rect, X: 4, Y: 5, Rotated: true}},
	}

	labels := CollectLabelInfos(result)

	if len(labels) != 1 {
		t.Fatalf("expected 1 label, got %d", len(labels))
	}
	l := labels[0]
	if l.ID != 7 || l.Kind != "rectangle" || l.Algorithm != "MaxRects" {
		t.Errorf("unexpected label identity: %+v", l)
	}
	if l.Width != 10 || l.Height != 30 {
		t.Errorf("rotated label should report placed size 10x30, got %gx%g", l.Width, l.Height)
	}
	if !l.Rotated || l.X != 4 || l.Y != 5 {
		t.Errorf("unexpected position: %+v", l)
	}
}
