// Package report turns packing results into statistics and writes the
// comparison of several algorithm runs as JSON, an Excel workbook or a
// console table.
package report

import (
	"sort"
	"time"

	"github.com/piwi3910/ShapePack/internal/model"
	"gonum.org/v1/gonum/floats"
)

// KindStats summarises the placed shapes of one kind.
type KindStats struct {
	Kind    string  `json:"kind"`
	Count   int     `json:"count"`
	Area    float64 `json:"area"`
	NetArea float64 `json:"netArea"`
}

// Stats describes one packing run.
type Stats struct {
	Algorithm    model.Algorithm  `json:"algorithm"`
	Name         string           `json:"name"`
	Placed       int              `json:"placed"`
	Total        int              `json:"total"`
	UsedArea     float64          `json:"usedArea"`
	NetArea      float64          `json:"netArea"`
	SheetArea    float64          `json:"sheetArea"`
	Percent      float64          `json:"percent"`
	Elapsed      time.Duration    `json:"elapsed"`
	NotPlacedIDs []int            `json:"notPlacedIds"`
	ByKind       []KindStats      `json:"byKind"`
	Result       model.PackResult `json:"-"`
}

// NewStats computes the statistics of result. Used area is the padded area
// of every placed shape, net area the area of the shapes themselves.
func NewStats(result model.PackResult, elapsed time.Duration) Stats {
	areas := make([]float64, len(result.Placements))
	nets := make([]float64, len(result.Placements))
	perKind := make(map[model.Kind][]float64)
	perKindNet := make(map[model.Kind][]float64)
	for i, p := range result.Placements {
		k := p.Shape.Kind()
		areas[i] = model.PaddedArea(p.Shape, result.Sheet.Padding)
		nets[i] = model.NetArea(p.Shape)
		perKind[k] = append(perKind[k], areas[i])
		perKindNet[k] = append(perKindNet[k], nets[i])
	}

	used := floats.Sum(areas)
	sheetArea := result.Sheet.Area()
	percent := 0.0
	if sheetArea > 0 {
		percent = used / sheetArea * 100
	}

	byKind := make([]KindStats, 0, len(perKind))
	for _, k := range model.Kinds {
		a, ok := perKind[k]
		if !ok {
			continue
		}
		byKind = append(byKind, KindStats{
			Kind:    k.String(),
			Count:   len(a),
			Area:    floats.Sum(a),
			NetArea: floats.Sum(perKindNet[k]),
		})
	}

	notPlaced := result.NotPlacedIDs()
	if notPlaced == nil {
		notPlaced = []int{}
	}

	return Stats{
		Algorithm:    result.Algorithm,
		Name:         result.Algorithm.DisplayName(),
		Placed:       len(result.Placements),
		Total:        len(result.Placements) + len(result.NotPlaced),
		UsedArea:     used,
		NetArea:      floats.Sum(nets),
		SheetArea:    sheetArea,
		Percent:      percent,
		Elapsed:      elapsed,
		NotPlacedIDs: notPlaced,
		ByKind:       byKind,
		Result:       result,
	}
}

// sortedPlacements returns the placements ordered by shape id.
func sortedPlacements(result model.PackResult) []model.Placement {
	out := make([]model.Placement, len(result.Placements))
	copy(out, result.Placements)
	sort.Slice(out, func(i, j int) bool { return out[i].Shape.ID() < out[j].Shape.ID() })
	return out
}
