// Package export renders packing results: placement JSON for other tools,
// PNG layout images, multi-page PDF reports and QR-coded shape labels.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/piwi3910/ShapePack/internal/model"
)

// placementJSON is one element of the placement file. Rotated is only
// written for rectangles.
type placementJSON struct {
	ID      int     `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Rotated *bool   `json:"rotated,omitempty"`
}

// WritePlacementsJSON writes the placed shapes of result, ordered by id, as
// an indented JSON array of {id, x, y, rotated}.
func WritePlacementsJSON(path string, result model.PackResult) error {
	placements := make([]model.Placement, len(result.Placements))
	copy(placements, result.Placements)
	sort.Slice(placements, func(i, j int) bool { return placements[i].Shape.ID() < placements[j].Shape.ID() })

	out := make([]placementJSON, len(placements))
	for i, p := range placements {
		out[i] = placementJSON{ID: p.Shape.ID(), X: p.X, Y: p.Y}
		if p.Shape.Kind() == model.KindRectangle {
			rotated := p.Rotated
			out[i].Rotated = &rotated
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal placements: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write placements: %w", err)
	}
	return nil
}
