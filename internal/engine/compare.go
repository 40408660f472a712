package engine

import (
	"time"

	"github.com/piwi3910/ShapePack/internal/model"
)

// ComparisonScenario defines a named packing configuration to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
	Sheet    model.Sheet
}

// ComparisonResult holds the packing result and timing for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.PackResult
	Elapsed       time.Duration
	PlacedCount   int
	UnplacedCount int
	Efficiency    float64
}

// CompareScenarios packs the same shapes under each scenario, in order.
// Packers never modify their input, so every scenario sees identical shapes.
func CompareScenarios(scenarios []ComparisonScenario, shapes []model.Shape) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		packer := New(scenario.Settings)

		start := time.Now()
		result, err := packer.Pack(scenario.Sheet, shapes)
		elapsed := time.Since(start)
		if err != nil {
			return nil, err
		}

		Logger().Info("scenario packed",
			"scenario", scenario.Name,
			"placed", len(result.Placements),
			"efficiency", result.Efficiency(),
			"elapsed", elapsed)

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			Elapsed:       elapsed,
			PlacedCount:   len(result.Placements),
			UnplacedCount: len(result.NotPlaced),
			Efficiency:    result.Efficiency(),
		})
	}

	return results, nil
}

// BuildDefaultScenarios returns one scenario per algorithm on the given sheet.
func BuildDefaultScenarios(sheet model.Sheet, algorithms []model.Algorithm) []ComparisonScenario {
	scenarios := make([]ComparisonScenario, 0, len(algorithms))
	for _, a := range algorithms {
		scenarios = append(scenarios, ComparisonScenario{
			Name:     a.DisplayName(),
			Settings: model.PackSettings{Algorithm: a},
			Sheet:    sheet,
		})
	}
	return scenarios
}

// Compare runs every algorithm on the same sheet and shapes.
func Compare(sheet model.Sheet, shapes []model.Shape, algorithms []model.Algorithm) ([]ComparisonResult, error) {
	return CompareScenarios(BuildDefaultScenarios(sheet, algorithms), shapes)
}
