package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// WriteExcel writes the comparison as a workbook: a summary sheet with one
// row per algorithm and a per-kind breakdown, then one placement sheet per
// algorithm.
func (c *Comparison) WriteExcel(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Run", c.RunID, "Sheet", fmt.Sprintf("%g x %g", c.Sheet.Width, c.Sheet.Height), "Padding", c.Sheet.Padding},
		{},
		{"Algorithm", "Placed", "Total", "Fill %", "Used area", "Net area", "Time (s)", "Not placed IDs"},
	}
	for _, e := range c.Entries {
		rows = append(rows, []interface{}{
			e.Name, e.Placed, e.Total, e.Percent, e.UsedArea, e.NetArea, e.Elapsed.Seconds(), formatIDs(e.NotPlacedIDs),
		})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Algorithm", "Kind", "Count", "Area", "Net area"})
	for _, e := range c.Entries {
		for _, k := range e.ByKind {
			rows = append(rows, []interface{}{e.Name, k.Kind, k.Count, k.Area, k.NetArea})
		}
	}
	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}

	for _, e := range c.Entries {
		name := e.Name
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
		placements := [][]interface{}{{"ID", "Kind", "X", "Y", "Width", "Height", "Rotated"}}
		for _, p := range sortedPlacements(e.Result) {
			placements = append(placements, []interface{}{
				p.Shape.ID(), p.Shape.Kind().String(), p.X, p.Y, p.PlacedWidth(), p.PlacedHeight(), p.Rotated,
			})
		}
		if err := writeRows(f, name, placements); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
