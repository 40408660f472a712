// Package importer reads shape lists from the plain text input format, CSV,
// Excel workbooks and DXF drawings. Every reader collects per-row errors and
// warnings instead of stopping at the first problem, so a caller can show the
// whole list at once.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/ShapePack/internal/model"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrInvalidInput wraps every message reported in ImportResult.Errors.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedFormat is returned by Import for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	// Sheet is set when the source declares the sheet dimensions.
	Sheet    *model.Sheet
	Shapes   []model.Shape
	Errors   []string
	Warnings []string
}

// Err joins the collected error messages into one error, or returns nil.
func (r ImportResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, msg := range r.Errors {
		errs[i] = fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}
	return errors.Join(errs...)
}

// Import reads path with the reader matching its extension. Files without a
// known extension are read as the text format.
func Import(path string) (ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return ImportCSV(path), nil
	case ".xlsx", ".xlsm":
		return ImportExcel(path), nil
	case ".dxf":
		return ImportDXF(path), nil
	case ".txt", ".in", "":
		return ImportText(path), nil
	default:
		return ImportResult{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// sheetKeys are the sheet parameters a row can declare.
var sheetKeys = map[string]bool{"width": true, "height": true, "padding": true}

// rowParser is the shared row logic for the text, CSV and Excel readers.
type rowParser struct {
	result    ImportResult
	rowPrefix string
	sheet     model.Sheet
	declared  map[string]bool
	seenIDs   map[int]int
}

func newRowParser(rowPrefix string, warnings []string) *rowParser {
	return &rowParser{
		result:    ImportResult{Warnings: warnings},
		rowPrefix: rowPrefix,
		declared:  make(map[string]bool),
		seenIDs:   make(map[int]int),
	}
}

// add parses one row. lineNum is 1-based and only used in messages.
func (p *rowParser) add(lineNum int, row []string) {
	row = trimRow(row)
	if len(row) == 0 {
		return
	}
	rowLabel := fmt.Sprintf("%s %d", p.rowPrefix, lineNum)

	key := strings.ToLower(strings.TrimSuffix(row[0], ":"))
	if sheetKeys[key] {
		p.addSheetParam(rowLabel, key, row[1:])
		return
	}

	if _, err := strconv.Atoi(row[0]); err != nil {
		if len(p.result.Shapes) == 0 && len(p.seenIDs) == 0 {
			p.result.Warnings = append(p.result.Warnings, fmt.Sprintf("%s: Detected header row, skipping", rowLabel))
			return
		}
		p.result.Errors = append(p.result.Errors, fmt.Sprintf("%s: Invalid shape id '%s'", rowLabel, row[0]))
		return
	}

	shape, err := parseShapeRow(row)
	if err != nil {
		p.result.Errors = append(p.result.Errors, fmt.Sprintf("%s: %v", rowLabel, err))
		return
	}
	if first, dup := p.seenIDs[shape.ID()]; dup {
		p.result.Errors = append(p.result.Errors,
			fmt.Sprintf("%s: Duplicate shape id %d (first used on %s %d)", rowLabel, shape.ID(), p.rowPrefix, first))
		return
	}
	p.seenIDs[shape.ID()] = lineNum
	p.result.Shapes = append(p.result.Shapes, shape)
}

func (p *rowParser) addSheetParam(rowLabel, key string, rest []string) {
	if len(rest) == 0 {
		p.result.Errors = append(p.result.Errors, fmt.Sprintf("%s: Missing value for %s", rowLabel, key))
		return
	}
	v, err := strconv.ParseFloat(rest[0], 64)
	if err != nil {
		p.result.Errors = append(p.result.Errors, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, key, rest[0]))
		return
	}
	if p.declared[key] {
		p.result.Warnings = append(p.result.Warnings, fmt.Sprintf("%s: %s declared twice, using %g", rowLabel, key, v))
	}
	p.declared[key] = true

	switch key {
	case "width":
		p.sheet.Width = v
	case "height":
		p.sheet.Height = v
	case "padding":
		p.sheet.Padding = v
	}
}

// finish validates the sheet declaration. requireSheet makes a missing
// width or height an error rather than leaving Sheet nil.
func (p *rowParser) finish(requireSheet bool) ImportResult {
	declared := len(p.declared) > 0
	if requireSheet || declared {
		var missing []string
		if !p.declared["width"] {
			missing = append(missing, "Width")
		}
		if !p.declared["height"] {
			missing = append(missing, "Height")
		}
		switch {
		case len(missing) > 0:
			p.result.Errors = append(p.result.Errors,
				fmt.Sprintf("Sheet parameters not found: %s", strings.Join(missing, ", ")))
		default:
			if !p.declared["padding"] {
				p.result.Warnings = append(p.result.Warnings, "No padding declared, using 0")
			}
			if err := p.sheet.Validate(); err != nil {
				p.result.Errors = append(p.result.Errors, err.Error())
			} else {
				sheet := p.sheet
				p.result.Sheet = &sheet
			}
		}
	}

	if len(p.result.Shapes) == 0 && len(p.result.Errors) == 0 {
		p.result.Errors = append(p.result.Errors, "No shapes found")
	}
	return p.result
}

// parseShapeRow builds a shape from `id type params...`.
func parseShapeRow(row []string) (model.Shape, error) {
	if len(row) < 3 {
		return model.Shape{}, fmt.Errorf("expected id, type and parameters, got %d fields", len(row))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return model.Shape{}, fmt.Errorf("invalid shape id '%s'", row[0])
	}
	kind, err := model.ParseKind(row[1])
	if err != nil {
		return model.Shape{}, err
	}

	params := make([]float64, len(row)-2)
	for i, cell := range row[2:] {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return model.Shape{}, fmt.Errorf("invalid %s parameter '%s'", kind, cell)
		}
		params[i] = v
	}

	switch kind {
	case model.KindRectangle:
		if len(params) != 2 {
			return model.Shape{}, fmt.Errorf("rectangle %d needs width and height, got %d values", id, len(params))
		}
		return model.NewRectangle(id, params[0], params[1])
	case model.KindCircle:
		if len(params) != 1 {
			return model.Shape{}, fmt.Errorf("circle %d needs a radius, got %d values", id, len(params))
		}
		return model.NewCircle(id, params[0])
	default:
		if len(params) < 6 || len(params)%2 != 0 {
			return model.Shape{}, fmt.Errorf("invalid number of coordinates for %s %d: %d", kind, id, len(params))
		}
		vertices := make(model.Outline, 0, len(params)/2)
		for i := 0; i < len(params); i += 2 {
			vertices = append(vertices, model.Point2D{X: params[i], Y: params[i+1]})
		}
		if kind == model.KindTriangle {
			return model.NewTriangle(id, vertices)
		}
		return model.NewPolygon(id, vertices)
	}
}

// trimRow trims every cell and drops trailing empty cells.
func trimRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// splitTextLine tokenizes a line of the text format. `Key: value` lines split
// on the colon; everything else splits on whitespace.
func splitTextLine(line string) []string {
	if key, value, ok := strings.Cut(line, ":"); ok {
		return []string{strings.TrimSpace(key), strings.TrimSpace(value)}
	}
	return strings.Fields(line)
}

// ImportText reads the plain text input format: sheet width, height and
// padding lines, a header line, then one shape per line.
func ImportText(path string) ImportResult {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer f.Close()
	return ImportTextFromReader(f)
}

// ImportTextFromReader reads the text format from r.
func ImportTextFromReader(r io.Reader) ImportResult {
	p := newRowParser("Line", nil)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p.add(lineNum, splitTextLine(line))
	}
	if err := scanner.Err(); err != nil {
		p.result.Errors = append(p.result.Errors, fmt.Sprintf("Cannot read input: %v", err))
		return p.result
	}

	if lineNum == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return p.finish(true)
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Shape rows vary in length, so score rows with at least two columns.
		multi := 0
		columns := 0
		for _, row := range records {
			if len(row) >= 2 {
				multi++
				columns += len(row)
			}
		}
		if multi == 0 {
			continue
		}

		weighted := multi*10 + columns/multi
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// ImportCSV imports shapes from a CSV file, detecting the delimiter.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return importCSV(bytes.NewReader(data), delimiter, warnings)
}

// ImportCSVFromReader imports shapes from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	return importCSV(reader, delimiter, nil)
}

func importCSV(r io.Reader, delimiter rune, warnings []string) ImportResult {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Warnings: warnings, Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}

	if len(records) == 0 {
		return ImportResult{Warnings: warnings, Errors: []string{"File is empty"}}
	}

	return importFromRows(records, "Line", warnings)
}

// ImportExcel imports shapes from the first worksheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}

	if len(rows) == 0 {
		return ImportResult{Errors: []string{"Sheet is empty"}}
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, warnings []string) ImportResult {
	p := newRowParser(rowPrefix, warnings)
	for i, row := range rows {
		p.add(i+1, row)
	}
	return p.finish(false)
}
