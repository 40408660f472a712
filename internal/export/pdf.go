package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/ShapePack/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document with one layout page per packing run,
// followed by a summary page comparing the runs.
func ExportPDF(path string, results []model.PackResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, result := range results {
		if err := result.Sheet.Validate(); err != nil {
			return fmt.Errorf("%s: %w", result.Algorithm.DisplayName(), err)
		}
		pdf.AddPage()
		renderLayoutPage(pdf, result)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, results)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws a single packing result on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, result model.PackResult) {
	sheet := result.Sheet

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%g x %g, padding %g)", result.Algorithm.DisplayName(), sheet.Width, sheet.Height, sheet.Padding)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Placed: %d of %d | Used area: %.0f | Sheet area: %.0f | Fill: %.1f%%",
		len(result.Placements), len(result.Placements)+len(result.NotPlaced),
		result.UsedArea(), sheet.Area(), result.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/sheet.Width, drawHeight/sheet.Height)
	canvasW := sheet.Width * scale
	canvasH := sheet.Height * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background
	pdf.SetFillColor(245, 245, 240)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawPaddingMargin(pdf, sheet, scale, offsetX, offsetY)

	// Padded footprints
	if sheet.Padding > 0 {
		pdf.SetDrawColor(170, 170, 170)
		pdf.SetLineWidth(0.1)
		pdf.SetDashPattern([]float64{0.8, 0.8}, 0)
		for _, p := range result.Placements {
			b := paddedBox(p, sheet.Padding)
			pdf.Rect(offsetX+b.X*scale, offsetY+b.Y*scale, b.W*scale, b.H*scale, "D")
		}
		pdf.SetDashPattern([]float64{}, 0)
	}

	// Placed shapes
	for _, p := range result.Placements {
		col := kindColor(p.Shape.Kind())
		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		drawShape(pdf, p, scale, offsetX, offsetY)

		b := p.Bounds()
		if b.W*scale > 5 && b.H*scale > 4 {
			anchor := labelAnchor(placedOutline(p))
			label := strconv.Itoa(p.Shape.ID())
			pdf.SetFont("Helvetica", "", labelFontSize(b.W*scale, b.H*scale))
			pdf.SetTextColor(0, 0, 0)
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(offsetX+anchor.X*scale-labelW/2, offsetY+anchor.Y*scale-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}

	drawDimensionAnnotations(pdf, sheet, offsetX, offsetY, canvasW, canvasH)
	drawShapeLegend(pdf, result, offsetY+canvasH+5)
}

// drawShape fills and outlines one placed shape.
func drawShape(pdf *fpdf.Fpdf, p model.Placement, scale, offsetX, offsetY float64) {
	switch p.Shape.Kind() {
	case model.KindRectangle:
		pdf.Rect(offsetX+p.X*scale, offsetY+p.Y*scale, p.PlacedWidth()*scale, p.PlacedHeight()*scale, "FD")
	case model.KindCircle:
		r := p.Shape.Radius()
		pdf.Circle(offsetX+(p.X+r)*scale, offsetY+(p.Y+r)*scale, r*scale, "FD")
	default:
		outline := placedOutline(p)
		points := make([]fpdf.PointType, len(outline))
		for i, pt := range outline {
			points[i] = fpdf.PointType{X: offsetX + pt.X*scale, Y: offsetY + pt.Y*scale}
		}
		pdf.Polygon(points, "FD")
	}
}

// drawPaddingMargin hatches the band along the sheet edges where no shape
// may be placed.
func drawPaddingMargin(pdf *fpdf.Fpdf, sheet model.Sheet, scale, offsetX, offsetY float64) {
	if sheet.Padding <= 0 {
		return
	}
	p := sheet.Padding
	zones := []model.Rect{
		{X: 0, Y: 0, W: sheet.Width, H: p},
		{X: 0, Y: sheet.Height - p, W: sheet.Width, H: p},
		{X: 0, Y: 0, W: p, H: sheet.Height},
		{X: sheet.Width - p, Y: 0, W: p, H: sheet.Height},
	}

	for _, zone := range zones {
		zx := offsetX + zone.X*scale
		zy := offsetY + zone.Y*scale
		zw := zone.W * scale
		zh := zone.H * scale

		pdf.SetFillColor(235, 225, 225)
		pdf.SetDrawColor(200, 150, 150)
		pdf.SetLineWidth(0.1)
		pdf.Rect(zx, zy, zw, zh, "F")

		drawHatchPattern(pdf, zx, zy, zw, zh)
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to indicate exclusion zones.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 150, 150)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheet model.Sheet, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%g", sheet.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%g", sheet.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawShapeLegend lists the placed shapes below the layout.
func drawShapeLegend(pdf *fpdf.Fpdf, result model.PackResult, startY float64) {
	if len(result.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Shapes placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, p := range result.Placements {
		if startY > pageHeight-marginBottom {
			break
		}
		col := kindColor(p.Shape.Kind())
		label := fmt.Sprintf("#%d %s (%gx%g)", p.Shape.ID(), p.Shape.Kind(), p.Shape.Width(), p.Shape.Height())
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the comparison of all runs.
func renderSummaryPage(pdf *fpdf.Fpdf, results []model.PackResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Comparison", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{35, 22, 22, 25, 55, 30, 78}
	headers := []string{"Algorithm", "Placed", "Total", "Fill", "Used / Sheet Area", "Net Area", "Not Placed IDs"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, result := range results {
		xPos = marginLeft
		rowData := []string{
			result.Algorithm.DisplayName(),
			strconv.Itoa(len(result.Placements)),
			strconv.Itoa(len(result.Placements) + len(result.NotPlaced)),
			fmt.Sprintf("%.1f%%", result.Efficiency()),
			fmt.Sprintf("%.0f / %.0f", result.UsedArea(), result.Sheet.Area()),
			fmt.Sprintf("%.0f", result.NetArea()),
			joinIDs(result.NotPlacedIDs()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	sheet := results[0].Sheet
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet", "", 0, "L", false, 0, "")
	y += 9

	sheetItems := []struct {
		label string
		value string
	}{
		{"Width", fmt.Sprintf("%g", sheet.Width)},
		{"Height", fmt.Sprintf("%g", sheet.Height)},
		{"Padding", fmt.Sprintf("%g", sheet.Padding)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range sheetItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ShapePack", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// joinIDs renders ids as a comma separated list, or "-" when empty.
func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
