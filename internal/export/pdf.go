// Package export writes design deliverables to shop-ready file formats:
// a PDF design report, an XLSX cut list, DXF panel outlines and QR-coded
// panel labels.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/shelfforge/internal/costing"
	"github.com/piwi3910/shelfforge/internal/engine"
	"github.com/piwi3910/shelfforge/internal/manufacturability"
	"github.com/piwi3910/shelfforge/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	contentWidth = pageWidth - marginLeft - marginRight
	sketchHeight = 110.0
)

// ReportPDF writes the full design report: resolved dimensions, a front
// elevation sketch, the cost breakdown, manufacturability warnings and the
// optimization history.
func ReportPDF(path string, m model.Model, breakdown costing.Breakdown, warnings []manufacturability.Warning, report engine.Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	renderHeader(pdf, m)
	renderElevation(pdf, m)
	renderCostTable(pdf, breakdown)
	renderWarnings(pdf, warnings)
	if len(report.EvolutionHistory) > 0 {
		renderHistory(pdf, report)
	}

	return pdf.OutputFileAndClose(path)
}

func renderHeader(pdf *fpdf.Fpdf, m model.Model) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 8, "ShelfForge Design Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(marginLeft)
	top := "no top panel"
	if m.AddTop {
		top = "with top panel"
	}
	summary := fmt.Sprintf("%.0f x %.0f x %.0f mm, %.0fmm panels, %d shelves, %d dividers, %s",
		m.W, m.D, m.H, m.T, m.NumShelves(), m.NumDividers(), top)
	pdf.CellFormat(contentWidth, 6, summary, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

// renderElevation draws a scaled front view: carcass outline, shelves and
// dividers.
func renderElevation(pdf *fpdf.Fpdf, m model.Model) {
	scale := min(contentWidth/m.W, sketchHeight/m.H)
	w := m.W * scale
	h := m.H * scale
	x0 := marginLeft + (contentWidth-w)/2
	y0 := pdf.GetY()

	pdf.SetDrawColor(40, 40, 40)
	pdf.SetLineWidth(0.4)
	pdf.Rect(x0, y0, w, h, "D")

	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(90, 90, 90)

	t := m.T * scale
	// Side panels and bottom/top
	pdf.Line(x0+t, y0, x0+t, y0+h)
	pdf.Line(x0+w-t, y0, x0+w-t, y0+h)
	pdf.Line(x0, y0+h-t, x0+w, y0+h-t)
	if m.AddTop {
		pdf.Line(x0, y0+t, x0+w, y0+t)
	}

	// Shelves: z measured from the bottom, page y from the top.
	for _, s := range m.Shelves {
		y := y0 + h - s.Z*scale
		pdf.Line(x0+t, y, x0+w-t, y)
	}
	for _, d := range m.Dividers {
		x := x0 + d.XCenter*scale
		pdf.Line(x, y0+t, x, y0+h-t)
	}

	pdf.SetY(y0 + h + 6)
}

func renderCostTable(pdf *fpdf.Fpdf, b costing.Breakdown) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 7, "Cost Estimate", "", 1, "L", false, 0, "")

	rows := []struct {
		label  string
		amount float64
		detail string
	}{
		{"Material", b.Cost.Material, fmt.Sprintf("%d sheets, %.2f m2", b.SheetCount, b.PanelAreaM2)},
		{"Machine", b.Cost.Machine, fmt.Sprintf("setup %.1f min + drilling %.1f min", b.TimeMin.Setup, b.TimeMin.Drilling)},
		{"Hardware", b.Cost.Hardware, fmt.Sprintf("%d dowels, %d cam sets, %d pins", b.Counts.DowelHoles/2, b.Counts.CamSets, b.Counts.ShelfPinsEst)},
		{"Assembly", b.Cost.Assembly, fmt.Sprintf("%.1f min", b.TimeMin.Assembly)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetX(marginLeft)
		pdf.CellFormat(35, 6, row.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("$%.2f", row.amount), "B", 0, "R", false, 0, "")
		pdf.CellFormat(contentWidth-65, 6, row.detail, "B", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(marginLeft)
	pdf.CellFormat(35, 7, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("$%.2f", b.Cost.Total), "", 1, "R", false, 0, "")
	pdf.Ln(3)
}

func renderWarnings(pdf *fpdf.Fpdf, warnings []manufacturability.Warning) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 7, fmt.Sprintf("Manufacturability (%d warnings)", len(warnings)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if len(warnings) == 0 {
		pdf.SetX(marginLeft)
		pdf.CellFormat(contentWidth, 5, "No manufacturability concerns.", "", 1, "L", false, 0, "")
	}
	for _, w := range warnings {
		pdf.SetX(marginLeft)
		pdf.MultiCell(contentWidth, 5, "- "+w.String(), "", "L", false)
	}
	pdf.Ln(3)
}

func renderHistory(pdf *fpdf.Fpdf, report engine.Report) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 7, "Optimization", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 5,
		fmt.Sprintf("Fitness %.4f -> %.4f, cost $%.2f -> $%.2f over %d generations",
			report.InitialBestDesign.Fitness, report.BestDesign.Fitness,
			report.InitialBestDesign.Cost, report.BestDesign.Cost,
			len(report.EvolutionHistory)),
		"", 1, "L", false, 0, "")

	header := []string{"Gen", "Best fit", "Avg fit", "Cost", "t (mm)", "Dividers", "Diversity"}
	widths := []float64{15, 25, 25, 25, 20, 25, 25}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetX(marginLeft)
	for i, hd := range header {
		pdf.CellFormat(widths[i], 5, hd, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, g := range report.EvolutionHistory {
		pdf.SetX(marginLeft)
		cells := []string{
			fmt.Sprintf("%d", g.Generation),
			fmt.Sprintf("%.4f", g.BestFitness),
			fmt.Sprintf("%.4f", g.AvgFitness),
			fmt.Sprintf("$%.2f", g.BestCost),
			fmt.Sprintf("%d", g.BestThickness),
			fmt.Sprintf("%d", g.BestDividers),
			fmt.Sprintf("%.2f", g.Diversity),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 4.5, c, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
