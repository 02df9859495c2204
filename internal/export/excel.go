package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/shelfforge/internal/costing"
	"github.com/piwi3910/shelfforge/internal/model"
)

// CutListXLSX writes a two-sheet workbook: the cut list and the cost
// breakdown.
func CutListXLSX(path string, m model.Model, b costing.Breakdown) error {
	f := excelize.NewFile()
	defer f.Close()

	const cutSheet = "Cut List"
	if err := f.SetSheetName("Sheet1", cutSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	headers := []string{"ID", "Panel", "Length (mm)", "Width (mm)", "Thickness (mm)", "Quantity"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(cutSheet, cell, h)
	}
	f.SetCellStyle(cutSheet, "A1", "F1", headerStyle)

	row := 2
	totalPieces := 0
	for _, p := range m.Panels() {
		f.SetCellValue(cutSheet, fmt.Sprintf("A%d", row), p.ID)
		f.SetCellValue(cutSheet, fmt.Sprintf("B%d", row), p.Label)
		f.SetCellValue(cutSheet, fmt.Sprintf("C%d", row), p.Length)
		f.SetCellValue(cutSheet, fmt.Sprintf("D%d", row), p.Width)
		f.SetCellValue(cutSheet, fmt.Sprintf("E%d", row), m.T)
		f.SetCellValue(cutSheet, fmt.Sprintf("F%d", row), p.Quantity)
		totalPieces += p.Quantity
		row++
	}
	f.SetCellValue(cutSheet, fmt.Sprintf("B%d", row+1), "Total pieces")
	f.SetCellValue(cutSheet, fmt.Sprintf("F%d", row+1), totalPieces)
	f.SetColWidth(cutSheet, "A", "A", 10)
	f.SetColWidth(cutSheet, "B", "F", 14)

	const costSheet = "Costing"
	if _, err := f.NewSheet(costSheet); err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}

	type kv struct {
		label string
		value any
	}
	rows := []kv{
		{"Material", b.Material.Name},
		{"Panel area (m2)", b.PanelAreaM2},
		{"Sheets", b.SheetCount},
		{"Dowel holes", b.Counts.DowelHoles},
		{"Cam sets", b.Counts.CamSets},
		{"Shelf pin holes", b.Counts.ShelfPinHoles},
		{"Shelf pins (est)", b.Counts.ShelfPinsEst},
		{"Drill holes total", b.Counts.DrillHolesTotal},
		{"Setup (min)", b.TimeMin.Setup},
		{"Drilling (min)", b.TimeMin.Drilling},
		{"Assembly (min)", b.TimeMin.Assembly},
		{"Material cost", b.Cost.Material},
		{"Machine cost", b.Cost.Machine},
		{"Hardware cost", b.Cost.Hardware},
		{"Assembly cost", b.Cost.Assembly},
		{"Total", b.Cost.Total},
	}
	for i, r := range rows {
		f.SetCellValue(costSheet, fmt.Sprintf("A%d", i+1), r.label)
		f.SetCellValue(costSheet, fmt.Sprintf("B%d", i+1), r.value)
	}
	f.SetCellStyle(costSheet, fmt.Sprintf("A%d", len(rows)), fmt.Sprintf("B%d", len(rows)), headerStyle)
	f.SetColWidth(costSheet, "A", "A", 20)

	return f.SaveAs(path)
}
