package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/shelfforge/internal/model"
)

// Avery 5160 layout: 3 x 10 labels on US Letter.
const (
	letterWidth  = 215.9
	letterHeight = 279.4

	labelWidth  = 66.7
	labelHeight = 25.4
	labelCols   = 3
	labelRows   = 10

	labelMarginLeft = 4.8
	labelMarginTop  = 12.7
	labelGapX       = 3.2

	labelPad = 2.0
	qrSize   = 20.0
)

// LabelInfo is one printed label. One label is emitted per physical panel,
// so a Panel with Quantity 3 produces three labels numbered 1/3 to 3/3.
type LabelInfo struct {
	PanelID   string  `json:"panel_id"`
	Label     string  `json:"label"`
	LengthMM  float64 `json:"length_mm"`
	WidthMM   float64 `json:"width_mm"`
	Thickness float64 `json:"thickness_mm"`
	Material  string  `json:"material"`
	Index     int     `json:"index"`
	Total     int     `json:"total"`
}

// CollectLabelInfos expands the cut list into per-piece label records.
func CollectLabelInfos(m model.Model, materialName string) []LabelInfo {
	var infos []LabelInfo
	for _, p := range m.Panels() {
		for i := 1; i <= p.Quantity; i++ {
			infos = append(infos, LabelInfo{
				PanelID:   p.ID,
				Label:     p.Label,
				LengthMM:  p.Length,
				WidthMM:   p.Width,
				Thickness: m.T,
				Material:  materialName,
				Index:     i,
				Total:     p.Quantity,
			})
		}
	}
	return infos
}

// LabelsPDF writes QR-coded panel labels in the Avery 5160 grid. Each QR
// payload is the JSON of the label record, so a scan on the shop floor
// identifies the piece and its cut dimensions.
func LabelsPDF(path string, m model.Model, materialName string) error {
	infos := CollectLabelInfos(m, materialName)
	if len(infos) == 0 {
		return fmt.Errorf("no panels to label")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	perPage := labelCols * labelRows
	for i, info := range infos {
		if i > 0 && i%perPage == 0 {
			pdf.AddPage()
		}
		slot := i % perPage
		col := slot % labelCols
		row := slot / labelCols
		x := labelMarginLeft + float64(col)*(labelWidth+labelGapX)
		y := labelMarginTop + float64(row)*labelHeight
		if err := renderLabel(pdf, x, y, info); err != nil {
			return err
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encoding label payload: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generating QR code for %s: %w", info.PanelID, err)
	}

	imgName := fmt.Sprintf("qr-%s-%d", info.PanelID, info.Index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x+labelPad, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPad + qrSize + 2
	textW := labelWidth - labelPad*2 - qrSize - 2

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(textX, y+3)
	pdf.CellFormat(textW, 4.5, info.Label, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetX(textX)
	pdf.CellFormat(textW, 4, fmt.Sprintf("%.0f x %.0f x %.0f mm", info.LengthMM, info.WidthMM, info.Thickness), "", 1, "L", false, 0, "")
	pdf.SetX(textX)
	pdf.CellFormat(textW, 4, info.Material, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetX(textX)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s  piece %d/%d", info.PanelID, info.Index, info.Total), "", 1, "L", false, 0, "")

	return nil
}
