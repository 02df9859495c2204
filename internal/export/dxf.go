package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/piwi3910/shelfforge/internal/model"
)

// panelGapMM is the spacing between panel outlines in the exported layout.
const panelGapMM = 50.0

// PanelsDXF writes one closed rectangle per physical panel, laid out left
// to right with a label under each outline. The drawing is 1:1 in mm, the
// unit CAM tooling expects.
func PanelsDXF(path string, m model.Model) error {
	panels := m.Panels()
	if len(panels) == 0 {
		return fmt.Errorf("no panels to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("PANELS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("adding layer: %w", err)
	}

	x := 0.0
	for _, p := range panels {
		for i := 0; i < p.Quantity; i++ {
			if _, err := d.LwPolyline(true,
				[]float64{x, 0},
				[]float64{x + p.Length, 0},
				[]float64{x + p.Length, p.Width},
				[]float64{x, p.Width},
			); err != nil {
				return fmt.Errorf("drawing %s: %w", p.Label, err)
			}

			label := p.Label
			if p.Quantity > 1 {
				label = fmt.Sprintf("%s %d/%d", p.Label, i+1, p.Quantity)
			}
			if _, err := d.Text(label, x, -20, 0, 10); err != nil {
				return fmt.Errorf("labeling %s: %w", p.Label, err)
			}

			x += p.Length + panelGapMM
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("writing DXF: %w", err)
	}
	return nil
}
