package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Panel is one rectangular piece in the derived cut list.
type Panel struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Length   float64 `json:"length"` // mm, longest face dimension
	Width    float64 `json:"width"`  // mm
	Quantity int     `json:"quantity"`
}

func newPanel(label string, length, width float64, qty int) Panel {
	return Panel{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Length:   length,
		Width:    width,
		Quantity: qty,
	}
}

// Panels derives the physical cut list for the design: two sides, a bottom,
// an optional top, full-height dividers and per-bay shelves. Shelf panels
// repeat per bay so each piece fits between dividers.
func (m Model) Panels() []Panel {
	panels := []Panel{
		newPanel("Side", m.H, m.D, 2),
		newPanel("Bottom", m.W-2*m.T, m.D, 1),
	}
	if m.AddTop {
		panels = append(panels, newPanel("Top", m.W-2*m.T, m.D, 1))
	}
	if n := m.NumDividers(); n > 0 {
		panels = append(panels, newPanel("Divider", m.ClearHeight(), m.D, n))
	}
	if n := m.NumShelves(); n > 0 {
		panels = append(panels, newPanel(
			fmt.Sprintf("Shelf (%d per level)", m.NumBays()),
			m.BayWidth(), m.D, n*m.NumBays()))
	}
	return panels
}
