// Package model defines the resolved geometric design of a bookshelf and
// the builder that turns a raw requirement set into a validated Model.
package model

import "fmt"

// Shelf is a horizontal shelf at height z, measured from the bottom (z=0).
type Shelf struct {
	Z float64 `json:"z"`
}

// Divider is a vertical panel at x (center), splitting the interior into bays.
type Divider struct {
	XCenter float64 `json:"x_center"`
}

// Model is a fully resolved bookshelf design. Construct through New so the
// invariants hold; a Model is never mutated after construction.
type Model struct {
	W        float64   `json:"width"`     // mm
	D        float64   `json:"depth"`     // mm
	H        float64   `json:"height"`    // mm
	T        float64   `json:"thickness"` // mm
	AddTop   bool      `json:"add_top"`
	Shelves  []Shelf   `json:"shelves"`
	Dividers []Divider `json:"dividers"`
}

// New validates and constructs a Model. Dimensions must be positive, the
// thickness must be at least 6mm and under a third of the smaller of width
// and depth, and shelf/divider positions must be non-negative.
func New(w, d, h, t float64, addTop bool, shelves []Shelf, dividers []Divider) (Model, error) {
	if w <= 0 || d <= 0 || h <= 0 {
		return Model{}, fmt.Errorf("dimensions must be positive: W=%g, D=%g, H=%g", w, d, h)
	}
	if t < 6.0 {
		return Model{}, fmt.Errorf("thickness must be >= 6mm, got %g", t)
	}
	if t >= min(w, d)/3 {
		return Model{}, fmt.Errorf("thickness %g too large for dimensions W=%g, D=%g", t, w, d)
	}
	for i, s := range shelves {
		if s.Z < 0 {
			return Model{}, fmt.Errorf("shelf %d: z-position must be >= 0, got %g", i, s.Z)
		}
	}
	for i, dv := range dividers {
		if dv.XCenter < 0 {
			return Model{}, fmt.Errorf("divider %d: x_center must be >= 0, got %g", i, dv.XCenter)
		}
	}

	return Model{
		W: w, D: d, H: h, T: t,
		AddTop:   addTop,
		Shelves:  shelves,
		Dividers: dividers,
	}, nil
}

// ClearWidth is the usable interior width between the side panels.
func (m Model) ClearWidth() float64 {
	return m.W - 2*m.T
}

// ClearHeight is the usable interior height.
func (m Model) ClearHeight() float64 {
	h := m.H - m.T
	if m.AddTop {
		h -= m.T
	}
	return h
}

// NumBays is the number of horizontal bays (dividers + 1).
func (m Model) NumBays() int {
	return len(m.Dividers) + 1
}

// BayWidth is the clear width of each bay.
func (m Model) BayWidth() float64 {
	return m.ClearWidth() / float64(m.NumBays())
}

// NumShelves is the total shelf count.
func (m Model) NumShelves() int {
	return len(m.Shelves)
}

// NumDividers is the total divider count.
func (m Model) NumDividers() int {
	return len(m.Dividers)
}

// ShelfZPositions returns the shelf z-coordinates in order.
func (m Model) ShelfZPositions() []float64 {
	zs := make([]float64, len(m.Shelves))
	for i, s := range m.Shelves {
		zs[i] = s.Z
	}
	return zs
}

// DividerXPositions returns the divider x-coordinates in order.
func (m Model) DividerXPositions() []float64 {
	xs := make([]float64, len(m.Dividers))
	for i, d := range m.Dividers {
		xs[i] = d.XCenter
	}
	return xs
}

// PositionWarnings reports shelves colliding with the bottom/top panels and
// dividers outside the carcass interior. These are advisory only; such a
// model is geometrically valid but probably not what the caller wanted.
func (m Model) PositionWarnings() []string {
	var warnings []string
	for i, s := range m.Shelves {
		if s.Z <= m.T {
			warnings = append(warnings,
				fmt.Sprintf("shelf %d at z=%.1fmm is at or below bottom panel (t=%gmm)", i, s.Z, m.T))
		}
		if m.AddTop && s.Z >= m.H-m.T {
			warnings = append(warnings,
				fmt.Sprintf("shelf %d at z=%.1fmm intersects top panel at %.1fmm", i, s.Z, m.H-m.T))
		}
	}
	for i, d := range m.Dividers {
		if d.XCenter <= m.T || d.XCenter >= m.W-m.T {
			warnings = append(warnings,
				fmt.Sprintf("divider %d at x=%.1fmm is outside valid range (%.1f to %.1fmm)", i, d.XCenter, m.T, m.W-m.T))
		}
	}
	return warnings
}
