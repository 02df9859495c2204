package model

import (
	"math"

	"github.com/piwi3910/shelfforge/internal/material"
)

// DividerRules are the heuristic bounds used when auto-deriving the divider
// count from structural capacity. The defaults are carried over from shop
// practice rather than a cited engineering source, so they are configurable.
type DividerRules struct {
	ReferenceDepthMM   float64 // depth assumed when probing the full span
	MinBayWidthMM      float64
	MaxBayWidthMM      float64
	FallbackBayWidthMM float64 // used when the full span has zero capacity
}

// DefaultDividerRules returns the standard heuristic bounds.
func DefaultDividerRules() DividerRules {
	return DividerRules{
		ReferenceDepthMM:   300.0,
		MinBayWidthMM:      200.0,
		MaxBayWidthMM:      800.0,
		FallbackBayWidthMM: 400.0,
	}
}

// Build resolves a requirement set into a validated Model using the default
// divider rules.
func Build(req Requirements) (Model, error) {
	return BuildWithRules(req, DefaultDividerRules())
}

// BuildWithRules resolves a requirement set into a validated Model:
// dimensions are clamped to manufacturable ranges, dividers come from
// explicit positions, an explicit count, or structural auto-derivation,
// and shelves come from explicit positions, an explicit count, or the
// spacing hint. Construction fails hard if the resolved geometry violates
// the Model invariants; callers must not suppress that failure.
func BuildWithRules(req Requirements, rules DividerRules) (Model, error) {
	w := math.Max(100.0, req.Width)
	d := math.Max(100.0, req.Depth)
	h := math.Max(300.0, req.Height)
	t := math.Max(6.0, math.Min(req.Thickness, min(w, d)/3))

	mat := material.Get(req.Material)

	var dividers []Divider
	if len(req.DividerXPositions) > 0 {
		dividers = make([]Divider, len(req.DividerXPositions))
		for i, x := range req.DividerXPositions {
			dividers[i] = Divider{XCenter: x}
		}
	} else {
		n := req.NumDividers
		if n < 0 {
			n = dividersForSpan(w-2*t, mat, t, req.TargetLoad, rules)
		}
		dividers = evenDividers(w, t, n)
	}

	var shelves []Shelf
	if len(req.ShelfZPositions) > 0 {
		shelves = make([]Shelf, len(req.ShelfZPositions))
		for i, z := range req.ShelfZPositions {
			shelves[i] = Shelf{Z: z}
		}
	} else {
		n := req.NumShelves
		if n < 0 {
			zMin := t
			zMax := h
			if req.AddTop {
				zMax = h - t
			}
			hint := math.Max(req.ShelfSpacingHint, 100.0)
			n = int((zMax - zMin) / hint)
			if n < 0 {
				n = 0
			}
		}
		shelves = evenShelves(h, t, req.AddTop, n)
	}

	return New(w, d, h, t, req.AddTop, shelves, dividers)
}

// dividersForSpan derives the divider count needed for the full clear span
// to meet the target load. Capacity scales inversely with span, so the
// widest acceptable bay is capacity_full · span / target, clamped to the
// rule bounds.
func dividersForSpan(spanMM float64, mat material.Spec, thicknessMM, targetLoadKg float64, rules DividerRules) int {
	if spanMM <= 0 || thicknessMM <= 0 || targetLoadKg <= 0 {
		return 0
	}

	capacityFullSpan := material.LoadCapacity(spanMM, rules.ReferenceDepthMM, thicknessMM, mat)
	if capacityFullSpan >= targetLoadKg {
		return 0
	}

	var maxBayWidth float64
	if capacityFullSpan <= 0 {
		maxBayWidth = rules.FallbackBayWidthMM
	} else {
		maxBayWidth = capacityFullSpan * spanMM / targetLoadKg
		maxBayWidth = math.Min(maxBayWidth, rules.MaxBayWidthMM)
		maxBayWidth = math.Max(maxBayWidth, rules.MinBayWidthMM)
	}

	baysNeeded := int(math.Ceil(spanMM / maxBayWidth))
	return max(0, baysNeeded-1)
}

// evenDividers places n dividers at equal bay spacing across the clear width.
func evenDividers(w, t float64, n int) []Divider {
	if n <= 0 {
		return nil
	}
	bayWidth := (w - 2*t) / float64(n+1)
	dividers := make([]Divider, n)
	for i := range dividers {
		dividers[i] = Divider{XCenter: t + float64(i+1)*bayWidth}
	}
	return dividers
}

// evenShelves distributes n shelves evenly between the bottom panel's top
// face and the underside of the top panel (or the top of the structure when
// there is no top panel).
func evenShelves(h, t float64, addTop bool, n int) []Shelf {
	if n <= 0 {
		return nil
	}
	zMin := t
	zMax := h
	if addTop {
		zMax = h - t
	}
	spacing := (zMax - zMin) / float64(n+1)
	shelves := make([]Shelf, n)
	for i := range shelves {
		shelves[i] = Shelf{Z: zMin + float64(i+1)*spacing}
	}
	return shelves
}
