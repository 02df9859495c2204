// Package manufacturability runs rule checks on a resolved design and its
// cost breakdown, producing an ordered list of independent warnings. Each
// warning is a tagged value with structured numeric fields; human-readable
// text lives in the formatting layer.
package manufacturability

import (
	"math"
	"strings"

	"github.com/piwi3910/shelfforge/internal/costing"
	"github.com/piwi3910/shelfforge/internal/material"
)

// Code identifies the kind of manufacturability problem.
type Code string

const (
	CodePanelOversize    Code = "panel_oversize"
	CodeWeightExceeded   Code = "weight_exceeded"
	CodeShippingOversize Code = "shipping_oversize"
	CodeOverEngineered   Code = "over_engineered"
	CodeNarrowBay        Code = "narrow_bay"
)

// Warning is one rule violation with the numbers that triggered it.
type Warning struct {
	Code      Code    `json:"code"`
	Component string  `json:"component,omitempty"` // which panel or measure
	ValueMM   float64 `json:"value_mm,omitempty"`
	ValueKg   float64 `json:"value_kg,omitempty"`
	LimitMM   float64 `json:"limit_mm,omitempty"`
	LimitKg   float64 `json:"limit_kg,omitempty"`

	// Shipping: the individual dimension overruns.
	Overruns []Overrun `json:"overruns,omitempty"`

	// Over-engineering: capacity vs target and the suggested fix.
	CapacityKg             float64 `json:"capacity_kg,omitempty"`
	TargetLoadKg           float64 `json:"target_load_kg,omitempty"`
	Factor                 float64 `json:"factor,omitempty"`
	RecommendedThicknessMM float64 `json:"recommended_thickness_mm,omitempty"`
	EstimatedSavings       float64 `json:"estimated_savings,omitempty"`

	// Narrow bay: current layout.
	BayWidthMM  float64 `json:"bay_width_mm,omitempty"`
	NumDividers int     `json:"num_dividers,omitempty"`
}

// Standard limits.
const (
	MaxPanelWeightKg             = 25.0
	MaxAssemblyWeightKg          = 50.0
	MaxAssemblyWeightEquipmentKg = 100.0
	StandardShippingLengthMM     = 2400.0
	StandardShippingWidthMM      = 1200.0
	StandardShippingHeightMM     = 600.0
	StandardSheetLengthMM        = 2440.0
	StandardSheetWidthMM         = 1220.0

	overEngineeringFactor = 3.0
	narrowBayWidthMM      = 400.0
	hardwareWeightKg      = 0.5
	defaultDensity        = 650.0
)

// densities for weight estimation, keyed by material id. Deliberately a
// separate table from the catalog: these are as-shipped panel densities.
var densities = map[string]float64{
	"solid_wood":  600,
	"plywood":     550,
	"mdf":         750,
	"melamine_pb": 680,
}

// DesignData carries the design parameters the checks need.
type DesignData struct {
	W           float64 `json:"W"`
	D           float64 `json:"D"`
	H           float64 `json:"H"`
	T           float64 `json:"t"`
	AddTop      bool    `json:"add_top"`
	NumShelves  int     `json:"n_shelves"`
	NumDividers int     `json:"n_dividers"`
	Material    string  `json:"material"`
	TargetLoad  float64 `json:"target_load_kg"`
}

// Analyze runs every check in order and returns the combined warning list.
func Analyze(d DesignData, cost costing.Breakdown) []Warning {
	var warnings []Warning
	warnings = append(warnings, checkPanelSizes(d)...)
	warnings = append(warnings, checkWeights(Weights(d))...)
	warnings = append(warnings, checkShipping(d)...)
	warnings = append(warnings, checkOverEngineering(d, cost)...)
	return warnings
}

// checkPanelSizes flags panels that exceed the standard stock sheet and
// would need splicing or special-order material.
func checkPanelSizes(d DesignData) []Warning {
	var warnings []Warning
	if d.H > StandardSheetLengthMM {
		warnings = append(warnings, Warning{
			Code: CodePanelOversize, Component: "side_panel_height",
			ValueMM: d.H, LimitMM: StandardSheetLengthMM,
		})
	}
	if d.D > StandardSheetWidthMM {
		warnings = append(warnings, Warning{
			Code: CodePanelOversize, Component: "panel_depth",
			ValueMM: d.D, LimitMM: StandardSheetWidthMM,
		})
	}
	if d.W > StandardSheetLengthMM {
		warnings = append(warnings, Warning{
			Code: CodePanelOversize, Component: "width",
			ValueMM: d.W, LimitMM: StandardSheetLengthMM,
		})
	}
	if d.NumDividers > 0 {
		dividerHeight := d.H - d.T
		if d.AddTop {
			dividerHeight -= d.T
		}
		if dividerHeight > StandardSheetLengthMM {
			warnings = append(warnings, Warning{
				Code: CodePanelOversize, Component: "divider_height",
				ValueMM: dividerHeight, LimitMM: StandardSheetLengthMM,
			})
		}
	}
	return warnings
}

// WeightReport holds the component and total weights of a design.
type WeightReport struct {
	SidePanel     float64 `json:"side_panel"`
	BottomPanel   float64 `json:"bottom_panel"`
	TopPanel      float64 `json:"top_panel"`
	ShelfPanel    float64 `json:"shelf_panel"`
	DividerPanel  float64 `json:"divider_panel"`
	Hardware      float64 `json:"hardware"`
	Total         float64 `json:"total"`
	HeaviestPanel float64 `json:"heaviest_panel"`
}

// Weights estimates per-component weight from panel volume and material
// density. Unknown materials use a 650 kg/m³ default.
func Weights(d DesignData) WeightReport {
	density, ok := densities[strings.ToLower(d.Material)]
	if !ok {
		density = defaultDensity
	}

	panelWeight := func(lengthMM, widthMM, thickMM float64) float64 {
		return lengthMM * widthMM * thickMM / 1e9 * density
	}

	r := WeightReport{
		SidePanel:   panelWeight(d.D, d.H, d.T),
		BottomPanel: panelWeight(d.W-2*d.T, d.D, d.T),
		Hardware:    hardwareWeightKg,
	}
	if d.AddTop {
		r.TopPanel = panelWeight(d.W-2*d.T, d.D, d.T)
	}

	bayWidth := d.W - 2*d.T
	if d.NumDividers > 0 {
		bayWidth /= float64(d.NumDividers + 1)
	}
	r.ShelfPanel = panelWeight(bayWidth, d.D, d.T)

	dividersTotal := 0.0
	if d.NumDividers > 0 {
		dividerHeight := d.H - d.T
		if d.AddTop {
			dividerHeight -= d.T
		}
		r.DividerPanel = panelWeight(d.T, d.D, dividerHeight)
		dividersTotal = float64(d.NumDividers) * r.DividerPanel
	}

	shelvesTotal := float64(d.NumShelves) * r.ShelfPanel * float64(d.NumDividers+1)
	r.Total = 2*r.SidePanel + r.BottomPanel + r.TopPanel + shelvesTotal + dividersTotal + r.Hardware

	r.HeaviestPanel = math.Max(r.SidePanel, math.Max(r.BottomPanel, r.TopPanel))
	if d.NumShelves > 0 {
		r.HeaviestPanel = math.Max(r.HeaviestPanel, r.ShelfPanel)
	}
	r.HeaviestPanel = math.Max(r.HeaviestPanel, r.DividerPanel)

	return r
}

// checkWeights flags single-panel handling and assembly weight limits.
// The lifting-equipment warning takes precedence over the two-person one.
func checkWeights(w WeightReport) []Warning {
	var warnings []Warning
	if w.HeaviestPanel > MaxPanelWeightKg {
		warnings = append(warnings, Warning{
			Code: CodeWeightExceeded, Component: "heaviest_panel",
			ValueKg: w.HeaviestPanel, LimitKg: MaxPanelWeightKg,
		})
	}
	if w.Total > MaxAssemblyWeightEquipmentKg {
		warnings = append(warnings, Warning{
			Code: CodeWeightExceeded, Component: "assembly_equipment",
			ValueKg: w.Total, LimitKg: MaxAssemblyWeightEquipmentKg,
		})
	} else if w.Total > MaxAssemblyWeightKg {
		warnings = append(warnings, Warning{
			Code: CodeWeightExceeded, Component: "assembly",
			ValueKg: w.Total, LimitKg: MaxAssemblyWeightKg,
		})
	}
	return warnings
}

// Overrun names one assembled dimension exceeding the parcel envelope.
type Overrun struct {
	Dimension string  `json:"dimension"`
	ValueMM   float64 `json:"value_mm"`
	LimitMM   float64 `json:"limit_mm"`
}

// checkShipping emits a single warning naming every dimension that exceeds
// the standard parcel envelope.
func checkShipping(d DesignData) []Warning {
	var overruns []Overrun
	if d.W > StandardShippingLengthMM {
		overruns = append(overruns, Overrun{Dimension: "width", ValueMM: d.W, LimitMM: StandardShippingLengthMM})
	}
	if d.D > StandardShippingWidthMM {
		overruns = append(overruns, Overrun{Dimension: "depth", ValueMM: d.D, LimitMM: StandardShippingWidthMM})
	}
	if d.H > StandardShippingHeightMM {
		overruns = append(overruns, Overrun{Dimension: "height", ValueMM: d.H, LimitMM: StandardShippingHeightMM})
	}
	if len(overruns) == 0 {
		return nil
	}
	return []Warning{{Code: CodeShippingOversize, Overruns: overruns}}
}

// checkOverEngineering recomputes per-bay load capacity and flags designs
// whose capacity dwarfs the target load, recommending a thinner panel from
// the capacity ∝ t² relationship. Separately flags narrow bays.
func checkOverEngineering(d DesignData, cost costing.Breakdown) []Warning {
	var warnings []Warning

	clearWidth := d.W - 2*d.T
	bayWidth := clearWidth / float64(d.NumDividers+1)
	mat := material.Get(d.Material)
	capacity := material.LoadCapacity(bayWidth, d.D, d.T, mat)

	factor := capacity / math.Max(d.TargetLoad, 10.0)
	if factor > overEngineeringFactor {
		recommended := math.Max(12.0, math.Round(d.T*math.Sqrt(d.TargetLoad/capacity)))
		volumeReduction := 1.0 - recommended/d.T
		warnings = append(warnings, Warning{
			Code:                   CodeOverEngineered,
			CapacityKg:             capacity,
			TargetLoadKg:           d.TargetLoad,
			Factor:                 factor,
			RecommendedThicknessMM: recommended,
			EstimatedSavings:       cost.Cost.Material * volumeReduction,
		})
	}

	if d.NumDividers > 0 && bayWidth < narrowBayWidthMM {
		warnings = append(warnings, Warning{
			Code:             CodeNarrowBay,
			BayWidthMM:       bayWidth,
			NumDividers:      d.NumDividers,
			EstimatedSavings: cost.Cost.Material * 0.15,
		})
	}

	return warnings
}
