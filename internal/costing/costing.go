// Package costing estimates the manufacturing cost of a resolved bookshelf
// design: sheet material, drilling machine time, joinery hardware and
// assembly labor. Estimate is a pure function; identical inputs always
// produce an identical breakdown.
package costing

import (
	"math"
	"sort"

	"github.com/piwi3910/shelfforge/internal/material"
	"github.com/piwi3910/shelfforge/internal/model"
)

// HardwareSpec holds unit hardware costs.
type HardwareSpec struct {
	DowelCost    float64 `json:"dowel_cost"`
	CamSetCost   float64 `json:"cam_set_cost"`
	ShelfPinCost float64 `json:"shelf_pin_cost"`
}

// DefaultHardware returns standard hardware unit pricing.
func DefaultHardware() HardwareSpec {
	return HardwareSpec{
		DowelCost:    0.04,
		CamSetCost:   0.55,
		ShelfPinCost: 0.06,
	}
}

// ProcessRates holds machine and labor rates plus per-operation times.
type ProcessRates struct {
	SetupTimeMin            float64 `json:"setup_time_min"`
	DrillingTimePerHoleS    float64 `json:"drilling_time_per_hole_s"`
	HourlyMachineRate       float64 `json:"hourly_machine_rate"`
	AssemblyTimePerDowelMin float64 `json:"assembly_time_per_dowel_min"`
	AssemblyTimePerCamMin   float64 `json:"assembly_time_per_cam_min"`
	HourlyLaborRate         float64 `json:"hourly_labor_rate"`
}

// DefaultRates returns standard shop rates.
func DefaultRates() ProcessRates {
	return ProcessRates{
		SetupTimeMin:            8.0,
		DrillingTimePerHoleS:    2.5,
		HourlyMachineRate:       45.0,
		AssemblyTimePerDowelMin: 0.2,
		AssemblyTimePerCamMin:   0.4,
		HourlyLaborRate:         35.0,
	}
}

// Options selects the joinery method, shelf-pin layout and drilling pattern
// for an estimate.
type Options struct {
	Method        string         `json:"method"`
	ShelfPinsMode string         `json:"shelf_pins_mode"`
	Drilling      model.Drilling `json:"drilling"`
}

// DefaultOptions mirrors the default requirement set: cam-lock carcass
// joints and a 32mm modular pin grid.
func DefaultOptions() Options {
	return Options{
		Method:        model.JointCamlockDowels,
		ShelfPinsMode: model.PinsModularGrid,
		Drilling:      model.DefaultRequirements().Drilling,
	}
}

// Inputs echoes the design parameters an estimate was computed from.
type Inputs struct {
	W             float64 `json:"W"`
	D             float64 `json:"D"`
	H             float64 `json:"H"`
	T             float64 `json:"t"`
	AddTop        bool    `json:"add_top"`
	NumShelves    int     `json:"n_shelves"`
	NumDividers   int     `json:"n_dividers"`
	Method        string  `json:"method"`
	ShelfPinsMode string  `json:"shelf_pins_mode"`
}

// Counts holds the derived hole and fastener counts.
type Counts struct {
	DowelHoles      int `json:"dowel_holes"`
	CamSets         int `json:"cam_sets"`
	ShelfPinHoles   int `json:"shelfpin_holes"`
	ShelfPinsEst    int `json:"shelf_pins_est"`
	DrillHolesTotal int `json:"drill_holes_total"`
}

// TimeMinutes holds per-phase process times in minutes.
type TimeMinutes struct {
	Setup        float64 `json:"setup"`
	Drilling     float64 `json:"drilling"`
	MachineTotal float64 `json:"machine_total"`
	Assembly     float64 `json:"assembly"`
}

// Cost holds the itemized cost in currency units, rounded to cents.
type Cost struct {
	Material float64 `json:"material"`
	Machine  float64 `json:"machine"`
	Hardware float64 `json:"hardware"`
	Assembly float64 `json:"assembly"`
	Total    float64 `json:"total"`
}

// Breakdown is the full estimate result. It is a fresh value per Estimate
// call and is never mutated afterwards.
type Breakdown struct {
	Inputs      Inputs        `json:"inputs"`
	Material    material.Spec `json:"materials"`
	Hardware    HardwareSpec  `json:"hardware"`
	Rates       ProcessRates  `json:"rates"`
	PanelAreaM2 float64       `json:"panel_area_m2"`
	SheetCount  int           `json:"sheet_count"`
	Counts      Counts        `json:"counts"`
	TimeMin     TimeMinutes   `json:"time_min"`
	Cost        Cost          `json:"cost"`
}

// Estimate computes the cost breakdown for a design with the given
// material, hardware pricing, process rates and joinery options.
func Estimate(m model.Model, mat material.Spec, hw HardwareSpec, rates ProcessRates, opts Options) Breakdown {
	nShelves := m.NumShelves()
	nDividers := m.NumDividers()
	topLevels := 1
	if m.AddTop {
		topLevels = 2
	}

	// 1) Material: panel area drives the sheet count.
	areaM2 := panelAreaM2(m)
	sheets := sheetCount(areaM2, mat)
	materialCost := float64(sheets) * mat.PricePerSheet

	// 2) Joints and holes.
	lanes := laneCount(opts.Drilling.RowFrontOffset, opts.Drilling.RowBackOffset, m.D)
	holesCarcass := 4 * lanes * topLevels
	holesDividers := nDividers * 4 * lanes * topLevels

	var dowelHoles, camSets int
	if opts.Method == model.JointGlueDowels {
		dowelHoles = holesCarcass + holesDividers
	} else {
		// Cam-locks join the carcass; dividers stay doweled.
		camSets = lanes * topLevels * 2
		dowelHoles = holesDividers
	}

	// 3) Shelf pins.
	levels := shelfPinLevels(opts.ShelfPinsMode, m.H, m.T, m.AddTop, opts.Drilling, m.ShelfZPositions())
	pinHolesSides := len(levels) * lanes * 2
	pinHolesDividers := len(levels) * lanes * nDividers * 2
	pinHoles := pinHolesSides + pinHolesDividers

	// 4) Machine time: setup plus drilling.
	drillHolesTotal := dowelHoles + pinHoles
	drillMin := float64(drillHolesTotal) * rates.DrillingTimePerHoleS / 60.0
	machineMin := rates.SetupTimeMin + drillMin
	machineCost := machineMin / 60.0 * rates.HourlyMachineRate

	// 5) Hardware and assembly. Two blind half-holes form one dowel joint.
	dowelCount := dowelHoles / 2
	shelfPinsEst := 0
	if pinHoles > 0 {
		shelfPinsEst = min(nShelves*4, pinHoles)
	}
	hardwareCost := float64(dowelCount)*hw.DowelCost +
		float64(camSets)*hw.CamSetCost +
		float64(shelfPinsEst)*hw.ShelfPinCost

	assemblyMin := float64(dowelCount)*rates.AssemblyTimePerDowelMin +
		float64(camSets)*rates.AssemblyTimePerCamMin
	assemblyCost := assemblyMin / 60.0 * rates.HourlyLaborRate

	total := materialCost + machineCost + hardwareCost + assemblyCost

	return Breakdown{
		Inputs: Inputs{
			W: m.W, D: m.D, H: m.H, T: m.T, AddTop: m.AddTop,
			NumShelves:    nShelves,
			NumDividers:   nDividers,
			Method:        opts.Method,
			ShelfPinsMode: opts.ShelfPinsMode,
		},
		Material:    mat,
		Hardware:    hw,
		Rates:       rates,
		PanelAreaM2: roundTo(areaM2, 3),
		SheetCount:  sheets,
		Counts: Counts{
			DowelHoles:      dowelHoles,
			CamSets:         camSets,
			ShelfPinHoles:   pinHoles,
			ShelfPinsEst:    shelfPinsEst,
			DrillHolesTotal: drillHolesTotal,
		},
		TimeMin: TimeMinutes{
			Setup:        rates.SetupTimeMin,
			Drilling:     roundTo(drillMin, 1),
			MachineTotal: roundTo(machineMin, 1),
			Assembly:     roundTo(assemblyMin, 1),
		},
		Cost: Cost{
			Material: roundTo(materialCost, 2),
			Machine:  roundTo(machineCost, 2),
			Hardware: roundTo(hardwareCost, 2),
			Assembly: roundTo(assemblyCost, 2),
			Total:    roundTo(total, 2),
		},
	}
}

// panelAreaM2 approximates total panel area: sides, bottom, optional top,
// full-height dividers and full-clear-width shelves.
func panelAreaM2(m model.Model) float64 {
	area := 2 * (m.H * m.D)
	area += m.W * m.D
	if m.AddTop {
		area += m.W * m.D
	}
	area += float64(m.NumDividers()) * (m.H * m.D)
	area += float64(m.NumShelves()) * ((m.W - 2*m.T) * m.D)
	return area / 1e6
}

// sheetCount is the number of stock sheets needed after the waste factor.
func sheetCount(totalAreaM2 float64, mat material.Spec) int {
	sheetArea := mat.SheetLengthMM * mat.SheetWidthMM / 1e6
	usable := sheetArea * (1.0 - mat.WasteFactor)
	n := int(math.Ceil(totalAreaM2 / math.Max(usable, 1e-6)))
	return max(1, n)
}

// laneCount is the number of drilling lanes along the shelf depth. A back
// lane only counts when it lands on a distinct depth from the front lane.
func laneCount(frontOffset, backOffset, depth float64) int {
	n := 0
	if frontOffset > 0 {
		n++
	}
	if backOffset > 0 && math.Abs(depth-backOffset-frontOffset) > 1e-6 {
		n++
	}
	return n
}

// shelfPinLevels returns the sorted, deduplicated z-levels to drill shelf
// pin holes at. fixed_at_shelves uses the shelf positions as-is;
// modular_grid lays a pitch-spaced ladder between the margins and forces
// the fixed shelf levels into it; none drills nothing.
func shelfPinLevels(mode string, h, t float64, addTop bool, drilling model.Drilling, fixedLevels []float64) []float64 {
	switch mode {
	case model.PinsFixedAtShelves:
		return dedupeSorted(roundAll(fixedLevels))

	case model.PinsModularGrid:
		z0 := t + math.Max(0.0, drilling.GridBottomMargin)
		z1 := h - math.Max(0.0, drilling.GridTopMargin)
		if addTop {
			z1 -= t
		}
		pitch := math.Max(5.0, drilling.GridPitchZ)

		var levels []float64
		for z := z0; z <= z1+1e-6; z += pitch {
			levels = append(levels, roundTo(z, 3))
		}
		levels = append(levels, roundAll(fixedLevels)...)
		return dedupeSorted(levels)
	}
	return nil
}

func roundAll(levels []float64) []float64 {
	out := make([]float64, len(levels))
	for i, z := range levels {
		out[i] = roundTo(z, 3)
	}
	return out
}

func dedupeSorted(levels []float64) []float64 {
	if len(levels) == 0 {
		return nil
	}
	sort.Float64s(levels)
	out := levels[:1]
	for _, z := range levels[1:] {
		if z != out[len(out)-1] {
			out = append(out, z)
		}
	}
	return out
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
