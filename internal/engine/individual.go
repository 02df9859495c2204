// Package engine implements the genetic design optimizer: candidate
// individuals, the multi-objective fitness evaluation and the generational
// search loop.
package engine

import (
	"math"
	"math/rand"

	"github.com/piwi3910/shelfforge/internal/costing"
	"github.com/piwi3910/shelfforge/internal/manufacturability"
	"github.com/piwi3910/shelfforge/internal/material"
	"github.com/piwi3910/shelfforge/internal/model"
)

// Engineering constraints on the genome.
const (
	MinThickness          = 12.0 // absolute minimum, mm
	PracticalMinThickness = 16.0 // below this fasteners hold poorly
	MaxThickness          = 32.0 // practical maximum, mm
	SafetyFactor          = 1.25 // required capacity margin over target load
)

// costBands is the per-material [min,max] cost range used to normalize the
// cost score. Different materials quote in different bands.
var costBands = map[string][2]float64{
	"melamine_pb": {50, 150},
	"plywood":     {80, 200},
	"mdf":         {50, 140},
	"solid_wood":  {120, 300},
}

var defaultCostBand = [2]float64{50, 200}

// Context is the fixed (non-evolving) part of a candidate: the requested
// envelope, material and load, plus the joinery options used for costing.
type Context struct {
	Width      float64
	Height     float64
	Depth      float64
	NumShelves int
	Material   string
	TargetLoad float64

	Hardware costing.HardwareSpec
	Rates    costing.ProcessRates
	Costing  costing.Options
}

// Individual is one candidate design. The genome is thickness (integer mm)
// and divider count; everything else is fixed context. Evaluation results
// are cached; an individual is evaluated exactly once after creation.
type Individual struct {
	Context Context

	Thickness   int
	NumDividers int

	Fitness       float64
	Cost          float64
	Capacity      float64
	Deflection    float64
	WarningsCount int
}

// maxDividers is the genome's upper bound on dividers for a given width:
// one divider per roughly 300mm of span, at most 6.
func maxDividers(width float64) int {
	return min(6, int(width/300.0))
}

// newRandomIndividual samples a fresh genome: uniform thickness in the
// practical range and a uniform divider count inside bounds.
func newRandomIndividual(ctx Context, rng *rand.Rand) *Individual {
	thickness := int(math.Round(PracticalMinThickness + rng.Float64()*(MaxThickness-PracticalMinThickness)))
	return &Individual{
		Context:     ctx,
		Thickness:   thickness,
		NumDividers: rng.Intn(maxDividers(ctx.Width) + 1),
		Fitness:     math.Inf(1),
	}
}

// clone copies the genome into a fresh, unevaluated individual.
func (ind *Individual) clone() *Individual {
	return &Individual{
		Context:     ind.Context,
		Thickness:   ind.Thickness,
		NumDividers: ind.NumDividers,
		Fitness:     math.Inf(1),
	}
}

// copyEvaluated copies the individual with its cached results, for carrying
// elites into the next generation as independently owned values.
func (ind *Individual) copyEvaluated() *Individual {
	cp := *ind
	return &cp
}

// ToModel derives the phenotype: evenly placed shelves and dividers at the
// genome's thickness, with a top panel.
func (ind *Individual) ToModel() (model.Model, error) {
	t := float64(ind.Thickness)
	clearWidth := ind.Context.Width - 2*t
	bayWidth := clearWidth / float64(ind.NumDividers+1)

	var shelves []model.Shelf
	if ind.Context.NumShelves > 0 {
		availableHeight := ind.Context.Height - 2*t
		spacing := availableHeight / float64(ind.Context.NumShelves+1)
		for i := 0; i < ind.Context.NumShelves; i++ {
			shelves = append(shelves, model.Shelf{Z: t + float64(i+1)*spacing})
		}
	}

	var dividers []model.Divider
	for i := 0; i < ind.NumDividers; i++ {
		dividers = append(dividers, model.Divider{XCenter: t + float64(i+1)*bayWidth})
	}

	return model.New(ind.Context.Width, ind.Context.Depth, ind.Context.Height, t, true, shelves, dividers)
}

// Evaluate scores the individual: build the phenotype, run the cost
// estimator, the structural model on one representative bay and the
// manufacturability checks, then combine the four component scores.
// Lower fitness is better. Genome bounds keep the phenotype valid, so an
// error here is a hard failure the optimizer must propagate.
func (ind *Individual) Evaluate(config GAConfig) (float64, error) {
	m, err := ind.ToModel()
	if err != nil {
		return 0, err
	}

	t := float64(ind.Thickness)
	bayWidth := m.BayWidth()
	mat := material.Get(ind.Context.Material)

	breakdown := costing.Estimate(m, mat, ind.Context.Hardware, ind.Context.Rates, ind.Context.Costing)
	ind.Cost = breakdown.Cost.Total

	ind.Deflection = material.Deflection(bayWidth, ind.Context.Depth, t, ind.Context.TargetLoad, mat)
	ind.Capacity = material.LoadCapacity(bayWidth, ind.Context.Depth, t, mat)

	warnings := manufacturability.Analyze(manufacturability.DesignData{
		W: ind.Context.Width, D: ind.Context.Depth, H: ind.Context.Height, T: t,
		AddTop:      true,
		NumShelves:  ind.Context.NumShelves,
		NumDividers: ind.NumDividers,
		Material:    ind.Context.Material,
		TargetLoad:  ind.Context.TargetLoad,
	}, breakdown)
	ind.WarningsCount = len(warnings)

	// 1. Cost, normalized against the material's quote band.
	band, ok := costBands[ind.Context.Material]
	if !ok {
		band = defaultCostBand
	}
	costScore := clamp01((ind.Cost - band[0]) / (band[1] - band[0]))

	// 2. Structural safety: capacity shortfall weighs double, deflection
	// over the limit and thin-for-fasteners panels add on.
	requiredCapacity := ind.Context.TargetLoad * SafetyFactor
	deflectionLimit := bayWidth * mat.DeflectionLimitRatio

	capacityRatio := 1.0
	if requiredCapacity > 0 {
		capacityRatio = ind.Capacity / requiredCapacity
	}
	deflectionRatio := 0.0
	if deflectionLimit > 0 {
		deflectionRatio = ind.Deflection / deflectionLimit
	}

	capacityPenalty := math.Max(0.0, 1.0-capacityRatio) * 2.0
	deflectionPenalty := math.Max(0.0, deflectionRatio-1.0)
	fastenerPenalty := math.Max(0.0, (PracticalMinThickness-t)/10.0)
	structuralScore := math.Min(1.0, capacityPenalty+deflectionPenalty+fastenerPenalty)

	// 3. Efficiency: only safe designs earn a thinness reward; anything
	// over 150% of required capacity is over-engineering.
	efficiencyScore := 1.0
	if capacityRatio >= 1.0 && deflectionRatio <= 1.0 {
		thicknessEfficiency := (t - PracticalMinThickness) / (MaxThickness - PracticalMinThickness)
		overEngineering := math.Max(0.0, (capacityRatio-1.5)/2.0)
		efficiencyScore = thicknessEfficiency*0.7 + overEngineering*0.3
	}

	// 4. Manufacturability: saturates at 8 warnings.
	mfgScore := math.Min(1.0, float64(ind.WarningsCount)/8.0)

	ind.Fitness = config.CostWeight*costScore +
		config.StructuralWeight*structuralScore +
		config.EfficiencyWeight*efficiencyScore +
		config.ManufacturabilityWeight*mfgScore

	return ind.Fitness, nil
}

// crossover blends the continuous thickness gene (each child gets the
// complementary mix) and coin-flips the discrete divider gene.
func (ind *Individual) crossover(other *Individual, rng *rand.Rand) (*Individual, *Individual) {
	child1 := ind.clone()
	child2 := other.clone()

	alpha := rng.Float64()
	child1.Thickness = int(math.Round(alpha*float64(ind.Thickness) + (1-alpha)*float64(other.Thickness)))
	child2.Thickness = int(math.Round((1-alpha)*float64(ind.Thickness) + alpha*float64(other.Thickness)))

	if rng.Float64() < 0.5 {
		child1.NumDividers = ind.NumDividers
		child2.NumDividers = other.NumDividers
	} else {
		child1.NumDividers = other.NumDividers
		child2.NumDividers = ind.NumDividers
	}

	return child1, child2
}

// mutate perturbs each gene independently: Gaussian noise (σ=2mm) on
// thickness, a ±1 step on dividers, both clamped to bounds.
func (ind *Individual) mutate(rate float64, rng *rand.Rand) {
	if rng.Float64() < rate {
		t := float64(ind.Thickness) + rng.NormFloat64()*2.0
		ind.Thickness = int(math.Round(math.Max(MinThickness, math.Min(MaxThickness, t))))
	}

	if rng.Float64() < rate {
		delta := 1
		if rng.Float64() < 0.5 {
			delta = -1
		}
		ind.NumDividers = max(0, min(maxDividers(ind.Context.Width), ind.NumDividers+delta))
	}
}

// DesignSummary is the serialized form of a candidate for reports.
type DesignSummary struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Depth         float64 `json:"depth"`
	Thickness     int     `json:"thickness"`
	NumDividers   int     `json:"num_dividers"`
	NumShelves    int     `json:"n_shelves"`
	Material      string  `json:"material"`
	Cost          float64 `json:"cost"`
	Fitness       float64 `json:"fitness"`
	CapacityKg    float64 `json:"capacity_kg"`
	DeflectionMM  float64 `json:"deflection_mm"`
	WarningsCount int     `json:"warnings_count"`
}

// Summary serializes the individual with report-grade rounding.
func (ind *Individual) Summary() DesignSummary {
	return DesignSummary{
		Width:         ind.Context.Width,
		Height:        ind.Context.Height,
		Depth:         ind.Context.Depth,
		Thickness:     ind.Thickness,
		NumDividers:   ind.NumDividers,
		NumShelves:    ind.Context.NumShelves,
		Material:      ind.Context.Material,
		Cost:          roundTo(ind.Cost, 2),
		Fitness:       roundTo(ind.Fitness, 4),
		CapacityKg:    roundTo(ind.Capacity, 1),
		DeflectionMM:  roundTo(ind.Deflection, 2),
		WarningsCount: ind.WarningsCount,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
