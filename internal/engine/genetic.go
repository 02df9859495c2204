package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/piwi3910/shelfforge/internal/costing"
	"github.com/piwi3910/shelfforge/internal/model"
)

// GAConfig holds the genetic algorithm parameters. The four fitness
// weights are intended to sum to 1.0; this is not enforced.
type GAConfig struct {
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	MutationRate   float64 `json:"mutation_rate"`
	CrossoverRate  float64 `json:"crossover_rate"`
	EliteCount     int     `json:"elite_count"`
	TournamentSize int     `json:"tournament_size"`

	CostWeight              float64 `json:"cost_weight"`
	StructuralWeight        float64 `json:"structural_weight"`
	EfficiencyWeight        float64 `json:"efficiency_weight"`
	ManufacturabilityWeight float64 `json:"manufacturability_weight"`
}

// DefaultGAConfig returns the standard search parameters.
func DefaultGAConfig() GAConfig {
	return GAConfig{
		PopulationSize:          40,
		Generations:             20,
		MutationRate:            0.15,
		CrossoverRate:           0.8,
		EliteCount:              3,
		TournamentSize:          3,
		CostWeight:              0.35,
		StructuralWeight:        0.40,
		EfficiencyWeight:        0.15,
		ManufacturabilityWeight: 0.10,
	}
}

// SeedDesign is a knowledge-base candidate used to warm-start the
// population. Seeding overwrites genomes, not bounds: seeds are a starting
// point, never a constraint.
type SeedDesign struct {
	Thickness   float64
	NumDividers int
}

// GenerationStats is one record of the per-generation history.
type GenerationStats struct {
	Generation    int     `json:"generation"`
	BestFitness   float64 `json:"best_fitness"`
	AvgFitness    float64 `json:"avg_fitness"`
	BestCost      float64 `json:"best_cost"`
	BestThickness int     `json:"best_thickness"`
	BestDividers  int     `json:"best_dividers"`
	BestCapacity  float64 `json:"best_capacity"`
	Diversity     float64 `json:"diversity"` // stddev of thickness, mm
}

// Report is the full optimization report returned alongside the best model.
type Report struct {
	InitialBestDesign DesignSummary     `json:"initial_best_design"`
	BestDesign        DesignSummary     `json:"best_design"`
	Improvement       Improvement       `json:"improvement"`
	EvolutionHistory  []GenerationStats `json:"evolution_history"`
}

// Improvement is the delta between the pre-evolution best and the final best.
type Improvement struct {
	FitnessDelta   float64 `json:"fitness_delta"`
	CostDelta      float64 `json:"cost_delta"`
	ThicknessDelta float64 `json:"thickness_delta"`
}

// GeneticOptimizer evolves a population of bookshelf candidates toward
// lower fitness. Every stochastic decision draws from the single rng owned
// by the optimizer, so a fixed seed and fixed inputs reproduce the same
// result. Instances are independent and safe to run concurrently with
// each other.
type GeneticOptimizer struct {
	config GAConfig
	rng    *rand.Rand
	logger *slog.Logger

	population  []*Individual
	best        *Individual
	initialBest *Individual
	history     []GenerationStats
}

// New creates an optimizer with its own deterministic random source.
// A nil logger falls back to slog.Default().
func New(config GAConfig, seed int64, logger *slog.Logger) *GeneticOptimizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeneticOptimizer{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

// Optimize runs the search and returns the best phenotype found. Seeds, if
// any, overwrite the genomes of the first popsize/5 individuals. Cancelling
// the context between generations stops early and returns the current best
// rather than failing.
func (g *GeneticOptimizer) Optimize(ctx context.Context, req model.Requirements, seeds []SeedDesign) (model.Model, error) {
	numShelves := req.NumShelves
	if numShelves < 0 {
		numShelves = 4
	}
	ictx := Context{
		Width:      req.Width,
		Height:     req.Height,
		Depth:      req.Depth,
		NumShelves: numShelves,
		Material:   req.Material,
		TargetLoad: req.TargetLoad,
		Hardware:   costing.DefaultHardware(),
		Rates:      costing.DefaultRates(),
		Costing:    CostingOptions(req),
	}

	g.logger.Info("starting genetic optimization",
		"width", req.Width, "height", req.Height, "depth", req.Depth,
		"shelves", numShelves, "material", req.Material, "target_load_kg", req.TargetLoad)

	// Initialize and warm-start.
	g.population = make([]*Individual, g.config.PopulationSize)
	for i := range g.population {
		g.population[i] = newRandomIndividual(ictx, g.rng)
	}
	seedCount := min(len(seeds), g.config.PopulationSize/5)
	for i := 0; i < seedCount; i++ {
		g.population[i].Thickness = int(seeds[i].Thickness + 0.5)
		g.population[i].NumDividers = seeds[i].NumDividers
	}

	for _, ind := range g.population {
		if _, err := ind.Evaluate(g.config); err != nil {
			return model.Model{}, err
		}
	}
	g.sortPopulation()
	g.initialBest = g.population[0]
	g.best = g.initialBest

	g.logger.Info("initial best",
		"fitness", g.initialBest.Fitness, "cost", g.initialBest.Cost,
		"thickness_mm", g.initialBest.Thickness)

	for gen := 0; gen < g.config.Generations; gen++ {
		if ctx.Err() != nil {
			g.logger.Warn("optimization cancelled, returning current best", "generation", gen)
			break
		}
		if err := g.evolve(gen); err != nil {
			return model.Model{}, err
		}
	}

	g.logger.Info("genetic optimization complete",
		"fitness", g.best.Fitness, "cost", g.best.Cost,
		"thickness_mm", g.best.Thickness, "dividers", g.best.NumDividers,
		"capacity_kg", g.best.Capacity)

	return g.best.ToModel()
}

// evolve advances one generation: elites carry over unchanged, the rest of
// the next generation is bred, and the stats are recorded.
func (g *GeneticOptimizer) evolve(gen int) error {
	nextGen := make([]*Individual, 0, g.config.PopulationSize)

	eliteCount := min(g.config.EliteCount, len(g.population))
	for i := 0; i < eliteCount; i++ {
		nextGen = append(nextGen, g.population[i].copyEvaluated())
	}

	for len(nextGen) < g.config.PopulationSize {
		parent1 := g.tournamentSelect()
		parent2 := g.tournamentSelect()

		var child1, child2 *Individual
		if g.rng.Float64() < g.config.CrossoverRate {
			child1, child2 = parent1.crossover(parent2, g.rng)
		} else {
			child1 = parent1.clone()
			child2 = parent2.clone()
		}

		child1.mutate(g.config.MutationRate, g.rng)
		child2.mutate(g.config.MutationRate, g.rng)

		if _, err := child1.Evaluate(g.config); err != nil {
			return err
		}
		if _, err := child2.Evaluate(g.config); err != nil {
			return err
		}

		nextGen = append(nextGen, child1, child2)
	}

	g.population = nextGen[:g.config.PopulationSize]
	g.sortPopulation()

	if g.population[0].Fitness < g.best.Fitness {
		g.best = g.population[0]
	}

	stats := g.generationStats(gen + 1)
	g.history = append(g.history, stats)

	g.logger.Info("generation complete",
		"generation", stats.Generation, "of", g.config.Generations,
		"best_fitness", stats.BestFitness, "avg_fitness", stats.AvgFitness,
		"best_cost", stats.BestCost, "diversity_mm", stats.Diversity)

	return nil
}

// tournamentSelect samples TournamentSize individuals uniformly and returns
// the fittest.
func (g *GeneticOptimizer) tournamentSelect() *Individual {
	best := g.population[g.rng.Intn(len(g.population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := g.population[g.rng.Intn(len(g.population))]
		if candidate.Fitness < best.Fitness {
			best = candidate
		}
	}
	return best
}

func (g *GeneticOptimizer) sortPopulation() {
	sort.SliceStable(g.population, func(i, j int) bool {
		return g.population[i].Fitness < g.population[j].Fitness
	})
}

func (g *GeneticOptimizer) generationStats(generation int) GenerationStats {
	fitnesses := make([]float64, len(g.population))
	thicknesses := make([]float64, len(g.population))
	for i, ind := range g.population {
		fitnesses[i] = ind.Fitness
		thicknesses[i] = float64(ind.Thickness)
	}

	// A single-individual population has no spread; stat.StdDev would
	// divide by n-1 and record NaN, which also breaks JSON reports.
	diversity := 0.0
	if len(thicknesses) > 1 {
		diversity = stat.StdDev(thicknesses, nil)
	}

	top := g.population[0]
	return GenerationStats{
		Generation:    generation,
		BestFitness:   roundTo(top.Fitness, 4),
		AvgFitness:    roundTo(stat.Mean(fitnesses, nil), 4),
		BestCost:      roundTo(top.Cost, 2),
		BestThickness: top.Thickness,
		BestDividers:  top.NumDividers,
		BestCapacity:  roundTo(top.Capacity, 1),
		Diversity:     roundTo(diversity, 2),
	}
}

// CostingOptions carries the requested joinery and drilling pattern into
// cost estimation. Fitness evaluation and the final quote share it so the
// search optimizes the cost that will actually be quoted. An all-zero
// drilling pattern means unspecified and keeps the defaults.
func CostingOptions(req model.Requirements) costing.Options {
	opts := costing.DefaultOptions()
	if req.JointMethod != "" {
		opts.Method = req.JointMethod
	}
	if req.ShelfPinsMode != "" {
		opts.ShelfPinsMode = req.ShelfPinsMode
	}
	if req.Drilling != (model.Drilling{}) {
		opts.Drilling = req.Drilling
	}
	return opts
}

// Best returns the best individual found so far, or nil before Optimize.
func (g *GeneticOptimizer) Best() *Individual {
	return g.best
}

// GetReport returns the optimization report. Empty before Optimize has run.
func (g *GeneticOptimizer) GetReport() Report {
	if g.best == nil {
		return Report{}
	}
	return Report{
		InitialBestDesign: g.initialBest.Summary(),
		BestDesign:        g.best.Summary(),
		Improvement: Improvement{
			FitnessDelta:   roundTo(g.initialBest.Fitness-g.best.Fitness, 4),
			CostDelta:      roundTo(g.initialBest.Cost-g.best.Cost, 2),
			ThicknessDelta: roundTo(float64(g.initialBest.Thickness-g.best.Thickness), 1),
		},
		EvolutionHistory: g.history,
	}
}
