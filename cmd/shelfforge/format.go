package main

import (
	"fmt"
	"sort"

	"github.com/piwi3910/shelfforge/internal/costing"
	"github.com/piwi3910/shelfforge/internal/engine"
	"github.com/piwi3910/shelfforge/internal/manufacturability"
	"github.com/piwi3910/shelfforge/internal/material"
	"github.com/piwi3910/shelfforge/internal/model"
)

func printModelSummary(m model.Model) {
	top := "no top"
	if m.AddTop {
		top = "with top"
	}
	fmt.Printf("Design: %.0f x %.0f x %.0f mm, %.0fmm panels, %d shelves, %d dividers, %s\n",
		m.W, m.D, m.H, m.T, m.NumShelves(), m.NumDividers(), top)
}

func printBreakdown(b costing.Breakdown) {
	c := b.Cost
	t := b.TimeMin
	n := b.Counts

	fmt.Println()
	fmt.Println("==== COST ESTIMATE ====")
	fmt.Printf("Material:     $%8.2f  (%d sheets)\n", c.Material, b.SheetCount)
	fmt.Printf("Machine:      $%8.2f  (setup %.1f min + drill %.1f min)\n", c.Machine, t.Setup, t.Drilling)
	fmt.Printf("Hardware:     $%8.2f  (dowels ~%d, cams %d, pins ~%d)\n", c.Hardware, n.DowelHoles/2, n.CamSets, n.ShelfPinsEst)
	fmt.Printf("Assembly:     $%8.2f  (%.1f min)\n", c.Assembly, t.Assembly)
	fmt.Println()
	fmt.Printf("TOTAL:        $%8.2f\n", c.Total)
	fmt.Println()
	fmt.Printf("Panel area: %.2f m2 | Drill holes: %d\n", b.PanelAreaM2, n.DrillHolesTotal)
}

func printWarnings(warnings []manufacturability.Warning) {
	fmt.Println()
	if len(warnings) == 0 {
		fmt.Println("No manufacturability concerns.")
		return
	}
	fmt.Printf("WARNINGS (%d):\n", len(warnings))
	for _, w := range warnings {
		fmt.Printf("  [%s] %s\n", w.Code, w.String())
	}
}

func printReport(m model.Model, b costing.Breakdown, warnings []manufacturability.Warning, report engine.Report) {
	printModelSummary(m)

	best := report.BestDesign
	initial := report.InitialBestDesign
	fmt.Println()
	fmt.Println("==== OPTIMIZATION ====")
	fmt.Printf("Initial best: fitness %.4f, $%.2f, %dmm, %d dividers\n",
		initial.Fitness, initial.Cost, initial.Thickness, initial.NumDividers)
	fmt.Printf("Final best:   fitness %.4f, $%.2f, %dmm, %d dividers\n",
		best.Fitness, best.Cost, best.Thickness, best.NumDividers)
	fmt.Printf("Capacity %.1f kg | Deflection %.2f mm | %d generations\n",
		best.CapacityKg, best.DeflectionMM, len(report.EvolutionHistory))
	fmt.Printf("Improvement:  fitness %+.4f, cost %+.2f\n",
		report.Improvement.FitnessDelta, report.Improvement.CostDelta)

	printBreakdown(b)
	printWarnings(warnings)
}

func printMaterials() {
	fmt.Printf("%-14s %12s %10s %12s %12s %10s\n",
		"Material", "Sheet (mm)", "$/sheet", "E (GPa)", "Sigma (MPa)", "kg/m3")
	names := material.Names()
	sort.Strings(names)
	for _, name := range names {
		spec := material.Get(name)
		fmt.Printf("%-14s %5.0fx%-6.0f %10.2f %12.1f %12.1f %10.0f\n",
			name, spec.SheetLengthMM, spec.SheetWidthMM, spec.PricePerSheet,
			spec.YoungsModulus/1e9, spec.SigmaMax/1e6, spec.Density)
	}
}
