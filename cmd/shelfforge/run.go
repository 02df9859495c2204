package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/piwi3910/shelfforge/internal/costing"
	"github.com/piwi3910/shelfforge/internal/engine"
	"github.com/piwi3910/shelfforge/internal/export"
	"github.com/piwi3910/shelfforge/internal/kb"
	"github.com/piwi3910/shelfforge/internal/manufacturability"
	"github.com/piwi3910/shelfforge/internal/material"
	"github.com/piwi3910/shelfforge/internal/model"
	"github.com/piwi3910/shelfforge/internal/project"
)

type optimizeOptions struct {
	Seed        int64
	Generations int
	Population  int
	OutJSON     string
	OutPDF      string
	OutXLSX     string
	OutDXF      string
	OutLabels   string
	Save        bool
	Name        string
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// loadRequirements reads a requirement document, or returns the defaults
// when no path is given.
func loadRequirements(path string) (model.Requirements, error) {
	if path == "" {
		return model.DefaultRequirements(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Requirements{}, fmt.Errorf("reading requirements: %w", err)
	}
	req, err := model.ParseRequirements(data)
	if err != nil {
		return model.Requirements{}, fmt.Errorf("parsing requirements: %w", err)
	}
	return req, nil
}

// evaluateDesign runs the cost estimate and manufacturability checks for a
// resolved model.
func evaluateDesign(m model.Model, req model.Requirements) (costing.Breakdown, []manufacturability.Warning) {
	mat := material.Get(req.Material)
	b := costing.Estimate(m, mat, costing.DefaultHardware(), costing.DefaultRates(), engine.CostingOptions(req))
	d := manufacturability.DesignData{
		W:           m.W,
		D:           m.D,
		H:           m.H,
		T:           m.T,
		AddTop:      m.AddTop,
		NumShelves:  m.NumShelves(),
		NumDividers: m.NumDividers(),
		Material:    req.Material,
		TargetLoad:  req.TargetLoad,
	}
	return b, manufacturability.Analyze(d, b)
}

func runOptimize(ctx context.Context, path string, opts optimizeOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	req, err := loadRequirements(path)
	if err != nil {
		return err
	}

	gaCfg := engine.DefaultGAConfig()
	if opts.Generations > 0 {
		gaCfg.Generations = opts.Generations
	}
	if opts.Population > 0 {
		gaCfg.PopulationSize = opts.Population
	}

	var seeds []engine.SeedDesign
	if cfg.KB.URL != "" {
		client := kb.NewClient(cfg.KB.URL, cfg.KB.Dataset, cfg.kbTimeout())
		for _, d := range kb.BestEffortSeeds(ctx, client, req.Width, req.Height, req.Depth, cfg.KB.Tolerance, logger) {
			seeds = append(seeds, engine.SeedDesign{Thickness: d.Thickness, NumDividers: d.NumDividers})
		}
		if len(seeds) > 0 {
			logger.Info("seeding population from knowledge base", "seeds", len(seeds))
		}
	}

	optimizer := engine.New(gaCfg, opts.Seed, logger)
	m, err := optimizer.Optimize(ctx, req, seeds)
	if err != nil {
		return fmt.Errorf("optimization: %w", err)
	}
	report := optimizer.GetReport()

	breakdown, warnings := evaluateDesign(m, req)
	printReport(m, breakdown, warnings, report)

	if opts.OutJSON != "" {
		out := map[string]any{
			"model":     m,
			"breakdown": breakdown,
			"warnings":  warnings,
			"report":    report,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.OutJSON, data, 0644); err != nil {
			return fmt.Errorf("writing report JSON: %w", err)
		}
	}
	if opts.OutPDF != "" {
		if err := export.ReportPDF(opts.OutPDF, m, breakdown, warnings, report); err != nil {
			return fmt.Errorf("writing PDF report: %w", err)
		}
	}
	if opts.OutXLSX != "" {
		if err := export.CutListXLSX(opts.OutXLSX, m, breakdown); err != nil {
			return fmt.Errorf("writing cut list: %w", err)
		}
	}
	if opts.OutDXF != "" {
		if err := export.PanelsDXF(opts.OutDXF, m); err != nil {
			return fmt.Errorf("writing DXF: %w", err)
		}
	}
	if opts.OutLabels != "" {
		if err := export.LabelsPDF(opts.OutLabels, m, req.Material); err != nil {
			return fmt.Errorf("writing labels: %w", err)
		}
	}

	if opts.Save {
		name := opts.Name
		if name == "" {
			name = fmt.Sprintf("%.0fx%.0fx%.0f %s", m.W, m.D, m.H, req.Material)
		}
		p := project.New(name, req, m, breakdown, warnings, &report)
		savedPath, err := project.SaveToDefault(p)
		if err != nil {
			return fmt.Errorf("saving project: %w", err)
		}
		fmt.Printf("\nSaved project %s to %s\n", p.ID, savedPath)
	}

	return nil
}

func runEstimate(path string, asJSON bool) error {
	req, err := loadRequirements(path)
	if err != nil {
		return err
	}
	m, err := model.Build(req)
	if err != nil {
		return fmt.Errorf("building model: %w", err)
	}

	breakdown, _ := evaluateDesign(m, req)
	if asJSON {
		return printJSON(breakdown)
	}
	printModelSummary(m)
	printBreakdown(breakdown)
	return nil
}

func runAnalyze(path string, asJSON bool) error {
	req, err := loadRequirements(path)
	if err != nil {
		return err
	}
	m, err := model.Build(req)
	if err != nil {
		return fmt.Errorf("building model: %w", err)
	}

	_, warnings := evaluateDesign(m, req)
	if asJSON {
		return printJSON(warnings)
	}
	printModelSummary(m)
	printWarnings(warnings)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
