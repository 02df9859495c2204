package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shelfforge",
		Short: "Parametric bookshelf design and optimization engine",
	}

	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(materialsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func optimizeCmd() *cobra.Command {
	var opts optimizeOptions

	cmd := &cobra.Command{
		Use:   "optimize [requirements.json]",
		Short: "Evolve the cheapest safe design for a requirement set",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runOptimize(cmd.Context(), path, opts)
		},
	}

	cmd.Flags().Int64Var(&opts.Seed, "seed", 42, "random seed")
	cmd.Flags().IntVar(&opts.Generations, "generations", 0, "override generation count")
	cmd.Flags().IntVar(&opts.Population, "population", 0, "override population size")
	cmd.Flags().StringVar(&opts.OutJSON, "out", "", "write the full report JSON to this path")
	cmd.Flags().StringVar(&opts.OutPDF, "pdf", "", "write a PDF design report to this path")
	cmd.Flags().StringVar(&opts.OutXLSX, "xlsx", "", "write a cut list workbook to this path")
	cmd.Flags().StringVar(&opts.OutDXF, "dxf", "", "write panel outlines to this path")
	cmd.Flags().StringVar(&opts.OutLabels, "labels", "", "write QR panel labels to this path")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save the run as a project")
	cmd.Flags().StringVar(&opts.Name, "name", "", "project name when saving")
	return cmd
}

func estimateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "estimate [requirements.json]",
		Short: "Build a design from requirements and print its cost breakdown",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runEstimate(path, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the breakdown as JSON")
	return cmd
}

func analyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [requirements.json]",
		Short: "Check a design for manufacturability problems",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runAnalyze(path, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print warnings as JSON")
	return cmd
}

func materialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List the material catalog",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			printMaterials()
			return nil
		},
	}
}
