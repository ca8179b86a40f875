package main

import (
	"fmt"
	"os"

	"github.com/jonathan/hiring-radar/internal/analysis"
	"github.com/jonathan/hiring-radar/internal/observability"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Derive hiring, skill, market and industry insights from AggregatedData",
	Long: `Runs the trend analyzers (hiring trends, skill patterns, market shifts) and, when company metadata is given,
the industry analyzer over the output of the aggregate command. Thresholds can be overridden with --config.`,
	RunE: runAnalyze,
}

var (
	analyzeAggregated string
	analyzeCompanies  string
	analyzeConfigPath string
	analyzeOutput     string
	analyzeVerbose    bool
)

// analysisOutput is written by analyze and read by recommend.
type analysisOutput struct {
	Insights         []types.Insight        `json:"insights"`
	IndustryInsights types.IndustryInsights `json:"industry_insights"`
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeAggregated, "aggregated", "a", "", "Path to AggregatedData JSON file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeCompanies, "companies", "c", "", "Path to company metadata (JSON or YAML) for industry analysis")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json with analyzer thresholds")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Path to output insights JSON file (default stdout)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print the insights")

	if err := analyzeCmd.MarkFlagRequired("aggregated"); err != nil {
		panic(fmt.Sprintf("failed to mark aggregated flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}

	var aggregated types.AggregatedData
	if err := readJSON(analyzeAggregated, &aggregated); err != nil {
		return err
	}
	metas, err := readCompanies(analyzeCompanies)
	if err != nil {
		return err
	}

	analyzer := analysis.New(cfg.Thresholds)
	out := analysisOutput{Insights: []types.Insight{}, IndustryInsights: types.IndustryInsights{}}

	stages := []struct {
		name string
		run  func(*types.AggregatedData) ([]types.Insight, error)
	}{
		{"hiring trends", analyzer.HiringTrends},
		{"skill patterns", analyzer.SkillPatterns},
		{"market shifts", analyzer.MarketShifts},
	}
	for _, stage := range stages {
		insights, err := stage.run(&aggregated)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: %s degraded: %v\n", stage.name, err)
		}
		out.Insights = append(out.Insights, insights...)
	}

	if len(metas) > 0 {
		industry, err := analyzer.IndustryTrends(&aggregated, metas)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: industry trends degraded: %v\n", err)
		}
		out.IndustryInsights = industry
	}

	if analyzeVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintInsights("Insights", out.Insights)
		printer.PrintIndustryInsights(out.IndustryInsights)
	}

	return writeJSON(analyzeOutput, out)
}
