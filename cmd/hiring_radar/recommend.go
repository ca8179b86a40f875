package main

import (
	"fmt"
	"os"

	"github.com/jonathan/hiring-radar/internal/observability"
	"github.com/jonathan/hiring-radar/internal/recommend"
	"github.com/jonathan/hiring-radar/internal/types"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Turn insights into prioritized strategic and industry recommendations",
	Long:  "Reads the output of the analyze command and writes strategic recommendations plus per-industry recommendations.",
	RunE:  runRecommend,
}

var (
	recommendInsights string
	recommendOutput   string
	recommendVerbose  bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendInsights, "insights", "i", "", "Path to insights JSON file from analyze (required)")
	recommendCmd.Flags().StringVarP(&recommendOutput, "out", "o", "", "Path to output recommendations JSON file (default stdout)")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print the recommendations")

	if err := recommendCmd.MarkFlagRequired("insights"); err != nil {
		panic(fmt.Sprintf("failed to mark insights flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(_ *cobra.Command, _ []string) error {
	var in analysisOutput
	if err := readJSON(recommendInsights, &in); err != nil {
		return err
	}

	recs, err := recommend.Strategic(in.Insights)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: strategic recommendations degraded: %v\n", err)
	}
	industry, err := recommend.Industry(in.IndustryInsights)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: industry recommendations degraded: %v\n", err)
	}

	if recommendVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintRecommendations("Strategic Recommendations", recs)
		printer.PrintIndustryRecommendations(industry)
	}

	return writeJSON(recommendOutput, struct {
		Recommendations         []types.Recommendation        `json:"recommendations"`
		IndustryRecommendations types.IndustryRecommendations `json:"industry_recommendations"`
	}{recs, industry})
}
