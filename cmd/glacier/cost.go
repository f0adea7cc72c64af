package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glacier/internal/pipeline"
)

var costFlags runFlags

var costCommand = &cobra.Command{
	Use:   "cost",
	Short: "Estimate token usage and cost without querying the model",
	Long: `Composes the same prompt(s) a guess run would send and prints the
estimated token counts and USD cost. No model gateway is ever contacted and
no credential is required.`,
	RunE: runCost,
}

func init() {
	costFlags.register(costCommand)
	rootCmd.AddCommand(costCommand)
}

func runCost(cmd *cobra.Command, _ []string) error {
	cfg, err := costFlags.resolveConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	result, err := pipeline.New(opts).EstimateOnly()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Batches:                 %d\n", result.Batches)
	fmt.Fprintf(out, "Estimated prompt tokens: %d\n", result.Estimate.InputTokens)
	fmt.Fprintf(out, "Estimated output tokens: %d\n", result.Estimate.OutputTokens)
	fmt.Fprintf(out, "Estimated total tokens:  %d\n", result.Estimate.TotalTokens)
	fmt.Fprintf(out, "Estimated cost:          $%.4f (%s)\n", result.Estimate.USD, cfg.Model)
	return nil
}
